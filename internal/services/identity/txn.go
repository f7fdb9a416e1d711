package identity

import "go.uber.org/zap"

// txn collects compensations for a multi-step operation.
type txn struct {
	log   *zap.Logger
	steps []step
}

type step struct {
	name string
	undo func() error
}

func newTxn(log *zap.Logger) *txn { return &txn{log: log} }

func (t *txn) onRollback(name string, undo func() error) {
	t.steps = append(t.steps, step{name: name, undo: undo})
}

// rollback runs compensations newest first. Failures are logged and do not
// stop the remaining compensations.
func (t *txn) rollback() {
	for i := len(t.steps) - 1; i >= 0; i-- {
		s := t.steps[i]
		if err := s.undo(); err != nil {
			t.log.Warn("compensation failed", zap.String("step", s.name), zap.Error(err))
			continue
		}
		t.log.Debug("compensated", zap.String("step", s.name))
	}
	t.steps = nil
}
