package tracking

import (
	"context"

	"go.uber.org/zap"

	"rad/internal/domain"
)

// Service edits tracking edges in the default profile's storage.
type Service struct {
	registry domain.ProfileRegistry
	keys     domain.KeyCustody
	log      *zap.Logger
}

// New returns a tracking service.
func New(registry domain.ProfileRegistry, keys domain.KeyCustody, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{registry: registry, keys: keys, log: log}
}

func (s *Service) storage(ctx context.Context) (domain.Storage, error) {
	p, err := s.registry.Default()
	if err != nil {
		return nil, err
	}
	_, st, err := s.keys.Storage(ctx, p)
	return st, err
}

// Track adds an edge to urn, scoped to peer unless peer is empty. It reports
// false when the edge already existed.
func (s *Service) Track(ctx context.Context, urn domain.URN, peer domain.PeerID) (bool, error) {
	st, err := s.storage(ctx)
	if err != nil {
		return false, err
	}
	added, err := st.Track(urn, peer)
	if err != nil {
		return false, err
	}
	s.log.Debug("track", zap.String("urn", urn.String()), zap.String("peer", peer.String()), zap.Bool("added", added))
	return added, nil
}

// Untrack removes the edge urn→peer. The edge must exist.
func (s *Service) Untrack(ctx context.Context, urn domain.URN, peer domain.PeerID) error {
	st, err := s.storage(ctx)
	if err != nil {
		return err
	}
	if _, err := st.Untrack(urn, peer, domain.UntrackMustExist); err != nil {
		return err
	}
	s.log.Debug("untrack", zap.String("urn", urn.String()), zap.String("peer", peer.String()))
	return nil
}

// UntrackAll removes every edge of urn and returns the peers it removed. A
// urn without edges is not an error.
func (s *Service) UntrackAll(ctx context.Context, urn domain.URN) ([]domain.PeerID, error) {
	st, err := s.storage(ctx)
	if err != nil {
		return nil, err
	}
	removed, err := st.UntrackAll(urn, domain.UntrackAny)
	if err != nil {
		return nil, err
	}
	s.log.Debug("untrack all", zap.String("urn", urn.String()), zap.Int("removed", len(removed)))
	return removed, nil
}

// Tracked lists the peers tracked for urn.
func (s *Service) Tracked(ctx context.Context, urn domain.URN) ([]domain.PeerID, error) {
	st, err := s.storage(ctx)
	if err != nil {
		return nil, err
	}
	return st.Tracked(urn)
}
