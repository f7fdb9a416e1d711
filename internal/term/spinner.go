package term

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"rad/internal/domain"
)

// Spinner animates a progress line until Finish or Fail is called.
type Spinner struct {
	c    *Console
	msg  string
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Spinner starts a progress indicator for msg. Without animation it prints
// msg once and the final state when stopped.
func (c *Console) Spinner(msg string) domain.Spinner {
	s := &Spinner{c: c, msg: msg, stop: make(chan struct{}), done: make(chan struct{})}
	if !c.animate {
		c.printf("%s\n", msg)
		close(s.done)
		return s
	}
	go s.run(spinner.Dot)
	return s
}

func (s *Spinner) run(style spinner.Spinner) {
	defer close(s.done)
	t := time.NewTicker(style.FPS)
	defer t.Stop()
	for i := 0; ; i++ {
		frame := style.Frames[i%len(style.Frames)]
		s.c.printf("\r%s %s", s.c.st.highlight.Render(frame), s.msg)
		select {
		case <-s.stop:
			s.c.printf("\r\033[K")
			return
		case <-t.C:
		}
	}
}

func (s *Spinner) end(mark string) {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
		s.c.printf("%s %s\n", mark, s.msg)
	})
}

// Finish stops the spinner and marks the step done.
func (s *Spinner) Finish() { s.end(s.c.st.success.Render("✓")) }

// Fail stops the spinner and marks the step failed.
func (s *Spinner) Fail() { s.end(s.c.st.failure.Render("✗")) }
