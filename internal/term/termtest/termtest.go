// Package termtest provides scripted prompts and a recording reporter for
// tests of interactive flows.
package termtest

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"rad/internal/domain"
)

// ErrExhausted is returned when a flow asks for more input than was scripted.
var ErrExhausted = errors.New("termtest: script exhausted")

// Choice records one Choose call.
type Choice struct {
	Label   string
	Options []string
	Current int
}

// Prompter answers prompts from fixed scripts, in order.
type Prompter struct {
	Inputs  []string
	Secrets []string
	Choices []int

	mu       sync.Mutex
	labels   []string
	choosing []Choice
	issued   []*domain.Passphrase
}

// Input returns the next scripted input.
func (p *Prompter) Input(label, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.labels = append(p.labels, label)
	if len(p.Inputs) == 0 {
		return "", fmt.Errorf("%w: input %q", ErrExhausted, label)
	}
	v := p.Inputs[0]
	p.Inputs = p.Inputs[1:]
	return v, nil
}

// Secret returns the next scripted secret.
func (p *Prompter) Secret(label string) (*domain.Passphrase, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.labels = append(p.labels, label)
	if len(p.Secrets) == 0 {
		return nil, fmt.Errorf("%w: secret %q", ErrExhausted, label)
	}
	v := p.Secrets[0]
	p.Secrets = p.Secrets[1:]
	pp := domain.NewPassphrase([]byte(v))
	p.issued = append(p.issued, pp)
	return pp, nil
}

// Choose returns the next scripted choice.
func (p *Prompter) Choose(label string, options []string, current int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.labels = append(p.labels, label)
	p.choosing = append(p.choosing, Choice{Label: label, Options: append([]string(nil), options...), Current: current})
	if len(p.Choices) == 0 {
		return 0, fmt.Errorf("%w: choice %q", ErrExhausted, label)
	}
	v := p.Choices[0]
	p.Choices = p.Choices[1:]
	return v, nil
}

// Labels returns every prompt label shown so far.
func (p *Prompter) Labels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.labels...)
}

// Chosen returns the recorded Choose calls.
func (p *Prompter) Chosen() []Choice {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Choice(nil), p.choosing...)
}

// Issued returns every passphrase handed out, so tests can check they were zeroed.
func (p *Prompter) Issued() []*domain.Passphrase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*domain.Passphrase(nil), p.issued...)
}

// Reporter records every message as "<kind>: <text>".
type Reporter struct {
	mu    sync.Mutex
	lines []string
}

func (r *Reporter) add(kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, kind+": "+msg)
}

func (r *Reporter) Headline(msg string) { r.add("headline", msg) }
func (r *Reporter) Info(msg string)     { r.add("info", msg) }
func (r *Reporter) Success(msg string)  { r.add("success", msg) }
func (r *Reporter) Warning(msg string)  { r.add("warning", msg) }
func (r *Reporter) Blank()              { r.add("blank", "") }

// Highlight returns s unchanged.
func (r *Reporter) Highlight(s string) string { return s }

// Spinner records the spinner's start and how it ended.
func (r *Reporter) Spinner(msg string) domain.Spinner {
	r.add("spinner", msg)
	return &spinner{r: r, msg: msg}
}

// Lines returns the recorded messages.
func (r *Reporter) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Contains reports whether any recorded message of kind contains substr.
func (r *Reporter) Contains(kind, substr string) bool {
	for _, l := range r.Lines() {
		if strings.HasPrefix(l, kind+": ") && strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

type spinner struct {
	r   *Reporter
	msg string
}

func (s *spinner) Finish() { s.r.add("spinner-done", s.msg) }
func (s *spinner) Fail()   { s.r.add("spinner-fail", s.msg) }

// Compile-time assertions.
var (
	_ domain.Prompter = (*Prompter)(nil)
	_ domain.Reporter = (*Reporter)(nil)
)
