package interfaces

import domaintypes "rad/internal/domain/types"

// Prompter collects input from the user.
type Prompter interface {
	Input(label string, def string) (string, error)
	Secret(label string) (*domaintypes.Passphrase, error)
	Choose(label string, options []string, current int) (int, error)
}

// Reporter displays progress and results.
type Reporter interface {
	Headline(msg string)
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Blank()
	Highlight(s string) string
	Spinner(msg string) Spinner
}

// Spinner is a running progress indicator.
type Spinner interface {
	Finish()
	Fail()
}
