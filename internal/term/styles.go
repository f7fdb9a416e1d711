package term

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess   = lipgloss.Color("#8BC34A")
	colorWarning   = lipgloss.Color("#FFC107")
	colorError     = lipgloss.Color("#e53935")
	colorHighlight = lipgloss.Color("#2196F3")
	colorMuted     = lipgloss.Color("#6b7280")
)

// styles renders against the console's writer so colors are dropped when it
// is not a terminal.
type styles struct {
	headline  lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	failure   lipgloss.Style
	highlight lipgloss.Style
	muted     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		headline:  r.NewStyle().Bold(true),
		success:   r.NewStyle().Foreground(colorSuccess),
		warning:   r.NewStyle().Foreground(colorWarning),
		failure:   r.NewStyle().Foreground(colorError).Bold(true),
		highlight: r.NewStyle().Foreground(colorHighlight).Bold(true),
		muted:     r.NewStyle().Foreground(colorMuted),
	}
}
