package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme colours for terminal output.
var (
	colourPrimary   = lipgloss.Color("#7C3AED") // Purple
	colourSecondary = lipgloss.Color("#06B6D4") // Cyan
	colourMuted     = lipgloss.Color("#6C7086") // Medium gray
	colourSuccess   = lipgloss.Color("#A6E3A1") // Green
	colourWarning   = lipgloss.Color("#F9E2AF") // Yellow
	colourBorder    = lipgloss.Color("#45475A") // Border gray
)

// styles renders command output. When plain is set every style is a no-op,
// so piped output and tests see unadorned text.
type styles struct {
	plain bool

	title   lipgloss.Style
	label   lipgloss.Style
	pillar  lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	box     lipgloss.Style
}

// newStyles returns styles for w, plain unless w is a terminal.
func newStyles(w io.Writer) *styles {
	return &styles{
		plain: !isTerminal(w),

		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colourPrimary),

		label: lipgloss.NewStyle().
			Foreground(colourSecondary),

		pillar: lipgloss.NewStyle().
			Bold(true),

		muted: lipgloss.NewStyle().
			Foreground(colourMuted),

		success: lipgloss.NewStyle().
			Foreground(colourSuccess),

		warning: lipgloss.NewStyle().
			Foreground(colourWarning),

		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colourBorder).
			Padding(0, 1),
	}
}

func (s *styles) render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

func (s *styles) Title(text string) string   { return s.render(s.title, text) }
func (s *styles) Label(text string) string   { return s.render(s.label, text) }
func (s *styles) Pillar(text string) string  { return s.render(s.pillar, text) }
func (s *styles) Muted(text string) string   { return s.render(s.muted, text) }
func (s *styles) Success(text string) string { return s.render(s.success, text) }
func (s *styles) Warning(text string) string { return s.render(s.warning, text) }
func (s *styles) Box(text string) string     { return s.render(s.box, text) }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
