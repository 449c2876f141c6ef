package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette
var (
	colorPrimary  = lipgloss.Color("#a78bfa")
	colorFavorite = lipgloss.Color("#f1a208")
	colorMuted    = lipgloss.Color("#808080")
	colorCursorBg = lipgloss.Color("#303030")
	colorSuccess  = lipgloss.Color("#42b883")
	colorError    = lipgloss.Color("#ff5555")
)

// styles holds the lipgloss styles bound to one output stream.
type styles struct {
	Header   lipgloss.Style
	Muted    lipgloss.Style
	Favorite lipgloss.Style
	Cursor   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
}

// newStyles detects the color support of w. noColor forces plain text.
func newStyles(w io.Writer, noColor bool) *styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &styles{
		Header:   r.NewStyle().Foreground(colorPrimary).Bold(true),
		Muted:    r.NewStyle().Foreground(colorMuted),
		Favorite: r.NewStyle().Foreground(colorFavorite),
		Cursor:   r.NewStyle().Background(colorCursorBg).Bold(true),
		Success:  r.NewStyle().Foreground(colorSuccess),
		Error:    r.NewStyle().Foreground(colorError),
	}
}
