package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Line     lipgloss.Style
	Panel    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Active   lipgloss.Style
	KeyHint  lipgloss.Style
	Status   lipgloss.Style
	Warning  lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Neutral  lipgloss.Style
	Cursor   lipgloss.Style
	Grid     lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		Line:  lipgloss.NewStyle().Foreground(t.Line),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1).
			Width(34),
		Label:    lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		Value:    lipgloss.NewStyle().Foreground(t.Text),
		Active:   lipgloss.NewStyle().Bold(true).Foreground(t.Cursor),
		KeyHint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Status:   lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		Warning:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Positive: lipgloss.NewStyle().Bold(true).Foreground(t.Positive),
		Negative: lipgloss.NewStyle().Bold(true).Foreground(t.Negative),
		Neutral:  lipgloss.NewStyle().Bold(true).Foreground(t.Neutral),
		Cursor:   lipgloss.NewStyle().Bold(true).Foreground(t.Cursor).Blink(true),
		Grid:     lipgloss.NewStyle().Foreground(t.Grid),
	}
}

// ChargeGlyph returns the overlay glyph for a charge of magnitude m.
// The editing charge is drawn bracketed in the cursor colour.
func (s Styles) ChargeGlyph(m float64, editing bool) string {
	var glyph string
	var style lipgloss.Style
	switch {
	case m > 0:
		glyph, style = "+", s.Positive
	case m < 0:
		glyph, style = "−", s.Negative
	default:
		glyph, style = "○", s.Neutral
	}
	if editing {
		style = style.Underline(true).Background(lipgloss.Color("#333300"))
	}
	return style.Render(glyph)
}

// AnimatedSpinner returns one frame of the busy indicator.
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	if frame < 0 {
		frame = -frame
	}
	return spinners[frame%len(spinners)]
}

// Separator draws a muted rule of the given width.
func (s Styles) Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	return s.KeyHint.UnsetItalic().Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-3))
}
