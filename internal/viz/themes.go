package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the field plot and side panel.
type Theme struct {
	Name     string
	Title    lipgloss.Color
	Line     lipgloss.Color
	Grid     lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
	Neutral  lipgloss.Color
	Cursor   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Warning  lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Title:    lipgloss.Color("#00ffff"),
		Line:     lipgloss.Color("#ff00ff"),
		Grid:     lipgloss.Color("#333344"),
		Positive: lipgloss.Color("#ff4444"),
		Negative: lipgloss.Color("#4488ff"),
		Neutral:  lipgloss.Color("#888888"),
		Cursor:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666688"),
		Warning:  lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Title:    lipgloss.Color("#88ff88"),
		Line:     lipgloss.Color("#00ff00"),
		Grid:     lipgloss.Color("#003300"),
		Positive: lipgloss.Color("#ccff66"),
		Negative: lipgloss.Color("#00aa55"),
		Neutral:  lipgloss.Color("#005500"),
		Cursor:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Warning:  lipgloss.Color("#ffff00"),
	}

	// ThemePaper mirrors a white page: black grid, red and blue charges.
	ThemePaper = Theme{
		Name:     "paper",
		Title:    lipgloss.Color("#000000"),
		Line:     lipgloss.Color("#222222"),
		Grid:     lipgloss.Color("#bbbbbb"),
		Positive: lipgloss.Color("#dd0000"),
		Negative: lipgloss.Color("#0000dd"),
		Neutral:  lipgloss.Color("#808080"),
		Cursor:   lipgloss.Color("#008800"),
		Text:     lipgloss.Color("#000000"),
		Muted:    lipgloss.Color("#777777"),
		Warning:  lipgloss.Color("#cc6600"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Title:    lipgloss.Color("#00a8cc"),
		Line:     lipgloss.Color("#e0f0ff"),
		Grid:     lipgloss.Color("#113355"),
		Positive: lipgloss.Color("#ff6b6b"),
		Negative: lipgloss.Color("#0077be"),
		Neutral:  lipgloss.Color("#4488aa"),
		Cursor:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Warning:  lipgloss.Color("#ffcc00"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemePaper,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
