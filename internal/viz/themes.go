package viz

import "github.com/charmbracelet/lipgloss"

// Theme holds the style tokens a host picks from. The effect core only
// reports the engaged flag; which color that maps to is decided here.
type Theme struct {
	Name       string
	Default    lipgloss.Color // cursor at rest
	Engaged    lipgloss.Color // cursor over the hot zone
	Particle   lipgloss.Color
	Ripple     lipgloss.Color
	Zone       lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
}

// Cursor returns the cursor color for the engaged state.
func (t Theme) Cursor(engaged bool) lipgloss.Color {
	if engaged {
		return t.Engaged
	}
	return t.Default
}

// Available themes
var (
	ThemeNeon = Theme{
		Name:       "neon",
		Default:    lipgloss.Color("#00ffff"), // Cyan
		Engaged:    lipgloss.Color("#ff00ff"), // Magenta
		Particle:   lipgloss.Color("#ffff00"),
		Ripple:     lipgloss.Color("#00ff88"),
		Zone:       lipgloss.Color("#444466"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
	}

	ThemeRetro = Theme{
		Name:       "retro",
		Default:    lipgloss.Color("#00ff00"), // Green phosphor
		Engaged:    lipgloss.Color("#88ff88"),
		Particle:   lipgloss.Color("#00cc00"),
		Ripple:     lipgloss.Color("#88ff88"),
		Zone:       lipgloss.Color("#005500"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Default:    lipgloss.Color("#ffffff"),
		Engaged:    lipgloss.Color("#0088ff"),
		Particle:   lipgloss.Color("#cccccc"),
		Ripple:     lipgloss.Color("#888888"),
		Zone:       lipgloss.Color("#444444"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Default:    lipgloss.Color("#00a8cc"),
		Engaged:    lipgloss.Color("#ffd700"),
		Particle:   lipgloss.Color("#0077be"),
		Ripple:     lipgloss.Color("#e0f0ff"),
		Zone:       lipgloss.Color("#4488aa"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Default:    lipgloss.Color("#feca57"),
		Engaged:    lipgloss.Color("#ff6b6b"), // Coral
		Particle:   lipgloss.Color("#ff9ff3"),
		Ripple:     lipgloss.Color("#fff5f5"),
		Zone:       lipgloss.Color("#8b6b8c"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
	}

	// All available themes
	Themes = []Theme{
		ThemeNeon,
		ThemeRetro,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeNeon, false
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
