package model

import (
	"strings"
)

type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

type Palette struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Background    string `json:"background"`
	Paper         string `json:"paper"`
	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	Link          string `json:"link"`
}

// Theme is a palette together with the CSS custom properties derived from it.
type Theme struct {
	Mode    ThemeMode         `json:"mode"`
	Palette Palette           `json:"palette"`
	Vars    map[string]string `json:"vars"`
}

func newTheme(mode ThemeMode, p Palette) Theme {
	return Theme{
		Mode:    mode,
		Palette: p,
		Vars: map[string]string{
			"--color-primary":        p.Primary,
			"--color-secondary":      p.Secondary,
			"--color-background":     p.Background,
			"--color-paper":          p.Paper,
			"--color-text-primary":   p.TextPrimary,
			"--color-text-secondary": p.TextSecondary,
			"--color-link":           p.Link,
		},
	}
}

var themes = map[ThemeMode]Theme{
	ThemeLight: newTheme(ThemeLight, Palette{
		Primary:       "#006547",
		Secondary:     "#FFDB00",
		Background:    "#FFFFFF",
		Paper:         "#FFFFFF",
		TextPrimary:   "#212620",
		TextSecondary: "#006547",
		Link:          "#006547",
	}),
	ThemeDark: newTheme(ThemeDark, Palette{
		Primary:       "#006547",
		Secondary:     "#FFDB00",
		Background:    "#212620",
		Paper:         "#212620",
		TextPrimary:   "#FFFFFF",
		TextSecondary: "#FFDB00",
		Link:          "#1E90FF",
	}),
}

// ThemeFor returns the theme for mode. Unknown or empty modes get the light theme.
func ThemeFor(mode string) Theme {
	if t, ok := themes[ThemeMode(strings.ToLower(mode))]; ok {
		return t
	}
	return themes[ThemeLight]
}
