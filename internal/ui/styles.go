package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/prefs"
)

type palette struct {
	fg, muted, accent, success, danger, highlight lipgloss.Color
}

var palettes = map[prefs.Theme]palette{
	prefs.ThemeDefault: {fg: "236", muted: "245", accent: "63", success: "28", danger: "160", highlight: "228"},
	prefs.ThemeDark:    {fg: "252", muted: "241", accent: "141", success: "78", danger: "203", highlight: "58"},
	prefs.ThemeOcean:   {fg: "153", muted: "67", accent: "39", success: "43", danger: "204", highlight: "24"},
	prefs.ThemeForest:  {fg: "194", muted: "65", accent: "71", success: "114", danger: "167", highlight: "22"},
}

type styles struct {
	title     lipgloss.Style
	row       lipgloss.Style
	cursor    lipgloss.Style
	completed lipgloss.Style
	deleting  lipgloss.Style
	removing  lipgloss.Style
	highlight lipgloss.Style
	muted     lipgloss.Style
	success   lipgloss.Style
	errorMsg  lipgloss.Style
	label     lipgloss.Style
}

// newStyles builds the styles for a theme. Dark mode over a light theme
// swaps in the dark foreground colours.
func newStyles(theme prefs.Theme, dark bool) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[prefs.ThemeDefault]
	}
	if dark && theme != prefs.ThemeDark {
		d := palettes[prefs.ThemeDark]
		p.fg, p.muted = d.fg, d.muted
	}
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		row:       lipgloss.NewStyle().Foreground(p.fg),
		cursor:    lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		completed: lipgloss.NewStyle().Foreground(p.muted).Strikethrough(true),
		deleting:  lipgloss.NewStyle().Foreground(p.danger).Faint(true),
		removing:  lipgloss.NewStyle().Foreground(p.muted).Faint(true),
		highlight: lipgloss.NewStyle().Background(p.highlight),
		muted:     lipgloss.NewStyle().Foreground(p.muted),
		success:   lipgloss.NewStyle().Foreground(p.success),
		errorMsg:  lipgloss.NewStyle().Foreground(p.danger).Bold(true),
		label:     lipgloss.NewStyle().Foreground(p.accent),
	}
}
