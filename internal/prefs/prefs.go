// Package prefs keeps the cosmetic theme and dark-mode preferences.
package prefs

import (
	"strconv"
	"strings"

	"taskpad/internal/storage"
)

type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeDark    Theme = "dark"
	ThemeOcean   Theme = "ocean"
	ThemeForest  Theme = "forest"
)

// Themes lists the selectable themes in cycle order.
var Themes = []Theme{ThemeDefault, ThemeDark, ThemeOcean, ThemeForest}

// ParseTheme maps a stored name to a Theme, falling back to ThemeDefault.
func ParseTheme(s string) Theme {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Themes {
		if t == known {
			return t
		}
	}
	return ThemeDefault
}

type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Prefs is the in-memory view of the stored preferences.
type Prefs struct {
	kv    KV
	theme Theme
	dark  bool
}

// Load reads the stored theme and dark mode. Dark mode is on when stored as
// "true" or when the theme itself is dark.
func Load(kv KV) (*Prefs, error) {
	p := &Prefs{kv: kv, theme: ThemeDefault}
	v, ok, err := kv.Get(storage.KeyTheme)
	if err != nil {
		return p, err
	}
	if ok {
		p.theme = ParseTheme(v)
	}
	d, _, err := kv.Get(storage.KeyDarkMode)
	if err != nil {
		return p, err
	}
	p.dark = d == "true" || p.theme == ThemeDark
	return p, nil
}

func (p *Prefs) Theme() Theme   { return p.theme }
func (p *Prefs) DarkMode() bool { return p.dark }

// SetTheme selects a theme. Dark mode follows: it is on only for ThemeDark.
func (p *Prefs) SetTheme(t Theme) error {
	p.theme = ParseTheme(string(t))
	p.dark = p.theme == ThemeDark
	if err := p.kv.Set(storage.KeyTheme, string(p.theme)); err != nil {
		return err
	}
	return p.kv.Set(storage.KeyDarkMode, strconv.FormatBool(p.dark))
}

// SetDarkMode switches dark mode. Turning it on over the default theme
// selects the dark theme; turning it off over the dark theme goes back to
// the default one. Other themes are left alone.
func (p *Prefs) SetDarkMode(on bool) error {
	p.dark = on
	if err := p.kv.Set(storage.KeyDarkMode, strconv.FormatBool(on)); err != nil {
		return err
	}
	switch {
	case on && p.theme == ThemeDefault:
		p.theme = ThemeDark
	case !on && p.theme == ThemeDark:
		p.theme = ThemeDefault
	default:
		return nil
	}
	return p.kv.Set(storage.KeyTheme, string(p.theme))
}

// NextTheme returns the theme after the current one in Themes.
func (p *Prefs) NextTheme() Theme {
	for i, t := range Themes {
		if t == p.theme {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeDefault
}
