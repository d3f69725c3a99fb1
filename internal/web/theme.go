package web

import (
	"net/http"
	"time"
)

// ThemeCookie stores the visitor's colour scheme
const ThemeCookie = "theme"

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ParseTheme reports whether mode is a known theme
func ParseTheme(mode string) (string, bool) {
	switch mode {
	case ThemeDark, ThemeLight:
		return mode, true
	}
	return "", false
}

// ThemeFromRequest reads the theme cookie, defaulting to dark
func ThemeFromRequest(r *http.Request) string {
	c, err := r.Cookie(ThemeCookie)
	if err != nil {
		return ThemeDark
	}
	if t, ok := ParseTheme(c.Value); ok {
		return t
	}
	return ThemeDark
}

// SetTheme writes the theme cookie for a year
func SetTheme(w http.ResponseWriter, theme string) {
	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookie,
		Value:    theme,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
