package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/inkwell/inkwell/internal/view"
)

const flashCookieName = "flash"

// setFlash stores a one-shot status message in a cookie. The next page
// render consumes and clears it.
func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// popFlash reads the pending flash message, if any, and clears the
// cookie so it renders exactly once.
func popFlash(w http.ResponseWriter, r *http.Request) view.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return view.Flash{}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return view.Flash{}
	}
	kind, message, found := strings.Cut(raw, "|")
	if !found || message == "" {
		return view.Flash{}
	}
	return view.Flash{Kind: kind, Message: message}
}
