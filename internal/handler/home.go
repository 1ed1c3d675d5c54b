package handler

import (
	"net/http"

	"github.com/inkwell/inkwell/internal/view"
)

// HandleHome renders the index page.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	view.HomePage(displayName(r), popFlash(w, r)).Render(r.Context(), w)
}

// HandleAbout renders the about page.
func HandleAbout(w http.ResponseWriter, r *http.Request) {
	view.AboutPage(displayName(r), popFlash(w, r)).Render(r.Context(), w)
}
