package handler

import (
	"log/slog"
	"net/http"

	"github.com/inkwell/inkwell/internal/service"
	"github.com/inkwell/inkwell/internal/view"
)

// DashboardHandler renders the author's own articles.
type DashboardHandler struct {
	articles *service.ArticleService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(articles *service.ArticleService) *DashboardHandler {
	return &DashboardHandler{articles: articles}
}

// HandleDashboard lists the session user's articles with edit and
// delete controls.
// GET /dashboard
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	articles, err := h.articles.ListByAuthor(r.Context(), user.Username)
	if err != nil {
		slog.Error("list articles for dashboard", "user", user.Username, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.DashboardPage(user.Username, popFlash(w, r), articles).Render(r.Context(), w)
}
