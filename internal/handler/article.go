package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/inkwell/inkwell/internal/domain"
	"github.com/inkwell/inkwell/internal/service"
	"github.com/inkwell/inkwell/internal/view"
)

// Shared by update and delete failures: a missing article and someone
// else's article get the same message, so the mutation paths leak
// nothing about article existence.
const articleGoneMessage = "Article not found"

// ArticleHandler handles public article pages and owner-only mutations.
type ArticleHandler struct {
	articles *service.ArticleService
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articles *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// HandleList renders every article in insertion order.
// GET /articles
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListAll(r.Context())
	if err != nil {
		slog.Error("list articles", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.ArticlesPage(displayName(r), popFlash(w, r), articles).Render(r.Context(), w)
}

// HandleDetail renders a single article, or the empty-article view when
// it does not exist. The read path keeps "no such article" visible,
// unlike the mutation paths.
// GET /article/{id}
func (h *ArticleHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		view.EmptyArticlePage(displayName(r), popFlash(w, r), idStr).Render(r.Context(), w)
		return
	}

	article, err := h.articles.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			view.EmptyArticlePage(displayName(r), popFlash(w, r), idStr).Render(r.Context(), w)
			return
		}
		slog.Error("get article", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.ArticlePage(displayName(r), popFlash(w, r), article).Render(r.Context(), w)
}

// HandleAddPage renders the empty article form.
// GET /addarticle
func (h *ArticleHandler) HandleAddPage(w http.ResponseWriter, r *http.Request) {
	form := view.ArticleForm{Heading: "Add Article", Action: "/addarticle"}
	view.ArticleFormPage(displayName(r), popFlash(w, r), form).Render(r.Context(), w)
}

// HandleAdd creates an article owned by the session user.
// POST /addarticle
func (h *ArticleHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := view.ArticleForm{
		Heading: "Add Article",
		Action:  "/addarticle",
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}

	// The author is always the session identity, never a form value.
	_, err := h.articles.Create(r.Context(), form.Title, form.Content, user.Username)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			form.Errors = verr.Fields
			view.ArticleFormPage(displayName(r), view.Flash{}, form).Render(r.Context(), w)
			return
		}
		slog.Error("create article", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "Article created")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleEditPage renders the article form prefilled with an article the
// session user owns. A missing article and another author's article get
// the same flash and redirect.
// GET /edit/{id}
func (h *ArticleHandler) HandleEditPage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		setFlash(w, "danger", articleGoneMessage)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	article, err := h.articles.GetByID(r.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("get article for edit", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err != nil || article.Author != user.Username {
		setFlash(w, "danger", articleGoneMessage)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	form := view.ArticleForm{
		Heading: "Edit Article",
		Action:  "/edit/" + strconv.FormatInt(id, 10),
		Title:   article.Title,
		Content: article.Content,
	}
	view.ArticleFormPage(displayName(r), popFlash(w, r), form).Render(r.Context(), w)
}

// HandleEdit updates an article the session user owns.
// POST /edit/{id}
func (h *ArticleHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		setFlash(w, "danger", articleGoneMessage)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := view.ArticleForm{
		Heading: "Edit Article",
		Action:  "/edit/" + strconv.FormatInt(id, 10),
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}

	err = h.articles.Update(r.Context(), id, form.Title, form.Content, user.Username)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			form.Errors = verr.Fields
			view.ArticleFormPage(displayName(r), view.Flash{}, form).Render(r.Context(), w)
		case errors.Is(err, domain.ErrForbidden):
			setFlash(w, "danger", articleGoneMessage)
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		default:
			slog.Error("update article", "id", id, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	setFlash(w, "success", "Article updated")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleDelete removes an article the session user owns and returns to
// the dashboard either way.
// GET /delete/{id}
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		setFlash(w, "danger", articleGoneMessage)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	err = h.articles.Delete(r.Context(), id, user.Username)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			setFlash(w, "danger", articleGoneMessage)
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		slog.Error("delete article", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "Article deleted")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
