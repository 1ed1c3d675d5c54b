package handler

import (
	"net/http"

	"github.com/inkwell/inkwell/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Public pages
// get OptionalAuth so the navigation reflects session state; everything
// touching the dashboard or article mutations goes through RequireAuth.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, articles *service.ArticleService, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	articleHandler := NewArticleHandler(articles)
	dashboardHandler := NewDashboardHandler(articles)

	public := func(h http.HandlerFunc) http.Handler {
		return OptionalAuth(auth, h)
	}
	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.Handle("GET /{$}", public(HandleHome))
	mux.Handle("GET /about", public(HandleAbout))
	mux.Handle("GET /articles", public(articleHandler.HandleList))
	mux.Handle("GET /article/{id}", public(articleHandler.HandleDetail))

	mux.Handle("GET /register", public(authHandler.HandleRegisterPage))
	mux.Handle("POST /register", public(authHandler.HandleRegister))
	mux.Handle("GET /login", public(authHandler.HandleLoginPage))
	mux.Handle("POST /login", public(authHandler.HandleLogin))
	mux.HandleFunc("GET /logout", authHandler.HandleLogout)

	mux.Handle("GET /dashboard", protected(dashboardHandler.HandleDashboard))
	mux.Handle("GET /addarticle", protected(articleHandler.HandleAddPage))
	mux.Handle("POST /addarticle", protected(articleHandler.HandleAdd))
	mux.Handle("GET /edit/{id}", protected(articleHandler.HandleEditPage))
	mux.Handle("POST /edit/{id}", protected(articleHandler.HandleEdit))
	mux.Handle("GET /delete/{id}", protected(articleHandler.HandleDelete))
}
