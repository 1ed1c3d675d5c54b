package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkwell/inkwell/internal/domain"
	"github.com/inkwell/inkwell/internal/service"
	"github.com/inkwell/inkwell/internal/view"
)

// One generic message for both unknown-username and wrong-password, so
// login failures cannot be used to enumerate usernames.
const loginFailedMessage = "Username or password is incorrect"

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleRegisterPage renders the registration form.
// GET /register
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	view.RegisterPage(displayName(r), popFlash(w, r), view.RegisterForm{}).Render(r.Context(), w)
}

// HandleRegister processes the registration form. Validation failures
// re-render the form with inline field errors; success redirects to the
// index with a flash.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := view.RegisterForm{
		Name:     r.PostFormValue("name"),
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
	}

	_, err := h.auth.Register(r.Context(), form.Name, form.Username, form.Email,
		r.PostFormValue("password"), r.PostFormValue("confirm"))
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			form.Errors = verr.Fields
		case errors.Is(err, domain.ErrDuplicateUsername):
			form.Errors = map[string]string{"username": "That username is already taken."}
		default:
			slog.Error("register user", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		view.RegisterPage(displayName(r), view.Flash{}, form).Render(r.Context(), w)
		return
	}

	setFlash(w, "success", "You are now registered and can log in")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLoginPage renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	view.LoginPage(displayName(r), popFlash(w, r), view.LoginForm{}).Render(r.Context(), w)
}

// HandleLogin processes the login form and establishes the session.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	token, err := h.auth.Login(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			view.LoginPage("", view.Flash{}, view.LoginForm{
				Username: username,
				Error:    loginFailedMessage,
			}).Render(r.Context(), w)
			return
		}
		slog.Error("login user", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.auth.SessionTTL().Seconds()),
	})

	setFlash(w, "success", "You are now logged in")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	setFlash(w, "success", "You are now logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
