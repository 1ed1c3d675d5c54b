package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkwell/inkwell/internal/domain"
	"github.com/inkwell/inkwell/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

const sessionCookieName = "session_token"

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// RequireAuth is middleware that protects routes requiring a session.
// It reads the session cookie, validates the token, loads the user, and
// injects it into the request context. Unauthenticated requests get a
// flash warning and a redirect to the login page; there is no separate
// forbidden outcome at this layer. A lookup failure that is not
// "no session" surfaces as a 500 instead of a redirect.
func RequireAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authenticateRequest(r, auth)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				slog.Error("authenticate request", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			setFlash(w, "warning", "You need to log in first.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth is middleware that attempts to authenticate but does not
// block unauthenticated requests. Public pages use it to reflect session
// state in the navigation.
func OptionalAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authenticateRequest(r, auth)
		switch {
		case err == nil && user != nil:
			ctx := context.WithValue(r.Context(), userContextKey, user)
			r = r.WithContext(ctx)
		case err != nil && !errors.Is(err, domain.ErrUnauthorized):
			// The page still renders for anonymous visitors, but a
			// database failure should not pass silently.
			slog.Error("authenticate request", "error", err)
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets baseline security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// authenticateRequest resolves the session cookie to a user. Every
// "no session" outcome (missing cookie, bad token, deleted user) maps
// to ErrUnauthorized; anything else is a real failure the caller must
// not mistake for a logged-out visitor.
func authenticateRequest(r *http.Request, auth *service.AuthService) (*domain.User, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	username, err := auth.ValidateToken(cookie.Value)
	if err != nil {
		return nil, err
	}

	user, err := auth.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}

// displayName returns the username for the nav bar, or the empty string
// for anonymous visitors.
func displayName(r *http.Request) string {
	if user := UserFromContext(r.Context()); user != nil {
		return user.Username
	}
	return ""
}
