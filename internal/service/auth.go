package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/inkwell/inkwell/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const (
	minNameLength = 4
	maxNameLength = 25
)

// AuthService handles registration, login, and session token operations.
type AuthService struct {
	users         domain.UserRepository
	sessionSecret []byte
	sessionTTL    time.Duration
	bcryptCost    int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, sessionSecret string, sessionTTL time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		users:         users,
		sessionSecret: []byte(sessionSecret),
		sessionTTL:    sessionTTL,
		bcryptCost:    bcryptCost,
	}
}

// Register creates a new author account after validating inputs. The
// password is hashed before it reaches the repository; the plaintext is
// never stored.
func (s *AuthService) Register(ctx context.Context, name, username, email, password, confirm string) (*domain.User, error) {
	if verr := validateRegistration(name, username, email, password, confirm); verr != nil {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed session token. An
// unknown username and a wrong password both collapse to
// ErrUnauthorized so callers cannot tell them apart.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	return token, nil
}

// ValidateToken parses and validates a session token string.
// Returns the username from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.sessionSecret, nil
	})
	if err != nil {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	username, err := claims.GetSubject()
	if err != nil || username == "" {
		return "", domain.ErrUnauthorized
	}

	return username, nil
}

// GetByUsername retrieves a user by username.
func (s *AuthService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// SessionTTL returns the configured session lifetime, used to set the
// cookie MaxAge alongside the token expiry.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Username,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.sessionSecret)
}

func validateRegistration(name, username, email, password, confirm string) error {
	verr := domain.NewValidationError()

	// Lengths are counted in runes so non-ASCII names are measured the
	// way users see them.
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		verr.Add("name", fmt.Sprintf("Name must be between %d and %d characters.", minNameLength, maxNameLength))
	}
	if n := utf8.RuneCountInString(username); n < minNameLength || n > maxNameLength {
		verr.Add("username", fmt.Sprintf("Username must be between %d and %d characters.", minNameLength, maxNameLength))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		verr.Add("email", "Email must be a valid address.")
	}
	if password == "" {
		verr.Add("password", "Password is required.")
	} else if password != confirm {
		verr.Add("confirm", "Passwords do not match.")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
