package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/inkwell/inkwell/internal/domain"
	"github.com/inkwell/inkwell/internal/repository/sqlite"
	"github.com/inkwell/inkwell/internal/service"
	"golang.org/x/crypto/bcrypt"
)

const testSessionSecret = "test-secret-key-for-unit-tests"

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), testSessionSecret, 24*time.Hour, 4)
	return auth, db
}

func TestAuthService_Register_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "Alice Author", "alice", "alice@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.Username != "alice" {
		t.Fatalf("expected username alice, got %s", user.Username)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not verify against the password: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("wrongpassword")); err == nil {
		t.Fatal("stored hash must not verify against a wrong password")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "User One", "duplicated", "one@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err = auth.Register(ctx, "User Two", "duplicated", "two@example.com", "password456", "password456")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Mismatch", "mismatch", "mismatch@example.com", "password123", "different456")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for password mismatch, got %v", err)
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Fields["confirm"] == "" {
		t.Fatalf("expected a message for the confirm field, got %v", verr.Fields)
	}

	// No row may exist after a rejected registration.
	if _, err := db.Users().GetByUsername(ctx, "mismatch"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected no user row, got %v", err)
	}
}

func TestAuthService_Register_FieldConstraints(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		fullName  string
		username  string
		email     string
		password  string
		wantField string
	}{
		{"name too short", "Al", "validuser", "a@example.com", "password123", "name"},
		{"name too long", "This Name Is Much Too Long To Pass", "validuser", "a@example.com", "password123", "name"},
		{"username too short", "Valid Name", "ab", "a@example.com", "password123", "username"},
		{"username too long", "Valid Name", "thisusernameismuchtoolongtopass", "a@example.com", "password123", "username"},
		{"multibyte name counts runes", "héy", "validuser", "a@example.com", "password123", "name"},
		{"multibyte username counts runes", "Valid Name", "héy", "a@example.com", "password123", "username"},
		{"invalid email", "Valid Name", "validuser", "not-an-email", "password123", "email"},
		{"empty password", "Valid Name", "validuser", "a@example.com", "", "password"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tc.fullName, tc.username, tc.email, tc.password, tc.password)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Fields[tc.wantField] == "" {
				t.Fatalf("expected a message for field %q, got %v", tc.wantField, verr.Fields)
			}
		})
	}
}

func TestAuthService_Register_MultibyteNameAtMaxLength(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	// 25 runes but 50 bytes; must still fit inside the maximum.
	name := strings.Repeat("é", 25)
	if _, err := auth.Register(ctx, name, "runeuser", "rune@example.com", "password123", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Login User", "loginuser", "login@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := auth.Login(ctx, "loginuser", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownUserMatch(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Known User", "knownuser", "known@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, errWrongPw := auth.Login(ctx, "knownuser", "wrongpassword")
	_, errUnknown := auth.Login(ctx, "nobodyhere", "password123")

	if !errors.Is(errWrongPw, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong password, got %v", errWrongPw)
	}
	if !errors.Is(errUnknown, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown username, got %v", errUnknown)
	}
	// Both failures must be indistinguishable to avoid username enumeration.
	if errWrongPw.Error() != errUnknown.Error() {
		t.Fatalf("failure modes differ: %q vs %q", errWrongPw, errUnknown)
	}
}

func TestAuthService_Token_GenerateAndValidate(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Token User", "tokenuser", "token@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := auth.Login(ctx, "tokenuser", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	username, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if username != "tokenuser" {
		t.Fatalf("expected username tokenuser, got %s", username)
	}
}

func TestAuthService_Token_Invalid(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.ValidateToken("not-a-valid-token")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Token_Tampered(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Tamper User", "tamperuser", "tamper@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := auth.Login(ctx, "tamperuser", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Flip several characters in the signature.
	tampered := token[:len(token)-5] + "XXXXX"
	_, err = auth.ValidateToken(tampered)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestAuthService_Token_WrongSecret(t *testing.T) {
	auth1, db := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth1.Register(ctx, "Secret User", "secretuser", "secret@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := auth1.Login(ctx, "secretuser", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	auth2 := service.NewAuthService(db.Users(), "a-completely-different-secret", 24*time.Hour, 4)
	_, err = auth2.ValidateToken(token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}
