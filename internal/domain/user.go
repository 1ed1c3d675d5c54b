package domain

import (
	"context"
	"time"
)

// User represents a registered author. Users are immutable after
// registration; there are no edit or delete paths.
type User struct {
	Username     string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}
