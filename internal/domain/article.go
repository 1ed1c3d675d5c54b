package domain

import (
	"context"
	"time"
)

// Article is a blog post owned by the user named in Author. Only that
// user may update or delete it; the repository enforces this on every
// mutation, not the storage schema.
type Article struct {
	ID        int64
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArticleRepository defines persistence operations for articles.
// Update and Delete take the acting user and must refuse to touch rows
// whose author does not match, returning ErrForbidden. A missing row
// produces the same ErrForbidden so callers cannot probe for existence
// through the mutation paths.
type ArticleRepository interface {
	Create(ctx context.Context, article *Article) error
	GetByID(ctx context.Context, id int64) (*Article, error)
	ListAll(ctx context.Context) ([]Article, error)
	ListByAuthor(ctx context.Context, author string) ([]Article, error)
	Update(ctx context.Context, id int64, title, content, actingUser string) error
	Delete(ctx context.Context, id int64, actingUser string) error
}
