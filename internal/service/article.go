package service

import (
	"context"
	"fmt"

	"github.com/inkwell/inkwell/internal/domain"
)

// ArticleService handles article CRUD and validation. Ownership checks
// live in the repository contract; this layer only validates input and
// pins the author to the acting identity.
type ArticleService struct {
	articles domain.ArticleRepository
}

// NewArticleService creates a new ArticleService.
func NewArticleService(articles domain.ArticleRepository) *ArticleService {
	return &ArticleService{articles: articles}
}

// Create creates a new article owned by author. The author always comes
// from the authenticated session, never from the client.
func (s *ArticleService) Create(ctx context.Context, title, content, author string) (*domain.Article, error) {
	if verr := validateArticle(title, content); verr != nil {
		return nil, verr
	}

	article := &domain.Article{
		Title:   title,
		Content: content,
		Author:  author,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return article, nil
}

// GetByID returns an article by ID.
func (s *ArticleService) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	return s.articles.GetByID(ctx, id)
}

// ListAll returns every article in insertion order.
func (s *ArticleService) ListAll(ctx context.Context) ([]domain.Article, error) {
	return s.articles.ListAll(ctx)
}

// ListByAuthor returns the articles owned by author in insertion order.
func (s *ArticleService) ListByAuthor(ctx context.Context, author string) ([]domain.Article, error) {
	return s.articles.ListByAuthor(ctx, author)
}

// Update rewrites an article on behalf of actingUser. Returns
// ErrForbidden when the article is missing or owned by someone else.
func (s *ArticleService) Update(ctx context.Context, id int64, title, content, actingUser string) error {
	if verr := validateArticle(title, content); verr != nil {
		return verr
	}
	return s.articles.Update(ctx, id, title, content, actingUser)
}

// Delete removes an article on behalf of actingUser, with the same
// merged ErrForbidden behavior as Update.
func (s *ArticleService) Delete(ctx context.Context, id int64, actingUser string) error {
	return s.articles.Delete(ctx, id, actingUser)
}

func validateArticle(title, content string) error {
	verr := domain.NewValidationError()
	if title == "" {
		verr.Add("title", "Title is required.")
	}
	if content == "" {
		verr.Add("content", "Content is required.")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}
