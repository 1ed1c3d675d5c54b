package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell/inkwell/internal/domain"
)

const articleColumns = "id, title, content, author, created_at, updated_at"

// ArticleRepository implements domain.ArticleRepository using SQLite.
// Mutations are scoped by author in the statement itself, so an article
// that is missing and an article owned by someone else are
// indistinguishable to the caller.
type ArticleRepository struct {
	db *sql.DB
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO articles (title, content, author, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		article.Title, article.Content, article.Author, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get article id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	article.ID = id
	article.CreatedAt = now
	article.UpdatedAt = now
	return nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	a := &domain.Article{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id,
	).Scan(&a.ID, &a.Title, &a.Content, &a.Author, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query article by id: %w", err)
	}
	return a, nil
}

func (r *ArticleRepository) ListAll(ctx context.Context) ([]domain.Article, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (r *ArticleRepository) ListByAuthor(ctx context.Context, author string) ([]domain.Article, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE author = ? ORDER BY id`, author)
	if err != nil {
		return nil, fmt.Errorf("list articles by author: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

// Update rewrites title and content of the article identified by id,
// provided it belongs to actingUser. The ownership check and the write
// are a single statement.
func (r *ArticleRepository) Update(ctx context.Context, id int64, title, content, actingUser string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`UPDATE articles SET title = ?, content = ?, updated_at = ?
		 WHERE id = ? AND author = ?`,
		title, content, now, id, actingUser,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrForbidden
	}

	return tx.Commit()
}

// Delete removes the article identified by id, provided it belongs to
// actingUser. Same merged ErrForbidden behavior as Update.
func (r *ArticleRepository) Delete(ctx context.Context, id int64, actingUser string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM articles WHERE id = ? AND author = ?`, id, actingUser)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrForbidden
	}

	return tx.Commit()
}

func scanArticles(rows *sql.Rows) ([]domain.Article, error) {
	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Author, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
