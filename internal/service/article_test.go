package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/inkwell/inkwell/internal/domain"
	"github.com/inkwell/inkwell/internal/repository/sqlite"
	"github.com/inkwell/inkwell/internal/service"
)

func newTestArticleService(t *testing.T) (*service.ArticleService, *sqlite.DB) {
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

	return service.NewArticleService(db.Articles()), db
}

func addAuthor(t *testing.T, db *sqlite.DB, username string) {
	t.Helper()
	user := &domain.User{
		Username:     username,
		Name:         "Author " + username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create author %s: %v", username, err)
	}
}

func TestArticleService_Create(t *testing.T) {
	articles, db := newTestArticleService(t)
	addAuthor(t, db, "alice")
	ctx := context.Background()

	article, err := articles.Create(ctx, "Hello", "World", "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if article.ID == 0 {
		t.Fatal("expected article ID to be set")
	}
	if article.Author != "alice" {
		t.Fatalf("expected author alice, got %q", article.Author)
	}
}

func TestArticleService_Create_EmptyFields(t *testing.T) {
	articles, db := newTestArticleService(t)
	addAuthor(t, db, "alice")
	ctx := context.Background()

	tests := []struct {
		name      string
		title     string
		content   string
		wantField string
	}{
		{"empty title", "", "some content", "title"},
		{"empty content", "some title", "", "content"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := articles.Create(ctx, tc.title, tc.content, "alice")
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

func TestArticleService_Update_OwnerOnly(t *testing.T) {
	articles, db := newTestArticleService(t)
	addAuthor(t, db, "alice")
	addAuthor(t, db, "bobby")
	ctx := context.Background()

	article, err := articles.Create(ctx, "Original", "Text", "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := articles.Update(ctx, article.ID, "Edited", "New text", "bobby"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for bobby, got %v", err)
	}

	found, err := articles.GetByID(ctx, article.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Title != "Original" {
		t.Fatalf("forbidden update must not write, got title %q", found.Title)
	}

	if err := articles.Update(ctx, article.ID, "Edited", "New text", "alice"); err != nil {
		t.Fatalf("Update by owner: %v", err)
	}
}

func TestArticleService_Update_Validation(t *testing.T) {
	articles, db := newTestArticleService(t)
	addAuthor(t, db, "alice")
	ctx := context.Background()

	article, err := articles.Create(ctx, "Original", "Text", "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = articles.Update(ctx, article.ID, "", "", "alice")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestArticleService_Delete_Lifecycle(t *testing.T) {
	articles, db := newTestArticleService(t)
	addAuthor(t, db, "alice")
	addAuthor(t, db, "bobby")
	ctx := context.Background()

	article, err := articles.Create(ctx, "T", "C", "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := articles.Delete(ctx, article.ID, "bobby"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for bobby, got %v", err)
	}
	if _, err := articles.GetByID(ctx, article.ID); err != nil {
		t.Fatalf("article should survive forbidden delete: %v", err)
	}

	if err := articles.Delete(ctx, article.ID, "alice"); err != nil {
		t.Fatalf("Delete by owner: %v", err)
	}
	if _, err := articles.GetByID(ctx, article.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestArticleService_ListByAuthor(t *testing.T) {
	articles, db := newTestArticleService(t)
	addAuthor(t, db, "alice")
	addAuthor(t, db, "bobby")
	ctx := context.Background()

	first, err := articles.Create(ctx, "Alice 1", "C", "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := articles.Create(ctx, "Bob 1", "C", "bobby"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := articles.Create(ctx, "Alice 2", "C", "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := articles.ListByAuthor(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 articles for alice, got %d", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("expected stable id order [%d %d], got [%d %d]", first.ID, second.ID, got[0].ID, got[1].ID)
	}
}
