package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwell/inkwell/internal/domain"
	"github.com/inkwell/inkwell/internal/repository/sqlite"
)

func createTestArticle(t *testing.T, db *sqlite.DB, title, author string) *domain.Article {
	t.Helper()
	article := &domain.Article{
		Title:   title,
		Content: "Content of " + title,
		Author:  author,
	}
	if err := db.Articles().Create(context.Background(), article); err != nil {
		t.Fatalf("create article %q: %v", title, err)
	}
	return article
}

func TestArticleRepository_Create(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")

	article := createTestArticle(t, db, "First Post", "alice")

	if article.ID == 0 {
		t.Fatal("expected article ID to be set after create")
	}
	if article.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestArticleRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")
	article := createTestArticle(t, db, "Readable", "alice")

	found, err := db.Articles().GetByID(context.Background(), article.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Title != "Readable" {
		t.Fatalf("expected title Readable, got %q", found.Title)
	}
	if found.Author != "alice" {
		t.Fatalf("expected author alice, got %q", found.Author)
	}
}

func TestArticleRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Articles().GetByID(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestArticleRepository_ListAll_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")
	createTestUser(t, db, "bobby")

	first := createTestArticle(t, db, "One", "alice")
	second := createTestArticle(t, db, "Two", "bobby")
	third := createTestArticle(t, db, "Three", "alice")

	articles, err := db.Articles().ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}

	wantIDs := []int64{first.ID, second.ID, third.ID}
	for i, want := range wantIDs {
		if articles[i].ID != want {
			t.Fatalf("position %d: expected id %d, got %d", i, want, articles[i].ID)
		}
	}
}

func TestArticleRepository_ListByAuthor(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")
	createTestUser(t, db, "bobby")

	a1 := createTestArticle(t, db, "Alice One", "alice")
	createTestArticle(t, db, "Bob One", "bobby")
	a2 := createTestArticle(t, db, "Alice Two", "alice")

	articles, err := db.Articles().ListByAuthor(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].ID != a1.ID || articles[1].ID != a2.ID {
		t.Fatalf("expected ids [%d %d], got [%d %d]", a1.ID, a2.ID, articles[0].ID, articles[1].ID)
	}
}

func TestArticleRepository_Update_Owner(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")
	article := createTestArticle(t, db, "Before", "alice")
	ctx := context.Background()

	err := db.Articles().Update(ctx, article.ID, "After", "New content", "alice")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := db.Articles().GetByID(ctx, article.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Title != "After" || found.Content != "New content" {
		t.Fatalf("expected updated fields, got title=%q content=%q", found.Title, found.Content)
	}
}

func TestArticleRepository_Update_NotOwner(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")
	createTestUser(t, db, "bobby")
	article := createTestArticle(t, db, "Untouchable", "alice")
	ctx := context.Background()

	err := db.Articles().Update(ctx, article.ID, "Hacked", "Nope", "bobby")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Storage must be unchanged.
	found, err := db.Articles().GetByID(ctx, article.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Title != "Untouchable" {
		t.Fatalf("expected title unchanged, got %q", found.Title)
	}
}

func TestArticleRepository_Update_MissingArticle(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")

	// A missing row and someone else's row produce the same outcome.
	err := db.Articles().Update(context.Background(), 99999, "T", "C", "alice")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestArticleRepository_Delete_OwnershipLifecycle(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")
	createTestUser(t, db, "bobby")
	article := createTestArticle(t, db, "Doomed", "alice")
	ctx := context.Background()

	err := db.Articles().Delete(ctx, article.ID, "bobby")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for bobby, got %v", err)
	}

	// Still there after the forbidden attempt.
	if _, err := db.Articles().GetByID(ctx, article.ID); err != nil {
		t.Fatalf("article should survive forbidden delete: %v", err)
	}

	if err := db.Articles().Delete(ctx, article.ID, "alice"); err != nil {
		t.Fatalf("Delete by owner: %v", err)
	}

	_, err = db.Articles().GetByID(ctx, article.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestArticleRepository_Delete_MissingArticle(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")

	err := db.Articles().Delete(context.Background(), 99999, "alice")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
