package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"petpet/internal/domain"
)

// setupTestDB opens an in-memory sqlite database with all tables created.
func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	ctx := context.Background()
	if err := NewUserRepository(db).Init(ctx); err != nil {
		t.Fatalf("init users: %v", err)
	}
	if err := NewPostRepository(db).Init(ctx); err != nil {
		t.Fatalf("init posts: %v", err)
	}
	if err := NewLikeRepository(db).Init(ctx); err != nil {
		t.Fatalf("init likes: %v", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			t.Errorf("close test database: %v", err)
		}
	}
	return db, teardown
}

func mustCreateUser(t *testing.T, db *sql.DB, email, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: "x",
	}
	if _, err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func mustCreatePost(t *testing.T, db *sql.DB, userID int64, imagePath string) *domain.Post {
	t.Helper()
	post := &domain.Post{
		UserID:      userID,
		ImagePath:   imagePath,
		Description: "a pet",
	}
	if _, err := NewPostRepository(db).Create(context.Background(), post); err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}
