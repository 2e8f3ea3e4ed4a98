package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"petpet/internal/domain"
	"petpet/internal/repository"
)

// The composite primary key enforces the one-like-per-(user, post)
// invariant even when two requests race past the service-level check.
const createLikesTable = `
CREATE TABLE IF NOT EXISTS likes (
	user_id INTEGER NOT NULL,
	post_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	PRIMARY KEY (user_id, post_id),
	FOREIGN KEY(user_id) REFERENCES users(id),
	FOREIGN KEY(post_id) REFERENCES posts(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_likes_post_id ON likes(post_id);
`

type LikeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) repository.LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createLikesTable); err != nil {
		return fmt.Errorf("create likes table: %w", err)
	}
	return nil
}

func (r *LikeRepository) Create(ctx context.Context, userID, postID int64) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO likes (user_id, post_id, created_at)
VALUES (?, ?, ?)`,
		userID,
		postID,
		time.Now().UTC(),
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "primary key") {
			return fmt.Errorf("already liked: %w", err)
		}
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (r *LikeRepository) Delete(ctx context.Context, userID, postID int64) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM likes WHERE user_id = ? AND post_id = ?`,
		userID,
		postID,
	)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("like delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

func (r *LikeRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM likes WHERE user_id = ? AND post_id = ?`,
		userID,
		postID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query like: %w", err)
	}
	return true, nil
}

func (r *LikeRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM likes WHERE post_id = ?`,
		postID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

func (r *LikeRepository) ListPostIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT post_id FROM likes WHERE user_id = ? ORDER BY post_id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query liked posts: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan liked post id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *LikeRepository) ListByPost(ctx context.Context, postID int64) ([]domain.Like, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, post_id, created_at
FROM likes
WHERE post_id = ?
ORDER BY created_at ASC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("query likes by post: %w", err)
	}
	defer rows.Close()

	var likes []domain.Like
	for rows.Next() {
		var like domain.Like
		if err := rows.Scan(&like.UserID, &like.PostID, &like.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		likes = append(likes, like)
	}
	return likes, rows.Err()
}
