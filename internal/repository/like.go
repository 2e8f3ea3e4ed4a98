package repository

import (
	"context"

	"petpet/internal/domain"
)

// LikeRepository manages the (user, post) like ledger. The composite
// primary key on (user_id, post_id) is the source of truth for the
// at-most-one-like invariant; Create surfaces a violation as an
// "already liked" error even when callers pre-check with Exists.
type LikeRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, userID, postID int64) error
	Delete(ctx context.Context, userID, postID int64) error
	Exists(ctx context.Context, userID, postID int64) (bool, error)
	CountByPost(ctx context.Context, postID int64) (int, error)
	ListPostIDsByUser(ctx context.Context, userID int64) ([]int64, error)
	ListByPost(ctx context.Context, postID int64) ([]domain.Like, error)
}
