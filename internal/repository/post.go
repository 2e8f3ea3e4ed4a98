package repository

import (
	"context"

	"petpet/internal/domain"
)

// PostRepository exposes persistence operations for Post entities.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	ListByOwner(ctx context.Context, userID int64) ([]domain.Post, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Post, error)
	Delete(ctx context.Context, id int64) error
}
