package service

import (
	"context"
	"errors"
	"strings"

	"petpet/internal/domain"
	"petpet/internal/repository"
)

var (
	// ErrAlreadyLiked is returned when a user likes a post twice.
	ErrAlreadyLiked = errors.New("post already liked")
	// ErrNotLiked is returned when removing a like that does not exist.
	ErrNotLiked = errors.New("post not liked")
)

// LikeService manages the like ledger and the notifications derived from it.
type LikeService interface {
	Like(ctx context.Context, userID, postID int64) error
	Unlike(ctx context.Context, userID, postID int64) error
	CountForPost(ctx context.Context, postID int64) (int, error)
	ListLikedPosts(ctx context.Context, userID int64) ([]domain.Post, error)
	Notifications(ctx context.Context, userID int64) ([]domain.Notification, error)
}

type likeService struct {
	likes repository.LikeRepository
	posts repository.PostRepository
	users repository.UserRepository
}

func NewLikeService(likes repository.LikeRepository, posts repository.PostRepository, users repository.UserRepository) LikeService {
	return &likeService{
		likes: likes,
		posts: posts,
		users: users,
	}
}

// Like records the (user, post) pair. The existence check gives the
// friendly error; the insert still maps a constraint violation to
// ErrAlreadyLiked when two requests race.
func (s *likeService) Like(ctx context.Context, userID, postID int64) error {
	liked, err := s.likes.Exists(ctx, userID, postID)
	if err != nil {
		return err
	}
	if liked {
		return ErrAlreadyLiked
	}

	if err := s.likes.Create(ctx, userID, postID); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already liked") {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

func (s *likeService) Unlike(ctx context.Context, userID, postID int64) error {
	if err := s.likes.Delete(ctx, userID, postID); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return ErrNotLiked
		}
		return err
	}
	return nil
}

func (s *likeService) CountForPost(ctx context.Context, postID int64) (int, error) {
	return s.likes.CountByPost(ctx, postID)
}

func (s *likeService) ListLikedPosts(ctx context.Context, userID int64) ([]domain.Post, error) {
	ids, err := s.likes.ListPostIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.posts.ListByIDs(ctx, ids)
}

// Notifications derives the "someone liked your post" set for a user by
// walking their posts and each post's likes, skipping the user's own
// likes. Nothing is persisted and there is no read/unread state; every
// call returns the full current set.
func (s *likeService) Notifications(ctx context.Context, userID int64) ([]domain.Notification, error) {
	posts, err := s.posts.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	notifications := make([]domain.Notification, 0)
	for _, post := range posts {
		likes, err := s.likes.ListByPost(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		for _, like := range likes {
			if like.UserID == userID {
				continue
			}
			username := ""
			if user, err := s.users.GetByID(ctx, like.UserID); err == nil {
				username = user.Username
			}
			notifications = append(notifications, domain.Notification{
				PostID:   post.ID,
				UserID:   like.UserID,
				Username: username,
			})
		}
	}
	return notifications, nil
}
