package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"petpet/internal/domain"
	"petpet/internal/repository"
	"petpet/internal/storage"
)

var (
	// ErrPostNotFound indicates the referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotOwner is returned when a user tries to delete someone else's post.
	ErrNotOwner = errors.New("not the post owner")
	// ErrMissingImage indicates a post creation attempt without an image.
	ErrMissingImage = errors.New("image file is required")
)

// PublicPathPrefix is the URL prefix under which stored images are served.
const PublicPathPrefix = "/public/"

// PostService coordinates post operations across the database and the image store.
type PostService interface {
	CreatePost(ctx context.Context, userID int64, description, originalName string, image io.Reader) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.FeedPost, error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	DeletePost(ctx context.Context, postID, requesterID int64) error
}

type postService struct {
	posts repository.PostRepository
	likes repository.LikeRepository
	users repository.UserRepository
	store storage.Store
}

func NewPostService(posts repository.PostRepository, likes repository.LikeRepository, users repository.UserRepository, store storage.Store) PostService {
	return &postService{
		posts: posts,
		likes: likes,
		users: users,
		store: store,
	}
}

// CreatePost stores the image first, then the row; a row never references
// an image that was not written.
func (s *postService) CreatePost(ctx context.Context, userID int64, description, originalName string, image io.Reader) (*domain.Post, error) {
	if image == nil {
		return nil, ErrMissingImage
	}

	fileName := uuid.NewString() + strings.ToLower(path.Ext(originalName))
	if err := s.store.Save(ctx, fileName, image); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	post := &domain.Post{
		UserID:      userID,
		ImagePath:   PublicPathPrefix + fileName,
		Description: description,
	}
	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns every post with its like count and abbreviated owner.
func (s *postService) ListPosts(ctx context.Context) ([]domain.FeedPost, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}

	feed := make([]domain.FeedPost, 0, len(posts))
	for _, post := range posts {
		count, err := s.likes.CountByPost(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		owner := domain.PostOwner{ID: post.UserID}
		if user, err := s.users.GetByID(ctx, post.UserID); err == nil {
			owner.Username = user.Username
		}
		feed = append(feed, domain.FeedPost{
			Post:      post,
			LikeCount: count,
			Owner:     owner,
		})
	}
	return feed, nil
}

func (s *postService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// DeletePost removes the stored image BEFORE the row. If removing the
// image fails the row stays, so the database never points at a file that
// is gone. An image that is already missing counts as removed.
func (s *postService) DeletePost(ctx context.Context, postID, requesterID int64) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return ErrNotOwner
	}

	fileName := strings.TrimPrefix(post.ImagePath, PublicPathPrefix)
	if err := s.store.Remove(ctx, fileName); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("remove image: %w", err)
	}

	// likes cascade with the row
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return err
	}
	return nil
}
