package service

import (
	"context"
	"errors"
	"testing"
)

func TestLikeAndUnlike(t *testing.T) {
	env, teardown := setupTestEnv(t)
	defer teardown()

	ctx := context.Background()
	svc := NewLikeService(env.likes, env.posts, env.users)

	alice := registerUser(t, env, "a@x.com", "alice")
	bob := registerUser(t, env, "b@x.com", "bob")
	postID := createPost(t, env, bob)

	t.Run("like increments count and shows in liked posts", func(t *testing.T) {
		before, err := svc.CountForPost(ctx, postID)
		if err != nil {
			t.Fatalf("CountForPost() error = %v", err)
		}

		if err := svc.Like(ctx, alice, postID); err != nil {
			t.Fatalf("Like() error = %v", err)
		}

		after, err := svc.CountForPost(ctx, postID)
		if err != nil {
			t.Fatalf("CountForPost() error = %v", err)
		}
		if after != before+1 {
			t.Errorf("CountForPost() = %d, want %d", after, before+1)
		}

		liked, err := svc.ListLikedPosts(ctx, alice)
		if err != nil {
			t.Fatalf("ListLikedPosts() error = %v", err)
		}
		if len(liked) != 1 || liked[0].ID != postID {
			t.Errorf("ListLikedPosts() = %+v, want post %d", liked, postID)
		}
	})

	t.Run("second like rejected without duplicating", func(t *testing.T) {
		if err := svc.Like(ctx, alice, postID); !errors.Is(err, ErrAlreadyLiked) {
			t.Errorf("Like() twice err = %v, want ErrAlreadyLiked", err)
		}
		count, err := svc.CountForPost(ctx, postID)
		if err != nil {
			t.Fatalf("CountForPost() error = %v", err)
		}
		if count != 1 {
			t.Errorf("CountForPost() = %d, want 1", count)
		}
	})

	t.Run("unlike", func(t *testing.T) {
		if err := svc.Unlike(ctx, alice, postID); err != nil {
			t.Fatalf("Unlike() error = %v", err)
		}
		if err := svc.Unlike(ctx, alice, postID); !errors.Is(err, ErrNotLiked) {
			t.Errorf("Unlike() twice err = %v, want ErrNotLiked", err)
		}
	})

	t.Run("unlike without prior like", func(t *testing.T) {
		if err := svc.Unlike(ctx, bob, postID); !errors.Is(err, ErrNotLiked) {
			t.Errorf("Unlike() err = %v, want ErrNotLiked", err)
		}
	})
}

func TestNotifications(t *testing.T) {
	env, teardown := setupTestEnv(t)
	defer teardown()

	ctx := context.Background()
	svc := NewLikeService(env.likes, env.posts, env.users)

	alice := registerUser(t, env, "a@x.com", "alice")
	bob := registerUser(t, env, "b@x.com", "bob")
	postID := createPost(t, env, bob)

	t.Run("empty without likes", func(t *testing.T) {
		got, err := svc.Notifications(ctx, bob)
		if err != nil {
			t.Fatalf("Notifications() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Notifications() len = %d, want 0", len(got))
		}
	})

	t.Run("like from another user notifies the owner", func(t *testing.T) {
		if err := svc.Like(ctx, alice, postID); err != nil {
			t.Fatalf("Like() error = %v", err)
		}

		got, err := svc.Notifications(ctx, bob)
		if err != nil {
			t.Fatalf("Notifications() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Notifications() len = %d, want 1", len(got))
		}
		n := got[0]
		if n.PostID != postID || n.UserID != alice || n.Username != "alice" {
			t.Errorf("Notifications() = %+v, want {postId:%d userId:%d username:alice}", n, postID, alice)
		}
	})

	t.Run("own likes never notify", func(t *testing.T) {
		if err := svc.Like(ctx, bob, postID); err != nil {
			t.Fatalf("Like() error = %v", err)
		}

		got, err := svc.Notifications(ctx, bob)
		if err != nil {
			t.Fatalf("Notifications() error = %v", err)
		}
		for _, n := range got {
			if n.UserID == bob {
				t.Errorf("Notifications() contains the owner's own like: %+v", n)
			}
		}
		if len(got) != 1 {
			t.Errorf("Notifications() len = %d, want 1", len(got))
		}
	})

	t.Run("liker never sees notifications for others' posts", func(t *testing.T) {
		got, err := svc.Notifications(ctx, alice)
		if err != nil {
			t.Fatalf("Notifications() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Notifications() for alice len = %d, want 0", len(got))
		}
	})
}
