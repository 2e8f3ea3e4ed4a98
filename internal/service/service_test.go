package service

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"

	"petpet/internal/repository"
	"petpet/internal/repository/sqlite"
	"petpet/internal/storage"
)

type testEnv struct {
	db    *sql.DB
	users repository.UserRepository
	posts repository.PostRepository
	likes repository.LikeRepository
	store *memStore
}

// setupTestEnv wires all repositories over an in-memory sqlite database
// and an in-memory image store.
func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	env := &testEnv{
		db:    db,
		users: sqlite.NewUserRepository(db),
		posts: sqlite.NewPostRepository(db),
		likes: sqlite.NewLikeRepository(db),
		store: newMemStore(),
	}

	ctx := context.Background()
	for _, init := range []func(context.Context) error{env.users.Init, env.posts.Init, env.likes.Init} {
		if err := init(ctx); err != nil {
			t.Fatalf("init repository: %v", err)
		}
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			t.Errorf("close test database: %v", err)
		}
	}
	return env, teardown
}

// memStore is an in-memory storage.Store for tests. removeErr, when set,
// makes Remove fail to exercise the delete-ordering guarantee.
type memStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	removeErr error
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (s *memStore) Save(ctx context.Context, name string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = data
	return nil
}

func (s *memStore) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removeErr != nil {
		return s.removeErr
	}
	if _, ok := s.objects[name]; !ok {
		return storage.ErrNotFound
	}
	delete(s.objects, name)
	return nil
}

func (s *memStore) Open(ctx context.Context, name string) (*storage.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.Object{
		Body:        io.NopCloser(bytes.NewReader(data)),
		Size:        int64(len(data)),
		ContentType: "application/octet-stream",
	}, nil
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

var _ storage.Store = (*memStore)(nil)

func registerUser(t *testing.T, env *testEnv, email, username string) int64 {
	t.Helper()
	user, err := NewUserService(env.users).Register(context.Background(), email, username, "Passw0rd!")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user.ID
}

func createPost(t *testing.T, env *testEnv, userID int64) int64 {
	t.Helper()
	svc := NewPostService(env.posts, env.likes, env.users, env.store)
	post, err := svc.CreatePost(context.Background(), userID, "my pet", "pet.jpg", bytes.NewReader([]byte("img")))
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post.ID
}
