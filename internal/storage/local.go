package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps uploaded images on the local filesystem under a single
// directory. Names are flattened to their base so request input can never
// escape the root.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}

func (s *LocalStore) Save(ctx context.Context, name string, body io.Reader) error {
	f, err := os.Create(s.path(name))
	if err != nil {
		return fmt.Errorf("create file %s: %w", name, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write file %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file %s: %w", name, err)
	}
	return nil
}

func (s *LocalStore) Remove(ctx context.Context, name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove file %s: %w", name, err)
	}
	return nil
}

func (s *LocalStore) Open(ctx context.Context, name string) (*Object, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open file %s: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file %s: %w", name, err)
	}
	return &Object{
		Body:        f,
		Size:        info.Size(),
		ContentType: contentTypeFor(name),
	}, nil
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var _ Store = (*LocalStore)(nil)
