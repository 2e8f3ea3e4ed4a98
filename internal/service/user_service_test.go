package service

import (
	"context"
	"errors"
	"testing"
)

func TestRegister(t *testing.T) {
	env, teardown := setupTestEnv(t)
	defer teardown()

	ctx := context.Background()
	svc := NewUserService(env.users)

	t.Run("success", func(t *testing.T) {
		user, err := svc.Register(ctx, "a@x.com", "alice", "Passw0rd!")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if user.ID == 0 {
			t.Errorf("Register() returned user with ID 0")
		}
		if user.PasswordHash != "" {
			t.Errorf("Register() leaked password hash")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		cases := [][3]string{
			{"", "bob", "pw"},
			{"b@x.com", "", "pw"},
			{"b@x.com", "bob", ""},
		}
		for _, c := range cases {
			if _, err := svc.Register(ctx, c[0], c[1], c[2]); !errors.Is(err, ErrMissingFields) {
				t.Errorf("Register(%q, %q, %q) err = %v, want ErrMissingFields", c[0], c[1], c[2], err)
			}
		}
	})

	t.Run("duplicate username different case", func(t *testing.T) {
		if _, err := svc.Register(ctx, "other@x.com", "ALICE", "Passw0rd!"); !errors.Is(err, ErrUserExists) {
			t.Errorf("Register() err = %v, want ErrUserExists", err)
		}
	})

	t.Run("duplicate email allowed", func(t *testing.T) {
		if _, err := svc.Register(ctx, "a@x.com", "alice2", "Passw0rd!"); err != nil {
			t.Errorf("Register() with duplicate email err = %v, want nil", err)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	env, teardown := setupTestEnv(t)
	defer teardown()

	ctx := context.Background()
	svc := NewUserService(env.users)

	if _, err := svc.Register(ctx, "a@x.com", "alice", "Passw0rd!"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("correct password", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "a@x.com", "Passw0rd!")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("Authenticate() username = %q, want alice", user.Username)
		}
		if user.PasswordHash != "" {
			t.Errorf("Authenticate() leaked password hash")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.Authenticate(ctx, "a@x.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate() err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := svc.Authenticate(ctx, "ghost@x.com", "Passw0rd!"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate() err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		if _, err := svc.Authenticate(ctx, "", ""); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Authenticate() err = %v, want ErrMissingFields", err)
		}
	})
}
