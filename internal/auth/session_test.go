package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)

	token, err := m.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Errorf("Verify() claims = %+v, want id 42 / alice", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("Verify() claims missing timestamps: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("token lifetime = %v, want %v", got, time.Hour)
	}
}

func TestVerifyRejects(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		if _, err := m.Verify("not-a-token"); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("Verify() err = %v, want ErrInvalidSession", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewSessionManager("other-secret", time.Hour)
		token, err := other.Issue(1, "bob")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if _, err := m.Verify(token); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("Verify() err = %v, want ErrInvalidSession", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewSessionManager("test-secret", -time.Minute)
		token, err := expired.Issue(1, "bob")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if _, err := m.Verify(token); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("Verify() err = %v, want ErrInvalidSession", err)
		}
	})
}
