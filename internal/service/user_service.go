package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"petpet/internal/domain"
	"petpet/internal/repository"
)

var (
	// ErrMissingFields indicates a registration or login request with empty fields.
	ErrMissingFields = errors.New("missing required fields")
	// ErrUserExists is returned when the username is already taken (any case).
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserService describes account lifecycle operations.
type UserService interface {
	Register(ctx context.Context, email, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Register creates an account. Usernames are unique case-insensitively;
// emails are not required to be unique.
func (s *userService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if email == "" || username == "" || password == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUserExists
	} else if !strings.Contains(strings.ToLower(err.Error()), "not found") {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		// unique constraint backstop for racing registrations
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Authenticate looks up the account by email and checks the password.
// Any mismatch, including a hash comparison failure, is treated as
// invalid credentials rather than a system error.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
