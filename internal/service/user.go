package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/repository"
)

// UserService handles user lookups and first-login creation
type UserService struct {
	users repository.UserRepository
	log   *slog.Logger
}

var _ IUserService = (*UserService)(nil)

func NewUserService(users repository.UserRepository, log *slog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, classify(s.log, "get_user", err, fmt.Sprintf("User with ID = %s does not exist", id))
	}
	return user, nil
}

// GetPublicProfile returns the user without email and banned flag.
func (s *UserService) GetPublicProfile(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.AuthorOf(user), nil
}

// FindOrCreateByEmail returns the user registered with email, creating it
// on first login.
func (s *UserService) FindOrCreateByEmail(ctx context.Context, email, name, picture string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, invalidInput("email is required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageFailure(s.log, "get_user", err)
	}

	user = &model.User{Email: email, Name: name, Picture: picture}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent first login.
			existing, err := s.users.GetUserByEmail(ctx, email)
			if err != nil {
				return nil, storageFailure(s.log, "get_user", err)
			}
			return existing, nil
		}
		return nil, storageFailure(s.log, "create_user", err)
	}
	s.log.Info("user created", slog.String("user_id", user.ID.String()))
	return user, nil
}
