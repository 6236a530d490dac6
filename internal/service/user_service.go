package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/plantnet/server/internal/domain/entity"
	"github.com/plantnet/server/internal/platform/logger"
	"github.com/plantnet/server/internal/repository"
)

// UserService owns signup, verification requests, and the admin directory.
type UserService struct {
	users repository.UserRepository
	log   logger.Logger
}

func NewUserService(users repository.UserRepository, log logger.Logger) *UserService {
	return &UserService{users: users, log: log.With("service", "users")}
}

// GetRole returns the stored role for an email, or the empty role when the
// user is unknown. An unknown user is not an error here; the frontend probes
// this endpoint before the user record exists.
func (s *UserService) GetRole(ctx context.Context, email string) (entity.Role, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return user.Role, nil
}

// SignUp persists the user on first sight. Calling it again with the same
// email is a silent success returning the stored record unchanged.
func (s *UserService) SignUp(ctx context.Context, user *entity.User) (*entity.User, error) {
	if user.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	stored, created, err := s.users.CreateIfAbsent(ctx, user)
	if err != nil {
		return nil, err
	}
	if created {
		s.log.Infof("new user signed up: %s", stored.Email)
	}
	return stored, nil
}

// RequestVerification marks the user as awaiting a seller-status review.
// A second request while one is pending is rejected.
func (s *UserService) RequestVerification(ctx context.Context, email string) error {
	return s.users.RequestVerification(ctx, email)
}

// SetRoleAndVerify is the admin action that grants a role and marks the
// account verified in one update.
func (s *UserService) SetRoleAndVerify(ctx context.Context, email string, role entity.Role) error {
	if !entity.ValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	return s.users.SetRoleAndVerify(ctx, email, role)
}

// ListAllExcept returns the admin directory view, excluding the caller.
func (s *UserService) ListAllExcept(ctx context.Context, email string) ([]entity.User, error) {
	return s.users.ListAllExcept(ctx, email)
}
