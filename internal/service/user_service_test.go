package service

import (
	"context"
	"testing"

	"github.com/plantnet/server/internal/domain/entity"
	"github.com/plantnet/server/internal/platform/logger"
	"github.com/plantnet/server/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_SignUp_Idempotent(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, logger.NewNop())

	stored := &entity.User{Email: "buyer@example.com", Role: entity.RoleCustomer}

	// First call inserts, second returns the stored record unchanged.
	repo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(stored, true, nil).Once()
	repo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(stored, false, nil).Once()

	first, err := svc.SignUp(context.Background(), &entity.User{Email: "buyer@example.com"})
	require.NoError(t, err)
	second, err := svc.SignUp(context.Background(), &entity.User{Email: "buyer@example.com"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
}

func TestUserService_SignUp_MissingEmail(t *testing.T) {
	svc := NewUserService(new(MockUserRepository), logger.NewNop())

	_, err := svc.SignUp(context.Background(), &entity.User{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_GetRole_UnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)
	svc := NewUserService(repo, logger.NewNop())

	role, err := svc.GetRole(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Equal(t, entity.Role(""), role)
}

func TestUserService_RequestVerification_Duplicate(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("RequestVerification", mock.Anything, "seller@example.com").Return(repository.ErrAlreadyRequested)
	svc := NewUserService(repo, logger.NewNop())

	err := svc.RequestVerification(context.Background(), "seller@example.com")
	assert.ErrorIs(t, err, repository.ErrAlreadyRequested)
}

func TestUserService_SetRoleAndVerify(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("SetRoleAndVerify", mock.Anything, "seller@example.com", entity.RoleSeller).Return(nil)
	svc := NewUserService(repo, logger.NewNop())

	err := svc.SetRoleAndVerify(context.Background(), "seller@example.com", entity.RoleSeller)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUserService_SetRoleAndVerify_UnknownRole(t *testing.T) {
	svc := NewUserService(new(MockUserRepository), logger.NewNop())

	err := svc.SetRoleAndVerify(context.Background(), "seller@example.com", "Wizard")
	assert.ErrorIs(t, err, ErrValidation)
}
