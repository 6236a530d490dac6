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
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validPlant(seller string) *entity.Plant {
	return &entity.Plant{
		PlantName: "Monstera Deliciosa",
		Category:  "Indoor",
		Price:     24.5,
		Quantity:  10,
		Seller:    entity.Seller{Name: "Green Corner", Email: seller},
	}
}

func TestCatalogService_Create_StampsSeller(t *testing.T) {
	repo := new(MockPlantRepository)
	svc := NewCatalogService(repo, logger.NewNop())

	id := primitive.NewObjectID()
	repo.On("Create", mock.Anything, mock.Anything).Return(id, nil)

	plant := validPlant("")
	got, err := svc.Create(context.Background(), plant, "seller@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "seller@example.com", plant.Seller.Email)
}

func TestCatalogService_Create_SellerMismatch(t *testing.T) {
	svc := NewCatalogService(new(MockPlantRepository), logger.NewNop())

	_, err := svc.Create(context.Background(), validPlant("other@example.com"), "seller@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCatalogService_Update_OwnershipEnforced(t *testing.T) {
	repo := new(MockPlantRepository)
	svc := NewCatalogService(repo, logger.NewNop())

	id := primitive.NewObjectID()
	stored := validPlant("owner@example.com")
	stored.ID = id
	repo.On("FindByID", mock.Anything, id).Return(stored, nil)

	err := svc.Update(context.Background(), id, validPlant("owner@example.com"), "intruder@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_Delete_Owner(t *testing.T) {
	repo := new(MockPlantRepository)
	svc := NewCatalogService(repo, logger.NewNop())

	id := primitive.NewObjectID()
	stored := validPlant("owner@example.com")
	stored.ID = id
	repo.On("FindByID", mock.Anything, id).Return(stored, nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	err := svc.Delete(context.Background(), id, "owner@example.com")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCatalogService_AdjustQuantity_SignConvention(t *testing.T) {
	repo := new(MockPlantRepository)
	svc := NewCatalogService(repo, logger.NewNop())

	id := primitive.NewObjectID()
	// A purchase of 3 arrives as -3, a restock of 3 as +3. The service never
	// flips signs on behalf of the caller.
	repo.On("AdjustQuantity", mock.Anything, id, -3).Return(nil).Once()
	repo.On("AdjustQuantity", mock.Anything, id, 3).Return(nil).Once()

	require.NoError(t, svc.AdjustQuantity(context.Background(), id, -3))
	require.NoError(t, svc.AdjustQuantity(context.Background(), id, 3))
	repo.AssertExpectations(t)
}

func TestCatalogService_AdjustQuantity_ZeroDelta(t *testing.T) {
	svc := NewCatalogService(new(MockPlantRepository), logger.NewNop())

	err := svc.AdjustQuantity(context.Background(), primitive.NewObjectID(), 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalogService_AdjustQuantity_Oversell(t *testing.T) {
	repo := new(MockPlantRepository)
	svc := NewCatalogService(repo, logger.NewNop())

	id := primitive.NewObjectID()
	repo.On("AdjustQuantity", mock.Anything, id, -100).Return(repository.ErrInsufficientStock)

	err := svc.AdjustQuantity(context.Background(), id, -100)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)
}
