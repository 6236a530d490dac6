package service

import (
	"context"
	"fmt"

	"github.com/plantnet/server/internal/domain/entity"
	"github.com/plantnet/server/internal/platform/logger"
	"github.com/plantnet/server/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogService owns the plant inventory. Mutations are restricted to the
// owning seller; quantity deltas are open to any authenticated caller since
// buyers debit stock at checkout.
type CatalogService struct {
	plants repository.PlantRepository
	log    logger.Logger
}

func NewCatalogService(plants repository.PlantRepository, log logger.Logger) *CatalogService {
	return &CatalogService{plants: plants, log: log.With("service", "catalog")}
}

func (s *CatalogService) Create(ctx context.Context, plant *entity.Plant, sellerEmail string) (primitive.ObjectID, error) {
	if plant.Seller.Email == "" {
		plant.Seller.Email = sellerEmail
	}
	if plant.Seller.Email != sellerEmail {
		return primitive.NilObjectID, fmt.Errorf("%w: plant seller does not match caller", ErrForbidden)
	}
	if err := plant.Validate(); err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	id, err := s.plants.Create(ctx, plant)
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.log.Infof("plant %s created by %s", id.Hex(), sellerEmail)
	return id, nil
}

func (s *CatalogService) FindAll(ctx context.Context) ([]entity.Plant, error) {
	return s.plants.FindAll(ctx)
}

func (s *CatalogService) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Plant, error) {
	return s.plants.FindByID(ctx, id)
}

// Inventory lists the caller's own plants; the email always comes from the
// verified token claim, never from the request.
func (s *CatalogService) Inventory(ctx context.Context, sellerEmail string) ([]entity.Plant, error) {
	return s.plants.FindBySeller(ctx, sellerEmail)
}

func (s *CatalogService) Update(ctx context.Context, id primitive.ObjectID, plant *entity.Plant, sellerEmail string) error {
	existing, err := s.plants.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.OwnedBy(sellerEmail) {
		return fmt.Errorf("%w: plant belongs to another seller", ErrForbidden)
	}
	if err := plant.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.plants.Update(ctx, id, plant)
}

func (s *CatalogService) Delete(ctx context.Context, id primitive.ObjectID, sellerEmail string) error {
	existing, err := s.plants.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.OwnedBy(sellerEmail) {
		return fmt.Errorf("%w: plant belongs to another seller", ErrForbidden)
	}
	return s.plants.Delete(ctx, id)
}

// AdjustQuantity applies a signed stock delta. The convention is fixed:
// a purchase passes a negative delta, a restock or cancellation reversal
// passes the matching positive delta. Callers must compute the sign
// themselves rather than relying on this method to invert anything.
func (s *CatalogService) AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int) error {
	if delta == 0 {
		return fmt.Errorf("%w: quantity delta must be non-zero", ErrValidation)
	}
	return s.plants.AdjustQuantity(ctx, id, delta)
}
