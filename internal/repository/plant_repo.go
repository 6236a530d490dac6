package repository

import (
	"context"

	"github.com/plantnet/server/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlantRepository is the catalog store.
type PlantRepository interface {
	Create(ctx context.Context, plant *entity.Plant) (primitive.ObjectID, error)
	FindAll(ctx context.Context) ([]entity.Plant, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Plant, error)

	// FindByIDs batch-loads plants for the order join. Missing IDs are simply
	// absent from the result, not an error.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]entity.Plant, error)

	FindBySeller(ctx context.Context, email string) ([]entity.Plant, error)
	Update(ctx context.Context, id primitive.ObjectID, plant *entity.Plant) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// AdjustQuantity applies an atomic quantity delta: negative for a sale,
	// positive for a restock. A negative delta that would drive stock below
	// zero fails with ErrInsufficientStock and leaves the document untouched.
	AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int) error
}
