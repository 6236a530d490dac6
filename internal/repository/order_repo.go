package repository

import (
	"context"

	"github.com/plantnet/server/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderRepository stores orders. The plant reference is a plain string and
// is never validated here; resolving it is the join engine's job.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error)
	ListByCustomer(ctx context.Context, email string) ([]entity.Order, error)
	ListBySeller(ctx context.Context, email string) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
