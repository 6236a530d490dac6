package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/plantnet/server/internal/domain/entity"
	"github.com/plantnet/server/internal/platform/logger"
	"github.com/plantnet/server/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const orderCollectionName = "orders"

type orderRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewOrderRepository(db *mongo.Database, log logger.Logger) repository.OrderRepository {
	return &orderRepository{
		collection: db.Collection(orderCollectionName),
		log:        log.With("repo", "orders"),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) (primitive.ObjectID, error) {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.Status == "" {
		order.Status = entity.OrderPending
	}
	order.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert order: %w", err)
	}
	return order.ID, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	var order entity.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", id.Hex(), err)
	}
	return &order, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, email string) ([]entity.Order, error) {
	return r.list(ctx, bson.M{"customer.email": email})
}

func (r *orderRepository) ListBySeller(ctx context.Context, email string) ([]entity.Order, error) {
	return r.list(ctx, bson.M{"seller": email})
}

func (r *orderRepository) list(ctx context.Context, filter bson.M) ([]entity.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []entity.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode listed orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus) error {
	update := bson.M{"$set": bson.M{"status": status}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update order %s status: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
