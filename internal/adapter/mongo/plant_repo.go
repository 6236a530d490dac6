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
)

const plantCollectionName = "plants"

type plantRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewPlantRepository(db *mongo.Database, log logger.Logger) repository.PlantRepository {
	return &plantRepository{
		collection: db.Collection(plantCollectionName),
		log:        log.With("repo", "plants"),
	}
}

func (r *plantRepository) Create(ctx context.Context, plant *entity.Plant) (primitive.ObjectID, error) {
	if plant.ID.IsZero() {
		plant.ID = primitive.NewObjectID()
	}
	plant.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, plant)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert plant: %w", err)
	}
	return plant.ID, nil
}

func (r *plantRepository) FindAll(ctx context.Context) ([]entity.Plant, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	defer cursor.Close(ctx)

	var plants []entity.Plant
	if err := cursor.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("failed to decode plants: %w", err)
	}
	return plants, nil
}

func (r *plantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Plant, error) {
	var plant entity.Plant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plant %s: %w", id.Hex(), err)
	}
	return &plant, nil
}

func (r *plantRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]entity.Plant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to batch-load plants: %w", err)
	}
	defer cursor.Close(ctx)

	var plants []entity.Plant
	if err := cursor.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("failed to decode batched plants: %w", err)
	}
	return plants, nil
}

func (r *plantRepository) FindBySeller(ctx context.Context, email string) ([]entity.Plant, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"seller.email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to list plants for seller %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	var plants []entity.Plant
	if err := cursor.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("failed to decode seller plants: %w", err)
	}
	return plants, nil
}

func (r *plantRepository) Update(ctx context.Context, id primitive.ObjectID, plant *entity.Plant) error {
	update := bson.M{"$set": bson.M{
		"plantName":   plant.PlantName,
		"category":    plant.Category,
		"description": plant.Description,
		"price":       plant.Price,
		"quantity":    plant.Quantity,
		"image":       plant.Image,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update plant %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *plantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete plant %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *plantRepository) AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		// Check-and-decrement in one operation so concurrent sales cannot
		// drive stock negative.
		filter["quantity"] = bson.M{"$gte": -delta}
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"quantity": delta}})
	if err != nil {
		return fmt.Errorf("failed to adjust quantity for plant %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing plant from a rejected oversell.
		if _, findErr := r.FindByID(ctx, id); errors.Is(findErr, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return repository.ErrInsufficientStock
	}
	return nil
}
