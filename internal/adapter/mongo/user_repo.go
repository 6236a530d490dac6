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

const userCollectionName = "users"

type userRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewUserRepository(db *mongo.Database, log logger.Logger) repository.UserRepository {
	collection := db.Collection(userCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Email is the natural key for the identity store.
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Warnf("failed to ensure unique email index (may already exist): %v", err)
	}

	return &userRepository{collection: collection, log: log.With("repo", "users")}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", email, err)
	}
	return &user, nil
}

func (r *userRepository) CreateIfAbsent(ctx context.Context, user *entity.User) (*entity.User, bool, error) {
	existing, err := r.FindByEmail(ctx, user.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Role == "" {
		user.Role = entity.RoleCustomer
	}
	user.CreatedAt = time.Now().UTC()

	_, err = r.collection.InsertOne(ctx, user)
	if err != nil {
		// Concurrent first-seen inserts race on the unique index; the loser
		// reads back the winner's record to stay idempotent.
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) && writeErr.HasErrorCode(11000) {
			existing, findErr := r.FindByEmail(ctx, user.Email)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to insert user %s: %w", user.Email, err)
	}

	r.log.Infof("user created: %s", user.Email)
	return user, true, nil
}

func (r *userRepository) RequestVerification(ctx context.Context, email string) error {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Status == entity.StatusRequested {
		return repository.ErrAlreadyRequested
	}

	update := bson.M{"$set": bson.M{"status": entity.StatusRequested}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to request verification for %s: %w", email, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) SetRoleAndVerify(ctx context.Context, email string, role entity.Role) error {
	update := bson.M{"$set": bson.M{
		"role":   role,
		"status": entity.StatusVerified,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to set role for %s: %w", email, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	r.log.Infof("user %s promoted to %s", email, role)
	return nil
}

func (r *userRepository) ListAllExcept(ctx context.Context, email string) ([]entity.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"email": bson.M{"$ne": email}})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []entity.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode listed users: %w", err)
	}
	return users, nil
}
