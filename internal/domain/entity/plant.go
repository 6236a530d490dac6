package entity

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seller is the denormalized owner snapshot embedded in a plant document.
type Seller struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
	Email string `bson:"email" json:"email"`
}

type Plant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PlantName   string             `bson:"plantName" json:"plantName"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Seller      Seller             `bson:"seller" json:"seller"`
	CreatedAt   time.Time          `bson:"timestamp" json:"timestamp"`
}

func (p *Plant) Validate() error {
	if p.PlantName == "" {
		return errors.New("plant name cannot be empty")
	}
	if p.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if p.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	if p.Seller.Email == "" {
		return errors.New("seller email cannot be empty")
	}
	return nil
}

// OwnedBy reports whether the plant belongs to the given seller email.
func (p *Plant) OwnedBy(email string) bool {
	return p.Seller.Email == email
}
