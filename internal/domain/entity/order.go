package entity

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderDelivered  OrderStatus = "Delivered"
)

// Customer is the buyer snapshot embedded in an order document.
type Customer struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email" json:"email"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

// Order references its plant through PlantID, a hex string coerced to an
// ObjectID at join time. The reference is soft: the plant may have been
// deleted since the order was placed.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Customer  Customer           `bson:"customer" json:"customer"`
	PlantID   string             `bson:"plantId" json:"plantId"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Seller    string             `bson:"seller" json:"seller"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Status    OrderStatus        `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"timestamp" json:"timestamp"`
}

func (o *Order) Validate() error {
	if o.Customer.Email == "" {
		return errors.New("customer email cannot be empty")
	}
	if o.PlantID == "" {
		return errors.New("plant id cannot be empty")
	}
	if o.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}

// CancellableByCustomer reports whether the buyer may still cancel.
// Delivered orders are final.
func (o *Order) CancellableByCustomer() bool {
	return o.Status != OrderDelivered
}

// OrderView is an order augmented with display fields from the referenced
// plant. Produced by the join in OrderService, never stored.
type OrderView struct {
	Order         `bson:",inline"`
	PlantName     string `json:"plantName"`
	PlantImage    string `json:"plantImage,omitempty"`
	PlantCategory string `json:"plantCategory,omitempty"`
}
