package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleCustomer Role = "Customer"
	RoleSeller   Role = "Seller"
	RoleAdmin    Role = "Admin"
)

type UserStatus string

const (
	// StatusUnverified is the zero value; freshly signed-up users carry no
	// status field at all.
	StatusUnverified UserStatus = ""
	StatusRequested  UserStatus = "Requested"
	StatusVerified   UserStatus = "Verified"
)

// User is keyed by email. Records are created on first login and never
// deleted; role changes only happen through an admin action.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Role      Role               `bson:"role" json:"role"`
	Status    UserStatus         `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time          `bson:"timestamp" json:"timestamp"`
}

func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}
