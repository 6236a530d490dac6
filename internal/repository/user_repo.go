package repository

import (
	"context"

	"github.com/plantnet/server/internal/domain/entity"
)

// UserRepository is the identity store. Email is the natural key; the
// collection carries a unique index on it.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// CreateIfAbsent inserts the user unless a record with the same email
	// already exists, in which case the stored record is returned unchanged.
	// The boolean reports whether an insert happened.
	CreateIfAbsent(ctx context.Context, user *entity.User) (*entity.User, bool, error)

	// RequestVerification flips status to Requested. Returns
	// ErrAlreadyRequested when the user has a pending request, ErrNotFound
	// when no such user exists.
	RequestVerification(ctx context.Context, email string) error

	// SetRoleAndVerify sets the role and marks the user Verified in a single
	// document update.
	SetRoleAndVerify(ctx context.Context, email string, role entity.Role) error

	// ListAllExcept returns every user except the one with the given email.
	ListAllExcept(ctx context.Context, email string) ([]entity.User, error)
}
