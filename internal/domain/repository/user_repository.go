package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by email address. Lookup is
	// case-insensitive.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List returns all users.
	List(ctx context.Context) ([]*entity.User, error)

	// CountByRole returns how many users carry the given role.
	CountByRole(ctx context.Context, role entity.Role) (int64, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}
