package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required for public self-registration.
// The role is always coerced to customer regardless of what was submitted.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in. The declared
// role must match the stored account role.
type LoginInput struct {
	Email    string
	Password string
	Role     entity.Role
}

// CreateUserInput defines the data for admin-side user creation, where any
// valid role may be assigned.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// UpdateUserInput defines the data for admin-side user edits. An empty
// Password keeps the stored hash.
type UpdateUserInput struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// UserUsecase defines the interface for identity-related business operations.
// This is the contract that the delivery layer (e.g., HTTP handlers) will depend on.
type UserUsecase interface {
	// Register self-registers a new customer account and signs it in on the
	// given session.
	Register(ctx context.Context, session *entity.Session, input *RegisterInput) (*entity.User, error)

	// Login verifies credentials and the declared role, binds the user to the
	// session and persists it. Unknown email, wrong password and role
	// mismatch are indistinguishable to the caller.
	Login(ctx context.Context, session *entity.Session, input *LoginInput) (*entity.User, error)

	// Logout destroys the session.
	Logout(ctx context.Context, session *entity.Session) error

	// ListUsers returns all user accounts.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// GetUser retrieves a single user account.
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// CreateUser creates an account with an explicit role.
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)

	// UpdateUser edits an account.
	UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error)

	// DeleteUser removes an account. Deleting the only remaining admin is
	// refused.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
