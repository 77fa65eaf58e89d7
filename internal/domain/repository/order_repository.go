package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
// Orders are aggregates: Create persists the order row together with all of
// its items.
type OrderRepository interface {
	// FindByID retrieves an order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByTrackingNumber retrieves an order with its items by tracking
	// number. An unknown number returns ErrOrderNotFound.
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Order, error)

	// ListByEmail returns all orders placed with the given customer email,
	// newest first.
	ListByEmail(ctx context.Context, email string) ([]*entity.Order, error)

	// List returns all orders, newest first.
	List(ctx context.Context) ([]*entity.Order, error)

	// Create persists a new order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	// Update modifies an order's status and contact fields. Items are
	// immutable and never touched.
	Update(ctx context.Context, order *entity.Order) error

	// Delete removes an order permanently, deleting its items first to
	// satisfy referential integrity.
	Delete(ctx context.Context, id uuid.UUID) error
}
