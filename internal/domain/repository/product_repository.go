// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the standard operations for catalog persistence.
// The application layer depends on this interface, not the concrete implementation.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDForUpdate retrieves a product and row-locks it for the duration
	// of the surrounding transaction. Checkout uses this so the stock
	// check-then-decrement cannot interleave with a concurrent order.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List returns all products, newest first.
	List(ctx context.Context) ([]*entity.Product, error)

	// Search returns products whose name or description contains the query,
	// case-insensitively.
	Search(ctx context.Context, query string) ([]*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// UpdateQuantity sets the stored available quantity of a product.
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error

	// Delete removes a product permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}
