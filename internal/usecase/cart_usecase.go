package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// CartUsecase defines the interface for shopping cart mutations. Every
// operation re-reads the live product so stock bounds reflect the current
// catalog, applies the change to the session's cart, and persists the
// session.
type CartUsecase interface {
	// AddProduct inserts a new cart line or increments an existing one.
	AddProduct(ctx context.Context, session *entity.Session, productID uuid.UUID, qty int) error

	// IncreaseQuantity bumps the matching line by one, bounded by live stock.
	IncreaseQuantity(ctx context.Context, session *entity.Session, productID uuid.UUID) error

	// DecreaseQuantity lowers the matching line by one; reaching zero removes
	// the line.
	DecreaseQuantity(ctx context.Context, session *entity.Session, productID uuid.UUID) error

	// SetQuantity sets the matching line to an exact quantity; zero or less
	// removes the line.
	SetQuantity(ctx context.Context, session *entity.Session, productID uuid.UUID, qty int) error

	// RemoveProduct deletes the matching line unconditionally.
	RemoveProduct(ctx context.Context, session *entity.Session, productID uuid.UUID) error

	// ClearCart empties the cart.
	ClearCart(ctx context.Context, session *entity.Session) error
}
