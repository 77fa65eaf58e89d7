package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/pricing"
)

// --- Input/Output DTOs ---

// PlaceOrderInput defines the checkout form: contact details plus the
// user-declared delivery zone.
type PlaceOrderInput struct {
	Name    string
	Email   string
	Address string
	Phone   string
	Zone    string
}

// CheckoutQuote is the order preview shown before confirmation. Both fee
// tiers are included so the checkout page can show what each zone costs.
type CheckoutQuote struct {
	Lines       []entity.CartLine
	Subtotal    float64
	DeliveryFee float64
	Total       float64
	Zone        pricing.Zone
	InsideFee   float64
	OutsideFee  float64
}

// UpdateOrderInput defines the admin order edit form: contact fields plus the
// lifecycle status.
type UpdateOrderInput struct {
	ID      uuid.UUID
	Name    string
	Email   string
	Address string
	Phone   string
	Status  entity.OrderStatus
}

// OrderUsecase defines the interface for the order workflow: checkout,
// customer self-service and admin management.
type OrderUsecase interface {
	// QuoteCheckout classifies the address, prices the delivery fee and
	// totals the cart without writing anything. The session must be
	// identified (a logged-in user or a guest with an email on file).
	QuoteCheckout(ctx context.Context, session *entity.Session, address string) (*CheckoutQuote, error)

	// PlaceOrder requires an identified session like QuoteCheckout. It
	// validates the declared zone against the address, then
	// atomically re-checks stock under row locks, creates the order with its
	// items and decrements stock. Nothing is written when any line fails.
	// After commit the cart is cleared and an order placed event is emitted.
	PlaceOrder(ctx context.Context, session *entity.Session, input *PlaceOrderInput) (*entity.Order, error)

	// OrderConfirmation fetches one of the session owner's orders with its
	// items, for the post-checkout confirmation page.
	OrderConfirmation(ctx context.Context, session *entity.Session, orderID uuid.UUID) (*entity.Order, error)

	// MyOrders lists the orders placed with the session's contact email.
	MyOrders(ctx context.Context, session *entity.Session) ([]*entity.Order, error)

	// CancelOrder cancels one of the session owner's orders. Cancelling an
	// order that already reached a terminal status is a silent no-op.
	CancelOrder(ctx context.Context, session *entity.Session, orderID uuid.UUID) error

	// TrackOrder looks up an order by tracking number. The session must be
	// identified and the order's email must match it; admins may track any
	// order.
	TrackOrder(ctx context.Context, session *entity.Session, trackingNumber string) (*entity.Order, error)

	// TrackingSlip renders a QR code image for an order's tracking number.
	TrackingSlip(ctx context.Context, trackingNumber string) ([]byte, error)

	// ListOrders returns all orders, newest first.
	ListOrders(ctx context.Context) ([]*entity.Order, error)

	// GetOrder retrieves a single order with its items.
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// UpdateOrder edits an order's contact fields and status.
	UpdateOrder(ctx context.Context, input *UpdateOrderInput) (*entity.Order, error)

	// UpdateOrderStatus moves an order to the given status.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// DeleteOrder removes an order permanently.
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
