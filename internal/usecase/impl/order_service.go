package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/pricing"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager   repository.TransactionManager
	orderRepo   repository.OrderRepository
	sessionRepo repository.SessionRepository
	policy      *pricing.Policy
	publisher   service.EventPublisher
	qrService   service.QRCodeService
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	OrderRepo   repository.OrderRepository
	SessionRepo repository.SessionRepository
	Policy      *pricing.Policy
	Publisher   service.EventPublisher
	QRService   service.QRCodeService
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService. It receives all dependencies as interfaces.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:   params.TxManager,
		orderRepo:   params.OrderRepo,
		sessionRepo: params.SessionRepo,
		policy:      params.Policy,
		publisher:   params.Publisher,
		qrService:   params.QRService,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// QuoteCheckout classifies the address, prices the delivery fee and totals
// the cart without writing anything.
func (srv *orderService) QuoteCheckout(_ context.Context, session *entity.Session, address string) (*usecase.CheckoutQuote, error) {
	if !session.Identified() {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "checkout requires an identified session")
	}
	if session.Cart.IsEmpty() {
		return nil, errors.Wrap(domainerrors.ErrEmptyCart, "nothing to check out")
	}

	zone := srv.policy.Classify(address)
	fee := srv.policy.Fee(zone)
	subtotal := session.Cart.Subtotal()
	insideFee, outsideFee := srv.policy.Fees()

	return &usecase.CheckoutQuote{
		Lines:       session.Cart.Lines,
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal + fee,
		Zone:        zone,
		InsideFee:   insideFee,
		OutsideFee:  outsideFee,
	}, nil
}

// PlaceOrder turns the session's cart into a confirmed order. All stock
// checks and decrements run under row locks inside one transaction; any
// shortfall aborts the whole order before a single row is written.
func (srv *orderService) PlaceOrder(ctx context.Context, session *entity.Session, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	if !session.Identified() {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "checkout requires an identified session")
	}
	if session.Cart.IsEmpty() {
		return nil, errors.Wrap(domainerrors.ErrEmptyCart, "cannot place an order with an empty cart")
	}

	if err := validateOrderContact(input); err != nil {
		return nil, err
	}

	zone, ok := pricing.ParseZone(input.Zone)
	if !ok {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown delivery zone")
	}
	if err := srv.policy.Validate(input.Address, zone); err != nil {
		return nil, err
	}

	// A signed-in user's account email always wins over the form value;
	// guests fall back to the email already on file from a prior order.
	email := session.ContactEmail()
	if !session.Authenticated() {
		if formEmail := strings.TrimSpace(input.Email); formEmail != "" {
			email = formEmail
		}
	}

	fee := srv.policy.Fee(zone)
	order := &entity.Order{
		CustomerName:    strings.TrimSpace(input.Name),
		CustomerEmail:   email,
		CustomerAddress: strings.TrimSpace(input.Address),
		CustomerPhone:   strings.TrimSpace(input.Phone),
		OrderDate:       time.Now().UTC(),
		DeliveryCharge:  fee,
		PaymentMethod:   entity.PaymentMethodCashOnDelivery,
		Status:          entity.OrderStatusPending,
		TrackingNumber:  newTrackingNumber(),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		// Lock and validate every line before writing anything, so a
		// shortfall on the last line cannot leave earlier decrements behind.
		type lockedLine struct {
			productID uuid.UUID
			remaining int
		}
		locked := make([]lockedLine, 0, len(session.Cart.Lines))
		items := make([]entity.OrderItem, 0, len(session.Cart.Lines))
		var subtotal float64

		for _, line := range session.Cart.Lines {
			product, err := productRepo.FindByIDForUpdate(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrNotFound.WrapMessage("product " + line.ProductName + " is no longer available")
				}

				return errors.Wrap(err, "failed to lock product for checkout")
			}

			if product.Quantity < line.Quantity {
				return domainerrors.NewOutOfStockError(product.Name, product.Quantity)
			}

			locked = append(locked, lockedLine{
				productID: product.ID,
				remaining: product.Quantity - line.Quantity,
			})
			items = append(items, entity.OrderItem{
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				UnitPrice:   line.UnitPrice,
				Quantity:    line.Quantity,
			})
			subtotal += line.UnitPrice * float64(line.Quantity)
		}

		order.Items = items
		order.TotalAmount = subtotal + fee

		if err := repoFactory.OrderRepo().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		for _, ll := range locked {
			if err := productRepo.UpdateQuantity(ctx, ll.productID, ll.remaining); err != nil {
				return errors.Wrap(err, "failed to decrement stock")
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Order placement failed", slog.Any("sessionID", session.ID), slog.Any("error", err))

		return nil, err
	}

	// The order is committed; session bookkeeping must not undo it.
	if !session.Authenticated() {
		session.GuestEmail = email
	}
	session.Cart.Clear()
	if err := srv.sessionRepo.Save(ctx, session); err != nil {
		srv.log(ctx).Warn("Failed to persist session after checkout",
			slog.Any("sessionID", session.ID), slog.Any("error", err))
	}

	srv.publishOrderEvent(ctx, constants.EventOrderPlaced, order)

	srv.log(ctx).Info("Order placed",
		slog.Any("orderID", order.ID),
		slog.String("trackingNumber", order.TrackingNumber),
		slog.Float64("total", order.TotalAmount),
	)

	return order, nil
}

// OrderConfirmation fetches one of the session owner's orders with its items.
// Orders belonging to someone else are indistinguishable from absent ones.
func (srv *orderService) OrderConfirmation(ctx context.Context, session *entity.Session, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if !srv.mayAccess(session, order) {
		return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
	}

	return order, nil
}

// MyOrders lists the orders placed with the session's contact email.
func (srv *orderService) MyOrders(ctx context.Context, session *entity.Session) ([]*entity.Order, error) {
	if !session.Identified() {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no orders without an identity")
	}

	orders, err := srv.orderRepo.ListByEmail(ctx, session.ContactEmail())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// CancelOrder cancels one of the session owner's orders. Orders already in a
// terminal status are left untouched without an error.
func (srv *orderService) CancelOrder(ctx context.Context, session *entity.Session, orderID uuid.UUID) error {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return errors.Wrap(err, "failed to load order for cancellation")
	}

	if !srv.mayAccess(session, order) {
		// Hide other customers' orders entirely.
		return domainerrors.ErrNotFound.WrapMessage("order not found")
	}

	if !order.Cancel() {
		srv.log(ctx).Debug("Cancel ignored for terminal order", slog.Any("orderID", orderID))

		return nil
	}

	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return errors.Wrap(err, "failed to persist cancellation")
	}

	srv.publishOrderEvent(ctx, constants.EventOrderCancelled, order)

	srv.log(ctx).Info("Order cancelled", slog.Any("orderID", orderID))

	return nil
}

// TrackOrder looks up an order by tracking number for an identified session.
func (srv *orderService) TrackOrder(ctx context.Context, session *entity.Session, trackingNumber string) (*entity.Order, error) {
	if !session.Identified() {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "tracking requires an identified session")
	}

	order, err := srv.orderRepo.FindByTrackingNumber(ctx, strings.TrimSpace(trackingNumber))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("no order with this tracking number")
		}

		return nil, errors.Wrap(err, "failed to look up tracking number")
	}

	if !srv.mayAccess(session, order) {
		return nil, domainerrors.ErrNotFound.WrapMessage("no order with this tracking number")
	}

	return order, nil
}

// TrackingSlip renders a QR code image for an order's tracking number.
func (srv *orderService) TrackingSlip(ctx context.Context, trackingNumber string) ([]byte, error) {
	// Verify the tracking number exists before rendering anything.
	if _, err := srv.orderRepo.FindByTrackingNumber(ctx, strings.TrimSpace(trackingNumber)); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("no order with this tracking number")
		}

		return nil, errors.Wrap(err, "failed to look up tracking number")
	}

	png, err := srv.qrService.GenerateTrackingQR(strings.TrimSpace(trackingNumber))
	if err != nil {
		return nil, errors.Wrap(err, "failed to render tracking slip")
	}

	return png, nil
}

// ListOrders returns all orders, newest first.
func (srv *orderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder retrieves a single order with its items.
func (srv *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to get order")
	}

	return order, nil
}

// UpdateOrder edits an order's contact fields and status (admin-side).
func (srv *orderService) UpdateOrder(ctx context.Context, input *usecase.UpdateOrderInput) (*entity.Order, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown order status")
	}
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Address) == "" ||
		strings.TrimSpace(input.Phone) == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("name, email, address and phone are required")
	}

	order, err := srv.orderRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to load order for update")
	}

	order.CustomerName = strings.TrimSpace(input.Name)
	order.CustomerEmail = strings.TrimSpace(input.Email)
	order.CustomerAddress = strings.TrimSpace(input.Address)
	order.CustomerPhone = strings.TrimSpace(input.Phone)
	order.Status = input.Status

	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}

	srv.log(ctx).Info("Order updated", slog.Any("orderID", order.ID))

	return order, nil
}

// UpdateOrderStatus moves an order to the given status.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	if !status.IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown order status")
	}

	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return errors.Wrap(err, "failed to load order for status update")
	}

	order.Status = status
	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status updated", slog.Any("orderID", id), slog.String("status", status.String()))

	return nil
}

// DeleteOrder removes an order permanently.
func (srv *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := srv.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return errors.Wrap(err, "failed to delete order")
	}

	srv.log(ctx).Info("Order deleted", slog.Any("orderID", id))

	return nil
}

// mayAccess reports whether the session may see the given order: admins see
// everything, everyone else only orders carrying their contact email.
func (srv *orderService) mayAccess(session *entity.Session, order *entity.Order) bool {
	if session.HasRole(entity.RoleAdmin) {
		return true
	}

	email := session.ContactEmail()

	return email != "" && strings.EqualFold(order.CustomerEmail, email)
}

// publishOrderEvent emits an order lifecycle event. Publishing is
// best-effort: a broker failure is logged, never surfaced to the customer.
func (srv *orderService) publishOrderEvent(ctx context.Context, eventType string, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:      deliverycontext.GetRequestIDFromContext(ctx),
		EventType:      eventType,
		OrderID:        order.ID.String(),
		TrackingNumber: order.TrackingNumber,
		CustomerEmail:  order.CustomerEmail,
		TotalAmount:    order.TotalAmount,
		ItemCount:      len(order.Items),
	}

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order event",
			slog.String("eventType", eventType),
			slog.Any("orderID", order.ID),
			slog.Any("error", err),
		)
	}
}

func validateOrderContact(input *usecase.PlaceOrderInput) error {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Address) == "" ||
		strings.TrimSpace(input.Phone) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("name, address and phone are required")
	}

	return nil
}

// newTrackingNumber builds a human-presentable tracking number. The random
// hex tail keeps two orders placed in the same second distinct.
func newTrackingNumber() string {
	return "ORD-" + time.Now().UTC().Format("20060102150405") + "-" + uuid.New().String()[:6]
}
