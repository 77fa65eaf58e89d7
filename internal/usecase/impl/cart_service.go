package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"
)

// cartService implements the CartUsecase interface. The cart itself is a
// pure value on the session; this service supplies the live product stock
// and persists the session after each mutation.
type cartService struct {
	productRepo repository.ProductRepository
	sessionRepo repository.SessionRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	SessionRepo repository.SessionRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		productRepo: params.ProductRepo,
		sessionRepo: params.SessionRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddProduct inserts a new cart line or increments an existing one.
func (srv *cartService) AddProduct(ctx context.Context, session *entity.Session, productID uuid.UUID, qty int) error {
	product, err := srv.loadProduct(ctx, productID)
	if err != nil {
		return err
	}

	if err := session.Cart.Add(product, qty); err != nil {
		return err
	}

	srv.log(ctx).Debug("Cart line added",
		slog.Any("sessionID", session.ID),
		slog.Any("productID", productID),
		slog.Int("qty", qty),
	)

	return srv.save(ctx, session)
}

// IncreaseQuantity bumps the matching line by one, bounded by live stock.
func (srv *cartService) IncreaseQuantity(ctx context.Context, session *entity.Session, productID uuid.UUID) error {
	product, err := srv.loadProduct(ctx, productID)
	if err != nil {
		return err
	}

	if err := session.Cart.Increase(product); err != nil {
		return err
	}

	return srv.save(ctx, session)
}

// DecreaseQuantity lowers the matching line by one; reaching zero removes the line.
func (srv *cartService) DecreaseQuantity(ctx context.Context, session *entity.Session, productID uuid.UUID) error {
	session.Cart.Decrease(productID)

	return srv.save(ctx, session)
}

// SetQuantity sets the matching line to an exact quantity.
func (srv *cartService) SetQuantity(ctx context.Context, session *entity.Session, productID uuid.UUID, qty int) error {
	product, err := srv.loadProduct(ctx, productID)
	if err != nil {
		return err
	}

	if err := session.Cart.SetQuantity(product, qty); err != nil {
		return err
	}

	return srv.save(ctx, session)
}

// RemoveProduct deletes the matching line unconditionally.
func (srv *cartService) RemoveProduct(ctx context.Context, session *entity.Session, productID uuid.UUID) error {
	session.Cart.Remove(productID)

	return srv.save(ctx, session)
}

// ClearCart empties the cart.
func (srv *cartService) ClearCart(ctx context.Context, session *entity.Session) error {
	session.Cart.Clear()

	return srv.save(ctx, session)
}

func (srv *cartService) loadProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for cart")
	}

	return product, nil
}

func (srv *cartService) save(ctx context.Context, session *entity.Session) error {
	if err := srv.sessionRepo.Save(ctx, session); err != nil {
		return errors.Wrap(err, "failed to persist cart")
	}

	return nil
}
