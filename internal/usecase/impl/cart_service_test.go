package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"
)

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	service     usecase.CartUsecase
	productRepo *fakeProductRepo
	sessionRepo *fakeSessionRepo
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	t.Helper()

	productRepo := newFakeProductRepo()
	sessionRepo := newFakeSessionRepo()

	service := NewCartService(CartServiceParams{
		ProductRepo: productRepo,
		SessionRepo: sessionRepo,
		Logger:      newDiscardLogger(),
	})

	return cartServiceFixtures{
		service:     service,
		productRepo: productRepo,
		sessionRepo: sessionRepo,
	}
}

func TestCartService_AddProduct(t *testing.T) {
	fx := createTestCartService(t)
	session := newTestSession(t, fx.sessionRepo)
	mug := fx.productRepo.put(&entity.Product{Name: "Mug", Price: 150, Quantity: 5})

	require.NoError(t, fx.service.AddProduct(context.Background(), session, mug.ID, 2))

	line := session.Cart.Line(mug.ID)
	require.NotNil(t, line)
	assert.Equal(t, 2, line.Quantity)
	assert.InDelta(t, 150.0, line.UnitPrice, 0.001)
	assert.Equal(t, 1, fx.sessionRepo.saves)
}

func TestCartService_AddProduct_MergesExistingLine(t *testing.T) {
	fx := createTestCartService(t)
	session := newTestSession(t, fx.sessionRepo)
	mug := fx.productRepo.put(&entity.Product{Name: "Mug", Price: 150, Quantity: 5})

	require.NoError(t, fx.service.AddProduct(context.Background(), session, mug.ID, 2))
	require.NoError(t, fx.service.AddProduct(context.Background(), session, mug.ID, 1))

	require.Len(t, session.Cart.Lines, 1)
	assert.Equal(t, 3, session.Cart.Count())
}

func TestCartService_AddProduct_BeyondStock(t *testing.T) {
	fx := createTestCartService(t)
	session := newTestSession(t, fx.sessionRepo)
	mug := fx.productRepo.put(&entity.Product{Name: "Mug", Price: 150, Quantity: 2})

	err := fx.service.AddProduct(context.Background(), session, mug.ID, 3)
	assert.ErrorIs(t, err, domainerrors.ErrOutOfStock)
	assert.True(t, session.Cart.IsEmpty())
	assert.Equal(t, 0, fx.sessionRepo.saves)
}

func TestCartService_AddProduct_UnknownProduct(t *testing.T) {
	fx := createTestCartService(t)
	session := newTestSession(t, fx.sessionRepo)

	err := fx.service.AddProduct(context.Background(), session, uuid.New(), 1)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCartService_IncreaseQuantity_BoundedByLiveStock(t *testing.T) {
	fx := createTestCartService(t)
	session := newTestSession(t, fx.sessionRepo)
	mug := fx.productRepo.put(&entity.Product{Name: "Mug", Price: 150, Quantity: 5})
	require.NoError(t, fx.service.AddProduct(context.Background(), session, mug.ID, 2))

	require.NoError(t, fx.service.IncreaseQuantity(context.Background(), session, mug.ID))
	assert.Equal(t, 3, session.Cart.Line(mug.ID).Quantity)

	// Stock dropped since the line was added; the bump respects the live value.
	require.NoError(t, fx.productRepo.UpdateQuantity(context.Background(), mug.ID, 3))
	err := fx.service.IncreaseQuantity(context.Background(), session, mug.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOutOfStock)
	assert.Equal(t, 3, session.Cart.Line(mug.ID).Quantity)
}

func TestCartService_DecreaseQuantity_ReachingZeroRemovesLine(t *testing.T) {
	fx := createTestCartService(t)
	session := newTestSession(t, fx.sessionRepo)
	mug := fx.productRepo.put(&entity.Product{Name: "Mug", Price: 150, Quantity: 5})
	require.NoError(t, fx.service.AddProduct(context.Background(), session, mug.ID, 2))

	require.NoError(t, fx.service.DecreaseQuantity(context.Background(), session, mug.ID))
	assert.Equal(t, 1, session.Cart.Line(mug.ID).Quantity)

	require.NoError(t, fx.service.DecreaseQuantity(context.Background(), session, mug.ID))
	assert.Nil(t, session.Cart.Line(mug.ID))
	assert.True(t, session.Cart.IsEmpty())
}

func TestCartService_SetQuantity(t *testing.T) {
	fx := createTestCartService(t)
	session := newTestSession(t, fx.sessionRepo)
	mug := fx.productRepo.put(&entity.Product{Name: "Mug", Price: 150, Quantity: 5})
	require.NoError(t, fx.service.AddProduct(context.Background(), session, mug.ID, 1))

	require.NoError(t, fx.service.SetQuantity(context.Background(), session, mug.ID, 4))
	assert.Equal(t, 4, session.Cart.Line(mug.ID).Quantity)

	// Zero empties the line rather than erroring.
	require.NoError(t, fx.service.SetQuantity(context.Background(), session, mug.ID, 0))
	assert.Nil(t, session.Cart.Line(mug.ID))
}

func TestCartService_SetQuantity_BeyondStockLeavesCartUntouched(t *testing.T) {
	fx := createTestCartService(t)
	session := newTestSession(t, fx.sessionRepo)
	mug := fx.productRepo.put(&entity.Product{Name: "Mug", Price: 150, Quantity: 5})
	require.NoError(t, fx.service.AddProduct(context.Background(), session, mug.ID, 2))

	err := fx.service.SetQuantity(context.Background(), session, mug.ID, 9)
	assert.ErrorIs(t, err, domainerrors.ErrOutOfStock)
	assert.Equal(t, 2, session.Cart.Line(mug.ID).Quantity)
}

func TestCartService_RemoveProduct(t *testing.T) {
	fx := createTestCartService(t)
	session := newTestSession(t, fx.sessionRepo)
	mug := fx.productRepo.put(&entity.Product{Name: "Mug", Price: 150, Quantity: 5})
	tee := fx.productRepo.put(&entity.Product{Name: "Tee", Price: 300, Quantity: 5})
	require.NoError(t, fx.service.AddProduct(context.Background(), session, mug.ID, 2))
	require.NoError(t, fx.service.AddProduct(context.Background(), session, tee.ID, 1))

	require.NoError(t, fx.service.RemoveProduct(context.Background(), session, mug.ID))

	assert.Nil(t, session.Cart.Line(mug.ID))
	require.NotNil(t, session.Cart.Line(tee.ID))
	assert.Equal(t, 1, session.Cart.Count())
}

func TestCartService_ClearCart(t *testing.T) {
	fx := createTestCartService(t)
	session := newTestSession(t, fx.sessionRepo)
	mug := fx.productRepo.put(&entity.Product{Name: "Mug", Price: 150, Quantity: 5})
	require.NoError(t, fx.service.AddProduct(context.Background(), session, mug.ID, 2))

	require.NoError(t, fx.service.ClearCart(context.Background(), session))

	assert.True(t, session.Cart.IsEmpty())
	assert.InDelta(t, 0.0, session.Cart.Subtotal(), 0.001)
}

func TestCartService_MutationsPersistTheSession(t *testing.T) {
	fx := createTestCartService(t)
	session := newTestSession(t, fx.sessionRepo)
	mug := fx.productRepo.put(&entity.Product{Name: "Mug", Price: 150, Quantity: 5})

	require.NoError(t, fx.service.AddProduct(context.Background(), session, mug.ID, 2))
	require.NoError(t, fx.service.IncreaseQuantity(context.Background(), session, mug.ID))
	require.NoError(t, fx.service.ClearCart(context.Background(), session))

	assert.Equal(t, 3, fx.sessionRepo.saves)

	stored, err := fx.sessionRepo.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.True(t, stored.Cart.IsEmpty())
}
