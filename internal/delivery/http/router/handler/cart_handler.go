package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
)

// cartView is the JSON shape of the session cart.
type cartView struct {
	Lines    []entity.CartLine `json:"lines"`
	Count    int               `json:"count"`
	Subtotal float64           `json:"subtotal"`
}

func toCartView(cart *entity.Cart) cartView {
	lines := cart.Lines
	if lines == nil {
		lines = []entity.CartLine{}
	}

	return cartView{
		Lines:    lines,
		Count:    cart.Count(),
		Subtotal: cart.Subtotal(),
	}
}

type addToCartInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type setQuantityInput struct {
	Quantity int `json:"quantity"`
}

// CartHandler holds dependencies for session cart handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{uc: uc, logger: logger}
}

// Get returns the current session cart.
func (h *CartHandler) Get(c echo.Context) error {
	session := middleware.GetSession(c)

	return response.Success(c, http.StatusOK, toCartView(&session.Cart), "")
}

// Add puts a product into the cart or increments an existing line.
func (h *CartHandler) Add(c echo.Context) error {
	var input addToCartInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	session := middleware.GetSession(c)
	if err := h.uc.AddProduct(c.Request().Context(), session, input.ProductID, input.Quantity); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartView(&session.Cart), "Added to cart")
}

// Increase bumps a cart line by one.
func (h *CartHandler) Increase(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	session := middleware.GetSession(c)
	if err := h.uc.IncreaseQuantity(c.Request().Context(), session, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartView(&session.Cart), "")
}

// Decrease lowers a cart line by one; reaching zero removes the line.
func (h *CartHandler) Decrease(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	session := middleware.GetSession(c)
	if err := h.uc.DecreaseQuantity(c.Request().Context(), session, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartView(&session.Cart), "")
}

// SetQuantity sets a cart line to an exact quantity.
func (h *CartHandler) SetQuantity(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	var input setQuantityInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}

	session := middleware.GetSession(c)
	if err := h.uc.SetQuantity(c.Request().Context(), session, productID, input.Quantity); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartView(&session.Cart), "")
}

// Remove deletes a cart line.
func (h *CartHandler) Remove(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	session := middleware.GetSession(c)
	if err := h.uc.RemoveProduct(c.Request().Context(), session, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartView(&session.Cart), "Removed from cart")
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	session := middleware.GetSession(c)
	if err := h.uc.ClearCart(c.Request().Context(), session); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartView(&session.Cart), "Cart cleared")
}
