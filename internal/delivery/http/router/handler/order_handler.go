package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
)

// orderItemView is the JSON shape of one order line.
type orderItemView struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
}

// orderView is the JSON shape of an order with its items.
type orderView struct {
	ID              uuid.UUID       `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerAddress string          `json:"customer_address"`
	CustomerPhone   string          `json:"customer_phone"`
	OrderDate       time.Time       `json:"order_date"`
	TotalAmount     float64         `json:"total_amount"`
	DeliveryCharge  float64         `json:"delivery_charge"`
	PaymentMethod   string          `json:"payment_method"`
	Status          string          `json:"status"`
	TrackingNumber  string          `json:"tracking_number"`
	Items           []orderItemView `json:"items"`
}

func toOrderView(o *entity.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	return orderView{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerAddress: o.CustomerAddress,
		CustomerPhone:   o.CustomerPhone,
		OrderDate:       o.OrderDate,
		TotalAmount:     o.TotalAmount,
		DeliveryCharge:  o.DeliveryCharge,
		PaymentMethod:   o.PaymentMethod,
		Status:          o.Status.String(),
		TrackingNumber:  o.TrackingNumber,
		Items:           items,
	}
}

func toOrderViews(orders []*entity.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}

	return views
}

// checkoutQuoteView is the JSON shape of the pre-confirmation quote.
type checkoutQuoteView struct {
	Lines       []entity.CartLine `json:"lines"`
	Subtotal    float64           `json:"subtotal"`
	DeliveryFee float64           `json:"delivery_fee"`
	Total       float64           `json:"total"`
	Zone        string            `json:"zone"`
	InsideFee   float64           `json:"inside_fee"`
	OutsideFee  float64           `json:"outside_fee"`
}

type placeOrderInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Zone    string `json:"zone"`
}

type updateStatusInput struct {
	Status string `json:"status"`
}

type updateOrderInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Status  string `json:"status"`
}

// OrderHandler holds dependencies for order workflow handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

// Quote returns the checkout preview for the session cart. The optional
// address query parameter drives the zone classification.
func (h *OrderHandler) Quote(c echo.Context) error {
	session := middleware.GetSession(c)

	quote, err := h.uc.QuoteCheckout(c.Request().Context(), session, c.QueryParam("address"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, checkoutQuoteView{
		Lines:       quote.Lines,
		Subtotal:    quote.Subtotal,
		DeliveryFee: quote.DeliveryFee,
		Total:       quote.Total,
		Zone:        quote.Zone.String(),
		InsideFee:   quote.InsideFee,
		OutsideFee:  quote.OutsideFee,
	}, "")
}

// Place confirms the checkout and creates the order.
func (h *OrderHandler) Place(c echo.Context) error {
	var input placeOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	session := middleware.GetSession(c)
	order, err := h.uc.PlaceOrder(c.Request().Context(), session, &usecase.PlaceOrderInput{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		Phone:   input.Phone,
		Zone:    input.Zone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toOrderView(order), "Order placed successfully")
}

// Confirmation shows one of the session owner's orders after checkout.
func (h *OrderHandler) Confirmation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	session := middleware.GetSession(c)
	order, err := h.uc.OrderConfirmation(c.Request().Context(), session, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderView(order), "")
}

// MyOrders lists the orders belonging to the session's email.
func (h *OrderHandler) MyOrders(c echo.Context) error {
	session := middleware.GetSession(c)

	orders, err := h.uc.MyOrders(c.Request().Context(), session)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderViews(orders), "")
}

// Cancel withdraws one of the session owner's orders.
func (h *OrderHandler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	session := middleware.GetSession(c)
	if err := h.uc.CancelOrder(c.Request().Context(), session, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order cancelled")
}

// Track looks an order up by tracking number.
func (h *OrderHandler) Track(c echo.Context) error {
	session := middleware.GetSession(c)

	order, err := h.uc.TrackOrder(c.Request().Context(), session, c.QueryParam("number"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderView(order), "")
}

// TrackingSlip streams the QR code PNG for a tracking number.
func (h *OrderHandler) TrackingSlip(c echo.Context) error {
	png, err := h.uc.TrackingSlip(c.Request().Context(), c.Param("number"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// List handles the admin order listing.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderViews(orders), "")
}

// Get handles the admin order details request.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderView(order), "")
}

// Update edits an order's contact fields and status.
func (h *OrderHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	var input updateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	order, err := h.uc.UpdateOrder(c.Request().Context(), &usecase.UpdateOrderInput{
		ID:      id,
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		Phone:   input.Phone,
		Status:  entity.OrderStatus(input.Status),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderView(order), "Order updated")
}

// UpdateStatus moves an order to a new status.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	var input updateStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := h.uc.UpdateOrderStatus(c.Request().Context(), id, entity.OrderStatus(input.Status)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order status updated")
}

// Delete removes an order permanently.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted")
}
