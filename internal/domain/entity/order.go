package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents where an order sits in its lifecycle.
type OrderStatus string

const (
	// OrderStatusPending is the initial status of every placed order.
	OrderStatusPending OrderStatus = "Pending"
	// OrderStatusProcessing means the order has been picked up for fulfilment.
	OrderStatusProcessing OrderStatus = "Processing"
	// OrderStatusDelivered is terminal; the order reached the customer.
	OrderStatusDelivered OrderStatus = "Delivered"
	// OrderStatusCancelled is terminal; the order was withdrawn.
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Cancellable reports whether an order in this status may still be cancelled.
// Delivered and Cancelled are terminal.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// PaymentMethodCashOnDelivery is the only payment method the storefront
// supports.
const PaymentMethodCashOnDelivery = "Cash on Delivery"

// Order is a confirmed purchase. Contact fields are captured at checkout and
// are not required to reference a registered user. TotalAmount already
// includes DeliveryCharge.
type Order struct {
	ID              uuid.UUID
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
	CustomerPhone   string
	OrderDate       time.Time
	TotalAmount     float64
	DeliveryCharge  float64
	PaymentMethod   string
	Status          OrderStatus
	TrackingNumber  string // Unique, human-presentable; assigned at creation.
	Items           []OrderItem
}

// OrderItem is one line of an order. Name and price are snapshots decoupled
// from the live product so historical orders stay stable under catalog edits.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   float64
	Quantity    int
}

// Cancel transitions the order to Cancelled when its current status allows
// it. The returned boolean reports whether a transition actually happened;
// calling Cancel on a terminal order is a deliberate no-op, not an error.
func (o *Order) Cancel() bool {
	if !o.Status.Cancellable() {
		return false
	}
	o.Status = OrderStatusCancelled

	return true
}
