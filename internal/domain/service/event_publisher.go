package service

import (
	"context"
)

// OrderEvent describes an order lifecycle change for async observers
// (projections, notification fan-out). Events are published after the
// transaction commits and never participate in it.
type OrderEvent struct {
	RequestID      string  `json:"request_id,omitempty"` // For distributed tracing
	EventType      string  `json:"event_type"`
	OrderID        string  `json:"order_id"`
	TrackingNumber string  `json:"tracking_number"`
	CustomerEmail  string  `json:"customer_email"`
	TotalAmount    float64 `json:"total_amount"`
	ItemCount      int     `json:"item_count"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
