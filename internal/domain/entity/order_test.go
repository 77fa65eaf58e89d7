package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusProcessing.IsValid())
	assert.True(t, OrderStatusDelivered.IsValid())
	assert.True(t, OrderStatusCancelled.IsValid())
	assert.False(t, OrderStatus("Lost").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatus_Cancellable(t *testing.T) {
	assert.True(t, OrderStatusPending.Cancellable())
	assert.True(t, OrderStatusProcessing.Cancellable())
	assert.False(t, OrderStatusDelivered.Cancellable())
	assert.False(t, OrderStatusCancelled.Cancellable())
}

func TestOrder_Cancel(t *testing.T) {
	order := &Order{Status: OrderStatusPending}

	assert.True(t, order.Cancel())
	assert.Equal(t, OrderStatusCancelled, order.Status)
}

func TestOrder_Cancel_TerminalIsNoOp(t *testing.T) {
	delivered := &Order{Status: OrderStatusDelivered}
	assert.False(t, delivered.Cancel())
	assert.Equal(t, OrderStatusDelivered, delivered.Status)

	cancelled := &Order{Status: OrderStatusCancelled}
	assert.False(t, cancelled.Cancel())
	assert.Equal(t, OrderStatusCancelled, cancelled.Status)
}
