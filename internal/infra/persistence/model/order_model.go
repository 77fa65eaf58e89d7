package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Contact fields are snapshots taken
// at checkout and never reference the users table.
type OrderModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerName    string    `gorm:"type:varchar(100);not null"`
	CustomerEmail   string    `gorm:"type:varchar(255);not null;index"`
	CustomerAddress string    `gorm:"type:varchar(500);not null"`
	CustomerPhone   string    `gorm:"type:varchar(30);not null"`
	OrderDate       time.Time `gorm:"not null;index"`
	TotalAmount     float64   `gorm:"type:numeric(12,2);not null"`
	DeliveryCharge  float64   `gorm:"type:numeric(12,2);not null"`
	PaymentMethod   string    `gorm:"type:varchar(50);not null"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
	TrackingNumber  string    `gorm:"type:varchar(50);unique;not null"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Name and price are frozen
// copies of the product at purchase time.
type OrderItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(200);not null"`
	UnitPrice   float64   `gorm:"type:numeric(12,2);not null"`
	Quantity    int       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
