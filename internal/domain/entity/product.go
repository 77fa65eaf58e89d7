package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item offered for sale. Quantity is the live available
// stock; it is only ever decremented by a confirmed order and must never go
// negative.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64    // Unit price, always positive.
	Quantity    int        // Available stock, never negative.
	ImagePath   string     // Public relative path of the product image, may be empty.
	CategoryID  *uuid.UUID // Loose association; not enforced as a hard foreign key.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InStock reports whether the requested quantity can currently be fulfilled.
func (p *Product) InStock(qty int) bool {
	return qty > 0 && qty <= p.Quantity
}
