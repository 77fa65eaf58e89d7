package entity

import (
	"github.com/google/uuid"

	domainerrors "storefront/internal/domain/errors"
)

// CartLine is one product entry in a shopping cart. Name and unit price are
// snapshots taken when the line was created; they deliberately do not follow
// later catalog edits.
type CartLine struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
}

// Cart is the ordered collection of cart lines owned by a single browser
// session. It is a pure value type: every operation takes the live available
// stock as an argument and never touches storage itself. The zero value is an
// empty, usable cart.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Line returns the line for the given product, or nil if the product is not
// in the cart.
func (c *Cart) Line(productID uuid.UUID) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}

	return nil
}

// Add inserts a new line or increments an existing one. The combined quantity
// must not exceed the product's live available stock.
func (c *Cart) Add(product *Product, qty int) error {
	if qty <= 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("quantity must be positive")
	}

	line := c.Line(product.ID)
	existing := 0
	if line != nil {
		existing = line.Quantity
	}
	if existing+qty > product.Quantity {
		return domainerrors.NewOutOfStockError(product.Name, product.Quantity)
	}

	if line != nil {
		line.Quantity += qty

		return nil
	}

	c.Lines = append(c.Lines, CartLine{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    qty,
	})

	return nil
}

// Increase adjusts the matching line up by one, bounded by live stock.
// Increasing a product that is not in the cart is a no-op.
func (c *Cart) Increase(product *Product) error {
	line := c.Line(product.ID)
	if line == nil {
		return nil
	}
	if line.Quantity+1 > product.Quantity {
		return domainerrors.NewOutOfStockError(product.Name, product.Quantity)
	}
	line.Quantity++

	return nil
}

// Decrease adjusts the matching line down by one; reaching zero removes the
// line entirely.
func (c *Cart) Decrease(productID uuid.UUID) {
	line := c.Line(productID)
	if line == nil {
		return
	}
	if line.Quantity > 1 {
		line.Quantity--

		return
	}
	c.Remove(productID)
}

// SetQuantity sets the line to exactly qty. Zero or negative removes the
// line; qty above live stock fails without changing the cart.
func (c *Cart) SetQuantity(product *Product, qty int) error {
	line := c.Line(product.ID)
	if line == nil {
		return nil
	}
	if qty <= 0 {
		c.Remove(product.ID)

		return nil
	}
	if qty > product.Quantity {
		return domainerrors.NewOutOfStockError(product.Name, product.Quantity)
	}
	line.Quantity = qty

	return nil
}

// Remove deletes the matching line unconditionally.
func (c *Cart) Remove(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)

			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count returns the total number of items across all lines.
func (c *Cart) Count() int {
	total := 0
	for i := range c.Lines {
		total += c.Lines[i].Quantity
	}

	return total
}

// Subtotal returns the sum of unit price times quantity over all lines,
// using the snapshot prices carried by the lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for i := range c.Lines {
		total += c.Lines[i].UnitPrice * float64(c.Lines[i].Quantity)
	}

	return total
}
