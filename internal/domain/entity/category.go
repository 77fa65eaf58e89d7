package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is a named grouping of products. The association to products is
// loose; deleting a category never cascades to catalog items.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
