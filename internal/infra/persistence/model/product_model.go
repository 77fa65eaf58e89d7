// Package model contains the GORM persistence models mirroring the database
// tables. They are exported so the GORM Gen tool can reference them from
// other packages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:numeric(12,2);not null"`
	Quantity    int       `gorm:"not null;default:0"`
	ImagePath   string    `gorm:"type:varchar(500)"`
	// Loose association; the category may be deleted independently.
	CategoryID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
