package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'sessions' table. The cart is stored as a JSON
// document; the identity scalars are typed columns so they stay queryable.
type SessionModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	Role       string     `gorm:"type:varchar(20)"`
	UserName   string     `gorm:"type:varchar(100)"`
	Email      string     `gorm:"type:varchar(255)"`
	GuestEmail string     `gorm:"type:varchar(255)"`
	CartJSON   []byte     `gorm:"column:cart;type:jsonb;not null;default:'{}'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
