// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account in the storefront. The password is never held
// here in plaintext; PasswordHash carries the salted bcrypt digest.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Name         string    // The user's display name.
	Email        string    // Login identifier; unique, matched case-insensitively.
	PasswordHash string    // Salted one-way hash of the user's password.
	Role         Role      // Closed role enumeration: customer, seller or admin.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// IsAdmin reports whether this account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
