package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the per-browser state carried between requests: the shopping
// cart plus a handful of typed identity scalars. It replaces an untyped
// string-keyed session dictionary; the workflow layer only ever sees this
// struct.
type Session struct {
	ID         uuid.UUID
	UserID     *uuid.UUID // Set after login; nil for anonymous browsers.
	Role       Role       // Empty while anonymous.
	UserName   string
	Email      string // Email of the authenticated user.
	GuestEmail string // Email captured from a guest checkout in this session.
	Cart       Cart
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ExpiresAt  time.Time // Idle deadline; sessions past it are treated as absent.
}

// Authenticated reports whether a registered user is logged in on this
// session.
func (s *Session) Authenticated() bool {
	return s.UserID != nil
}

// Identified reports whether the session can check out: either a user is
// logged in or a guest email is already on file from a prior order.
func (s *Session) Identified() bool {
	return s.Authenticated() || s.GuestEmail != ""
}

// ContactEmail returns the email associated with this session, preferring
// the authenticated user's address over a guest email.
func (s *Session) ContactEmail() string {
	if s.Email != "" {
		return s.Email
	}

	return s.GuestEmail
}

// HasRole reports whether the session carries the given role.
func (s *Session) HasRole(role Role) bool {
	return s.Authenticated() && s.Role == role
}

// Expired reports whether the session idled past its deadline.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SignIn binds a user identity to the session.
func (s *Session) SignIn(user *User) {
	id := user.ID
	s.UserID = &id
	s.Role = user.Role
	s.UserName = user.Name
	s.Email = user.Email
}

// SignOut drops the identity scalars but keeps the session itself; callers
// normally destroy the row as well.
func (s *Session) SignOut() {
	s.UserID = nil
	s.Role = ""
	s.UserName = ""
	s.Email = ""
	s.GuestEmail = ""
	s.Cart.Clear()
}
