package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session does not exist or has idled
// past its expiry deadline.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists browser sessions: the serialized cart plus the
// identity scalars. One row per browser.
type SessionRepository interface {
	// FindByID retrieves a live session. Expired sessions are reported as
	// ErrSessionNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// Create persists a new session.
	Create(ctx context.Context, session *entity.Session) error

	// Save writes the session's current cart and identity scalars back and
	// pushes the idle deadline forward.
	Save(ctx context.Context, session *entity.Session) error

	// Delete destroys a session, e.g. on logout.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes sessions past their idle deadline and returns
	// how many rows were purged.
	DeleteExpired(ctx context.Context) (int64, error)
}
