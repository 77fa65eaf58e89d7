package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// SessionUsecase defines the interface for browser session management. The
// delivery layer resolves one session per request and hands it to the other
// usecases.
type SessionUsecase interface {
	// Resolve loads the session referenced by the cookie token, or creates a
	// fresh anonymous session when the token is missing, invalid or expired.
	// The returned token is non-empty only when a new session was issued.
	Resolve(ctx context.Context, token string) (*entity.Session, string, error)

	// Destroy deletes the session row, e.g. on logout.
	Destroy(ctx context.Context, session *entity.Session) error

	// PurgeExpired removes sessions past their idle deadline and returns the
	// purged row count.
	PurgeExpired(ctx context.Context) (int64, error)
}
