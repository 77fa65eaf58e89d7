package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenService signs and verifies the opaque value carried by the session
// cookie. The token only proves that the embedded session id was issued by
// this server; all session state lives in the session store.
type TokenService interface {
	// IssueSessionToken creates a signed token embedding the session id.
	IssueSessionToken(sessionID uuid.UUID) (string, error)

	// ParseSessionToken verifies a token and extracts the session id.
	ParseSessionToken(token string) (uuid.UUID, error)

	// SessionTTL returns the configured idle lifetime for sessions.
	SessionTTL() time.Duration
}
