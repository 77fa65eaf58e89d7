// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

const defaultSessionTTL = 24 * time.Hour

// jwtService signs session cookie tokens with the JWT standard. The token
// carries only the session id; everything else lives in the session store.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session secret must be provided")
	}

	ttl := defaultSessionTTL
	if cfg.Session != nil && cfg.Session.TTL > 0 {
		ttl = cfg.Session.TTL
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Session),
		ttl:    ttl,
	}, nil
}

// IssueSessionToken creates a signed token embedding the session id.
func (s *jwtService) IssueSessionToken(sessionID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sessionID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}

	return signed, nil
}

// ParseSessionToken verifies a token and extracts the session id.
func (s *jwtService) ParseSessionToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "parse session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid session token claims")
	}

	sid, ok := claims["sid"].(string)
	if !ok {
		return uuid.Nil, errors.New("session token missing sid claim")
	}

	sessionID, err := uuid.Parse(sid)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "parse session id")
	}

	return sessionID, nil
}

// SessionTTL returns the configured idle lifetime for sessions.
func (s *jwtService) SessionTTL() time.Duration {
	return s.ttl
}
