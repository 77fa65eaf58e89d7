package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"
)

// sessionContextKey is the echo.Context key the resolved session lives under.
const sessionContextKey = "session"

// SessionMiddleware resolves the browser session for every request. Handlers
// downstream always see a valid session; anonymous browsers get a fresh one.
type SessionMiddleware struct {
	sessionUsecase usecase.SessionUsecase
	cookieName     string
	cookieTTL      time.Duration
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessionUsecase usecase.SessionUsecase, cfg *config.Config) *SessionMiddleware {
	return &SessionMiddleware{
		sessionUsecase: sessionUsecase,
		cookieName:     cfg.Session.CookieName,
		cookieTTL:      cfg.Session.TTL,
	}
}

// Resolve loads the session behind the cookie, creating one when needed, and
// attaches it to the echo context. A newly issued session also sets the
// cookie on the response.
func (m *SessionMiddleware) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := ""
		if cookie, err := c.Cookie(m.cookieName); err == nil {
			token = cookie.Value
		}

		session, newToken, err := m.sessionUsecase.Resolve(c.Request().Context(), token)
		if err != nil {
			return err
		}

		if newToken != "" {
			c.SetCookie(m.sessionCookie(newToken, m.cookieTTL))
		}

		c.Set(sessionContextKey, session)

		return next(c)
	}
}

// RequireAuthenticated rejects requests whose session has no signed-in user.
func (m *SessionMiddleware) RequireAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := GetSession(c)
		if session == nil || !session.Authenticated() {
			return domainerrors.ErrUnauthenticated
		}

		return next(c)
	}
}

// RequireRole rejects requests whose session does not carry the given role.
// It must be used AFTER Resolve.
func (m *SessionMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := GetSession(c)
			if session == nil || !session.Authenticated() {
				return domainerrors.ErrUnauthenticated
			}
			if !session.HasRole(role) {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

// ClearCookie expires the session cookie on the response, used after logout.
func (m *SessionMiddleware) ClearCookie(c echo.Context) {
	c.SetCookie(m.sessionCookie("", -time.Hour))
}

func (m *SessionMiddleware) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// GetSession returns the session attached by Resolve, or nil when the route
// was registered outside the session group.
func GetSession(c echo.Context) *entity.Session {
	if session, ok := c.Get(sessionContextKey).(*entity.Session); ok {
		return session
	}

	return nil
}
