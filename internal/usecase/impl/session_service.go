package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	sessionRepo repository.SessionRepository
	tokenSvc    service.TokenService
	logger      *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	SessionRepo repository.SessionRepository
	TokenSvc    service.TokenService
	Logger      *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		sessionRepo: params.SessionRepo,
		tokenSvc:    params.TokenSvc,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resolve loads the session behind the cookie token. A missing, malformed or
// expired token silently yields a brand-new anonymous session and its token;
// a browser never sees a session error.
func (srv *sessionService) Resolve(ctx context.Context, token string) (*entity.Session, string, error) {
	if token != "" {
		sessionID, err := srv.tokenSvc.ParseSessionToken(token)
		if err == nil {
			session, err := srv.sessionRepo.FindByID(ctx, sessionID)
			if err == nil {
				// Sliding expiry: every resolved request pushes the deadline
				// out, and the refresh must survive read-only browsing.
				session.ExpiresAt = time.Now().Add(srv.tokenSvc.SessionTTL())
				if err := srv.sessionRepo.Save(ctx, session); err != nil {
					return nil, "", errors.Wrap(err, "failed to refresh session expiry")
				}

				return session, "", nil
			}
			if !errors.Is(err, repository.ErrSessionNotFound) {
				return nil, "", errors.Wrap(err, "failed to load session")
			}
		} else {
			srv.log(ctx).Debug("Rejected session token", slog.Any("error", err))
		}
	}

	return srv.create(ctx)
}

// Destroy deletes the session row and resets the in-memory state.
func (srv *sessionService) Destroy(ctx context.Context, session *entity.Session) error {
	if err := srv.sessionRepo.Delete(ctx, session.ID); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	session.SignOut()

	return nil
}

// PurgeExpired removes sessions past their idle deadline.
func (srv *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := srv.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to purge expired sessions")
	}

	if purged > 0 {
		srv.log(ctx).Info("Purged expired sessions", slog.Int64("count", purged))
	}

	return purged, nil
}

func (srv *sessionService) create(ctx context.Context) (*entity.Session, string, error) {
	now := time.Now()
	session := &entity.Session{
		ID:        uuid.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(srv.tokenSvc.SessionTTL()),
	}

	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", errors.Wrap(err, "failed to create session")
	}

	token, err := srv.tokenSvc.IssueSessionToken(session.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("New session issued", slog.Any("sessionID", session.ID))

	return session, token, nil
}
