package impl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
)

// sessionServiceFixtures holds all test dependencies for session service tests.
type sessionServiceFixtures struct {
	service     usecase.SessionUsecase
	sessionRepo *fakeSessionRepo
}

func createTestSessionService(t *testing.T) sessionServiceFixtures {
	t.Helper()

	sessionRepo := newFakeSessionRepo()

	service := NewSessionService(SessionServiceParams{
		SessionRepo: sessionRepo,
		TokenSvc:    fakeTokenService{},
		Logger:      newDiscardLogger(),
	})

	return sessionServiceFixtures{
		service:     service,
		sessionRepo: sessionRepo,
	}
}

func TestSessionService_Resolve_EmptyTokenCreatesSession(t *testing.T) {
	fx := createTestSessionService(t)

	session, token, err := fx.service.Resolve(context.Background(), "")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Equal(t, "tok-"+session.ID.String(), token)
	assert.False(t, session.Authenticated())
	assert.True(t, session.Cart.IsEmpty())

	// The session is persisted, not just in memory.
	_, err = fx.sessionRepo.FindByID(context.Background(), session.ID)
	assert.NoError(t, err)
}

func TestSessionService_Resolve_ValidTokenReturnsExisting(t *testing.T) {
	fx := createTestSessionService(t)

	created, token, err := fx.service.Resolve(context.Background(), "")
	require.NoError(t, err)

	resolved, newToken, err := fx.service.Resolve(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, created.ID, resolved.ID)
	// No fresh cookie needs setting for a known session.
	assert.Empty(t, newToken)
}

func TestSessionService_Resolve_SlidesExpiry(t *testing.T) {
	fx := createTestSessionService(t)
	session := newTestSession(t, fx.sessionRepo)
	session.ExpiresAt = time.Now().Add(time.Minute)
	require.NoError(t, fx.sessionRepo.Save(context.Background(), session))

	resolved, _, err := fx.service.Resolve(context.Background(), "tok-"+session.ID.String())
	require.NoError(t, err)

	// Each resolved request pushes the deadline out by the full TTL.
	assert.True(t, resolved.ExpiresAt.After(time.Now().Add(30*time.Minute)))

	// The refresh is persisted, so a browse-only session survives too.
	stored, err := fx.sessionRepo.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.True(t, stored.ExpiresAt.After(time.Now().Add(30*time.Minute)))
}

func TestSessionService_Resolve_GarbageTokenCreatesFresh(t *testing.T) {
	fx := createTestSessionService(t)

	session, token, err := fx.service.Resolve(context.Background(), "not-a-token")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.NotEmpty(t, token)
}

func TestSessionService_Resolve_ExpiredSessionCreatesFresh(t *testing.T) {
	fx := createTestSessionService(t)
	stale := &entity.Session{
		ID:        uuid.New(),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, fx.sessionRepo.Create(context.Background(), stale))

	session, token, err := fx.service.Resolve(context.Background(), "tok-"+stale.ID.String())
	require.NoError(t, err)

	assert.NotEqual(t, stale.ID, session.ID)
	assert.NotEmpty(t, token)
}

func TestSessionService_Destroy(t *testing.T) {
	fx := createTestSessionService(t)
	session := signedInSession(t, fx.sessionRepo, "alice@example.com")

	require.NoError(t, fx.service.Destroy(context.Background(), session))

	assert.False(t, session.Authenticated())
	_, err := fx.sessionRepo.FindByID(context.Background(), session.ID)
	assert.Error(t, err)
}

func TestSessionService_PurgeExpired(t *testing.T) {
	fx := createTestSessionService(t)
	newTestSession(t, fx.sessionRepo)
	require.NoError(t, fx.sessionRepo.Create(context.Background(), &entity.Session{
		ID:        uuid.New(),
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, fx.sessionRepo.Create(context.Background(), &entity.Session{
		ID:        uuid.New(),
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	purged, err := fx.service.PurgeExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), purged)
	assert.Len(t, fx.sessionRepo.sessions, 1)
}
