package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"
)

// sessionRepository implements the repository.SessionRepository interface using GORM.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// FindByID retrieves a live session. Expired rows are reported as absent so
// callers never observe a stale cart or identity.
func (repo *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		First(&sessionM, "id = ? AND expires_at > ?", id, time.Now()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by id")
	}

	return toSessionDomain(&sessionM)
}

// Create persists a new session.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM, err := fromSessionDomain(session)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	session.CreatedAt = sessionM.CreatedAt
	session.UpdatedAt = sessionM.UpdatedAt

	return nil
}

// Save writes the session's current cart and identity scalars back and
// pushes the idle deadline forward.
func (repo *sessionRepository) Save(ctx context.Context, session *entity.Session) error {
	sessionM, err := fromSessionDomain(session)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).Model(&model.SessionModel{}).
		Where("id = ?", session.ID).
		Updates(map[string]any{
			"user_id":     sessionM.UserID,
			"role":        sessionM.Role,
			"user_name":   sessionM.UserName,
			"email":       sessionM.Email,
			"guest_email": sessionM.GuestEmail,
			"cart":        sessionM.CartJSON,
			"expires_at":  sessionM.ExpiresAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to save session")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// Delete destroys a session, e.g. on logout.
func (repo *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.SessionModel{}, "id = ?", id).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete session")
	}

	return nil
}

// DeleteExpired removes sessions past their idle deadline and returns how
// many rows were purged.
func (repo *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).
		Delete(&model.SessionModel{}, "expires_at <= ?", time.Now())
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete expired sessions")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

func toSessionDomain(data *model.SessionModel) (*entity.Session, error) {
	if data == nil {
		return nil, nil
	}

	var cart entity.Cart
	if len(data.CartJSON) > 0 {
		if err := json.Unmarshal(data.CartJSON, &cart); err != nil {
			return nil, errors.Wrap(err, "failed to decode session cart")
		}
	}

	return &entity.Session{
		ID:         data.ID,
		UserID:     data.UserID,
		Role:       entity.Role(data.Role),
		UserName:   data.UserName,
		Email:      data.Email,
		GuestEmail: data.GuestEmail,
		Cart:       cart,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
		ExpiresAt:  data.ExpiresAt,
	}, nil
}

func fromSessionDomain(data *entity.Session) (*model.SessionModel, error) {
	if data == nil {
		return nil, nil
	}

	cartJSON, err := json.Marshal(data.Cart)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode session cart")
	}

	return &model.SessionModel{
		ID:         data.ID,
		UserID:     data.UserID,
		Role:       data.Role.String(),
		UserName:   data.UserName,
		Email:      data.Email,
		GuestEmail: data.GuestEmail,
		CartJSON:   cartJSON,
		ExpiresAt:  data.ExpiresAt,
	}, nil
}
