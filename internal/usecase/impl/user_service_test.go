package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service     usecase.UserUsecase
	userRepo    *fakeUserRepo
	sessionRepo *fakeSessionRepo
}

func createTestUserService(t *testing.T) userServiceFixtures {
	t.Helper()

	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	txManager := &fakeTxManager{
		productRepo: newFakeProductRepo(),
		userRepo:    userRepo,
		orderRepo:   newFakeOrderRepo(),
	}

	service := NewUserService(UserServiceParams{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		TxManager:   txManager,
		Hasher:      fakeHasher{},
		TokenSvc:    fakeTokenService{},
		Logger:      newDiscardLogger(),
	})

	return userServiceFixtures{
		service:     service,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

func seedUser(fx userServiceFixtures, name, email, password string, role entity.Role) *entity.User {
	return fx.userRepo.put(&entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hashed:" + password,
		Role:         role,
	})
}

func TestUserService_Register_CoercesRoleAndSignsIn(t *testing.T) {
	fx := createTestUserService(t)
	session := newTestSession(t, fx.sessionRepo)

	user, err := fx.service.Register(context.Background(), session, &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	// The stored account is always a customer, whatever was submitted.
	assert.Equal(t, entity.RoleCustomer, user.Role)
	assert.Equal(t, "hashed:secret", user.PasswordHash)

	// Registration signs the new account in on the session.
	assert.True(t, session.Authenticated())
	assert.Equal(t, "alice@example.com", session.Email)
	assert.Equal(t, entity.RoleCustomer, session.Role)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)
	session := newTestSession(t, fx.sessionRepo)
	seedUser(fx, "Alice", "alice@example.com", "secret", entity.RoleCustomer)

	_, err := fx.service.Register(context.Background(), session, &usecase.RegisterInput{
		Name:     "Other Alice",
		Email:    "alice@example.com",
		Password: "secret2",
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)
	assert.False(t, session.Authenticated())
}

func TestUserService_Register_MissingFields(t *testing.T) {
	fx := createTestUserService(t)
	session := newTestSession(t, fx.sessionRepo)

	_, err := fx.service.Register(context.Background(), session, &usecase.RegisterInput{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)
	session := newTestSession(t, fx.sessionRepo)
	seedUser(fx, "Alice", "alice@example.com", "secret", entity.RoleCustomer)

	user, err := fx.service.Login(context.Background(), session, &usecase.LoginInput{
		Email:    "Alice@Example.COM",
		Password: "secret",
		Role:     entity.RoleCustomer,
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, session.Authenticated())
	assert.Equal(t, user.ID, *session.UserID)
}

func TestUserService_Login_FailuresAreIndistinguishable(t *testing.T) {
	fx := createTestUserService(t)
	seedUser(fx, "Alice", "alice@example.com", "secret", entity.RoleCustomer)

	tests := []struct {
		name  string
		input *usecase.LoginInput
	}{
		{
			name:  "unknown email",
			input: &usecase.LoginInput{Email: "nobody@example.com", Password: "secret", Role: entity.RoleCustomer},
		},
		{
			name:  "wrong password",
			input: &usecase.LoginInput{Email: "alice@example.com", Password: "wrong", Role: entity.RoleCustomer},
		},
		{
			name:  "role mismatch",
			input: &usecase.LoginInput{Email: "alice@example.com", Password: "secret", Role: entity.RoleAdmin},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newTestSession(t, fx.sessionRepo)
			_, err := fx.service.Login(context.Background(), session, tt.input)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
			assert.False(t, session.Authenticated())
		})
	}
}

func TestUserService_Logout(t *testing.T) {
	fx := createTestUserService(t)
	session := newTestSession(t, fx.sessionRepo)
	seedUser(fx, "Alice", "alice@example.com", "secret", entity.RoleCustomer)

	_, err := fx.service.Login(context.Background(), session, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "secret",
		Role:     entity.RoleCustomer,
	})
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(context.Background(), session))

	assert.False(t, session.Authenticated())
	assert.True(t, session.Cart.IsEmpty())
	_, err = fx.sessionRepo.FindByID(context.Background(), session.ID)
	assert.Error(t, err)
}

func TestUserService_CreateUser_RejectsUnknownRole(t *testing.T) {
	fx := createTestUserService(t)

	_, err := fx.service.CreateUser(context.Background(), &usecase.CreateUserInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret",
		Role:     entity.Role("owner"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_UpdateUser_EmptyPasswordKeepsHash(t *testing.T) {
	fx := createTestUserService(t)
	user := seedUser(fx, "Bob", "bob@example.com", "secret", entity.RoleCustomer)

	updated, err := fx.service.UpdateUser(context.Background(), &usecase.UpdateUserInput{
		ID:    user.ID,
		Name:  "Robert",
		Email: "bob@example.com",
		Role:  entity.RoleSeller,
	})
	require.NoError(t, err)

	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, entity.RoleSeller, updated.Role)
	assert.Equal(t, "hashed:secret", updated.PasswordHash)
}

func TestUserService_UpdateUser_RehashesNewPassword(t *testing.T) {
	fx := createTestUserService(t)
	user := seedUser(fx, "Bob", "bob@example.com", "secret", entity.RoleCustomer)

	updated, err := fx.service.UpdateUser(context.Background(), &usecase.UpdateUserInput{
		ID:       user.ID,
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "changed",
		Role:     entity.RoleCustomer,
	})
	require.NoError(t, err)
	assert.Equal(t, "hashed:changed", updated.PasswordHash)
}

func TestUserService_DeleteUser_LastAdminProtected(t *testing.T) {
	fx := createTestUserService(t)
	admin := seedUser(fx, "Root", "root@example.com", "secret", entity.RoleAdmin)

	err := fx.service.DeleteUser(context.Background(), admin.ID)
	assert.ErrorIs(t, err, domainerrors.ErrLastAdminProtected)

	// The account is still there.
	_, err = fx.userRepo.FindByID(context.Background(), admin.ID)
	assert.NoError(t, err)
}

func TestUserService_DeleteUser_SecondAdminMayGo(t *testing.T) {
	fx := createTestUserService(t)
	seedUser(fx, "Root", "root@example.com", "secret", entity.RoleAdmin)
	second := seedUser(fx, "Backup", "backup@example.com", "secret", entity.RoleAdmin)

	require.NoError(t, fx.service.DeleteUser(context.Background(), second.ID))

	_, err := fx.userRepo.FindByID(context.Background(), second.ID)
	assert.Error(t, err)
}

func TestUserService_DeleteUser_Customer(t *testing.T) {
	fx := createTestUserService(t)
	customer := seedUser(fx, "Alice", "alice@example.com", "secret", entity.RoleCustomer)

	require.NoError(t, fx.service.DeleteUser(context.Background(), customer.ID))

	_, err := fx.service.GetUser(context.Background(), customer.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	err := fx.service.DeleteUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
