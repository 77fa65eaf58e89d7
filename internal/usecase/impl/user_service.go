package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	txManager   repository.TransactionManager
	hasher      service.PasswordHasher
	tokenSvc    service.TokenService
	logger      *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	TxManager   repository.TransactionManager
	Hasher      service.PasswordHasher
	TokenSvc    service.TokenService
	Logger      *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:    params.UserRepo,
		sessionRepo: params.SessionRepo,
		txManager:   params.TxManager,
		hasher:      params.Hasher,
		tokenSvc:    params.TokenSvc,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register self-registers a new customer account and immediately signs it in
// on the session. Whatever role the form submitted, the stored account is
// always a customer.
func (srv *userService) Register(ctx context.Context, session *entity.Session, input *usecase.RegisterInput) (*entity.User, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	user, err := srv.createUser(ctx, input.Name, input.Email, input.Password, entity.RoleCustomer)
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	session.SignIn(user)
	if err := srv.sessionRepo.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to persist session after registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID))

	return user, nil
}

// Login verifies credentials and the declared role, binds the user to the
// session and persists it. Unknown email, wrong password and role mismatch
// all surface as the same invalid-credentials error.
func (srv *userService) Login(ctx context.Context, session *entity.Session, input *usecase.LoginInput) (*entity.User, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// bcrypt check runs regardless of the role match so both failures cost
	// the same wall time.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if user.Role != input.Role {
		srv.log(ctx).Warn("Login role mismatch", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	session.SignIn(user)
	if err := srv.sessionRepo.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to persist session after login")
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return user, nil
}

// Logout destroys the session.
func (srv *userService) Logout(ctx context.Context, session *entity.Session) error {
	if err := srv.sessionRepo.Delete(ctx, session.ID); err != nil {
		return errors.Wrap(err, "failed to delete session on logout")
	}
	session.SignOut()

	srv.log(ctx).Debug("User logged out", slog.Any("sessionID", session.ID))

	return nil
}

// ListUsers returns all user accounts.
func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// GetUser retrieves a single user account.
func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to get user")
	}

	return user, nil
}

// CreateUser creates an account with an explicit role (admin-side).
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	return srv.createUser(ctx, input.Name, input.Email, input.Password, input.Role)
}

// UpdateUser edits an account. An empty password keeps the stored hash.
func (srv *userService) UpdateUser(ctx context.Context, input *usecase.UpdateUserInput) (*entity.User, error) {
	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	user, err := srv.userRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to load user for update")
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Email = strings.TrimSpace(input.Email)
	user.Role = input.Role

	if input.Password != "" {
		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
		}
		user.PasswordHash = hash
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Info("User updated", slog.Any("userID", user.ID))

	return user, nil
}

// DeleteUser removes an account. The check and the delete run in one
// transaction so two concurrent deletes cannot both pass the last-admin
// guard.
func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("user not found")
			}

			return errors.Wrap(err, "failed to load user for deletion")
		}

		if user.IsAdmin() {
			admins, err := userRepo.CountByRole(ctx, entity.RoleAdmin)
			if err != nil {
				return errors.Wrap(err, "failed to count admin users")
			}
			if admins <= 1 {
				return errors.Wrap(domainerrors.ErrLastAdminProtected, "refusing to delete the only admin")
			}
		}

		return userRepo.Delete(ctx, id)
	})
	if err != nil {
		srv.log(ctx).Warn("User deletion failed", slog.Any("userID", id), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", id))

	return nil
}

func (srv *userService) createUser(ctx context.Context, name, email, password string, role entity.Role) (*entity.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("name, email and password are required")
	}

	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	return user, nil
}
