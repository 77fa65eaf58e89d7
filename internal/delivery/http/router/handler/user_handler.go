package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
)

// userView is the JSON shape of a user account. The password hash never
// leaves the server.
type userView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

// sessionView is the JSON shape of the current session identity.
type sessionView struct {
	Authenticated bool   `json:"authenticated"`
	UserName      string `json:"user_name,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
	CartCount     int    `json:"cart_count"`
}

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserHandler holds dependencies for identity handlers.
type UserHandler struct {
	uc        usecase.UserUsecase
	sessionMW *middleware.SessionMiddleware
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, sessionMW *middleware.SessionMiddleware, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, sessionMW: sessionMW, logger: logger}
}

// Register handles public self-registration. The new account is always a
// customer and is signed in immediately.
func (h *UserHandler) Register(c echo.Context) error {
	var input registerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	session := middleware.GetSession(c)
	user, err := h.uc.Register(c.Request().Context(), session, &usecase.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserView(user), "User registered successfully")
}

// Login handles the sign-in request. Email, password and declared role must
// all match the stored account.
func (h *UserHandler) Login(c echo.Context) error {
	var input loginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	session := middleware.GetSession(c)
	user, err := h.uc.Login(c.Request().Context(), session, &usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
		Role:     entity.Role(input.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Login successful")
}

// Logout destroys the session and expires the cookie.
func (h *UserHandler) Logout(c echo.Context) error {
	session := middleware.GetSession(c)
	if err := h.uc.Logout(c.Request().Context(), session); err != nil {
		return errors.WithStack(err)
	}
	h.sessionMW.ClearCookie(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// Me returns the current session identity for the navbar.
func (h *UserHandler) Me(c echo.Context) error {
	session := middleware.GetSession(c)

	return response.Success(c, http.StatusOK, sessionView{
		Authenticated: session.Authenticated(),
		UserName:      session.UserName,
		Email:         session.ContactEmail(),
		Role:          session.Role.String(),
		CartCount:     session.Cart.Count(),
	}, "")
}

// List handles the admin user listing.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// Get handles the admin user details request.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user id")
	}

	user, err := h.uc.GetUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "")
}

// Create handles admin user creation with an explicit role.
func (h *UserHandler) Create(c echo.Context) error {
	var input userInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	user, err := h.uc.CreateUser(c.Request().Context(), &usecase.CreateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     entity.Role(input.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserView(user), "User created successfully")
}

// Update handles admin user edits. An empty password keeps the stored hash.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user id")
	}

	var input userInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), &usecase.UpdateUserInput{
		ID:       id,
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     entity.Role(input.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "User updated successfully")
}

// Delete handles admin user deletion. The only remaining admin cannot be
// deleted.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user id")
	}

	if err := h.uc.DeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}
