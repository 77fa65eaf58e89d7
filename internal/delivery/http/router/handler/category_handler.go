package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
)

type categoryView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toCategoryView(cat *entity.Category) categoryView {
	return categoryView{ID: cat.ID, Name: cat.Name, CreatedAt: cat.CreatedAt}
}

type categoryInput struct {
	Name string `json:"name"`
}

// CategoryHandler holds dependencies for category handlers.
type CategoryHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler, injected by Fx.
func NewCategoryHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: logger}
}

// List handles the category listing request.
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]categoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, toCategoryView(cat))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// Create handles admin category creation.
func (h *CategoryHandler) Create(c echo.Context) error {
	var input categoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), input.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCategoryView(category), "Category created successfully")
}

// Update handles admin category renames.
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid category id")
	}

	var input categoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	category, err := h.uc.UpdateCategory(c.Request().Context(), id, input.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCategoryView(category), "Category updated successfully")
}

// Delete handles admin category deletion.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid category id")
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Category deleted successfully")
}
