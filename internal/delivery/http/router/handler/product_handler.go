package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
)

// productView is the JSON shape of a catalog product.
type productView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	ImagePath   string     `json:"image_path,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toProductView(p *entity.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		ImagePath:   p.ImagePath,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
	}
}

func toProductViews(products []*entity.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}

	return views
}

// ProductHandler holds dependencies for catalog product handlers.
type ProductHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: logger}
}

// List handles the public product listing.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductViews(products), "")
}

// Search handles product search by name or description.
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.uc.SearchProducts(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductViews(products), "")
}

// Get handles the product details request.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductView(product), "")
}

// Create handles admin product creation from a multipart form.
func (h *ProductHandler) Create(c echo.Context) error {
	input := &usecase.CreateProductInput{}
	if err := h.bindProductForm(c, &input.Name, &input.Description, &input.Price, &input.Quantity, &input.CategoryID); err != nil {
		return err
	}

	upload, cleanup, err := h.bindImageUpload(c)
	if err != nil {
		return err
	}
	defer cleanup()
	input.Image = upload

	product, err := h.uc.CreateProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductView(product), "Product created successfully")
}

// Update handles admin product edits. Submitting without a new image keeps
// the existing one.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	input := &usecase.UpdateProductInput{ID: id}
	if err := h.bindProductForm(c, &input.Name, &input.Description, &input.Price, &input.Quantity, &input.CategoryID); err != nil {
		return err
	}

	upload, cleanup, err := h.bindImageUpload(c)
	if err != nil {
		return err
	}
	defer cleanup()
	input.Image = upload

	product, err := h.uc.UpdateProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductView(product), "Product updated successfully")
}

// Delete handles admin product deletion.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

func (h *ProductHandler) bindProductForm(c echo.Context, name, description *string, price *float64, quantity *int, categoryID **uuid.UUID) error {
	*name = c.FormValue("name")
	*description = c.FormValue("description")

	parsedPrice, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product price")
	}
	*price = parsedPrice

	parsedQty, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product quantity")
	}
	*quantity = parsedQty

	if raw := c.FormValue("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid category id")
		}
		*categoryID = &id
	}

	return nil
}

// bindImageUpload extracts the optional image file from the multipart form.
// The cleanup func closes the underlying file and is safe to call always.
func (h *ProductHandler) bindImageUpload(c echo.Context) (*usecase.ImageUpload, func(), error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No file part means no upload; anything else is a client error.
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}

		return nil, func() {}, response.BadRequest(c, "INVALID_INPUT", "Invalid image upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, func() {}, response.BadRequest(c, "INVALID_INPUT", "Could not read image upload")
	}

	upload := &usecase.ImageUpload{
		Filename: fileHeader.Filename,
		Contents: file,
	}

	return upload, func() { _ = file.Close() }, nil
}
