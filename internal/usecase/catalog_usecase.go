// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// ImageUpload carries an uploaded product image. Filename is only used for
// its extension; storage assigns its own unique name.
type ImageUpload struct {
	Filename string
	Contents io.Reader
}

// CreateProductInput defines the data required to create a catalog product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	CategoryID  *uuid.UUID
	Image       *ImageUpload
}

// UpdateProductInput defines the data required to edit a catalog product.
// A nil Image keeps the stored image untouched.
type UpdateProductInput struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64
	Quantity    int
	CategoryID  *uuid.UUID
	Image       *ImageUpload
}

// CatalogUsecase defines the interface for catalog browsing and management.
// Browsing operations are public; create, update and delete are admin-only
// and guarded at the delivery layer.
type CatalogUsecase interface {
	// ListProducts returns all products, newest first.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// SearchProducts returns products whose name or description contains the
	// query, case-insensitively. An empty query lists everything.
	SearchProducts(ctx context.Context, query string) ([]*entity.Product, error)

	// GetProduct retrieves a single product.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// CreateProduct creates a product, storing the uploaded image if present.
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)

	// UpdateProduct edits a product. Without a new upload the existing image
	// path is preserved; with one, the replaced image is deleted from storage.
	UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a product and its stored image.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// CreateCategory creates a category.
	CreateCategory(ctx context.Context, name string) (*entity.Category, error)

	// UpdateCategory renames a category.
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error)

	// DeleteCategory removes a category. Products keep their loose reference.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
