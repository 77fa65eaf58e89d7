// Package impl contains the implementation of the application's business logic.
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

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	imageStore   service.ImageStore
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	ImageStore   service.ImageStore
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService. It receives all dependencies as interfaces.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		imageStore:   params.ImageStore,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns all products, newest first.
func (srv *catalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// SearchProducts returns products matching the query by name or description.
// An empty query behaves like ListProducts.
func (srv *catalogService) SearchProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return srv.ListProducts(ctx)
	}

	products, err := srv.productRepo.Search(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return products, nil
}

// GetProduct retrieves a single product.
func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

// CreateProduct creates a product, storing the uploaded image if present.
func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	if err := validateProductInput(input.Name, input.Price, input.Quantity); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		CategoryID:  input.CategoryID,
	}

	if input.Image != nil {
		path, err := srv.imageStore.Save(ctx, input.Image.Filename, input.Image.Contents)
		if err != nil {
			return nil, errors.Wrap(err, "failed to store product image")
		}
		product.ImagePath = path
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		// The product row never existed; don't leave the image orphaned.
		if product.ImagePath != "" {
			if delErr := srv.imageStore.Delete(ctx, product.ImagePath); delErr != nil {
				srv.log(ctx).Warn("Failed to clean up image after create failure",
					slog.String("path", product.ImagePath), slog.Any("error", delErr))
			}
		}

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.String("name", product.Name))

	return product, nil
}

// UpdateProduct edits a product. Without a new upload the existing image path
// is preserved; with one, the replaced image is deleted from storage.
func (srv *catalogService) UpdateProduct(ctx context.Context, input *usecase.UpdateProductInput) (*entity.Product, error) {
	if err := validateProductInput(input.Name, input.Price, input.Quantity); err != nil {
		return nil, err
	}

	existing, err := srv.productRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for update")
	}

	product := &entity.Product{
		ID:          existing.ID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		ImagePath:   existing.ImagePath,
		CategoryID:  input.CategoryID,
	}

	replacedImage := ""
	if input.Image != nil {
		path, err := srv.imageStore.Save(ctx, input.Image.Filename, input.Image.Contents)
		if err != nil {
			return nil, errors.Wrap(err, "failed to store replacement image")
		}
		replacedImage = existing.ImagePath
		product.ImagePath = path
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	if replacedImage != "" {
		if err := srv.imageStore.Delete(ctx, replacedImage); err != nil {
			srv.log(ctx).Warn("Failed to delete replaced image",
				slog.String("path", replacedImage), slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Product updated", slog.Any("productID", product.ID))

	return product, nil
}

// DeleteProduct removes a product and its stored image.
func (srv *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return errors.Wrap(err, "failed to load product for deletion")
	}

	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	if product.ImagePath != "" {
		if err := srv.imageStore.Delete(ctx, product.ImagePath); err != nil {
			srv.log(ctx).Warn("Failed to delete product image",
				slog.String("path", product.ImagePath), slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", id))

	return nil
}

// ListCategories returns all categories ordered by name.
func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// CreateCategory creates a category.
func (srv *catalogService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("category name must not be empty")
	}

	category := &entity.Category{Name: name}
	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	return category, nil
}

// UpdateCategory renames a category.
func (srv *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("category name must not be empty")
	}

	category := &entity.Category{ID: id, Name: name}
	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("category not found")
		}

		return nil, errors.Wrap(err, "failed to update category")
	}

	return category, nil
}

// DeleteCategory removes a category. Products keep their loose reference.
func (srv *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := srv.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("category not found")
		}

		return errors.Wrap(err, "failed to delete category")
	}

	return nil
}

func validateProductInput(name string, price float64, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("product name must not be empty")
	}
	if price <= 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("product price must be positive")
	}
	if quantity < 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("product quantity must not be negative")
	}

	return nil
}
