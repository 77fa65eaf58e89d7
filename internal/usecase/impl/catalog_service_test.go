package impl

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"
)

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	service      usecase.CatalogUsecase
	productRepo  *fakeProductRepo
	categoryRepo *fakeCategoryRepo
	imageStore   *fakeImageStore
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	t.Helper()

	productRepo := newFakeProductRepo()
	categoryRepo := newFakeCategoryRepo()
	imageStore := &fakeImageStore{}

	service := NewCatalogService(CatalogServiceParams{
		ProductRepo:  productRepo,
		CategoryRepo: categoryRepo,
		ImageStore:   imageStore,
		Logger:       newDiscardLogger(),
	})

	return catalogServiceFixtures{
		service:      service,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		imageStore:   imageStore,
	}
}

func pngUpload(filename string) *usecase.ImageUpload {
	return &usecase.ImageUpload{
		Filename: filename,
		Contents: strings.NewReader("fake png bytes"),
	}
}

func TestCatalogService_CreateProduct_WithImage(t *testing.T) {
	fx := createTestCatalogService(t)

	product, err := fx.service.CreateProduct(context.Background(), &usecase.CreateProductInput{
		Name:        "Ceramic Mug",
		Description: "350ml",
		Price:       150,
		Quantity:    10,
		Image:       pngUpload("mug.png"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "/images/img-1-mug.png", product.ImagePath)

	stored, err := fx.productRepo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ImagePath, stored.ImagePath)
}

func TestCatalogService_CreateProduct_WithoutImage(t *testing.T) {
	fx := createTestCatalogService(t)

	product, err := fx.service.CreateProduct(context.Background(), &usecase.CreateProductInput{
		Name:     "Ceramic Mug",
		Price:    150,
		Quantity: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, product.ImagePath)
	assert.Equal(t, 0, fx.imageStore.saved)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	fx := createTestCatalogService(t)

	tests := []struct {
		name  string
		input *usecase.CreateProductInput
	}{
		{
			name:  "blank name",
			input: &usecase.CreateProductInput{Name: "   ", Price: 150, Quantity: 1},
		},
		{
			name:  "non-positive price",
			input: &usecase.CreateProductInput{Name: "Mug", Price: 0, Quantity: 1},
		},
		{
			name:  "negative quantity",
			input: &usecase.CreateProductInput{Name: "Mug", Price: 150, Quantity: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.CreateProduct(context.Background(), tt.input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestCatalogService_CreateProduct_FailureCleansUpImage(t *testing.T) {
	fx := createTestCatalogService(t)
	fx.productRepo.createErr = errors.New("insert failed")

	_, err := fx.service.CreateProduct(context.Background(), &usecase.CreateProductInput{
		Name:     "Ceramic Mug",
		Price:    150,
		Quantity: 10,
		Image:    pngUpload("mug.png"),
	})
	require.Error(t, err)

	// The stored image must not outlive the failed row.
	assert.Equal(t, []string{"/images/img-1-mug.png"}, fx.imageStore.deleted)
}

func TestCatalogService_UpdateProduct_KeepsImageWithoutUpload(t *testing.T) {
	fx := createTestCatalogService(t)
	existing := fx.productRepo.put(&entity.Product{
		Name:      "Mug",
		Price:     150,
		Quantity:  10,
		ImagePath: "/images/img-0-original.png",
	})

	updated, err := fx.service.UpdateProduct(context.Background(), &usecase.UpdateProductInput{
		ID:       existing.ID,
		Name:     "Mug v2",
		Price:    175,
		Quantity: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, "/images/img-0-original.png", updated.ImagePath)
	assert.Empty(t, fx.imageStore.deleted)
}

func TestCatalogService_UpdateProduct_ReplacesImage(t *testing.T) {
	fx := createTestCatalogService(t)
	existing := fx.productRepo.put(&entity.Product{
		Name:      "Mug",
		Price:     150,
		Quantity:  10,
		ImagePath: "/images/img-0-original.png",
	})

	updated, err := fx.service.UpdateProduct(context.Background(), &usecase.UpdateProductInput{
		ID:       existing.ID,
		Name:     "Mug",
		Price:    150,
		Quantity: 10,
		Image:    pngUpload("replacement.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, "/images/img-1-replacement.png", updated.ImagePath)
	assert.Equal(t, []string{"/images/img-0-original.png"}, fx.imageStore.deleted)
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	_, err := fx.service.UpdateProduct(context.Background(), &usecase.UpdateProductInput{
		ID:       uuid.New(),
		Name:     "Ghost",
		Price:    1,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_DeleteProduct_RemovesRowAndImage(t *testing.T) {
	fx := createTestCatalogService(t)
	existing := fx.productRepo.put(&entity.Product{
		Name:      "Mug",
		Price:     150,
		Quantity:  10,
		ImagePath: "/images/img-0-original.png",
	})

	require.NoError(t, fx.service.DeleteProduct(context.Background(), existing.ID))

	_, err := fx.productRepo.FindByID(context.Background(), existing.ID)
	assert.Error(t, err)
	assert.Equal(t, []string{"/images/img-0-original.png"}, fx.imageStore.deleted)
}

func TestCatalogService_DeleteProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	err := fx.service.DeleteProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_SearchProducts(t *testing.T) {
	fx := createTestCatalogService(t)
	fx.productRepo.put(&entity.Product{Name: "Ceramic Mug", Description: "350ml", Price: 150, Quantity: 10})
	fx.productRepo.put(&entity.Product{Name: "Tee", Description: "cotton, mug print", Price: 300, Quantity: 5})
	fx.productRepo.put(&entity.Product{Name: "Poster", Description: "A2", Price: 80, Quantity: 3})

	results, err := fx.service.SearchProducts(context.Background(), "mug")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestCatalogService_SearchProducts_EmptyQueryListsAll(t *testing.T) {
	fx := createTestCatalogService(t)
	fx.productRepo.put(&entity.Product{Name: "Ceramic Mug", Price: 150, Quantity: 10})
	fx.productRepo.put(&entity.Product{Name: "Tee", Price: 300, Quantity: 5})

	results, err := fx.service.SearchProducts(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestCatalogService_Categories(t *testing.T) {
	fx := createTestCatalogService(t)

	created, err := fx.service.CreateCategory(context.Background(), "  Drinkware ")
	require.NoError(t, err)
	assert.Equal(t, "Drinkware", created.Name)

	renamed, err := fx.service.UpdateCategory(context.Background(), created.ID, "Kitchen")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", renamed.Name)

	categories, err := fx.service.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Kitchen", categories[0].Name)

	require.NoError(t, fx.service.DeleteCategory(context.Background(), created.ID))

	err = fx.service.DeleteCategory(context.Background(), created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_CreateCategory_BlankName(t *testing.T) {
	fx := createTestCatalogService(t)

	_, err := fx.service.CreateCategory(context.Background(), "   ")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
