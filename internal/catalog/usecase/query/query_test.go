package query

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenmart/storefront/internal/catalog/domain"
	"github.com/greenmart/storefront/internal/catalog/repository"
)

func setupCatalog(t *testing.T) (*gorm.DB, *repository.GormCatalogRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := repository.NewGormCatalogRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return db, repo
}

func seedCatalog(t *testing.T, repo *repository.GormCatalogRepository) (*domain.Category, []domain.Product) {
	t.Helper()
	ctx := context.Background()

	category := &domain.Category{Name: "Vegetables"}
	require.NoError(t, repo.CreateCategory(ctx, category))

	names := []string{"Vegetable Basket", "Apple", "VEGGIE Mix"}
	products := make([]domain.Product, 0, len(names))
	for _, name := range names {
		p := domain.Product{
			CategoryID: category.ID,
			Name:       name,
			Price:      decimal.RequireFromString("1.00"),
		}
		require.NoError(t, repo.CreateProduct(ctx, &p))
		products = append(products, p)
	}
	return category, products
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()
	_, repo := setupCatalog(t)
	handler := NewListCategoriesHandler(repo)

	categories, err := handler.Handle(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	require.NoError(t, repo.CreateCategory(ctx, &domain.Category{Name: "Fruits"}))
	require.NoError(t, repo.CreateCategory(ctx, &domain.Category{Name: "Vegetables"}))

	categories, err = handler.Handle(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()
	_, repo := setupCatalog(t)
	category, products := seedCatalog(t, repo)
	handler := NewListProductsHandler(repo)

	all, err := handler.Handle(ctx, ListProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, len(products))

	byCategory, err := handler.Handle(ctx, ListProductsQuery{CategoryID: &category.ID})
	require.NoError(t, err)
	assert.Len(t, byCategory, len(products))
}

func TestListProducts_UnknownCategory(t *testing.T) {
	ctx := context.Background()
	_, repo := setupCatalog(t)
	seedCatalog(t, repo)
	handler := NewListProductsHandler(repo)

	missing := uint(9999)
	_, err := handler.Handle(ctx, ListProductsQuery{CategoryID: &missing})
	assert.True(t, errors.Is(err, domain.ErrCategoryNotFound))
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	_, repo := setupCatalog(t)
	_, products := seedCatalog(t, repo)
	handler := NewGetProductHandler(repo)

	product, err := handler.Handle(ctx, GetProductQuery{ID: products[0].ID})
	require.NoError(t, err)
	assert.Equal(t, products[0].Name, product.Name)

	_, err = handler.Handle(ctx, GetProductQuery{ID: 9999})
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))

	_, err = handler.Handle(ctx, GetProductQuery{ID: 0})
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestSearchProducts(t *testing.T) {
	ctx := context.Background()
	_, repo := setupCatalog(t)
	seedCatalog(t, repo)
	handler := NewSearchProductsHandler(repo)

	// An empty query returns an empty result set, not the full catalog.
	results, err := handler.Handle(ctx, SearchProductsQuery{Query: ""})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = handler.Handle(ctx, SearchProductsQuery{Query: "veg"})
	require.NoError(t, err)

	names := make([]string, 0, len(results))
	for _, p := range results {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Vegetable Basket", "VEGGIE Mix"}, names)

	results, err = handler.Handle(ctx, SearchProductsQuery{Query: "zucchini"})
	require.NoError(t, err)
	assert.Empty(t, results)
}
