package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	accountdomain "github.com/greenmart/storefront/internal/account/domain"
	catalogdomain "github.com/greenmart/storefront/internal/catalog/domain"
	"github.com/greenmart/storefront/internal/wishlist/domain"
)

func setupTestDB(t *testing.T) (*gorm.DB, *GormWishlistRepository, *accountdomain.User, *catalogdomain.Product) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&accountdomain.User{},
		&domain.WishlistItem{},
	))

	user := &accountdomain.User{Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	category := &catalogdomain.Category{Name: "Fruits"}
	require.NoError(t, db.Create(category).Error)

	product := &catalogdomain.Product{
		CategoryID: category.ID,
		Name:       "Apple",
		Price:      decimal.RequireFromString("0.99"),
	}
	require.NoError(t, db.Create(product).Error)

	return db, NewGormWishlistRepository(db), user, product
}

func TestUpsert_Idempotent(t *testing.T) {
	ctx := context.Background()
	_, repo, user, product := setupTestDB(t)

	// Re-adding a wishlisted product is a no-op, not an error.
	require.NoError(t, repo.Upsert(ctx, user.ID, product.ID))
	require.NoError(t, repo.Upsert(ctx, user.ID, product.ID))

	items, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Apple", items[0].Product.Name)
}

func TestDeleteByProduct_Idempotent(t *testing.T) {
	ctx := context.Background()
	_, repo, user, product := setupTestDB(t)

	require.NoError(t, repo.DeleteByProduct(ctx, user.ID, product.ID))

	require.NoError(t, repo.Upsert(ctx, user.ID, product.ID))
	require.NoError(t, repo.DeleteByProduct(ctx, user.ID, product.ID))
	require.NoError(t, repo.DeleteByProduct(ctx, user.ID, product.ID))

	items, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
