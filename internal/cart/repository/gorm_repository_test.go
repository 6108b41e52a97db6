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
	"github.com/greenmart/storefront/internal/cart/domain"
	catalogdomain "github.com/greenmart/storefront/internal/catalog/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
		&domain.CartItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) *catalogdomain.Product {
	t.Helper()

	category := catalogdomain.Category{Name: "Vegetables"}
	require.NoError(t, db.FirstOrCreate(&category, catalogdomain.Category{Name: "Vegetables"}).Error)

	product := catalogdomain.Product{
		CategoryID: category.ID,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      10,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func seedUser(t *testing.T, db *gorm.DB, email string) *accountdomain.User {
	t.Helper()

	user := accountdomain.User{Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestUpsert_CreateThenIncrement(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)

	user := seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Vegetable Basket", "12.50")

	require.NoError(t, repo.Upsert(ctx, user.ID, product.ID, 2))
	require.NoError(t, repo.Upsert(ctx, user.ID, product.ID, 3))

	items, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1, "repeated adds must not create a second row")
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, product.ID, items[0].ProductID)
}

func TestUpsert_FirstAddUsesGivenQuantity(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)

	user := seedUser(t, db, "bob@example.com")
	product := seedProduct(t, db, "Apple", "0.99")

	require.NoError(t, repo.Upsert(ctx, user.ID, product.ID, 4))

	items, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity, "initial quantity is the supplied value, not a default of 1")
}

func TestDeleteByProduct_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)

	user := seedUser(t, db, "carol@example.com")
	product := seedProduct(t, db, "Carrot", "1.20")

	// Removing an absent line succeeds and changes nothing.
	require.NoError(t, repo.DeleteByProduct(ctx, user.ID, product.ID))

	require.NoError(t, repo.Upsert(ctx, user.ID, product.ID, 1))
	require.NoError(t, repo.DeleteByProduct(ctx, user.ID, product.ID))
	require.NoError(t, repo.DeleteByProduct(ctx, user.ID, product.ID))

	items, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFindByUser_ScopedAndPreloaded(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	product := seedProduct(t, db, "Tomato", "2.00")

	require.NoError(t, repo.Upsert(ctx, alice.ID, product.ID, 1))
	require.NoError(t, repo.Upsert(ctx, bob.ID, product.ID, 7))

	items, err := repo.FindByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "Tomato", items[0].Product.Name, "product must be preloaded")
}
