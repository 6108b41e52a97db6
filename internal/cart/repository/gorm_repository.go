package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenmart/storefront/internal/cart/domain"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// AutoMigrate runs database migrations for the cart_items table
func (r *GormCartRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.CartItem{})
}

// Upsert relies on the (user_id, product_id) unique index: a single
// INSERT ... ON CONFLICT statement either creates the line with the given
// quantity or increments the existing one, so rapid duplicate requests
// never produce two rows or lose an increment.
func (r *GormCartRepository) Upsert(ctx context.Context, userID, productID uint, quantity int) error {
	item := domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).
		Create(&item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return nil
}

func (r *GormCartRepository) DeleteByProduct(ctx context.Context, userID, productID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

func (r *GormCartRepository) FindByUser(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find cart items: %w", err)
	}
	return items, nil
}
