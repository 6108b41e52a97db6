package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenmart/storefront/internal/wishlist/domain"
)

// GormWishlistRepository implements WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GORM wishlist repository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// AutoMigrate runs database migrations for the wishlist_items table
func (r *GormWishlistRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.WishlistItem{})
}

// Upsert inserts the entry, or does nothing when the (user_id, product_id)
// unique index already holds it.
func (r *GormWishlistRepository) Upsert(ctx context.Context, userID, productID uint) error {
	item := domain.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(&item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert wishlist item: %w", err)
	}
	return nil
}

func (r *GormWishlistRepository) DeleteByProduct(ctx context.Context, userID, productID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.WishlistItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}
	return nil
}

func (r *GormWishlistRepository) FindByUser(ctx context.Context, userID uint) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find wishlist items: %w", err)
	}
	return items, nil
}
