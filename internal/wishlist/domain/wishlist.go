package domain

import (
	"context"
	"time"

	accountdomain "github.com/greenmart/storefront/internal/account/domain"
	catalogdomain "github.com/greenmart/storefront/internal/catalog/domain"
)

// WishlistItem marks a product a user has saved without committing to
// purchase. At most one row exists per (user, product) pair; there is no
// quantity concept.
type WishlistItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	AddedAt   time.Time `json:"added_at" gorm:"autoCreateTime"`

	User    accountdomain.User    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Product catalogdomain.Product `json:"product" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// WishlistRepository defines the contract for wishlist data access
type WishlistRepository interface {
	// Upsert inserts the (user, product) entry; re-adding an existing
	// entry is a no-op.
	Upsert(ctx context.Context, userID, productID uint) error

	// DeleteByProduct removes the entry if present; absent is not an error.
	DeleteByProduct(ctx context.Context, userID, productID uint) error

	// FindByUser returns the user's wishlist with products preloaded.
	FindByUser(ctx context.Context, userID uint) ([]WishlistItem, error)
}
