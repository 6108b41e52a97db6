package domain

import (
	"context"
	"errors"
	"time"

	accountdomain "github.com/greenmart/storefront/internal/account/domain"
	catalogdomain "github.com/greenmart/storefront/internal/catalog/domain"
)

// ErrInvalidQuantity is returned when an add-to-cart quantity is not a
// positive integer.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// CartItem is one product line in a user's cart. The composite unique
// index keeps the cart at one row per (user, product) pair and is what
// makes the add-to-cart upsert safe under concurrent duplicate requests.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	AddedAt   time.Time `json:"added_at" gorm:"autoCreateTime"`

	User    accountdomain.User    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Product catalogdomain.Product `json:"product" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// CartRepository defines the contract for cart data access
type CartRepository interface {
	// Upsert inserts a (user, product) line with the given quantity, or
	// atomically increments the existing line's quantity by it.
	Upsert(ctx context.Context, userID, productID uint, quantity int) error

	// DeleteByProduct removes the (user, product) line if present.
	// Deleting an absent line is not an error.
	DeleteByProduct(ctx context.Context, userID, productID uint) error

	// FindByUser returns the user's cart lines with products preloaded,
	// oldest first.
	FindByUser(ctx context.Context, userID uint) ([]CartItem, error)
}
