package query

import (
	"context"

	"github.com/greenmart/storefront/internal/wishlist/domain"
)

// ViewWishlistQuery represents the query for a user's wishlist.
type ViewWishlistQuery struct {
	UserID uint
}

// ViewWishlistHandler handles the view wishlist query
type ViewWishlistHandler struct {
	wishlist domain.WishlistRepository
}

// NewViewWishlistHandler creates a new view wishlist handler
func NewViewWishlistHandler(wishlist domain.WishlistRepository) *ViewWishlistHandler {
	return &ViewWishlistHandler{wishlist: wishlist}
}

// Handle returns the user's wishlist entries with products preloaded.
func (h *ViewWishlistHandler) Handle(ctx context.Context, q ViewWishlistQuery) ([]domain.WishlistItem, error) {
	return h.wishlist.FindByUser(ctx, q.UserID)
}
