package command

import (
	"context"

	"github.com/greenmart/storefront/internal/wishlist/domain"
)

// RemoveItemCommand removes a product from a user's wishlist.
type RemoveItemCommand struct {
	UserID    uint
	ProductID uint
}

// RemoveItemHandler handles the remove-from-wishlist command
type RemoveItemHandler struct {
	wishlist domain.WishlistRepository
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(wishlist domain.WishlistRepository) *RemoveItemHandler {
	return &RemoveItemHandler{wishlist: wishlist}
}

// Handle removes the entry if present; removing an absent entry succeeds.
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) error {
	return h.wishlist.DeleteByProduct(ctx, cmd.UserID, cmd.ProductID)
}
