package command

import (
	"context"

	"github.com/greenmart/storefront/internal/cart/domain"
)

// RemoveItemCommand removes a product from a user's cart.
type RemoveItemCommand struct {
	UserID    uint
	ProductID uint
}

// RemoveItemHandler handles the remove-from-cart command
type RemoveItemHandler struct {
	cart domain.CartRepository
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(cart domain.CartRepository) *RemoveItemHandler {
	return &RemoveItemHandler{cart: cart}
}

// Handle removes the line if present. Removing an absent line succeeds,
// which keeps remove safe to retry.
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) error {
	return h.cart.DeleteByProduct(ctx, cmd.UserID, cmd.ProductID)
}
