package command

import (
	"context"

	catalogdomain "github.com/greenmart/storefront/internal/catalog/domain"

	"github.com/greenmart/storefront/internal/wishlist/domain"
)

// AddItemCommand saves a product to a user's wishlist.
type AddItemCommand struct {
	UserID    uint
	ProductID uint
}

// AddItemHandler handles the add-to-wishlist command
type AddItemHandler struct {
	wishlist domain.WishlistRepository
	catalog  catalogdomain.CatalogRepository
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(wishlist domain.WishlistRepository, catalog catalogdomain.CatalogRepository) *AddItemHandler {
	return &AddItemHandler{wishlist: wishlist, catalog: catalog}
}

// Handle executes the add-to-wishlist command. Adding an already-saved
// product is a no-op.
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) error {
	if _, err := h.catalog.FindProductByID(ctx, cmd.ProductID); err != nil {
		return err
	}
	return h.wishlist.Upsert(ctx, cmd.UserID, cmd.ProductID)
}
