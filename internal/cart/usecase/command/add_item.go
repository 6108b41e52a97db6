package command

import (
	"context"

	catalogdomain "github.com/greenmart/storefront/internal/catalog/domain"

	"github.com/greenmart/storefront/internal/cart/domain"
)

// AddItemCommand adds a quantity of a product to a user's cart.
type AddItemCommand struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// AddItemHandler handles the add-to-cart command
type AddItemHandler struct {
	cart    domain.CartRepository
	catalog catalogdomain.CatalogRepository
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(cart domain.CartRepository, catalog catalogdomain.CatalogRepository) *AddItemHandler {
	return &AddItemHandler{cart: cart, catalog: catalog}
}

// Handle executes the add-to-cart command. A first add creates the line
// with the given quantity; a repeat add increments it. No stock check is
// performed here.
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) error {
	if cmd.Quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	if _, err := h.catalog.FindProductByID(ctx, cmd.ProductID); err != nil {
		return err
	}

	return h.cart.Upsert(ctx, cmd.UserID, cmd.ProductID, cmd.Quantity)
}
