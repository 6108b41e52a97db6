package query

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/greenmart/storefront/internal/cart/domain"
)

// CartLine is a cart item annotated with its computed subtotal.
type CartLine struct {
	domain.CartItem
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartView is the priced cart: every line's subtotal plus the order total.
// Nothing here is persisted.
type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// ViewCartQuery represents the query for a user's priced cart.
type ViewCartQuery struct {
	UserID uint
}

// ViewCartHandler handles the view cart query
type ViewCartHandler struct {
	cart domain.CartRepository
}

// NewViewCartHandler creates a new view cart handler
func NewViewCartHandler(cart domain.CartRepository) *ViewCartHandler {
	return &ViewCartHandler{cart: cart}
}

// Handle returns the user's cart lines, oldest first, with exact decimal
// subtotals (price × quantity) and their sum as the order total.
func (h *ViewCartHandler) Handle(ctx context.Context, q ViewCartQuery) (*CartView, error) {
	items, err := h.cart.FindByUser(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	view := &CartView{
		Items: make([]CartLine, 0, len(items)),
		Total: decimal.Zero,
	}
	for _, item := range items {
		subtotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, CartLine{CartItem: item, Subtotal: subtotal})
		view.Total = view.Total.Add(subtotal)
	}
	return view, nil
}
