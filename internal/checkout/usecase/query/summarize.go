package query

import (
	"context"

	"github.com/shopspring/decimal"

	cartdomain "github.com/greenmart/storefront/internal/cart/domain"
)

// SummaryLine is one cart line in the checkout summary, priced.
type SummaryLine struct {
	cartdomain.CartItem
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Summary is the payable view of a user's cart. Checkout is display-only:
// no order record is created and no payment runs.
type Summary struct {
	Items []SummaryLine   `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// SummarizeQuery represents the query for a user's checkout summary.
type SummarizeQuery struct {
	UserID uint
}

// SummarizeHandler handles the checkout summary query
type SummarizeHandler struct {
	cart cartdomain.CartRepository
}

// NewSummarizeHandler creates a new summarize handler
func NewSummarizeHandler(cart cartdomain.CartRepository) *SummarizeHandler {
	return &SummarizeHandler{cart: cart}
}

// Handle aggregates the user's cart into a grand total without mutating
// anything.
func (h *SummarizeHandler) Handle(ctx context.Context, q SummarizeQuery) (*Summary, error) {
	items, err := h.cart.FindByUser(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Items: make([]SummaryLine, 0, len(items)),
		Total: decimal.Zero,
	}
	for _, item := range items {
		subtotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		summary.Items = append(summary.Items, SummaryLine{CartItem: item, Subtotal: subtotal})
		summary.Total = summary.Total.Add(subtotal)
	}
	return summary, nil
}
