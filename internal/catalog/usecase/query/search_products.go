package query

import (
	"context"

	"github.com/greenmart/storefront/internal/catalog/domain"
)

// SearchProductsQuery represents a keyword search over product names.
type SearchProductsQuery struct {
	Query string
}

// SearchProductsHandler handles the product search query
type SearchProductsHandler struct {
	repo domain.CatalogRepository
}

// NewSearchProductsHandler creates a new search products handler
func NewSearchProductsHandler(repo domain.CatalogRepository) *SearchProductsHandler {
	return &SearchProductsHandler{repo: repo}
}

// Handle executes the search. An empty query returns an empty result set,
// not the full catalog: "search not yet performed" and "no matches" stay
// distinguishable at the presentation layer.
func (h *SearchProductsHandler) Handle(ctx context.Context, q SearchProductsQuery) ([]domain.Product, error) {
	if q.Query == "" {
		return []domain.Product{}, nil
	}
	return h.repo.SearchProductsByName(ctx, q.Query)
}
