package query

import (
	"context"

	"github.com/greenmart/storefront/internal/catalog/domain"
)

// ListProductsQuery lists all products, or a single category's products
// when CategoryID is set.
type ListProductsQuery struct {
	CategoryID *uint
}

// ListProductsHandler handles the list products query
type ListProductsHandler struct {
	repo domain.CatalogRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.CatalogRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query. A CategoryID that does not
// reference an existing category fails with ErrCategoryNotFound.
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) ([]domain.Product, error) {
	if q.CategoryID == nil {
		return h.repo.FindAllProducts(ctx)
	}

	if _, err := h.repo.FindCategoryByID(ctx, *q.CategoryID); err != nil {
		return nil, err
	}
	return h.repo.FindProductsByCategory(ctx, *q.CategoryID)
}
