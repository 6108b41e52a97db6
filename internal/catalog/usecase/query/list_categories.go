package query

import (
	"context"

	"github.com/greenmart/storefront/internal/catalog/domain"
)

// ListCategoriesHandler handles the list categories query
type ListCategoriesHandler struct {
	repo domain.CatalogRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.CatalogRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle returns every category, unfiltered.
func (h *ListCategoriesHandler) Handle(ctx context.Context) ([]domain.Category, error) {
	return h.repo.FindAllCategories(ctx)
}
