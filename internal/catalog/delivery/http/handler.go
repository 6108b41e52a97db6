package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/greenmart/storefront/internal/catalog/domain"
	"github.com/greenmart/storefront/internal/catalog/usecase/query"
	"github.com/greenmart/storefront/pkg/logger"
	"github.com/greenmart/storefront/pkg/metrics"
)

// CatalogHandler handles the public browse and search pages. Every page
// view carries the category list, which backs the site navigation.
type CatalogHandler struct {
	listCategories *query.ListCategoriesHandler
	listProducts   *query.ListProductsHandler
	getProduct     *query.GetProductHandler
	search         *query.SearchProductsHandler

	repo domain.CatalogRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(repo domain.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{
		listCategories: query.NewListCategoriesHandler(repo),
		listProducts:   query.NewListProductsHandler(repo),
		getProduct:     query.NewGetProductHandler(repo),
		search:         query.NewSearchProductsHandler(repo),
		repo:           repo,
	}
}

// Home handles GET /home/
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.listCategories.Handle(ctx)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	products, err := h.listProducts.Handle(ctx, query.ListProductsQuery{})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"products":   products,
	})
}

// CategoryProducts handles GET /category/{id}/
func (h *CatalogHandler) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	category, err := h.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	products, err := h.listProducts.Handle(ctx, query.ListProductsQuery{CategoryID: &id})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	categories, err := h.listCategories.Handle(ctx)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"category":   category,
		"products":   products,
	})
}

// ProductDetail handles GET /product/{id}/
func (h *CatalogHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.getProduct.Handle(ctx, query.GetProductQuery{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	categories, err := h.listCategories.Handle(ctx)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"product":    product,
	})
}

// Search handles GET /search/?q=
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")

	results, err := h.search.Handle(ctx, query.SearchProductsQuery{Query: q})
	if err != nil {
		logger.Error(ctx).Err(err).Str("query", q).Msg("product search failed")
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	categories, err := h.listCategories.Handle(ctx)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"query":      q,
		"results":    results,
	})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func (h *CatalogHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *CatalogHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/home/", metrics.Middleware("/home/", h.Home)).Methods("GET")
	router.HandleFunc("/category/{id}/", metrics.Middleware("/category/{id}/", h.CategoryProducts)).Methods("GET")
	router.HandleFunc("/product/{id}/", metrics.Middleware("/product/{id}/", h.ProductDetail)).Methods("GET")
	router.HandleFunc("/search/", metrics.Middleware("/search/", h.Search)).Methods("GET")
}
