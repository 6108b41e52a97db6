package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	catalogdomain "github.com/greenmart/storefront/internal/catalog/domain"
	"github.com/greenmart/storefront/internal/wishlist/domain"
	"github.com/greenmart/storefront/internal/wishlist/usecase/command"
	"github.com/greenmart/storefront/internal/wishlist/usecase/query"
	"github.com/greenmart/storefront/pkg/logger"
	"github.com/greenmart/storefront/pkg/metrics"
	"github.com/greenmart/storefront/pkg/session"
)

// WishlistHandler handles the authenticated wishlist routes.
type WishlistHandler struct {
	addHandler    *command.AddItemHandler
	removeHandler *command.RemoveItemHandler
	viewHandler   *query.ViewWishlistHandler
	sessions      *session.Manager
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlist domain.WishlistRepository, catalog catalogdomain.CatalogRepository, sessions *session.Manager) *WishlistHandler {
	return &WishlistHandler{
		addHandler:    command.NewAddItemHandler(wishlist, catalog),
		removeHandler: command.NewRemoveItemHandler(wishlist),
		viewHandler:   query.NewViewWishlistHandler(wishlist),
		sessions:      sessions,
	}
}

// AddToWishlist handles GET /add-to-wishlist/{id}/
func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	productID, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, "/home/", http.StatusSeeOther)
		return
	}

	cmd := command.AddItemCommand{UserID: s.Principal.UserID, ProductID: productID}
	if err := h.addHandler.Handle(r.Context(), cmd); err != nil {
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			if err := h.sessions.AddFlash(r.Context(), s, "Product not found"); err != nil {
				logger.Error(r.Context()).Err(err).Msg("failed to store flash")
			}
			http.Redirect(w, r, "/home/", http.StatusSeeOther)
			return
		}
		logger.Error(r.Context()).Err(err).Uint("product_id", productID).Msg("add to wishlist failed")
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.Redirect(w, r, "/wishlist/", http.StatusSeeOther)
}

// RemoveFromWishlist handles GET /wishlist/remove/{id}/
func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	productID, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, "/wishlist/", http.StatusSeeOther)
		return
	}

	cmd := command.RemoveItemCommand{UserID: s.Principal.UserID, ProductID: productID}
	if err := h.removeHandler.Handle(r.Context(), cmd); err != nil {
		logger.Error(r.Context()).Err(err).Uint("product_id", productID).Msg("remove from wishlist failed")
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.Redirect(w, r, "/wishlist/", http.StatusSeeOther)
}

// ViewWishlist handles GET /wishlist/
func (h *WishlistHandler) ViewWishlist(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	items, err := h.viewHandler.Handle(r.Context(), query.ViewWishlistQuery{UserID: s.Principal.UserID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	flashes, err := h.sessions.PopFlashes(r.Context(), s)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("failed to pop flashes")
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"wishlist_items": items,
		"flashes":        flashes,
	})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func (h *WishlistHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *WishlistHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the wishlist routes
func (h *WishlistHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/add-to-wishlist/{id}/", metrics.Middleware("/add-to-wishlist/{id}/", h.sessions.RequireUser(h.AddToWishlist))).Methods("GET", "POST")
	router.HandleFunc("/wishlist/", metrics.Middleware("/wishlist/", h.sessions.RequireUser(h.ViewWishlist))).Methods("GET")
	router.HandleFunc("/wishlist/remove/{id}/", metrics.Middleware("/wishlist/remove/{id}/", h.sessions.RequireUser(h.RemoveFromWishlist))).Methods("GET")
}
