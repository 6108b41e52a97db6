package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/greenmart/storefront/internal/cart/domain"
	"github.com/greenmart/storefront/internal/cart/usecase/command"
	"github.com/greenmart/storefront/internal/cart/usecase/query"
	catalogdomain "github.com/greenmart/storefront/internal/catalog/domain"
	"github.com/greenmart/storefront/pkg/logger"
	"github.com/greenmart/storefront/pkg/metrics"
	"github.com/greenmart/storefront/pkg/session"
)

// CartHandler handles the authenticated cart routes.
type CartHandler struct {
	addHandler    *command.AddItemHandler
	removeHandler *command.RemoveItemHandler
	viewHandler   *query.ViewCartHandler
	sessions      *session.Manager
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cart domain.CartRepository, catalog catalogdomain.CatalogRepository, sessions *session.Manager) *CartHandler {
	return &CartHandler{
		addHandler:    command.NewAddItemHandler(cart, catalog),
		removeHandler: command.NewRemoveItemHandler(cart),
		viewHandler:   query.NewViewCartHandler(cart),
		sessions:      sessions,
	}
}

// AddToCart handles POST /add-to-cart/{id}/ with form field "quantity".
// A missing quantity defaults to 1.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	productID, err := parseID(r)
	if err != nil {
		h.flashAndRedirect(w, r, s, "Invalid product", "/home/")
		return
	}

	quantity := 1
	if raw := r.FormValue("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil {
			h.flashAndRedirect(w, r, s, "Quantity must be a positive integer", productPath(productID))
			return
		}
	}

	cmd := command.AddItemCommand{
		UserID:    s.Principal.UserID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := h.addHandler.Handle(r.Context(), cmd); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity):
			h.flashAndRedirect(w, r, s, "Quantity must be a positive integer", productPath(productID))
		case errors.Is(err, catalogdomain.ErrProductNotFound):
			h.flashAndRedirect(w, r, s, "Product not found", "/home/")
		default:
			logger.Error(r.Context()).Err(err).Uint("product_id", productID).Msg("add to cart failed")
			h.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	http.Redirect(w, r, "/cart/", http.StatusSeeOther)
}

// RemoveFromCart handles GET /cart/remove/{id}/
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	productID, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, "/cart/", http.StatusSeeOther)
		return
	}

	cmd := command.RemoveItemCommand{UserID: s.Principal.UserID, ProductID: productID}
	if err := h.removeHandler.Handle(r.Context(), cmd); err != nil {
		logger.Error(r.Context()).Err(err).Uint("product_id", productID).Msg("remove from cart failed")
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.Redirect(w, r, "/cart/", http.StatusSeeOther)
}

// ViewCart handles GET /cart/
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	view, err := h.viewHandler.Handle(r.Context(), query.ViewCartQuery{UserID: s.Principal.UserID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	flashes, err := h.sessions.PopFlashes(r.Context(), s)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("failed to pop flashes")
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"cart_items": view.Items,
		"total":      view.Total,
		"flashes":    flashes,
	})
}

func (h *CartHandler) flashAndRedirect(w http.ResponseWriter, r *http.Request, s *session.Session, message, target string) {
	if err := h.sessions.AddFlash(r.Context(), s, message); err != nil {
		logger.Error(r.Context()).Err(err).Msg("failed to store flash")
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func productPath(id uint) string {
	return fmt.Sprintf("/product/%d/", id)
}

// respondJSON sends a JSON response
func (h *CartHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *CartHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the cart routes
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/add-to-cart/{id}/", metrics.Middleware("/add-to-cart/{id}/", h.sessions.RequireUser(h.AddToCart))).Methods("POST")
	router.HandleFunc("/cart/", metrics.Middleware("/cart/", h.sessions.RequireUser(h.ViewCart))).Methods("GET")
	router.HandleFunc("/cart/remove/{id}/", metrics.Middleware("/cart/remove/{id}/", h.sessions.RequireUser(h.RemoveFromCart))).Methods("GET")
}
