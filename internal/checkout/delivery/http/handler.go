package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	cartdomain "github.com/greenmart/storefront/internal/cart/domain"
	"github.com/greenmart/storefront/internal/checkout/usecase/query"
	"github.com/greenmart/storefront/pkg/metrics"
	"github.com/greenmart/storefront/pkg/session"
)

// CheckoutHandler handles the read-only checkout summary page.
type CheckoutHandler struct {
	summarizeHandler *query.SummarizeHandler
	sessions         *session.Manager
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(cart cartdomain.CartRepository, sessions *session.Manager) *CheckoutHandler {
	return &CheckoutHandler{
		summarizeHandler: query.NewSummarizeHandler(cart),
		sessions:         sessions,
	}
}

// Summarize handles GET /checkout/
func (h *CheckoutHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	summary, err := h.summarizeHandler.Handle(r.Context(), query.SummarizeQuery{UserID: s.Principal.UserID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"cart_items": summary.Items,
		"total":      summary.Total,
	})
}

// respondJSON sends a JSON response
func (h *CheckoutHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *CheckoutHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the checkout routes
func (h *CheckoutHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/checkout/", metrics.Middleware("/checkout/", h.sessions.RequireUser(h.Summarize))).Methods("GET")
}
