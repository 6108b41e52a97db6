package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/greenmart/storefront/internal/account/domain"
	"github.com/greenmart/storefront/internal/account/usecase/command"
	catalogdomain "github.com/greenmart/storefront/internal/catalog/domain"
	catalogquery "github.com/greenmart/storefront/internal/catalog/usecase/query"
	"github.com/greenmart/storefront/pkg/logger"
	"github.com/greenmart/storefront/pkg/metrics"
	"github.com/greenmart/storefront/pkg/session"
)

// AccountHandler handles registration, login and logout. Mutating routes
// answer with a redirect plus a session flash message; page views return
// their view model as JSON for the presentation layer to render, including
// the category list that backs the site navigation.
type AccountHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	listCategories  *catalogquery.ListCategoriesHandler
	sessions        *session.Manager
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(repo domain.UserRepository, catalog catalogdomain.CatalogRepository, sessions *session.Manager) *AccountHandler {
	return &AccountHandler{
		registerHandler: command.NewRegisterUserHandler(repo),
		loginHandler:    command.NewLoginUserHandler(repo),
		listCategories:  catalogquery.NewListCategoriesHandler(catalog),
		sessions:        sessions,
	}
}

// LoginPage handles GET /
func (h *AccountHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategories.Handle(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"page":       "login",
		"categories": categories,
		"flashes":    h.popFlashes(w, r),
	})
}

// RegisterPage handles GET /register
func (h *AccountHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategories.Handle(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"page":       "register",
		"categories": categories,
		"flashes":    h.popFlashes(w, r),
	})
}

// Register handles POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	cmd := command.RegisterUserCommand{
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
	}

	if _, err := h.registerHandler.Handle(r.Context(), cmd); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			h.flashAndRedirect(w, r, "Email already exists!", "/register")
		case errors.Is(err, domain.ErrInvalidRegistration):
			h.flashAndRedirect(w, r, "Please enter a valid email and a password of at least 6 characters", "/register")
		default:
			logger.Error(r.Context()).Err(err).Msg("registration failed")
			h.flashAndRedirect(w, r, "Registration failed, please try again", "/register")
		}
		return
	}

	// Registration does not log the user in; send them to the login page.
	h.flashAndRedirect(w, r, "Registration successful!", "/")
}

// Login handles POST /
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	cmd := command.LoginUserCommand{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	user, err := h.loginHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.flashAndRedirect(w, r, "Invalid email or password", "/")
		return
	}

	principal := session.Principal{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if _, err := h.sessions.Start(r.Context(), w, principal); err != nil {
		logger.Error(r.Context()).Err(err).Msg("failed to start session")
		h.respondError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	http.Redirect(w, r, "/home/", http.StatusSeeOther)
}

// Dashboard handles GET /dashboard/, the post-login landing alias.
func (h *AccountHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/home/", http.StatusSeeOther)
}

// Logout handles GET /logout/. Ending an already-dead session is a no-op.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(w, r); err != nil {
		logger.Error(r.Context()).Err(err).Msg("failed to end session")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// flashAndRedirect stores a one-shot message on the session (creating an
// anonymous session when none exists) and redirects.
func (h *AccountHandler) flashAndRedirect(w http.ResponseWriter, r *http.Request, message, target string) {
	ctx := r.Context()

	s, err := h.sessions.Resolve(r)
	if err != nil {
		s, err = h.sessions.Start(ctx, w, session.Principal{})
		if err != nil {
			logger.Error(ctx).Err(err).Msg("failed to start flash session")
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
	}
	if err := h.sessions.AddFlash(ctx, s, message); err != nil {
		logger.Error(ctx).Err(err).Msg("failed to store flash")
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *AccountHandler) popFlashes(w http.ResponseWriter, r *http.Request) []string {
	s, err := h.sessions.Resolve(r)
	if err != nil {
		return nil
	}
	flashes, err := h.sessions.PopFlashes(r.Context(), s)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("failed to pop flashes")
		return nil
	}
	return flashes
}

// respondJSON sends a JSON response
func (h *AccountHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *AccountHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the account routes
func (h *AccountHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", metrics.Middleware("/", h.LoginPage)).Methods("GET")
	router.HandleFunc("/", metrics.Middleware("/", h.Login)).Methods("POST")
	router.HandleFunc("/register", metrics.Middleware("/register", h.RegisterPage)).Methods("GET")
	router.HandleFunc("/register", metrics.Middleware("/register", h.Register)).Methods("POST")
	router.HandleFunc("/dashboard/", metrics.Middleware("/dashboard/", h.sessions.RequireUser(h.Dashboard))).Methods("GET")
	router.HandleFunc("/logout/", metrics.Middleware("/logout/", h.sessions.RequireUser(h.Logout))).Methods("GET")
}
