package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/greenmart/storefront/pkg/auth"
)

// CookieName is the name of the session cookie.
const CookieName = "storefront_session"

// ErrNotFound is returned when a session ID has no server-side record,
// either because it never existed or because it was invalidated.
var ErrNotFound = errors.New("session not found")

// Principal is the authenticated identity attached to a session.
// A zero UserID marks an anonymous session (used only to carry flashes).
type Principal struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Session is the server-side session record.
type Session struct {
	ID        string    `json:"id"`
	Principal Principal `json:"principal"`
	Flashes   []string  `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Authenticated reports whether the session carries a logged-in user.
func (s *Session) Authenticated() bool {
	return s.Principal.UserID != 0
}

// Store persists session records keyed by session ID.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Manager creates, resolves and invalidates sessions. The browser cookie
// holds a signed token referencing the record; deleting the record kills
// the session server-side regardless of the cookie's lifetime.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session manager on top of a store.
func NewManager(store Store, secret []byte, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: secret, ttl: ttl}
}

// Start creates a new session for the principal and sets the cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, principal Principal) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		Principal: principal,
		CreatedAt: time.Now(),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}

	token, err := auth.SignSessionToken(m.secret, s.ID, m.ttl)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s, nil
}

// Resolve returns the session referenced by the request cookie, or
// ErrNotFound when there is no cookie, the token fails validation, or
// the server-side record is gone.
func (m *Manager) Resolve(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrNotFound
	}

	id, err := auth.ParseSessionToken(m.secret, cookie.Value)
	if err != nil {
		return nil, ErrNotFound
	}

	return m.store.Get(r.Context(), id)
}

// End invalidates the request's session and clears the cookie. Ending a
// request with no live session is a no-op.
func (m *Manager) End(w http.ResponseWriter, r *http.Request) error {
	s, err := m.Resolve(r)
	if err == nil {
		if err := m.store.Delete(r.Context(), s.ID); err != nil {
			return err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// AddFlash appends a one-shot message to the session.
func (m *Manager) AddFlash(ctx context.Context, s *Session, message string) error {
	s.Flashes = append(s.Flashes, message)
	return m.store.Save(ctx, s)
}

// PopFlashes returns and clears the session's flash messages.
func (m *Manager) PopFlashes(ctx context.Context, s *Session) ([]string, error) {
	if len(s.Flashes) == 0 {
		return nil, nil
	}
	flashes := s.Flashes
	s.Flashes = nil
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return flashes, nil
}
