package session

import (
	"context"
	"net/http"
)

type contextKey string

const sessionContextKey contextKey = "storefront_session"

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// FromContext extracts the session placed by RequireUser.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(*Session)
	return s, ok
}

// RequireUser resolves the request's session and requires an authenticated
// principal. Requests without one are redirected to the login page.
func (m *Manager) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Resolve(r)
		if err != nil || !s.Authenticated() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	}
}
