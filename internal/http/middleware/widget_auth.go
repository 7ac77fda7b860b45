package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// WidgetTokenHeader carries the session token issued at session creation.
const WidgetTokenHeader = "X-Widget-Token"

type contextKey string

const sessionIDKey contextKey = "widgetSessionID"

// TokenVerifier checks a session token and returns the session id it names.
type TokenVerifier interface {
	Enabled() bool
	Verify(token string) (string, error)
}

// WidgetSession requires a valid session token whose subject matches the
// {param} route parameter. Browsers cannot set headers on WebSocket
// handshakes, so the token may also come in the token query parameter.
// With a disabled verifier every request passes.
func WidgetSession(verifier TokenVerifier, param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, param)
			if verifier == nil || !verifier.Enabled() {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionIDKey, id)))
				return
			}

			token := strings.TrimSpace(r.Header.Get(WidgetTokenHeader))
			if token == "" {
				token = strings.TrimSpace(r.URL.Query().Get("token"))
			}
			if token == "" {
				http.Error(w, "missing widget token", http.StatusUnauthorized)
				return
			}
			subject, err := verifier.Verify(token)
			if err != nil || subject != id {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionIDKey, subject)))
		})
	}
}

// SessionIDFromContext returns the authorised session id if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}
