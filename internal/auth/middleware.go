package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type contextKey struct{}

var userIDKey contextKey

// UserIDFromContext returns the authenticated user id placed on the request
// context by RequireUser.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// RequireUser returns a middleware that resolves the Authorization header to
// an authenticated user id. Missing header, bad scheme, invalid or expired
// token, and a subject that no longer exists all yield 401 uniformly.
func (s *Service) RequireUser(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
				unauthorized(w)
				return
			}
			token := strings.TrimSpace(header[len("bearer "):])
			userID, err := s.ResolveToken(r.Context(), token)
			if err != nil {
				logger.Debugw("token rejected", "err", err)
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"detail":"not authenticated"}`))
}
