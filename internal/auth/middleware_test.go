package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func protectedEcho(t *testing.T, svc *Service) (http.Handler, *string) {
	t.Helper()
	var seenUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		seenUserID = id
		w.WriteHeader(http.StatusOK)
	})
	return svc.RequireUser(zap.NewNop().Sugar())(inner), &seenUserID
}

func TestRequireUserAcceptsValidToken(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	u, token, err := svc.Register(context.Background(), "a@x.com", "password123")
	require.NoError(t, err)

	handler, seen := protectedEcho(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, u.ID, *seen)
}

func TestRequireUserRejectsUniformly(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	_, token, err := svc.Register(context.Background(), "a@x.com", "password123")
	require.NoError(t, err)

	// signed with the same secret the service trusts, but already expired
	expiredIssuer := NewTokenIssuer(TokenConfig{Secret: []byte("test-secret"), TTL: -time.Minute})
	expiredToken, err := expiredIssuer.Issue("someone", "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + token},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expiredToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := protectedEcho(t, svc)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"detail":"not authenticated"}`, rec.Body.String())
		})
	}
}

func TestRequireUserLowercaseBearer(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	_, token, err := svc.Register(context.Background(), "a@x.com", "password123")
	require.NoError(t, err)

	handler, _ := protectedEcho(t, svc)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
