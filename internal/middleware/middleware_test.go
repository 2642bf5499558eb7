package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopledger/internal/transport"
	"shopledger/internal/user"
)

func TestAuthMiddleware_ValidBearerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := user.GenerateJWT("u-1", "ana@shop.test", true)
	require.NoError(t, err)

	var gotID string
	var gotAdmin bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = transport.UserID(r.Context())
		gotAdmin = transport.IsAdmin(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	AuthMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "u-1", gotID)
	assert.True(t, gotAdmin)
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := user.GenerateJWT("u-2", "bob@shop.test", false)
	require.NoError(t, err)

	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = transport.UserID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	AuthMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "u-2", gotID)
}

func TestAuthMiddleware_InvalidTokenIsAnonymous(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var hasID bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasID = transport.UserID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	AuthMiddleware(next).ServeHTTP(rec, req)

	// the request still reaches the handler, just without identity
	assert.False(t, hasID)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddleware_StrictTierOnAuthPaths(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := RateLimitMiddleware(next)

	var last int
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.9.9.9:1234"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestRateLimitMiddleware_IdentityIsolation(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := RateLimitMiddleware(next)

	// exhaust one IP's strict tier
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.1.1.1:1234"
		limited.ServeHTTP(httptest.NewRecorder(), req)
	}

	// a different IP is unaffected
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.2.2.2:1234"
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	var ctxID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the id placed in the context matches the response header
		ctxID = w.Header().Get("X-Request-ID")
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	RequestIDMiddleware(next).ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, rec.Header().Get("X-Request-ID"), ctxID)

	// a caller-supplied id is echoed back
	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec = httptest.NewRecorder()
	RequestIDMiddleware(next).ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}
