package middleware

import (
	"net/http"
	"strings"

	"shopledger/internal/transport"
	"shopledger/internal/user"
)

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// AuthMiddleware resolves the bearer token into the request context.
// Requests without a valid token pass through anonymous; handlers decide
// what requires identity.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := transport.WithUser(r.Context(), claims.UserID, claims.Email, claims.Admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
