package chi

import (
	"context"
	"net/http"
	"strings"
)

type ownerKey struct{}

// OwnerFromContext returns the owner id resolved by OwnerAuthMiddleware.
func OwnerFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ownerKey{}).(string)
	return id, ok && id != ""
}

// ContextWithOwner stores an authenticated owner id in the context.
func ContextWithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerAuthMiddleware resolves a Bearer token to a store owner id.
// Unlike public routes, owner routes are never open: with no tokens
// configured every request is rejected.
func OwnerAuthMiddleware(tokens map[string]string) func(http.Handler) http.Handler {
	owners := make(map[string]string, len(tokens))
	for token, owner := range tokens {
		if token != "" && owner != "" {
			owners[token] = owner
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			owner, ok := owners[auth[len(bearerPrefix):]]
			if !ok {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid owner token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithOwner(r.Context(), owner)))
		})
	}
}
