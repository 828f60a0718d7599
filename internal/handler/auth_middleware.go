package handler

import (
	"context"
	"net/http"
	"strings"

	"canteen-connect/internal/model"
	"canteen-connect/internal/service"
)

type contextKey struct{}

var identityKey contextKey

// Authenticate resolves the bearer token into an identity and stores it in
// the request context. Requests without a valid token stop here with 401.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			respondMessage(w, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}

		identity, err := h.auth.ParseToken(token)
		if err != nil {
			respondMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates menu mutation. It must run after Authenticate.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFrom(r)
		if !ok {
			respondMessage(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if identity.Role != model.RoleAdmin {
			respondMessage(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFrom(r *http.Request) (service.Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(service.Identity)
	return identity, ok
}
