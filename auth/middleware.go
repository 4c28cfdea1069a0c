package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"soapstone/errors"
)

type contextKey string

const OwnerIDKey contextKey = "owner_id"

// RequireOwner resolves the caller identity and injects the owner id into the request context.
func RequireOwner(resolver IdentityResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID, err := resolver.OwnerID(r.Header.Get("Authorization"))
			if err != nil {
				log.WarnContext(r.Context(), "Rejected request without a valid identity",
					"path", r.URL.Path,
					"error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(errors.MapToHTTPStatus(err))
				_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}
			ctx := context.WithValue(r.Context(), OwnerIDKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerID returns the owner id injected by RequireOwner, or "" outside of it.
func OwnerID(ctx context.Context) string {
	ownerID, _ := ctx.Value(OwnerIDKey).(string)
	return ownerID
}
