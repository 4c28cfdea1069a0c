package auth

import (
	"strings"

	"soapstone/errors"
)

// DefaultFallbackOwnerID is used as the owner of every request when authentication is off.
const DefaultFallbackOwnerID = "TestUser"

// IdentityResolver turns an Authorization header into an opaque owner id.
type IdentityResolver struct {
	enabled         bool
	signingKey      []byte
	fallbackOwnerID string
}

func NewIdentityResolver(enabled bool, signingKey string, fallbackOwnerID string) IdentityResolver {
	if fallbackOwnerID == "" {
		fallbackOwnerID = DefaultFallbackOwnerID
	}
	return IdentityResolver{
		enabled:         enabled,
		signingKey:      []byte(signingKey),
		fallbackOwnerID: fallbackOwnerID,
	}
}

// OwnerID returns the token subject, or the fallback owner when authentication is disabled.
func (r IdentityResolver) OwnerID(authorization string) (string, error) {
	if !r.enabled {
		return r.fallbackOwnerID, nil
	}
	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", errors.ErrUnauthorized
	}
	return ValidateToken(strings.TrimSpace(token), r.signingKey)
}
