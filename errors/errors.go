package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Validation failures. Both are flat: the message never says which rule failed.
	ErrInvalidLocation = fmt.Errorf("invalid location")
	ErrInvalidContent  = fmt.Errorf("invalid message content")

	ErrDocumentNotFound  = fmt.Errorf("document not found")
	ErrUnknownCollection = fmt.Errorf("unknown collection")
	ErrUnauthorized      = fmt.Errorf("missing bearer token")
	ErrInvalidToken      = fmt.Errorf("invalid token")
)

// IsValidation reports whether err rejects the request body itself.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidLocation) || errors.Is(err, ErrInvalidContent)
}

// MapToHTTPStatus translates domain errors into the status code returned to the caller.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
