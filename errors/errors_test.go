package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapToHTTPStatus(t *testing.T) {
	req := require.New(t)

	req.Equal(http.StatusOK, MapToHTTPStatus(nil))
	req.Equal(http.StatusBadRequest, MapToHTTPStatus(ErrInvalidContent))
	req.Equal(http.StatusBadRequest, MapToHTTPStatus(fmt.Errorf("create: %w", ErrInvalidLocation)))
	req.Equal(http.StatusUnauthorized, MapToHTTPStatus(ErrUnauthorized))
	req.Equal(http.StatusUnauthorized, MapToHTTPStatus(ErrInvalidToken))
	req.Equal(http.StatusInternalServerError, MapToHTTPStatus(ErrDocumentNotFound))
	req.Equal(http.StatusInternalServerError, MapToHTTPStatus(fmt.Errorf("disk full")))

	req.True(IsValidation(ErrInvalidLocation))
	req.False(IsValidation(ErrUnknownCollection))
}
