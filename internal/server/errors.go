package server

import (
	"errors"
	"net/http"

	"github.com/yaswanth-142004/EZ-Search/internal/dsa"
	"github.com/yaswanth-142004/EZ-Search/internal/types"
)

// ErrBadRequest marks malformed request bodies
var ErrBadRequest = errors.New("invalid request body")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var ve *types.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, dsa.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
