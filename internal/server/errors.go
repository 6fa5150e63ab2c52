package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/career-roadmap/internal/analysis"
	"github.com/jonathan/career-roadmap/internal/profiler"
	"github.com/jonathan/career-roadmap/internal/schemas"
)

// ErrValidation indicates a request body that failed validation.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnauthorized indicates a missing or invalid bearer token.
type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "missing or invalid authorization"
}

// HTTPStatus maps an error to the HTTP status code it should produce.
// Stage validation failures are the caller's problem (the inputs could not
// be structured into a valid profile); provider failures are ours.
func HTTPStatus(err error) int {
	var requestErr *ErrValidation
	var unauthorizedErr *ErrUnauthorized
	var profileErr *profiler.ValidationError
	var schemaErr *schemas.ValidationError

	switch {
	case errors.As(err, &requestErr), errors.As(err, &profileErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &unauthorizedErr):
		return http.StatusUnauthorized
	default:
	}

	var profileAPIErr *profiler.APICallError
	var analysisAPIErr *analysis.APICallError
	if errors.As(err, &profileAPIErr) || errors.As(err, &analysisAPIErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
