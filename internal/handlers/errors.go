package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pawBack/internal/models"
)

// statusFor maps domain errors onto HTTP status codes. Transport failures
// surface as 502 so clients treat them as retryable; 403 means the caller
// is not a party to the request, 409 a transition the lifecycle forbids.
func statusFor(err error) int {
	var authErr *models.AuthorizationError
	var transitionErr *models.InvalidTransitionError
	var transportErr *models.TransportError
	switch {
	case errors.Is(err, models.ErrListingNotFound),
		errors.Is(err, models.ErrRequestNotFound),
		errors.Is(err, models.ErrServiceTypeNotFound):
		return http.StatusNotFound
	case errors.As(err, &authErr):
		return http.StatusForbidden
	case errors.As(err, &transitionErr):
		return http.StatusConflict
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeError renders a domain error as a JSON body with the mapped status.
func writeError(w http.ResponseWriter, err error) {
	w.WriteHeader(statusFor(err))
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
