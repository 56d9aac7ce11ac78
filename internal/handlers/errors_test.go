package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"pawBack/internal/models"
)

func TestStatusFor(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		if got := statusFor(models.ErrListingNotFound); got != http.StatusNotFound {
			t.Fatalf("expected %d, got %d", http.StatusNotFound, got)
		}
		wrapped := fmt.Errorf("get request: %w", models.ErrRequestNotFound)
		if got := statusFor(wrapped); got != http.StatusNotFound {
			t.Fatalf("expected %d for wrapped sentinel, got %d", http.StatusNotFound, got)
		}
	})

	t.Run("authorization", func(t *testing.T) {
		err := &models.AuthorizationError{CallerID: 3, RequestID: 9}
		if got := statusFor(err); got != http.StatusForbidden {
			t.Fatalf("expected %d, got %d", http.StatusForbidden, got)
		}
	})

	t.Run("invalid transition", func(t *testing.T) {
		err := &models.InvalidTransitionError{Role: "provider", From: "completed", To: "accepted"}
		if got := statusFor(err); got != http.StatusConflict {
			t.Fatalf("expected %d, got %d", http.StatusConflict, got)
		}
	})

	t.Run("transport", func(t *testing.T) {
		err := &models.TransportError{Op: "list listings", Err: errors.New("connection refused")}
		if got := statusFor(err); got != http.StatusBadGateway {
			t.Fatalf("expected %d, got %d", http.StatusBadGateway, got)
		}
	})

	t.Run("defaults otherwise", func(t *testing.T) {
		if got := statusFor(errors.New("generic error")); got != http.StatusInternalServerError {
			t.Fatalf("expected %d, got %d", http.StatusInternalServerError, got)
		}
	})
}
