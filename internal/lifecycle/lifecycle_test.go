package lifecycle

import (
	"errors"
	"testing"

	"pawBack/internal/models"
)

func request(status string) models.ServiceRequest {
	return models.ServiceRequest{ID: 7, RequesterID: 10, ProviderID: 20, Status: status}
}

func TestCanTransition(t *testing.T) {
	if !CanTransition(RoleProvider, models.StatusPending, models.StatusAccepted) {
		t.Fatal("expected provider pending -> accepted to be allowed")
	}
	if !CanTransition(RoleProvider, models.StatusPending, models.StatusRejected) {
		t.Fatal("expected provider pending -> rejected to be allowed")
	}
	if !CanTransition(RoleProvider, models.StatusAccepted, models.StatusCompleted) {
		t.Fatal("expected provider accepted -> completed to be allowed")
	}
	if !CanTransition(RoleProvider, models.StatusAccepted, models.StatusCancelled) {
		t.Fatal("expected provider accepted -> cancelled to be allowed")
	}
	if !CanTransition(RoleRequester, models.StatusPending, models.StatusCancelled) {
		t.Fatal("expected requester pending -> cancelled to be allowed")
	}
	if !CanTransition(RoleRequester, models.StatusAccepted, models.StatusCancelled) {
		t.Fatal("expected requester accepted -> cancelled to be allowed")
	}
	if CanTransition(RoleRequester, models.StatusPending, models.StatusAccepted) {
		t.Fatal("requester must not accept their own request")
	}
	if CanTransition(RoleProvider, models.StatusPending, models.StatusCancelled) {
		t.Fatal("provider must not cancel a pending request")
	}
}

func TestTerminalStatusesRejectEverything(t *testing.T) {
	terminal := []string{models.StatusCompleted, models.StatusCancelled, models.StatusRejected}
	targets := []string{models.StatusPending, models.StatusAccepted, models.StatusCompleted, models.StatusCancelled, models.StatusRejected}
	for _, from := range terminal {
		req := request(from)
		for _, to := range targets {
			for _, caller := range []int{req.ProviderID, req.RequesterID} {
				err := ValidateTransition(req, caller, to)
				var ite *models.InvalidTransitionError
				if !errors.As(err, &ite) {
					t.Fatalf("expected invalid transition from terminal %s to %s, got %v", from, to, err)
				}
			}
		}
	}
}

func TestNoOpTransitionRejected(t *testing.T) {
	req := request(models.StatusPending)
	err := ValidateTransition(req, req.ProviderID, models.StatusPending)
	var ite *models.InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected no-op transition to be rejected, got %v", err)
	}
}

func TestStrangerGetsAuthorizationError(t *testing.T) {
	req := request(models.StatusPending)
	err := ValidateTransition(req, 999, models.StatusAccepted)
	var ae *models.AuthorizationError
	if !errors.As(err, &ae) {
		t.Fatalf("expected authorization error for stranger, got %v", err)
	}
	if ae.CallerID != 999 || ae.RequestID != req.ID {
		t.Fatalf("authorization error carries wrong ids: %+v", ae)
	}
}

func TestProviderCompletesThenRequesterCannotReopen(t *testing.T) {
	req := request(models.StatusAccepted)
	if err := ValidateTransition(req, req.ProviderID, models.StatusCompleted); err != nil {
		t.Fatalf("provider accepted -> completed: %v", err)
	}
	req.Status = models.StatusCompleted
	err := ValidateTransition(req, req.RequesterID, models.StatusAccepted)
	var ite *models.InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected invalid transition out of completed, got %v", err)
	}
}

func TestAllowedTransitions(t *testing.T) {
	req := request(models.StatusPending)
	got := AllowedTransitions(req, req.ProviderID)
	if len(got) != 2 || got[0] != models.StatusAccepted || got[1] != models.StatusRejected {
		t.Fatalf("provider pending transitions = %v", got)
	}
	got = AllowedTransitions(req, req.RequesterID)
	if len(got) != 1 || got[0] != models.StatusCancelled {
		t.Fatalf("requester pending transitions = %v", got)
	}
	if got := AllowedTransitions(request(models.StatusRejected), req.ProviderID); got != nil {
		t.Fatalf("expected no transitions out of rejected, got %v", got)
	}
	if got := AllowedTransitions(req, 999); got != nil {
		t.Fatalf("expected no transitions for stranger, got %v", got)
	}
}
