package lifecycle

import (
	"pawBack/internal/models"
)

// Caller roles relative to a request.
const (
	RoleProvider  = "provider"
	RoleRequester = "requester"
)

// transitions maps role -> current status -> allowed target statuses.
// Completed, cancelled and rejected are terminal: no entries, no way out.
var transitions = map[string]map[string]map[string]struct{}{
	RoleProvider: {
		models.StatusPending: {
			models.StatusAccepted: {},
			models.StatusRejected: {},
		},
		models.StatusAccepted: {
			models.StatusCompleted: {},
			models.StatusCancelled: {},
		},
	},
	RoleRequester: {
		models.StatusPending: {
			models.StatusCancelled: {},
		},
		models.StatusAccepted: {
			models.StatusCancelled: {},
		},
	},
}

// RoleFor returns the caller's role relative to the request, or "" when the
// caller is not a party to it.
func RoleFor(req models.ServiceRequest, callerID int) string {
	switch callerID {
	case req.ProviderID:
		return RoleProvider
	case req.RequesterID:
		return RoleRequester
	default:
		return ""
	}
}

// CanTransition returns whether the role may move a request from the current
// status to the target. A no-op transition is not allowed.
func CanTransition(role, from, to string) bool {
	allowed, ok := transitions[role][from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// AllowedTransitions returns every status the caller may move the request
// to. Used by clients to enable or disable action buttons.
func AllowedTransitions(req models.ServiceRequest, callerID int) []string {
	role := RoleFor(req, callerID)
	allowed, ok := transitions[role][req.Status]
	if !ok {
		return nil
	}
	targets := make([]string, 0, len(allowed))
	for _, s := range []string{models.StatusAccepted, models.StatusRejected, models.StatusCompleted, models.StatusCancelled} {
		if _, ok := allowed[s]; ok {
			targets = append(targets, s)
		}
	}
	return targets
}

// ValidateTransition checks a proposed status change. It performs no I/O and
// must run before the backend is called. Returns nil when the change is
// allowed, *models.AuthorizationError when the caller is not a party to the
// request, and *models.InvalidTransitionError otherwise.
func ValidateTransition(req models.ServiceRequest, callerID int, target string) error {
	role := RoleFor(req, callerID)
	if role == "" {
		return &models.AuthorizationError{CallerID: callerID, RequestID: req.ID}
	}
	if !CanTransition(role, req.Status, target) {
		return &models.InvalidTransitionError{Role: role, From: req.Status, To: target}
	}
	return nil
}
