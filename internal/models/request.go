package models

import (
	"time"
)

// Request lifecycle statuses. Transitions between them are owned by the
// lifecycle package; nothing else writes Status.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

type ServiceRequest struct {
	ID            int        `json:"id"`
	RequesterID   int        `json:"requester_id"`
	ProviderID    int        `json:"provider_id"`
	ServiceTypeID int        `json:"service_type_id"`
	ListingID     *int       `json:"listing_id,omitempty"`
	Title         string     `json:"title,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Status        string     `json:"status"`
	ScheduledDate *string    `json:"scheduled_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// RequestInput is the create payload. Status and RequesterID supplied by the
// caller are ignored: a new request is always pending and the requester is
// stamped from the authenticated identity.
type RequestInput struct {
	ProviderID    int     `json:"provider_id"`
	ServiceTypeID int     `json:"service_type_id"`
	ListingID     *int    `json:"listing_id,omitempty"`
	Title         string  `json:"title,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	ScheduledDate *string `json:"scheduled_date,omitempty"`

	RequesterID int    `json:"requester_id,omitempty"`
	Status      string `json:"status,omitempty"`
}

// RequestFilter parameterizes the next requests fetch. Fields are optional
// and conjunctive.
type RequestFilter struct {
	Statuses      []string `json:"statuses,omitempty"`
	ServiceTypeID int      `json:"service_type_id,omitempty"`
	RequesterID   int      `json:"requester_id,omitempty"`
	ProviderID    int      `json:"provider_id,omitempty"`
}
