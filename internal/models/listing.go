package models

import (
	"time"
)

// AvailabilitySchedule is persisted as a JSON column on the listing row.
// ScheduledDate carries the deprecated start_time value for older clients;
// new writes go through services.NormalizeScheduleFields and never persist
// the deprecated fields themselves.
type AvailabilitySchedule struct {
	Days          []string `json:"days,omitempty"`
	Hours         string   `json:"hours,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	ScheduledDate string   `json:"scheduled_date,omitempty"`
}

type ServiceListing struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ProviderID    int      `json:"provider_id"`
	ServiceTypeID int      `json:"service_type_id"`
	Price         *float64 `json:"price,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Provider      struct {
		ID     int     `json:"id"`
		Name   string  `json:"name"`
		Rating float64 `json:"rating"`
	} `json:"provider"`
	Schedule  AvailabilitySchedule `json:"availability_schedule"`
	Photos    []Photo              `json:"photos,omitempty"`
	IsActive  bool                 `json:"is_active"`
	CreatedAt time.Time            `json:"created_at"`
}

type Photo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// ListingInput is the create payload. StartTime and ScheduledDate are the
// deprecated representation; they are folded into Schedule before persisting.
type ListingInput struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	ProviderID    int                   `json:"provider_id"`
	ServiceTypeID int                   `json:"service_type_id"`
	Price         *float64              `json:"price,omitempty"`
	Latitude      *float64              `json:"latitude,omitempty"`
	Longitude     *float64              `json:"longitude,omitempty"`
	Schedule      *AvailabilitySchedule `json:"availability_schedule,omitempty"`
	Photos        []Photo               `json:"photos,omitempty"`

	// Deprecated fields, accepted for older clients only.
	StartTime     string `json:"start_time,omitempty"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
}

// ListingUpdate is a partial update. Nil fields are left untouched.
// ProviderID is accepted for wire compatibility but never persisted.
type ListingUpdate struct {
	Title         *string               `json:"title,omitempty"`
	Description   *string               `json:"description,omitempty"`
	ServiceTypeID *int                  `json:"service_type_id,omitempty"`
	Price         *float64              `json:"price,omitempty"`
	Latitude      *float64              `json:"latitude,omitempty"`
	Longitude     *float64              `json:"longitude,omitempty"`
	Schedule      *AvailabilitySchedule `json:"availability_schedule,omitempty"`
	IsActive      *bool                 `json:"is_active,omitempty"`
	ProviderID    *int                  `json:"provider_id,omitempty"`

	// Deprecated fields, accepted for older clients only.
	StartTime     *string `json:"start_time,omitempty"`
	ScheduledDate *string `json:"scheduled_date,omitempty"`
}

// ListingFilter parameterizes the next listings fetch. Fields are optional
// and conjunctive. Without IncludeInactive only active listings are returned.
type ListingFilter struct {
	ServiceTypeID   int     `json:"service_type_id,omitempty"`
	ProviderIDs     []int   `json:"provider_ids,omitempty"`
	Latitude        float64 `json:"latitude,omitempty"`
	Longitude       float64 `json:"longitude,omitempty"`
	RadiusKM        float64 `json:"radius_km,omitempty"`
	IncludeInactive bool    `json:"include_inactive,omitempty"`
}
