package services

import (
	"context"
	"errors"

	"pawBack/internal/models"
	"pawBack/internal/repositories"
)

// ListingRepo is the backend gateway surface the listing service needs.
type ListingRepo interface {
	CreateListing(ctx context.Context, l models.ServiceListing) (models.ServiceListing, error)
	GetListingByID(ctx context.Context, id int) (models.ServiceListing, error)
	GetListingsWithFilters(ctx context.Context, filter models.ListingFilter) ([]models.ServiceListing, error)
	UpdateListing(ctx context.Context, id int, patch models.ListingUpdate) (models.ServiceListing, error)
	SoftDeleteListing(ctx context.Context, id int) error
	HardDeleteListing(ctx context.Context, id int) error
}

type ListingService struct {
	ListingRepo ListingRepo
}

func (s *ListingService) ListListings(ctx context.Context, filter models.ListingFilter) ([]models.ServiceListing, error) {
	listings, err := s.ListingRepo.GetListingsWithFilters(ctx, filter)
	if err != nil {
		return nil, wrapTransport("list listings", err)
	}
	return listings, nil
}

func (s *ListingService) GetListingByID(ctx context.Context, id int) (models.ServiceListing, error) {
	l, err := s.ListingRepo.GetListingByID(ctx, id)
	if err != nil {
		return models.ServiceListing{}, wrapTransport("get listing", err)
	}
	return l, nil
}

func (s *ListingService) CreateListing(ctx context.Context, input models.ListingInput) (models.ServiceListing, error) {
	l := models.ServiceListing{
		Title:         input.Title,
		Description:   input.Description,
		ProviderID:    input.ProviderID,
		ServiceTypeID: input.ServiceTypeID,
		Price:         input.Price,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		Photos:        input.Photos,
		Schedule:      NormalizeScheduleFields(input.Schedule, input.StartTime, input.ScheduledDate),
		IsActive:      true,
	}
	created, err := s.ListingRepo.CreateListing(ctx, l)
	if err != nil {
		return models.ServiceListing{}, wrapTransport("create listing", err)
	}
	return created, nil
}

// UpdateListing applies a partial update. The owning provider is immutable:
// any provider_id in the patch is dropped before it reaches the gateway.
// Deprecated schedule fields are folded in against the stored schedule.
func (s *ListingService) UpdateListing(ctx context.Context, id int, patch models.ListingUpdate) (models.ServiceListing, error) {
	patch.ProviderID = nil

	if patch.StartTime != nil || patch.ScheduledDate != nil {
		base := patch.Schedule
		if base == nil {
			existing, err := s.ListingRepo.GetListingByID(ctx, id)
			if err != nil {
				return models.ServiceListing{}, wrapTransport("get listing", err)
			}
			base = &existing.Schedule
		}
		var startTime, scheduledDate string
		if patch.StartTime != nil {
			startTime = *patch.StartTime
		}
		if patch.ScheduledDate != nil {
			scheduledDate = *patch.ScheduledDate
		}
		folded := NormalizeScheduleFields(base, startTime, scheduledDate)
		patch.Schedule = &folded
		patch.StartTime = nil
		patch.ScheduledDate = nil
	}

	updated, err := s.ListingRepo.UpdateListing(ctx, id, patch)
	if err != nil {
		return models.ServiceListing{}, wrapTransport("update listing", err)
	}
	return updated, nil
}

// RemoveListing soft-deletes by default; hard removal is a separate,
// explicit choice by the owner.
func (s *ListingService) RemoveListing(ctx context.Context, id int, hard bool) error {
	var err error
	if hard {
		err = s.ListingRepo.HardDeleteListing(ctx, id)
	} else {
		err = s.ListingRepo.SoftDeleteListing(ctx, id)
	}
	if err != nil {
		return wrapTransport("remove listing", err)
	}
	return nil
}

// wrapTransport turns infrastructure failures into TransportError while
// letting domain and shape errors pass through unchanged.
func wrapTransport(op string, err error) error {
	if err == nil {
		return nil
	}
	var malformed *models.MalformedResponseError
	if errors.As(err, &malformed) {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrListingNotFound):
		return models.ErrListingNotFound
	case errors.Is(err, repositories.ErrRequestNotFound):
		return models.ErrRequestNotFound
	case errors.Is(err, models.ErrServiceTypeNotFound):
		return err
	}
	return &models.TransportError{Op: op, Err: err}
}
