package services

import (
	"context"

	"pawBack/internal/lifecycle"
	"pawBack/internal/models"
)

// RequestRepo is the backend gateway surface the request service needs.
type RequestRepo interface {
	CreateRequest(ctx context.Context, req models.ServiceRequest) (models.ServiceRequest, error)
	GetRequestByID(ctx context.Context, id int) (models.ServiceRequest, error)
	GetRequestsWithFilters(ctx context.Context, filter models.RequestFilter) ([]models.ServiceRequest, error)
	UpdateRequestStatus(ctx context.Context, id int, fromStatus, toStatus string) (models.ServiceRequest, error)
}

type RequestService struct {
	RequestRepo RequestRepo
}

func (s *RequestService) ListRequests(ctx context.Context, filter models.RequestFilter) ([]models.ServiceRequest, error) {
	requests, err := s.RequestRepo.GetRequestsWithFilters(ctx, filter)
	if err != nil {
		return nil, wrapTransport("list requests", err)
	}
	return requests, nil
}

func (s *RequestService) GetRequestByID(ctx context.Context, id int) (models.ServiceRequest, error) {
	req, err := s.RequestRepo.GetRequestByID(ctx, id)
	if err != nil {
		return models.ServiceRequest{}, wrapTransport("get request", err)
	}
	return req, nil
}

// CreateRequest stamps the requester from the authenticated caller and
// forces the initial status. Values supplied in the input for either field
// are discarded, so a client cannot open a request on someone else's behalf.
func (s *RequestService) CreateRequest(ctx context.Context, callerID int, input models.RequestInput) (models.ServiceRequest, error) {
	req := models.ServiceRequest{
		RequesterID:   callerID,
		ProviderID:    input.ProviderID,
		ServiceTypeID: input.ServiceTypeID,
		ListingID:     input.ListingID,
		Title:         input.Title,
		Notes:         input.Notes,
		ScheduledDate: input.ScheduledDate,
		Status:        models.StatusPending,
	}
	created, err := s.RequestRepo.CreateRequest(ctx, req)
	if err != nil {
		return models.ServiceRequest{}, wrapTransport("create request", err)
	}
	return created, nil
}

// UpdateRequestStatus runs the lifecycle validator against the stored row
// before the status write is issued. The write itself is optimistic on the
// current status, so a concurrent transition loses cleanly.
func (s *RequestService) UpdateRequestStatus(ctx context.Context, callerID, id int, target string) (models.ServiceRequest, error) {
	current, err := s.RequestRepo.GetRequestByID(ctx, id)
	if err != nil {
		return models.ServiceRequest{}, wrapTransport("get request", err)
	}

	if err := lifecycle.ValidateTransition(current, callerID, target); err != nil {
		return models.ServiceRequest{}, err
	}

	updated, err := s.RequestRepo.UpdateRequestStatus(ctx, id, current.Status, target)
	if err != nil {
		return models.ServiceRequest{}, wrapTransport("update request status", err)
	}
	return updated, nil
}
