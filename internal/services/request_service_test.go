package services

import (
	"context"
	"errors"
	"testing"

	"pawBack/internal/models"
)

type fakeRequestRepo struct {
	requests      map[int]models.ServiceRequest
	statusWrites  int
	lastNewStatus string
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[int]models.ServiceRequest)}
}

func (f *fakeRequestRepo) CreateRequest(ctx context.Context, req models.ServiceRequest) (models.ServiceRequest, error) {
	req.ID = len(f.requests) + 1
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetRequestByID(ctx context.Context, id int) (models.ServiceRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return models.ServiceRequest{}, models.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) GetRequestsWithFilters(ctx context.Context, filter models.RequestFilter) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	for _, r := range f.requests {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateRequestStatus(ctx context.Context, id int, fromStatus, toStatus string) (models.ServiceRequest, error) {
	f.statusWrites++
	f.lastNewStatus = toStatus
	req, ok := f.requests[id]
	if !ok || req.Status != fromStatus {
		return models.ServiceRequest{}, models.ErrRequestNotFound
	}
	req.Status = toStatus
	f.requests[id] = req
	return req, nil
}

func TestCreateRequestForcesPendingAndRequester(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := &RequestService{RequestRepo: repo}

	created, err := svc.CreateRequest(context.Background(), 10, models.RequestInput{
		ProviderID:    20,
		ServiceTypeID: 3,
		RequesterID:   777, // spoof attempt
		Status:        models.StatusAccepted,
	})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if created.Status != models.StatusPending {
		t.Fatalf("status = %q, want pending", created.Status)
	}
	if created.RequesterID != 10 {
		t.Fatalf("requester_id = %d, want caller identity", created.RequesterID)
	}
}

func TestUpdateRequestStatusHappyPath(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = models.ServiceRequest{ID: 1, RequesterID: 10, ProviderID: 20, Status: models.StatusPending}
	svc := &RequestService{RequestRepo: repo}

	updated, err := svc.UpdateRequestStatus(context.Background(), 20, 1, models.StatusAccepted)
	if err != nil {
		t.Fatalf("UpdateRequestStatus: %v", err)
	}
	if updated.Status != models.StatusAccepted {
		t.Fatalf("status = %q", updated.Status)
	}
}

func TestUpdateRequestStatusRejectsBeforeWrite(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = models.ServiceRequest{ID: 1, RequesterID: 10, ProviderID: 20, Status: models.StatusPending}
	svc := &RequestService{RequestRepo: repo}

	// requester tries to accept their own request
	_, err := svc.UpdateRequestStatus(context.Background(), 10, 1, models.StatusAccepted)
	var ite *models.InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if repo.statusWrites != 0 {
		t.Fatal("rejected transition must not reach the gateway")
	}

	// stranger tries anything
	_, err = svc.UpdateRequestStatus(context.Background(), 999, 1, models.StatusCancelled)
	var ae *models.AuthorizationError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
	if repo.statusWrites != 0 {
		t.Fatal("unauthorized transition must not reach the gateway")
	}
	if repo.requests[1].Status != models.StatusPending {
		t.Fatalf("store changed: %q", repo.requests[1].Status)
	}
}

func TestUpdateRequestStatusSameStatusRejected(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = models.ServiceRequest{ID: 1, RequesterID: 10, ProviderID: 20, Status: models.StatusAccepted}
	svc := &RequestService{RequestRepo: repo}

	_, err := svc.UpdateRequestStatus(context.Background(), 20, 1, models.StatusAccepted)
	var ite *models.InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected no-op transition rejection, got %v", err)
	}
	if repo.statusWrites != 0 {
		t.Fatal("no-op transition must not reach the gateway")
	}
}
