package coordinator

import (
	"context"
	"log"

	"github.com/google/uuid"

	"pawBack/internal/lifecycle"
	"pawBack/internal/models"
	"pawBack/internal/store"
)

// ListingAPI is the data-access surface for listings.
type ListingAPI interface {
	ListListings(ctx context.Context, filter models.ListingFilter) ([]models.ServiceListing, error)
	CreateListing(ctx context.Context, input models.ListingInput) (models.ServiceListing, error)
	UpdateListing(ctx context.Context, id int, patch models.ListingUpdate) (models.ServiceListing, error)
	RemoveListing(ctx context.Context, id int, hard bool) error
}

// RequestAPI is the data-access surface for requests.
type RequestAPI interface {
	ListRequests(ctx context.Context, filter models.RequestFilter) ([]models.ServiceRequest, error)
	CreateRequest(ctx context.Context, callerID int, input models.RequestInput) (models.ServiceRequest, error)
	UpdateRequestStatus(ctx context.Context, callerID, id int, target string) (models.ServiceRequest, error)
}

// ServiceTypeAPI is the data-access surface for the service-type lookup.
type ServiceTypeAPI interface {
	ListServiceTypes(ctx context.Context) ([]models.ServiceType, error)
}

// Operation is a tracked asynchronous task. Once dispatched it is not
// cancellable: a superseded fetch still completes, and the store decides
// whether its result is current enough to apply.
type Operation struct {
	ID   string
	Name string

	done chan struct{}
	err  error
}

func (op *Operation) Done() <-chan struct{} { return op.done }

// Err is valid after Done is closed.
func (op *Operation) Err() error { return op.err }

// Wait blocks until the operation completes or the caller gives up waiting.
// Giving up does not cancel the operation.
func (op *Operation) Wait(ctx context.Context) error {
	select {
	case <-op.done:
		return op.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Coordinator wraps every data-access call in a tracked task that feeds the
// orchestration store: a start transition before the call, a completion
// merge after it.
type Coordinator struct {
	Store    *store.Store
	Listings ListingAPI
	Requests RequestAPI
	Types    ServiceTypeAPI

	ErrorLog *log.Logger
}

func New(st *store.Store, listings ListingAPI, requests RequestAPI, types ServiceTypeAPI, errorLog *log.Logger) *Coordinator {
	if errorLog == nil {
		errorLog = log.Default()
	}
	return &Coordinator{
		Store:    st,
		Listings: listings,
		Requests: requests,
		Types:    types,
		ErrorLog: errorLog,
	}
}

// dispatch runs fn on a detached context so an operation outlives the UI
// action that issued it.
func (c *Coordinator) dispatch(name string, fn func(ctx context.Context) error) *Operation {
	op := &Operation{ID: uuid.New().String(), Name: name, done: make(chan struct{})}
	go func() {
		defer close(op.done)
		if err := fn(context.Background()); err != nil {
			c.ErrorLog.Printf("%s (%s): %v", name, op.ID, err)
			op.err = err
		}
	}()
	return op
}

// failed returns an already-completed operation for validations that fail
// before any network call is issued.
func (c *Coordinator) failed(name string, err error) *Operation {
	op := &Operation{ID: uuid.New().String(), Name: name, done: make(chan struct{}), err: err}
	c.ErrorLog.Printf("%s (%s): %v", name, op.ID, err)
	close(op.done)
	return op
}

// FetchListings records the filter, marks the collection loading and merges
// the response under the sequence guard.
func (c *Coordinator) FetchListings(filter models.ListingFilter) *Operation {
	c.Store.SetListingFilter(filter)
	seq := c.Store.BeginFetch(store.CollectionListings)
	return c.dispatch("fetch listings", func(ctx context.Context) error {
		items, err := c.Listings.ListListings(ctx, filter)
		c.Store.CompleteListingsFetch(seq, items, err)
		return err
	})
}

func (c *Coordinator) FetchRequests(filter models.RequestFilter) *Operation {
	c.Store.SetRequestFilter(filter)
	seq := c.Store.BeginFetch(store.CollectionRequests)
	return c.dispatch("fetch requests", func(ctx context.Context) error {
		items, err := c.Requests.ListRequests(ctx, filter)
		c.Store.CompleteRequestsFetch(seq, items, err)
		return err
	})
}

func (c *Coordinator) FetchServiceTypes() *Operation {
	seq := c.Store.BeginFetch(store.CollectionServiceTypes)
	return c.dispatch("fetch service types", func(ctx context.Context) error {
		items, err := c.Types.ListServiceTypes(ctx)
		c.Store.CompleteServiceTypesFetch(seq, items, err)
		return err
	})
}

func (c *Coordinator) CreateListing(input models.ListingInput) *Operation {
	return c.dispatch("create listing", func(ctx context.Context) error {
		created, err := c.Listings.CreateListing(ctx, input)
		if err != nil {
			return err
		}
		c.Store.ApplyListingCreated(created)
		return nil
	})
}

func (c *Coordinator) UpdateListing(id int, patch models.ListingUpdate) *Operation {
	return c.dispatch("update listing", func(ctx context.Context) error {
		updated, err := c.Listings.UpdateListing(ctx, id, patch)
		if err != nil {
			return err
		}
		c.Store.ApplyListingUpdated(updated)
		return nil
	})
}

func (c *Coordinator) RemoveListing(id int, hard bool) *Operation {
	return c.dispatch("remove listing", func(ctx context.Context) error {
		if err := c.Listings.RemoveListing(ctx, id, hard); err != nil {
			return err
		}
		if hard {
			c.Store.ApplyListingRemoved(id)
		} else {
			c.Store.ApplyListingDeactivated(id)
		}
		return nil
	})
}

func (c *Coordinator) CreateRequest(callerID int, input models.RequestInput) *Operation {
	return c.dispatch("create request", func(ctx context.Context) error {
		created, err := c.Requests.CreateRequest(ctx, callerID, input)
		if err != nil {
			return err
		}
		c.Store.ApplyRequestCreated(created)
		return nil
	})
}

// UpdateRequestStatus validates against the locally loaded request before
// anything leaves the device: an illegal transition costs no round-trip.
// The data-access layer re-validates against the stored row, so a stale
// local copy cannot smuggle an illegal transition through.
func (c *Coordinator) UpdateRequestStatus(callerID, id int, target string) *Operation {
	if local, ok := c.Store.RequestByID(id); ok {
		if err := lifecycle.ValidateTransition(local, callerID, target); err != nil {
			return c.failed("update request status", err)
		}
	}
	return c.dispatch("update request status", func(ctx context.Context) error {
		updated, err := c.Requests.UpdateRequestStatus(ctx, callerID, id, target)
		if err != nil {
			return err
		}
		c.Store.ApplyRequestUpdated(updated)
		return nil
	})
}
