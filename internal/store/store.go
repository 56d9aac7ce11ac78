package store

import (
	"errors"
	"log"
	"sync"

	"pawBack/internal/models"
)

// Collection names used in fetch tracking and change events.
const (
	CollectionListings     = "listings"
	CollectionRequests     = "requests"
	CollectionServiceTypes = "service_types"
)

// View modes for the requests screen.
const (
	ViewModeRequester = "requester"
	ViewModeProvider  = "provider"
)

// Event is delivered to subscribers after every store mutation.
type Event struct {
	Collection string `json:"collection"`
	Version    uint64 `json:"version"`
}

type ListingCollection struct {
	Items   []models.ServiceListing `json:"items"`
	Loading bool                    `json:"loading"`
	Error   string                  `json:"error,omitempty"`
}

type RequestCollection struct {
	Items   []models.ServiceRequest `json:"items"`
	Loading bool                    `json:"loading"`
	Error   string                  `json:"error,omitempty"`
}

type ServiceTypeCollection struct {
	Items   []models.ServiceType `json:"items"`
	Loading bool                 `json:"loading"`
	Error   string               `json:"error,omitempty"`
}

// Store is the single shared state container behind every screen. It owns
// all entity collections; consumers read snapshots and mutate only through
// the coordinator. It is constructor-injected, never a package global, so
// tests build isolated instances.
type Store struct {
	mu     sync.RWMutex
	logger *log.Logger

	version uint64

	listings     ListingCollection
	requests     RequestCollection
	serviceTypes ServiceTypeCollection

	listingFilter models.ListingFilter
	requestFilter models.RequestFilter

	selectedListingID int
	selectedRequestID int
	viewMode          string

	// fetchSeq holds the most recently issued fetch sequence per collection.
	// A completion carrying an older sequence was superseded by a newer
	// fetch (for example a filter change) and is discarded.
	fetchSeq map[string]uint64

	subs    map[int]chan Event
	nextSub int
}

func New(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		logger:   logger,
		viewMode: ViewModeRequester,
		fetchSeq: make(map[string]uint64),
		subs:     make(map[int]chan Event),
	}
}

// BeginFetch marks a collection loading and returns the sequence number the
// matching completion must present. Items are deliberately retained so stale
// data stays visible instead of flickering to empty.
func (s *Store) BeginFetch(collection string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetchSeq[collection]++
	seq := s.fetchSeq[collection]

	switch collection {
	case CollectionListings:
		s.listings.Loading = true
		s.listings.Error = ""
	case CollectionRequests:
		s.requests.Loading = true
		s.requests.Error = ""
	case CollectionServiceTypes:
		s.serviceTypes.Loading = true
		s.serviceTypes.Error = ""
	}

	s.bump(collection)
	return seq
}

// stale reports and logs a superseded completion. Caller holds the lock.
func (s *Store) stale(collection string, seq uint64) bool {
	if seq == s.fetchSeq[collection] {
		return false
	}
	s.logger.Printf("discarding superseded %s fetch (seq %d, latest %d)", collection, seq, s.fetchSeq[collection])
	return true
}

// mergeFetch resolves a completed fetch into (items, errorText). A malformed
// response merges as an empty collection and is logged; it is a warning
// condition, not a user-facing failure.
func mergeFetch[T any](logger *log.Logger, collection string, items []T, err error) ([]T, string, bool) {
	if err == nil {
		if items == nil {
			items = []T{}
		}
		return items, "", true
	}
	var malformed *models.MalformedResponseError
	if errors.As(err, &malformed) {
		logger.Printf("warning: %s fetch returned malformed collection: %v", collection, err)
		return []T{}, "", true
	}
	return nil, err.Error(), false
}

func (s *Store) CompleteListingsFetch(seq uint64, items []models.ServiceListing, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(CollectionListings, seq) {
		return
	}
	merged, errText, ok := mergeFetch(s.logger, CollectionListings, items, err)
	s.listings.Loading = false
	s.listings.Error = errText
	if ok {
		s.listings.Items = merged
	}
	s.bump(CollectionListings)
}

func (s *Store) CompleteRequestsFetch(seq uint64, items []models.ServiceRequest, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(CollectionRequests, seq) {
		return
	}
	merged, errText, ok := mergeFetch(s.logger, CollectionRequests, items, err)
	s.requests.Loading = false
	s.requests.Error = errText
	if ok {
		s.requests.Items = merged
	}
	s.bump(CollectionRequests)
}

func (s *Store) CompleteServiceTypesFetch(seq uint64, items []models.ServiceType, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(CollectionServiceTypes, seq) {
		return
	}
	merged, errText, ok := mergeFetch(s.logger, CollectionServiceTypes, items, err)
	s.serviceTypes.Loading = false
	s.serviceTypes.Error = errText
	if ok {
		s.serviceTypes.Items = merged
	}
	s.bump(CollectionServiceTypes)
}

// ApplyListingCreated prepends, newest first.
func (s *Store) ApplyListingCreated(l models.ServiceListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings.Items = append([]models.ServiceListing{l}, s.listings.Items...)
	s.bump(CollectionListings)
}

// ApplyListingUpdated replaces in place; a listing not loaded locally is a
// no-op.
func (s *Store) ApplyListingUpdated(l models.ServiceListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.listings.Items {
		if s.listings.Items[i].ID == l.ID {
			s.listings.Items[i] = l
			s.bump(CollectionListings)
			return
		}
	}
}

// ApplyListingDeactivated flips the local copy after a soft delete.
func (s *Store) ApplyListingDeactivated(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.listings.Items {
		if s.listings.Items[i].ID == id {
			s.listings.Items[i].IsActive = false
			s.bump(CollectionListings)
			return
		}
	}
}

// ApplyListingRemoved drops the local copy after a hard delete.
func (s *Store) ApplyListingRemoved(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.listings.Items {
		if s.listings.Items[i].ID == id {
			s.listings.Items = append(s.listings.Items[:i], s.listings.Items[i+1:]...)
			if s.selectedListingID == id {
				s.selectedListingID = 0
			}
			s.bump(CollectionListings)
			return
		}
	}
}

func (s *Store) ApplyRequestCreated(r models.ServiceRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests.Items = append([]models.ServiceRequest{r}, s.requests.Items...)
	s.bump(CollectionRequests)
}

func (s *Store) ApplyRequestUpdated(r models.ServiceRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests.Items {
		if s.requests.Items[i].ID == r.ID {
			s.requests.Items[i] = r
			s.bump(CollectionRequests)
			return
		}
	}
}

// bump increments the version and notifies subscribers. Caller holds the
// lock.
func (s *Store) bump(collection string) {
	s.version++
	ev := Event{Collection: collection, Version: s.version}
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// slow subscriber, skip rather than block a merge
		}
	}
}
