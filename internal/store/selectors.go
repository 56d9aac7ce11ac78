package store

import (
	"pawBack/internal/models"
)

// Filter and selection setters are synchronous direct actions issued by the
// UI; they never come from network results.

func (s *Store) SetListingFilter(f models.ListingFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listingFilter = f
	s.bump(CollectionListings)
}

func (s *Store) SetRequestFilter(f models.RequestFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requestFilter = f
	s.bump(CollectionRequests)
}

func (s *Store) SelectListing(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedListingID = id
	s.bump(CollectionListings)
}

// ClearListingSelection is issued when the detail view closes.
func (s *Store) ClearListingSelection() {
	s.SelectListing(0)
}

func (s *Store) SelectRequest(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedRequestID = id
	s.bump(CollectionRequests)
}

func (s *Store) ClearRequestSelection() {
	s.SelectRequest(0)
}

func (s *Store) SetViewMode(mode string) {
	if mode != ViewModeProvider {
		mode = ViewModeRequester
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewMode = mode
	s.bump(CollectionRequests)
}

// Selectors return snapshot copies; callers never see live slices.

func (s *Store) Listings() ListingCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.listings
	if s.listings.Items != nil {
		out.Items = make([]models.ServiceListing, len(s.listings.Items))
		copy(out.Items, s.listings.Items)
	}
	return out
}

func (s *Store) Requests() RequestCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.requests
	if s.requests.Items != nil {
		out.Items = make([]models.ServiceRequest, len(s.requests.Items))
		copy(out.Items, s.requests.Items)
	}
	return out
}

func (s *Store) ServiceTypes() ServiceTypeCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.serviceTypes
	if s.serviceTypes.Items != nil {
		out.Items = make([]models.ServiceType, len(s.serviceTypes.Items))
		copy(out.Items, s.serviceTypes.Items)
	}
	return out
}

func (s *Store) ListingFilter() models.ListingFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listingFilter
}

func (s *Store) RequestFilter() models.RequestFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requestFilter
}

func (s *Store) ViewMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// SelectedListing resolves the selection pointer against the loaded
// collection.
func (s *Store) SelectedListing() (models.ServiceListing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedListingID == 0 {
		return models.ServiceListing{}, false
	}
	for _, l := range s.listings.Items {
		if l.ID == s.selectedListingID {
			return l, true
		}
	}
	return models.ServiceListing{}, false
}

func (s *Store) SelectedRequest() (models.ServiceRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedRequestID == 0 {
		return models.ServiceRequest{}, false
	}
	for _, r := range s.requests.Items {
		if r.ID == s.selectedRequestID {
			return r, true
		}
	}
	return models.ServiceRequest{}, false
}

// RequestByID looks a request up in the local collection; used for the
// pre-flight lifecycle check before a status change leaves the device.
func (s *Store) RequestByID(id int) (models.ServiceRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.requests.Items {
		if r.ID == id {
			return r, true
		}
	}
	return models.ServiceRequest{}, false
}

// Subscribe registers a change-event channel and returns it with a cancel
// function. Events are dropped, not queued, for slow consumers.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, 16)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if ch, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
}
