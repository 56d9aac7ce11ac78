package store

import (
	"errors"
	"io"
	"log"
	"testing"

	"pawBack/internal/models"
)

func newTestStore() *Store {
	return New(log.New(io.Discard, "", 0))
}

func listing(id int, title string) models.ServiceListing {
	return models.ServiceListing{ID: id, Title: title, ProviderID: 1, IsActive: true}
}

func TestFetchStartRetainsItems(t *testing.T) {
	s := newTestStore()
	seq := s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, []models.ServiceListing{listing(1, "Dog Walk")}, nil)

	s.BeginFetch(CollectionListings)
	got := s.Listings()
	if !got.Loading {
		t.Fatal("expected loading flag set")
	}
	if got.Error != "" {
		t.Fatalf("expected error cleared, got %q", got.Error)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items cleared during fetch: %v", got.Items)
	}
}

func TestFetchFailureRetainsPreviousItems(t *testing.T) {
	s := newTestStore()
	seq := s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, []models.ServiceListing{listing(1, "Dog Walk"), listing(2, "Cat Sitting")}, nil)

	seq = s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, nil, &models.TransportError{Op: "list listings", Err: errors.New("timeout")})

	got := s.Listings()
	if got.Loading {
		t.Fatal("loading must clear on failure")
	}
	if got.Error == "" {
		t.Fatal("expected error set")
	}
	if len(got.Items) != 2 {
		t.Fatalf("previous items lost on failure: %v", got.Items)
	}
}

func TestFetchSuccessReplacesWholesale(t *testing.T) {
	s := newTestStore()
	seq := s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, []models.ServiceListing{listing(1, "Dog Walk")}, nil)

	seq = s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, []models.ServiceListing{listing(3, "Grooming")}, nil)

	got := s.Listings()
	if len(got.Items) != 1 || got.Items[0].ID != 3 {
		t.Fatalf("expected wholesale replacement, got %v", got.Items)
	}
}

func TestEmptyResultIsLegitimateEmptyState(t *testing.T) {
	s := newTestStore()
	seq := s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, []models.ServiceListing{listing(1, "Dog Walk")}, nil)

	seq = s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, nil, nil)

	got := s.Listings()
	if got.Items == nil || len(got.Items) != 0 {
		t.Fatalf("expected empty collection, got %v", got.Items)
	}
	if got.Error != "" {
		t.Fatalf("empty result is not an error: %q", got.Error)
	}
}

func TestMalformedResponseDefaultsToEmpty(t *testing.T) {
	s := newTestStore()
	seq := s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, []models.ServiceListing{listing(1, "Dog Walk")}, nil)

	seq = s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, nil, &models.MalformedResponseError{Table: "listings", Err: errors.New("bad json")})

	got := s.Listings()
	if len(got.Items) != 0 {
		t.Fatalf("malformed response must merge as empty, got %v", got.Items)
	}
	if got.Error != "" {
		t.Fatalf("malformed response is a warning, not a user-facing error: %q", got.Error)
	}
	if got.Loading {
		t.Fatal("loading must clear")
	}
}

// Two fetches race: the older filter's response arrives last. With the
// sequence guard the late response is discarded, so the collection shows the
// most recently requested filter's results.
func TestSupersededFetchIsDiscarded(t *testing.T) {
	s := newTestStore()

	seqA := s.BeginFetch(CollectionListings) // filter {type:A}
	seqB := s.BeginFetch(CollectionListings) // filter {type:B}, issued before A resolves

	s.CompleteListingsFetch(seqB, []models.ServiceListing{listing(20, "Type B result")}, nil)
	s.CompleteListingsFetch(seqA, []models.ServiceListing{listing(10, "Type A result")}, nil)

	got := s.Listings()
	if len(got.Items) != 1 || got.Items[0].ID != 20 {
		t.Fatalf("stale response applied, items = %v", got.Items)
	}
	if got.Loading {
		t.Fatal("latest completion must clear loading")
	}
}

func TestStaleFailureDoesNotClobberFreshResult(t *testing.T) {
	s := newTestStore()

	seqA := s.BeginFetch(CollectionListings)
	seqB := s.BeginFetch(CollectionListings)

	s.CompleteListingsFetch(seqB, []models.ServiceListing{listing(20, "fresh")}, nil)
	s.CompleteListingsFetch(seqA, nil, &models.TransportError{Op: "list listings", Err: errors.New("timeout")})

	got := s.Listings()
	if got.Error != "" {
		t.Fatalf("stale failure leaked into state: %q", got.Error)
	}
	if len(got.Items) != 1 || got.Items[0].ID != 20 {
		t.Fatalf("fresh result lost: %v", got.Items)
	}
}

func TestCreatePrepends(t *testing.T) {
	s := newTestStore()
	seq := s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, []models.ServiceListing{listing(1, "old")}, nil)

	s.ApplyListingCreated(listing(2, "new"))
	got := s.Listings()
	if len(got.Items) != 2 || got.Items[0].ID != 2 {
		t.Fatalf("expected prepend, got %v", got.Items)
	}
}

func TestUpdateSplicesInPlaceAndIgnoresUnknownID(t *testing.T) {
	s := newTestStore()
	seq := s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, []models.ServiceListing{listing(1, "old"), listing(2, "other")}, nil)
	before := s.Version()

	updated := listing(1, "renamed")
	s.ApplyListingUpdated(updated)
	got := s.Listings()
	if got.Items[0].Title != "renamed" || got.Items[1].ID != 2 {
		t.Fatalf("splice update failed: %v", got.Items)
	}

	mid := s.Version()
	if mid == before {
		t.Fatal("update must bump version")
	}

	s.ApplyListingUpdated(listing(99, "ghost"))
	if s.Version() != mid {
		t.Fatal("unknown id must be a no-op")
	}
	if len(s.Listings().Items) != 2 {
		t.Fatal("unknown id must not change items")
	}
}

func TestSoftAndHardDeleteMerges(t *testing.T) {
	s := newTestStore()
	seq := s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, []models.ServiceListing{listing(1, "a"), listing(2, "b")}, nil)

	s.ApplyListingDeactivated(1)
	got := s.Listings()
	if got.Items[0].IsActive {
		t.Fatal("soft delete must flip is_active locally")
	}
	if len(got.Items) != 2 {
		t.Fatal("soft delete must not remove the item")
	}

	s.SelectListing(2)
	s.ApplyListingRemoved(2)
	got = s.Listings()
	if len(got.Items) != 1 || got.Items[0].ID != 1 {
		t.Fatalf("hard delete must remove the item: %v", got.Items)
	}
	if _, ok := s.SelectedListing(); ok {
		t.Fatal("removing the selected listing must clear the selection")
	}
}

func TestRequestMerges(t *testing.T) {
	s := newTestStore()
	seq := s.BeginFetch(CollectionRequests)
	s.CompleteRequestsFetch(seq, []models.ServiceRequest{
		{ID: 1, RequesterID: 10, ProviderID: 20, Status: models.StatusPending},
	}, nil)

	s.ApplyRequestCreated(models.ServiceRequest{ID: 2, RequesterID: 11, ProviderID: 20, Status: models.StatusPending})
	if got := s.Requests(); len(got.Items) != 2 || got.Items[0].ID != 2 {
		t.Fatalf("request prepend failed: %v", got.Items)
	}

	s.ApplyRequestUpdated(models.ServiceRequest{ID: 1, RequesterID: 10, ProviderID: 20, Status: models.StatusAccepted})
	if req, ok := s.RequestByID(1); !ok || req.Status != models.StatusAccepted {
		t.Fatalf("request splice failed: %+v", req)
	}
}

func TestFiltersAndSelectionsAreSynchronous(t *testing.T) {
	s := newTestStore()
	s.SetListingFilter(models.ListingFilter{ServiceTypeID: 4, RadiusKM: 10})
	if f := s.ListingFilter(); f.ServiceTypeID != 4 || f.RadiusKM != 10 {
		t.Fatalf("listing filter = %+v", f)
	}

	s.SetRequestFilter(models.RequestFilter{Statuses: []string{models.StatusPending}})
	if f := s.RequestFilter(); len(f.Statuses) != 1 {
		t.Fatalf("request filter = %+v", f)
	}

	if s.ViewMode() != ViewModeRequester {
		t.Fatalf("default view mode = %q", s.ViewMode())
	}
	s.SetViewMode(ViewModeProvider)
	if s.ViewMode() != ViewModeProvider {
		t.Fatalf("view mode = %q", s.ViewMode())
	}
	s.SetViewMode("nonsense")
	if s.ViewMode() != ViewModeRequester {
		t.Fatalf("unknown view mode must fall back to requester, got %q", s.ViewMode())
	}

	seq := s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, []models.ServiceListing{listing(5, "x")}, nil)
	s.SelectListing(5)
	if sel, ok := s.SelectedListing(); !ok || sel.ID != 5 {
		t.Fatalf("selected listing = %+v, ok=%v", sel, ok)
	}
	s.ClearListingSelection()
	if _, ok := s.SelectedListing(); ok {
		t.Fatal("selection must clear when the detail view closes")
	}
}

func TestSubscribeDeliversEvents(t *testing.T) {
	s := newTestStore()
	ch, cancel := s.Subscribe()
	defer cancel()

	seq := s.BeginFetch(CollectionListings)
	s.CompleteListingsFetch(seq, nil, nil)

	ev := <-ch
	if ev.Collection != CollectionListings || ev.Version == 0 {
		t.Fatalf("event = %+v", ev)
	}
}
