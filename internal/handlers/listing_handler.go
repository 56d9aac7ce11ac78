package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"pawBack/internal/coordinator"
	"pawBack/internal/models"
	"pawBack/internal/services"
	"pawBack/internal/store"
	"pawBack/utils"
)

// ListingHandler serves the listings screen. Collection reads go through the
// coordinator so the store stays the single source of truth; by-id reads hit
// the data-access layer directly.
type ListingHandler struct {
	Coordinator *coordinator.Coordinator
	Service     *services.ListingService
	Store       *store.Store
}

type listingPage struct {
	store.ListingCollection
	Version uint64 `json:"version"`
}

type operationAck struct {
	OperationID string `json:"operation_id"`
	Version     uint64 `json:"version"`
}

func (h *ListingHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	filter := models.ListingFilter{
		ServiceTypeID:   intParam(r, "service_type_id"),
		ProviderIDs:     csvIntParam(r, "provider_ids"),
		Latitude:        floatParam(r, "latitude"),
		Longitude:       floatParam(r, "longitude"),
		RadiusKM:        floatParam(r, "radius_km"),
		IncludeInactive: boolParam(r, "include_inactive"),
	}

	op := h.Coordinator.FetchListings(filter)
	if err := op.Wait(r.Context()); err != nil {
		var malformed *models.MalformedResponseError
		if !errors.As(err, &malformed) {
			writeError(w, err)
			return
		}
		// Malformed rows merge as an empty collection; the snapshot is
		// still the answer.
	}
	json.NewEncoder(w).Encode(listingPage{h.Store.Listings(), h.Store.Version()})
}

// GetMyListings is the provider's own inventory, inactive listings included.
func (h *ListingHandler) GetMyListings(w http.ResponseWriter, r *http.Request) {
	filter := models.ListingFilter{
		ProviderIDs:     []int{callerID(r)},
		IncludeInactive: true,
	}
	op := h.Coordinator.FetchListings(filter)
	if err := op.Wait(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(listingPage{h.Store.Listings(), h.Store.Version()})
}

func (h *ListingHandler) GetListingByID(w http.ResponseWriter, r *http.Request) {
	id := intParam(r, ":id")
	listing, err := h.Service.GetListingByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(listing)
}

func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var input models.ListingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	input.ProviderID = callerID(r)

	op := h.Coordinator.CreateListing(input)
	if err := op.Wait(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(operationAck{op.ID, h.Store.Version()})
}

func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id := intParam(r, ":id")
	var patch models.ListingUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if !h.ownsListing(w, r, id) {
		return
	}

	op := h.Coordinator.UpdateListing(id, patch)
	if err := op.Wait(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(operationAck{op.ID, h.Store.Version()})
}

// DeleteListing deactivates the listing; ?hard=true removes the row.
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id := intParam(r, ":id")
	if !h.ownsListing(w, r, id) {
		return
	}

	op := h.Coordinator.RemoveListing(id, boolParam(r, "hard"))
	if err := op.Wait(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadListingPhoto stores a photo in object storage and returns its
// descriptor; the client attaches it to the listing payload.
func (h *ListingHandler) UploadListingPhoto(w http.ResponseWriter, r *http.Request) {
	id := intParam(r, ":id")
	if !h.ownsListing(w, r, id) {
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "Photo file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read photo", http.StatusBadRequest)
		return
	}

	url, err := utils.UploadFileToS3(data, header.Filename, "listings")
	if err != nil {
		http.Error(w, "Failed to store photo", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(models.Photo{
		Name: header.Filename,
		Path: url,
		Type: filepath.Ext(header.Filename),
	})
}

// ownsListing rejects mutations from anyone but the listing's provider. It
// writes the response on failure.
func (h *ListingHandler) ownsListing(w http.ResponseWriter, r *http.Request, id int) bool {
	existing, err := h.Service.GetListingByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return false
	}
	if existing.ProviderID != callerID(r) {
		http.Error(w, "Forbidden: not the listing provider", http.StatusForbidden)
		return false
	}
	return true
}
