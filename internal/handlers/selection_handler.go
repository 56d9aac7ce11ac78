package handlers

import (
	"encoding/json"
	"net/http"

	"pawBack/internal/models"
	"pawBack/internal/store"
)

// SelectionHandler exposes the store's selection pointers and view mode.
// These are synchronous store writes; no coordinator operation is involved.
type SelectionHandler struct {
	Store *store.Store
}

type selectionSnapshot struct {
	SelectedListing *models.ServiceListing `json:"selected_listing,omitempty"`
	SelectedRequest *models.ServiceRequest `json:"selected_request,omitempty"`
	ViewMode        string                 `json:"view_mode"`
	Version         uint64                 `json:"version"`
}

func (h *SelectionHandler) snapshot() selectionSnapshot {
	snap := selectionSnapshot{
		ViewMode: h.Store.ViewMode(),
		Version:  h.Store.Version(),
	}
	if l, ok := h.Store.SelectedListing(); ok {
		snap.SelectedListing = &l
	}
	if r, ok := h.Store.SelectedRequest(); ok {
		snap.SelectedRequest = &r
	}
	return snap
}

func (h *SelectionHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.snapshot())
}

func (h *SelectionHandler) SelectListing(w http.ResponseWriter, r *http.Request) {
	h.Store.SelectListing(intParam(r, ":id"))
	json.NewEncoder(w).Encode(h.snapshot())
}

func (h *SelectionHandler) ClearListingSelection(w http.ResponseWriter, r *http.Request) {
	h.Store.ClearListingSelection()
	json.NewEncoder(w).Encode(h.snapshot())
}

func (h *SelectionHandler) SelectRequest(w http.ResponseWriter, r *http.Request) {
	h.Store.SelectRequest(intParam(r, ":id"))
	json.NewEncoder(w).Encode(h.snapshot())
}

func (h *SelectionHandler) ClearRequestSelection(w http.ResponseWriter, r *http.Request) {
	h.Store.ClearRequestSelection()
	json.NewEncoder(w).Encode(h.snapshot())
}

func (h *SelectionHandler) SetViewMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	h.Store.SetViewMode(body.Mode)
	json.NewEncoder(w).Encode(h.snapshot())
}
