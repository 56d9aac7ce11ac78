package handlers

import (
	"encoding/json"
	"net/http"

	"pawBack/internal/coordinator"
	"pawBack/internal/lifecycle"
	"pawBack/internal/models"
	"pawBack/internal/services"
	"pawBack/internal/store"
)

// RequestHandler serves the requests screen in both view modes: a requester
// sees requests they issued, a provider the ones addressed to them.
type RequestHandler struct {
	Coordinator *coordinator.Coordinator
	Service     *services.RequestService
	Store       *store.Store
}

type requestPage struct {
	store.RequestCollection
	ViewMode string `json:"view_mode"`
	Version  uint64 `json:"version"`
}

func (h *RequestHandler) GetRequests(w http.ResponseWriter, r *http.Request) {
	filter := models.RequestFilter{
		Statuses:      csvParam(r, "statuses"),
		ServiceTypeID: intParam(r, "service_type_id"),
	}

	// The view query parameter scopes the list to the caller's side of the
	// exchange. An unknown value falls back to the requester view.
	view := r.URL.Query().Get("view")
	if view != "" {
		h.Store.SetViewMode(view)
	}
	switch h.Store.ViewMode() {
	case store.ViewModeProvider:
		filter.ProviderID = callerID(r)
	default:
		filter.RequesterID = callerID(r)
	}

	op := h.Coordinator.FetchRequests(filter)
	if err := op.Wait(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(requestPage{h.Store.Requests(), h.Store.ViewMode(), h.Store.Version()})
}

func (h *RequestHandler) GetRequestByID(w http.ResponseWriter, r *http.Request) {
	id := intParam(r, ":id")
	req, err := h.Service.GetRequestByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(req)
}

func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var input models.RequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	op := h.Coordinator.CreateRequest(callerID(r), input)
	if err := op.Wait(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(operationAck{op.ID, h.Store.Version()})
}

// UpdateRequestStatus drives the request through its lifecycle. Transitions
// are validated before dispatch and again against the stored row, so the
// response is either the updated request or the validation failure.
func (h *RequestHandler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	id := intParam(r, ":id")
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	op := h.Coordinator.UpdateRequestStatus(callerID(r), id, body.Status)
	if err := op.Wait(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	if updated, ok := h.Store.RequestByID(id); ok {
		json.NewEncoder(w).Encode(updated)
		return
	}
	updated, err := h.Service.GetRequestByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(updated)
}

// GetRequestTransitions reports which statuses the caller may move the
// request to; clients use it to decide which action buttons to render.
func (h *RequestHandler) GetRequestTransitions(w http.ResponseWriter, r *http.Request) {
	id := intParam(r, ":id")
	req, ok := h.Store.RequestByID(id)
	if !ok {
		var err error
		req, err = h.Service.GetRequestByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	caller := callerID(r)
	json.NewEncoder(w).Encode(struct {
		Role        string   `json:"role"`
		Status      string   `json:"status"`
		Transitions []string `json:"transitions"`
	}{
		Role:        lifecycle.RoleFor(req, caller),
		Status:      req.Status,
		Transitions: lifecycle.AllowedTransitions(req, caller),
	})
}
