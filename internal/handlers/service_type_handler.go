package handlers

import (
	"encoding/json"
	"net/http"

	"pawBack/internal/coordinator"
	"pawBack/internal/store"
)

type ServiceTypeHandler struct {
	Coordinator *coordinator.Coordinator
	Store       *store.Store
}

type serviceTypePage struct {
	store.ServiceTypeCollection
	Version uint64 `json:"version"`
}

func (h *ServiceTypeHandler) GetServiceTypes(w http.ResponseWriter, r *http.Request) {
	op := h.Coordinator.FetchServiceTypes()
	if err := op.Wait(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(serviceTypePage{h.Store.ServiceTypes(), h.Store.Version()})
}
