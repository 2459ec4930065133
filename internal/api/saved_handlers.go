package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"zkpark/internal/auth"
	"zkpark/internal/entities"
)

type SavedService interface {
	List(ctx context.Context, email string) ([]entities.SavedReservation, error)
	Add(ctx context.Context, email string, item entities.SavedReservation) error
	Remove(ctx context.Context, email, id string) error
	Toggle(ctx context.Context, email string, trip entities.Trip) (*entities.ToggleSavedResponse, error)
}

type SavedHandler struct {
	service SavedService
}

func NewSavedHandler(svc SavedService) *SavedHandler {
	return &SavedHandler{service: svc}
}

func (h *SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	saved, err := h.service.List(r.Context(), auth.EmailFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *SavedHandler) Add(w http.ResponseWriter, r *http.Request) {
	var item entities.SavedReservation
	if !decodeJSON(w, r, &item) {
		return
	}
	if err := h.service.Add(r.Context(), auth.EmailFromContext(r.Context()), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.ToggleSavedResponse{ID: item.ParkingTransactionID, Saved: true})
}

func (h *SavedHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Remove(r.Context(), auth.EmailFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.ToggleSavedResponse{ID: id, Saved: false})
}

func (h *SavedHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var trip entities.Trip
	if !decodeJSON(w, r, &trip) {
		return
	}
	resp, err := h.service.Toggle(r.Context(), auth.EmailFromContext(r.Context()), trip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
