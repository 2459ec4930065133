package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"zkpark/internal/auth"
	"zkpark/internal/entities"
	"zkpark/internal/service"
)

type TripsService interface {
	ListTrips(ctx context.Context, email string, q service.TripsQuery) (*entities.TripsList, error)
	DeleteTrip(ctx context.Context, email, id string) error
}

type TripsHandler struct {
	service TripsService
}

func NewTripsHandler(svc TripsService) *TripsHandler {
	return &TripsHandler{service: svc}
}

func (h *TripsHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.service.ListTrips(r.Context(), auth.EmailFromContext(r.Context()), service.TripsQuery{
		Tab:       q.Get("tab"),
		SessionID: q.Get("session_id"),
		TotalFee:  q.Get("total_fee"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *TripsHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.DeleteTrip(r.Context(), auth.EmailFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Trip deleted"})
}
