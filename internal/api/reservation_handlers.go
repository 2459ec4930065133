package api

import (
	"context"
	"net/http"

	"zkpark/internal/auth"
	"zkpark/internal/entities"
	"zkpark/internal/utils"
)

type ReservationService interface {
	GetVehicleOptions() []utils.VehicleOption
	Quote(req entities.QuoteRequest) (entities.QuoteResponse, error)
	ResolveContext(ctx context.Context, email string, spot entities.ParkingSpotRef) (*entities.ReservationContext, error)
	ConfirmReservation(ctx context.Context, email string, req entities.ConfirmReservationRequest) (*entities.ConfirmReservationResponse, error)
}

type ReservationHandler struct {
	service ReservationService
}

func NewReservationHandler(svc ReservationService) *ReservationHandler {
	return &ReservationHandler{service: svc}
}

func (h *ReservationHandler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.GetVehicleOptions())
}

func (h *ReservationHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req entities.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	quote, err := h.service.Quote(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *ReservationHandler) Context(w http.ResponseWriter, r *http.Request) {
	var req entities.ReservationContextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rc, err := h.service.ResolveContext(r.Context(), auth.EmailFromContext(r.Context()), req.Spot)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rc)
}

func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req entities.ConfirmReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.service.ConfirmReservation(r.Context(), auth.EmailFromContext(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
