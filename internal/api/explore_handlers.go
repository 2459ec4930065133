package api

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"zkpark/internal/entities"
	"zkpark/internal/service"
)

type ExploreService interface {
	ListSpots(ctx context.Context, origin *service.Origin) entities.ExploreResponse
}

type ExploreHandler struct {
	service ExploreService
}

func NewExploreHandler(svc ExploreService) *ExploreHandler {
	return &ExploreHandler{service: svc}
}

// ListParking takes optional lat/long query params; with both present spots carry a distance.
func (h *ExploreHandler) ListParking(w http.ResponseWriter, r *http.Request) {
	var origin *service.Origin
	q := r.URL.Query()
	if q.Get("lat") != "" || q.Get("long") != "" {
		lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
		long, errLong := strconv.ParseFloat(q.Get("long"), 64)
		if errLat != nil || errLong != nil || !finite(lat) || !finite(long) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "lat and long must both be numbers"})
			return
		}
		origin = &service.Origin{Latitude: lat, Longitude: long}
	}
	writeJSON(w, http.StatusOK, h.service.ListSpots(r.Context(), origin))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
