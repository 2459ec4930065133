package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"zkpark/internal/db"
	"zkpark/internal/entities"
	"zkpark/internal/repository"
	"zkpark/internal/utils"
)

const (
	defaultLatitude  = 38.8816
	defaultLongitude = -77.0910
	regionLatDelta   = 0.0922
	regionLongDelta  = 0.0421
	spotPrice        = "$4/hr"
	availableNow     = "Available now"
)

// Origin is the caller's position, used for distances.
type Origin struct {
	Latitude  float64
	Longitude float64
}

type ExploreService struct {
	parking repository.ParkingRepository
}

func NewExploreService(parking repository.ParkingRepository) *ExploreService {
	return &ExploreService{parking: parking}
}

// ListSpots never fails: a storage error yields the single fallback spot.
func (s *ExploreService) ListSpots(ctx context.Context, origin *Origin) entities.ExploreResponse {
	rows, err := s.parking.ListSpots(ctx)
	var spots []entities.SpotView
	if err != nil {
		log.Printf("Error fetching parking spots: %v", err)
		spots = []entities.SpotView{fallbackSpot()}
	} else {
		spots = make([]entities.SpotView, 0, len(rows))
		for i, row := range rows {
			spots = append(spots, toSpotView(i, row, origin))
		}
	}

	region := entities.MapRegion{
		Latitude:       defaultLatitude,
		Longitude:      defaultLongitude,
		LatitudeDelta:  regionLatDelta,
		LongitudeDelta: regionLongDelta,
	}
	if len(spots) > 0 {
		region.Latitude = spots[0].Latitude
		region.Longitude = spots[0].Longitude
	}
	return entities.ExploreResponse{Region: region, Spots: spots}
}

func toSpotView(index int, row db.ParkingSpot, origin *Origin) entities.SpotView {
	id := row.ID
	if id == "" {
		id = fmt.Sprintf("p%d", index+1)
	}
	lat := parseCoordinate(row.Lat, defaultLatitude)
	long := parseCoordinate(row.Long, defaultLongitude)

	view := entities.SpotView{
		ID:           id,
		Latitude:     lat,
		Longitude:    long,
		Title:        utils.FormatAddress(row.Address),
		Price:        spotPrice,
		Type:         entities.TripTypeParking,
		Availability: availableNow,
	}
	if row.ImageURL.Valid {
		view.ImageURL = row.ImageURL.String
	}
	if origin != nil {
		view.Distance = utils.FormatDistance(utils.HaversineMiles(origin.Latitude, origin.Longitude, lat, long))
	}
	return view
}

// parseCoordinate returns fallback for text that is not a finite number.
func parseCoordinate(text string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func fallbackSpot() entities.SpotView {
	return entities.SpotView{
		ID:           "p1",
		Latitude:     defaultLatitude,
		Longitude:    defaultLongitude,
		Title:        "Ballston Area",
		Price:        "$5/hr",
		Type:         entities.TripTypeParking,
		Availability: availableNow,
	}
}
