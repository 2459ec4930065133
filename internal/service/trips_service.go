package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"zkpark/internal/entities"
	apperrors "zkpark/internal/errors"
	"zkpark/internal/repository"
	"zkpark/internal/storage"
	"zkpark/internal/utils"
)

const (
	newReservationTitle = "New Parking Reservation"
	defaultTripTitle    = "Parking Spot"
	defaultNewTripPrice = "$4.25"
)

// TripsQuery narrows the trips list. SessionID names a reservation that was
// just confirmed and may not be in the stored blob yet.
type TripsQuery struct {
	Tab       string
	SessionID string
	TotalFee  string
}

type TripsService struct {
	blobs       *storage.Blobs
	sessions    repository.SessionRepository
	saved       *SavedService
	sampleTrips bool
	now         func() time.Time
}

func NewTripsService(blobs *storage.Blobs, sessions repository.SessionRepository, saved *SavedService, sampleTrips bool) *TripsService {
	return &TripsService{
		blobs:       blobs,
		sessions:    sessions,
		saved:       saved,
		sampleTrips: sampleTrips,
		now:         time.Now,
	}
}

// ListTrips merges stored reservations, the just-confirmed session and the
// sample trips. The merged list is never written back.
func (s *TripsService) ListTrips(ctx context.Context, email string, q TripsQuery) (*entities.TripsList, error) {
	tab, err := normalizeTab(q.Tab)
	if err != nil {
		return nil, err
	}
	now := s.now()

	var stored []entities.Trip
	if err := s.blobs.Load(ctx, email, storage.KeyReservations, &stored); err != nil {
		log.Printf("Error loading reservations for %s: %v", email, err)
		return nil, err
	}
	trips := make([]entities.Trip, 0, len(stored)+4)
	for _, item := range stored {
		trips = append(trips, normalizeTrip(item))
	}

	if q.SessionID != "" {
		trips = s.mergeSession(ctx, trips, q.SessionID, q.TotalFee)
	}
	for i := range trips {
		trips[i].Status = tripStatus(trips[i], now)
	}

	if s.sampleTrips {
		trips = append(trips, sampleTrips(now)...)
	}
	trips = dedupTrips(trips)

	savedIDs, err := s.saved.SavedIDs(ctx, email)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Trip, 0, len(trips))
	for _, t := range trips {
		if tab != "" && t.Status != tab {
			continue
		}
		t.IsSaved = savedIDs[ReservationKey(t)]
		out = append(out, t)
	}
	return &entities.TripsList{Tab: tab, Total: len(out), Trips: out}, nil
}

// DeleteTrip drops every stored entry matching id. Unknown ids are a no-op.
func (s *TripsService) DeleteTrip(ctx context.Context, email, id string) error {
	if id == "" {
		return apperrors.ErrBadRequest("Trip id is required.")
	}
	var stored []entities.Trip
	err := s.blobs.Update(ctx, email, storage.KeyReservations, &stored, func() (bool, error) {
		kept := stored[:0]
		for _, t := range stored {
			if t.ID == id || t.SessionIDAlt == id || t.ParkingTransactionID == id {
				continue
			}
			kept = append(kept, t)
		}
		changed := len(kept) != len(stored)
		stored = kept
		return changed, nil
	})
	if err != nil {
		log.Printf("Error deleting trip %s for %s: %v", id, email, err)
		return err
	}
	return nil
}

func (s *TripsService) mergeSession(ctx context.Context, trips []entities.Trip, sessionID, totalFee string) []entities.Trip {
	session, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		log.Printf("Error fetching session data for %s: %v", sessionID, err)
		return trips
	}

	date := session.StartTimestamp.UTC().Format(utils.DateLayout)
	from := session.StartTimestamp.UTC().Format(utils.TimeLayout)
	to := session.EndTimestamp.UTC().Format(utils.TimeLayout)
	status := entities.TripStatusActive
	if session.Status == repository.SessionStatusCompleted {
		status = entities.TripStatusCompleted
	}

	for i := range trips {
		if trips[i].SessionID == sessionID {
			trips[i].Date = date
			trips[i].FromTime = from
			trips[i].ToTime = to
			trips[i].Status = status
			return trips
		}
	}

	price := defaultNewTripPrice
	if totalFee != "" {
		price = dollars(totalFee)
	}
	return append(trips, entities.Trip{
		ID:                   sessionID,
		ParkingTransactionID: sessionID,
		Title:                newReservationTitle,
		Date:                 date,
		FromTime:             from,
		ToTime:               to,
		Price:                price,
		Status:               status,
		Type:                 entities.TripTypeParking,
		SessionID:            sessionID,
		UserWalletAddr:       session.UserWalletAddr,
		ProviderWalletAddr:   session.OwnerWalletAddr,
	})
}

// normalizeTrip folds the camelCase alternates into the canonical fields.
func normalizeTrip(item entities.Trip) entities.Trip {
	id := orDefault(item.ID, item.SessionIDAlt)
	if id == "" {
		id = "local-" + uuid.NewString()
	}
	return entities.Trip{
		ID:                   id,
		ParkingTransactionID: orDefault(item.ParkingTransactionID, item.SessionIDAlt),
		Title:                orDefault(item.Title, defaultTripTitle),
		Date:                 item.Date,
		FromTime:             fromTime(item),
		ToTime:               toTime(item),
		Price:                dollars(item.Price),
		Status:               entities.TripStatusActive,
		Type:                 entities.TripTypeParking,
		ParkingID:            item.ParkingID,
		SessionID:            orDefault(item.SessionIDAlt, item.SessionID),
		UserWalletAddr:       item.UserWalletAddr,
		ProviderWalletAddr:   item.ProviderWalletAddr,
	}
}

// tripStatus keeps a Completed status already taken from the session row.
func tripStatus(t entities.Trip, now time.Time) string {
	if t.Status == entities.TripStatusCompleted {
		return t.Status
	}
	if t.Date != "" && t.ToTime != "" && utils.IsReservationCompleted(t.Date, t.ToTime, now) {
		return entities.TripStatusCompleted
	}
	return entities.TripStatusActive
}

// dedupTrips keeps an entry only if it is the first one that any of its
// identifiers point at. Earlier entries win.
func dedupTrips(trips []entities.Trip) []entities.Trip {
	out := make([]entities.Trip, 0, len(trips))
	for i, t := range trips {
		key := t.ID
		if key == "" {
			key = t.ParkingTransactionID
		}
		if key == "" {
			key = t.SessionID
		}
		first := -1
		for j, r := range trips {
			if r.ID == key || r.ParkingTransactionID == key || r.SessionID == key {
				first = j
				break
			}
		}
		if first == i {
			out = append(out, t)
		}
	}
	return out
}

func sampleTrips(now time.Time) []entities.Trip {
	today := now.Format(utils.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(utils.DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(utils.DateLayout)
	sample := func(id, title, date, from, to, price, status, parkingID string) entities.Trip {
		return entities.Trip{
			ID:                   id,
			ParkingTransactionID: id,
			Title:                title,
			Date:                 date,
			FromTime:             from,
			ToTime:               to,
			Price:                price,
			Status:               status,
			Type:                 entities.TripTypeParking,
			ParkingID:            parkingID,
		}
	}
	return []entities.Trip{
		sample("p1", "Downtown Parking Garage", tomorrow, "09:00", "12:00", "$6.25", entities.TripStatusActive, "parking-1"),
		sample("p2", "Central Plaza Parking", today, "14:00", "18:00", "$8.25", entities.TripStatusActive, "parking-2"),
		sample("p3", "Market Street Parking", yesterday, "10:00", "15:00", "$10.25", entities.TripStatusCompleted, "parking-3"),
		sample("p4", "Convention Center Parking", "2023-03-10", "08:00", "17:00", "$18.25", entities.TripStatusCompleted, "parking-4"),
	}
}

func normalizeTab(tab string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(tab)) {
	case "":
		return "", nil
	case "active":
		return entities.TripStatusActive, nil
	case "completed":
		return entities.TripStatusCompleted, nil
	}
	return "", apperrors.ErrBadRequest("tab must be Active or Completed")
}

func dollars(price string) string {
	if price == "" || strings.HasPrefix(price, "$") {
		return price
	}
	return "$" + price
}
