package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"zkpark/internal/entities"
	apperrors "zkpark/internal/errors"
	"zkpark/internal/storage"
)

// SavedService keeps the savedReservations blob and an in-memory copy per user.
// The copy is hydrated from the blob on first use and written through on change.
type SavedService struct {
	blobs *storage.Blobs

	mu    sync.Mutex
	cache map[string][]entities.SavedReservation
}

func NewSavedService(blobs *storage.Blobs) *SavedService {
	return &SavedService{blobs: blobs, cache: make(map[string][]entities.SavedReservation)}
}

func (s *SavedService) List(ctx context.Context, email string) ([]entities.SavedReservation, error) {
	s.mu.Lock()
	cached, ok := s.cache[email]
	s.mu.Unlock()
	if ok {
		return copySaved(cached), nil
	}

	var saved []entities.SavedReservation
	err := s.blobs.LoadThen(ctx, email, storage.KeySavedReservations, &saved, func() {
		s.remember(email, saved)
	})
	if err != nil {
		log.Printf("Error loading saved reservations for %s: %v", email, err)
		return nil, err
	}
	return copySaved(saved), nil
}

// SavedIDs returns the set of saved parking_transaction_ids.
func (s *SavedService) SavedIDs(ctx context.Context, email string) (map[string]bool, error) {
	saved, err := s.List(ctx, email)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(saved))
	for _, r := range saved {
		ids[r.ParkingTransactionID] = true
	}
	return ids, nil
}

// Add is a no-op when the id is already saved.
func (s *SavedService) Add(ctx context.Context, email string, item entities.SavedReservation) error {
	if item.ParkingTransactionID == "" {
		return apperrors.ErrBadRequest("Reservation id is required.")
	}
	var saved []entities.SavedReservation
	err := s.blobs.UpdateThen(ctx, email, storage.KeySavedReservations, &saved, func() (bool, error) {
		if indexOfSaved(saved, item.ParkingTransactionID) >= 0 {
			return false, nil
		}
		saved = append(saved, item)
		return true, nil
	}, func() { s.remember(email, saved) })
	if err != nil {
		log.Printf("Error saving reservation %s for %s: %v", item.ParkingTransactionID, email, err)
		return err
	}
	return nil
}

// Remove is a no-op when the id is not saved.
func (s *SavedService) Remove(ctx context.Context, email, id string) error {
	var saved []entities.SavedReservation
	err := s.blobs.UpdateThen(ctx, email, storage.KeySavedReservations, &saved, func() (bool, error) {
		i := indexOfSaved(saved, id)
		if i < 0 {
			return false, nil
		}
		saved = append(saved[:i], saved[i+1:]...)
		return true, nil
	}, func() { s.remember(email, saved) })
	if err != nil {
		log.Printf("Error removing saved reservation %s for %s: %v", id, email, err)
		return err
	}
	return nil
}

// Toggle saves the trip when absent and removes it when present.
func (s *SavedService) Toggle(ctx context.Context, email string, trip entities.Trip) (*entities.ToggleSavedResponse, error) {
	id := ReservationKey(trip)
	ids, err := s.SavedIDs(ctx, email)
	if err != nil {
		return nil, err
	}
	if ids[id] {
		if err := s.Remove(ctx, email, id); err != nil {
			return nil, err
		}
		return &entities.ToggleSavedResponse{ID: id, Saved: false}, nil
	}
	if err := s.Add(ctx, email, savedFromTrip(id, trip)); err != nil {
		return nil, err
	}
	return &entities.ToggleSavedResponse{ID: id, Saved: true}, nil
}

// ReservationKey picks the identifier a trip is saved under.
func ReservationKey(t entities.Trip) string {
	for _, id := range []string{t.ID, t.ParkingTransactionID, t.SessionID, t.SessionIDAlt} {
		if id != "" {
			return id
		}
	}
	return fmt.Sprintf("%s-%s-%s-%s", t.Type, t.Date, fromTime(t), toTime(t))
}

func savedFromTrip(id string, t entities.Trip) entities.SavedReservation {
	return entities.SavedReservation{
		ID:                   t.ID,
		ParkingTransactionID: id,
		Title:                t.Title,
		Date:                 t.Date,
		FromTime:             orDefault(fromTime(t), "00:00"),
		ToTime:               orDefault(toTime(t), "00:00"),
		Price:                t.Price,
		Status:               t.Status,
		Type:                 t.Type,
		ParkingID:            t.ParkingID,
	}
}

func (s *SavedService) remember(email string, saved []entities.SavedReservation) {
	s.mu.Lock()
	s.cache[email] = copySaved(saved)
	s.mu.Unlock()
}

func copySaved(saved []entities.SavedReservation) []entities.SavedReservation {
	out := make([]entities.SavedReservation, len(saved))
	copy(out, saved)
	return out
}

func indexOfSaved(saved []entities.SavedReservation, id string) int {
	for i, r := range saved {
		if r.ParkingTransactionID == id {
			return i
		}
	}
	return -1
}

func fromTime(t entities.Trip) string {
	return orDefault(t.FromTime, t.StartTimeAlt)
}

func toTime(t entities.Trip) string {
	return orDefault(t.ToTime, t.EndTimeAlt)
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
