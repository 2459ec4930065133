package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"zkpark/internal/db"
	"zkpark/internal/entities"
	apperrors "zkpark/internal/errors"
	"zkpark/internal/repository"
	"zkpark/internal/storage"
	"zkpark/internal/utils"
)

const (
	msgReservationFailed    = "Failed to complete reservation. Please try again."
	msgReservationConfirmed = "Reservation confirmed successfully!"
	msgSelectDateTime       = "Please select date, start time, and end time."
	msgEndBeforeStart       = "End time must be later than start time."
)

// reservationDraft is what must be known before the booking call is made.
// Field order is the order problems are reported in.
type reservationDraft struct {
	Date               string `validate:"required"`
	StartTime          string `validate:"required"`
	EndTime            string `validate:"required"`
	UserEmail          string `validate:"required"`
	UserWalletAddr     string `validate:"required"`
	ProviderEmail      string `validate:"required"`
	ProviderWalletAddr string `validate:"required"`
	ParkingID          string `validate:"required"`
}

var draftMessages = map[string]string{
	"Date":               msgSelectDateTime,
	"StartTime":          msgSelectDateTime,
	"EndTime":            msgSelectDateTime,
	"UserEmail":          "User email not found. Please log in again.",
	"UserWalletAddr":     "User wallet address not found. Please connect your wallet first.",
	"ProviderEmail":      "Provider information not found.",
	"ProviderWalletAddr": "Provider wallet address not found.",
	"ParkingID":          "Parking ID not found.",
}

type ReservationService struct {
	users    repository.UserRepository
	parking  repository.ParkingRepository
	sessions repository.SessionRepository
	booking  BookingAPI
	blobs    *storage.Blobs
	notifier Notifier
	validate *validator.Validate
	now      func() time.Time
}

func NewReservationService(
	users repository.UserRepository,
	parking repository.ParkingRepository,
	sessions repository.SessionRepository,
	booking BookingAPI,
	blobs *storage.Blobs,
	notifier Notifier,
) *ReservationService {
	return &ReservationService{
		users:    users,
		parking:  parking,
		sessions: sessions,
		booking:  booking,
		blobs:    blobs,
		notifier: notifier,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *ReservationService) GetVehicleOptions() []utils.VehicleOption {
	return utils.VehicleOptions()
}

// Quote prices the hour-rounded times. Missing times price as "--".
func (s *ReservationService) Quote(req entities.QuoteRequest) (entities.QuoteResponse, error) {
	start, err := utils.RoundToHour(req.StartTime)
	if err != nil {
		return entities.QuoteResponse{}, apperrors.ErrBadRequest("Invalid start time.")
	}
	end, err := utils.RoundToHour(req.EndTime)
	if err != nil {
		return entities.QuoteResponse{}, apperrors.ErrBadRequest("Invalid end time.")
	}
	return CalculateFee(start, end), nil
}

// ResolveContext looks up both parties of a booking. Missing pieces are left
// empty; confirming reports them.
func (s *ReservationService) ResolveContext(ctx context.Context, email string, spot entities.ParkingSpotRef) (*entities.ReservationContext, error) {
	rc := &entities.ReservationContext{
		ParkingID: spot.ID,
		UserEmail: email,
		Images:    []string{},
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		log.Printf("Error fetching user data for %s: %v", email, err)
		return nil, err
	}
	rc.UserWalletAddr = walletOf(user)
	rc.WalletConnected = rc.UserWalletAddr != ""

	lat := strconv.FormatFloat(spot.Latitude, 'f', -1, 64)
	long := strconv.FormatFloat(spot.Longitude, 'f', -1, 64)
	rows, err := s.parking.FindByCoordinates(ctx, lat, long)
	if err != nil {
		log.Printf("Error fetching parking by coordinates %s,%s: %v", lat, long, err)
		return nil, err
	}
	if len(rows) == 0 {
		log.Printf("No parking data found by coordinates %s,%s", lat, long)
		if spot.ImageURL != "" {
			rc.Images = []string{spot.ImageURL}
		}
		return rc, nil
	}

	row := rows[0]
	if rc.ParkingID == "" {
		rc.ParkingID = row.ID
	}
	rc.ProviderEmail = row.OwnerEmail
	if row.ImageURL.Valid && row.ImageURL.String != "" {
		rc.Images = []string{row.ImageURL.String}
	} else if spot.ImageURL != "" {
		rc.Images = []string{spot.ImageURL}
	}

	if rc.ProviderEmail != "" {
		provider, err := s.users.GetByEmail(ctx, rc.ProviderEmail)
		if err != nil {
			log.Printf("Error fetching provider wallet address for %s: %v", rc.ProviderEmail, err)
			return nil, err
		}
		rc.ProviderWalletAddr = walletOf(provider)
	}
	return rc, nil
}

// ConfirmReservation books with the external API, records the session,
// appends the trip to the caller's reservations blob and sends the
// confirmation email. Later steps are not rolled back when one fails.
func (s *ReservationService) ConfirmReservation(ctx context.Context, email string, req entities.ConfirmReservationRequest) (*entities.ConfirmReservationResponse, error) {
	start, err := utils.RoundToHour(req.StartTime)
	if err != nil {
		return nil, apperrors.ErrBadRequest(msgSelectDateTime)
	}
	end, err := utils.RoundToHour(req.EndTime)
	if err != nil {
		return nil, apperrors.ErrBadRequest(msgSelectDateTime)
	}

	rc, err := s.ResolveContext(ctx, email, req.Spot)
	if err != nil {
		return nil, err
	}

	draft := reservationDraft{
		Date:               req.Date,
		StartTime:          start,
		EndTime:            end,
		UserEmail:          rc.UserEmail,
		UserWalletAddr:     rc.UserWalletAddr,
		ProviderEmail:      rc.ProviderEmail,
		ProviderWalletAddr: rc.ProviderWalletAddr,
		ParkingID:          rc.ParkingID,
	}
	if err := s.checkDraft(draft); err != nil {
		return nil, err
	}

	startTS, err := utils.ParseAPIDateTime(draft.Date, draft.StartTime)
	if err != nil {
		return nil, apperrors.ErrBadRequest(msgSelectDateTime)
	}
	endTS, err := utils.ParseAPIDateTime(draft.Date, draft.EndTime)
	if err != nil {
		return nil, apperrors.ErrBadRequest(msgSelectDateTime)
	}
	fee := CalculateFee(draft.StartTime, draft.EndTime)

	log.Printf("Step 1: calling reservation API for %s", email)
	booking, err := s.booking.CreateReservation(ctx, entities.BookingRequest{
		User:      draft.UserWalletAddr,
		SpotOwner: draft.ProviderWalletAddr,
		StartTime: utils.FormatDateTimeForAPI(draft.Date, draft.StartTime),
		EndTime:   utils.FormatDateTimeForAPI(draft.Date, draft.EndTime),
	})
	if err != nil {
		log.Printf("Error in reservation process: %v", err)
		return nil, apperrors.ErrBadGateway(msgReservationFailed)
	}
	if !booking.Success || booking.SessionID == "" {
		log.Printf("Error in reservation process: reservation API did not create a session (message: %q)", booking.Message)
		return nil, apperrors.ErrBadGateway(msgReservationFailed)
	}
	sessionID := booking.SessionID
	log.Printf("Received session ID: %s", sessionID)

	log.Printf("Step 2: saving session %s", sessionID)
	err = s.sessions.CreateSession(ctx, &db.ParkingSession{
		UserEmail:       draft.UserEmail,
		UserWalletAddr:  draft.UserWalletAddr,
		OwnerEmail:      draft.ProviderEmail,
		OwnerWalletAddr: draft.ProviderWalletAddr,
		SessionID:       sessionID,
		StartTimestamp:  startTS,
		EndTimestamp:    endTS,
		Status:          repository.SessionStatusActive,
	})
	if err != nil {
		log.Printf("Error in reservation process: %v", err)
		return nil, apperrors.ErrBadGateway(msgReservationFailed)
	}

	log.Printf("Step 3: storing trip %s", sessionID)
	trip := entities.Trip{
		ID:                   sessionID,
		ParkingTransactionID: sessionID,
		Title:                req.Spot.Title,
		Date:                 draft.Date,
		FromTime:             draft.StartTime,
		ToTime:               draft.EndTime,
		Price:                "$" + fee.TotalFee,
		Status:               entities.TripStatusActive,
		Type:                 entities.TripTypeParking,
		ParkingID:            draft.ParkingID,
		SessionID:            sessionID,
		UserWalletAddr:       draft.UserWalletAddr,
		ProviderWalletAddr:   draft.ProviderWalletAddr,
	}
	if err := s.appendTrip(ctx, email, trip); err != nil {
		log.Printf("Error in reservation process: %v", err)
		return nil, apperrors.ErrBadGateway(msgReservationFailed)
	}

	s.notifier.SendReservationEmail(entities.ReservationEmailData{
		UserEmail:   email,
		UserName:    utils.DisplayNameFromEmail(email),
		SessionID:   sessionID,
		SpotTitle:   req.Spot.Title,
		Vehicle:     utils.NormalizeVehicle(req.Vehicle),
		Date:        draft.Date,
		FromTime:    draft.StartTime,
		ToTime:      draft.EndTime,
		TotalFee:    fee.TotalFee,
		CurrentYear: s.now().Year(),
	})

	return &entities.ConfirmReservationResponse{
		SessionID: sessionID,
		TotalFee:  fee.TotalFee,
		Message:   msgReservationConfirmed,
	}, nil
}

func (s *ReservationService) checkDraft(draft reservationDraft) error {
	if err := s.validate.Struct(draft); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			if msg, ok := draftMessages[verrs[0].Field()]; ok {
				return apperrors.ErrBadRequest(msg)
			}
		}
		return fmt.Errorf("validating reservation: %w", err)
	}
	// "HH:00" strings sort in time order.
	if draft.StartTime >= draft.EndTime {
		return apperrors.ErrBadRequest(msgEndBeforeStart)
	}
	return nil
}

func (s *ReservationService) appendTrip(ctx context.Context, email string, trip entities.Trip) error {
	var stored []entities.Trip
	return s.blobs.Update(ctx, email, storage.KeyReservations, &stored, func() (bool, error) {
		stored = append(stored, trip)
		return true, nil
	})
}
