package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"zkpark/internal/db"
)

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, s *db.ParkingSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*db.ParkingSession, error)
}

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) CreateSession(ctx context.Context, s *db.ParkingSession) error {
	if s.Status == "" {
		s.Status = SessionStatusActive
	}
	query := `
		INSERT INTO parking_session
		(user_email_id, user_wallet_addr, owner_email_id, owner_wallet_addr, session_id, start_timestamp, end_timestamp, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		s.UserEmail,
		s.UserWalletAddr,
		s.OwnerEmail,
		s.OwnerWalletAddr,
		s.SessionID,
		s.StartTimestamp,
		s.EndTimestamp,
		s.Status,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("error saving parking session %s: %w", s.SessionID, err)
	}
	return nil
}

func (r *ReservationRepository) GetBySessionID(ctx context.Context, sessionID string) (*db.ParkingSession, error) {
	var s db.ParkingSession
	query := `
		SELECT id, user_email_id, user_wallet_addr, owner_email_id, owner_wallet_addr, session_id, start_timestamp, end_timestamp, status, created_at
		FROM parking_session WHERE session_id = $1`
	err := r.DB.QueryRowContext(ctx, query, sessionID).Scan(
		&s.ID, &s.UserEmail, &s.UserWalletAddr, &s.OwnerEmail, &s.OwnerWalletAddr,
		&s.SessionID, &s.StartTimestamp, &s.EndTimestamp, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("parking session '%s' not found: %w", sessionID, err)
		}
		return nil, fmt.Errorf("error querying parking session: %w", err)
	}
	return &s, nil
}
