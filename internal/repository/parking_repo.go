package repository

import (
	"context"
	"database/sql"
	"fmt"

	"zkpark/internal/db"
)

type ParkingRepository interface {
	ListSpots(ctx context.Context) ([]db.ParkingSpot, error)
	FindByCoordinates(ctx context.Context, lat, long string) ([]db.ParkingSpot, error)
}

type parkingRepository struct {
	db *sql.DB
}

func NewParkingRepository(db *sql.DB) ParkingRepository {
	return &parkingRepository{db: db}
}

const parkingColumns = `COALESCE(id::text, ''), COALESCE(lat, ''), COALESCE(long, ''), COALESCE(addr, ''), purl1, COALESCE(email_id, '')`

func (r *parkingRepository) ListSpots(ctx context.Context) ([]db.ParkingSpot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+parkingColumns+` FROM parking`)
	if err != nil {
		return nil, fmt.Errorf("error querying parking spots: %w", err)
	}
	defer rows.Close()
	return scanSpots(rows)
}

// FindByCoordinates matches the text lat/long columns exactly.
func (r *parkingRepository) FindByCoordinates(ctx context.Context, lat, long string) ([]db.ParkingSpot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+parkingColumns+` FROM parking WHERE lat = $1 AND long = $2`, lat, long)
	if err != nil {
		return nil, fmt.Errorf("error querying parking by coordinates: %w", err)
	}
	defer rows.Close()
	return scanSpots(rows)
}

func scanSpots(rows *sql.Rows) ([]db.ParkingSpot, error) {
	var spots []db.ParkingSpot
	for rows.Next() {
		var s db.ParkingSpot
		if err := rows.Scan(&s.ID, &s.Lat, &s.Long, &s.Address, &s.ImageURL, &s.OwnerEmail); err != nil {
			return nil, fmt.Errorf("error scanning parking spot: %w", err)
		}
		spots = append(spots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating parking rows: %w", err)
	}
	return spots, nil
}
