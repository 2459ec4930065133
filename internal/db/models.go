package db

import (
	"database/sql"
	"time"
)

// User mirrors a row of the "user" table.
type User struct {
	Email        string
	PasswordHash string
	Age          int
	WalletAddr   sql.NullString
}

// ParkingSpot mirrors a row of the "parking" table. Coordinates are stored as text.
type ParkingSpot struct {
	ID         string
	Lat        string
	Long       string
	Address    string
	ImageURL   sql.NullString
	OwnerEmail string
}

type ParkingSession struct {
	ID              int
	UserEmail       string
	UserWalletAddr  string
	OwnerEmail      string
	OwnerWalletAddr string
	SessionID       string
	StartTimestamp  time.Time
	EndTimestamp    time.Time
	Status          string
	CreatedAt       time.Time
}
