package entities

// ParkingSpotRef is the spot a reservation screen was opened for.
type ParkingSpotRef struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     string  `json:"price,omitempty"`
	Distance  string  `json:"distance,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	ImageURL  string  `json:"image_url,omitempty"`
}

type QuoteRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ReservationContextRequest struct {
	Spot ParkingSpotRef `json:"spot"`
}

type ConfirmReservationRequest struct {
	Spot      ParkingSpotRef `json:"spot"`
	Date      string         `json:"date"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Vehicle   string         `json:"vehicle"`
}

// ReservationContext is everything the reserve screen resolves before confirming.
type ReservationContext struct {
	ParkingID          string   `json:"parking_id"`
	UserEmail          string   `json:"user_email"`
	UserWalletAddr     string   `json:"user_wallet_addr"`
	ProviderEmail      string   `json:"provider_email"`
	ProviderWalletAddr string   `json:"provider_wallet_addr"`
	Images             []string `json:"images"`
	WalletConnected    bool     `json:"wallet_connected"`
}

type ConfirmReservationResponse struct {
	SessionID string `json:"session_id"`
	TotalFee  string `json:"total_fee"`
	Message   string `json:"message"`
}
