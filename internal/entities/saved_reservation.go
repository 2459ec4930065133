package entities

// SavedReservation is keyed by ParkingTransactionID.
type SavedReservation struct {
	ID                   string `json:"id,omitempty"`
	ParkingTransactionID string `json:"parking_transaction_id"`
	Title                string `json:"title"`
	Date                 string `json:"date"`
	FromTime             string `json:"from_time"`
	ToTime               string `json:"to_time"`
	Price                string `json:"price"`
	Status               string `json:"status"`
	Type                 string `json:"type,omitempty"`
	ParkingID            string `json:"parking_id"`
}

type ToggleSavedResponse struct {
	ID    string `json:"id"`
	Saved bool   `json:"saved"`
}
