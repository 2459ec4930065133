package entities

const (
	TripStatusActive    = "Active"
	TripStatusCompleted = "Completed"
	TripTypeParking     = "parking"
)

// Trip is a reservation as stored in the reservations blob and as listed on
// the trips screen. Older records use the camelCase alternates.
type Trip struct {
	ID                   string `json:"id,omitempty"`
	ParkingTransactionID string `json:"parking_transaction_id,omitempty"`
	Title                string `json:"title"`
	Date                 string `json:"date"`
	FromTime             string `json:"from_time,omitempty"`
	ToTime               string `json:"to_time,omitempty"`
	StartTimeAlt         string `json:"startTime,omitempty"`
	EndTimeAlt           string `json:"endTime,omitempty"`
	Price                string `json:"price"`
	Status               string `json:"status"`
	Type                 string `json:"type"`
	ParkingID            string `json:"parking_id,omitempty"`
	SessionID            string `json:"session_id,omitempty"`
	SessionIDAlt         string `json:"sessionId,omitempty"`
	UserWalletAddr       string `json:"user_wallet_addr,omitempty"`
	ProviderWalletAddr   string `json:"provider_wallet_addr,omitempty"`
	IsSaved              bool   `json:"is_saved,omitempty"`
}

type TripsList struct {
	Tab   string `json:"tab,omitempty"`
	Total int    `json:"total"`
	Trips []Trip `json:"trips"`
}
