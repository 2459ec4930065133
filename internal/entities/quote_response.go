package entities

type QuoteResponse struct {
	ParkingFee string `json:"parking_fee"`
	ServiceFee string `json:"service_fee"`
	TotalFee   string `json:"total_fee"`
}
