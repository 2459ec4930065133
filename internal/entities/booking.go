package entities

// BookingRequest is the body of the external booking call. Parties are wallet addresses.
type BookingRequest struct {
	User      string `json:"user"`
	SpotOwner string `json:"spotOwner"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type BookingResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}
