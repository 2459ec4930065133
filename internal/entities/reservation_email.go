package entities

type ReservationEmailData struct {
	UserEmail   string
	UserName    string
	SessionID   string
	SpotTitle   string
	Vehicle     string
	Date        string
	FromTime    string
	ToTime      string
	TotalFee    string
	CurrentYear int
}
