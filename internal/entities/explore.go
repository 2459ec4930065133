package entities

type SpotView struct {
	ID           string  `json:"id"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Title        string  `json:"title"`
	Price        string  `json:"price"`
	Type         string  `json:"type"`
	Distance     string  `json:"distance,omitempty"`
	Availability string  `json:"availability"`
	ImageURL     string  `json:"image_url,omitempty"`
}

type MapRegion struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitudeDelta"`
	LongitudeDelta float64 `json:"longitudeDelta"`
}

type ExploreResponse struct {
	Region MapRegion  `json:"region"`
	Spots  []SpotView `json:"spots"`
}
