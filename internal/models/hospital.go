package models

type Hospital struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Phone      string  `json:"phone"`
	Latitude   float64 `json:"lat"`
	Longitude  float64 `json:"lng"`
	DistanceKM float64 `json:"distance_km"`
	Emergency  bool    `json:"emergency"`
}
