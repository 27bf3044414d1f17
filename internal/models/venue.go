package models

// Venue is one of the fixed race courses.
type Venue struct {
	Code      string `db:"code" json:"code"`
	Name      string `db:"name" json:"name"`
	Location  string `db:"location" json:"location"`
	Region    string `db:"region" json:"region"`
	WaterType string `db:"water_type" json:"water_type"`
}
