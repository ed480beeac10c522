package models

// Coordinates represents a geographical point defined by its longitude and latitude.
type Coordinates struct {
	Longitude float64 // Longitude of the geographical point.
	Latitude  float64 // Latitude of the geographical point.
}

// Point converts the coordinates into a GeoJSON point.
func (c Coordinates) Point() Point {
	return NewPoint(c.Longitude, c.Latitude)
}
