package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// PointType is the only GeoJSON geometry type stored by the service.
const PointType = "Point"

// ErrInvalidPoint is returned when a point does not hold a valid (lng, lat) pair.
var ErrInvalidPoint = errors.New("invalid geographic point")

// Point is a GeoJSON point. Coordinates are always ordered as [lng, lat].
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewPoint builds a point from longitude and latitude, in that order.
func NewPoint(lng, lat float64) Point {
	return Point{Type: PointType, Coordinates: [2]float64{lng, lat}}
}

// Lng returns the longitude of the point.
func (p Point) Lng() float64 { return p.Coordinates[0] }

// Lat returns the latitude of the point.
func (p Point) Lat() float64 { return p.Coordinates[1] }

// Validate reports whether the point lies within WGS 84 bounds.
func (p Point) Validate() error {
	if p.Type != PointType {
		return fmt.Errorf("%w: unsupported type %q", ErrInvalidPoint, p.Type)
	}
	if p.Lng() < -180 || p.Lng() > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidPoint, p.Lng())
	}
	if p.Lat() < -90 || p.Lat() > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidPoint, p.Lat())
	}

	return nil
}

// UnmarshalJSON accepts only a two-element coordinate array.
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPoint, err)
	}
	const dims = 2
	if len(raw.Coordinates) != dims {
		return fmt.Errorf("%w: expected [lng, lat], got %d values", ErrInvalidPoint, len(raw.Coordinates))
	}
	if raw.Type == "" {
		raw.Type = PointType
	}

	*p = Point{Type: raw.Type, Coordinates: [2]float64{raw.Coordinates[0], raw.Coordinates[1]}}

	return nil
}
