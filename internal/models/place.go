package models

import "time"

// Place is an accessible location submitted by the community.
// Location is nil while the place waits for its address to be geocoded.
type Place struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Location    *Point    `json:"location,omitempty"`
	Tags        []string  `json:"tags"`
	Photos      []string  `json:"photos"`
	Verified    bool      `json:"verified"`
	AddedBy     *string   `json:"addedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GeocodingTask is a place whose address still needs coordinates.
type GeocodingTask struct {
	PlaceID string // PlaceID is the identifier of the place.
	Address string // Address is the location to be geocoded.
}
