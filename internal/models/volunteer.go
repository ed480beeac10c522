package models

import "time"

// Volunteer is a person who registered to help nearby SOS reporters.
type Volunteer struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	City      string    `json:"city"`
	Skills    []string  `json:"skills"`
	Verified  bool      `json:"verified"`
	Location  *Point    `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
