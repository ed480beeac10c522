package models

import "time"

// Scheme is a government or NGO programme published by administrators.
type Scheme struct {
	ID           string     `json:"_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Organization string     `json:"organization"`
	URL          string     `json:"url"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Location     string     `json:"location"`
	CreatedAt    time.Time  `json:"createdAt"`
}
