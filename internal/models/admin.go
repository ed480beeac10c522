package models

import "time"

// DefaultAdminRole is assigned to every newly registered administrator.
const DefaultAdminRole = "admin"

// Admin is a privileged account able to moderate alerts, places and schemes.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}
