package domain

import "time"

// Shop is the tenant scope a non-admin user belongs to.
type Shop struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
