package domain

import "time"

// Event is a scheduled canteen day. Products and orders are scoped to
// an event; the Active flag marks the one currently open for ordering.
type Event struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
