package domain

import "time"

// Staff is a canteen administrator. Staff accounts are seeded, not
// self-registered; the JWT issued at login carries the is_staff claim
// that gates status updates, exports and catalog administration.
type Staff struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
