package domain

import (
	"strconv"
	"time"
)

// Representative is a guardian account. Its ID is the numeric
// concatenation of the phone country code and the phone number, so the
// phone itself is the natural key.
type Representative struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	PhoneCode   string    `json:"phone_code"`
	PhoneNumber string    `json:"phone_number"`
	Students    []Student `json:"students,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PhoneIdentity derives the representative ID from a phone code and number.
// "58" + "1234567890" -> 581234567890.
func PhoneIdentity(phoneCode, phoneNumber string) (uint64, error) {
	return strconv.ParseUint(phoneCode+phoneNumber, 10, 64)
}

// PhoneE164 renders the representative's phone in +<code><number> form
// for the notification provider.
func (r Representative) PhoneE164() string {
	return "+" + r.PhoneCode + r.PhoneNumber
}
