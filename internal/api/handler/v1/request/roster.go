package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type RegisterRepresentativeRequest struct {
	PhoneCode   string `json:"phone_code"`
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
}

func (req RegisterRepresentativeRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.PhoneCode, validation.Required, is.Digit, validation.Length(1, 4)),
		validation.Field(&req.PhoneNumber, validation.Required, is.Digit, validation.Length(6, 12)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
	)
}

type CreateStudentRequest struct {
	RepresentativeID uint64 `json:"representative_id"`
	Name             string `json:"name"`
	Grade            string `json:"grade"`
	Section          string `json:"section"`
}

func (req CreateStudentRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.RepresentativeID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Grade, validation.Required),
		validation.Field(&req.Section, validation.Required),
	)
}
