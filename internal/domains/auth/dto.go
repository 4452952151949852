package auth

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LoginRequest carries the shared admin password. There is no user
// system; this mirrors the demo's single-credential login.
type LoginRequest struct {
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
}

type LoginResponse struct {
	Token string `json:"token"`
}
