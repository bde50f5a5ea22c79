package service

import (
	"crypto/subtle"

	"github.com/imtaco/interview-lobby/rooms"
)

// passwordGate checks the admin password guarding room management.
type passwordGate struct {
	secret string
}

func (g passwordGate) check(password string) error {
	if password == "" {
		return rooms.NewFlowError(rooms.ErrValidation, "Password Required",
			"Please enter the password to manage rooms.")
	}
	if g.secret == "" {
		return rooms.NewFlowError(rooms.ErrConfiguration, "Configuration Error",
			"The admin password is not configured on the server.")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.secret)) != 1 {
		return rooms.NewFlowError(rooms.ErrUnauthorized, "Invalid Password",
			"The password you entered is incorrect. Please try again.")
	}
	return nil
}
