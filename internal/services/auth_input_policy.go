package services

import (
	"errors"
	"net/mail"
	"strings"
)

var ErrAuthCredentialsInvalid = errors.New("invalid credentials")

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return ""
	}
	return email
}

// NormalizeCredentialsInput trims the email only. Passwords are used verbatim.
func NormalizeCredentialsInput(emailRaw string, password string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" || strings.TrimSpace(password) == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}
