package util

import (
	"net/mail"
	"strings"
)

// ValidateEmail reports whether email is a bare address such as
// "user@example.com". Display names and angle brackets are rejected.
func ValidateEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

// ValidateUsername reports whether name is non-blank and at most 64 runes.
func ValidateUsername(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && len([]rune(name)) <= 64
}
