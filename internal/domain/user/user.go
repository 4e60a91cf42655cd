package user

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrNotFound         = errors.New("user not found")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Name         string    `json:"name"`
	IsStaff      bool      `json:"-"`
	IsSuperuser  bool      `json:"-"`
	IsActive     bool      `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeEmail lower-cases only the domain segment of an address.
// The local part is case-sensitive per RFC 5321, so it is kept verbatim.
// Addresses without an '@' are returned unchanged.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")

	if at < 0 {
		return email
	}

	return email[:at+1] + strings.ToLower(email[at+1:])
}

// with pointers if optional, nil means "leave as is".
// Email is deliberately absent: addresses are fixed at registration.
type UpdateProfileRequest struct {
	Name         *string
	PasswordHash *string
}
