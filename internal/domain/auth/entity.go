package auth

import (
	"errors"
	"time"
)

var (
	// ErrValidation marks malformed registration or login input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials indicates a login failure. Unknown email and wrong
	// password share this error so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists signals a duplicate email registration.
	ErrEmailExists = errors.New("email already registered")
	// ErrAccountNotFound indicates a missing account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrMissingToken means no bearer token was presented.
	ErrMissingToken = errors.New("token missing")
	// ErrTokenInvalid means a supplied token cannot be validated.
	ErrTokenInvalid = errors.New("token invalid")

	// Diagnostic kinds, always reported together with ErrTokenInvalid.
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// Account models the authentication entity persisted in storage.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Claims is the identity carried by a session token.
type Claims struct {
	AccountID string
	Name      string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ClaimsFor builds the token claims for an account. Timestamps are filled in
// by the issuer.
func ClaimsFor(a *Account) Claims {
	return Claims{
		AccountID: a.ID,
		Name:      a.Name,
		Email:     a.Email,
	}
}
