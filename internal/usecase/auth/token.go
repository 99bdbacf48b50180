package auth

import domain "ducksapi/backend/internal/domain/auth"

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	Generate(identity domain.Claims) (string, error)
	Validate(token string) (*domain.Claims, error)
}
