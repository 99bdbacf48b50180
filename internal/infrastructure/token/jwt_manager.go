package token

import (
	"errors"
	"fmt"
	"time"

	domain "ducksapi/backend/internal/domain/auth"
	usecase "ducksapi/backend/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the fixed lifetime of every issued token.
const TTL = 2 * time.Hour

// ErrEmptySecret is returned when the manager is built without a signing key.
var ErrEmptySecret = errors.New("token signing secret is empty")

// JWTManager issues and validates HS256 session tokens. It keeps no record
// of issued tokens; a token is valid until it expires.
type JWTManager struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	nowFunc func() time.Time
}

// Option customises a JWTManager.
type Option func(*JWTManager)

// WithIssuer sets the iss claim on issued tokens.
func WithIssuer(issuer string) Option {
	return func(m *JWTManager) { m.issuer = issuer }
}

// WithClock replaces the time source used for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(m *JWTManager) { m.nowFunc = now }
}

// NewJWTManager constructs a manager around the process-wide secret.
func NewJWTManager(secret string, opts ...Option) (*JWTManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	m := &JWTManager{
		secret:  []byte(secret),
		ttl:     TTL,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Ensure JWTManager implements the TokenManager interface.
var _ usecase.TokenManager = (*JWTManager)(nil)

type claims struct {
	AccountID string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Generate creates a signed JWT for the account identity.
func (m *JWTManager) Generate(identity domain.Claims) (string, error) {
	now := m.nowFunc().UTC()
	c := claims{
		AccountID: identity.AccountID,
		Name:      identity.Name,
		Email:     identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses the token and returns its identity. Every failure wraps
// domain.ErrTokenInvalid together with one diagnostic kind.
func (m *JWTManager) Validate(tokenString string) (*domain.Claims, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.nowFunc),
	)
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid || c.AccountID == "" {
		return nil, fmt.Errorf("%w: %w: missing identity", domain.ErrTokenInvalid, domain.ErrTokenMalformed)
	}

	identity := &domain.Claims{
		AccountID: c.AccountID,
		Name:      c.Name,
		Email:     c.Email,
		ExpiresAt: c.ExpiresAt.Time,
	}
	if c.IssuedAt != nil {
		identity.IssuedAt = c.IssuedAt.Time
	}
	return identity, nil
}

func classify(err error) error {
	var kind error
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		kind = domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		kind = domain.ErrTokenSignature
	default:
		kind = domain.ErrTokenMalformed
	}
	return fmt.Errorf("%w: %w: %v", domain.ErrTokenInvalid, kind, err)
}
