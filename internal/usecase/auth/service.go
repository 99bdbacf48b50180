package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	domain "ducksapi/backend/internal/domain/auth"
	"ducksapi/backend/internal/domain/store"
	"ducksapi/backend/internal/logging"
	"ducksapi/backend/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor applied to every stored password.
const PasswordCost = 10

// Service coordinates registration, login and token checks between the
// store and the token authority.
type Service struct {
	store     store.Connector
	tokens    TokenManager
	validator *validation.Validator
	log       *slog.Logger
	nowFunc   func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// NewService constructs an auth service.
func NewService(connector store.Connector, tokens TokenManager, log *slog.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{
		store:     connector,
		tokens:    tokens,
		validator: validation.New(),
		log:       logging.Named(log, "auth"),
		nowFunc:   time.Now,
	}
}

// ValidateRegistration checks a registration payload. Violations unwrap to
// domain.ErrValidation.
func (s *Service) ValidateRegistration(in RegisterInput) error {
	if err := s.validator.Struct(in, domain.ErrValidation); err != nil {
		return err
	}
	if len(in.Password) > 72 {
		return validation.NewError("password", "max",
			`"password" length must be less than or equal to 72 bytes long`, domain.ErrValidation)
	}
	return nil
}

// ValidateLogin checks a login payload. Violations unwrap to
// domain.ErrValidation.
func (s *Service) ValidateLogin(in LoginInput) error {
	return s.validator.Struct(in, domain.ErrValidation)
}

// Register validates the payload, stores a new account with a hashed password
// and returns its id.
func (s *Service) Register(ctx context.Context, in RegisterInput) (id string, err error) {
	defer func() { s.logOutcome(ctx, "register", err, "account_id", id) }()

	if err := s.ValidateRegistration(in); err != nil {
		return "", err
	}
	email := normalizeEmail(in.Email)

	sess, err := s.store.Connect(ctx)
	if err != nil {
		return "", fmt.Errorf("connect store: %w", err)
	}
	defer sess.Release()

	accounts := sess.Accounts()
	if _, err := accounts.GetByEmail(ctx, email); err == nil {
		return "", domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return "", fmt.Errorf("lookup account: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    s.nowFunc().UTC(),
	}

	// A concurrent registration can still win the race; the store's unique
	// email constraint reports it as ErrEmailExists.
	if err := accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return "", err
		}
		return "", fmt.Errorf("create account: %w", err)
	}
	return account.ID, nil
}

// Login checks the credentials and issues a session token. Unknown email and
// wrong password both return domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (result *LoginResult, err error) {
	defer func() {
		var id string
		if result != nil {
			id = result.AccountID
		}
		s.logOutcome(ctx, "login", err, "account_id", id)
	}()

	if err := s.ValidateLogin(in); err != nil {
		return nil, err
	}

	sess, err := s.store.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	defer sess.Release()

	account, err := sess.Accounts().GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Burn the same bcrypt time as a real comparison.
			_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(in.Password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(domain.ClaimsFor(account))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{AccountID: account.ID, Token: token}, nil
}

// VerifyToken returns the identity carried by a token. An empty token yields
// domain.ErrMissingToken; every other failure wraps domain.ErrTokenInvalid.
func (s *Service) VerifyToken(ctx context.Context, token string) (*domain.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenInvalid) {
			err = fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
		}
		s.log.DebugContext(ctx, "token rejected", slog.Any("error", err))
		return nil, err
	}
	return claims, nil
}

func (s *Service) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), PasswordCost)
	})
	return s.dummyHash
}

func (s *Service) logOutcome(ctx context.Context, op string, err error, attrs ...any) {
	switch {
	case err == nil:
		s.log.InfoContext(ctx, op+" succeeded", attrs...)
	case isClientError(err):
		s.log.InfoContext(ctx, op+" rejected", slog.String("reason", err.Error()))
	default:
		s.log.ErrorContext(ctx, op+" failed", slog.Any("error", err))
	}
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrEmailExists) ||
		errors.Is(err, domain.ErrInvalidCredentials)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
