package auth_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	domain "ducksapi/backend/internal/domain/auth"
	"ducksapi/backend/internal/domain/store"
	"ducksapi/backend/internal/infrastructure/memory"
	"ducksapi/backend/internal/infrastructure/token"
	"ducksapi/backend/internal/logging"
	"ducksapi/backend/internal/usecase/auth"
	"ducksapi/backend/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, connector store.Connector) *auth.Service {
	t.Helper()
	tokens, err := token.NewJWTManager("test-secret")
	require.NoError(t, err)
	return auth.NewService(connector, tokens, logging.Nop())
}

var alice = auth.RegisterInput{Name: "alice01", Email: "alice@example.com", Password: "secret1"}

func TestRegister_ReturnsNewID(t *testing.T) {
	st := memory.New()
	svc := newService(t, st)

	id, err := svc.Register(context.Background(), alice)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Zero(t, st.OpenSessions())

	sess, err := st.Connect(context.Background())
	require.NoError(t, err)
	defer sess.Release()

	stored, err := sess.Accounts().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.NotEqual(t, alice.Password, stored.PasswordHash)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	st := memory.New()
	svc := newService(t, st)

	_, err := svc.Register(context.Background(), alice)
	require.NoError(t, err)

	again := alice
	again.Name = "someone"
	again.Email = "ALICE@example.com"
	_, err = svc.Register(context.Background(), again)
	assert.ErrorIs(t, err, domain.ErrEmailExists)
	assert.Zero(t, st.OpenSessions())
}

func TestRegister_ConcurrentDuplicatesYieldOneAccount(t *testing.T) {
	st := memory.New()
	svc := newService(t, st)

	const attempts = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), alice)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, domain.ErrEmailExists):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, rejected)
	assert.Zero(t, st.OpenSessions())
}

func TestRegister_Validation(t *testing.T) {
	svc := newService(t, memory.New())

	tests := []struct {
		name    string
		input   auth.RegisterInput
		message string
	}{
		{
			name:    "short name",
			input:   auth.RegisterInput{Name: "bob", Email: "bob@example.com", Password: "secret1"},
			message: `"name" length must be at least 6 characters long`,
		},
		{
			name:    "bad email",
			input:   auth.RegisterInput{Name: "bobby1", Email: "not-an-email", Password: "secret1"},
			message: `"email" must be a valid email`,
		},
		{
			name:    "missing password",
			input:   auth.RegisterInput{Name: "bobby1", Email: "bob@example.com"},
			message: `"password" is required`,
		},
		{
			name:    "long password",
			input:   auth.RegisterInput{Name: "bobby1", Email: "bob@example.com", Password: strings.Repeat("p", 21)},
			message: `"password" length must be less than or equal to 20 characters long`,
		},
		{
			name:    "password over bcrypt limit",
			input:   auth.RegisterInput{Name: "bobby1", Email: "bob@example.com", Password: strings.Repeat("🦆", 20)},
			message: `"password" length must be less than or equal to 72 bytes long`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			require.ErrorIs(t, err, domain.ErrValidation)

			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestLogin_ReturnsVerifiableToken(t *testing.T) {
	svc := newService(t, memory.New())
	ctx := context.Background()

	id, err := svc.Register(ctx, alice)
	require.NoError(t, err)

	result, err := svc.Login(ctx, auth.LoginInput{Email: alice.Email, Password: alice.Password})
	require.NoError(t, err)
	assert.Equal(t, id, result.AccountID)

	claims, err := svc.VerifyToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.AccountID)
	assert.Equal(t, alice.Name, claims.Name)
	assert.Equal(t, alice.Email, claims.Email)
	assert.WithinDuration(t, claims.IssuedAt.Add(token.TTL), claims.ExpiresAt, time.Second)
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	st := memory.New()
	svc := newService(t, st)
	ctx := context.Background()

	_, err := svc.Register(ctx, alice)
	require.NoError(t, err)

	_, unknown := svc.Login(ctx, auth.LoginInput{Email: "nobody@example.com", Password: "secret1"})
	_, wrong := svc.Login(ctx, auth.LoginInput{Email: alice.Email, Password: "secret2"})

	require.ErrorIs(t, unknown, domain.ErrInvalidCredentials)
	require.ErrorIs(t, wrong, domain.ErrInvalidCredentials)
	assert.Equal(t, unknown.Error(), wrong.Error())
	assert.Zero(t, st.OpenSessions())
}

func TestLogin_ValidatesBeforeLookup(t *testing.T) {
	connector := &failingConnector{err: errors.New("unreachable")}
	svc := newService(t, connector)

	_, err := svc.Login(context.Background(), auth.LoginInput{Email: "alice@example.com", Password: "abc"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, connector.calls)
}

func TestRegister_StoreFailureIsWrapped(t *testing.T) {
	cause := errors.New("connection refused")
	svc := newService(t, &failingConnector{err: cause})

	_, err := svc.Register(context.Background(), alice)
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrEmailExists)
}

func TestVerifyToken(t *testing.T) {
	svc := newService(t, memory.New())
	ctx := context.Background()

	_, err := svc.VerifyToken(ctx, "")
	assert.ErrorIs(t, err, domain.ErrMissingToken)

	_, err = svc.VerifyToken(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrMissingToken)

	_, err = svc.VerifyToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	assert.NotErrorIs(t, err, domain.ErrMissingToken)

	other, err := token.NewJWTManager("another-secret")
	require.NoError(t, err)
	forged, err := other.Generate(domain.Claims{AccountID: "acc-1"})
	require.NoError(t, err)

	_, err = svc.VerifyToken(ctx, forged)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

type failingConnector struct {
	err   error
	calls int
}

func (c *failingConnector) Connect(context.Context) (store.Session, error) {
	c.calls++
	return nil, c.err
}
