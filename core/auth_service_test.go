package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*AuthService, *UserService, *fakeUserRepo, *TokenIssuer) {
	t.Helper()
	repo := newFakeUserRepo()
	hasher := NewBcryptHasher()
	tokens, err := NewTokenIssuer("test-secret")
	require.NoError(t, err)
	return NewAuthService(repo, hasher, tokens), NewUserService(repo, hasher), repo, tokens
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	auth, users, _, tokens := newTestAuthService(t)
	ctx := context.Background()

	created, err := users.Create(ctx, CreateUserInput{Name: "Test User", Email: "test@example.com", Password: "StrongP@ss1"})
	require.NoError(t, err)

	token, err := auth.Login(ctx, LoginInput{Email: "test@example.com", Password: "StrongP@ss1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), claims.Subject)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	auth, _, _, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "StrongP@ss1"})
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindUnauthorized, domainErr.Kind)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	auth, users, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := users.Create(ctx, CreateUserInput{Name: "Test User", Email: "test@example.com", Password: "StrongP@ss1"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, LoginInput{Email: "test@example.com", Password: "WrongP@ss1"})
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindUnauthorized, domainErr.Kind)
}

func TestAuthServiceLoginClaimsCarryNoSecrets(t *testing.T) {
	auth, users, repo, tokens := newTestAuthService(t)
	ctx := context.Background()

	created, err := users.Create(ctx, CreateUserInput{Name: "Test User", Email: "test@example.com", Password: "StrongP@ss1"})
	require.NoError(t, err)

	token, err := auth.Login(ctx, LoginInput{Email: "test@example.com", Password: "StrongP@ss1"})
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)

	// Neither plaintext nor digest appears in the signed token.
	assert.NotContains(t, token, "StrongP@ss1")
	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.NotContains(t, []string{claims.Email, claims.Subject}, stored.PasswordHash)
}

func TestAuthServiceLoginPropagatesStoreFailure(t *testing.T) {
	auth, _, repo, _ := newTestAuthService(t)
	repo.forcedErr = errors.New("connection reset")

	_, err := auth.Login(context.Background(), LoginInput{Email: "test@example.com", Password: "StrongP@ss1"})
	require.Error(t, err)
	var domainErr *DomainError
	assert.False(t, errors.As(err, &domainErr))
}
