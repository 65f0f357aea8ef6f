package core

import (
	"context"
	"errors"
)

// LoginInput is the transient credential received once per request; the
// plaintext is discarded after verification.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService verifies login credentials and issues access tokens.
type AuthService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens *TokenIssuer
}

func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens *TokenIssuer) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens}
}

// Login looks up the user by email and verifies the password against the
// stored digest before issuing a token. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return "", NewUnauthorizedError("Invalid credentials")
		}
		return "", err
	}
	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return "", NewUnauthorizedError("Invalid credentials")
	}
	return s.tokens.Issue(user)
}
