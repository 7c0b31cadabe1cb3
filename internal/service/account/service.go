package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"boxoffice/internal/auth"
	"boxoffice/internal/domain"
	"boxoffice/internal/repository"
)

type Config struct {
	BcryptCost int
}

// Service is the credential boundary: it signs holders up and in, and hands
// out session tokens. Raw passwords never travel past this package.
type Service struct {
	users  repository.UserStore
	tokens *auth.TokenManager
	cfg    Config
}

func New(users repository.UserStore, tokens *auth.TokenManager, cfg Config) *Service {
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = 10
	}
	return &Service{users: users, tokens: tokens, cfg: cfg}
}

// SignUp registers a new holder and returns a session token.
func (s *Service) SignUp(ctx context.Context, username, password string) (string, error) {
	const op = "service.account.SignUp"

	if username == "" || strings.ContainsAny(username, " \t\n") {
		return "", fmt.Errorf("%s:%w", op, ErrInvalidUsername)
	}
	if password == "" {
		return "", fmt.Errorf("%s:%w", op, ErrAuthenticationFailed)
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	err = s.users.Create(ctx, domain.User{Username: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return "", fmt.Errorf("%s:%w", op, ErrUserExists)
		}
		return "", fmt.Errorf("%s:%w", op, err)
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}
	return token, nil
}

// SignIn verifies a holder's credentials and returns a session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, username, password string) (string, error) {
	const op = "service.account.SignIn"

	user, err := s.users.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%s:%w", op, ErrAuthenticationFailed)
		}
		return "", fmt.Errorf("%s:%w", op, err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return "", fmt.Errorf("%s:%w", op, ErrAuthenticationFailed)
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}
	return token, nil
}
