package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and verifies the HS256 bearer tokens that tie an HTTP
// session to a holder. The core only ever sees the username carried in the
// subject claim.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Issue(username string) (string, error) {
	const op = "auth.TokenManager.Issue"

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}
	return signed, nil
}

// Parse validates a bearer token and returns the holder's username.
func (m *TokenManager) Parse(raw string) (string, error) {
	const op = "auth.TokenManager.Parse"

	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%s:%w", op, ErrInvalidToken)
	}
	return claims.Subject, nil
}
