package account

import "errors"

var (
	ErrUserExists           = errors.New("user already exists")
	ErrAuthenticationFailed = errors.New("incorrect username or password")
	ErrInvalidUsername      = errors.New("invalid username")
)
