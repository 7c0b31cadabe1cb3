package booking

import "errors"

var (
	ErrEmptyBatch  = errors.New("no seats given")
	ErrRateLimited = errors.New("rate limited")
)
