package schedule

import "errors"

var (
	ErrOutOfRange      = errors.New("selection out of range")
	ErrUnknownShowtime = errors.New("unknown show time")
)
