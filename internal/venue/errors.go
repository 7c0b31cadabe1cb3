package venue

import "errors"

var (
	ErrSeatDoesNotExist = errors.New("seat does not exist")
	ErrSeatOverbooked   = errors.New("seat already reserved")
)
