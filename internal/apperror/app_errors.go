package apperror

import "errors"

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrResultNotFound = errors.New("round result not found")
	ErrInvalidLayout  = errors.New("invalid board layout")
)
