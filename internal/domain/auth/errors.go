package auth

import "errors"

var (
	ErrInvalidEmployeeCode = errors.New("unknown employee code")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrNoSession           = errors.New("no session in request context")
)
