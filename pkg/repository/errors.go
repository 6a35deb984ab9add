package repository

import "github.com/m-mizutani/goerr/v2"

var (
	ErrNotFound      = goerr.New("not found")
	ErrAlreadyExists = goerr.New("already exists")
	ErrInvalidInput  = goerr.New("invalid input")

	// ErrLimitExceeded is returned by ConsumeWindow when the admission would
	// push the rolling-window consumption past the ceiling. Nothing is
	// consumed in that case.
	ErrLimitExceeded = goerr.New("window limit exceeded")
)
