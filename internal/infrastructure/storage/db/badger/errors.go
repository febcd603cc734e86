package dbbadger

import "errors"

var (
	// ErrEmptySeed ...
	ErrEmptySeed = errors.New("seed must not be empty")
	// ErrMissingBirthday ...
	ErrMissingBirthday = errors.New("account birthday must not be null")
)
