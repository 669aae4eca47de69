package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrConnect  = errors.New("store connect failed")
	ErrNilMatch = errors.New("nil match")
)
