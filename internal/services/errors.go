package services

import "errors"

// Sentinel errors translated to HTTP status codes by the handlers.
var (
	ErrNotFound       = errors.New("record not found")
	ErrAlreadyApplied = errors.New("you have already applied for this job")
)
