package service

import "errors"

// Sentinel errors returned by the portal services. Controllers map these to
// API responses with errors.Is; everything else is an I/O or store failure
// surfaced to the caller as-is.
var (
	ErrValidation          = errors.New("missing or invalid required field")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionExpired      = errors.New("session expired")
	ErrEmptyQuery          = errors.New("help query is empty")
	ErrIssueNotFound       = errors.New("issue not found")
	ErrAlreadyAssigned     = errors.New("issue already assigned")
	ErrForbiddenTransition = errors.New("transition not allowed for this actor")
)
