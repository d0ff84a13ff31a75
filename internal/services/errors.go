package services

import "errors"

// Domain errors surfaced by the announcement and teacher services. Handlers
// match these with errors.Is to pick the response status; anything else is
// treated as a storage failure.
var (
	// ErrUnauthorized means no teacher record exists for the given username.
	ErrUnauthorized = errors.New("invalid teacher credentials")

	// ErrInvalidID means the announcement ID is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("invalid announcement ID format")

	// ErrNotFound means no announcement matches the given ID.
	ErrNotFound = errors.New("announcement not found")

	// ErrInvalidDate means a date string did not parse as ISO 8601.
	ErrInvalidDate = errors.New("invalid date format, use ISO 8601 format")

	// ErrInvalidDateOrder means start_date is not strictly before expiration_date.
	ErrInvalidDateOrder = errors.New("start date must be before expiration date")
)
