package models

import "errors"

var (
	// ErrMissingField is returned when a persisted record lacks a required key.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidTimestamp is returned for a dateCreated value that is neither
	// RFC 3339 text nor a number.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
