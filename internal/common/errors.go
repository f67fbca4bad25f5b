// Package common holds sentinel errors shared across the Bridge packages.
// Callers match them with errors.Is.
package common

import "errors"

var (
	// ErrorNotFound is returned when a record looked up by id does not exist.
	ErrorNotFound = errors.New("not found")
	// ErrorValidation wraps input rejected by the capture workflow or config.
	ErrorValidation = errors.New("validation error")
)
