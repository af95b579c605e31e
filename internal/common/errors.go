// Package common contains shared constants and sentinel errors used across
// docshelf components. Callers should match these values with errors.Is.
package common

import "errors"

var (
	// Client-side validation errors. These block a request entirely;
	// no network call is made when one is returned.
	ErrValidation = errors.New("validation error")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Cached-session lifecycle.
	ErrSessionExpired = errors.New("cached session expired")
)
