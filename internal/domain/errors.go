package domain

import "errors"

var (
	// ErrCategoryNotFound indicates the catalog has no category by that name.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrNoActiveQuestion is returned when an answer arrives before a quiz
	// started or after its last question was answered.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrClientNotFound is returned when a client acts before connecting.
	ErrClientNotFound = errors.New("client state not found")
	// ErrInvalidTransition is returned for screen/trigger pairs outside the
	// navigation table.
	ErrInvalidTransition = errors.New("screen transition not allowed")
	// ErrDisplayNameRequired rejects login and registration without a name.
	ErrDisplayNameRequired = errors.New("display name required")
)
