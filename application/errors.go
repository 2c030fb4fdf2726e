package application

import "errors"

// Application-level errors.
var (
	// ErrInvalidConfiguration is returned when a session config is unusable.
	ErrInvalidConfiguration = errors.New("invalid session configuration")

	// ErrSessionFinished is returned when ticking a terminal session.
	ErrSessionFinished = errors.New("session already finished")
)
