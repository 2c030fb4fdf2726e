package config

import "errors"

// Domain errors for scenario configuration.
var (
	// ErrConfigNotFound is returned when a scenario file does not exist.
	ErrConfigNotFound = errors.New("scenario file not found")

	// ErrInvalidFormat is returned for unparseable scenario files.
	ErrInvalidFormat = errors.New("invalid scenario format")

	// ErrUnsupportedFormat is returned for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported scenario format")

	// ErrValidation is returned when a scenario fails validation.
	ErrValidation = errors.New("scenario validation failed")
)
