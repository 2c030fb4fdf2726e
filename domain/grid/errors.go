package grid

import "errors"

// Domain errors for grid construction and mutation.
var (
	// ErrInvalidDimensions indicates a non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")

	// ErrInvalidCoordinate indicates a coordinate outside the grid bounds.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrCellOccupied indicates a placement conflict with an existing occupant.
	ErrCellOccupied = errors.New("cell already occupied")
)
