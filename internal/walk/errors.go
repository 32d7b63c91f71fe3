package walk

import "errors"

var (
	// ErrInvalidTransition is returned when a lifecycle operation is not
	// legal from the walk's current status.
	ErrInvalidTransition = errors.New("invalid walk transition")
	// ErrWalkCompleted is returned for any mutation of a completed walk.
	ErrWalkCompleted = errors.New("walk already completed")
	// ErrOutOfRange is returned for coordinates outside WGS84 bounds.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrConflict is returned when a concurrent writer won the race.
	ErrConflict = errors.New("concurrent walk update conflict")
	// ErrNotFound is returned for unknown walk IDs.
	ErrNotFound = errors.New("walk not found")
)
