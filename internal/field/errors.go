package field

import "errors"

// Errors returned when configuring a field.
var (
	// ErrUnits indicates the unit set is invalid.
	ErrUnits = errors.New("invalid unit set")

	// ErrResolution indicates a negative resolution.
	ErrResolution = errors.New("resolution must not be negative")

	// ErrIncrement indicates a negative fixed or preferred increment.
	ErrIncrement = errors.New("increment must not be negative")

	// ErrSeparator indicates a separator that collides with the grammar.
	ErrSeparator = errors.New("invalid decimal separator")
)
