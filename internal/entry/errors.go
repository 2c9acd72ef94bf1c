package entry

import "errors"

// Errors returned by step operations. Callers normally drop the step and
// keep the buffer as it was.
var (
	// ErrNotNumeric indicates the region under the cursor does not parse.
	ErrNotNumeric = errors.New("region is not numeric")

	// ErrExponentRange indicates a step would overflow the exponent field.
	ErrExponentRange = errors.New("exponent out of range")

	// ErrDirection indicates a step direction other than +1 or -1.
	ErrDirection = errors.New("direction must be +1 or -1")
)
