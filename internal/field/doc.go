// Package field implements a numeric entry field: a text buffer that
// accepts scientific notation with engineering unit suffixes, backed by a
// bounded, quantized decimal value.
//
// A Field owns one entry.State and the last committed value. Typed keys
// edit the buffer without publishing; Commit, unit selection and steps
// parse the buffer, clamp and quantize the result, and re-render it.
// Observers registered with OnValueChanged and OnEditingChanged are
// called synchronously once an operation has settled.
//
// Basic usage:
//
//	f, err := field.New(
//		field.WithUnits(unit.Frequency),
//		field.WithBounds(decimal.Zero, decimal.MustParse("6e9")),
//	)
//	if err != nil {
//		return err
//	}
//	f.SetValue(decimal.MustNew(999, 0)) // "999 Hz"
//	f.Step(+1, input.Keyboard)          // "1.000 kHz"
//
// A Field is not safe for concurrent use. Each field serves exactly one
// edit session at a time.
package field
