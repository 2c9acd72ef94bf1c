// Package format converts between stored decimal values and the display
// text of a numeric field.
//
// A Formatter renders a value in the unit chosen from its unit set, with
// a digit count taken from one of three policies: all digits (zero
// filled), trimmed trailing zeros, or the width of the text being edited.
// Every policy is further limited by the resolution.
//
// A Parser reads display text back: it strips and matches the unit
// suffix, scales the number, falls back to the last good value on
// failure, snaps to the resolution and clamps to the bounds.
package format
