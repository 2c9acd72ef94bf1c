// Package entry implements the editable text buffer behind a numeric
// field.
//
// A State holds the characters of the entry, the cursor and an optional
// selection. Every mutation goes through one of its operations:
//
//   - ProcessKey applies a single typed character (digit, separator,
//     exponent marker, sign, backspace, delete or unit letter).
//   - Step increments or decrements the digit left of the cursor.
//   - Renormalize moves the cursor after a reformat so the next step has
//     the same numeric weight.
//
// After each operation the buffer is canonical:
//
//   - an exponent sign only exists together with an exponent marker
//   - an exponent marker followed by digits always carries a sign
//   - an exponent marker is always preceded by a mantissa ("1.0" by default)
//   - a decimal separator is always preceded by a digit
//
// Analyze exposes the region boundaries (sign, separator, exponent,
// unit terminator) that the operations are built on. Indices in an
// Analysis are only valid for the text they were computed from.
//
// A State is not safe for concurrent use.
package entry
