// Package input describes the events a numeric entry field reacts to.
//
// Typed characters are classified against the active decimal separator
// into Digit, Decimal, Exponent, Sign and UnitLetter events. Everything
// else (stepping, commit, abort, presets, cursor motion) arrives as a
// named key. Step events carry a Trigger so the field can apply a fixed
// spin or wheel increment instead of the cursor-sensitive one.
//
// Scripts use angle-bracket notation for named keys:
//
//	12.5<Up><Spin-Down><BS><CR>
//
// Literal characters outside brackets are classified with Classify.
package input
