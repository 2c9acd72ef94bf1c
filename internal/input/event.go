package input

import (
	"fmt"
	"unicode"
)

// Kind identifies an input event.
type Kind int

const (
	// KindNone is the zero value and is never produced by Classify.
	KindNone Kind = iota

	// Character events. Rune carries the typed character.
	KindDigit
	KindDecimal
	KindExponent
	KindSign
	KindUnitLetter

	// Editing keys.
	KindBackspace
	KindDelete

	// Value keys.
	KindStepUp
	KindStepDown
	KindCommit
	KindAbort
	KindZero
	KindMin
	KindMax

	// Cursor keys.
	KindLeft
	KindRight
	KindHome
	KindEnd
	KindSelectAll
)

var kindNames = map[Kind]string{
	KindNone:       "none",
	KindDigit:      "digit",
	KindDecimal:    "decimal",
	KindExponent:   "exponent",
	KindSign:       "sign",
	KindUnitLetter: "unit",
	KindBackspace:  "backspace",
	KindDelete:     "delete",
	KindStepUp:     "up",
	KindStepDown:   "down",
	KindCommit:     "commit",
	KindAbort:      "abort",
	KindZero:       "zero",
	KindMin:        "min",
	KindMax:        "max",
	KindLeft:       "left",
	KindRight:      "right",
	KindHome:       "home",
	KindEnd:        "end",
	KindSelectAll:  "selectall",
}

// String returns the kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsChar reports whether the kind carries a typed character.
func (k Kind) IsChar() bool {
	return k >= KindDigit && k <= KindUnitLetter
}

// IsStep reports whether the kind is a step request.
func (k Kind) IsStep() bool {
	return k == KindStepUp || k == KindStepDown
}

// Trigger identifies what produced a step event.
type Trigger int

const (
	// Keyboard steps use the cursor-sensitive increment.
	Keyboard Trigger = iota
	// Spin steps come from spin buttons.
	Spin
	// Wheel steps come from the mouse wheel.
	Wheel
)

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case Keyboard:
		return "keyboard"
	case Spin:
		return "spin"
	case Wheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// Event is a single input to a field.
type Event struct {
	Kind    Kind
	Rune    rune
	Trigger Trigger
}

// Key returns a named-key event.
func Key(k Kind) Event {
	return Event{Kind: k}
}

// StepEvent returns a step event in direction dir (+1 or -1).
func StepEvent(dir int, trigger Trigger) Event {
	k := KindStepUp
	if dir < 0 {
		k = KindStepDown
	}
	return Event{Kind: k, Trigger: trigger}
}

// Direction returns +1 for StepUp, -1 for StepDown and 0 otherwise.
func (e Event) Direction() int {
	switch e.Kind {
	case KindStepUp:
		return 1
	case KindStepDown:
		return -1
	default:
		return 0
	}
}

// String returns the script notation for the event.
func (e Event) String() string {
	if e.Kind.IsChar() {
		return string(e.Rune)
	}
	name, ok := keyNotation[e.Kind]
	if !ok {
		return "<" + e.Kind.String() + ">"
	}
	if e.Kind.IsStep() && e.Trigger != Keyboard {
		return "<" + triggerPrefix[e.Trigger] + "-" + name + ">"
	}
	return "<" + name + ">"
}

// Classify maps a typed character to an event. The separator is the
// only accepted decimal mark. Control characters for backspace, delete,
// return and escape map to their named keys.
func Classify(r, sep rune) (Event, bool) {
	switch {
	case r >= '0' && r <= '9':
		return Event{Kind: KindDigit, Rune: r}, true
	case r == sep:
		return Event{Kind: KindDecimal, Rune: r}, true
	case r == 'e' || r == 'E':
		return Event{Kind: KindExponent, Rune: r}, true
	case r == '+' || r == '-':
		return Event{Kind: KindSign, Rune: r}, true
	case r == '\b':
		return Event{Kind: KindBackspace}, true
	case r == 0x7f:
		return Event{Kind: KindDelete}, true
	case r == '\r' || r == '\n':
		return Event{Kind: KindCommit}, true
	case r == 0x1b:
		return Event{Kind: KindAbort}, true
	case unicode.IsLetter(r):
		return Event{Kind: KindUnitLetter, Rune: r}, true
	}
	return Event{}, false
}
