package input

import (
	"errors"
	"fmt"
	"strings"
)

// Script errors.
var (
	ErrInvalidKey       = errors.New("invalid key in script")
	ErrUnmatchedBracket = errors.New("unmatched bracket in script")
)

var keyNotation = map[Kind]string{
	KindBackspace: "BS",
	KindDelete:    "Del",
	KindStepUp:    "Up",
	KindStepDown:  "Down",
	KindCommit:    "CR",
	KindAbort:     "Esc",
	KindZero:      "Zero",
	KindMin:       "Min",
	KindMax:       "Max",
	KindLeft:      "Left",
	KindRight:     "Right",
	KindHome:      "Home",
	KindEnd:       "End",
	KindSelectAll: "SelectAll",
}

var triggerPrefix = map[Trigger]string{
	Spin:  "Spin",
	Wheel: "Wheel",
}

// keyAliases maps lower-case names to kinds.
var keyAliases = map[string]Kind{
	"bs":        KindBackspace,
	"backspace": KindBackspace,
	"del":       KindDelete,
	"delete":    KindDelete,
	"up":        KindStepUp,
	"down":      KindStepDown,
	"cr":        KindCommit,
	"enter":     KindCommit,
	"return":    KindCommit,
	"esc":       KindAbort,
	"escape":    KindAbort,
	"zero":      KindZero,
	"min":       KindMin,
	"max":       KindMax,
	"left":      KindLeft,
	"right":     KindRight,
	"home":      KindHome,
	"end":       KindEnd,
	"selectall": KindSelectAll,
	"c-a":       KindSelectAll,
}

// ParseKey parses the inside of one <...> token.
//
// Step keys may be prefixed with a trigger: "Spin-Up", "Wheel-Down".
func ParseKey(name string) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	lower := strings.ToLower(name)

	if k, ok := keyAliases[lower]; ok {
		return Event{Kind: k}, nil
	}

	prefix, rest, found := strings.Cut(lower, "-")
	if found {
		var trigger Trigger
		switch prefix {
		case "spin":
			trigger = Spin
		case "wheel":
			trigger = Wheel
		default:
			return Event{}, fmt.Errorf("%w: unknown prefix %q", ErrInvalidKey, prefix)
		}
		k, ok := keyAliases[rest]
		if !ok || !k.IsStep() {
			return Event{}, fmt.Errorf("%w: %q is not a step key", ErrInvalidKey, name)
		}
		return Event{Kind: k, Trigger: trigger}, nil
	}

	return Event{}, fmt.Errorf("%w: %q", ErrInvalidKey, name)
}

// ParseScript parses a key script into events. Literal characters are
// classified with sep as the decimal separator.
func ParseScript(script string, sep rune) ([]Event, error) {
	runes := []rune(script)
	events := make([]Event, 0, len(runes))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '<' {
			end := indexRune(runes[i+1:], '>')
			if end < 0 {
				return nil, fmt.Errorf("%w at offset %d", ErrUnmatchedBracket, i)
			}
			ev, err := ParseKey(string(runes[i+1 : i+1+end]))
			if err != nil {
				return nil, fmt.Errorf("offset %d: %w", i, err)
			}
			events = append(events, ev)
			i += end + 1
			continue
		}

		ev, ok := Classify(r, sep)
		if !ok {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidKey, r, i)
		}
		events = append(events, ev)
	}
	return events, nil
}

// FormatScript renders events back to script notation.
func FormatScript(events []Event) string {
	var b strings.Builder
	for _, ev := range events {
		b.WriteString(ev.String())
	}
	return b.String()
}

func indexRune(runes []rune, r rune) int {
	for i, c := range runes {
		if c == r {
			return i
		}
	}
	return -1
}
