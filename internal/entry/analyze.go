package entry

import (
	"strings"
	"unicode"

	"github.com/dshills/numentry/internal/unit"
)

// Analysis tags the regions of an entry text. Absent regions have index -1.
type Analysis struct {
	// Length is the number of runes analyzed.
	Length int

	// Sign is true when the text starts with '+' or '-'.
	Sign bool

	// Decimal is the index of the last decimal separator.
	Decimal int

	// Exponent is the index of the exponent marker.
	Exponent int

	// ExponentSign is true when a sign follows the exponent marker.
	ExponentSign bool

	// Terminator is the index where the unit suffix starts, including the
	// blank that separates it from the number.
	Terminator int

	// Implied is the position of the ones digit boundary: the decimal
	// separator, else the exponent marker, else the terminator, else the
	// end of the text.
	Implied int
}

// HasDecimal reports whether the text has a decimal separator.
func (a Analysis) HasDecimal() bool { return a.Decimal >= 0 }

// HasExponent reports whether the text has an exponent marker.
func (a Analysis) HasExponent() bool { return a.Exponent >= 0 }

// HasTerminator reports whether the text has a unit suffix.
func (a Analysis) HasTerminator() bool { return a.Terminator >= 0 }

// NumberEnd returns the index one past the last numeric character.
func (a Analysis) NumberEnd() int {
	if a.Terminator >= 0 {
		return a.Terminator
	}
	return a.Length
}

// MantissaEnd returns the index one past the last mantissa character.
func (a Analysis) MantissaEnd() int {
	if a.Exponent >= 0 {
		return a.Exponent
	}
	return a.NumberEnd()
}

// Analyze scans text for its sign, decimal separator, exponent and unit
// terminator. Non-base units are searched before the base unit so that
// "kHz" wins over "Hz".
func Analyze(text []rune, sep rune, units unit.Set) Analysis {
	a := Analysis{
		Length:     len(text),
		Decimal:    -1,
		Exponent:   -1,
		Terminator: -1,
	}
	if len(text) == 0 {
		return a
	}

	a.Terminator = findTerminator(text, units)
	if a.Terminator > 0 && text[a.Terminator-1] == ' ' {
		a.Terminator--
	}
	end := a.NumberEnd()

	a.Sign = isSign(text[0])
	for i := end - 1; i >= 0; i-- {
		if text[i] == sep {
			a.Decimal = i
			break
		}
	}
	for i := end - 1; i >= 0; i-- {
		if text[i] == 'E' || text[i] == 'e' {
			a.Exponent = i
			break
		}
	}
	if a.Exponent > 0 && a.Exponent+1 < len(text) &&
		unicode.IsLetter(text[a.Exponent-1]) && unicode.IsLetter(text[a.Exponent+1]) {
		// Part of a word, not a marker.
		a.Exponent = -1
	}
	if a.Exponent >= 0 {
		for i := a.Exponent + 1; i < end; i++ {
			if isSign(text[i]) {
				a.ExponentSign = true
				break
			}
		}
	}

	switch {
	case a.Decimal >= 0:
		a.Implied = a.Decimal
	case a.Exponent >= 0:
		a.Implied = a.Exponent
	case a.Terminator >= 0:
		a.Implied = a.Terminator
	default:
		a.Implied = len(text)
	}
	return a
}

func findTerminator(text []rune, units unit.Set) int {
	var base *unit.Multiplier
	for i := range units {
		if units[i].IsBase() {
			if base == nil {
				base = &units[i]
			}
			continue
		}
		if idx := indexFold(text, units[i].Suffix); idx >= 0 {
			return idx
		}
	}
	if base != nil {
		return indexFold(text, base.Suffix)
	}
	return -1
}

// indexFold returns the first index of sub in text, ignoring case.
func indexFold(text []rune, sub string) int {
	if sub == "" {
		return -1
	}
	n := len([]rune(sub))
	for i := 0; i+n <= len(text); i++ {
		if strings.EqualFold(string(text[i:i+n]), sub) {
			return i
		}
	}
	return -1
}

func isSign(r rune) bool {
	return r == '+' || r == '-'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
