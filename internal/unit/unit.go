// Package unit defines engineering unit multipliers and the sets a field
// chooses its display unit from.
package unit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/govalues/decimal"
)

// Multiplier pairs a display suffix with its scale relative to the base
// unit of its quantity.
type Multiplier struct {
	Suffix string
	Scale  decimal.Decimal
}

// None is the unit-less multiplier. It renders no suffix.
var None = Multiplier{Scale: decimal.One}

// New returns a multiplier for suffix with scale 10^exp.
func New(suffix string, exp int) Multiplier {
	var scale decimal.Decimal
	if exp < 0 {
		scale = decimal.MustNew(1, -exp)
	} else {
		coef := int64(1)
		for i := 0; i < exp; i++ {
			coef *= 10
		}
		scale = decimal.MustNew(coef, 0)
	}
	return Multiplier{Suffix: suffix, Scale: scale}
}

// IsNone reports whether m carries no suffix.
func (m Multiplier) IsNone() bool {
	return m.Suffix == ""
}

// IsBase reports whether m has scale 1.
func (m Multiplier) IsBase() bool {
	return m.Scale.Cmp(decimal.One) == 0
}

// Equal reports whether m and o have the same suffix and scale.
func (m Multiplier) Equal(o Multiplier) bool {
	return m.Suffix == o.Suffix && m.Scale.Cmp(o.Scale) == 0
}

// Matches reports whether text names this unit, ignoring case.
func (m Multiplier) Matches(text string) bool {
	return m.Suffix != "" && strings.EqualFold(m.Suffix, text)
}

// StartsWith reports whether the suffix begins with r, ignoring case.
func (m Multiplier) StartsWith(r rune) bool {
	first, _ := utf8.DecodeRuneInString(m.Suffix)
	if first == utf8.RuneError {
		return false
	}
	return unicode.ToLower(first) == unicode.ToLower(r)
}

// String returns the suffix.
func (m Multiplier) String() string {
	return m.Suffix
}

// Predefined multipliers.
var (
	Hertz     = New("Hz", 0)
	Kilohertz = New("kHz", 3)
	Megahertz = New("MHz", 6)
	Gigahertz = New("GHz", 9)

	Second      = New("s", 0)
	Millisecond = New("ms", -3)
	Microsecond = New("us", -6)
	Nanosecond  = New("ns", -9)
	Picosecond  = New("ps", -12)

	Kilovolt  = New("kV", 3)
	Volt      = New("V", 0)
	Millivolt = New("mV", -3)
	Microvolt = New("uV", -6)
	Nanovolt  = New("nV", -9)
	Picovolt  = New("pV", -12)

	Decibel            = New("dB", 0)
	DecibelMilliwatt   = New("dBm", 0)
	DecibelIsotropic   = New("dBi", 0)
	DecibelSquareMeter = New("dBsm", 0)

	Meter            = New("meter", 0)
	Kilometer        = New("kilometer", 3)
	KilometerPerHour = New("Km/h", 0)
	Percent          = New("%", 0)

	Kilowatt  = New("kWatt", 3)
	Watt      = New("Watt", 0)
	Milliwatt = New("mWatt", -3)
	Microwatt = New("uWatt", -6)
	Nanowatt  = New("nWatt", -9)
	Picowatt  = New("pWatt", -12)
)

// Predefined sets, ordered from the largest unit down.
var (
	Frequency = Set{Gigahertz, Megahertz, Kilohertz, Hertz}
	Time      = Set{Second, Millisecond, Microsecond, Nanosecond, Picosecond}
	Voltage   = Set{Kilovolt, Volt, Millivolt, Microvolt, Nanovolt, Picovolt}
	Power     = Set{Kilowatt, Watt, Milliwatt, Microwatt, Nanowatt, Picowatt}
	Distance  = Set{Kilometer, Meter}
)

// Standard returns the named predefined set.
func Standard(name string) (Set, bool) {
	switch strings.ToLower(name) {
	case "frequency":
		return Frequency, true
	case "time":
		return Time, true
	case "voltage":
		return Voltage, true
	case "power":
		return Power, true
	case "distance":
		return Distance, true
	case "db":
		return Set{Decibel}, true
	case "dbm":
		return Set{DecibelMilliwatt}, true
	case "dbi":
		return Set{DecibelIsotropic}, true
	case "dbsm":
		return Set{DecibelSquareMeter}, true
	case "speed":
		return Set{KilometerPerHour}, true
	case "percent":
		return Set{Percent}, true
	case "none", "":
		return nil, true
	}
	return nil, false
}
