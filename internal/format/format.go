package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/govalues/decimal"

	"github.com/dshills/numentry/internal/numeric"
	"github.com/dshills/numentry/internal/unit"
)

// DefaultDigits is the default number of fractional digits.
const DefaultDigits = 12

// Mode selects how many fractional digits a non-ShowAllDigits formatter
// renders.
type Mode int

const (
	// Trim renders up to Digits fractional digits without trailing zeros.
	Trim Mode = iota

	// Preserve keeps the fractional width of the text being edited so a
	// digit that passes through zero does not disappear.
	Preserve
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Trim:
		return "trim"
	case Preserve:
		return "preserve"
	default:
		return "unknown"
	}
}

// Request carries the per-call inputs of Format.
type Request struct {
	Mode Mode

	// Width is the fractional width of the edited text (Preserve only).
	Width int

	// PrevScale is the scale of the unit the edited text was shown in
	// (Preserve only). Zero means unit-less.
	PrevScale decimal.Decimal

	// Exponent is the exponent of the edited text (Preserve only).
	Exponent int
}

// Result is a rendered value.
type Result struct {
	Text   string
	Unit   unit.Multiplier
	Digits int
}

// Shift returns the number of decades the display moved relative to the
// text the request described.
func (r Request) Shift(u unit.Multiplier) int {
	prev := r.PrevScale
	if prev.Sign() <= 0 {
		prev = decimal.One
	}
	return numeric.Log10Ratio(u.Scale, prev) - r.Exponent
}

// Formatter renders stored values as display text.
type Formatter struct {
	Units         unit.Set
	Resolution    decimal.Decimal
	Digits        int
	ShowAllDigits bool
	PerDiv        bool
	Separator     rune
}

// Format renders value. The unit is the best fit from the unit set.
func (f Formatter) Format(value decimal.Decimal, req Request) (Result, error) {
	u := f.Units.Best(value)

	digits := f.Digits
	fixed := true
	switch {
	case f.ShowAllDigits:
	case req.Mode == Trim:
		fixed = false
	default:
		digits = req.Width + req.Shift(u)
	}
	digits = f.limit(u, digits)

	scaled, err := value.Quo(u.Scale)
	if err != nil {
		return Result{}, fmt.Errorf("format %s in %s: %w", value, u.Suffix, err)
	}

	var num string
	switch {
	case digits <= 0:
		num = numeric.FormatPlain(scaled)
	case fixed:
		num = numeric.FormatFixed(scaled, digits)
	default:
		num = numeric.FormatTrimmed(scaled, digits)
	}

	return Result{Text: f.join(num, u), Unit: u, Digits: digits}, nil
}

// limit caps digits so that no digit finer than the resolution shows.
func (f Formatter) limit(u unit.Multiplier, digits int) int {
	if f.Resolution.Sign() <= 0 {
		return digits
	}
	ratio, err := u.Scale.Quo(f.Resolution)
	if err != nil {
		return digits
	}
	fr, _ := ratio.Float64()
	if fr <= 0 {
		return 0
	}
	desired := math.Log10(fr)
	maxDigits := int(math.Ceil(desired))
	if math.Abs(desired-float64(maxDigits)) > 0.1 {
		// Resolutions such as 0.25 need one more digit.
		maxDigits++
	}
	if maxDigits < 0 {
		return 0
	}
	return min(digits, maxDigits)
}

func (f Formatter) join(num string, u unit.Multiplier) string {
	if f.Separator != 0 && f.Separator != '.' {
		num = strings.ReplaceAll(num, ".", string(f.Separator))
	}
	if u.IsNone() {
		return num
	}
	var b strings.Builder
	b.WriteString(num)
	b.WriteByte(' ')
	b.WriteString(u.Suffix)
	if f.PerDiv {
		b.WriteString(unit.PerDiv)
	}
	return b.String()
}

// Compact renders value for a read-only summary: trailing zeros trimmed,
// and scientific notation for magnitudes below 0.001 or from 1e6 up. The
// unbounded sentinels render as "".
func (f Formatter) Compact(value decimal.Decimal) string {
	if IsLimit(value) {
		return ""
	}
	u := f.Units.Best(value)
	scaled, err := value.Quo(u.Scale)
	if err != nil {
		return ""
	}

	var num string
	abs := value.Abs()
	switch {
	case f.Digits <= 0:
		num = numeric.FormatPlain(scaled)
	case (abs.Sign() > 0 && abs.Cmp(compactSmall) < 0) || abs.Cmp(compactLarge) >= 0:
		fv, _ := scaled.Float64()
		num = fmt.Sprintf("%.2e", fv)
	default:
		num = numeric.FormatTrimmed(scaled, f.Digits)
	}
	return f.join(num, u)
}

var (
	compactSmall = decimal.MustNew(1, 3)
	compactLarge = decimal.MustNew(1000000, 0)
)
