package entry

import (
	"fmt"
	"strconv"

	"github.com/govalues/decimal"

	"github.com/dshills/numentry/internal/numeric"
	"github.com/dshills/numentry/internal/unit"
)

// maxExponent is the largest magnitude the exponent field can hold.
const maxExponent = 99

// StepParams configures a digit step.
type StepParams struct {
	// Direction is +1 for up and -1 for down.
	Direction int

	// Resolution is the smallest step in stored units. Zero disables it.
	Resolution decimal.Decimal

	// PositiveMin is set when the lower bound is above zero. Steps that
	// would reach zero or below shrink by factors of ten instead.
	PositiveMin bool

	// NegativeMax mirrors PositiveMin for an upper bound below zero.
	NegativeMax bool

	// PreferUnitStep steps the ones digit, rather than the last digit, when
	// the cursor sits in the terminator.
	PreferUnitStep bool
}

// Offset returns the signed distance from the cursor to the implied
// decimal position. Positive values mean the cursor is left of it.
func (s *State) Offset() int {
	return s.Analysis().Implied - s.cursor
}

// Step increments or decrements the digit left of the cursor, in the
// mantissa or the exponent depending on where the cursor sits. It
// returns the cursor offset to pass to Renormalize once the value has
// been reformatted. On error the buffer is unchanged.
func (s *State) Step(p StepParams) (int, error) {
	if p.Direction != 1 && p.Direction != -1 {
		return 0, ErrDirection
	}

	a := s.Analysis()
	st := stepper{
		text:   append([]rune(nil), s.text...),
		cursor: s.cursor,
		offset: a.Implied - s.cursor,
		sep:    s.cfg.Separator,
		dir:    p.Direction,
	}

	end := a.NumberEnd()
	if st.cursor > end {
		st.offset += st.cursor
		if p.PreferUnitStep {
			st.cursor = st.offset
			st.offset = 0
		} else {
			st.cursor = end
			st.offset -= st.cursor
		}
	}

	var err error
	if a.HasExponent() && st.cursor > a.Exponent {
		err = st.exponent(a.Exponent+1, end-a.Exponent-1, a.ExponentSign)
	} else {
		var smallest decimal.Decimal
		smallest, err = s.effectiveResolution(a, p.Resolution)
		if err == nil {
			st.posMin, st.negMax = p.PositiveMin, p.NegativeMax
			err = st.mantissa(a.MantissaEnd(), a.Sign, a.Decimal, smallest)
		}
	}
	if err != nil {
		return 0, err
	}

	s.text = st.text
	s.cursor = clamp(st.cursor, 0, len(s.text))
	s.selPos, s.selLen = 0, 0
	s.Canonicalize()
	return st.offset, nil
}

// EffectiveResolution returns res expressed in the digits of the current
// mantissa, accounting for its exponent and unit.
func (s *State) EffectiveResolution(res decimal.Decimal) (decimal.Decimal, error) {
	return s.effectiveResolution(s.Analysis(), res)
}

func (s *State) effectiveResolution(a Analysis, res decimal.Decimal) (decimal.Decimal, error) {
	scale := unit.None.Scale
	if a.HasTerminator() {
		if m, ok := s.cfg.Units.Lookup(string(s.text[a.Terminator:]), s.cfg.PerDiv); ok {
			scale = m.Scale
		}
	}
	return unit.EffectiveResolution(res, exponentValue(s.text, a), scale)
}

// stepper carries the working copy of a step so that failures leave the
// State untouched.
type stepper struct {
	text   []rune
	cursor int
	offset int
	sep    rune
	dir    int
	posMin bool
	negMax bool
}

func (st *stepper) mantissa(n int, hasSign bool, dec int, smallest decimal.Decimal) error {
	value, err := numeric.Parse(string(st.text[:n]), st.sep)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotNumeric, err)
	}
	if hasSign && st.cursor == 0 {
		st.cursor = 1
	}

	var inc decimal.Decimal
	switch {
	case dec < 0:
		inc, err = numeric.Pow10(n - st.cursor)
	case st.cursor > dec:
		inc, err = numeric.Pow10(dec - st.cursor + 1)
	case st.cursor == dec:
		inc = decimal.One
	default:
		inc, err = numeric.Pow10(dec - st.cursor)
	}
	if err != nil {
		return err
	}
	if inc.Cmp(smallest) < 0 {
		inc = smallest
	}

	if st.posMin || st.negMax {
		inc, dec, err = st.shrink(value, inc, dec)
		if err != nil {
			return err
		}
	}

	next, err := st.apply(value, inc)
	if err != nil {
		return err
	}

	var out string
	if dec >= 0 && n > dec {
		out = numeric.FormatFixed(next, n-dec-1)
	} else {
		out = next.String()
	}
	if st.sep != '.' {
		out = replaceSeparator(out, st.sep)
	}
	st.replace(0, n, out)
	return nil
}

// shrink reduces a step that would carry the value across zero. The
// cursor and offset follow the digits the smaller step lengthens or
// shortens the text by.
func (st *stepper) shrink(value, inc decimal.Decimal, dec int) (decimal.Decimal, int, error) {
	crosses := func(inc decimal.Decimal) (bool, error) {
		next, err := st.apply(value, inc)
		if err != nil {
			return false, err
		}
		switch {
		case st.posMin && value.Sign() > 0:
			return next.Sign() <= 0, nil
		case st.negMax && value.Sign() < 0:
			return next.Sign() >= 0, nil
		}
		return false, nil
	}

	cross, err := crosses(inc)
	if err != nil || !cross {
		return inc, dec, err
	}

	if inc, err = numeric.Scale(inc, -1); err != nil {
		return inc, dec, err
	}
	inc = inc.Trim(0)
	if cross, err = crosses(inc); err != nil {
		return inc, dec, err
	}
	if cross {
		if inc, err = numeric.Scale(inc, -1); err != nil {
			return inc, dec, err
		}
		inc = inc.Trim(0)
		st.cursor++
		st.offset--
	}

	if inc.Cmp(decimal.One) < 0 {
		if dec >= 0 {
			st.cursor++
		} else {
			dec = st.cursor
			st.cursor++
			st.offset -= 2
		}
	} else {
		st.offset--
	}
	return inc, dec, nil
}

func (st *stepper) exponent(start, n int, hasSign bool) error {
	value, err := strconv.Atoi(string(st.text[start : start+n]))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotNumeric, err)
	}
	if hasSign && st.cursor == start {
		st.cursor = start + 1
	}

	inc := 1
	for i := start + n - st.cursor; i > 0; i-- {
		inc *= 10
		if inc > maxExponent {
			return ErrExponentRange
		}
	}

	value += st.dir * inc
	if value > maxExponent || value < -maxExponent {
		return ErrExponentRange
	}
	st.replace(start, n, numeric.FormatExponent(value))
	return nil
}

func (st *stepper) apply(value, inc decimal.Decimal) (decimal.Decimal, error) {
	if st.dir < 0 {
		return value.Sub(inc)
	}
	return value.Add(inc)
}

// replace swaps text[start:start+n] for out and keeps the cursor on the
// same digit when the width changes.
func (st *stepper) replace(start, n int, out string) {
	r := []rune(out)
	switch {
	case len(r) > n:
		st.cursor++
	case len(r) < n:
		st.cursor--
	}
	buf := make([]rune, 0, len(st.text)-n+len(r))
	buf = append(buf, st.text[:start]...)
	buf = append(buf, r...)
	st.text = append(buf, st.text[start+n:]...)
}

func replaceSeparator(s string, sep rune) string {
	r := []rune(s)
	for i := range r {
		if r[i] == '.' {
			r[i] = sep
		}
	}
	return string(r)
}
