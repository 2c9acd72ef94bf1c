package unit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/govalues/decimal"

	"github.com/dshills/numentry/internal/numeric"
)

// Errors returned by Set validation.
var (
	// ErrEmptySuffix indicates a multiplier without a display suffix.
	ErrEmptySuffix = errors.New("unit suffix is empty")

	// ErrScale indicates a multiplier whose scale is not positive.
	ErrScale = errors.New("unit scale must be positive")

	// ErrMultipleBase indicates more than one multiplier with scale 1.
	ErrMultipleBase = errors.New("more than one base unit")

	// ErrDuplicate indicates two multipliers share a suffix.
	ErrDuplicate = errors.New("duplicate unit suffix")
)

// PerDiv is appended to the suffix of per-division quantities.
const PerDiv = "/div"

// Set is an ordered collection of multipliers. Order decides ties.
type Set []Multiplier

// Validate checks the set invariants.
func (s Set) Validate() error {
	seen := make(map[string]bool, len(s))
	bases := 0
	for _, m := range s {
		if m.Suffix == "" {
			return ErrEmptySuffix
		}
		if m.Scale.Sign() <= 0 {
			return fmt.Errorf("%w: %s", ErrScale, m.Suffix)
		}
		key := strings.ToLower(m.Suffix)
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicate, m.Suffix)
		}
		seen[key] = true
		if m.IsBase() {
			bases++
		}
	}
	if bases > 1 {
		return ErrMultipleBase
	}
	return nil
}

// Base returns the multiplier with scale 1.
func (s Set) Base() (Multiplier, bool) {
	for _, m := range s {
		if m.IsBase() {
			return m, true
		}
	}
	return Multiplier{}, false
}

// Lookup finds the multiplier named by text, ignoring case. When perDiv
// is set a trailing "/div" is stripped first. Surrounding blanks are
// ignored.
func (s Set) Lookup(text string, perDiv bool) (Multiplier, bool) {
	text = strings.TrimSpace(text)
	if perDiv && len(text) >= len(PerDiv) && strings.EqualFold(text[len(text)-len(PerDiv):], PerDiv) {
		text = text[:len(text)-len(PerDiv)]
	}
	for _, m := range s {
		if m.Matches(text) {
			return m, true
		}
	}
	return Multiplier{}, false
}

// ByLetter returns the first multiplier whose suffix starts with r.
func (s Set) ByLetter(r rune) (Multiplier, bool) {
	for _, m := range s {
		if m.StartsWith(r) {
			return m, true
		}
	}
	return Multiplier{}, false
}

// Best chooses the display unit for value: the largest scale not
// exceeding |value|, or the smallest scale when |value| is below all of
// them. Zero maps to the base unit when there is one.
func (s Set) Best(value decimal.Decimal) Multiplier {
	switch len(s) {
	case 0:
		return None
	case 1:
		return s[0]
	}

	if value.IsZero() {
		if base, ok := s.Base(); ok {
			return base
		}
	}

	abs := value.Abs()
	var below, smallest *Multiplier
	for i := range s {
		m := &s[i]
		if m.Scale.Cmp(abs) <= 0 && (below == nil || m.Scale.Cmp(below.Scale) > 0) {
			below = m
		}
		if smallest == nil || m.Scale.Cmp(smallest.Scale) < 0 {
			smallest = m
		}
	}
	if below != nil {
		return *below
	}
	if smallest != nil {
		return *smallest
	}
	if base, ok := s.Base(); ok {
		return base
	}
	return None
}

// EffectiveResolution scales res to the digits of a mantissa shown with
// the given exponent and unit scale: res / 10^exp / scale.
func EffectiveResolution(res decimal.Decimal, exp int, scale decimal.Decimal) (decimal.Decimal, error) {
	if res.IsZero() {
		return res, nil
	}
	r, err := numeric.Scale(res, -exp)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if scale.Sign() <= 0 {
		return r, nil
	}
	return r.Quo(scale)
}
