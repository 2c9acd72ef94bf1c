package format

import (
	"github.com/govalues/decimal"

	"github.com/dshills/numentry/internal/entry"
	"github.com/dshills/numentry/internal/numeric"
	"github.com/dshills/numentry/internal/unit"
)

// Outcome is the result of parsing display text.
type Outcome struct {
	// Value is the quantized, clamped stored value.
	Value decimal.Decimal

	// Unit is the unit named by the text, or unit.None.
	Unit unit.Multiplier

	// Fallback is set when the text did not parse and Value derives from
	// the last good value.
	Fallback bool

	// Unchanged is set when Value equals the last good value. The caller
	// must reformat anyway since no change will be published.
	Unchanged bool
}

// Parser reads display text back into stored values. The zero Bounds
// leaves values unclamped.
type Parser struct {
	Units      unit.Set
	Resolution decimal.Decimal
	Bounds     Bounds
	PerDiv     bool
	Separator  rune
}

// Parse converts text to a stored value. Text that does not parse yields
// lastGood.
func (p Parser) Parse(text string, lastGood decimal.Decimal) Outcome {
	sep := p.Separator
	if sep == 0 {
		sep = entry.DefaultSeparator
	}

	out := Outcome{Unit: unit.None}
	value, ok := p.parseWithUnit(text, sep, &out)
	if !ok {
		v, err := numeric.Parse(text, sep)
		if err != nil {
			v = lastGood
			out.Fallback = true
		}
		value = v
	}

	if q, err := numeric.Quantize(value, p.Resolution); err == nil {
		value = q
	}
	if p.Bounds != (Bounds{}) {
		value = p.Bounds.Clamp(value)
	}

	out.Value = value
	out.Unchanged = value.Cmp(lastGood) == 0
	return out
}

func (p Parser) parseWithUnit(text string, sep rune, out *Outcome) (decimal.Decimal, bool) {
	runes := []rune(text)
	a := entry.Analyze(runes, sep, p.Units)
	if !a.HasTerminator() {
		return decimal.Decimal{}, false
	}
	m, ok := p.Units.Lookup(string(runes[a.Terminator:]), p.PerDiv)
	if !ok {
		return decimal.Decimal{}, false
	}
	n, err := numeric.Parse(string(runes[:a.Terminator]), sep)
	if err != nil {
		return decimal.Decimal{}, false
	}
	v, err := n.Mul(m.Scale)
	if err != nil {
		return decimal.Decimal{}, false
	}
	out.Unit = m
	return v, true
}
