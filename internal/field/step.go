package field

import (
	"github.com/govalues/decimal"

	"github.com/dshills/numentry/internal/entry"
	"github.com/dshills/numentry/internal/format"
	"github.com/dshills/numentry/internal/input"
)

// Step moves the value up (dir > 0) or down (dir < 0).
//
// Keyboard steps, and spin or wheel steps without a fixed increment,
// change the digit left of the cursor and keep the cursor on a digit of
// the same weight after the value is re-rendered. Steps that cannot be
// applied leave the field unchanged. It reports whether the step was
// applied.
func (f *Field) Step(dir int, trigger input.Trigger) bool {
	switch {
	case dir > 0:
		dir = 1
	case dir < 0:
		dir = -1
	default:
		return false
	}

	if inc := f.fixedIncrement(trigger); inc.Sign() > 0 {
		f.stepBy(dir, inc)
		return true
	}

	f.place()
	if f.state.InTerminator() && f.set.preferredInc.Sign() > 0 {
		f.stepBy(dir, f.set.preferredInc)
		return true
	}

	req := f.preserveRequest()
	text, cursor := f.state.Text(), f.state.Cursor()
	selStart, selLen := f.state.Selection()
	offset, err := f.state.Step(entry.StepParams{
		Direction:      dir,
		Resolution:     f.set.resolution,
		PositiveMin:    f.set.bounds.PositiveMin(),
		NegativeMax:    f.set.bounds.NegativeMax(),
		PreferUnitStep: f.set.preferUnitStep,
	})
	if err != nil {
		f.log.Debug("step %+d at %d in %q: %v", dir, f.state.Cursor(), f.state.Text(), err)
		return false
	}

	// The width and exponent come from the stepped text; the previous
	// scale from the text before the step.
	req.Width = f.state.FractionWidth()
	req.Exponent = f.state.Exponent()

	out := f.set.parser().Parse(f.state.Text(), f.value)
	if out.Fallback {
		f.log.Debug("step %+d produced unparsable %q, dropped", dir, f.state.Text())
		f.state.SetText(text)
		if selLen > 0 {
			f.state.Select(selStart, selLen)
		} else {
			f.state.SetCursor(cursor)
		}
		return false
	}
	res := f.publish(out.Value, req)
	f.state.Renormalize(offset, req.Shift(res.Unit))
	return true
}

func (f *Field) fixedIncrement(trigger input.Trigger) decimal.Decimal {
	switch trigger {
	case input.Spin:
		return f.set.spinInc
	case input.Wheel:
		return f.set.wheelInc
	default:
		return decimal.Zero
	}
}

// stepBy adds dir*inc to the committed value. The cursor goes to the end
// so that a following step uses the same increment.
func (f *Field) stepBy(dir int, inc decimal.Decimal) {
	var (
		v   decimal.Decimal
		err error
	)
	if dir < 0 {
		v, err = f.value.Sub(inc)
	} else {
		v, err = f.value.Add(inc)
	}
	if err != nil {
		f.log.Debug("step by %s: %v", inc, err)
		return
	}
	f.publish(v, format.Request{Mode: format.Trim})
	f.placed = true
	f.state.SetCursor(f.state.Len())
}

// preserveRequest describes the current text for a width-preserving
// render.
func (f *Field) preserveRequest() format.Request {
	req := format.Request{
		Mode:      format.Preserve,
		PrevScale: decimal.One,
		Exponent:  f.state.Exponent(),
	}
	if m, ok := f.state.Unit(); ok {
		req.PrevScale = m.Scale
	}
	return req
}

// Zero sets the value to zero, clamped to the bounds.
func (f *Field) Zero() {
	f.preset(decimal.Zero)
}

// Min sets the value to the lower bound.
func (f *Field) Min() {
	f.preset(f.set.bounds.Min)
}

// Max sets the value to the upper bound.
func (f *Field) Max() {
	f.preset(f.set.bounds.Max)
}

// preset publishes v and keeps the cursor on a digit of the weight it
// was on before.
func (f *Field) preset(v decimal.Decimal) {
	f.place()
	req := f.preserveRequest()
	req.Mode = format.Trim
	offset := f.state.Offset()

	res := f.publish(v, req)
	f.state.Renormalize(offset, req.Shift(res.Unit))
}
