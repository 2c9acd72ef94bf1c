package field

import (
	"github.com/dshills/numentry/internal/entry"
	"github.com/dshills/numentry/internal/format"
	"github.com/dshills/numentry/internal/input"
)

// ProcessKey applies one typed character or control code at the cursor.
// Keys outside the entry grammar are ignored. A unit letter commits the
// edit immediately. It reports whether the text or cursor changed.
func (f *Field) ProcessKey(r rune) bool {
	f.place()
	res := f.state.ProcessKey(r)
	if res.Committing {
		f.Commit()
		return true
	}
	f.setEditing(f.state.Text() != f.rendered)
	return res.Changed
}

// Commit parses the text, publishes the result and re-renders it. Text
// that does not parse reverts to the last committed value.
func (f *Field) Commit() {
	out := f.set.parser().Parse(f.state.Text(), f.value)
	if out.Fallback {
		f.log.Debug("unparsable text %q, keeping %s", f.state.Text(), f.value)
	}
	f.publish(out.Value, format.Request{Mode: format.Trim})
}

// Abort discards edits and re-renders the committed value.
func (f *Field) Abort() {
	f.Refresh()
}

// SetCursor moves the cursor, clamped to the text.
func (f *Field) SetCursor(pos int) {
	f.placed = true
	f.state.SetCursor(pos)
}

// Select selects length runes from start. Typing replaces the selection.
func (f *Field) Select(start, length int) {
	f.placed = true
	f.state.Select(start, length)
}

// SelectAll selects the whole text.
func (f *Field) SelectAll() {
	f.Select(0, f.state.Len())
}

// place pins an unplaced cursor to the end of the text.
func (f *Field) place() {
	if !f.placed {
		f.placed = true
		f.state.SetCursor(f.state.Len())
	}
}

// Handle dispatches an input event.
func (f *Field) Handle(ev input.Event) {
	switch ev.Kind {
	case input.KindDigit, input.KindDecimal, input.KindExponent, input.KindSign, input.KindUnitLetter:
		f.ProcessKey(ev.Rune)
	case input.KindBackspace:
		f.ProcessKey(entry.Backspace)
	case input.KindDelete:
		f.ProcessKey(entry.Delete)
	case input.KindStepUp, input.KindStepDown:
		f.Step(ev.Direction(), ev.Trigger)
	case input.KindCommit:
		f.Commit()
	case input.KindAbort:
		f.Abort()
	case input.KindZero:
		f.Zero()
	case input.KindMin:
		f.Min()
	case input.KindMax:
		f.Max()
	case input.KindLeft:
		f.SetCursor(f.Cursor() - 1)
	case input.KindRight:
		f.SetCursor(f.Cursor() + 1)
	case input.KindHome:
		f.SetCursor(0)
	case input.KindEnd:
		f.SetCursor(f.state.Len())
	case input.KindSelectAll:
		f.SelectAll()
	default:
		f.log.Debug("ignored event %v", ev.Kind)
	}
}
