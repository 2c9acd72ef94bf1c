package field

import (
	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/dshills/numentry/internal/entry"
	"github.com/dshills/numentry/internal/format"
	"github.com/dshills/numentry/internal/logging"
	"github.com/dshills/numentry/internal/notify"
	"github.com/dshills/numentry/internal/unit"
)

// Field is a numeric entry field.
type Field struct {
	id    uuid.UUID
	set   settings
	state *entry.State
	log   *logging.Logger

	notifier *notify.Notifier

	// value is the last committed value; it always lies within bounds.
	value decimal.Decimal

	// rendered is the text produced by the last render of value.
	rendered string

	editing bool
	changed bool

	// placed is false until the cursor has been positioned explicitly.
	// An unplaced cursor acts as if it were at the end of the text.
	placed bool
}

// New creates a field rendering its initial value.
func New(opts ...Option) (*Field, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	f := &Field{
		id:       uuid.New(),
		set:      s,
		state:    entry.New(s.entryConfig()),
		notifier: notify.New(),
	}
	f.log = f.logger(s.logger)
	f.value = s.bounds.Clamp(s.initial)
	f.render(format.Request{Mode: format.Trim})
	return f, nil
}

func (f *Field) logger(l *logging.Logger) *logging.Logger {
	if l == nil {
		l = logging.Null()
	}
	return l.WithComponent("field").WithField("id", f.id.String()[:8])
}

// ID returns the field's unique identifier.
func (f *Field) ID() uuid.UUID {
	return f.id
}

// Value returns the last committed value.
func (f *Field) Value() decimal.Decimal {
	return f.value
}

// Text returns the display text.
func (f *Field) Text() string {
	return f.state.Text()
}

// Cursor returns the cursor index.
func (f *Field) Cursor() int {
	if !f.placed {
		return f.state.Len()
	}
	return f.state.Cursor()
}

// Selection returns the selected range.
func (f *Field) Selection() (start, length int) {
	return f.state.Selection()
}

// IsEditing reports whether the text differs from the rendering of the
// committed value.
func (f *Field) IsEditing() bool {
	return f.editing
}

// HasChanged reports whether a value was published since the last call,
// and clears the flag.
func (f *Field) HasChanged() bool {
	c := f.changed
	f.changed = false
	return c
}

// Bounds returns the value range.
func (f *Field) Bounds() format.Bounds {
	return f.set.bounds
}

// Units returns the unit set.
func (f *Field) Units() unit.Set {
	return f.set.units
}

// Resolution returns the quantization step.
func (f *Field) Resolution() decimal.Decimal {
	return f.set.resolution
}

// Separator returns the decimal separator.
func (f *Field) Separator() rune {
	return f.set.separator
}

// Unit returns the unit of the displayed text, or unit.None.
func (f *Field) Unit() unit.Multiplier {
	if m, ok := f.state.Unit(); ok {
		return m
	}
	return unit.None
}

// Compact renders the committed value in the short form used for
// summaries and hints.
func (f *Field) Compact() string {
	return f.set.formatter().Compact(f.value)
}

// Subscribe registers an observer for every field event.
func (f *Field) Subscribe(fn notify.Observer) *notify.Subscription {
	return f.notifier.Subscribe(fn)
}

// OnValueChanged registers an observer for published values.
func (f *Field) OnValueChanged(fn notify.Observer) *notify.Subscription {
	return f.notifier.SubscribeKind(notify.ValueChanged, fn)
}

// OnEditingChanged registers an observer for editing state changes.
func (f *Field) OnEditingChanged(fn notify.Observer) *notify.Subscription {
	return f.notifier.SubscribeKind(notify.EditingChanged, fn)
}

// SetValue stores v, clamped to the bounds, and renders it. The editing
// state is cleared.
func (f *Field) SetValue(v decimal.Decimal) {
	f.publish(v, format.Request{Mode: format.Trim})
}

// Refresh re-renders the committed value, discarding edits.
func (f *Field) Refresh() {
	f.render(format.Request{Mode: format.Trim})
}

// SetBounds replaces the value range and clamps the committed value into
// it.
func (f *Field) SetBounds(min, max decimal.Decimal) {
	f.set.bounds = format.NewBounds(min, max)
	if !f.set.bounds.Contains(f.value) {
		f.publish(f.value, format.Request{Mode: format.Trim})
	}
}

// Apply reconfigures the field. The current text is reparsed under the
// new settings, as if committed. On error the field is unchanged.
func (f *Field) Apply(opts ...Option) error {
	next := f.set
	for _, opt := range opts {
		opt(&next)
	}
	if err := next.validate(); err != nil {
		return err
	}

	f.set = next
	f.log = f.logger(next.logger)
	f.state.SetConfig(next.entryConfig())
	f.Commit()
	f.notifier.Notify(f.event(notify.Reconfigured, f.value))
	return nil
}

// publish stores v and renders it with req. A value event is sent when
// the value changed or force-update is on.
func (f *Field) publish(v decimal.Decimal, req format.Request) format.Result {
	prev := f.value
	f.value = f.set.bounds.Clamp(v)
	res := f.render(req)

	if f.value.Cmp(prev) != 0 || f.set.forceUpdate {
		f.changed = true
		f.log.Debug("value %s -> %s", prev, f.value)
		f.notifier.Notify(f.event(notify.ValueChanged, prev))
	}
	return res
}

// render replaces the text with the rendering of the committed value.
// The cursor is kept but pulled back into the number.
func (f *Field) render(req format.Request) format.Result {
	res, err := f.set.formatter().Format(f.value, req)
	if err != nil {
		f.log.Warn("render %s: %v", f.value, err)
		return format.Result{Unit: unit.None}
	}

	f.state.SetText(res.Text)
	f.state.SetCursor(min(f.state.Cursor(), f.state.Analysis().NumberEnd()))
	f.rendered = res.Text
	f.setEditing(false)
	return res
}

func (f *Field) setEditing(editing bool) {
	if editing == f.editing {
		return
	}
	f.editing = editing
	f.notifier.Notify(f.event(notify.EditingChanged, f.value))
}

func (f *Field) event(kind notify.Kind, prev decimal.Decimal) notify.Event {
	return notify.Event{
		Field:    f.id,
		Kind:     kind,
		Value:    f.value,
		Previous: prev,
		Editing:  f.editing,
		Text:     f.state.Text(),
	}
}
