// Package replay runs key scripts against a field and records a JSON
// transcript of every step.
//
// A transcript looks like:
//
//	{
//	  "field": "6f1c...",
//	  "initial": {"text": "0", "value": "0"},
//	  "steps": [
//	    {"key": "1", "text": "1", "cursor": 1, "value": "0", "editing": true},
//	    {"key": "<CR>", "text": "1", "cursor": 1, "value": "1", "editing": false}
//	  ],
//	  "final": {"text": "1", "value": "1", "unit": "", "compact": "1", "changed": true}
//	}
//
// Values are decimal strings so that they survive JSON exactly. Query
// reads a transcript with gjson path syntax, e.g. "steps.#.text" or
// "final.value".
package replay

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/numentry/internal/field"
	"github.com/dshills/numentry/internal/input"
)

// Errors returned by Query.
var (
	ErrInvalidTranscript = errors.New("invalid transcript")
	ErrNoMatch           = errors.New("path matched nothing")
)

// Recorder applies events to a field and records the result of each.
type Recorder struct {
	f     *field.Field
	doc   string
	steps int
	err   error
}

// NewRecorder starts a transcript for f.
func NewRecorder(f *field.Field) *Recorder {
	r := &Recorder{f: f, doc: "{}"}
	r.set("field", f.ID().String())
	r.set("initial.text", f.Text())
	r.set("initial.value", f.Value().String())
	r.setRaw("steps", "[]")
	return r
}

// Apply handles ev and records the field state afterwards.
func (r *Recorder) Apply(ev input.Event) {
	r.f.Handle(ev)

	prefix := fmt.Sprintf("steps.%d.", r.steps)
	r.set(prefix+"key", ev.String())
	r.set(prefix+"text", r.f.Text())
	r.set(prefix+"cursor", r.f.Cursor())
	r.set(prefix+"value", r.f.Value().String())
	r.set(prefix+"editing", r.f.IsEditing())
	r.steps++
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return r.steps
}

// Transcript completes the transcript and returns it.
func (r *Recorder) Transcript() (string, error) {
	r.set("final.text", r.f.Text())
	r.set("final.value", r.f.Value().String())
	r.set("final.unit", r.f.Unit().Suffix)
	r.set("final.compact", r.f.Compact())
	r.set("final.changed", r.f.HasChanged())
	if r.err != nil {
		return "", r.err
	}
	return r.doc, nil
}

func (r *Recorder) set(path string, value any) {
	if r.err != nil {
		return
	}
	r.doc, r.err = sjson.Set(r.doc, path, value)
}

func (r *Recorder) setRaw(path, raw string) {
	if r.err != nil {
		return
	}
	r.doc, r.err = sjson.SetRaw(r.doc, path, raw)
}

// Run applies events to f and returns the transcript.
func Run(f *field.Field, events []input.Event) (string, error) {
	r := NewRecorder(f)
	for _, ev := range events {
		r.Apply(ev)
	}
	return r.Transcript()
}

// RunScript parses script with the field's separator and runs it.
func RunScript(f *field.Field, script string) (string, error) {
	events, err := input.ParseScript(script, f.Separator())
	if err != nil {
		return "", err
	}
	return Run(f, events)
}

// Query evaluates a gjson path against a transcript. Scalars are
// returned as plain text and objects or arrays as JSON.
func Query(transcript, path string) (string, error) {
	if !gjson.Valid(transcript) {
		return "", ErrInvalidTranscript
	}
	res := gjson.Get(transcript, path)
	if !res.Exists() {
		return "", fmt.Errorf("%w: %s", ErrNoMatch, path)
	}
	if res.IsObject() || res.IsArray() {
		return res.Raw, nil
	}
	return res.String(), nil
}

// Pretty indents a transcript for display.
func Pretty(transcript string) string {
	return string(pretty.Pretty([]byte(transcript)))
}
