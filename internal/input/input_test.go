package input

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		r    rune
		sep  rune
		want Kind
		ok   bool
	}{
		{'0', '.', KindDigit, true},
		{'9', '.', KindDigit, true},
		{'.', '.', KindDecimal, true},
		{',', ',', KindDecimal, true},
		{'.', ',', KindNone, false},
		{'e', '.', KindExponent, true},
		{'E', '.', KindExponent, true},
		{'+', '.', KindSign, true},
		{'-', '.', KindSign, true},
		{'\b', '.', KindBackspace, true},
		{0x7f, '.', KindDelete, true},
		{'\r', '.', KindCommit, true},
		{0x1b, '.', KindAbort, true},
		{'k', '.', KindUnitLetter, true},
		{'M', '.', KindUnitLetter, true},
		{' ', '.', KindNone, false},
		{'#', '.', KindNone, false},
	}

	for _, tt := range tests {
		ev, ok := Classify(tt.r, tt.sep)
		if ok != tt.ok {
			t.Errorf("Classify(%q, %q) ok = %v, want %v", tt.r, tt.sep, ok, tt.ok)
			continue
		}
		if ev.Kind != tt.want {
			t.Errorf("Classify(%q, %q) kind = %v, want %v", tt.r, tt.sep, ev.Kind, tt.want)
		}
		if ok && ev.Kind.IsChar() && ev.Rune != tt.r {
			t.Errorf("Classify(%q, %q) rune = %q", tt.r, tt.sep, ev.Rune)
		}
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		trigger Trigger
	}{
		{"Up", KindStepUp, Keyboard},
		{"down", KindStepDown, Keyboard},
		{"Spin-Up", KindStepUp, Spin},
		{"Wheel-Down", KindStepDown, Wheel},
		{"BS", KindBackspace, Keyboard},
		{"Del", KindDelete, Keyboard},
		{"CR", KindCommit, Keyboard},
		{"Enter", KindCommit, Keyboard},
		{"Esc", KindAbort, Keyboard},
		{"Zero", KindZero, Keyboard},
		{"Min", KindMin, Keyboard},
		{"Max", KindMax, Keyboard},
		{"Home", KindHome, Keyboard},
		{"C-a", KindSelectAll, Keyboard},
	}

	for _, tt := range tests {
		ev, err := ParseKey(tt.name)
		if err != nil {
			t.Errorf("ParseKey(%q) error = %v", tt.name, err)
			continue
		}
		if ev.Kind != tt.kind || ev.Trigger != tt.trigger {
			t.Errorf("ParseKey(%q) = %v/%v, want %v/%v", tt.name, ev.Kind, ev.Trigger, tt.kind, tt.trigger)
		}
	}
}

func TestParseKeyErrors(t *testing.T) {
	for _, name := range []string{"", "F13", "Spin-BS", "Turbo-Up"} {
		if _, err := ParseKey(name); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ParseKey(%q) error = %v, want ErrInvalidKey", name, err)
		}
	}
}

func TestParseScript(t *testing.T) {
	events, err := ParseScript("12.5<Up><Spin-Down><BS>k<CR>", '.')
	if err != nil {
		t.Fatalf("ParseScript error = %v", err)
	}

	want := []Kind{
		KindDigit, KindDigit, KindDecimal, KindDigit,
		KindStepUp, KindStepDown, KindBackspace, KindUnitLetter, KindCommit,
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, k := range want {
		if events[i].Kind != k {
			t.Errorf("event %d kind = %v, want %v", i, events[i].Kind, k)
		}
	}
	if events[5].Trigger != Spin {
		t.Errorf("event 5 trigger = %v, want spin", events[5].Trigger)
	}
	if events[5].Direction() != -1 || events[4].Direction() != 1 || events[0].Direction() != 0 {
		t.Error("unexpected step directions")
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		script string
		want   error
	}{
		{"12<Up", ErrUnmatchedBracket},
		{"1 2", ErrInvalidKey},
		{"<Nope>", ErrInvalidKey},
		{"1,5", ErrInvalidKey},
	}

	for _, tt := range tests {
		if _, err := ParseScript(tt.script, '.'); !errors.Is(err, tt.want) {
			t.Errorf("ParseScript(%q) error = %v, want %v", tt.script, err, tt.want)
		}
	}
}

func TestFormatScript(t *testing.T) {
	scripts := []string{
		"12.5<Up><Spin-Down><BS><CR>",
		"-1e5<Wheel-Up><Esc><Zero><Max><Min>",
		"3k<Left><Right><Home><End><Del>",
	}

	for _, script := range scripts {
		events, err := ParseScript(script, '.')
		if err != nil {
			t.Fatalf("ParseScript(%q) error = %v", script, err)
		}
		if got := FormatScript(events); got != script {
			t.Errorf("FormatScript = %q, want %q", got, script)
		}
	}
}

func TestStepEvent(t *testing.T) {
	up := StepEvent(1, Wheel)
	if up.Kind != KindStepUp || up.Trigger != Wheel {
		t.Errorf("StepEvent(1) = %+v", up)
	}
	down := StepEvent(-1, Keyboard)
	if down.Kind != KindStepDown {
		t.Errorf("StepEvent(-1) = %+v", down)
	}
}
