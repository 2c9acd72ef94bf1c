package entry

import (
	"testing"

	"github.com/dshills/numentry/internal/unit"
)

// typeKeys feeds every rune of keys to s and returns the last result.
func typeKeys(s *State, keys string) KeyResult {
	var res KeyResult
	for _, r := range keys {
		res = s.ProcessKey(r)
	}
	return res
}

func TestProcessKeyTyping(t *testing.T) {
	tests := []struct {
		name       string
		keys       string
		wantText   string
		wantCursor int
	}{
		{"digits and separator", "12.5", "12.5", 4},
		{"second separator rejected", "1.2.3", "1.23", 4},
		{"exponent gets sign", "1e5", "1E+5", 4},
		{"exponent field is bounded", "1e123", "1E+12", 5},
		{"bare exponent gets mantissa", "e", "1.0E", 4},
		{"second exponent rejected", "1ee2", "1E+2", 4},
		{"separator after exponent rejected", "1e2.", "1E+2", 4},
		{"mantissa sign", "5-", "-5", 2},
		{"mantissa sign replaced", "5-+", "+5", 2},
		{"exponent sign replaced", "1e5-", "1E-5", 4},
		{"backspace", "12.5\b", "12.", 3},
		{"backspace through exponent", "1e5\b\b\b", "1", 1},
		{"leading separator", ".5", "0.5", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Config{Units: unit.Frequency})
			typeKeys(s, tt.keys)
			if s.Text() != tt.wantText || s.Cursor() != tt.wantCursor {
				t.Errorf("keys %q = %q@%d, want %q@%d", tt.keys, s.Text(), s.Cursor(), tt.wantText, tt.wantCursor)
			}
		})
	}
}

func TestProcessKeyTerminator(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     int
		key        rune
		wantText   string
		wantCursor int
	}{
		{"digit past terminator snaps", "12 kHz", 6, '3', "123 kHz", 3},
		{"separator past terminator snaps", "12 kHz", 5, '.', "12. kHz", 3},
		{"backspace inside terminator", "12 kHz", 4, Backspace, "12", 2},
		{"backspace at number end", "12 kHz", 2, Backspace, "1 kHz", 1},
		{"delete at number end", "12 kHz", 2, Delete, "12", 2},
		{"delete inside number", "12 kHz", 0, Delete, "2 kHz", 0},
		{"unit letter replaces suffix", "12 kHz", 1, 'm', "12 MHz", 1},
		{"unit letter appends suffix", "12", 2, 'G', "12 GHz", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Config{Units: unit.Frequency})
			s.SetText(tt.text)
			s.SetCursor(tt.cursor)
			s.ProcessKey(tt.key)
			if s.Text() != tt.wantText || s.Cursor() != tt.wantCursor {
				t.Errorf("%q@%d + %q = %q@%d, want %q@%d",
					tt.text, tt.cursor, tt.key, s.Text(), s.Cursor(), tt.wantText, tt.wantCursor)
			}
		})
	}
}

func TestProcessKeyCommitting(t *testing.T) {
	s := New(Config{Units: unit.Frequency})
	if res := typeKeys(s, "12"); res.Committing {
		t.Error("digit should not commit")
	}
	res := s.ProcessKey('k')
	if !res.Committing || !res.Changed {
		t.Errorf("unit letter result = %+v, want committing change", res)
	}

	res = s.ProcessKey('x')
	if res.Changed || res.Committing {
		t.Errorf("unknown letter result = %+v, want no effect", res)
	}
	if s.Text() != "12 kHz" {
		t.Errorf("text after unknown letter = %q", s.Text())
	}
}

func TestProcessKeySelection(t *testing.T) {
	s := New(Config{})
	s.SetText("12.5")
	s.Select(0, 2)
	s.ProcessKey('7')
	if s.Text() != "7.5" || s.Cursor() != 1 {
		t.Errorf("replace selection = %q@%d, want 7.5@1", s.Text(), s.Cursor())
	}

	s.SetText("12.5")
	s.Select(1, 2)
	s.ProcessKey(Backspace)
	if s.Text() != "15" || s.Cursor() != 1 {
		t.Errorf("backspace selection = %q@%d, want 15@1", s.Text(), s.Cursor())
	}
}

func TestProcessKeyMaxLength(t *testing.T) {
	s := New(Config{MaxLength: 3})
	typeKeys(s, "123")
	res := s.ProcessKey('4')
	if res.Changed {
		t.Error("edit beyond MaxLength should be rejected")
	}
	if s.Text() != "123" || s.Cursor() != 3 {
		t.Errorf("text = %q@%d, want 123@3", s.Text(), s.Cursor())
	}

	// The unity mantissa would overflow the limit as well.
	s = New(Config{MaxLength: 3})
	if res := s.ProcessKey('e'); res.Changed || s.Text() != "" {
		t.Errorf("exponent key = %q, %+v; want rejection", s.Text(), res)
	}
}
