package entry

import (
	"strconv"

	"github.com/dshills/numentry/internal/unit"
)

// Control characters understood by ProcessKey.
const (
	Backspace rune = '\b'
	Delete    rune = 0x7f
)

// Default configuration values.
const (
	DefaultSeparator = '.'
	DefaultMaxLength = 50

	// MaxExponentLength bounds the exponent field: a sign and two digits.
	MaxExponentLength = 3
)

// Config describes the grammar of an entry.
type Config struct {
	// Separator is the decimal separator.
	Separator rune

	// Units are the suffixes recognized as a terminator.
	Units unit.Set

	// PerDiv marks suffixes that carry a trailing "/div".
	PerDiv bool

	// MaxLength is the longest text an edit may produce.
	MaxLength int
}

func (c Config) withDefaults() Config {
	if c.Separator == 0 {
		c.Separator = DefaultSeparator
	}
	if c.MaxLength <= 0 {
		c.MaxLength = DefaultMaxLength
	}
	return c
}

// State is the text buffer of a numeric entry with its cursor and
// selection.
type State struct {
	cfg    Config
	text   []rune
	cursor int
	selPos int
	selLen int
}

// New creates an empty State.
func New(cfg Config) *State {
	return &State{cfg: cfg.withDefaults()}
}

// Config returns the entry configuration.
func (s *State) Config() Config {
	return s.cfg
}

// SetConfig replaces the configuration. The text is kept.
func (s *State) SetConfig(cfg Config) {
	s.cfg = cfg.withDefaults()
}

// Text returns the buffer contents.
func (s *State) Text() string {
	return string(s.text)
}

// Len returns the buffer length in runes.
func (s *State) Len() int {
	return len(s.text)
}

// Cursor returns the cursor index.
func (s *State) Cursor() int {
	return s.cursor
}

// SetText replaces the buffer, clears the selection and clamps the cursor.
func (s *State) SetText(text string) {
	s.text = []rune(text)
	s.selPos, s.selLen = 0, 0
	s.SetCursor(s.cursor)
}

// SetCursor moves the cursor, clamped to the buffer, and clears the
// selection.
func (s *State) SetCursor(pos int) {
	s.cursor = clamp(pos, 0, len(s.text))
	s.selPos, s.selLen = 0, 0
}

// Select selects length runes from start. The cursor moves to the end of
// the selection. A negative length selects backwards.
func (s *State) Select(start, length int) {
	end := clamp(start+length, 0, len(s.text))
	start = clamp(start, 0, len(s.text))
	if end < start {
		start, end = end, start
	}
	s.selPos, s.selLen = start, end-start
	s.cursor = end
}

// Selection returns the selected range.
func (s *State) Selection() (start, length int) {
	return s.selPos, s.selLen
}

// Analysis analyzes the current text.
func (s *State) Analysis() Analysis {
	return Analyze(s.text, s.cfg.Separator, s.cfg.Units)
}

// InTerminator reports whether the cursor lies past the last numeric
// character, inside or after the unit suffix.
func (s *State) InTerminator() bool {
	return s.cursor > s.Analysis().NumberEnd()
}

// Number returns the numeric part of the text, without the terminator.
func (s *State) Number() string {
	return string(s.text[:s.Analysis().NumberEnd()])
}

// Terminator returns the unit suffix text, including its leading blank.
func (s *State) Terminator() string {
	a := s.Analysis()
	if !a.HasTerminator() {
		return ""
	}
	return string(s.text[a.Terminator:])
}

// Unit returns the multiplier named by the terminator.
func (s *State) Unit() (unit.Multiplier, bool) {
	term := s.Terminator()
	if term == "" {
		return unit.Multiplier{}, false
	}
	return s.cfg.Units.Lookup(term, s.cfg.PerDiv)
}

// Exponent returns the value of the exponent field, 0 when there is none
// or it does not parse.
func (s *State) Exponent() int {
	return exponentValue(s.text, s.Analysis())
}

// FractionWidth returns the number of mantissa digits right of the
// implied decimal position.
func (s *State) FractionWidth() int {
	a := s.Analysis()
	w := a.MantissaEnd() - a.Implied
	if a.HasDecimal() {
		w--
	}
	if w < 0 {
		return 0
	}
	return w
}

func exponentValue(text []rune, a Analysis) int {
	if !a.HasExponent() {
		return 0
	}
	n, err := strconv.Atoi(string(text[a.Exponent+1 : a.NumberEnd()]))
	if err != nil {
		return 0
	}
	return n
}

type snapshot struct {
	text           []rune
	cursor         int
	selPos, selLen int
}

func (s *State) snapshot() snapshot {
	return snapshot{
		text:   append([]rune(nil), s.text...),
		cursor: s.cursor,
		selPos: s.selPos,
		selLen: s.selLen,
	}
}

func (s *State) restore(snap snapshot) {
	s.text = snap.text
	s.cursor = snap.cursor
	s.selPos, s.selLen = snap.selPos, snap.selLen
}

func (s *State) insert(pos int, r ...rune) {
	buf := make([]rune, 0, len(s.text)+len(r))
	buf = append(buf, s.text[:pos]...)
	buf = append(buf, r...)
	s.text = append(buf, s.text[pos:]...)
}

func (s *State) remove(pos, n int) {
	s.text = append(s.text[:pos], s.text[pos+n:]...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
