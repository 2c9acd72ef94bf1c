package field

import (
	"fmt"
	"unicode"

	"github.com/govalues/decimal"

	"github.com/dshills/numentry/internal/entry"
	"github.com/dshills/numentry/internal/format"
	"github.com/dshills/numentry/internal/logging"
	"github.com/dshills/numentry/internal/unit"
)

// settings holds everything an Option may change.
type settings struct {
	units          unit.Set
	bounds         format.Bounds
	resolution     decimal.Decimal
	digits         int
	showAllDigits  bool
	perDiv         bool
	separator      rune
	maxLength      int
	spinInc        decimal.Decimal
	wheelInc       decimal.Decimal
	preferredInc   decimal.Decimal
	preferUnitStep bool
	forceUpdate    bool
	logger         *logging.Logger
	initial        decimal.Decimal
}

func defaultSettings() settings {
	return settings{
		bounds:    format.Unbounded(),
		digits:    format.DefaultDigits,
		separator: entry.DefaultSeparator,
		maxLength: entry.DefaultMaxLength,
	}
}

func (s settings) validate() error {
	if err := s.units.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnits, err)
	}
	if s.resolution.Sign() < 0 {
		return ErrResolution
	}
	if s.spinInc.Sign() < 0 || s.wheelInc.Sign() < 0 || s.preferredInc.Sign() < 0 {
		return ErrIncrement
	}
	switch r := s.separator; {
	case unicode.IsDigit(r), unicode.IsLetter(r), unicode.IsSpace(r), r == '+', r == '-':
		return fmt.Errorf("%w: %q", ErrSeparator, r)
	}
	return nil
}

func (s settings) entryConfig() entry.Config {
	return entry.Config{
		Separator: s.separator,
		Units:     s.units,
		PerDiv:    s.perDiv,
		MaxLength: s.maxLength,
	}
}

func (s settings) formatter() format.Formatter {
	return format.Formatter{
		Units:         s.units,
		Resolution:    s.resolution,
		Digits:        s.digits,
		ShowAllDigits: s.showAllDigits,
		PerDiv:        s.perDiv,
		Separator:     s.separator,
	}
}

func (s settings) parser() format.Parser {
	return format.Parser{
		Units:      s.units,
		Resolution: s.resolution,
		Bounds:     s.bounds,
		PerDiv:     s.perDiv,
		Separator:  s.separator,
	}
}

// Option configures a Field.
type Option func(*settings)

// WithUnits sets the units the field may display. An empty set shows
// plain numbers.
func WithUnits(units unit.Set) Option {
	return func(s *settings) {
		s.units = append(unit.Set(nil), units...)
	}
}

// WithBounds sets the inclusive value range. A max below min is raised
// to min.
func WithBounds(min, max decimal.Decimal) Option {
	return func(s *settings) {
		s.bounds = format.NewBounds(min, max)
	}
}

// WithResolution sets the quantization step. Zero disables quantization.
func WithResolution(res decimal.Decimal) Option {
	return func(s *settings) {
		s.resolution = res
	}
}

// WithDigits sets the number of fractional digits rendered.
func WithDigits(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.digits = n
		}
	}
}

// WithShowAllDigits always renders Digits fractional digits, zero-filled.
func WithShowAllDigits(show bool) Option {
	return func(s *settings) {
		s.showAllDigits = show
	}
}

// WithPerDiv appends "/div" to every rendered unit.
func WithPerDiv(perDiv bool) Option {
	return func(s *settings) {
		s.perDiv = perDiv
	}
}

// WithSeparator sets the decimal separator.
func WithSeparator(sep rune) Option {
	return func(s *settings) {
		if sep != 0 {
			s.separator = sep
		}
	}
}

// WithMaxLength sets the longest text an edit may produce.
func WithMaxLength(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxLength = n
		}
	}
}

// WithSpinIncrement sets a fixed increment for spin-button steps. Zero
// restores the cursor-sensitive step.
func WithSpinIncrement(inc decimal.Decimal) Option {
	return func(s *settings) {
		s.spinInc = inc
	}
}

// WithWheelIncrement sets a fixed increment for wheel steps. Zero
// restores the cursor-sensitive step.
func WithWheelIncrement(inc decimal.Decimal) Option {
	return func(s *settings) {
		s.wheelInc = inc
	}
}

// WithPreferredIncrement sets the step applied when the cursor sits in
// the unit suffix. It overrides WithPreferUnitStep.
func WithPreferredIncrement(inc decimal.Decimal) Option {
	return func(s *settings) {
		s.preferredInc = inc
	}
}

// WithPreferUnitStep steps the ones digit, rather than the last digit,
// when the cursor sits in the unit suffix.
func WithPreferUnitStep(prefer bool) Option {
	return func(s *settings) {
		s.preferUnitStep = prefer
	}
}

// WithForceUpdate publishes a value event on every commit, even when the
// value did not change.
func WithForceUpdate(force bool) Option {
	return func(s *settings) {
		s.forceUpdate = force
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logging.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithValue sets the initial value. It is clamped to the bounds.
func WithValue(v decimal.Decimal) Option {
	return func(s *settings) {
		s.initial = v
	}
}
