package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"unicode/utf8"

	"github.com/govalues/decimal"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/numentry/internal/entry"
	"github.com/dshills/numentry/internal/field"
	"github.com/dshills/numentry/internal/format"
	"github.com/dshills/numentry/internal/logging"
	"github.com/dshills/numentry/internal/numeric"
	"github.com/dshills/numentry/internal/unit"
)

// Number is a decimal setting. It is written as a TOML string and may use
// scientific notation.
type Number struct {
	Value decimal.Decimal
	Set   bool
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Number) UnmarshalText(text []byte) error {
	v, err := numeric.Parse(string(text), '.')
	if err != nil {
		return fmt.Errorf("decimal %q: %w", text, err)
	}
	n.Value, n.Set = v, true
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (n Number) MarshalText() ([]byte, error) {
	return []byte(n.Value.String()), nil
}

// NewNumber returns a set Number.
func NewNumber(v decimal.Decimal) Number {
	return Number{Value: v, Set: true}
}

// Profile is the on-disk description of a field.
type Profile struct {
	Field     FieldSection     `toml:"field"`
	Increment IncrementSection `toml:"increment"`
	Catalog   CatalogSection   `toml:"catalog"`
	Log       LogSection       `toml:"log"`

	// Path is the file the profile was loaded from, if any.
	Path string `toml:"-"`
}

// FieldSection holds the rendering and range settings.
type FieldSection struct {
	Units         string `toml:"units"`
	Min           Number `toml:"min"`
	Max           Number `toml:"max"`
	Resolution    Number `toml:"resolution"`
	Value         Number `toml:"value"`
	Digits        int    `toml:"digits"`
	ShowAllDigits bool   `toml:"show_all_digits"`
	PerDiv        bool   `toml:"per_div"`
	Separator     string `toml:"separator"`
	MaxLength     int    `toml:"max_length"`
	ForceUpdate   bool   `toml:"force_update"`
}

// IncrementSection holds the step policy.
type IncrementSection struct {
	Spin           Number `toml:"spin"`
	Wheel          Number `toml:"wheel"`
	Preferred      Number `toml:"preferred"`
	PreferUnitStep bool   `toml:"prefer_unit_step"`
}

// CatalogSection points at a YAML unit catalog.
type CatalogSection struct {
	Path string `toml:"path"`
}

// LogSection configures logging.
type LogSection struct {
	Level string `toml:"level"`
}

// Default returns the profile used when no file is given.
func Default() *Profile {
	return &Profile{
		Field: FieldSection{
			Digits:    format.DefaultDigits,
			Separator: string(entry.DefaultSeparator),
			MaxLength: entry.DefaultMaxLength,
		},
		Log: LogSection{Level: "info"},
	}
}

// Validate checks every setting.
func (p *Profile) Validate() error {
	var errs []error
	invalid := func(key, msg string, args ...any) {
		errs = append(errs, &ValidationError{Key: key, Message: fmt.Sprintf(msg, args...)})
	}

	f := p.Field
	if f.Digits < 0 || f.Digits > decimal.MaxScale {
		invalid("field.digits", "%d is outside 0..%d", f.Digits, decimal.MaxScale)
	}
	if utf8.RuneCountInString(f.Separator) != 1 {
		invalid("field.separator", "%q must be a single character", f.Separator)
	}
	if f.MaxLength < 0 {
		invalid("field.max_length", "%d is negative", f.MaxLength)
	}
	if f.Resolution.Value.Sign() < 0 {
		invalid("field.resolution", "%s is negative", f.Resolution.Value)
	}

	inc := p.Increment
	for _, n := range []struct {
		key string
		num Number
	}{
		{"increment.spin", inc.Spin},
		{"increment.wheel", inc.Wheel},
		{"increment.preferred", inc.Preferred},
	} {
		if n.num.Value.Sign() < 0 {
			invalid(n.key, "%s is negative", n.num.Value)
		}
	}

	if _, err := logging.ParseLevel(p.Log.Level); err != nil {
		invalid("log.level", "%v", err)
	}
	return errors.Join(errs...)
}

// Separator returns the decimal separator rune.
func (p *Profile) Separator() rune {
	r, _ := utf8.DecodeRuneInString(p.Field.Separator)
	if r == utf8.RuneError {
		return entry.DefaultSeparator
	}
	return r
}

// LogLevel returns the configured log level.
func (p *Profile) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(p.Log.Level)
	return level
}

// CatalogPath returns the catalog path resolved against the profile's
// directory, or "" when no catalog is configured.
func (p *Profile) CatalogPath() string {
	path := p.Catalog.Path
	if path == "" || filepath.IsAbs(path) || p.Path == "" {
		return path
	}
	return filepath.Join(filepath.Dir(p.Path), path)
}

// Units resolves the units setting against catalog and the standard
// sets.
func (p *Profile) Units(catalog unit.Catalog) (unit.Set, error) {
	if p.Field.Units == "" {
		return nil, nil
	}
	set, ok := catalog.Lookup(p.Field.Units)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnits, p.Field.Units)
	}
	return set, nil
}

// Options converts the profile to field options.
func (p *Profile) Options(catalog unit.Catalog) ([]field.Option, error) {
	units, err := p.Units(catalog)
	if err != nil {
		return nil, err
	}

	lo, hi := format.MinValue, format.MaxValue
	if p.Field.Min.Set {
		lo = p.Field.Min.Value
	}
	if p.Field.Max.Set {
		hi = p.Field.Max.Value
	}

	opts := []field.Option{
		field.WithUnits(units),
		field.WithBounds(lo, hi),
		field.WithResolution(p.Field.Resolution.Value),
		field.WithDigits(p.Field.Digits),
		field.WithShowAllDigits(p.Field.ShowAllDigits),
		field.WithPerDiv(p.Field.PerDiv),
		field.WithSeparator(p.Separator()),
		field.WithMaxLength(p.Field.MaxLength),
		field.WithForceUpdate(p.Field.ForceUpdate),
		field.WithSpinIncrement(p.Increment.Spin.Value),
		field.WithWheelIncrement(p.Increment.Wheel.Value),
		field.WithPreferredIncrement(p.Increment.Preferred.Value),
		field.WithPreferUnitStep(p.Increment.PreferUnitStep),
	}
	if p.Field.Value.Set {
		opts = append(opts, field.WithValue(p.Field.Value.Value))
	}
	return opts, nil
}

// Loader reads profiles and unit catalogs.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a loader reading from the OS file system.
func NewLoader() *Loader {
	return &Loader{fs: DefaultFS()}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads and validates the profile at path.
func (l *Loader) Load(path string) (*Profile, error) {
	data, err := l.read(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	p.Path = path
	return p, nil
}

// LoadCatalog reads the YAML unit catalog at path.
func (l *Loader) LoadCatalog(path string) (unit.Catalog, error) {
	data, err := l.read(path)
	if err != nil {
		return nil, err
	}
	c, err := unit.ParseCatalog(data)
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return c, nil
}

// Resolve loads the profile's catalog, if any, and returns the field
// options the profile describes.
func (l *Loader) Resolve(p *Profile) ([]field.Option, error) {
	var catalog unit.Catalog
	if path := p.CatalogPath(); path != "" {
		c, err := l.LoadCatalog(path)
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	return p.Options(catalog)
}

func (l *Loader) read(path string) ([]byte, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return data, nil
}

// Parse decodes and validates a profile. Unknown keys are rejected.
func Parse(source string, data []byte) (*Profile, error) {
	p := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return p, nil
}
