package unit

import (
	"errors"
	"testing"

	"github.com/govalues/decimal"
)

func TestBest(t *testing.T) {
	tests := []struct {
		name  string
		set   Set
		value string
		want  string
	}{
		{"ten megahertz", Frequency, "10000000", "MHz"},
		{"zero uses base", Frequency, "0", "Hz"},
		{"below all scales", Set{Kilohertz, Megahertz}, "5", "kHz"},
		{"exact scale", Frequency, "1000", "kHz"},
		{"negative value", Frequency, "-2500000000", "GHz"},
		{"sub unit", Time, "0.0025", "ms"},
		{"tiny", Time, "0.0000000000001", "ps"},
		{"single unit", Set{Percent}, "123456", "%"},
		{"order independent", Set{Hertz, Gigahertz, Kilohertz, Megahertz}, "10000000", "MHz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.set.Best(decimal.MustParse(tt.value))
			if got.Suffix != tt.want {
				t.Errorf("Best(%s) = %q, want %q", tt.value, got.Suffix, tt.want)
			}
		})
	}

	if got := Set(nil).Best(decimal.One); !got.IsNone() {
		t.Errorf("empty set Best = %q, want none", got.Suffix)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		text   string
		perDiv bool
		want   string
		ok     bool
	}{
		{"MHz", false, "MHz", true},
		{" mhz ", false, "MHz", true},
		{"MHz/div", true, "MHz", true},
		{"MHz/DIV", true, "MHz", true},
		{"MHz/div", false, "", false},
		{"THz", false, "", false},
	}
	for _, tt := range tests {
		got, ok := Frequency.Lookup(tt.text, tt.perDiv)
		if ok != tt.ok || got.Suffix != tt.want {
			t.Errorf("Lookup(%q, %v) = %q, %v; want %q, %v", tt.text, tt.perDiv, got.Suffix, ok, tt.want, tt.ok)
		}
	}
}

func TestByLetter(t *testing.T) {
	tests := []struct {
		r    rune
		want string
		ok   bool
	}{
		{'k', "kHz", true},
		{'K', "kHz", true},
		{'m', "MHz", true},
		{'h', "Hz", true},
		{'x', "", false},
	}
	for _, tt := range tests {
		got, ok := Frequency.ByLetter(tt.r)
		if ok != tt.ok || got.Suffix != tt.want {
			t.Errorf("ByLetter(%q) = %q, %v; want %q, %v", tt.r, got.Suffix, ok, tt.want, tt.ok)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Frequency.Validate(); err != nil {
		t.Errorf("Frequency.Validate() = %v", err)
	}
	tests := []struct {
		name string
		set  Set
		want error
	}{
		{"two bases", Set{Hertz, Volt}, ErrMultipleBase},
		{"empty suffix", Set{{Scale: decimal.One}}, ErrEmptySuffix},
		{"zero scale", Set{{Suffix: "x", Scale: decimal.Zero}}, ErrScale},
		{"duplicate", Set{Hertz, {Suffix: "hz", Scale: decimal.Ten}}, ErrDuplicate},
	}
	for _, tt := range tests {
		if err := tt.set.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: Validate() = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestEffectiveResolution(t *testing.T) {
	tests := []struct {
		res   string
		exp   int
		scale Multiplier
		want  string
	}{
		{"1", 0, Kilohertz, "0.001"},
		{"0.25", 0, Hertz, "0.25"},
		{"100", 2, Hertz, "1"},
		{"1000", 0, Megahertz, "0.001"},
		{"0", 3, Kilohertz, "0"},
	}
	for _, tt := range tests {
		got, err := EffectiveResolution(decimal.MustParse(tt.res), tt.exp, tt.scale.Scale)
		if err != nil {
			t.Fatalf("EffectiveResolution error = %v", err)
		}
		if got.Cmp(decimal.MustParse(tt.want)) != 0 {
			t.Errorf("EffectiveResolution(%s, %d, %s) = %s, want %s", tt.res, tt.exp, tt.scale, got, tt.want)
		}
	}
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`
sets:
  Pressure:
    - suffix: kPa
      scale: 1e3
    - suffix: Pa
      scale: 1
    - suffix: mPa
      scale: "0.001"
`)
	c, err := ParseCatalog(data)
	if err != nil {
		t.Fatalf("ParseCatalog error = %v", err)
	}
	set, ok := c.Lookup("pressure")
	if !ok {
		t.Fatal("pressure set not found")
	}
	if len(set) != 3 {
		t.Fatalf("len(set) = %d, want 3", len(set))
	}
	if set[0].Scale.Cmp(decimal.MustNew(1000, 0)) != 0 {
		t.Errorf("kPa scale = %s", set[0].Scale)
	}
	if got := set.Best(decimal.MustParse("0.5")); got.Suffix != "mPa" {
		t.Errorf("Best(0.5) = %q, want mPa", got.Suffix)
	}

	if _, ok := c.Lookup("frequency"); !ok {
		t.Error("catalog lookup should fall back to predefined sets")
	}
}

func TestParseCatalogErrors(t *testing.T) {
	inputs := []string{
		"sets:\n  bad:\n    - suffix: a\n      scale: nope\n",
		"sets:\n  bad:\n    - suffix: a\n    - suffix: b\n",
		"sets: [",
	}
	for _, in := range inputs {
		if _, err := ParseCatalog([]byte(in)); err == nil {
			t.Errorf("ParseCatalog(%q) expected error", in)
		}
	}
}
