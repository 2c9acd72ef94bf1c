package numeric

import (
	"errors"
	"testing"

	"github.com/govalues/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		sep  rune
		want string
	}{
		{"integer", "1000", '.', "1000"},
		{"negative fraction", "-41.2345", '.', "-41.2345"},
		{"explicit plus", "+3.5", '.', "3.5"},
		{"leading separator", ".5", '.', "0.5"},
		{"trailing separator", "12.", '.', "12"},
		{"exponent", "1.5E+3", '.', "1500.0"},
		{"negative exponent", "2.5e-2", '.', "0.025"},
		{"comma separator", "3,25", ',', "3.25"},
		{"surrounding blanks", "  7 ", '.', "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text, tt.sep)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.text, err)
			}
			if got.Cmp(decimal.MustParse(tt.want)) != 0 {
				t.Errorf("Parse(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{"", "abc", "1.0E+", "1.0E+x", "-", "1 kHz", "E5", "1.2.3"}
	for _, in := range inputs {
		if _, err := Parse(in, '.'); err == nil {
			t.Errorf("Parse(%q) expected error", in)
		}
	}
	if _, err := Parse("1.5", ','); !errors.Is(err, ErrSyntax) {
		t.Errorf("Parse with foreign separator error = %v, want ErrSyntax", err)
	}
}

func TestPow10(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "1"},
		{3, "1000"},
		{-2, "0.01"},
		{18, "1000000000000000000"},
		{-19, "0.0000000000000000001"},
	}
	for _, tt := range tests {
		got, err := Pow10(tt.n)
		if err != nil {
			t.Fatalf("Pow10(%d) error = %v", tt.n, err)
		}
		if got.String() != tt.want {
			t.Errorf("Pow10(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}

	for _, n := range []int{19, -20} {
		if _, err := Pow10(n); !errors.Is(err, ErrPowerRange) {
			t.Errorf("Pow10(%d) error = %v, want ErrPowerRange", n, err)
		}
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in    string
		scale int
		want  string
	}{
		{"2.5", 0, "3"},
		{"-2.5", 0, "-3"},
		{"1.25", 1, "1.3"},
		{"1.24", 1, "1.2"},
		{"1.2", 3, "1.2"},
	}
	for _, tt := range tests {
		got := Round(decimal.MustParse(tt.in), tt.scale)
		if got.String() != tt.want {
			t.Errorf("Round(%s, %d) = %s, want %s", tt.in, tt.scale, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	d := decimal.MustParse("1.5")
	if got := FormatFixed(d, 3); got != "1.500" {
		t.Errorf("FormatFixed = %q, want 1.500", got)
	}
	if got := FormatTrimmed(decimal.MustParse("1.50049"), 3); got != "1.5" {
		t.Errorf("FormatTrimmed = %q, want 1.5", got)
	}
	if got := FormatFixed(d, 0); got != "2" {
		t.Errorf("FormatFixed(0) = %q, want 2", got)
	}
	if got := FormatPlain(decimal.MustParse("10.000")); got != "10" {
		t.Errorf("FormatPlain = %q, want 10", got)
	}
	if got := FormatExponent(0); got != "+0" {
		t.Errorf("FormatExponent(0) = %q, want +0", got)
	}
	if got := FormatExponent(-12); got != "-12" {
		t.Errorf("FormatExponent(-12) = %q, want -12", got)
	}
}

func TestLog10Ratio(t *testing.T) {
	k := decimal.MustNew(1000, 0)
	one := decimal.MustNew(1, 0)
	if got := Log10Ratio(k, one); got != 3 {
		t.Errorf("Log10Ratio(1000, 1) = %d, want 3", got)
	}
	if got := Log10Ratio(one, k); got != -3 {
		t.Errorf("Log10Ratio(1, 1000) = %d, want -3", got)
	}
	if got := Log10Ratio(decimal.Zero, k); got != 0 {
		t.Errorf("Log10Ratio(0, 1000) = %d, want 0", got)
	}
}

func TestQuantize(t *testing.T) {
	step := decimal.MustParse("0.25")
	tests := []struct{ in, want string }{
		{"1.10", "1.00"},
		{"1.13", "1.25"},
		{"1.125", "1.00"},
		{"-0.9", "-1.00"},
	}
	for _, tt := range tests {
		got, err := Quantize(decimal.MustParse(tt.in), step)
		if err != nil {
			t.Fatalf("Quantize(%s) error = %v", tt.in, err)
		}
		if got.Cmp(decimal.MustParse(tt.want)) != 0 {
			t.Errorf("Quantize(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}

	same, _ := Quantize(decimal.MustParse("1.1"), decimal.Zero)
	if same.String() != "1.1" {
		t.Errorf("Quantize with zero step = %s, want 1.1", same)
	}
}

func TestClamp(t *testing.T) {
	lo, hi := decimal.MustNew(0, 0), decimal.MustNew(10, 0)
	if got := Clamp(decimal.MustNew(-1, 0), lo, hi); got.Cmp(lo) != 0 {
		t.Errorf("Clamp below = %s", got)
	}
	if got := Clamp(decimal.MustNew(11, 0), lo, hi); got.Cmp(hi) != 0 {
		t.Errorf("Clamp above = %s", got)
	}
	if got := Clamp(decimal.MustNew(5, 0), lo, hi); got.String() != "5" {
		t.Errorf("Clamp inside = %s", got)
	}
}
