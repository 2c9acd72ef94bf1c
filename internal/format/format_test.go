package format

import (
	"testing"

	"github.com/govalues/decimal"

	"github.com/dshills/numentry/internal/unit"
)

func TestFormat(t *testing.T) {
	hz := unit.Hertz.Scale
	khz := unit.Kilohertz.Scale

	tests := []struct {
		name     string
		f        Formatter
		value    string
		req      Request
		wantText string
		wantUnit string
	}{
		{
			name:     "largest unit not above value",
			f:        Formatter{Units: unit.Frequency, Digits: DefaultDigits},
			value:    "10000000",
			wantText: "10 MHz", wantUnit: "MHz",
		},
		{
			name:     "zero uses base unit",
			f:        Formatter{Units: unit.Frequency, Digits: DefaultDigits},
			value:    "0",
			wantText: "0 Hz", wantUnit: "Hz",
		},
		{
			name:     "show all digits",
			f:        Formatter{Units: unit.Frequency, Digits: 3, ShowAllDigits: true},
			value:    "1500",
			wantText: "1.500 kHz", wantUnit: "kHz",
		},
		{
			name:     "resolution caps digits",
			f:        Formatter{Units: unit.Frequency, Digits: DefaultDigits, Resolution: decimal.One},
			value:    "1234.5",
			wantText: "1.235 kHz", wantUnit: "kHz",
		},
		{
			name:     "quarter resolution needs two digits",
			f:        Formatter{Digits: 3, ShowAllDigits: true, Resolution: decimal.MustParse("0.25")},
			value:    "1",
			wantText: "1.00",
		},
		{
			name:     "coarse resolution hides fraction",
			f:        Formatter{Digits: DefaultDigits, Resolution: decimal.MustNew(10, 0)},
			value:    "1230",
			wantText: "1230",
		},
		{
			name:     "preserve width across unit change",
			f:        Formatter{Units: unit.Frequency, Digits: DefaultDigits},
			value:    "1000",
			req:      Request{Mode: Preserve, Width: 0, PrevScale: hz},
			wantText: "1.000 kHz", wantUnit: "kHz",
		},
		{
			name:     "preserve keeps trailing zeros",
			f:        Formatter{Digits: DefaultDigits},
			value:    "-3.40",
			req:      Request{Mode: Preserve, Width: 2},
			wantText: "-3.40",
		},
		{
			name:     "preserve folds exponent",
			f:        Formatter{Units: unit.Frequency, Digits: DefaultDigits},
			value:    "1500000",
			req:      Request{Mode: Preserve, Width: 1, PrevScale: khz, Exponent: 3},
			wantText: "1.5 MHz", wantUnit: "MHz",
		},
		{
			name:     "preserve folds exponent without units",
			f:        Formatter{Digits: DefaultDigits},
			value:    "1500",
			req:      Request{Mode: Preserve, Width: 1, Exponent: 3},
			wantText: "1500",
		},
		{
			name:     "per division",
			f:        Formatter{Units: unit.Frequency, Digits: DefaultDigits, PerDiv: true},
			value:    "2500000",
			wantText: "2.5 MHz/div", wantUnit: "MHz",
		},
		{
			name:     "comma separator",
			f:        Formatter{Digits: DefaultDigits, Separator: ','},
			value:    "2.5",
			wantText: "2,5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.f.Format(decimal.MustParse(tt.value), tt.req)
			if err != nil {
				t.Fatalf("Format error = %v", err)
			}
			if got.Text != tt.wantText {
				t.Errorf("Format(%s) = %q, want %q", tt.value, got.Text, tt.wantText)
			}
			if got.Unit.Suffix != tt.wantUnit {
				t.Errorf("Format(%s) unit = %q, want %q", tt.value, got.Unit.Suffix, tt.wantUnit)
			}
		})
	}
}

func TestCompact(t *testing.T) {
	f := Formatter{Units: unit.Frequency, Digits: DefaultDigits}
	tests := []struct {
		value string
		want  string
	}{
		{"1500", "1.5 kHz"},
		{"10000000", "1.00e+01 MHz"},
		{"0", "0 Hz"},
	}
	for _, tt := range tests {
		if got := f.Compact(decimal.MustParse(tt.value)); got != tt.want {
			t.Errorf("Compact(%s) = %q, want %q", tt.value, got, tt.want)
		}
	}

	plain := Formatter{Digits: DefaultDigits}
	if got := plain.Compact(decimal.MustParse("0.0001")); got != "1.00e-04" {
		t.Errorf("Compact(0.0001) = %q", got)
	}
	if got := plain.Compact(MaxValue); got != "" {
		t.Errorf("Compact(MaxValue) = %q, want empty", got)
	}
}

func TestBounds(t *testing.T) {
	b := NewBounds(decimal.MustNew(10, 0), decimal.MustNew(5, 0))
	if b.Max.Cmp(b.Min) != 0 {
		t.Errorf("NewBounds did not raise max: %+v", b)
	}

	b = NewBounds(decimal.MustNew(1, 0), decimal.MustNew(5, 0))
	if !b.PositiveMin() || b.NegativeMax() {
		t.Errorf("PositiveMin/NegativeMax wrong for [1, 5]")
	}
	if got := b.Clamp(decimal.MustNew(9, 0)); got.Cmp(b.Max) != 0 {
		t.Errorf("Clamp(9) = %s", got)
	}
	if b.Contains(decimal.Zero) {
		t.Error("Contains(0) should be false")
	}

	u := Unbounded()
	if !u.Contains(decimal.MustParse("-123456789.123")) {
		t.Error("Unbounded should contain ordinary values")
	}
	if !IsLimit(u.Max) || !IsLimit(u.Min) {
		t.Error("Unbounded limits should be sentinels")
	}
}
