package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{name: "small", n: 123, want: "123"},
		{name: "four digits", n: 1234, want: "1,234"},
		{name: "millions", n: 1234567, want: "1,234,567"},
		{name: "zero", n: 0, want: "0"},
		{name: "negative", n: -1234, want: "-1,234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.n))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		f         float64
		precision int
		want      string
	}{
		{name: "two decimals", f: 1234.567, precision: 2, want: "1,234.57"},
		{name: "zero precision rounds", f: 1234.5, precision: 0, want: "1,235"},
		{name: "negative precision", f: 9.4, precision: -1, want: "9"},
		{name: "small", f: 0.5, precision: 1, want: "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.f, tt.precision))
		})
	}
}

func TestFormatLarge(t *testing.T) {
	assert.Equal(t, "999,999", FormatLarge(999_999))
	assert.Equal(t, "~1.5 million", FormatLarge(1_500_000))
	assert.Equal(t, "~1.5 billion", FormatLarge(1_500_000_000))
}

func TestFormatter_Locale(t *testing.T) {
	de := NewFormatter("de")
	assert.Equal(t, language.German, de.Locale())
	assert.Equal(t, "18.248", de.Number(18248))

	assert.Equal(t, language.English, NewFormatter("").Locale())
	assert.Equal(t, language.English, NewFormatter("not a locale!").Locale())
}

func TestFormatter_Emissions(t *testing.T) {
	f := NewFormatter("en")
	assert.Equal(t, "80.00 kg CO2e", f.Emissions(80, 2))
	assert.Equal(t, "12.50 t CO2e", f.Emissions(12500, 2))
	assert.Equal(t, "-20.0 kg CO2e", f.Emissions(-20, 1))
}
