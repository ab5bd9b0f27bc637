package greenops

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders numbers with the grouping and decimal separators of a locale.
type Formatter struct {
	printer *message.Printer
	tag     language.Tag
}

// NewFormatter returns a Formatter for a BCP 47 locale such as "en-US" or
// "de". Empty or unparsable locales fall back to English.
func NewFormatter(locale string) *Formatter {
	tag := language.English
	if locale != "" {
		if t, err := language.Parse(locale); err == nil {
			tag = t
		}
	}
	return &Formatter{printer: message.NewPrinter(tag), tag: tag}
}

// Locale returns the tag the formatter was built for.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Number formats an integer with thousand separators.
func (f *Formatter) Number(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Float formats v rounded to precision decimals with thousand separators.
// A negative precision is treated as zero.
func (f *Formatter) Float(v float64, precision int) string {
	if precision <= 0 {
		return f.Number(int64(math.Round(v)))
	}
	return f.printer.Sprintf(fmt.Sprintf("%%.%df", precision), v)
}

// Emissions formats a kg CO2e quantity, switching to tonnes at TonneThresholdKg.
func (f *Formatter) Emissions(kg float64, precision int) string {
	if math.Abs(kg) >= TonneThresholdKg {
		return f.Float(kg/1000, precision) + " t CO2e"
	}
	return f.Float(kg, precision) + " kg CO2e"
}

//nolint:gochecknoglobals // Default English formatter for the package-level helpers.
var english = NewFormatter("en")

// FormatNumber formats an integer with English thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return english.Number(n)
}

// FormatFloat formats a float with English separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	return english.Float(f, precision)
}

// FormatLarge abbreviates values of a million or more ("~1.5 billion") and
// formats smaller ones as grouped integers.
func FormatLarge(n float64) string {
	switch {
	case n >= BillionThreshold:
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	case n >= LargeNumberThreshold:
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	default:
		return FormatNumber(int64(math.Round(n)))
	}
}
