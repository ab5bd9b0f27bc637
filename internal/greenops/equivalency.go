package greenops

import (
	"fmt"
	"math"
	"strings"

	"github.com/rshade/ghgcalc/internal/emissions"
	"github.com/rshade/ghgcalc/internal/units"
)

//nolint:gochecknoglobals // Immutable converter shared by NormalizeToKg.
var massConverter = units.NewConverter()

type equivalencyDef struct {
	kind   EquivalencyType
	factor float64
	label  string
}

//nolint:gochecknoglobals // Package-level lookup table, initialized once.
var equivalencyDefs = []equivalencyDef{
	{EquivalencyMilesDriven, EPAMilesDrivenFactor, "miles driven"},
	{EquivalencySmartphonesCharged, EPASmartphoneChargeFactor, "smartphones charged"},
	{EquivalencyTreeSeedlings, EPATreeSeedlingFactor, "tree seedlings grown for 10 years"},
	{EquivalencyHomeDays, EPAHomeDayFactor, "days of home electricity"},
}

// NormalizeToKg converts a mass of CO2e to kilograms. The unit may carry a
// "CO2e" suffix and is matched case-insensitively against the mass units of
// the unit converter.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	sym, ok := massUnit(unit)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}
	kg, err := massConverter.ConvertUnit(value, sym, "kg")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidUnit, err)
	}
	if math.IsInf(kg, 0) {
		return 0, ErrCalculationOverflow
	}
	return kg, nil
}

// IsRecognizedUnit reports whether NormalizeToKg accepts unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := massUnit(unit)
	return ok
}

func massUnit(unit string) (string, bool) {
	trimmed := strings.TrimSpace(unit)
	if i := strings.Index(strings.ToLower(trimmed), "co2e"); i > 0 {
		trimmed = strings.TrimSpace(trimmed[:i])
	}
	for _, sym := range massConverter.UnitsInCategory(units.CategoryMass) {
		if strings.EqualFold(sym, trimmed) {
			return sym, true
		}
	}
	return "", false
}

// Calculate normalizes input to kilograms and computes its equivalencies.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	return CalculateKg(kg)
}

// CalculateKg computes equivalencies for a total already in kg CO2e. Totals
// below MinEquivalencyThresholdKg yield an empty output and no error.
func CalculateKg(kg float64) (EquivalencyOutput, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}
	if kg < 0 {
		return EquivalencyOutput{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	results := make([]EquivalencyResult, 0, len(equivalencyDefs))
	for _, def := range equivalencyDefs {
		v := kg / def.factor
		results = append(results, EquivalencyResult{
			Type:           def.kind,
			Value:          v,
			FormattedValue: formatEquivalencyValue(v),
			Label:          def.label,
		})
	}

	miles, phones := results[0].FormattedValue, results[1].FormattedValue
	return EquivalencyOutput{
		InputKg:     kg,
		Results:     results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones", miles, phones),
		CompactText: fmt.Sprintf("(≈ %s mi, %s phones)", miles, phones),
	}, nil
}

// ForSummary computes equivalencies of the summary's total. A net-negative
// total yields an empty output.
func ForSummary(s emissions.SummaryStatistics) EquivalencyOutput {
	out, err := CalculateKg(s.TotalEmissions)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}
	}
	return out
}

func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
