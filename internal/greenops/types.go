// Package greenops turns emission totals (kg CO2e) into relatable real-world
// equivalencies such as miles driven or smartphones charged, and formats
// emission quantities for display.
package greenops

import "fmt"

// EquivalencyType is a category of equivalency.
type EquivalencyType int

// Equivalency types in display priority order.
const (
	EquivalencyMilesDriven EquivalencyType = iota
	EquivalencySmartphonesCharged
	EquivalencyTreeSeedlings
	EquivalencyHomeDays
)

// String returns the type name.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// MarshalText encodes the type by name.
func (e EquivalencyType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// CarbonInput is an emission quantity in any mass unit known to the unit
// converter, optionally suffixed with "CO2e" (kgCO2e, tCO2e).
type CarbonInput struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// EquivalencyResult is one calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds every equivalency for one total.
type EquivalencyOutput struct {
	InputKg float64             `json:"input_kg"`
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose line, e.g.
	// "Equivalent to driving ~781 miles or charging ~18,248 smartphones".
	DisplayText string `json:"display_text"`

	// CompactText is the short form, e.g. "(≈ 781 mi, 18,248 phones)".
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}
