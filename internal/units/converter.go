// Package units converts activity quantities between units of the same
// physical category (energy, volume, mass, distance).
//
// Every unit belongs to exactly one category and carries a multiplier into
// that category's base unit. Conversions are deterministic and side-effect free;
// a Converter is immutable after construction and safe for concurrent use.
package units

import (
	"fmt"
	"math"
)

// UnitConversion describes the multiplicative factor between two units.
// A value in FromUnit multiplied by Factor yields the value in ToUnit.
type UnitConversion struct {
	FromUnit string  `json:"from_unit"`
	ToUnit   string  `json:"to_unit"`
	Factor   float64 `json:"factor"`
}

// Converter resolves units to categories and converts values between them.
type Converter struct {
	categories []Category
	byCategory map[Category][]unitDef
	factors    map[string]float64
	unitIndex  map[string]Category
}

// NewConverter returns a Converter loaded with the standard unit table.
func NewConverter() *Converter {
	c := &Converter{
		byCategory: make(map[Category][]unitDef, len(standardTable)),
		factors:    make(map[string]float64),
		unitIndex:  make(map[string]Category),
	}
	for _, entry := range standardTable {
		c.categories = append(c.categories, entry.category)
		c.byCategory[entry.category] = entry.units
		for _, u := range entry.units {
			c.factors[u.symbol] = u.toBase
			c.unitIndex[u.symbol] = entry.category
		}
	}
	return c
}

// Categories returns the known categories in table order.
func (c *Converter) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// GetUnitCategory returns the category a unit belongs to.
// The second return value is false when the unit is not recognized.
func (c *Converter) GetUnitCategory(unit string) (Category, bool) {
	cat, ok := c.unitIndex[unit]
	return cat, ok
}

// AreUnitsCompatible reports whether both units resolve to the same known category.
// Unknown units are never compatible, not even with themselves.
func (c *Converter) AreUnitsCompatible(fromUnit, toUnit string) bool {
	fromCat, ok := c.unitIndex[fromUnit]
	if !ok {
		return false
	}
	toCat, ok := c.unitIndex[toUnit]
	if !ok {
		return false
	}
	return fromCat == toCat
}

// ConvertUnit converts value from fromUnit to toUnit.
//
// Textually identical units return value unchanged without any table lookup, so
// units outside the table are accepted as long as no conversion is needed.
// Otherwise the units must be compatible or ErrIncompatibleUnits is returned.
// The result is rounded to 10 decimal digits; intermediate steps are not rounded.
func (c *Converter) ConvertUnit(value float64, fromUnit, toUnit string) (float64, error) {
	if fromUnit == toUnit {
		return value, nil
	}

	ratio, err := c.ratio(fromUnit, toUnit)
	if err != nil {
		return 0, err
	}

	return roundDigits(value*ratio, roundingDigits), nil
}

// GetConversionFactor returns the multiplicative factor from fromUnit to toUnit.
// Identical units return exactly 1.
func (c *Converter) GetConversionFactor(fromUnit, toUnit string) (float64, error) {
	if fromUnit == toUnit {
		return 1, nil
	}
	return c.ratio(fromUnit, toUnit)
}

// Conversion returns the UnitConversion record for a unit pair.
func (c *Converter) Conversion(fromUnit, toUnit string) (UnitConversion, error) {
	factor, err := c.GetConversionFactor(fromUnit, toUnit)
	if err != nil {
		return UnitConversion{}, err
	}
	return UnitConversion{FromUnit: fromUnit, ToUnit: toUnit, Factor: factor}, nil
}

// UnitsInCategory lists the units of a category in table order.
// Unknown categories yield an empty list.
func (c *Converter) UnitsInCategory(category Category) []string {
	defs := c.byCategory[category]
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.symbol)
	}
	return out
}

// SuggestUnits returns every other unit in the same category as unit.
// Unknown units yield an empty list.
func (c *Converter) SuggestUnits(unit string) []string {
	cat, ok := c.unitIndex[unit]
	if !ok {
		return []string{}
	}
	peers := c.byCategory[cat]
	out := make([]string, 0, len(peers)-1)
	for _, d := range peers {
		if d.symbol != unit {
			out = append(out, d.symbol)
		}
	}
	return out
}

func (c *Converter) ratio(fromUnit, toUnit string) (float64, error) {
	if !c.AreUnitsCompatible(fromUnit, toUnit) {
		return 0, incompatibleError(c, fromUnit, toUnit)
	}
	return c.factors[fromUnit] / c.factors[toUnit], nil
}

func incompatibleError(c *Converter, fromUnit, toUnit string) error {
	fromCat, fromOK := c.unitIndex[fromUnit]
	toCat, toOK := c.unitIndex[toUnit]
	switch {
	case !fromOK:
		return fmt.Errorf("%w: cannot convert from %s to %s (%w: %s)",
			ErrIncompatibleUnits, fromUnit, toUnit, ErrUnknownUnit, fromUnit)
	case !toOK:
		return fmt.Errorf("%w: cannot convert from %s to %s (%w: %s)",
			ErrIncompatibleUnits, fromUnit, toUnit, ErrUnknownUnit, toUnit)
	default:
		return fmt.Errorf("%w: cannot convert from %s (%s) to %s (%s)",
			ErrIncompatibleUnits, fromUnit, fromCat, toUnit, toCat)
	}
}

// roundDigits rounds v to the given number of decimal digits.
// Values too large to scale are returned unchanged.
func roundDigits(v float64, digits int) float64 {
	const base = 10
	scale := math.Pow(base, float64(digits))
	scaled := v * scale
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return v
	}
	return math.Round(scaled) / scale
}
