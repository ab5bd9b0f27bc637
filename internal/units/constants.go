package units

// Category is a physical quantity category. Units convert only within one category.
type Category string

// Known unit categories.
const (
	CategoryEnergy   Category = "energy"
	CategoryVolume   Category = "volume"
	CategoryMass     Category = "mass"
	CategoryDistance Category = "distance"
)

// roundingDigits is the number of decimal digits a converted value is rounded to.
const roundingDigits = 10

// unitDef binds a unit symbol to its multiplier into the category base unit.
type unitDef struct {
	symbol string
	toBase float64
}

// standardTable lists every supported unit per category in display order.
// Base units: kWh (energy), L (volume), kg (mass), km (distance).
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var standardTable = []struct {
	category Category
	units    []unitDef
}{
	{
		category: CategoryEnergy,
		units: []unitDef{
			{"kWh", 1},
			{"MWh", 1000},
			{"GWh", 1_000_000},
			{"MJ", 0.277778},
			{"GJ", 277.778},
			{"therm", 29.3071},
			{"BTU", 0.000293071},
			{"MMBtu", 293.071},
		},
	},
	{
		category: CategoryVolume,
		units: []unitDef{
			{"L", 1},
			{"mL", 0.001},
			{"m3", 1000},
			{"gal", 3.78541},
			{"ft3", 28.3168},
		},
	},
	{
		category: CategoryMass,
		units: []unitDef{
			{"kg", 1},
			{"g", 0.001},
			{"t", 1000},
			{"lb", 0.453592},
			{"short_ton", 907.185},
		},
	},
	{
		category: CategoryDistance,
		units: []unitDef{
			{"km", 1},
			{"m", 0.001},
			{"miles", 1.60934},
			{"nmi", 1.852},
		},
	},
}
