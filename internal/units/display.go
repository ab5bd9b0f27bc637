package units

import "golang.org/x/text/language"

// supportedLanguages is the matcher order for display names. English must stay first
// because the matcher falls back to index 0.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var supportedLanguages = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
}

//nolint:gochecknoglobals // Matcher is immutable and safe for concurrent use.
var displayMatcher = language.NewMatcher(supportedLanguages)

// displayNames holds localized unit names, indexed like supportedLanguages.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var displayNames = []map[string]string{
	{
		"kWh": "kilowatt-hours", "MWh": "megawatt-hours", "GWh": "gigawatt-hours",
		"MJ": "megajoules", "GJ": "gigajoules", "therm": "therms",
		"BTU": "British thermal units", "MMBtu": "million British thermal units",
		"L": "liters", "mL": "milliliters", "m3": "cubic meters", "gal": "US gallons", "ft3": "cubic feet",
		"kg": "kilograms", "g": "grams", "t": "metric tons", "lb": "pounds", "short_ton": "short tons",
		"km": "kilometers", "m": "meters", "miles": "miles", "nmi": "nautical miles",
	},
	{
		"kWh": "Kilowattstunden", "MWh": "Megawattstunden", "GWh": "Gigawattstunden",
		"MJ": "Megajoule", "GJ": "Gigajoule", "therm": "Therm",
		"BTU": "British Thermal Units", "MMBtu": "Millionen British Thermal Units",
		"L": "Liter", "mL": "Milliliter", "m3": "Kubikmeter", "gal": "US-Gallonen", "ft3": "Kubikfuß",
		"kg": "Kilogramm", "g": "Gramm", "t": "Tonnen", "lb": "Pfund", "short_ton": "amerikanische Tonnen",
		"km": "Kilometer", "m": "Meter", "miles": "Meilen", "nmi": "Seemeilen",
	},
	{
		"kWh": "kilowattheures", "MWh": "mégawattheures", "GWh": "gigawattheures",
		"MJ": "mégajoules", "GJ": "gigajoules", "therm": "thermies",
		"BTU": "unités thermiques britanniques", "MMBtu": "millions d'unités thermiques britanniques",
		"L": "litres", "mL": "millilitres", "m3": "mètres cubes", "gal": "gallons US", "ft3": "pieds cubes",
		"kg": "kilogrammes", "g": "grammes", "t": "tonnes", "lb": "livres", "short_ton": "tonnes courtes",
		"km": "kilomètres", "m": "mètres", "miles": "miles", "nmi": "milles marins",
	},
	{
		"kWh": "kilovatios hora", "MWh": "megavatios hora", "GWh": "gigavatios hora",
		"MJ": "megajulios", "GJ": "gigajulios", "therm": "termias",
		"BTU": "unidades térmicas británicas", "MMBtu": "millones de unidades térmicas británicas",
		"L": "litros", "mL": "mililitros", "m3": "metros cúbicos", "gal": "galones estadounidenses", "ft3": "pies cúbicos",
		"kg": "kilogramos", "g": "gramos", "t": "toneladas", "lb": "libras", "short_ton": "toneladas cortas",
		"km": "kilómetros", "m": "metros", "miles": "millas", "nmi": "millas náuticas",
	},
}

// DisplayName returns a localized, human-readable name for unit.
// Unsupported languages fall back to English; unknown units are returned as-is.
func DisplayName(unit string, tag language.Tag) string {
	_, idx, _ := displayMatcher.Match(tag)
	if name, ok := displayNames[idx][unit]; ok {
		return name
	}
	return unit
}

// DisplayNameForLocale is DisplayName with a BCP 47 locale string such as "de-DE".
// Unparseable locales fall back to English.
func DisplayNameForLocale(unit, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return DisplayName(unit, tag)
}
