package greenops

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghgcalc/internal/emissions"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		input       CarbonInput
		wantMiles   float64
		wantPhones  float64
		wantIsEmpty bool
		errType     error
	}{
		{name: "150kg reference", input: CarbonInput{Value: 150, Unit: "kg"}, wantMiles: 781.25, wantPhones: 18248.18},
		{name: "grams", input: CarbonInput{Value: 150000, Unit: "g"}, wantMiles: 781.25, wantPhones: 18248.18},
		{name: "tonnes with suffix", input: CarbonInput{Value: 0.15, Unit: "tCO2e"}, wantMiles: 781.25, wantPhones: 18248.18},
		{name: "kgCO2e mixed case", input: CarbonInput{Value: 150, Unit: "KgCo2e"}, wantMiles: 781.25, wantPhones: 18248.18},
		{name: "at threshold", input: CarbonInput{Value: 1, Unit: "kg"}, wantMiles: 5.208333, wantPhones: 121.65},
		{name: "below threshold", input: CarbonInput{Value: 0.5, Unit: "kg"}, wantIsEmpty: true},
		{name: "zero", input: CarbonInput{Value: 0, Unit: "kg"}, wantIsEmpty: true},
		{name: "negative", input: CarbonInput{Value: -100, Unit: "kg"}, wantIsEmpty: true, errType: ErrNegativeValue},
		{name: "energy unit", input: CarbonInput{Value: 100, Unit: "kWh"}, wantIsEmpty: true, errType: ErrInvalidUnit},
		{name: "unknown unit", input: CarbonInput{Value: 100, Unit: "stone"}, wantIsEmpty: true, errType: ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.input)
			if tt.errType != nil {
				assert.ErrorIs(t, err, tt.errType)
				assert.True(t, got.IsEmpty)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsEmpty, got.IsEmpty)
			if tt.wantIsEmpty {
				assert.Empty(t, got.Results)
				return
			}
			require.Len(t, got.Results, 4)
			assert.Equal(t, EquivalencyMilesDriven, got.Results[0].Type)
			assert.InEpsilon(t, tt.wantMiles, got.Results[0].Value, 0.01)
			assert.InEpsilon(t, tt.wantPhones, got.Results[1].Value, 0.01)
		})
	}
}

func TestCalculateKg_Text(t *testing.T) {
	got, err := CalculateKg(150)
	require.NoError(t, err)

	assert.Equal(t, "Equivalent to driving ~781 miles or charging ~18,248 smartphones", got.DisplayText)
	assert.Equal(t, "(≈ 781 mi, 18,248 phones)", got.CompactText)
	assert.Equal(t, "tree seedlings grown for 10 years", got.Results[2].Label)
	assert.InDelta(t, 2.5, got.Results[2].Value, 1e-9)
	assert.InDelta(t, 150/EPAHomeDayFactor, got.Results[3].Value, 1e-9)
}

func TestCalculateKg_Large(t *testing.T) {
	got, err := CalculateKg(1_000_000)
	require.NoError(t, err)
	assert.Equal(t, "~5.2 million", got.Results[0].FormattedValue)
	assert.Equal(t, "~121.7 million", got.Results[1].FormattedValue)
}

func TestNormalizeToKg(t *testing.T) {
	kg, err := NormalizeToKg(2, "lb")
	require.NoError(t, err)
	assert.InDelta(t, 0.907184, kg, 1e-9)

	_, err = NormalizeToKg(1e308, "t")
	assert.True(t, errors.Is(err, ErrCalculationOverflow))

	assert.True(t, IsRecognizedUnit("short_ton"))
	assert.True(t, IsRecognizedUnit("gCO2e"))
	assert.False(t, IsRecognizedUnit("L"))
	assert.False(t, IsRecognizedUnit("CO2e"))
}

func TestForSummary(t *testing.T) {
	out := ForSummary(emissions.SummaryStatistics{TotalEmissions: 150})
	assert.False(t, out.IsEmpty)
	assert.InDelta(t, 150.0, out.InputKg, 1e-9)

	assert.True(t, ForSummary(emissions.SummaryStatistics{TotalEmissions: -5}).IsEmpty)
}

func TestEquivalencyType_String(t *testing.T) {
	assert.Equal(t, "MilesDriven", EquivalencyMilesDriven.String())
	assert.Equal(t, "HomeDays", EquivalencyHomeDays.String())
	assert.Equal(t, "EquivalencyType(99)", EquivalencyType(99).String())

	text, err := EquivalencySmartphonesCharged.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "SmartphonesCharged", string(text))
}
