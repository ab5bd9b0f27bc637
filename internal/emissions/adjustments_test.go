package emissions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustmentTable_Dispatch(t *testing.T) {
	double := func(e float64, _ *CalculationInput) (float64, error) { return e * 2, nil }
	table := DefaultAdjustments()
	table.Register(Scope2, CategoryPurchasedSteam, double)

	tests := []struct {
		name  string
		input CalculationInput
		want  float64
	}{
		{
			name:  "CategoryRuleBeatsScopeDefault",
			input: CalculationInput{Scope: Scope2, Category: CategoryPurchasedSteam},
			want:  20,
		},
		{
			name: "ScopeDefault",
			input: CalculationInput{
				Scope: Scope2, Category: CategoryPurchasedCooling,
				Metadata: map[string]any{
					MetadataCalculationMethod: MethodMarketBased, MetadataRenewablePercentage: 10.0,
				},
			},
			want: 9,
		},
		{
			name:  "Identity",
			input: CalculationInput{Scope: Scope1, Category: CategoryFugitiveEmissions},
			want:  10,
		},
		{
			name:  "Unregistered",
			input: CalculationInput{Scope: Scope3, Category: CategoryUpstreamTransportation},
			want:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Apply(10, &tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAdjustmentTable_ZeroValueAndClone(t *testing.T) {
	var zero *AdjustmentTable
	got, err := zero.Apply(5, &CalculationInput{Scope: Scope2})
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	orig := DefaultAdjustments()
	cp := orig.clone()
	cp.RegisterScope(Scope1, func(float64, *CalculationInput) (float64, error) { return 0, nil })

	in := &CalculationInput{Scope: Scope1, Category: CategoryWasteGenerated}
	v, err := orig.Apply(7, in)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
	v, err = cp.Apply(7, in)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestRenewablePercentage(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    float64
		wantErr bool
	}{
		{name: "Float64", raw: 40.5, want: 40.5},
		{name: "Float32", raw: float32(20), want: 20},
		{name: "Int", raw: 30, want: 30},
		{name: "Int64", raw: int64(15), want: 15},
		{name: "Uint64", raw: uint64(5), want: 5},
		{name: "JSONNumber", raw: json.Number("12.5"), want: 12.5},
		{name: "String", raw: "60", want: 60},
		{name: "Nil", raw: nil, want: 0},
		{name: "BadString", raw: "lots", wantErr: true},
		{name: "BadType", raw: []int{1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renewablePercentage(map[string]any{MetadataRenewablePercentage: tt.raw})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	got, err := renewablePercentage(nil)
	require.NoError(t, err)
	assert.Zero(t, got)
}
