package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSummaryStatistics(t *testing.T) {
	results := []CalculationResult{
		{
			Input:               CalculationInput{Scope: Scope1, Category: CategoryMobileCombustion},
			CalculatedEmissions: 100,
			Status:              StatusCompleted,
		},
		{
			Input:               CalculationInput{Scope: Scope3, Category: CategoryWasteGenerated},
			CalculatedEmissions: -20,
			Status:              StatusCompleted,
		},
		{
			Input:  CalculationInput{Scope: Scope2, Category: CategoryPurchasedElectricity},
			Status: StatusError,
			Errors: []string{"boom"},
		},
		{
			Input:               CalculationInput{Scope: Scope2, Category: CategoryPurchasedElectricity},
			CalculatedEmissions: 999,
			Status:              StatusPending,
		},
	}

	s := GetSummaryStatistics(results)

	assert.InDelta(t, 80.0, s.TotalEmissions, 1e-9)
	assert.Equal(t, 2, s.CalculationCount)
	assert.Equal(t, 1, s.ErrorCount)
	assert.InDelta(t, 100.0, s.Scope1Total, 1e-9)
	assert.Zero(t, s.Scope2Total)
	assert.InDelta(t, -20.0, s.Scope3Total, 1e-9)
	assert.InDelta(t, 100.0, s.ByCategory[CategoryMobileCombustion], 1e-9)
	assert.InDelta(t, -20.0, s.ByCategory[CategoryWasteGenerated], 1e-9)
	assert.NotContains(t, s.ByCategory, CategoryPurchasedElectricity)

	assert.InDelta(t, 100.0, s.ScopeTotal(Scope1), 1e-9)
	assert.InDelta(t, -20.0, s.ScopeTotal(Scope3), 1e-9)
	assert.Zero(t, s.ScopeTotal("scope_4"))
}

func TestGetSummaryStatistics_Empty(t *testing.T) {
	s := GetSummaryStatistics(nil)
	assert.Zero(t, s.TotalEmissions)
	assert.Zero(t, s.CalculationCount)
	assert.Zero(t, s.ErrorCount)
	assert.NotNil(t, s.ByCategory)
}
