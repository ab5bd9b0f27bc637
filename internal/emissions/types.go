// Package emissions computes CO2-equivalent emissions from activity data.
//
// A Calculator holds a registry of emission factors, validates each
// CalculationInput, converts the activity amount into the factor's unit,
// applies scope/category adjustment rules and attaches an uncertainty band.
// Calculate never returns an error: every failure becomes a CalculationResult
// with StatusError, so batches over many inputs cannot be aborted by one record.
package emissions

import (
	"fmt"
	"time"
)

// Scope is a GHG Protocol emission scope.
type Scope string

// GHG Protocol scopes.
const (
	Scope1 Scope = "scope_1"
	Scope2 Scope = "scope_2"
	Scope3 Scope = "scope_3"
)

// Scopes lists every scope in reporting order.
func Scopes() []Scope {
	return []Scope{Scope1, Scope2, Scope3}
}

// IsValid reports whether s is a known scope.
func (s Scope) IsValid() bool {
	switch s {
	case Scope1, Scope2, Scope3:
		return true
	default:
		return false
	}
}

// Category is an emission source category.
type Category string

// Emission categories.
const (
	CategoryStationaryCombustion     Category = "stationary_combustion"
	CategoryMobileCombustion         Category = "mobile_combustion"
	CategoryProcessEmissions         Category = "process_emissions"
	CategoryFugitiveEmissions        Category = "fugitive_emissions"
	CategoryPurchasedElectricity     Category = "purchased_electricity"
	CategoryPurchasedSteam           Category = "purchased_steam"
	CategoryPurchasedHeating         Category = "purchased_heating"
	CategoryPurchasedCooling         Category = "purchased_cooling"
	CategoryBusinessTravel           Category = "business_travel"
	CategoryEmployeeCommuting        Category = "employee_commuting"
	CategoryWasteGenerated           Category = "waste_generated"
	CategoryUpstreamTransportation   Category = "upstream_transportation"
	CategoryDownstreamTransportation Category = "downstream_transportation"
)

// Categories lists every known category.
func Categories() []Category {
	return []Category{
		CategoryStationaryCombustion,
		CategoryMobileCombustion,
		CategoryProcessEmissions,
		CategoryFugitiveEmissions,
		CategoryPurchasedElectricity,
		CategoryPurchasedSteam,
		CategoryPurchasedHeating,
		CategoryPurchasedCooling,
		CategoryBusinessTravel,
		CategoryEmployeeCommuting,
		CategoryWasteGenerated,
		CategoryUpstreamTransportation,
		CategoryDownstreamTransportation,
	}
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Status is the lifecycle state of a CalculationResult.
type Status string

// Calculation statuses.
const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Metadata keys read by the scope 2 adjustment.
const (
	MetadataCalculationMethod   = "calculationMethod"
	MetadataRenewablePercentage = "renewablePercentage"
)

// Scope 2 accounting methods.
const (
	MethodLocationBased = "location_based"
	MethodMarketBased   = "market_based"
)

// EmissionFactor is an immutable reference record: kg CO2e emitted per Unit of activity.
type EmissionFactor struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Category    Category `json:"category" yaml:"category" validate:"required,emission_category"`
	Subcategory string   `json:"subcategory" yaml:"subcategory"`
	Factor      float64  `json:"factor" yaml:"factor" validate:"gt=0"`
	Unit        string   `json:"unit" yaml:"unit" validate:"required"`
	Source      string   `json:"source" yaml:"source"`
	Region      string   `json:"region,omitempty" yaml:"region,omitempty"`
	Year        int      `json:"year,omitempty" yaml:"year,omitempty" validate:"omitempty,gte=1900,lte=2200"`
	IsActive    bool     `json:"isActive" yaml:"isActive"`
}

// ActivityData is the measured quantity behind one calculation.
// StartDate <= EndDate is the caller's responsibility.
type ActivityData struct {
	Amount      float64   `json:"amount" yaml:"amount" validate:"gt=0"`
	Unit        string    `json:"unit" yaml:"unit" validate:"required"`
	StartDate   time.Time `json:"startDate" yaml:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" yaml:"endDate" validate:"required"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// CalculationInput is one emission calculation request. At least one of
// EmissionFactorID or CustomEmissionFactor must be set; when both are present
// the registry factor wins.
type CalculationInput struct {
	Scope                Scope          `json:"scope" yaml:"scope" validate:"required,scope"`
	Category             Category       `json:"category" yaml:"category" validate:"required,emission_category"`
	Subcategory          string         `json:"subcategory" yaml:"subcategory" validate:"required"`
	ActivityData         ActivityData   `json:"activityData" yaml:"activityData"`
	EmissionFactorID     string         `json:"emissionFactorId,omitempty" yaml:"emissionFactorId,omitempty" validate:"required_without=CustomEmissionFactor"`
	CustomEmissionFactor *float64       `json:"customEmissionFactor,omitempty" yaml:"customEmissionFactor,omitempty" validate:"omitempty,gt=0"`
	Metadata             map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// UncertaintyRange is the min/max band around a calculated value.
type UncertaintyRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CalculationResult is the outcome of one calculation. It is never mutated
// after Calculate returns.
type CalculationResult struct {
	ID                  string            `json:"id"`
	Input               CalculationInput  `json:"input"`
	EmissionFactor      *EmissionFactor   `json:"emissionFactor,omitempty"`
	CalculatedEmissions float64           `json:"calculatedEmissions"`
	CalculationMethod   string            `json:"calculationMethod"`
	UncertaintyRange    *UncertaintyRange `json:"uncertaintyRange,omitempty"`
	CalculatedAt        time.Time         `json:"calculatedAt"`
	Status              Status            `json:"status"`
	Errors              []string          `json:"errors,omitempty"`
}

// Failed reports whether the result carries StatusError.
func (r CalculationResult) Failed() bool {
	return r.Status == StatusError
}

// provenance describes how a completed result was produced.
func provenance(input CalculationInput, standard bool) string {
	kind := "custom"
	if standard {
		kind = "standard"
	}
	return fmt.Sprintf("%s - %s calculation using %s emission factor", input.Scope, input.Category, kind)
}
