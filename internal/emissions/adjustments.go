package emissions

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// AdjustmentFunc adjusts a running emissions value for one input.
type AdjustmentFunc func(emissions float64, input *CalculationInput) (float64, error)

// AdjustmentTable dispatches adjustment rules by scope, then by category.
// A category rule takes precedence over the scope default; inputs matching
// neither pass through unchanged. The zero value passes everything through.
type AdjustmentTable struct {
	byCategory   map[Scope]map[Category]AdjustmentFunc
	scopeDefault map[Scope]AdjustmentFunc
}

// DefaultAdjustments returns the standard rule set.
//
// Scope 1 combustion, process and fugitive categories and scope 3 travel and
// commuting are registered as identity hooks. Scope 2 applies the
// location/market-based method to every category.
func DefaultAdjustments() *AdjustmentTable {
	t := &AdjustmentTable{}
	for _, cat := range []Category{
		CategoryStationaryCombustion,
		CategoryMobileCombustion,
		CategoryProcessEmissions,
		CategoryFugitiveEmissions,
	} {
		t.Register(Scope1, cat, identityAdjustment)
	}
	t.RegisterScope(Scope2, scope2MethodAdjustment)
	t.Register(Scope3, CategoryBusinessTravel, identityAdjustment)
	t.Register(Scope3, CategoryEmployeeCommuting, identityAdjustment)
	return t
}

// Register installs fn for one scope/category pair, replacing any previous rule.
func (t *AdjustmentTable) Register(scope Scope, category Category, fn AdjustmentFunc) {
	if t.byCategory == nil {
		t.byCategory = make(map[Scope]map[Category]AdjustmentFunc)
	}
	if t.byCategory[scope] == nil {
		t.byCategory[scope] = make(map[Category]AdjustmentFunc)
	}
	t.byCategory[scope][category] = fn
}

// RegisterScope installs fn for every category of scope without its own rule.
func (t *AdjustmentTable) RegisterScope(scope Scope, fn AdjustmentFunc) {
	if t.scopeDefault == nil {
		t.scopeDefault = make(map[Scope]AdjustmentFunc)
	}
	t.scopeDefault[scope] = fn
}

// Apply runs the rule matching input and returns the adjusted value.
func (t *AdjustmentTable) Apply(emissions float64, input *CalculationInput) (float64, error) {
	if fn := t.lookup(input.Scope, input.Category); fn != nil {
		return fn(emissions, input)
	}
	return emissions, nil
}

func (t *AdjustmentTable) lookup(scope Scope, category Category) AdjustmentFunc {
	if t == nil {
		return nil
	}
	if fn, ok := t.byCategory[scope][category]; ok {
		return fn
	}
	return t.scopeDefault[scope]
}

// clone returns a copy that can be extended without affecting t.
func (t *AdjustmentTable) clone() *AdjustmentTable {
	out := &AdjustmentTable{}
	if t == nil {
		return out
	}
	for scope, rules := range t.byCategory {
		for cat, fn := range rules {
			out.Register(scope, cat, fn)
		}
	}
	for scope, fn := range t.scopeDefault {
		out.RegisterScope(scope, fn)
	}
	return out
}

func identityAdjustment(emissions float64, _ *CalculationInput) (float64, error) {
	return emissions, nil
}

// scope2MethodAdjustment applies market-based renewable reductions.
// Location-based (the default) passes through.
func scope2MethodAdjustment(emissions float64, input *CalculationInput) (float64, error) {
	method, _ := input.Metadata[MetadataCalculationMethod].(string)
	if method != MethodMarketBased {
		return emissions, nil
	}
	pct, err := renewablePercentage(input.Metadata)
	if err != nil {
		return 0, err
	}
	return emissions * (1 - pct/100), nil
}

// renewablePercentage reads the renewable share from metadata, defaulting to 0.
// Numbers decoded from JSON, YAML or set in Go code are all accepted.
func renewablePercentage(md map[string]any) (float64, error) {
	raw, ok := md[MetadataRenewablePercentage]
	if !ok || raw == nil {
		return 0, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("metadata.%s %q is not a number", MetadataRenewablePercentage, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("metadata.%s has unsupported type %T", MetadataRenewablePercentage, raw)
	}
}
