package ingest

import (
	"context"
	"fmt"

	"github.com/rshade/ghgcalc/internal/emissions"
	"github.com/rshade/ghgcalc/internal/logging"
)

// InputDocument is the on-disk form of a calculation batch. JSON and YAML
// documents use the same camelCase keys:
//
//	inputs:
//	  - scope: scope_1
//	    category: mobile_combustion
//	    subcategory: diesel
//	    activityData: {amount: 120, unit: L, startDate: 2024-01-01, endDate: 2024-01-31}
//	    emissionFactorId: fuel-diesel-mobile
type InputDocument struct {
	Inputs []emissions.CalculationInput `json:"inputs" yaml:"inputs"`
}

// ParseInputs decodes a calculation batch document. Individual inputs are not
// validated here; the calculator reports invalid inputs as error results.
func ParseInputs(data []byte, format Format) ([]emissions.CalculationInput, error) {
	var doc InputDocument
	if err := Decode(data, format, &doc); err != nil {
		return nil, err
	}
	return doc.Inputs, nil
}

// LoadInputs reads a calculation batch document from path.
func LoadInputs(ctx context.Context, path string) ([]emissions.CalculationInput, error) {
	var doc InputDocument
	if err := DecodeFile(ctx, path, &doc); err != nil {
		return nil, err
	}
	if len(doc.Inputs) == 0 {
		return nil, fmt.Errorf("%s: no inputs found", path)
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("path", path).
		Int("input_count", len(doc.Inputs)).
		Msg("calculation inputs loaded")

	return doc.Inputs, nil
}
