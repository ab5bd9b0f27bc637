package emissions

// SummaryStatistics aggregates a set of results. Only completed results
// contribute to totals; negative (avoided) emissions reduce them.
type SummaryStatistics struct {
	TotalEmissions   float64              `json:"totalEmissions"`
	Scope1Total      float64              `json:"scope1Total"`
	Scope2Total      float64              `json:"scope2Total"`
	Scope3Total      float64              `json:"scope3Total"`
	ByCategory       map[Category]float64 `json:"byCategory"`
	CalculationCount int                  `json:"calculationCount"`
	ErrorCount       int                  `json:"errorCount"`
}

// ScopeTotal returns the subtotal for scope.
func (s SummaryStatistics) ScopeTotal(scope Scope) float64 {
	switch scope {
	case Scope1:
		return s.Scope1Total
	case Scope2:
		return s.Scope2Total
	case Scope3:
		return s.Scope3Total
	default:
		return 0
	}
}

// GetSummaryStatistics sums completed results per scope and category and
// counts error results. Pending results are ignored.
func GetSummaryStatistics(results []CalculationResult) SummaryStatistics {
	s := SummaryStatistics{ByCategory: make(map[Category]float64)}

	for _, r := range results {
		switch r.Status {
		case StatusError:
			s.ErrorCount++
			continue
		case StatusCompleted:
		default:
			continue
		}

		e := r.CalculatedEmissions
		s.CalculationCount++
		s.TotalEmissions += e
		s.ByCategory[r.Input.Category] += e

		switch r.Input.Scope {
		case Scope1:
			s.Scope1Total += e
		case Scope2:
			s.Scope2Total += e
		case Scope3:
			s.Scope3Total += e
		}
	}

	return s
}
