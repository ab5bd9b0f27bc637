package engine

import (
	"time"

	"github.com/rshade/ghgcalc/internal/emissions"
	"github.com/rshade/ghgcalc/internal/greenops"
)

// Report is the full outcome of one batch run.
type Report struct {
	Results       []emissions.CalculationResult
	Summary       emissions.SummaryStatistics
	Equivalencies greenops.EquivalencyOutput
	GeneratedAt   time.Time
}

// NewReport summarizes results. The result slice is kept as given.
func NewReport(results []emissions.CalculationResult, generatedAt time.Time) Report {
	summary := emissions.GetSummaryStatistics(results)
	return Report{
		Results:       results,
		Summary:       summary,
		Equivalencies: greenops.ForSummary(summary),
		GeneratedAt:   generatedAt,
	}
}

// ResultError identifies one failed result by its position in the batch.
type ResultError struct {
	Index  int      `json:"index"`
	ID     string   `json:"id"`
	Errors []string `json:"errors"`
}

// Failures lists every error result in input order.
func (r Report) Failures() []ResultError {
	out := []ResultError{}
	for i, res := range r.Results {
		if res.Failed() {
			out = append(out, ResultError{Index: i, ID: res.ID, Errors: res.Errors})
		}
	}
	return out
}
