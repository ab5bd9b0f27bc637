package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rshade/ghgcalc/internal/emissions"
	"github.com/rshade/ghgcalc/internal/greenops"
)

// Column widths for the results table.
const (
	colWidthCategory    = 26
	colWidthSubcategory = 20
	colWidthFactor      = 24
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// truncateMinLen is the length below which no ellipsis is added.
const truncateMinLen = 3

// RenderOptions controls number formatting.
type RenderOptions struct {
	Precision int
	Formatter *greenops.Formatter
}

// NumberFormatter returns the configured formatter, or an English one.
func (o RenderOptions) NumberFormatter() *greenops.Formatter {
	if o.Formatter == nil {
		return greenops.NewFormatter("")
	}
	return o.Formatter
}

// truncate shortens s to at most maxLen runes, never splitting a character.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= truncateMinLen {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// factorLabel names the factor behind a result.
func factorLabel(res emissions.CalculationResult) string {
	switch {
	case res.EmissionFactor != nil:
		return res.EmissionFactor.ID
	case res.Input.EmissionFactorID != "":
		return res.Input.EmissionFactorID
	case res.Input.CustomEmissionFactor != nil:
		return "custom:" + strconv.FormatFloat(*res.Input.CustomEmissionFactor, 'g', -1, 64)
	default:
		return "-"
	}
}

// RenderReportAsTable writes one row per result followed by scope totals and
// the error list.
func RenderReportAsTable(w io.Writer, report Report, opts RenderOptions) error {
	f := opts.NumberFormatter()
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "#\tSCOPE\tCATEGORY\tSUBCATEGORY\tACTIVITY\tFACTOR\tKG CO2E\tSTATUS\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "-\t-----\t--------\t-----------\t--------\t------\t-------\t------\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for i, res := range report.Results {
		emissionsCol := f.Float(res.CalculatedEmissions, opts.Precision)
		if res.Failed() {
			emissionsCol = "ERR"
		}
		activity := f.Float(res.Input.ActivityData.Amount, opts.Precision) + " " + res.Input.ActivityData.Unit
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			res.Input.Scope,
			truncate(string(res.Input.Category), colWidthCategory),
			truncate(res.Input.Subcategory, colWidthSubcategory),
			activity,
			truncate(factorLabel(res), colWidthFactor),
			emissionsCol,
			res.Status,
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if err := renderTableFooter(tw, report, opts); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return renderFailures(w, report)
}

func renderTableFooter(tw *tabwriter.Writer, report Report, opts RenderOptions) error {
	f := opts.NumberFormatter()
	s := report.Summary

	if _, err := fmt.Fprintf(tw, "\t\t\t\t\t\t\t\n"); err != nil {
		return err
	}
	for _, scope := range emissions.Scopes() {
		if _, err := fmt.Fprintf(tw, "\t%s\t\t\t\tsubtotal\t%s\t\n",
			scope, f.Float(s.ScopeTotal(scope), opts.Precision)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(tw, "TOTAL\t\t%d calculated, %d failed\t\t\t\t%s\t\n",
		s.CalculationCount, s.ErrorCount, f.Float(s.TotalEmissions, opts.Precision)); err != nil {
		return err
	}
	return nil
}

func renderFailures(w io.Writer, report Report) error {
	failures := report.Failures()
	if len(failures) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\nErrors:\n"); err != nil {
		return err
	}
	for _, fe := range failures {
		if _, err := fmt.Fprintf(w, "  #%d: %s\n", fe.Index+1, strings.Join(fe.Errors, "; ")); err != nil {
			return err
		}
	}
	return nil
}

// ReportMetadata describes the run.
type ReportMetadata struct {
	GeneratedAt time.Time `json:"generatedAt"`
	InputCount  int       `json:"inputCount"`
}

// ReportJSONOutput is the top-level JSON document.
type ReportJSONOutput struct {
	Metadata      ReportMetadata                `json:"metadata"`
	Results       []emissions.CalculationResult `json:"results"`
	Summary       emissions.SummaryStatistics   `json:"summary"`
	Equivalencies *greenops.EquivalencyOutput   `json:"equivalencies,omitempty"`
	Errors        []ResultError                 `json:"errors"`
}

// RenderReportAsJSON writes the report as one indented JSON document.
func RenderReportAsJSON(w io.Writer, report Report) error {
	results := report.Results
	if results == nil {
		results = []emissions.CalculationResult{}
	}

	output := ReportJSONOutput{
		Metadata: ReportMetadata{
			GeneratedAt: report.GeneratedAt,
			InputCount:  len(report.Results),
		},
		Results: results,
		Summary: report.Summary,
		Errors:  report.Failures(),
	}
	if !report.Equivalencies.IsEmpty {
		eq := report.Equivalencies
		output.Equivalencies = &eq
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// RenderReportAsNDJSON writes one JSON line per result, without a summary.
func RenderReportAsNDJSON(w io.Writer, report Report) error {
	for _, res := range report.Results {
		data, marshalErr := json.Marshal(res)
		if marshalErr != nil {
			return fmt.Errorf("marshaling result: %w", marshalErr)
		}
		if _, writeErr := fmt.Fprintf(w, "%s\n", data); writeErr != nil {
			return fmt.Errorf("writing NDJSON line: %w", writeErr)
		}
	}
	return nil
}
