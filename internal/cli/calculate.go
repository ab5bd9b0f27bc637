package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/config"
	"github.com/rshade/ghgcalc/internal/emissions"
	"github.com/rshade/ghgcalc/internal/engine"
	"github.com/rshade/ghgcalc/internal/engine/batch"
	"github.com/rshade/ghgcalc/internal/greenops"
	"github.com/rshade/ghgcalc/internal/ingest"
	"github.com/rshade/ghgcalc/internal/logging"
)

// calculateParams holds the calculate command flags.
type calculateParams struct {
	input       string
	inputFormat string
	factors     string
	output      string
	workers     int
	batchSize   int
	strict      bool
}

// NewCalculateCmd creates the calculate command.
func NewCalculateCmd() *cobra.Command {
	var params calculateParams

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate emissions for a file of activity records",
		Long: `Reads a JSON or YAML document with an "inputs" list of calculation inputs,
calculates each one and prints the results with scope totals.

Invalid records do not stop the batch: they are reported as error results.`,
		Example: `  # Table output
  ghgcalc calculate --input activities.yaml

  # NDJSON for piping into other tools
  ghgcalc calculate --input activities.json --output ndjson

  # Fail with exit code 2 when any record could not be calculated
  ghgcalc calculate --input activities.yaml --strict

  # Read the document from stdin
  generate-activities | ghgcalc calculate --input - --input-format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalculate(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.input, "input", "",
		"path to a JSON or YAML calculation input document, or - for stdin (required)")
	cmd.Flags().StringVar(&params.inputFormat, "input-format", string(ingest.FormatJSON),
		"format of the document read from stdin: json or yaml")
	cmd.Flags().StringVar(&params.factors, "factors", "", "additional emission factor catalog (JSON or YAML)")
	cmd.Flags().StringVar(&params.output, "output", "", "output format: table, json or ndjson (default from config)")
	cmd.Flags().IntVar(&params.workers, "workers", 0, "concurrent batch workers (default from config)")
	cmd.Flags().IntVar(&params.batchSize, "batch-size", 0, "inputs per batch (default from config)")
	cmd.Flags().BoolVar(&params.strict, "strict", false, "exit with code 2 when any calculation fails")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runCalculate(cmd *cobra.Command, params calculateParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	format := params.output
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	if err := checkOutputFormat(format); err != nil {
		return err
	}

	opts := emissions.BatchOptions{
		Workers:   cfg.Calculator.Workers,
		BatchSize: cfg.Calculator.BatchSize,
		OnProgress: func(s batch.ProgressSnapshot) {
			log.Debug().Ctx(ctx).
				Int("processed", s.ProcessedItems).
				Int("total", s.TotalItems).
				Float64("percent", s.PercentComplete).
				Msg("batch progress")
		},
	}
	if params.workers > 0 {
		opts.Workers = params.workers
	}
	if params.batchSize > 0 {
		opts.BatchSize = params.batchSize
	}

	inputs, err := readInputs(cmd, params)
	if err != nil {
		return fmt.Errorf("loading inputs: %w", err)
	}

	calc, err := newCalculator(ctx, cfg, params.factors)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := calc.BatchCalculateConcurrent(ctx, inputs, opts)
	if err != nil {
		return fmt.Errorf("calculating: %w", err)
	}
	report := engine.NewReport(results, time.Now().UTC())

	log.Info().Ctx(ctx).
		Int("inputs", len(inputs)).
		Int("completed", report.Summary.CalculationCount).
		Int("failed", report.Summary.ErrorCount).
		Float64("total_kg_co2e", report.Summary.TotalEmissions).
		Dur("duration", time.Since(start)).
		Msg("calculation batch finished")

	if err := renderReport(cmd, report, format, cfg.Output); err != nil {
		return err
	}

	if params.strict && report.Summary.ErrorCount > 0 {
		return &ExitError{
			ExitCode: strictExitCode,
			Reason:   fmt.Sprintf("%d of %d calculations failed", report.Summary.ErrorCount, len(results)),
		}
	}
	return nil
}

// stdinPath selects standard input for --input.
const stdinPath = "-"

// readInputs loads the input document from a file, or from stdin for "-".
func readInputs(cmd *cobra.Command, params calculateParams) ([]emissions.CalculationInput, error) {
	if params.input != stdinPath {
		return ingest.LoadInputs(cmd.Context(), params.input)
	}

	format := ingest.Format(strings.ToLower(params.inputFormat))
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	inputs, err := ingest.ParseInputs(data, format)
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}
	if len(inputs) == 0 {
		return nil, errors.New("stdin: no inputs found")
	}
	return inputs, nil
}

// strictExitCode is returned by calculate --strict when any result failed.
const strictExitCode = 2

func checkOutputFormat(format string) error {
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want table, json or ndjson)", format)
	}
}

func renderReport(cmd *cobra.Command, report engine.Report, format string, out config.OutputConfig) error {
	w := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		return engine.RenderReportAsJSON(w, report)
	case config.FormatNDJSON:
		return engine.RenderReportAsNDJSON(w, report)
	default:
		opts := engine.RenderOptions{
			Precision: out.Precision,
			Formatter: greenops.NewFormatter(out.Locale),
		}
		if err := engine.RenderReportAsTable(w, report, opts); err != nil {
			return err
		}
		return RenderSummary(w, report, opts)
	}
}
