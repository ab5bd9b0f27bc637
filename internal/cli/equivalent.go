package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/config"
	"github.com/rshade/ghgcalc/internal/greenops"
	"github.com/rshade/ghgcalc/internal/logging"
	"github.com/rshade/ghgcalc/internal/units"
)

// NewEquivalentCmd creates the equivalent command.
func NewEquivalentCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "equivalent VALUE UNIT",
		Short: "Express an emission quantity as real-world equivalencies",
		Long: `Normalizes a CO2e mass (kg, t, lb, ... optionally suffixed with CO2e) to
kilograms and prints EPA equivalencies such as miles driven or smartphones charged.`,
		Example: `  ghgcalc equivalent 150 kg
  ghgcalc equivalent 2.5 tCO2e --output json`,
		Args: cobra.ExactArgs(2), //nolint:mnd // VALUE UNIT
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}
			return runEquivalent(cmd, greenops.CarbonInput{Value: value, Unit: args[1]}, output)
		},
	}

	cmd.Flags().StringVar(&output, "output", "table", "output format: table or json")
	return cmd
}

func runEquivalent(cmd *cobra.Command, input greenops.CarbonInput, output string) error {
	ctx := cmd.Context()

	if !greenops.IsRecognizedUnit(input.Unit) {
		massUnits := units.NewConverter().UnitsInCategory(units.CategoryMass)
		return fmt.Errorf("%w: %q (want one of %s, optionally suffixed with CO2e)",
			greenops.ErrInvalidUnit, input.Unit, strings.Join(massUnits, ", "))
	}

	out, err := greenops.Calculate(input)
	if err != nil {
		if errors.Is(err, greenops.ErrNegativeValue) {
			return fmt.Errorf("%w: equivalencies describe emitted CO2e only", err)
		}
		return err
	}

	cfg := config.GetGlobalConfig()
	f := greenops.NewFormatter(cfg.Output.Locale)

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Float64("input_kg", out.InputKg).
		Int("equivalencies", len(out.Results)).
		Str("locale", f.Locale().String()).
		Msg("equivalencies calculated")

	w := cmd.OutOrStdout()
	if output == config.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if _, err := fmt.Fprintf(w, "%s\n", f.Emissions(out.InputKg, cfg.Output.Precision)); err != nil {
		return err
	}
	if out.IsEmpty {
		_, err := fmt.Fprintf(w, "Below the %s kg CO2e equivalency threshold\n",
			f.Float(greenops.MinEquivalencyThresholdKg, 0))
		return err
	}
	for _, r := range out.Results {
		if _, err := fmt.Fprintf(w, "  ~%s %s\n", r.FormattedValue, r.Label); err != nil {
			return err
		}
	}
	return nil
}
