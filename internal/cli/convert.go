package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/config"
	"github.com/rshade/ghgcalc/internal/logging"
	"github.com/rshade/ghgcalc/internal/units"
)

// conversionOutput is the JSON form of a conversion.
type conversionOutput struct {
	Value      float64              `json:"value"`
	Result     float64              `json:"result"`
	Category   units.Category       `json:"category,omitempty"`
	Conversion units.UnitConversion `json:"conversion"`
}

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert VALUE FROM TO",
		Short: "Convert a value between units of the same category",
		Example: `  ghgcalc convert 12.5 MWh kWh
  ghgcalc convert 100 gal L --output json`,
		Args: cobra.ExactArgs(3), //nolint:mnd // VALUE FROM TO
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}
			return runConvert(cmd, value, args[1], args[2], output)
		},
	}

	cmd.Flags().StringVar(&output, "output", "table", "output format: table or json")
	return cmd
}

func runConvert(cmd *cobra.Command, value float64, from, to, output string) error {
	ctx := cmd.Context()
	conv := units.NewConverter()

	result, err := conv.ConvertUnit(value, from, to)
	if err != nil {
		if suggestions := conv.SuggestUnits(from); len(suggestions) > 0 {
			return fmt.Errorf("%w (units compatible with %s: %v)", err, from, suggestions)
		}
		return err
	}
	conversion, _ := conv.Conversion(from, to)
	category, _ := conv.GetUnitCategory(from)

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("from", from).
		Str("to", to).
		Float64("factor", conversion.Factor).
		Msg("unit converted")

	w := cmd.OutOrStdout()
	if output == config.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(conversionOutput{
			Value:      value,
			Result:     result,
			Category:   category,
			Conversion: conversion,
		})
	}

	_, err = fmt.Fprintf(w, "%s %s = %s %s\n",
		strconv.FormatFloat(value, 'f', -1, 64), from,
		strconv.FormatFloat(result, 'f', -1, 64), to)
	return err
}
