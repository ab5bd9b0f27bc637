package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/config"
	"github.com/rshade/ghgcalc/internal/units"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// NewUnitsListCmd creates the units list command.
func NewUnitsListCmd() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "list [CATEGORY]",
		Short: "List supported units, optionally for one category",
		Example: `  ghgcalc units list
  ghgcalc units list volume --locale fr`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if locale == "" {
				locale = config.GetGlobalConfig().Output.Locale
			}
			conv := units.NewConverter()
			categories := conv.Categories()
			if len(args) == 1 {
				cat := units.Category(strings.ToLower(args[0]))
				if len(conv.UnitsInCategory(cat)) == 0 {
					return fmt.Errorf("unknown unit category %q (want one of %v)", args[0], categories)
				}
				categories = []units.Category{cat}
			}
			return renderUnits(cmd, conv, categories, locale)
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "BCP 47 locale for unit names (default from config)")
	return cmd
}

func renderUnits(cmd *cobra.Command, conv *units.Converter, categories []units.Category, locale string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprintf(tw, "CATEGORY\tUNIT\tNAME\tIN BASE UNIT\n"); err != nil {
		return err
	}
	for _, cat := range categories {
		symbols := conv.UnitsInCategory(cat)
		base := symbols[0]
		for _, sym := range symbols {
			factor, err := conv.GetConversionFactor(sym, base)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\n",
				cat, sym, units.DisplayNameForLocale(sym, locale),
				strconv.FormatFloat(factor, 'g', -1, 64), base); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

// NewUnitsSuggestCmd creates the units suggest command.
func NewUnitsSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "suggest UNIT",
		Short:   "List the units a unit can be converted to",
		Example: `  ghgcalc units suggest therm`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv := units.NewConverter()
			suggestions := conv.SuggestUnits(args[0])
			if len(suggestions) == 0 {
				return fmt.Errorf("%w: %s", units.ErrUnknownUnit, args[0])
			}
			cat, _ := conv.GetUnitCategory(args[0])
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) converts to: %s\n",
				args[0], cat, strings.Join(suggestions, ", "))
			return err
		},
	}
}
