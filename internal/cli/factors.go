package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/config"
	"github.com/rshade/ghgcalc/internal/emissions"
	"github.com/rshade/ghgcalc/internal/factors"
)

// factorsListParams holds the factors list flags.
type factorsListParams struct {
	category   string
	region     string
	activeOnly bool
	file       string
	output     string
}

// NewFactorsListCmd creates the factors list command.
func NewFactorsListCmd() *cobra.Command {
	var params factorsListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the emission factors available to calculate",
		Example: `  ghgcalc factors list --category purchased_electricity
  ghgcalc factors list --region GB --active
  ghgcalc factors list --file my-factors.yaml --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFactorsList(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.category, "category", "", "only factors of this emission category")
	cmd.Flags().StringVar(&params.region, "region", "", "only factors for this region")
	cmd.Flags().BoolVar(&params.activeOnly, "active", false, "only active factors")
	cmd.Flags().StringVar(&params.file, "file", "", "additional factor catalog to include")
	cmd.Flags().StringVar(&params.output, "output", "table", "output format: table or json")

	return cmd
}

func runFactorsList(cmd *cobra.Command, params factorsListParams) error {
	ctx := cmd.Context()
	cat := emissions.Category(params.category)
	if cat != "" && !cat.IsValid() {
		return fmt.Errorf("unknown emission category %q", params.category)
	}

	calc, err := newCalculator(ctx, config.GetGlobalConfig(), params.file)
	if err != nil {
		return err
	}

	list := factors.Filter(calc.Factors(), factors.Criteria{
		Category:   cat,
		Region:     params.region,
		ActiveOnly: params.activeOnly,
	})

	w := cmd.OutOrStdout()
	if params.output == config.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprintf(tw, "ID\tCATEGORY\tSUBCATEGORY\tKG CO2E\tPER\tREGION\tYEAR\tSOURCE\tACTIVE\n"); err != nil {
		return err
	}
	for _, f := range list {
		year := "-"
		if f.Year != 0 {
			year = strconv.Itoa(f.Year)
		}
		region := f.Region
		if region == "" {
			region = "-"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			f.ID, f.Category, f.Subcategory, strconv.FormatFloat(f.Factor, 'g', -1, 64),
			f.Unit, region, year, f.Source, f.IsActive); err != nil {
			return err
		}
	}
	return tw.Flush()
}
