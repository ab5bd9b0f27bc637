package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/ghgcalc/internal/config"
	"github.com/rshade/ghgcalc/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root command for the ghgcalc CLI and wires config
// loading, logging and every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "ghgcalc",
		Short:         "Greenhouse gas emission calculator",
		Long:          "ghgcalc: Calculate scope 1, 2 and 3 CO2e emissions from activity data and emission factors",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "overlay YAML file whose sections replace the loaded configuration")
	cmd.AddCommand(
		NewCalculateCmd(),
		NewConvertCmd(),
		NewEquivalentCmd(),
		newUnitsCmd(),
		newFactorsCmd(),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Calculate emissions for a batch of activity records
  ghgcalc calculate --input activities.yaml

  # Use an additional factor catalog and JSON output
  ghgcalc calculate --input activities.json --factors my-factors.yaml --output json

  # Convert between units of the same category
  ghgcalc convert 12.5 MWh kWh

  # Express 2.5 tonnes of CO2e as miles driven and smartphones charged
  ghgcalc equivalent 2.5 tCO2e

  # List energy units with German display names
  ghgcalc units list energy --locale de

  # List the built-in scope 2 electricity factors
  ghgcalc factors list --category purchased_electricity

  # Write the default configuration file
  ghgcalc config init`

// loadConfig loads the config file, applies the --config overlay and
// installs the result as the process configuration.
func loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if overlay, _ := cmd.Flags().GetString("config"); overlay != "" {
		if err := config.ShallowMergeYAML(cfg, overlay); err != nil {
			return fmt.Errorf("applying --config: %w", err)
		}
	}
	// config subcommands must run against a broken file to repair or report it.
	if parent := cmd.Parent(); parent == nil || parent.Name() != "config" {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// newUnitsCmd creates the units command group.
func newUnitsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "units", Short: "Unit catalog commands"}
	cmd.AddCommand(NewUnitsListCmd(), NewUnitsSuggestCmd())
	return cmd
}

// newFactorsCmd creates the factors command group.
func newFactorsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "factors", Short: "Emission factor catalog commands"}
	cmd.AddCommand(NewFactorsListCmd())
	return cmd
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

// ExitError carries a process exit code out of a command.
type ExitError struct {
	ExitCode int
	Reason   string
}

func (e *ExitError) Error() string {
	return e.Reason
}
