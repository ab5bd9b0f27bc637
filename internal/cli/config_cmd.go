package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ghgcalc/internal/config"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates $GHGCALC_HOME/config.yaml (default ~/.ghgcalc/config.yaml) with
default values.`,
		Example: `  # Create configuration
  ghgcalc config init

  # Create configuration, overwriting existing
  ghgcalc config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.New()
			if cfg.Path() == "" {
				return errors.New("cannot determine configuration directory")
			}

			if !force {
				if _, err := os.Stat(cfg.Path()); err == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("cannot access config path %s: %w", cfg.Path(), err)
				}
			}

			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", cfg.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after file, environment and --config overrides",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(config.GetGlobalConfig())
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Example: `  # Validate $GHGCALC_HOME/config.yaml
  ghgcalc config validate

  # Validate another file before installing it
  ghgcalc config validate --file ./team-config.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfigToValidate(file)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			cmd.Printf("Configuration is valid: %s\n", cfg.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "validate this file instead of the configured one")
	return cmd
}

func loadConfigToValidate(file string) (*config.Config, error) {
	if file == "" {
		return config.Load()
	}
	if _, err := os.Stat(file); err != nil {
		return nil, fmt.Errorf("cannot access config file: %w", err)
	}
	return config.LoadFrom(file)
}
