package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshade/ghgcalc/internal/config"
	"github.com/rshade/ghgcalc/internal/emissions"
	"github.com/rshade/ghgcalc/internal/factors"
	"github.com/rshade/ghgcalc/internal/logging"
)

// loadFactorSet returns the built-in factors overlaid by the configured
// catalog and then by extraFile. Later catalogs win on duplicate IDs.
func loadFactorSet(ctx context.Context, cfg *config.Config, extraFile string) ([]emissions.EmissionFactor, error) {
	set, err := factors.Default()
	if err != nil {
		return nil, err
	}
	for _, path := range []string{cfg.Calculator.FactorsFile, extraFile} {
		if path == "" {
			continue
		}
		extra, loadErr := factors.LoadFile(ctx, path)
		if loadErr != nil {
			return nil, fmt.Errorf("loading factor catalog: %w", loadErr)
		}
		set = append(set, extra...)
	}
	return set, nil
}

// newCalculator builds a Calculator from the loaded configuration. Factors
// rejected during registration are logged and skipped.
func newCalculator(ctx context.Context, cfg *config.Config, extraFactors string) (*emissions.Calculator, error) {
	log := logging.FromContext(ctx)

	gen, err := emissions.IDGeneratorFor(cfg.Calculator.IDFormat)
	if err != nil {
		return nil, err
	}

	set, err := loadFactorSet(ctx, cfg, extraFactors)
	if err != nil {
		return nil, err
	}

	calc, err := emissions.New(set, emissions.WithIDGenerator(gen))
	if err != nil {
		if !errors.Is(err, emissions.ErrInvalidFactor) {
			return nil, err
		}
		log.Warn().Ctx(ctx).Err(err).Msg("some emission factors were rejected")
	}

	log.Debug().Ctx(ctx).
		Int("factor_count", len(calc.Factors())).
		Str("id_format", cfg.Calculator.IDFormat).
		Msg("calculator ready")

	return calc, nil
}
