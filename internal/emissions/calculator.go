package emissions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/rshade/ghgcalc/internal/engine/batch"
	"github.com/rshade/ghgcalc/internal/logging"
	"github.com/rshade/ghgcalc/internal/units"
)

// DefaultUncertainty is the fixed relative band applied to results backed by a
// registry factor. It does not read factor source, year or region.
const DefaultUncertainty = 0.1

// Calculator turns CalculationInputs into CalculationResults.
// Calculate and BatchCalculate are safe to call concurrently with each other
// and with LoadEmissionFactors.
type Calculator struct {
	registry    *Registry
	converter   *units.Converter
	adjustments *AdjustmentTable
	validate    *validator.Validate
	now         func() time.Time
	newID       IDGenerator
	logger      *zerolog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithClock overrides the time source used for CalculatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides the calculation ID source (default ULID).
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Calculator) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// WithLogger sets a fixed logger. Without it the logger is taken from the
// context passed to each call.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Calculator) {
		l = logging.ComponentLogger(l, "calculator")
		c.logger = &l
	}
}

// WithAdjustments replaces the whole adjustment table. The table is copied.
func WithAdjustments(t *AdjustmentTable) Option {
	return func(c *Calculator) {
		c.adjustments = t.clone()
	}
}

// WithAdjustment installs a rule for one scope/category pair.
func WithAdjustment(scope Scope, category Category, fn AdjustmentFunc) Option {
	return func(c *Calculator) {
		c.adjustments.Register(scope, category, fn)
	}
}

// WithScopeAdjustment installs a rule for every category of scope without its own rule.
func WithScopeAdjustment(scope Scope, fn AdjustmentFunc) Option {
	return func(c *Calculator) {
		c.adjustments.RegisterScope(scope, fn)
	}
}

// New creates a Calculator with the given factors registered. Invalid factors
// are skipped and reported in the returned error; the Calculator is usable
// either way.
func New(factors []EmissionFactor, opts ...Option) (*Calculator, error) {
	c := &Calculator{
		registry:    NewRegistry(),
		converter:   units.NewConverter(),
		adjustments: DefaultAdjustments(),
		validate:    NewValidator(),
		now:         time.Now,
		newID:       ULIDGenerator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, c.LoadEmissionFactors(factors...)
}

// LoadEmissionFactors upserts factors by ID. Invalid factors are rejected
// and returned joined; valid ones are registered regardless.
func (c *Calculator) LoadEmissionFactors(factors ...EmissionFactor) error {
	valid := make([]EmissionFactor, 0, len(factors))
	var errs []error
	for _, f := range factors {
		if err := validateFactor(c.validate, f); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, f)
	}
	c.registry.Upsert(valid...)
	return errors.Join(errs...)
}

// Factor returns the registered factor with id.
func (c *Calculator) Factor(id string) (EmissionFactor, bool) {
	return c.registry.Get(id)
}

// Factors lists the registered factors sorted by ID.
func (c *Calculator) Factors() []EmissionFactor {
	return c.registry.List()
}

// Calculate computes the emissions for one input. It never panics or returns
// an error: failures yield a result with StatusError, zero emissions and a
// non-empty Errors list.
func (c *Calculator) Calculate(ctx context.Context, input CalculationInput) (result CalculationResult) {
	if ctx == nil {
		ctx = context.Background()
	}
	result = CalculationResult{
		Input:  input,
		Status: StatusPending,
	}

	defer func() {
		if r := recover(); r != nil {
			result = c.fail(result, fmt.Errorf("%w: %v", ErrUnexpected, r))
		}
		log := c.loggerFor(ctx)
		if result.Failed() {
			log.Warn().Ctx(ctx).
				Str("calculation_id", result.ID).
				Str("scope", string(input.Scope)).
				Str("category", string(input.Category)).
				Strs("errors", result.Errors).
				Msg("calculation failed")
			return
		}
		log.Debug().Ctx(ctx).
			Str("calculation_id", result.ID).
			Str("scope", string(input.Scope)).
			Str("category", string(input.Category)).
			Float64("emissions", result.CalculatedEmissions).
			Msg("calculation completed")
	}()

	result.ID = c.newID()
	emissions, factor, err := c.compute(ctx, &input)
	if err != nil {
		return c.fail(result, err)
	}

	result.EmissionFactor = factor
	result.CalculatedEmissions = emissions
	result.CalculationMethod = provenance(input, factor != nil)
	if factor != nil {
		result.UncertaintyRange = uncertaintyBand(emissions, DefaultUncertainty)
	}
	result.CalculatedAt = c.now()
	result.Status = StatusCompleted
	return result
}

// compute runs validation, factor resolution, unit conversion and adjustment.
// The returned factor is nil when a custom factor was used.
func (c *Calculator) compute(ctx context.Context, input *CalculationInput) (float64, *EmissionFactor, error) {
	if err := validateInput(c.validate, input); err != nil {
		return 0, nil, err
	}

	factorValue, factor, err := c.resolveFactor(ctx, input)
	if err != nil {
		return 0, nil, err
	}

	amount := input.ActivityData.Amount
	if factor != nil {
		amount, err = c.converter.ConvertUnit(amount, input.ActivityData.Unit, factor.Unit)
		if err != nil {
			return 0, nil, fmt.Errorf("activity unit %s cannot be used with factor %s: %w",
				input.ActivityData.Unit, factor.ID, err)
		}
	}

	base := amount * factorValue

	adjusted, err := c.adjustments.Apply(base, input)
	if err != nil {
		return 0, nil, fmt.Errorf("%s/%s adjustment: %w", input.Scope, input.Category, err)
	}
	if math.IsNaN(adjusted) || math.IsInf(adjusted, 0) {
		return 0, nil, fmt.Errorf("%s/%s adjustment produced a non-finite value", input.Scope, input.Category)
	}

	return adjusted, factor, nil
}

func (c *Calculator) resolveFactor(ctx context.Context, input *CalculationInput) (float64, *EmissionFactor, error) {
	if input.EmissionFactorID != "" {
		f, ok := c.registry.Get(input.EmissionFactorID)
		if !ok {
			return 0, nil, fmt.Errorf("%w: %s", ErrFactorNotFound, input.EmissionFactorID)
		}
		if !f.IsActive {
			c.loggerFor(ctx).Warn().Ctx(ctx).
				Str("factor_id", f.ID).
				Msg("using inactive emission factor")
		}
		return f.Factor, &f, nil
	}

	if cf := input.CustomEmissionFactor; cf != nil && *cf > 0 {
		return *cf, nil, nil
	}

	return 0, nil, ErrNoEmissionFactor
}

func (c *Calculator) fail(result CalculationResult, err error) CalculationResult {
	result.EmissionFactor = nil
	result.CalculatedEmissions = 0
	result.CalculationMethod = ""
	result.UncertaintyRange = nil
	result.CalculatedAt = c.now()
	result.Status = StatusError
	result.Errors = []string{err.Error()}
	return result
}

func (c *Calculator) loggerFor(ctx context.Context) *zerolog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.FromContext(ctx)
}

// uncertaintyBand returns emissions ± fraction, ordered so Min <= Max even
// for negative (avoided) emissions.
func uncertaintyBand(emissions, fraction float64) *UncertaintyRange {
	lo, hi := emissions*(1-fraction), emissions*(1+fraction)
	if lo > hi {
		lo, hi = hi, lo
	}
	return &UncertaintyRange{Min: lo, Max: hi}
}

// BatchCalculate runs Calculate on each input in order. The result slice has
// one entry per input, in input order; failed inputs do not stop the batch.
func (c *Calculator) BatchCalculate(ctx context.Context, inputs []CalculationInput) []CalculationResult {
	results := make([]CalculationResult, len(inputs))
	for i, in := range inputs {
		results[i] = c.Calculate(ctx, in)
	}
	return results
}

// BatchOptions tunes BatchCalculateConcurrent.
type BatchOptions struct {
	// Workers bounds concurrently processed batches. Values below 2 process
	// the batches one after another on the calling goroutine.
	Workers int
	// BatchSize is the number of inputs per batch (default batch.DefaultBatchSize).
	BatchSize int
	// OnProgress is invoked after each batch completes.
	OnProgress batch.ProgressCallback
}

// BatchCalculateConcurrent is BatchCalculate with inputs split into batches
// processed by up to opts.Workers goroutines. Results keep input order.
// Cancelling ctx stops scheduling further batches and returns ctx.Err().
func (c *Calculator) BatchCalculateConcurrent(
	ctx context.Context,
	inputs []CalculationInput,
	opts BatchOptions,
) ([]CalculationResult, error) {
	results := make([]CalculationResult, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	proc := batch.NewProcessorWithDefaults[CalculationInput]()
	if opts.BatchSize != 0 {
		var err error
		if proc, err = batch.NewProcessor[CalculationInput](opts.BatchSize); err != nil {
			return nil, err
		}
	}
	if opts.OnProgress != nil {
		proc.WithProgressCallback(opts.OnProgress)
	}

	calculate := func(ctx context.Context, items []CalculationInput, offset int) error {
		for i, in := range items {
			results[offset+i] = c.Calculate(ctx, in)
		}
		return nil
	}

	var err error
	if opts.Workers <= 1 {
		err = proc.Process(ctx, inputs, calculate)
	} else {
		err = proc.ProcessConcurrent(ctx, inputs, calculate, opts.Workers)
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}
