package emissions

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for calculations. Compare with errors.Is().
var (
	// ErrValidation indicates a CalculationInput that fails schema constraints.
	ErrValidation = constError("invalid calculation input")

	// ErrFactorNotFound indicates an emissionFactorId missing from the registry.
	ErrFactorNotFound = constError("emission factor not found")

	// ErrNoEmissionFactor indicates that neither a registry factor nor a usable
	// custom factor could be resolved.
	ErrNoEmissionFactor = constError("no emission factor provided")

	// ErrInvalidFactor indicates an EmissionFactor rejected at registration.
	ErrInvalidFactor = constError("invalid emission factor")

	// ErrUnexpected wraps panics recovered at the Calculate boundary.
	ErrUnexpected = constError("unexpected error")
)
