package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for equivalency calculations. Compare with errors.Is().
var (
	// ErrInvalidUnit indicates a unit that is not a mass unit.
	ErrInvalidUnit = constError("invalid carbon unit")

	// ErrNegativeValue indicates a net-negative total, which has no equivalency.
	ErrNegativeValue = constError("negative carbon value")

	// ErrCalculationOverflow indicates a NaN or infinite value.
	ErrCalculationOverflow = constError("calculation overflow")
)
