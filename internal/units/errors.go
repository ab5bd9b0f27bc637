package units

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by the converter. Compare with errors.Is().
var (
	// ErrIncompatibleUnits indicates the two units belong to different categories,
	// or at least one of them is not recognized.
	ErrIncompatibleUnits = constError("incompatible units")

	// ErrUnknownUnit indicates a unit string that is not in the category table.
	ErrUnknownUnit = constError("unknown unit")
)
