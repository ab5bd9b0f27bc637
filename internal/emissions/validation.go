package emissions

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Custom validator tags.
const (
	tagScope    = "scope"
	tagCategory = "emission_category"
)

// NewValidator returns a validator with the emission-specific tags registered.
// Field names in errors use the json tag so messages match the wire format.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation(tagScope, func(fl validator.FieldLevel) bool {
		return Scope(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation(tagCategory, func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).IsValid()
	})
	return v
}

// validateInput checks input against the calculation schema.
func validateInput(v *validator.Validate, input *CalculationInput) error {
	if err := v.Struct(input); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, describeValidationError(err))
	}
	if math.IsInf(input.ActivityData.Amount, 0) {
		return fmt.Errorf("%w: activityData.amount must be finite", ErrValidation)
	}
	if input.CustomEmissionFactor != nil && math.IsInf(*input.CustomEmissionFactor, 0) {
		return fmt.Errorf("%w: customEmissionFactor must be finite", ErrValidation)
	}
	return nil
}

// validateFactor checks a factor before it enters the registry.
func validateFactor(v *validator.Validate, f EmissionFactor) error {
	if err := v.Struct(f); err != nil {
		return fmt.Errorf("%w %q: %s", ErrInvalidFactor, f.ID, describeValidationError(err))
	}
	if math.IsInf(f.Factor, 0) {
		return fmt.Errorf("%w %q: factor must be finite", ErrInvalidFactor, f.ID)
	}
	return nil
}

// describeValidationError turns validator output into one readable line.
func describeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_without":
		return "either emissionFactorId or customEmissionFactor is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case tagScope:
		return fmt.Sprintf("%s %q is not a valid scope", field, fe.Value())
	case tagCategory:
		return fmt.Sprintf("%s %q is not a valid emission category", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
