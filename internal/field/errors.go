package field

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams indicates tracing parameters outside their valid range.
	ErrInvalidParams = errors.New("field: invalid tracing parameters")

	// ErrInvalidCharge indicates a charge with a NaN or infinite coordinate or magnitude.
	ErrInvalidCharge = errors.New("field: invalid charge (NaN or Inf detected)")
)

// ParamError names the offending parameter.
type ParamError struct {
	Name  string
	Value float64
	Rule  string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("field: %s=%g: %s", e.Name, e.Value, e.Rule)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParams
}
