// Package finance holds the HAUS real-estate calculators: stamp duty,
// mortgage repayments, rental yield, equity projection, affordability and
// loan-term recommendation. Every function is pure; inputs that would divide
// by zero or produce NaN are rejected with a *ValidationError.
package finance

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is wrapped by every ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports the input field that failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func requireFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if err := requireFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

func requirePositive(field string, v float64) error {
	if err := requireFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return invalid(field, "must be greater than zero")
	}
	return nil
}

func requirePercent(field string, v float64) error {
	if err := requireNonNegative(field, v); err != nil {
		return err
	}
	if v > 100 {
		return invalid(field, "must not exceed 100%%")
	}
	return nil
}
