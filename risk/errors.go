/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("invalid input")
	ErrComputation   = errors.New("non-finite computation")
	ErrConfiguration = errors.New("unrecognised categorical code")
	ErrUnknownModel  = errors.New("unknown risk model")
	ErrUnknownPreset = errors.New("unknown band preset")
	ErrInvalidBands  = errors.New("invalid risk bands")
)

// ValidationError reports a missing, non-numeric or out-of-domain input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "value is required"}
}

func outOfRange(field string, value float64, r Range) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("%g is outside the validated range %g-%g", value, r.Min, r.Max),
	}
}

// ComputationError reports a non-finite intermediate value that could not
// be clamped to a meaningful risk.
type ComputationError struct {
	Model Model
	Stage string
	Value float64
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: non-finite %s (%v)", e.Model, e.Stage, e.Value)
}

func (e *ComputationError) Unwrap() error {
	return ErrComputation
}

// ConfigurationError describes an unrecognised categorical code. It is
// never returned from a calculation: the baseline category is substituted
// and the error is logged as a warning.
type ConfigurationError struct {
	Field    string
	Code     string
	Fallback string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unrecognised %s %q, using %q", e.Field, e.Code, e.Fallback)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// FailureKind tags a failed calculation.
type FailureKind string

// FailureKind values.
const (
	FailureValidation  FailureKind = "validation"
	FailureComputation FailureKind = "computation"
	FailureInternal    FailureKind = "internal"
)

// Failure is the JSON-serialisable form of a calculation error, so callers
// can render a message instead of handling Go errors.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Field   string      `json:"field,omitempty"`
	Message string      `json:"message"`
}

// FailureFrom converts err into a Failure. It returns nil for a nil error.
func FailureFrom(err error) *Failure {
	if err == nil {
		return nil
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return &Failure{Kind: FailureValidation, Field: validationErr.Field, Message: err.Error()}
	}

	if errors.Is(err, ErrValidation) {
		return &Failure{Kind: FailureValidation, Message: err.Error()}
	}

	if errors.Is(err, ErrComputation) {
		return &Failure{Kind: FailureComputation, Message: err.Error()}
	}

	return &Failure{Kind: FailureInternal, Message: err.Error()}
}
