// Package errors provides standardized error types for plot data processing.
// This package defines PlotError for consistent error handling across the
// pipeline, with operation context, a failure kind and error wrapping support.
package errors

import (
	"fmt"
)

// Kind classifies a PlotError.
type Kind int

const (
	// KindSchema reports column length mismatches inside a table builder.
	KindSchema Kind = iota
	// KindTooManyGroups reports a grouping key space above the encoding limit.
	KindTooManyGroups
	// KindUndefinedVariable reports a reference to a variable missing from the data.
	KindUndefinedVariable
	// KindInconsistentGroupSize reports grouping series of different lengths.
	KindInconsistentGroupSize
	// KindInvalidInput reports a malformed request (unknown stat, bad option, ...).
	KindInvalidInput
	// KindInternal reports a failure that is not caused by user input.
	KindInternal
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSchema:
		return "SchemaError"
	case KindTooManyGroups:
		return "TooManyGroupsError"
	case KindUndefinedVariable:
		return "UndefinedVariableError"
	case KindInconsistentGroupSize:
		return "InconsistentGroupSizeError"
	case KindInvalidInput:
		return "InvalidInputError"
	case KindInternal:
		return "InternalError"
	default:
		return fmt.Sprintf("unknown_kind(%d)", int(k))
	}
}

// PlotError represents standardized errors across all processing operations
type PlotError struct {
	Op       string // Operation name (e.g., "BuildStatData", "ComputeGroups")
	Variable string // Variable name if applicable
	Kind     Kind   // Failure classification
	Message  string // Human-readable error description
	Cause    error  // Underlying error cause
}

// Error implements the error interface
func (e *PlotError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("%s failed on variable '%s': %s", e.Op, e.Variable, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support
func (e *PlotError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a PlotError of the same kind. The predefined
// sentinels only carry a Kind, so errors.Is(err, ErrTooManyGroups) matches any
// TooManyGroupsError regardless of operation or message.
func (e *PlotError) Is(target error) bool {
	pe, ok := target.(*PlotError)
	if !ok {
		return false
	}
	if pe.Op == "" && pe.Message == "" && pe.Variable == "" {
		return e.Kind == pe.Kind
	}
	return e.Kind == pe.Kind && e.Op == pe.Op && e.Variable == pe.Variable && e.Message == pe.Message
}

// IsUserError reports whether err was caused by the caller's input rather than
// by a defect in the pipeline or one of its collaborators.
func IsUserError(err error) bool {
	var pe *PlotError
	if !As(err, &pe) {
		return false
	}
	return pe.Kind != KindInternal
}

// Common error constructors for consistent error creation

// NewSchemaError creates an error for a table whose columns disagree on row count.
func NewSchemaError(op, variable string, want, got int) *PlotError {
	return &PlotError{
		Op:       op,
		Variable: variable,
		Kind:     KindSchema,
		Message:  fmt.Sprintf("series length %d does not match row count %d", got, want),
	}
}

// NewTooManyGroupsError creates an error for a grouping pass that exceeded limit.
func NewTooManyGroupsError(op string, maxID, limit int) *PlotError {
	return &PlotError{
		Op:      op,
		Kind:    KindTooManyGroups,
		Message: fmt.Sprintf("too many groups: %d (limit %d)", maxID, limit),
	}
}

// NewUndefinedVariableError creates an error for a reference to an absent variable.
func NewUndefinedVariableError(op, variable string) *PlotError {
	return &PlotError{
		Op:       op,
		Variable: variable,
		Kind:     KindUndefinedVariable,
		Message:  "undefined variable",
	}
}

// NewInconsistentGroupSizeError creates an error for grouping series of unequal length.
func NewInconsistentGroupSizeError(op string, sizeA, sizeB int) *PlotError {
	return &PlotError{
		Op:   op,
		Kind: KindInconsistentGroupSize,
		Message: fmt.Sprintf(
			"data series used to compute groups must be equal in size (encountered sizes: %d, %d)",
			sizeA, sizeB),
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *PlotError {
	return &PlotError{
		Op:      op,
		Kind:    KindInvalidInput,
		Message: message,
	}
}

// NewInternalError creates an error for internal operation failures
func NewInternalError(op string, cause error) *PlotError {
	return &PlotError{
		Op:      op,
		Kind:    KindInternal,
		Message: "internal error occurred",
		Cause:   cause,
	}
}

// Predefined sentinels for errors.Is checks
var (
	// ErrSchema matches any SchemaError
	ErrSchema = &PlotError{Kind: KindSchema}

	// ErrTooManyGroups matches any TooManyGroupsError
	ErrTooManyGroups = &PlotError{Kind: KindTooManyGroups}

	// ErrUndefinedVariable matches any UndefinedVariableError
	ErrUndefinedVariable = &PlotError{Kind: KindUndefinedVariable}

	// ErrInconsistentGroupSize matches any InconsistentGroupSizeError
	ErrInconsistentGroupSize = &PlotError{Kind: KindInconsistentGroupSize}

	// ErrInvalidInput matches any InvalidInputError
	ErrInvalidInput = &PlotError{Kind: KindInvalidInput}
)
