package easyvalidate

import (
	"errors"
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// Errors
///////////////////////////////////////////////////////////////////////////////

// Sentinel errors reported at wrap (decoration) time. They are always wrapped
// in a *ConstructionError, so match them with errors.Is.
var (
	ErrNotAFunc          = errors.New("wrap target must be a function")
	ErrVariadicFunc      = errors.New("variadic arguments not supported")
	ErrNilSignature      = errors.New("signature cannot be nil")
	ErrSignatureMismatch = errors.New("signature does not match the function's parameter count")
	ErrDuplicateParam    = errors.New("duplicate parameter name in signature")
	ErrEmptyParamName    = errors.New("parameter name cannot be empty")
	ErrUnknownParameter  = errors.New("no parameter with this name exists in the signature")
	ErrMissingTypeHint   = errors.New("one or more type hints is missing from the signature")
	ErrUnsupportedHint   = errors.New("type hint validation for this type is not supported")
	ErrBadRangeBounds    = errors.New("range bounds must be a pair of numbers")
	ErrNotAContainer     = errors.New("collection does not allow containment validation")
	ErrNotAnExpression   = errors.New("value is not an expression built from the placeholder")
	ErrInvalidJSON       = errors.New("document is not valid JSON")
	ErrMissingJSONField  = errors.New("JSON document is missing a field for a declared parameter")
)

// ConstructionError is an error that occurred while building a wrapper or a
// validator tree. It always surfaces at decoration time, before the wrapped
// function can ever be called.
type ConstructionError struct {
	reason string
	cause  error
}

func constructionErr(cause error, format string, args ...any) *ConstructionError {
	return &ConstructionError{
		reason: fmt.Sprintf(format, args...),
		cause:  cause,
	}
}

// Error implements the error interface
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("failed to construct wrapper: %s", e.reason)
}

// Unwrap exposes the sentinel error this construction failure is based on.
func (e *ConstructionError) Unwrap() error {
	return e.cause
}

// ExpressionError is raised (as a panic) when an operation that cannot be
// deferred is applied to the placeholder or to an expression node. It is
// distinct from ValidationError: it marks misuse of the expression builder,
// not a failed check.
type ExpressionError struct {
	reason string
}

// Error implements the error interface
func (e *ExpressionError) Error() string {
	return fmt.Sprintf("cannot build expression: %s", e.reason)
}

// ValidationError is an error that occurred while checking the arguments of
// a single call. Param names the offending parameter when known.
type ValidationError struct {
	Param  string
	reason string
	cause  error
}

func validationErr(param string, format string, args ...any) *ValidationError {
	return &ValidationError{
		Param:  param,
		reason: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("failed to validate: %s", e.reason)
	}
	return fmt.Sprintf("failed to validate argument %q: %s", e.Param, e.reason)
}

// Unwrap exposes the underlying cause, if it was not suppressed by the
// CleanTrace option.
func (e *ValidationError) Unwrap() error {
	return e.cause
}
