package easyvalidate

import (
	"errors"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"
)

///////////////////////////////////////////////////////////////////////////////
// Type hint wrapping
///////////////////////////////////////////////////////////////////////////////

// TypeHintOptions controls WrapTypeHints.
type TypeHintOptions struct {
	// AllRequired requires every parameter (except a leading self/cls) to
	// carry a type hint.
	AllRequired bool
	// Deep validates every element of map and slice arguments against the
	// hint's sub-hints. Shallow checking only tests the outer container
	// type and is O(1); deep checking is O(n) per collection and opt-in.
	Deep bool
	// CleanTrace suppresses the underlying cause from the error chain of a
	// call-time failure. Turn it off only when debugging the validators
	// themselves.
	CleanTrace bool
	// Logger receives call-time validation failures. The zero value
	// discards them.
	Logger logr.Logger
}

// DefaultTypeHintOptions mirrors the defaults most callers want: all
// parameters annotated, shallow checking, clean traces.
func DefaultTypeHintOptions() TypeHintOptions {
	return TypeHintOptions{
		AllRequired: true,
		CleanTrace:  true,
		Logger:      logr.Discard(),
	}
}

// funcValidator holds the validator tree for each annotated parameter of
// one wrapped function. Built once at wrap time, read-only afterwards.
type funcValidator struct {
	sig        *Signature
	validators map[string]*Validator
	opts       TypeHintOptions
	skipFirst  bool
}

func newFuncValidator(sig *Signature, opts TypeHintOptions) (*funcValidator, error) {
	fv := &funcValidator{
		sig:        sig,
		validators: make(map[string]*Validator, sig.Len()),
		opts:       opts,
		skipFirst:  sig.isMethod(),
	}

	var errs error
	for i, p := range sig.Params() {
		if fv.skipFirst && i == 0 {
			continue
		}
		if p.Hint == nil {
			if opts.AllRequired {
				errs = multierr.Append(errs, constructionErr(ErrMissingTypeHint,
					"parameter %q has no type hint", p.Name))
			}
			continue
		}
		validator, err := NewValidator(p.Hint)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		fv.validators[p.Name] = validator
	}
	if errs != nil {
		return nil, errs
	}
	return fv, nil
}

// check validates bound arguments in declaration order and stops at the
// first violation.
func (fv *funcValidator) check(bound map[string]any) error {
	for _, p := range fv.sig.Params() {
		validator, ok := fv.validators[p.Name]
		if !ok {
			continue
		}
		value, ok := bound[p.Name]
		if !ok {
			continue
		}
		if err := validator.Validate(value, fv.opts.Deep); err != nil {
			reason := err.Error()
			var inner *ValidationError
			if errors.As(err, &inner) {
				reason = inner.reason
			}
			verr := validationErr(p.Name, "invalid type supplied: %s", reason)
			if !fv.opts.CleanTrace {
				verr.cause = err
			}
			fv.opts.Logger.Error(verr, "type validation failed", "param", p.Name)
			return verr
		}
	}
	return nil
}

// WrapTypeHints returns a function with fn's exact type that checks every
// call's arguments against the signature's type hints before delegating.
//
// Wrap-time failures (*ConstructionError, aggregated across parameters):
// fn is not a function or is variadic, the signature does not match fn's
// arity, a parameter lacks a hint while AllRequired is set, or a hint
// cannot be validated at all. A signature whose first parameter is named
// "self" or "cls" is treated as a method and that parameter is never
// validated.
func WrapTypeHints(fn any, sig *Signature, opts TypeHintOptions) (any, error) {
	fv, err := checkTarget(fn, sig)
	if err != nil {
		return nil, err
	}
	enforcer, err := newFuncValidator(sig, opts)
	if err != nil {
		return nil, err
	}
	return wrap(fv, sig, enforcer.check), nil
}
