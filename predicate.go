package easyvalidate

import (
	"go.uber.org/multierr"
)

///////////////////////////////////////////////////////////////////////////////
// Expression wrapping
///////////////////////////////////////////////////////////////////////////////

// WrapExpression returns a function with fn's exact type that checks, on
// every call, that substituting each listed argument into its expression
// tree yields a truthy result.
//
// Wrap-time failures (aggregated): a name not present in the signature, or
// a nil expression. Call-time failures: a substitution error (for example
// applying an arithmetic operation to a non-numeric argument), or a falsy
// predicate result.
func WrapExpression(fn any, sig *Signature, expressions map[string]*Expr) (any, error) {
	fv, err := checkTarget(fn, sig)
	if err != nil {
		return nil, err
	}

	var errs error
	for _, name := range sortedKeys(expressions) {
		if sig.Index(name) < 0 {
			errs = multierr.Append(errs, constructionErr(ErrUnknownParameter,
				"cannot specify an expression for non-existent parameter %q", name))
			continue
		}
		if !IsExpression(expressions[name]) {
			errs = multierr.Append(errs, constructionErr(ErrNotAnExpression,
				"expression for parameter %q must be built from the placeholder", name))
		}
	}
	if errs != nil {
		return nil, errs
	}

	names := sortedKeys(expressions)
	check := func(bound map[string]any) error {
		for _, name := range names {
			value, ok := bound[name]
			if !ok {
				continue
			}
			result, err := expressions[name].Substitute(value)
			if err != nil {
				verr := validationErr(name, "expression evaluation failed: %s", err.Error())
				verr.cause = err
				return verr
			}
			if !isTruthy(result) {
				return validationErr(name, "value (%v) does not meet the required criteria", value)
			}
		}
		return nil
	}
	return wrap(fv, sig, check), nil
}
