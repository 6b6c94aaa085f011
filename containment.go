package easyvalidate

import (
	"go.uber.org/multierr"
)

///////////////////////////////////////////////////////////////////////////////
// Containment wrapping
///////////////////////////////////////////////////////////////////////////////

// WrapContainment returns a function with fn's exact type that checks, on
// every call, that each listed argument is a member of its allowed
// collection. Slices and arrays test element equality, maps test key
// presence, and strings test substring presence.
//
// Wrap-time failures (aggregated): a name not present in the signature, or
// a collection that does not support membership testing.
func WrapContainment(fn any, sig *Signature, allowed map[string]any) (any, error) {
	fv, err := checkTarget(fn, sig)
	if err != nil {
		return nil, err
	}

	var errs error
	for _, name := range sortedKeys(allowed) {
		if sig.Index(name) < 0 {
			errs = multierr.Append(errs, constructionErr(ErrUnknownParameter,
				"cannot specify allowed values for non-existent parameter %q", name))
			continue
		}
		if !supportsContainment(allowed[name]) {
			errs = multierr.Append(errs, constructionErr(ErrNotAContainer,
				"collection for parameter %q does not allow containment validation", name))
		}
	}
	if errs != nil {
		return nil, errs
	}

	names := sortedKeys(allowed)
	check := func(bound map[string]any) error {
		for _, name := range names {
			value, ok := bound[name]
			if !ok {
				continue
			}
			if !containsValue(allowed[name], value) {
				return validationErr(name, "value is not found among the allowed values: %v", allowed[name])
			}
		}
		return nil
	}
	return wrap(fv, sig, check), nil
}
