package easyvalidate

import (
	"sort"

	"go.uber.org/multierr"
)

///////////////////////////////////////////////////////////////////////////////
// Range wrapping
///////////////////////////////////////////////////////////////////////////////

type bounds struct {
	lower float64
	upper float64
}

// WrapRange returns a function with fn's exact type that checks, on every
// call, that each listed argument falls inside its inclusive [lower, upper]
// interval. Bound pairs are normalized at wrap time so the order they are
// written in does not matter: {10, 1} behaves exactly like {1, 10}.
//
// Wrap-time failures (aggregated): a name not present in the signature, or
// a bound pair containing a non-numeric value. Call-time failures: a value
// outside the interval, or one that is not numeric at all.
func WrapRange(fn any, sig *Signature, ranges map[string][2]any) (any, error) {
	fv, err := checkTarget(fn, sig)
	if err != nil {
		return nil, err
	}

	var errs error
	normalized := make(map[string]bounds, len(ranges))
	for _, name := range sortedKeys(ranges) {
		pair := ranges[name]
		if sig.Index(name) < 0 {
			errs = multierr.Append(errs, constructionErr(ErrUnknownParameter,
				"cannot specify a range for non-existent parameter %q", name))
			continue
		}
		if !isNumeric(pair[0]) || !isNumeric(pair[1]) {
			errs = multierr.Append(errs, constructionErr(ErrBadRangeBounds,
				"range for %q must contain only numbers", name))
			continue
		}
		lo, hi := toFloat(pair[0]), toFloat(pair[1])
		if lo > hi {
			lo, hi = hi, lo
		}
		normalized[name] = bounds{lower: lo, upper: hi}
	}
	if errs != nil {
		return nil, errs
	}

	names := sortedKeys(normalized)
	check := func(bound map[string]any) error {
		for _, name := range names {
			value, ok := bound[name]
			if !ok {
				continue
			}
			b := normalized[name]
			if !isNumeric(value) {
				return validationErr(name, "cannot validate the range of a non-numeric value (%v)", value)
			}
			if f := toFloat(value); f < b.lower || f > b.upper {
				return validationErr(name, "value must be in the range [%v, %v], but got %v",
					b.lower, b.upper, value)
			}
		}
		return nil
	}
	return wrap(fv, sig, check), nil
}

// sortedKeys keeps both decoration-time error aggregation and call-time
// checking order deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
