package easyvalidate

import (
	"reflect"
	"sort"
	"strings"
)

// describeValue builds a string describing a value's runtime type for error
// messages. With deep=true, map and slice values recursively include the set
// of distinct member type descriptions, e.g. "[](int | string)" or
// "map[string]int | bool". This can be slow on large collections, so it is
// only used on the failure path.
//
// Never panics; values whose type resists introspection fall back to a
// generic description.
func describeValue(value any, deep bool) (desc string) {
	defer func() {
		if recover() != nil {
			desc = "unknown"
		}
	}()

	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return "nil"
	}
	if !deep || isExemptCollection(rv.Type()) {
		return rv.Type().String()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Len() == 0 {
			return rv.Type().String()
		}
		keys, values := make([]string, 0, rv.Len()), make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			keys = append(keys, describeValue(iter.Key().Interface(), deep))
			values = append(values, describeValue(iter.Value().Interface(), deep))
		}
		// Map iteration order is random; sort for stable messages.
		return "map[" + joinDistinctSorted(keys) + "]" + parenthesizedDesc(joinDistinctSorted(values))

	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return rv.Type().String()
		}
		elems := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elems = append(elems, describeValue(rv.Index(i).Interface(), deep))
		}
		return "[]" + parenthesizedDesc(joinDistinct(elems))

	default:
		return rv.Type().String()
	}
}

// joinDistinct joins descriptions with " | ", keeping only the first
// occurrence of each and preserving encounter order.
func joinDistinct(descs []string) string {
	seen := make(map[string]struct{}, len(descs))
	distinct := descs[:0]
	for _, d := range descs {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		distinct = append(distinct, d)
	}
	return strings.Join(distinct, " | ")
}

func joinDistinctSorted(descs []string) string {
	sorted := make([]string, len(descs))
	copy(sorted, descs)
	sort.Strings(sorted)
	return joinDistinct(sorted)
}

func parenthesizedDesc(desc string) string {
	if strings.Contains(desc, " | ") {
		return "(" + desc + ")"
	}
	return desc
}
