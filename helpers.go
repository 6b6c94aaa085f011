package easyvalidate

import (
	"reflect"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Helpers
///////////////////////////////////////////////////////////////////////////////

// isNumeric reports whether a value has any integer, unsigned integer, or
// float kind, including named types with those kinds.
func isNumeric(value any) bool {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// isInteger reports whether a value has an integer kind (signed or unsigned).
func isInteger(value any) bool {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

// toFloat converts any numeric value to float64. The caller must have
// checked isNumeric first.
func toFloat(value any) float64 {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	default:
		return rv.Float()
	}
}

// mustInt converts any integer-kinded value to int64. The caller must have
// checked isInteger first.
func mustInt(value any) int64 {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint())
	default:
		return rv.Int()
	}
}

// supportsContainment reports whether a collection can be used for
// membership testing: slices, arrays, maps (by key), and strings (by
// substring).
func supportsContainment(collection any) bool {
	rv := reflect.ValueOf(collection)
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return true
	default:
		return false
	}
}

// containsValue reports whether value is a member of collection. Slice and
// array elements compare with reflect.DeepEqual; maps test key presence;
// strings test substring presence.
func containsValue(collection, value any) bool {
	rv := reflect.ValueOf(collection)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if reflect.DeepEqual(rv.Index(i).Interface(), value) {
				return true
			}
		}
		return false
	case reflect.Map:
		kv := reflect.ValueOf(value)
		if !kv.IsValid() || !kv.Type().AssignableTo(rv.Type().Key()) {
			return false
		}
		return rv.MapIndex(kv).IsValid()
	case reflect.String:
		s, ok := value.(string)
		return ok && strings.Contains(rv.String(), s)
	default:
		return false
	}
}

// isTruthy mirrors the truthiness rules a predicate result is judged by:
// false, zero numbers, empty strings, empty collections, and nil are falsy;
// everything else is truthy.
func isTruthy(value any) bool {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() != 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	default:
		return true
	}
}
