package easyvalidate

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

///////////////////////////////////////////////////////////////////////////////
// JSON argument binding
///////////////////////////////////////////////////////////////////////////////

var _uuidType = reflect.TypeOf(uuid.UUID{})

// BindJSON extracts one top-level field per declared parameter from a JSON
// document and returns the values as positional arguments, ready to pass to
// a wrapped function. Fields are looked up by parameter name. When a
// parameter carries a concrete type hint, the extracted value is coerced to
// it where a sensible conversion exists (JSON numbers to the hinted integer
// or float type, strings to uuid.UUID); everything else is returned as
// gjson decodes it and left to the validators.
func BindJSON(sig *Signature, document string) ([]any, error) {
	if sig == nil {
		return nil, constructionErr(ErrNilSignature, "signature cannot be nil")
	}
	if !gjson.Valid(document) {
		return nil, fmt.Errorf("cannot bind arguments: %w", ErrInvalidJSON)
	}

	root := gjson.Parse(document)
	args := make([]any, 0, sig.Len())
	for _, p := range sig.Params() {
		result := root.Get(p.Name)
		if !result.Exists() {
			return nil, fmt.Errorf("no value for parameter %q: %w", p.Name, ErrMissingJSONField)
		}
		value, err := coerceJSONValue(result, p.Hint)
		if err != nil {
			return nil, fmt.Errorf("cannot bind parameter %q: %w", p.Name, err)
		}
		args = append(args, value)
	}
	return args, nil
}

func coerceJSONValue(result gjson.Result, hint *TypeHint) (any, error) {
	raw := result.Value()
	if hint == nil || hint.kind != hintConcrete || hint.typ == nil {
		return raw, nil
	}

	t := hint.typ
	if t == _uuidType && result.Type == gjson.String {
		id, err := uuid.Parse(result.String())
		if err != nil {
			return nil, err
		}
		return id, nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if result.Type != gjson.Number {
			return raw, nil
		}
		out := reflect.New(t).Elem()
		n := result.Int()
		if out.OverflowInt(n) {
			return nil, fmt.Errorf("value %v overflows %s", n, t)
		}
		out.SetInt(n)
		return out.Interface(), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if result.Type != gjson.Number {
			return raw, nil
		}
		out := reflect.New(t).Elem()
		n := result.Uint()
		if out.OverflowUint(n) {
			return nil, fmt.Errorf("value %v overflows %s", n, t)
		}
		out.SetUint(n)
		return out.Interface(), nil

	case reflect.Float32, reflect.Float64:
		if result.Type != gjson.Number {
			return raw, nil
		}
		return reflect.ValueOf(result.Float()).Convert(t).Interface(), nil

	case reflect.String:
		if result.Type != gjson.String {
			return raw, nil
		}
		return reflect.ValueOf(result.String()).Convert(t).Interface(), nil

	case reflect.Bool:
		switch result.Type {
		case gjson.True, gjson.False:
			return reflect.ValueOf(result.Bool()).Convert(t).Interface(), nil
		}
		return raw, nil

	default:
		return raw, nil
	}
}

// ValidateJSON decodes a whole JSON document and checks the decoded value
// against a type hint. gjson decodes objects to map[string]any, arrays to
// []any, and numbers to float64, so hints for JSON data are usually built
// from MapOf, SliceOf, Union, and the basic JSON scalar types.
func ValidateJSON(hint *TypeHint, document string, deep bool) error {
	validator, err := NewValidator(hint)
	if err != nil {
		return err
	}
	if !gjson.Valid(document) {
		return fmt.Errorf("cannot validate: %w", ErrInvalidJSON)
	}
	return validator.Validate(gjson.Parse(document).Value(), deep)
}
