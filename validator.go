package easyvalidate

import (
	"fmt"
	"reflect"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Validator tree
///////////////////////////////////////////////////////////////////////////////

// Validator checks values against a single TypeHint. A validator is a node
// in a tree mirroring the structure of its hint: one sub-validator per
// sub-hint, built once by NewValidator and never mutated afterwards, so a
// tree may be shared freely across goroutines.
type Validator struct {
	hint     *TypeHint
	kind     validatorKind
	baseType reflect.Type // concrete base for generic/mapping/sequence, nil for capability-only hints
	subs     []*Validator
	literals []any
}

type validatorKind int

const (
	validateAny validatorKind = iota
	validateGeneric
	validateUnion
	validateLiteral
	validateMapping
	validateSequence
)

// Collection types whose members are not meaningfully typed elements.
// Members of a string are strings :(
var _exemptCollectionTypes = []reflect.Type{
	reflect.TypeOf(""),
	reflect.TypeOf([]byte(nil)),
}

func isExemptCollection(t reflect.Type) bool {
	for _, exempt := range _exemptCollectionTypes {
		if t == exempt {
			return true
		}
	}
	return false
}

// NewValidator builds the validator tree for a type hint.
//
// Dispatch order: the special hints (Any, Union, Literal) first, then mapping
// capability, then sequence capability, then a generic instance check.
// A hint that cannot be validated at all is a *ConstructionError here, at
// decoration time, never a call-time failure.
func NewValidator(hint *TypeHint) (*Validator, error) {
	if hint == nil {
		return nil, constructionErr(ErrUnsupportedHint, "type hint cannot be nil")
	}

	v := &Validator{hint: hint}
	switch hint.kind {
	case hintAny:
		v.kind = validateAny

	case hintUnion:
		if len(hint.subs) == 0 {
			return nil, constructionErr(ErrUnsupportedHint, "union hint must have at least one member")
		}
		v.kind = validateUnion
		if err := v.buildSubs(hint.subs); err != nil {
			return nil, err
		}

	case hintLiteral:
		if len(hint.literals) == 0 {
			return nil, constructionErr(ErrUnsupportedHint, "literal hint must have at least one allowed value")
		}
		v.kind = validateLiteral
		v.literals = hint.literals

	case hintMap:
		v.kind = validateMapping
		if err := v.buildSubs(hint.subs); err != nil {
			return nil, err
		}

	case hintSlice:
		v.kind = validateSequence
		if err := v.buildSubs(hint.subs); err != nil {
			return nil, err
		}

	case hintConcrete:
		return newConcreteValidator(hint)
	}

	return v, nil
}

// newConcreteValidator classifies a concrete runtime type. Map, slice and
// array types decompose into collection validators with sub-hints derived
// from the type's own key/element types.
func newConcreteValidator(hint *TypeHint) (*Validator, error) {
	t := hint.typ
	if t == nil {
		return nil, constructionErr(ErrUnsupportedHint, "type hint has no runtime type")
	}

	v := &Validator{hint: hint, baseType: t}
	switch {
	case t.Kind() == reflect.Interface && t.NumMethod() == 0:
		// interface{} constrains nothing
		v.kind = validateAny
		v.baseType = nil

	case isExemptCollection(t):
		v.kind = validateGeneric

	case t.Kind() == reflect.Map:
		v.kind = validateMapping
		if err := v.buildSubs([]*TypeHint{Type(t.Key()), Type(t.Elem())}); err != nil {
			return nil, err
		}

	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		v.kind = validateSequence
		if err := v.buildSubs([]*TypeHint{Type(t.Elem())}); err != nil {
			return nil, err
		}

	default:
		v.kind = validateGeneric
	}
	return v, nil
}

func (v *Validator) buildSubs(hints []*TypeHint) error {
	v.subs = make([]*Validator, 0, len(hints))
	for _, hint := range hints {
		sub, err := NewValidator(hint)
		if err != nil {
			return err
		}
		v.subs = append(v.subs, sub)
	}
	return nil
}

// Hint returns the type hint this validator was built from.
func (v *Validator) Hint() *TypeHint {
	return v.hint
}

// SubValidators returns the validators for the hint's sub-hints. The
// returned slice is a copy; the tree itself is immutable.
func (v *Validator) SubValidators() []*Validator {
	out := make([]*Validator, len(v.subs))
	copy(out, v.subs)
	return out
}

// String renders a description of the validated type, as used in error
// messages.
func (v *Validator) String() string {
	switch v.kind {
	case validateAny:
		return "Any"
	case validateUnion:
		parts := make([]string, len(v.subs))
		for i, sub := range v.subs {
			parts[i] = sub.String()
		}
		return strings.Join(parts, " | ")
	case validateLiteral:
		return typeName(v.literals[0])
	case validateMapping, validateSequence:
		if v.baseType != nil {
			return v.baseType.String()
		}
		return v.hint.String()
	default:
		return v.baseType.String()
	}
}

// Validate checks a value against the hint this validator was built from.
// A nil return means the value is acceptable.
//
// With deep=false, collection hints only check the outer container type;
// with deep=true, every key, value or element is additionally validated
// against the corresponding sub-hint. Shallow checking never descends.
func (v *Validator) Validate(value any, deep bool) error {
	switch v.kind {
	case validateAny:
		return nil
	case validateGeneric:
		return v.validateGeneric(value)
	case validateUnion:
		return v.validateUnion(value, deep)
	case validateLiteral:
		return v.validateLiteral(value, deep)
	case validateMapping:
		return v.validateMapping(value, deep)
	case validateSequence:
		return v.validateSequence(value, deep)
	default:
		return validationErr("", "unknown validator variant %d", v.kind)
	}
}

func (v *Validator) validateGeneric(value any) error {
	if !instanceOf(value, v.baseType) {
		return validationErr("", "Expected %s not %s", v, typeName(value))
	}
	return nil
}

// validateUnion tries members strictly in declaration order; the first
// success wins and later members are never consulted.
func (v *Validator) validateUnion(value any, deep bool) error {
	for _, sub := range v.subs {
		if sub.Validate(value, deep) == nil {
			return nil
		}
	}
	return validationErr("", "Expected %s not %s", v, describeValue(value, deep))
}

// validateLiteral only checks the value's runtime type against the type of
// the first allowed constant. See the Literal doc for why.
func (v *Validator) validateLiteral(value any, deep bool) error {
	want := reflect.TypeOf(v.literals[0])
	if reflect.TypeOf(value) != want {
		return validationErr("", "Expected %s not %s", v, describeValue(value, deep))
	}
	return nil
}

func (v *Validator) validateMapping(value any, deep bool) error {
	rv, err := v.checkOuter(value, reflect.Map)
	if err != nil {
		return err
	}
	if !deep || len(v.subs) != 2 {
		return nil
	}

	// Fail fast on the first bad key or value: the error is deliberately
	// generic so a huge collection does not pay for a detailed report.
	iter := rv.MapRange()
	for iter.Next() {
		if v.subs[0].Validate(iter.Key().Interface(), deep) != nil ||
			v.subs[1].Validate(iter.Value().Interface(), deep) != nil {
			return validationErr("", "Found invalid element in data. Expected %q", v.String())
		}
	}
	return nil
}

func (v *Validator) validateSequence(value any, deep bool) error {
	rv, err := v.checkOuter(value, reflect.Slice, reflect.Array)
	if err != nil {
		return err
	}
	if !deep || len(v.subs) != 1 {
		return nil
	}

	elemValidator := v.subs[0]
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if elemValidator.Validate(elem, deep) != nil {
			return validationErr("",
				"Found invalid element in data. Expected %q but got %q",
				elemValidator.String(), describeValue(elem, deep))
		}
	}
	return nil
}

// checkOuter verifies the container itself before any member checks. A
// concrete base type requires an instance of that exact type; a
// capability-only hint (MapOf/SliceOf) accepts any value of the right kind.
func (v *Validator) checkOuter(value any, kinds ...reflect.Kind) (reflect.Value, error) {
	rv := reflect.ValueOf(value)
	if v.baseType != nil {
		if !instanceOf(value, v.baseType) {
			return reflect.Value{}, validationErr("", "Expected %s not %v", v, value)
		}
		return rv, nil
	}
	for _, kind := range kinds {
		if rv.IsValid() && rv.Kind() == kind {
			return rv, nil
		}
	}
	return reflect.Value{}, validationErr("", "Expected %s not %v", v, value)
}

// instanceOf reports whether value is usable as an instance of t. Interface
// base types match by implementation, everything else by assignability.
func instanceOf(value any, t reflect.Type) bool {
	rt := reflect.TypeOf(value)
	if rt == nil || t == nil {
		return false
	}
	if t.Kind() == reflect.Interface {
		return rt.Implements(t)
	}
	return rt.AssignableTo(t)
}

// typeName renders a short name for a value's runtime type, tolerating nil.
func typeName(value any) string {
	rt := reflect.TypeOf(value)
	if rt == nil {
		return "nil"
	}
	return rt.String()
}

var _ fmt.Stringer = (*Validator)(nil)
