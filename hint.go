package easyvalidate

import (
	"fmt"
	"reflect"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Type hints
///////////////////////////////////////////////////////////////////////////////

// TypeHint describes the type constraint declared for a parameter. Hints are
// immutable after construction; build them with Type, TypeOf, Union, Literal,
// MapOf, or SliceOf, or use the Any hint directly.
type TypeHint struct {
	kind     hintKind
	typ      reflect.Type // concrete hints only
	subs     []*TypeHint  // union members, map key/value, slice element
	literals []any        // literal hints only
}

type hintKind int

const (
	hintConcrete hintKind = iota
	hintAny
	hintUnion
	hintLiteral
	hintMap
	hintSlice
)

// Any matches every value, including nil.
var Any = &TypeHint{kind: hintAny}

// Type returns a hint for a concrete runtime type. Parameterized Go types
// decompose automatically: a map type validates as a mapping with key/value
// sub-hints, a slice or array type as a sequence with an element sub-hint.
// string and []byte are treated as atomic values, never as sequences.
func Type(t reflect.Type) *TypeHint {
	return &TypeHint{kind: hintConcrete, typ: t}
}

// TypeOf is a generic convenience for Type(reflect.TypeOf(...)) that also
// works for interface types.
func TypeOf[T any]() *TypeHint {
	return Type(reflect.TypeOf((*T)(nil)).Elem())
}

// Union returns a hint matched by values satisfying at least one member.
// Members are tried strictly in declaration order with first-success
// semantics, which matters when members overlap.
func Union(members ...*TypeHint) *TypeHint {
	return &TypeHint{kind: hintUnion, subs: members}
}

// Literal returns a hint for a fixed set of allowed constants.
//
// Known limitation, kept for compatibility with the behavior this package
// replaces: validation only checks that the value's runtime type matches
// the runtime type of the first constant, not membership in the set.
func Literal(values ...any) *TypeHint {
	return &TypeHint{kind: hintLiteral, literals: values}
}

// MapOf returns a hint matched by any Go map. With deep checking enabled,
// every key must satisfy key and every value must satisfy value.
func MapOf(key, value *TypeHint) *TypeHint {
	return &TypeHint{kind: hintMap, subs: []*TypeHint{key, value}}
}

// SliceOf returns a hint matched by any Go slice or array. With deep
// checking enabled, every element must satisfy elem.
func SliceOf(elem *TypeHint) *TypeHint {
	return &TypeHint{kind: hintSlice, subs: []*TypeHint{elem}}
}

// String renders a short description of the hint, in the same notation used
// by validation error messages.
func (h *TypeHint) String() string {
	if h == nil {
		return "<nil hint>"
	}
	switch h.kind {
	case hintAny:
		return "Any"
	case hintUnion:
		parts := make([]string, len(h.subs))
		for i, sub := range h.subs {
			parts[i] = sub.String()
		}
		return strings.Join(parts, " | ")
	case hintLiteral:
		if len(h.literals) == 0 {
			return "Literal"
		}
		return typeName(h.literals[0])
	case hintMap:
		return fmt.Sprintf("map[%s]%s", h.subs[0].String(), parenthesized(h.subs[1]))
	case hintSlice:
		return "[]" + parenthesized(h.subs[0])
	default:
		if h.typ == nil {
			return "<invalid hint>"
		}
		return h.typ.String()
	}
}

// parenthesized wraps multi-member unions so concatenated notation like
// "[]int | string" cannot be misread.
func parenthesized(h *TypeHint) string {
	if h != nil && h.kind == hintUnion && len(h.subs) > 1 {
		return "(" + h.String() + ")"
	}
	return h.String()
}
