// Package easyvalidate provides runtime validation of function arguments
// against declared constraints.
//
// A function is wrapped ("decorated") together with a Signature describing
// its parameters, and every call made through the wrapper is checked before
// the underlying function runs. Four kinds of constraints are supported:
//
//   - Type hints: each parameter carries a TypeHint (a concrete type, Any,
//     a Union, a Literal, or a parameterized map/slice hint) and the bound
//     argument must satisfy it. Checking is shallow by default; with the
//     Deep option every element of a map or slice argument is validated
//     against the hint's sub-hints as well.
//   - Ranges: a numeric argument must fall inside an inclusive
//     [lower, upper] interval. Bounds are normalized, so the order in which
//     they are given does not matter.
//   - Containment: an argument must be a member of a given collection
//     (slice, array, map key set, or substring of a string).
//   - Expressions: an argument must satisfy a symbolic predicate built from
//     the placeholder X, e.g. X.Add(5).Mul(X).Lt(100). The predicate is an
//     immutable tree built once and substituted with the live argument on
//     every call.
//
// Constraint problems (unknown parameter names, missing hints, variadic
// targets, malformed bounds) surface immediately at wrap time as
// construction errors, never at call time. Call-time violations produce a
// *ValidationError naming the offending parameter; it is returned through
// the wrapped function's trailing error result when it has one, and raised
// as a panic otherwise.
//
// A minimal example:
//
//	sig := easyvalidate.Must(easyvalidate.NewSignature(
//	    easyvalidate.P("left", easyvalidate.TypeOf[string]()),
//	    easyvalidate.P("right", easyvalidate.TypeOf[int]()),
//	))
//	concat := func(left, right any) (string, error) {
//	    return fmt.Sprintf("%v%v", left, right), nil
//	}
//	checked := easyvalidate.Must(easyvalidate.WrapTypeHints(concat, sig,
//	    easyvalidate.DefaultTypeHintOptions()))
//	f := checked.(func(any, any) (string, error))
//	_, err := f("my favorite integer is ", "Dr. House") // *ValidationError
//
// Validator trees and expression trees are built once and are read-only
// afterwards, so wrapped functions are safe to call from multiple
// goroutines concurrently.
package easyvalidate
