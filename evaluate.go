package easyvalidate

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Substitution
///////////////////////////////////////////////////////////////////////////////

// Substitute replaces every occurrence of the placeholder in the tree with
// value and evaluates the result. The tree is never mutated, so the same
// expression may be substituted any number of times, concurrently, with
// different values.
func (e *Expr) Substitute(value any) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("cannot substitute into a nil expression")
	}
	if e.op == opPlaceholder {
		return value, nil
	}

	operands := make([]any, len(e.operands))
	for i, operand := range e.operands {
		substituted, err := substituteOperand(operand, value)
		if err != nil {
			return nil, err
		}
		operands[i] = substituted
	}

	switch e.op {
	case opAttr:
		return fetchAttr(operands[0], e.attr)
	case opCall:
		return callValue(operands[0], operands[1:])
	case opInvert:
		return invertValue(operands[0])
	case opEq, opNe, opLt, opLe, opGt, opGe:
		return compareValues(e.op, operands[0], operands[1])
	case opAnd, opOr, opXor, opLshift, opRshift:
		return applyBitwise(e.op, operands[0], operands[1])
	default:
		return applyArithmetic(e.op, operands[0], operands[1])
	}
}

// substituteOperand resolves one operand: nested expressions (including the
// placeholder) are substituted recursively, constants pass through.
func substituteOperand(operand any, value any) (any, error) {
	if sub, ok := operand.(*Expr); ok && sub != nil {
		return sub.Substitute(value)
	}
	return operand, nil
}

///////////////////////////////////////////////////////////////////////////////
// Operation application
///////////////////////////////////////////////////////////////////////////////

func compareValues(op exprOp, a, b any) (any, error) {
	if isNumeric(a) && isNumeric(b) {
		return orderingResult(op, compareFloats(toFloat(a), toFloat(b))), nil
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return orderingResult(op, strings.Compare(sa, sb)), nil
		}
	}
	switch op {
	case opEq:
		return reflect.DeepEqual(a, b), nil
	case opNe:
		return !reflect.DeepEqual(a, b), nil
	default:
		return nil, fmt.Errorf("values of type %s and %s are not orderable", typeName(a), typeName(b))
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func orderingResult(op exprOp, cmp int) bool {
	switch op {
	case opEq:
		return cmp == 0
	case opNe:
		return cmp != 0
	case opLt:
		return cmp < 0
	case opLe:
		return cmp <= 0
	case opGt:
		return cmp > 0
	default:
		return cmp >= 0
	}
}

// applyArithmetic keeps integer operands on an int64 path (except for true
// division, which always produces a float) and promotes to float64 as soon
// as either side is a float.
func applyArithmetic(op exprOp, a, b any) (any, error) {
	if op == opAdd {
		if sa, ok := a.(string); ok {
			if sb, ok := b.(string); ok {
				return sa + sb, nil
			}
		}
	}
	if !isNumeric(a) || !isNumeric(b) {
		return nil, fmt.Errorf("unsupported operand types for %s: %s and %s",
			opNames[op], typeName(a), typeName(b))
	}

	if op != opDiv && isInteger(a) && isInteger(b) {
		return applyIntArithmetic(op, mustInt(a), mustInt(b))
	}

	x, y := toFloat(a), toFloat(b)
	switch op {
	case opAdd:
		return x + y, nil
	case opSub:
		return x - y, nil
	case opMul:
		return x * y, nil
	case opDiv:
		if y == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return x / y, nil
	case opFloorDiv:
		if y == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return math.Floor(x / y), nil
	case opMod:
		if y == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return math.Mod(x, y), nil
	default:
		return math.Pow(x, y), nil
	}
}

func applyIntArithmetic(op exprOp, x, y int64) (any, error) {
	switch op {
	case opAdd:
		return x + y, nil
	case opSub:
		return x - y, nil
	case opMul:
		return x * y, nil
	case opFloorDiv:
		if y == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return floorDivInt(x, y), nil
	case opMod:
		if y == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return x % y, nil
	default: // opPow
		if y >= 0 {
			return intPow(x, y), nil
		}
		return math.Pow(float64(x), float64(y)), nil
	}
}

// floorDivInt rounds toward negative infinity, unlike Go's / which
// truncates toward zero.
func floorDivInt(x, y int64) int64 {
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

func intPow(base, exp int64) int64 {
	var result int64 = 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func applyBitwise(op exprOp, a, b any) (any, error) {
	if !isInteger(a) || !isInteger(b) {
		return nil, fmt.Errorf("unsupported operand types for %s: %s and %s",
			opNames[op], typeName(a), typeName(b))
	}
	x, y := mustInt(a), mustInt(b)
	switch op {
	case opAnd:
		return x & y, nil
	case opOr:
		return x | y, nil
	case opXor:
		return x ^ y, nil
	case opLshift, opRshift:
		if y < 0 {
			return nil, fmt.Errorf("negative shift count")
		}
		if op == opLshift {
			return x << uint64(y), nil
		}
		return x >> uint64(y), nil
	default:
		return nil, fmt.Errorf("unknown bitwise operation %s", opNames[op])
	}
}

func invertValue(a any) (any, error) {
	if !isInteger(a) {
		return nil, fmt.Errorf("unsupported operand type for invert: %s", typeName(a))
	}
	return ^mustInt(a), nil
}

// fetchAttr resolves attribute-access nodes: struct fields first, then
// methods of the value (or its pointer type).
func fetchAttr(receiver any, name string) (any, error) {
	rv := reflect.ValueOf(receiver)
	if !rv.IsValid() {
		return nil, fmt.Errorf("cannot access attribute %q of nil", name)
	}

	elem := rv
	if elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return nil, fmt.Errorf("cannot access attribute %q of nil", name)
		}
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		if field := elem.FieldByName(name); field.IsValid() && field.CanInterface() {
			return field.Interface(), nil
		}
	}
	if method := rv.MethodByName(name); method.IsValid() {
		return method.Interface(), nil
	}
	return nil, fmt.Errorf("type %s has no accessible attribute %q", typeName(receiver), name)
}

// callValue resolves call nodes via reflection. If the function's trailing
// result is a non-nil error it is propagated; multiple remaining results
// come back as a []any.
func callValue(fn any, args []any) (any, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("cannot call a value of type %s", typeName(fn))
	}

	ft := fv.Type()
	if ft.IsVariadic() {
		if len(args) < ft.NumIn()-1 {
			return nil, fmt.Errorf("expression call expects at least %d arguments, got %d", ft.NumIn()-1, len(args))
		}
	} else if len(args) != ft.NumIn() {
		return nil, fmt.Errorf("expression call expects %d arguments, got %d", ft.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		paramType := ft.In(min(i, ft.NumIn()-1))
		if ft.IsVariadic() && i >= ft.NumIn()-1 {
			paramType = ft.In(ft.NumIn() - 1).Elem()
		}
		converted, err := convertArg(arg, paramType)
		if err != nil {
			return nil, err
		}
		in[i] = converted
	}

	out := fv.Call(in)
	if n := len(out); n > 0 && ft.Out(n-1) == errType {
		if errVal := out[n-1].Interface(); errVal != nil {
			return nil, errVal.(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		results := make([]any, len(out))
		for i, v := range out {
			results[i] = v.Interface()
		}
		return results, nil
	}
}

func convertArg(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(arg)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s in expression call", typeName(arg), t)
}
