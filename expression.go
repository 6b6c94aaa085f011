package easyvalidate

///////////////////////////////////////////////////////////////////////////////
// Expression trees
///////////////////////////////////////////////////////////////////////////////

// Expr is a node in a lazily evaluated expression tree. Applying any builder
// method to an Expr does not compute anything; it absorbs the operation into
// a new node, so a whole predicate can be written up front and evaluated
// later, any number of times, with Substitute.
//
// Trees are always built left to right from the placeholder X, which makes
// cycles impossible, and nodes are never mutated after construction.
type Expr struct {
	op       exprOp
	operands []any // each operand is a constant, a nested *Expr, or the placeholder
	attr     string
}

type exprOp int

const (
	opPlaceholder exprOp = iota

	// Comparison
	opEq
	opNe
	opLt
	opLe
	opGt
	opGe

	// Arithmetic
	opAdd
	opSub
	opMul
	opDiv
	opFloorDiv
	opMod
	opPow

	// Bitwise
	opAnd
	opOr
	opXor
	opLshift
	opRshift
	opInvert

	// Misc
	opAttr
	opCall
)

var opNames = map[exprOp]string{
	opPlaceholder: "X",
	opEq:          "eq",
	opNe:          "ne",
	opLt:          "lt",
	opLe:          "le",
	opGt:          "gt",
	opGe:          "ge",
	opAdd:         "add",
	opSub:         "sub",
	opMul:         "mul",
	opDiv:         "div",
	opFloorDiv:    "floordiv",
	opMod:         "mod",
	opPow:         "pow",
	opAnd:         "and",
	opOr:          "or",
	opXor:         "xor",
	opLshift:      "lshift",
	opRshift:      "rshift",
	opInvert:      "invert",
	opAttr:        "attr",
	opCall:        "call",
}

// X is the placeholder: a symbolic stand-in for the value that will be
// supplied at call time. Building an expression starts here, e.g.
// X.Add(5).Mul(X) stands for (x + 5) * x.
var X = &Expr{op: opPlaceholder}

func newNode(op exprOp, operands ...any) *Expr {
	return &Expr{op: op, operands: operands}
}

// IsExpression reports whether a value is an expression tree (including the
// placeholder itself).
func IsExpression(value any) bool {
	e, ok := value.(*Expr)
	return ok && e != nil
}

///////////////////////////////////////////////////////////////////////////////
// Comparison builders
///////////////////////////////////////////////////////////////////////////////

// Eq builds the node for "e == other".
func (e *Expr) Eq(other any) *Expr { return newNode(opEq, e, other) }

// Ne builds the node for "e != other".
func (e *Expr) Ne(other any) *Expr { return newNode(opNe, e, other) }

// Lt builds the node for "e < other".
func (e *Expr) Lt(other any) *Expr { return newNode(opLt, e, other) }

// Le builds the node for "e <= other".
func (e *Expr) Le(other any) *Expr { return newNode(opLe, e, other) }

// Gt builds the node for "e > other".
func (e *Expr) Gt(other any) *Expr { return newNode(opGt, e, other) }

// Ge builds the node for "e >= other".
func (e *Expr) Ge(other any) *Expr { return newNode(opGe, e, other) }

///////////////////////////////////////////////////////////////////////////////
// Arithmetic builders
///////////////////////////////////////////////////////////////////////////////

// Add builds the node for "e + other". Radd and the other R-prefixed
// variants are the reflected forms, used when the expression is the right
// operand: X.Rsub(10) stands for 10 - x.
func (e *Expr) Add(other any) *Expr  { return newNode(opAdd, e, other) }
func (e *Expr) Radd(other any) *Expr { return newNode(opAdd, other, e) }

// Sub builds the node for "e - other".
func (e *Expr) Sub(other any) *Expr  { return newNode(opSub, e, other) }
func (e *Expr) Rsub(other any) *Expr { return newNode(opSub, other, e) }

// Mul builds the node for "e * other".
func (e *Expr) Mul(other any) *Expr  { return newNode(opMul, e, other) }
func (e *Expr) Rmul(other any) *Expr { return newNode(opMul, other, e) }

// Div builds the node for "e / other". Division of numbers always produces
// a float, matching true division.
func (e *Expr) Div(other any) *Expr  { return newNode(opDiv, e, other) }
func (e *Expr) Rdiv(other any) *Expr { return newNode(opDiv, other, e) }

// FloorDiv builds the node for "e // other", division rounded toward
// negative infinity.
func (e *Expr) FloorDiv(other any) *Expr  { return newNode(opFloorDiv, e, other) }
func (e *Expr) RfloorDiv(other any) *Expr { return newNode(opFloorDiv, other, e) }

// Mod builds the node for "e % other", with Go's truncated remainder
// semantics for integers.
func (e *Expr) Mod(other any) *Expr  { return newNode(opMod, e, other) }
func (e *Expr) Rmod(other any) *Expr { return newNode(opMod, other, e) }

// Pow builds the node for "e ** other".
func (e *Expr) Pow(other any) *Expr  { return newNode(opPow, e, other) }
func (e *Expr) Rpow(other any) *Expr { return newNode(opPow, other, e) }

///////////////////////////////////////////////////////////////////////////////
// Bitwise builders
///////////////////////////////////////////////////////////////////////////////

// And builds the node for "e & other".
func (e *Expr) And(other any) *Expr  { return newNode(opAnd, e, other) }
func (e *Expr) Rand(other any) *Expr { return newNode(opAnd, other, e) }

// Or builds the node for "e | other".
func (e *Expr) Or(other any) *Expr  { return newNode(opOr, e, other) }
func (e *Expr) Ror(other any) *Expr { return newNode(opOr, other, e) }

// Xor builds the node for "e ^ other".
func (e *Expr) Xor(other any) *Expr  { return newNode(opXor, e, other) }
func (e *Expr) Rxor(other any) *Expr { return newNode(opXor, other, e) }

// Lshift builds the node for "e << other".
func (e *Expr) Lshift(other any) *Expr  { return newNode(opLshift, e, other) }
func (e *Expr) Rlshift(other any) *Expr { return newNode(opLshift, other, e) }

// Rshift builds the node for "e >> other".
func (e *Expr) Rshift(other any) *Expr  { return newNode(opRshift, e, other) }
func (e *Expr) Rrshift(other any) *Expr { return newNode(opRshift, other, e) }

// Invert builds the node for the bitwise complement "^e".
func (e *Expr) Invert() *Expr { return newNode(opInvert, e) }

///////////////////////////////////////////////////////////////////////////////
// Attribute access and calls
///////////////////////////////////////////////////////////////////////////////

// Attr builds a node that fetches the named struct field or method from the
// substituted value.
func (e *Expr) Attr(name string) *Expr {
	n := newNode(opAttr, e)
	n.attr = name
	return n
}

// CallWith builds a node that calls the substituted value (which must be a
// function) with the given arguments. Arguments may themselves be
// expressions.
func (e *Expr) CallWith(args ...any) *Expr {
	operands := make([]any, 0, len(args)+1)
	operands = append(operands, e)
	operands = append(operands, args...)
	return newNode(opCall, operands...)
}

///////////////////////////////////////////////////////////////////////////////
// Unsupported operations
///////////////////////////////////////////////////////////////////////////////

// Some operations cannot be deferred. Each of these panics with an
// *ExpressionError the moment it is used, so the mistake surfaces where the
// expression is written, never at substitution time.

// Len is unsupported: length queries cannot be absorbed into a tree.
func (e *Expr) Len() *Expr {
	panic(&ExpressionError{reason: "use of a length query in a test expression is unsupported"})
}

// In is unsupported: containment tests cannot be absorbed into a tree.
func (e *Expr) In(collection any) *Expr {
	panic(&ExpressionError{reason: "use of a containment test in a test expression is unsupported"})
}

// BoolAnd is unsupported: boolean conjunction forces evaluation and cannot
// be deferred. The same goes for BoolOr, BoolNot, and chained comparisons.
func (e *Expr) BoolAnd(other any) *Expr {
	panic(&ExpressionError{reason: "boolean conjunction in a test expression is unsupported"})
}

// BoolOr is unsupported; see BoolAnd.
func (e *Expr) BoolOr(other any) *Expr {
	panic(&ExpressionError{reason: "boolean disjunction in a test expression is unsupported"})
}

// BoolNot is unsupported; see BoolAnd.
func (e *Expr) BoolNot() *Expr {
	panic(&ExpressionError{reason: "boolean negation in a test expression is unsupported"})
}
