package expr

import (
	"fmt"

	"github.com/symgraph/symgraph/internal/matrix"
)

// Sym creates a symbolic leaf with the given name and shape.
func Sym(name string, nrow, ncol int) *Node {
	return &Node{op: OpSym, sp: matrix.Dense(nrow, ncol), name: name}
}

// SymScalar creates a scalar symbolic leaf.
func SymScalar(name string) *Node {
	return Sym(name, 1, 1)
}

// Const creates a constant node holding a copy of m.
func Const(m *matrix.Matrix) *Node {
	if m == nil {
		panic("expr: Const: nil matrix")
	}
	return &Node{op: OpConst, sp: m.Sparsity(), value: m.Clone()}
}

// Scalar creates a 1x1 constant.
func Scalar(v float64) *Node {
	return Const(matrix.Filled(v, 1, 1))
}

// Eye creates the n-by-n identity constant.
func Eye(n int) *Node {
	return Const(matrix.Identity(n))
}

// Zeros creates an nrow-by-ncol zero constant.
func Zeros(nrow, ncol int) *Node {
	return Const(matrix.Zeros(nrow, ncol))
}

// Ones creates an nrow-by-ncol all-ones constant.
func Ones(nrow, ncol int) *Node {
	return Const(matrix.Ones(nrow, ncol))
}

// Fill creates an nrow-by-ncol constant with every element v.
func Fill(v float64, nrow, ncol int) *Node {
	return Const(matrix.Filled(v, nrow, ncol))
}

func unary(op OpKind, x *Node) *Node {
	if x == nil {
		panic(fmt.Sprintf("expr: %s: nil operand", op))
	}
	return &Node{op: op, sp: x.sp, deps: []*Node{x}}
}

// Element-wise binary operations require identical sparsity on both
// operands; there is no implicit broadcasting.
func binary(op OpKind, x, y *Node) *Node {
	if x == nil || y == nil {
		panic(fmt.Sprintf("expr: %s: nil operand", op))
	}
	if !x.sp.Equal(y.sp) {
		panic(fmt.Sprintf("expr: %s: sparsity mismatch %s vs %s", op, x.sp, y.sp))
	}
	return &Node{op: op, sp: x.sp, deps: []*Node{x, y}}
}

// Neg returns -x.
func Neg(x *Node) *Node { return unary(OpNeg, x) }

// Sin returns sin(x), element-wise.
func Sin(x *Node) *Node { return unary(OpSin, x) }

// Cos returns cos(x), element-wise.
func Cos(x *Node) *Node { return unary(OpCos, x) }

// Exp returns e^x, element-wise.
func Exp(x *Node) *Node { return unary(OpExp, x) }

// Log returns the natural logarithm, element-wise.
func Log(x *Node) *Node { return unary(OpLog, x) }

// Sqrt returns the square root, element-wise.
func Sqrt(x *Node) *Node { return unary(OpSqrt, x) }

// Tanh returns the hyperbolic tangent, element-wise.
func Tanh(x *Node) *Node { return unary(OpTanh, x) }

// Add returns x + y.
func Add(x, y *Node) *Node { return binary(OpAdd, x, y) }

// Sub returns x - y.
func Sub(x, y *Node) *Node { return binary(OpSub, x, y) }

// Mul returns the element-wise product x * y.
func Mul(x, y *Node) *Node { return binary(OpMul, x, y) }

// Div returns the element-wise quotient x / y.
func Div(x, y *Node) *Node { return binary(OpDiv, x, y) }

// ScaleRows scales each row of x by the corresponding element of w, taken
// in row-major order: out[r,c] = x[r,c] * vec(w)[r]. Requires
// Numel(w) == NRow(x). The symbolic differentiator emits these nodes to
// apply a chain-rule factor across seed columns.
func ScaleRows(x, w *Node) *Node {
	if x == nil || w == nil {
		panic("expr: ScaleRows: nil operand")
	}
	if w.Numel() != x.sp.NRow() {
		panic(fmt.Sprintf("expr: ScaleRows: weight has %d elements, want %d (one per row of %s)",
			w.Numel(), x.sp.NRow(), x.sp))
	}
	return &Node{op: OpScaleRows, sp: x.sp, deps: []*Node{x, w}}
}

// Vertcat stacks the parts vertically. All parts must share a column count.
func Vertcat(parts ...*Node) *Node {
	if len(parts) == 0 {
		panic("expr: Vertcat: no operands")
	}
	if len(parts) == 1 {
		return parts[0]
	}
	ncol := 0
	nrow := 0
	for i, p := range parts {
		if p == nil {
			panic(fmt.Sprintf("expr: Vertcat: operand #%d is nil", i))
		}
		if i == 0 {
			ncol = p.sp.NCol()
		} else if p.sp.NCol() != ncol {
			panic(fmt.Sprintf("expr: Vertcat: operand #%d has %d columns, want %d", i, p.sp.NCol(), ncol))
		}
		nrow += p.sp.NRow()
	}
	deps := make([]*Node, len(parts))
	copy(deps, parts)
	return &Node{op: OpVertcat, sp: matrix.Dense(nrow, ncol), deps: deps}
}

// NewCall creates a function-call node applying callee to args. The callee
// must have exactly one output; its declared input sparsities must match
// the arguments. The callee is cloned at tape-build time, so its buffers
// are never shared with the calling tape.
func NewCall(callee Callee, args ...*Node) *Node {
	if callee == nil {
		panic("expr: NewCall: nil callee")
	}
	if callee.NumOutputs() != 1 {
		panic(fmt.Sprintf("expr: NewCall: callee has %d outputs, want 1", callee.NumOutputs()))
	}
	if len(args) != callee.NumInputs() {
		panic(fmt.Sprintf("expr: NewCall: %d arguments for callee with %d inputs", len(args), callee.NumInputs()))
	}
	deps := make([]*Node, len(args))
	for i, a := range args {
		if a == nil {
			panic(fmt.Sprintf("expr: NewCall: argument #%d is nil", i))
		}
		if want := callee.InputSparsity(i); !a.sp.Equal(want) {
			panic(fmt.Sprintf("expr: NewCall: argument #%d has sparsity %s, callee expects %s", i, a.sp, want))
		}
		deps[i] = a
	}
	return &Node{op: OpCall, sp: callee.OutputSparsity(0), deps: deps, callee: callee}
}
