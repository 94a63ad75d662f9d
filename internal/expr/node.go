// Package expr implements the shared expression DAG: node construction,
// depth-first topological sorting, and the per-operation numeric and
// symbolic differentiation rules.
//
// Nodes are immutable after construction and freely shared between parents
// and between function instances; sharing is the mechanism for
// common-subexpression reuse. Acyclicity holds by construction because a
// node's dependencies must exist before the node itself.
package expr

import (
	"fmt"
	"strings"

	"github.com/symgraph/symgraph/internal/matrix"
)

// OpKind tags the operation a node performs. The operation set is closed:
// numeric evaluation and symbolic differentiation dispatch on the tag.
type OpKind uint8

// Operation tags.
const (
	OpSym OpKind = iota // symbolic leaf
	OpConst
	OpNeg
	OpSin
	OpCos
	OpExp
	OpLog
	OpSqrt
	OpTanh
	OpAdd
	OpSub
	OpMul // element-wise
	OpDiv // element-wise
	OpScaleRows
	OpVertcat
	OpCall
)

var opNames = map[OpKind]string{
	OpSym:       "sym",
	OpConst:     "const",
	OpNeg:       "neg",
	OpSin:       "sin",
	OpCos:       "cos",
	OpExp:       "exp",
	OpLog:       "log",
	OpSqrt:      "sqrt",
	OpTanh:      "tanh",
	OpAdd:       "add",
	OpSub:       "sub",
	OpMul:       "mul",
	OpDiv:       "div",
	OpScaleRows: "scalerows",
	OpVertcat:   "vertcat",
	OpCall:      "call",
}

// String returns the operation name.
func (k OpKind) String() string {
	if s, ok := opNames[k]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", uint8(k))
}

// Callee is an evaluable subfunction embedded in a call node.
//
// It is implemented by function.Function. Instantiate returns an
// initialized private copy supporting at least the given direction counts,
// so the caller's tape never shares buffers with the prototype. EvalCall
// has the same buffer contract as EvalOp.
type Callee interface {
	NumInputs() int
	NumOutputs() int
	InputSparsity(i int) matrix.Sparsity
	OutputSparsity(i int) matrix.Sparsity
	Instantiate(nfdir, nadir int) Callee
	EvalCall(in [][]float64, out []float64,
		fwdSeed [][][]float64, fwdSens [][]float64,
		adjSeed [][]float64, adjSens [][][]float64,
		nfdir, nadir int)
}

// Node is one vertex of the expression DAG: an operation tag, a sparsity
// pattern, and a fixed-arity ordered dependency list. Leaves carry a symbol
// name or a constant value; call nodes carry their callee.
type Node struct {
	op     OpKind
	sp     matrix.Sparsity
	deps   []*Node
	name   string         // OpSym only
	value  *matrix.Matrix // OpConst only
	callee Callee         // OpCall only
}

// Op returns the operation tag.
func (n *Node) Op() OpKind { return n.op }

// Sparsity returns the node's pattern.
func (n *Node) Sparsity() matrix.Sparsity { return n.sp }

// Numel returns the node's element count.
func (n *Node) Numel() int { return n.sp.Numel() }

// NDep returns the dependency count.
func (n *Node) NDep() int { return len(n.deps) }

// Dep returns the i-th dependency.
func (n *Node) Dep(i int) *Node { return n.deps[i] }

// Name returns the symbol name; empty for non-leaves.
func (n *Node) Name() string { return n.name }

// Value returns the constant value, or nil for non-constants.
func (n *Node) Value() *matrix.Matrix { return n.value }

// Callee returns the embedded subfunction, or nil for non-call nodes.
func (n *Node) Callee() Callee { return n.callee }

// IsSymbolic reports whether the node is a pure symbolic leaf.
func (n *Node) IsSymbolic() bool { return n.op == OpSym }

// IsConstant reports whether the node is a structural constant.
func (n *Node) IsConstant() bool { return n.op == OpConst }

// IsNonlinear reports whether the node's operation is nonlinear in its
// dependencies. Used to decide which entries a lifting callback sees.
func (n *Node) IsNonlinear() bool {
	switch n.op {
	case OpSym, OpConst, OpNeg, OpAdd, OpSub, OpVertcat:
		return false
	default:
		return true
	}
}

// Format renders the node with the given dependency names, matching the
// tape listing format: symbols by name, constants by shape, operations as
// op(arg, arg).
func (n *Node) Format(args []string) string {
	switch n.op {
	case OpSym:
		return n.name
	case OpConst:
		if n.sp.Numel() == 1 {
			return n.value.String()
		}
		return fmt.Sprintf("const<%s>", n.sp)
	default:
		return fmt.Sprintf("%s(%s)", n.op, strings.Join(args, ", "))
	}
}

// String renders the node standalone, with dependency placeholders.
func (n *Node) String() string {
	args := make([]string, len(n.deps))
	for i, d := range n.deps {
		switch {
		case d == nil:
			args[i] = "[]"
		case d.op == OpSym, d.op == OpConst:
			args[i] = d.Format(nil)
		default:
			args[i] = d.op.String() + "(...)"
		}
	}
	return n.Format(args)
}
