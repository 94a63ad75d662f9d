package expr

import "github.com/pkg/errors"

// DeriveOp builds a new expression for the directional derivative of n,
// given the derivative expressions of its dependencies. Every seed has one
// row per element of its dependency and ncol columns (one per symbolic
// direction); an absent dependency contributes a nil seed, which is
// treated as zero. Rules construct fresh nodes and never mutate the
// original graph — original nodes appear in the result only as shared
// chain-rule factors.
func DeriveOp(n *Node, seeds []*Node, ncol int) (*Node, error) {
	for i := range seeds {
		if seeds[i] == nil && n.deps[i] != nil {
			seeds[i] = Zeros(n.deps[i].Numel(), ncol)
		}
	}

	switch n.op {
	case OpSym, OpConst:
		// A leaf the caller did not seed is constant with respect to the
		// differentiated inputs.
		return Zeros(n.Numel(), ncol), nil

	case OpNeg:
		return Neg(seeds[0]), nil

	case OpSin:
		return ScaleRows(seeds[0], Cos(n.deps[0])), nil

	case OpCos:
		return Neg(ScaleRows(seeds[0], Sin(n.deps[0]))), nil

	case OpExp:
		return ScaleRows(seeds[0], n), nil

	case OpLog:
		return ScaleRows(seeds[0], recip(n.deps[0])), nil

	case OpSqrt:
		// d sqrt(x) = dx / (2 sqrt(x))
		return ScaleRows(seeds[0], Div(Fill(0.5, n.sp.NRow(), n.sp.NCol()), n)), nil

	case OpTanh:
		return ScaleRows(seeds[0], Sub(Ones(n.sp.NRow(), n.sp.NCol()), Mul(n, n))), nil

	case OpAdd:
		return Add(seeds[0], seeds[1]), nil

	case OpSub:
		return Sub(seeds[0], seeds[1]), nil

	case OpMul:
		return Add(ScaleRows(seeds[0], n.deps[1]), ScaleRows(seeds[1], n.deps[0])), nil

	case OpDiv:
		// d(x/y) = dx/y - (x/y) dy/y
		inv := recip(n.deps[1])
		return Sub(ScaleRows(seeds[0], inv), ScaleRows(seeds[1], Mul(n, inv))), nil

	case OpScaleRows:
		// Closed under differentiation only when the scaled operand is a
		// column: the multi-column case needs a row-repetition primitive
		// the operation set does not carry.
		if n.deps[0].Sparsity().NCol() != 1 {
			return nil, errors.Errorf("expr: symbolic derivative of %s with %d seed columns is not supported",
				n.op, n.deps[0].Sparsity().NCol())
		}
		return Add(ScaleRows(seeds[0], n.deps[1]), ScaleRows(seeds[1], n.deps[0])), nil

	case OpVertcat:
		return Vertcat(seeds...), nil

	case OpCall:
		return nil, errors.Errorf("expr: symbolic derivative of call nodes is not supported")
	}
	return nil, errors.Errorf("expr: no differentiation rule for %s", n.op)
}

func recip(x *Node) *Node {
	return Div(Ones(x.sp.NRow(), x.sp.NCol()), x)
}
