package function

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/symgraph/symgraph/internal/expr"
)

// Jac symbolically differentiates the function with respect to input iind,
// returning one derivative expression per declared output. It seeds an
// identity matrix for the targeted input and zeros for every other input,
// then delegates to AdFwd; each derivative expression has one row per
// output element and one column per element of input iind.
func (f *Function) Jac(iind int) ([]*expr.Node, error) {
	f.assertInit("Jac")
	if iind < 0 || iind >= len(f.inputs) {
		panic(fmt.Sprintf("function: Jac: input index %d out of range [0, %d)", iind, len(f.inputs)))
	}

	ncol := f.inputs[iind].Numel()
	seeds := make([]*expr.Node, len(f.inputs))
	for ind, n := range f.inputs {
		if ind == iind {
			seeds[ind] = expr.Eye(ncol)
		} else {
			seeds[ind] = expr.Zeros(n.Numel(), ncol)
		}
	}
	return f.AdFwd(seeds)
}

// AdFwd performs forward-mode automatic differentiation symbolically:
// it walks the tape in topological order building a new derivative
// expression per slot, and returns the declared outputs' derivatives in
// declaration order. Seeds must share one column count (the number of
// simultaneous symbolic directions) and carry one row per element of their
// input; mismatches return a *ConsistencyError. The original graph and the
// tape buffers are never touched.
//
// This path is experimental; it warns and then executes fully.
func (f *Function) AdFwd(seeds []*expr.Node) ([]*expr.Node, error) {
	f.assertInit("AdFwd")
	f.log.Warn("symbolic forward differentiation is experimental")

	if len(seeds) != len(f.inputs) {
		return nil, &ConsistencyError{What: "seed count", Index: -1, Want: len(f.inputs), Got: len(seeds)}
	}
	ncol := 1
	for i, s := range seeds {
		if s == nil {
			return nil, &ConsistencyError{What: "rows", Index: i, Want: f.inputs[i].Numel(), Got: 0}
		}
		if got := s.Sparsity().NRow(); got != f.inputs[i].Numel() {
			return nil, &ConsistencyError{What: "rows", Index: i, Want: f.inputs[i].Numel(), Got: got}
		}
		if i == 0 {
			ncol = s.Sparsity().NCol()
		} else if got := s.Sparsity().NCol(); got != ncol {
			return nil, &ConsistencyError{What: "columns", Index: i, Want: ncol, Got: got}
		}
	}

	// Per-slot memo of derivative expressions, seeded at the input slots.
	derwork := make([]*expr.Node, len(f.tape))
	for ind, slot := range f.inputIdx {
		derwork[slot] = seeds[ind]
	}

	for el := range f.tape {
		if derwork[el] != nil {
			continue
		}
		n := f.tape[el].node

		if n.IsConstant() {
			derwork[el] = expr.Zeros(n.Numel(), ncol)
			continue
		}

		// Dependencies precede dependents in tape order, so their
		// derivatives are already memoized; an absent dependency
		// contributes a nil seed.
		depSeeds := make([]*expr.Node, n.NDep())
		for j, ci := range f.tape[el].deps {
			if ci != absentDep {
				depSeeds[j] = derwork[ci]
			}
		}

		sens, err := expr.DeriveOp(n, depSeeds, ncol)
		if err != nil {
			return nil, errors.Wrapf(err, "function: differentiating tape entry %d (%s)", el, n.Op())
		}
		derwork[el] = sens
	}

	ret := make([]*expr.Node, len(f.outputs))
	for ind, slot := range f.outputIdx {
		ret[ind] = derwork[slot]
	}
	return ret, nil
}
