package function

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/symgraph/symgraph/internal/expr"
)

// Evaluate runs one forward sweep with nfdir tangent directions and, when
// nadir > 0, one adjoint sweep with nadir sensitivity directions.
//
// Forward: input port values and tangent seeds are copied into their
// mapped slots, entries execute in ascending index order (every entry is
// recomputed on every call), the lifting hook fires after each nonlinear
// entry, and output values and tangent sensitivities are copied out.
//
// Adjoint: every sensitivity buffer is zeroed, output-port adjoint seeds
// are copied in, entries execute in descending index order accumulating
// into their dependencies, and input-port sensitivities are copied out.
//
// Calling Evaluate before Init, or requesting more directions than
// configured, is a fatal precondition violation.
func (f *Function) Evaluate(nfdir, nadir int) {
	f.assertInit("Evaluate")
	if nfdir < 0 || nfdir > f.nfdir || nadir < 0 || nadir > f.nadir {
		panic(fmt.Sprintf("function: Evaluate(%d, %d) exceeds configured directions (%d, %d)",
			nfdir, nadir, f.nfdir, f.nadir))
	}
	f.log.Debug("evaluate begin", zap.Int("nfdir", nfdir), zap.Int("nadir", nadir))

	// Pass the inputs.
	for ind, slot := range f.inputIdx {
		_ = f.in[ind].Get(f.tape[slot].val)
	}

	// Pass the forward seeds.
	for dir := 0; dir < nfdir; dir++ {
		for ind, slot := range f.inputIdx {
			_ = f.fwdSeed[ind][dir].Get(f.tape[slot].fwd[dir])
		}
	}

	// Forward sweep.
	for i := range f.tape {
		e := &f.tape[i]
		expr.EvalOp(e.node, e.callee, e.argVal, e.val, e.argFwd, e.fwd, e.adj, e.argAdj, nfdir, 0)
		if f.liftFn != nil && e.node.IsNonlinear() {
			// The hook gets a copy: a pure side channel that cannot alter
			// evaluation order or values.
			buf := f.liftBuf[:len(e.val)]
			copy(buf, e.val)
			f.liftFn(buf, f.liftData)
		}
	}
	f.log.Debug("evaluate evaluated forward")

	// Get the outputs.
	for ind, slot := range f.outputIdx {
		_ = f.out[ind].Set(f.tape[slot].val)
	}

	// Get the forward sensitivities.
	for dir := 0; dir < nfdir; dir++ {
		for ind, slot := range f.outputIdx {
			_ = f.fwdSens[ind][dir].Set(f.tape[slot].fwd[dir])
		}
	}

	if nadir > 0 {
		// Reverse accumulation needs a clean start.
		for i := range f.tape {
			for dir := 0; dir < nadir; dir++ {
				zeroSlice(f.tape[i].adj[dir])
			}
		}

		// Pass the adjoint seeds.
		for ind, slot := range f.outputIdx {
			for dir := 0; dir < nadir; dir++ {
				_ = f.adjSeed[ind][dir].Get(f.tape[slot].adj[dir])
			}
		}

		// Adjoint sweep, accumulating into dependencies.
		for i := len(f.tape) - 1; i >= 0; i-- {
			e := &f.tape[i]
			expr.EvalOp(e.node, e.callee, e.argVal, e.val, e.argFwd, e.fwd, e.adj, e.argAdj, 0, nadir)
		}

		// Get the adjoint sensitivities.
		for ind, slot := range f.inputIdx {
			for dir := 0; dir < nadir; dir++ {
				_ = f.adjSens[ind][dir].Set(f.tape[slot].adj[dir])
			}
		}
		f.log.Debug("evaluate evaluated adjoint")
	}
	f.log.Debug("evaluate end")
}

func zeroSlice(v []float64) {
	for i := range v {
		v[i] = 0
	}
}
