package function

import (
	"go.uber.org/zap"

	"github.com/symgraph/symgraph/internal/expr"
	"github.com/symgraph/symgraph/internal/matrix"
)

// tapeEntry is one linearized node with its owned value buffers and
// pre-resolved views into its dependencies' buffers. Every dependency slot
// index is strictly smaller than the entry's own index; absentDep marks a
// missing dependency. The views make evaluation allocation-free and
// lookup-free: a sweep only does slot-indexed buffer access.
type tapeEntry struct {
	node *expr.Node

	val []float64   // primal
	fwd [][]float64 // tangent, one buffer per forward direction
	adj [][]float64 // sensitivity, one buffer per adjoint direction

	deps []int // resolved dependency slots, absentDep when missing

	// Non-owning views into each dependency's buffers. Invalidated the
	// moment the tape is rebuilt.
	argVal [][]float64
	argFwd [][][]float64
	argAdj [][][]float64

	// Private initialized callee for call nodes.
	callee expr.Callee
}

// absentDep is the sentinel slot index for a missing dependency.
const absentDep = -1

// Init (re)builds the evaluation tape from the current roots: sorts the
// reachable graph, allocates zero-initialized primal/tangent/sensitivity
// buffers sized to each node's element count, resolves dependency slots
// and buffer views, and records the port-to-slot maps. Idempotent; must be
// re-invoked after SetNumDirections. Replacing the tape invalidates every
// buffer and view of the previous one.
func (f *Function) Init() {
	f.log.Debug("init begin")

	sorted := expr.SortDepthFirst(f.inputs, f.outputs)

	// Transient order side-table, scoped to this build: node -> tape slot.
	pos := make(map[*expr.Node]int, len(sorted))
	for i, n := range sorted {
		pos[n] = i
	}

	f.inputIdx = make([]int, len(f.inputs))
	for i, n := range f.inputs {
		f.inputIdx[i] = pos[n]
	}
	f.outputIdx = make([]int, len(f.outputs))
	for i, n := range f.outputs {
		f.outputIdx[i] = pos[n]
	}

	maxNumel := 0
	f.tape = make([]tapeEntry, len(sorted))
	for i, n := range sorted {
		e := &f.tape[i]
		e.node = n

		numel := n.Numel()
		if numel > maxNumel {
			maxNumel = numel
		}
		e.val = make([]float64, numel)
		e.fwd = make([][]float64, f.nfdir)
		for d := range e.fwd {
			e.fwd[d] = make([]float64, numel)
		}
		e.adj = make([][]float64, f.nadir)
		for d := range e.adj {
			e.adj[d] = make([]float64, numel)
		}

		ndep := n.NDep()
		e.deps = make([]int, ndep)
		e.argVal = make([][]float64, ndep)
		e.argFwd = make([][][]float64, ndep)
		e.argAdj = make([][][]float64, ndep)
		for j := 0; j < ndep; j++ {
			d := n.Dep(j)
			if d == nil {
				e.deps[j] = absentDep
				continue
			}
			ci := pos[d]
			e.deps[j] = ci
			e.argVal[j] = f.tape[ci].val
			e.argFwd[j] = f.tape[ci].fwd
			e.argAdj[j] = f.tape[ci].adj
		}

		if n.Op() == expr.OpCall {
			e.callee = n.Callee().Instantiate(f.nfdir, f.nadir)
		}
	}

	// Seed and sensitivity banks for the configured direction counts.
	f.fwdSeed = portBank(f.inputs, f.nfdir)
	f.fwdSens = portBank(f.outputs, f.nfdir)
	f.adjSeed = portBank(f.outputs, f.nadir)
	f.adjSens = portBank(f.inputs, f.nadir)

	f.liftBuf = make([]float64, maxNumel)
	f.initialized = true

	f.log.Debug("init end",
		zap.Int("entries", len(f.tape)),
		zap.Int("nfdir", f.nfdir),
		zap.Int("nadir", f.nadir))
}

func portBank(ports []*expr.Node, ndir int) [][]*matrix.Matrix {
	bank := make([][]*matrix.Matrix, len(ports))
	for i, n := range ports {
		bank[i] = make([]*matrix.Matrix, ndir)
		for d := 0; d < ndir; d++ {
			bank[i][d] = matrix.New(n.Sparsity())
		}
	}
	return bank
}
