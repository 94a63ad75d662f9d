// Package function implements evaluable functions over shared expression
// graphs: construction validation, tape initialization with pre-resolved
// buffer views, forward/adjoint evaluation sweeps, the lifting side
// channel, and symbolic forward differentiation.
package function

import (
	"go.uber.org/zap"

	"github.com/symgraph/symgraph/internal/expr"
	"github.com/symgraph/symgraph/internal/matrix"
)

// LiftingFunc is the side-channel callback invoked during the forward
// sweep for every nonlinear tape entry, after that entry is evaluated.
// The values slice is a copy of the entry's output buffer, so the callback
// cannot perturb evaluation.
type LiftingFunc func(values []float64, userData any)

// Function evaluates declared output expressions from declared input
// expressions over a linearized tape.
//
// A Function is single-threaded: the tape buffers are mutable shared state
// and concurrent Evaluate calls on one instance must not overlap. Nodes,
// by contrast, are immutable and freely shared across instances.
type Function struct {
	inputs  []*expr.Node
	outputs []*expr.Node

	// External I/O ports, separate from the internal tape buffers.
	in  []*matrix.Matrix
	out []*matrix.Matrix

	// Per-port, per-direction seed and sensitivity banks, allocated at Init
	// for the configured direction counts.
	fwdSeed [][]*matrix.Matrix // [input][dir]
	fwdSens [][]*matrix.Matrix // [output][dir]
	adjSeed [][]*matrix.Matrix // [output][dir]
	adjSens [][]*matrix.Matrix // [input][dir]

	nfdir int
	nadir int

	tape      []tapeEntry
	inputIdx  []int // declared input port -> tape slot
	outputIdx []int // declared output port -> tape slot

	liftFn   LiftingFunc
	liftData any
	liftBuf  []float64

	log         *zap.Logger
	initialized bool
}

// New validates the root expressions and creates a function instance.
// Every input must be a non-nil pure symbolic leaf and every output
// non-nil; violations return a *ConstructionError naming the offending
// index. The instance must be initialized with Init before evaluation.
func New(inputs, outputs []*expr.Node) (*Function, error) {
	for i, n := range inputs {
		if n == nil {
			return nil, &ConstructionError{Port: "input", Index: i, Reason: "is null"}
		}
		if !n.IsSymbolic() {
			return nil, &ConstructionError{Port: "input", Index: i, Reason: "is not purely symbolic"}
		}
	}
	for i, n := range outputs {
		if n == nil {
			return nil, &ConstructionError{Port: "output", Index: i, Reason: "is null"}
		}
	}

	f := &Function{
		inputs:  append([]*expr.Node(nil), inputs...),
		outputs: append([]*expr.Node(nil), outputs...),
		in:      make([]*matrix.Matrix, len(inputs)),
		out:     make([]*matrix.Matrix, len(outputs)),
		nfdir:   1,
		nadir:   1,
		log:     zap.NewNop(),
	}
	for i, n := range f.inputs {
		f.in[i] = matrix.New(n.Sparsity())
	}
	for i, n := range f.outputs {
		f.out[i] = matrix.New(n.Sparsity())
	}
	return f, nil
}

// SetNumDirections configures how many forward and adjoint directions the
// tape carries. Changing the configuration invalidates the current tape;
// Init must be called again before evaluating.
func (f *Function) SetNumDirections(nfdir, nadir int) {
	if nfdir < 0 || nadir < 0 {
		panic("function: SetNumDirections: direction counts must be non-negative")
	}
	f.nfdir = nfdir
	f.nadir = nadir
	f.initialized = false
}

// SetLogger replaces the instance logger; nil restores the no-op logger.
func (f *Function) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	f.log = log
}

// SetLiftingFunction registers the forward-sweep side channel; a nil
// callback disables it.
func (f *Function) SetLiftingFunction(fn LiftingFunc, userData any) {
	f.liftFn = fn
	f.liftData = userData
}

// NumInputs returns the declared input port count.
func (f *Function) NumInputs() int { return len(f.inputs) }

// NumOutputs returns the declared output port count.
func (f *Function) NumOutputs() int { return len(f.outputs) }

// InputExpr returns the i-th declared input expression.
func (f *Function) InputExpr(i int) *expr.Node { return f.inputs[i] }

// OutputExpr returns the i-th declared output expression.
func (f *Function) OutputExpr(i int) *expr.Node { return f.outputs[i] }

// InputSparsity returns the sparsity of input port i.
func (f *Function) InputSparsity(i int) matrix.Sparsity { return f.inputs[i].Sparsity() }

// OutputSparsity returns the sparsity of output port i.
func (f *Function) OutputSparsity(i int) matrix.Sparsity { return f.outputs[i].Sparsity() }

// Input returns the i-th input port.
func (f *Function) Input(i int) *matrix.Matrix { return f.in[i] }

// Output returns the i-th output port.
func (f *Function) Output(i int) *matrix.Matrix { return f.out[i] }

// FwdSeed returns the tangent seed for input port i, direction d.
func (f *Function) FwdSeed(i, d int) *matrix.Matrix {
	f.assertInit("FwdSeed")
	return f.fwdSeed[i][d]
}

// FwdSens returns the tangent sensitivity for output port i, direction d.
func (f *Function) FwdSens(i, d int) *matrix.Matrix {
	f.assertInit("FwdSens")
	return f.fwdSens[i][d]
}

// AdjSeed returns the adjoint seed for output port i, direction d.
func (f *Function) AdjSeed(i, d int) *matrix.Matrix {
	f.assertInit("AdjSeed")
	return f.adjSeed[i][d]
}

// AdjSens returns the adjoint sensitivity for input port i, direction d.
func (f *Function) AdjSens(i, d int) *matrix.Matrix {
	f.assertInit("AdjSens")
	return f.adjSens[i][d]
}

// NumTapeEntries returns the tape length; zero before Init.
func (f *Function) NumTapeEntries() int { return len(f.tape) }

// Initialized reports whether the tape is built.
func (f *Function) Initialized() bool { return f.initialized }

// Clone rebuilds an independent instance from the same shared root
// expressions: same direction configuration and lifting hook, private tape
// buffers with no aliasing into the source. The clone is initialized if
// the source was.
func (f *Function) Clone() *Function {
	g, err := New(f.inputs, f.outputs)
	if err != nil {
		// Roots were validated when f was built.
		panic("function: Clone: " + err.Error())
	}
	g.nfdir = f.nfdir
	g.nadir = f.nadir
	g.liftFn = f.liftFn
	g.liftData = f.liftData
	g.log = f.log
	if f.initialized {
		g.Init()
	}
	return g
}

// assertInit is the fatal precondition check: operating on an
// uninitialized instance is a programming error, not a recoverable one.
func (f *Function) assertInit(op string) {
	if !f.initialized {
		panic("function: " + op + " called before Init")
	}
}
