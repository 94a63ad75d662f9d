package function_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symgraph/symgraph/internal/expr"
	"github.com/symgraph/symgraph/internal/function"
)

func TestNew_RejectsNullInput(t *testing.T) {
	b := expr.SymScalar("b")
	_, err := function.New([]*expr.Node{nil, b}, []*expr.Node{b})
	require.Error(t, err)

	var cerr *function.ConstructionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, cerr.Index)
	assert.Equal(t, "input", cerr.Port)
	assert.Contains(t, err.Error(), "null")
}

func TestNew_RejectsNonSymbolicInput(t *testing.T) {
	a := expr.SymScalar("a")
	b := expr.SymScalar("b")
	_, err := function.New([]*expr.Node{a, expr.Mul(a, b)}, []*expr.Node{b})
	require.Error(t, err)

	var cerr *function.ConstructionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 1, cerr.Index)
	assert.Contains(t, err.Error(), "not purely symbolic")
}

func TestNew_RejectsNullOutput(t *testing.T) {
	a := expr.SymScalar("a")
	_, err := function.New([]*expr.Node{a}, []*expr.Node{nil})
	require.Error(t, err)

	var cerr *function.ConstructionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "output", cerr.Port)
}

func TestNew_AllocatesPorts(t *testing.T) {
	x := expr.Sym("x", 2, 3)
	y := expr.Neg(x)
	f, err := function.New([]*expr.Node{x}, []*expr.Node{y})
	require.NoError(t, err)

	assert.Equal(t, 1, f.NumInputs())
	assert.Equal(t, 1, f.NumOutputs())
	assert.Equal(t, 6, f.Input(0).Numel())
	assert.Equal(t, 6, f.Output(0).Numel())
	assert.True(t, f.InputSparsity(0).Equal(f.OutputSparsity(0)))
}

func TestInit_TapeCountsDistinctReachableNodes(t *testing.T) {
	// Sharing multiplicity must not inflate the entry count.
	a := expr.SymScalar("a")
	b := expr.SymScalar("b")
	ab := expr.Mul(a, b)
	y1 := expr.Add(ab, expr.Sin(a))

	f, err := function.New([]*expr.Node{a, b}, []*expr.Node{y1, ab})
	require.NoError(t, err)
	assert.False(t, f.Initialized())
	assert.Zero(t, f.NumTapeEntries())

	f.Init()
	assert.True(t, f.Initialized())
	assert.Equal(t, 5, f.NumTapeEntries()) // a, b, ab, sin(a), y1
}

func TestInit_Idempotent(t *testing.T) {
	f := mulFunction(t)
	f.Init()
	f.Init()

	f.Input(0).Fill(3)
	f.Input(1).Fill(4)
	f.Evaluate(0, 0)
	assert.Equal(t, 12.0, f.Output(0).At(0, 0))
}

func TestAccessors_BeforeInitPanic(t *testing.T) {
	f := mulFunction(t)
	assert.Panics(t, func() { f.FwdSeed(0, 0) })
	assert.Panics(t, func() { f.FwdSens(0, 0) })
	assert.Panics(t, func() { f.AdjSeed(0, 0) })
	assert.Panics(t, func() { f.AdjSens(0, 0) })
}

func TestClone_IndependentBuffers(t *testing.T) {
	f := mulFunction(t)
	f.Init()
	f.Input(0).Fill(3)
	f.Input(1).Fill(4)
	f.Evaluate(0, 0)

	g := f.Clone()
	assert.True(t, g.Initialized())

	// Evaluating the clone never touches the source's buffers.
	g.Input(0).Fill(10)
	g.Input(1).Fill(10)
	g.Evaluate(0, 0)

	assert.Equal(t, 100.0, g.Output(0).At(0, 0))
	assert.Equal(t, 12.0, f.Output(0).At(0, 0))
	assert.Equal(t, 3.0, f.Input(0).At(0, 0))
}

func TestClone_UninitializedStaysUninitialized(t *testing.T) {
	f := mulFunction(t)
	g := f.Clone()
	assert.False(t, g.Initialized())
	assert.Panics(t, func() { g.Evaluate(0, 0) })
}

func TestSetNumDirections_NegativePanics(t *testing.T) {
	f := mulFunction(t)
	assert.Panics(t, func() { f.SetNumDirections(-1, 0) })
}
