package function_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symgraph/symgraph/internal/expr"
	"github.com/symgraph/symgraph/internal/function"
	"github.com/symgraph/symgraph/internal/matrix"
)

func TestJac_ScalarAgreesWithClosedForm(t *testing.T) {
	// y = a*b + sin(a); dy/da = b + cos(a).
	a := expr.SymScalar("a")
	b := expr.SymScalar("b")
	y := expr.Add(expr.Mul(a, b), expr.Sin(a))
	f, err := function.New([]*expr.Node{a, b}, []*expr.Node{y})
	require.NoError(t, err)
	f.Init()

	jac, err := f.Jac(0)
	require.NoError(t, err)
	require.Len(t, jac, 1)

	// The derivative is a new graph over the same symbols; the original
	// tape is untouched.
	assert.Equal(t, 5, f.NumTapeEntries())

	jf, err := function.New([]*expr.Node{a, b}, jac)
	require.NoError(t, err)
	jf.Init()
	jf.Input(0).Fill(1.2)
	jf.Input(1).Fill(0.7)
	jf.Evaluate(0, 0)

	assert.InDelta(t, 0.7+math.Cos(1.2), jf.Output(0).At(0, 0), 1e-12)
}

func TestJac_MatchesForwardEvaluationColumnByColumn(t *testing.T) {
	// Symbolic/numeric agreement: jac(0) evaluated at a point equals
	// forward sweeps with unit seeds on input 0.
	x := expr.Sym("x", 2, 1)
	c := expr.SymScalar("c")
	// y = x .* x, then scaled rowwise by c via a product with vertcat(c, c).
	y := expr.Mul(expr.Mul(x, x), expr.Vertcat(c, c))

	f, err := function.New([]*expr.Node{x, c}, []*expr.Node{y})
	require.NoError(t, err)
	f.Init()

	jac, err := f.Jac(0)
	require.NoError(t, err)
	require.Len(t, jac, 1)
	assert.Equal(t, 2, jac[0].Sparsity().NRow())
	assert.Equal(t, 2, jac[0].Sparsity().NCol())

	jf, err := function.New([]*expr.Node{x, c}, jac)
	require.NoError(t, err)
	jf.Init()

	xv := []float64{3, 5}
	cv := 2.0
	require.NoError(t, jf.Input(0).Set(xv))
	jf.Input(1).Fill(cv)
	jf.Evaluate(0, 0)

	// Column-by-column numeric forward evaluation of the original.
	require.NoError(t, f.Input(0).Set(xv))
	f.Input(1).Fill(cv)
	for col := 0; col < 2; col++ {
		seed := []float64{0, 0}
		seed[col] = 1
		require.NoError(t, f.FwdSeed(0, 0).Set(seed))
		f.FwdSeed(1, 0).Fill(0)
		f.Evaluate(1, 0)
		for row := 0; row < 2; row++ {
			assert.InDelta(t, f.FwdSens(0, 0).Data()[row], jf.Output(0).At(row, col), 1e-12,
				"jacobian entry (%d,%d)", row, col)
		}
	}
}

func TestAdFwd_MultiColumnSeeds(t *testing.T) {
	// One AdFwd call with two symbolic directions: d(a*b) = [b, a].
	a := expr.SymScalar("a")
	b := expr.SymScalar("b")
	f, err := function.New([]*expr.Node{a, b}, []*expr.Node{expr.Mul(a, b)})
	require.NoError(t, err)
	f.Init()

	sa, err := matrixConst(t, []float64{1, 0}, 1, 2)
	require.NoError(t, err)
	sb, err := matrixConst(t, []float64{0, 1}, 1, 2)
	require.NoError(t, err)

	der, err := f.AdFwd([]*expr.Node{sa, sb})
	require.NoError(t, err)
	require.Len(t, der, 1)

	df, err := function.New([]*expr.Node{a, b}, der)
	require.NoError(t, err)
	df.Init()
	df.Input(0).Fill(3)
	df.Input(1).Fill(4)
	df.Evaluate(0, 0)

	assert.Equal(t, 4.0, df.Output(0).At(0, 0))
	assert.Equal(t, 3.0, df.Output(0).At(0, 1))
}

func TestAdFwd_ConstantsGetZeroDerivative(t *testing.T) {
	a := expr.SymScalar("a")
	y := expr.Mul(a, expr.Scalar(5))
	f, err := function.New([]*expr.Node{a}, []*expr.Node{y})
	require.NoError(t, err)
	f.Init()

	jac, err := f.Jac(0)
	require.NoError(t, err)

	jf, err := function.New([]*expr.Node{a}, jac)
	require.NoError(t, err)
	jf.Init()
	jf.Input(0).Fill(17)
	jf.Evaluate(0, 0)
	assert.Equal(t, 5.0, jf.Output(0).At(0, 0))
}

func TestAdFwd_SeedCountMismatch(t *testing.T) {
	f := mulFunction(t)
	f.Init()

	_, err := f.AdFwd([]*expr.Node{expr.Eye(1)})
	var cerr *function.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Want)
	assert.Equal(t, 1, cerr.Got)
}

func TestAdFwd_ColumnMismatch(t *testing.T) {
	f := mulFunction(t)
	f.Init()

	_, err := f.AdFwd([]*expr.Node{expr.Zeros(1, 2), expr.Zeros(1, 3)})
	var cerr *function.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "columns", cerr.What)
	assert.Equal(t, 1, cerr.Index)
}

func TestAdFwd_RowMismatch(t *testing.T) {
	x := expr.Sym("x", 2, 1)
	f, err := function.New([]*expr.Node{x}, []*expr.Node{expr.Neg(x)})
	require.NoError(t, err)
	f.Init()

	_, err = f.AdFwd([]*expr.Node{expr.Zeros(3, 1)})
	var cerr *function.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "rows", cerr.What)
}

func TestAdFwd_NilSeedRejected(t *testing.T) {
	f := mulFunction(t)
	f.Init()

	_, err := f.AdFwd([]*expr.Node{nil, expr.Eye(1)})
	var cerr *function.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, cerr.Index)
}

func TestJac_CallNodeUnsupported(t *testing.T) {
	u := expr.SymScalar("u")
	g, err := function.New([]*expr.Node{u}, []*expr.Node{expr.Mul(u, u)})
	require.NoError(t, err)

	a := expr.SymScalar("a")
	f, err := function.New([]*expr.Node{a}, []*expr.Node{expr.NewCall(g, a)})
	require.NoError(t, err)
	f.Init()

	_, err = f.Jac(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call")
}

func TestJac_BeforeInitPanics(t *testing.T) {
	f := mulFunction(t)
	assert.Panics(t, func() { _, _ = f.Jac(0) })
}

func TestJac_IndexOutOfRangePanics(t *testing.T) {
	f := mulFunction(t)
	f.Init()
	assert.Panics(t, func() { _, _ = f.Jac(2) })
}

// matrixConst builds a constant expression from row-major data.
func matrixConst(t *testing.T, data []float64, nrow, ncol int) (*expr.Node, error) {
	t.Helper()
	m, err := matrix.FromSlice(data, matrix.Dense(nrow, ncol))
	if err != nil {
		return nil, err
	}
	return expr.Const(m), nil
}
