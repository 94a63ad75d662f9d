package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symgraph/symgraph/internal/expr"
)

func TestDeriveOp_NilSeedTreatedAsZero(t *testing.T) {
	a := expr.SymScalar("a")
	b := expr.SymScalar("b")
	sum := expr.Add(a, b)

	sb := expr.Eye(1)
	d, err := expr.DeriveOp(sum, []*expr.Node{nil, sb}, 1)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, expr.OpAdd, d.Op())
	assert.True(t, d.Dep(0).IsConstant())
}

func TestDeriveOp_UnseededLeavesAreConstant(t *testing.T) {
	free := expr.Sym("free", 2, 1)
	d, err := expr.DeriveOp(free, nil, 3)
	require.NoError(t, err)
	assert.True(t, d.IsConstant())
	assert.Equal(t, 2, d.Sparsity().NRow())
	assert.Equal(t, 3, d.Sparsity().NCol())
}

func TestDeriveOp_ScaleRowsClosedForSingleColumn(t *testing.T) {
	// Derivative graphs are built from ScaleRows; a second single-column
	// differentiation must stay inside the operation set.
	x := expr.Sym("x", 2, 1)
	w := expr.Sym("w", 2, 1)
	n := expr.ScaleRows(x, w)

	sx := expr.Zeros(2, 1)
	sw := expr.Ones(2, 1)
	d, err := expr.DeriveOp(n, []*expr.Node{sx, sw}, 1)
	require.NoError(t, err)
	assert.Equal(t, expr.OpAdd, d.Op())
}

func TestDeriveOp_ScaleRowsMultiColumnUnsupported(t *testing.T) {
	x := expr.Sym("x", 2, 3)
	w := expr.Sym("w", 2, 1)
	n := expr.ScaleRows(x, w)

	_, err := expr.DeriveOp(n, []*expr.Node{expr.Zeros(6, 1), expr.Zeros(2, 1)}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}
