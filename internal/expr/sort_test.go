package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symgraph/symgraph/internal/expr"
)

// indexOf builds the node -> position table for a sorted slice.
func indexOf(sorted []*expr.Node) map[*expr.Node]int {
	pos := make(map[*expr.Node]int, len(sorted))
	for i, n := range sorted {
		pos[n] = i
	}
	return pos
}

// assertTopological checks that every dependency precedes its dependent.
func assertTopological(t *testing.T, sorted []*expr.Node) {
	t.Helper()
	pos := indexOf(sorted)
	for i, n := range sorted {
		for j := 0; j < n.NDep(); j++ {
			d := n.Dep(j)
			if d == nil {
				continue
			}
			di, ok := pos[d]
			require.True(t, ok, "dependency of entry %d missing from sort", i)
			assert.Less(t, di, i, "dependency must precede dependent")
		}
	}
}

func TestSortDepthFirst_Diamond(t *testing.T) {
	// a feeds both sin(a) and cos(a); the shared leaf must appear once.
	a := expr.SymScalar("a")
	y := expr.Add(expr.Sin(a), expr.Cos(a))

	sorted := expr.SortDepthFirst([]*expr.Node{a}, []*expr.Node{y})
	assert.Len(t, sorted, 4)
	assertTopological(t, sorted)

	// Inputs are seeded first.
	assert.Same(t, a, sorted[0])
	assert.Same(t, y, sorted[len(sorted)-1])
}

func TestSortDepthFirst_SharedSubexpression(t *testing.T) {
	a := expr.SymScalar("a")
	b := expr.SymScalar("b")
	ab := expr.Mul(a, b)
	y1 := expr.Add(ab, expr.Sin(a))
	y2 := ab

	sorted := expr.SortDepthFirst([]*expr.Node{a, b}, []*expr.Node{y1, y2})

	// Distinct reachable nodes: a, b, ab, sin(a), y1. Entry count is
	// independent of how many parents share ab.
	assert.Len(t, sorted, 5)
	assertTopological(t, sorted)

	seen := make(map[*expr.Node]bool)
	for _, n := range sorted {
		assert.False(t, seen[n], "node appears more than once")
		seen[n] = true
	}
}

func TestSortDepthFirst_UnreferencedInput(t *testing.T) {
	a := expr.SymScalar("a")
	b := expr.SymScalar("b") // not reachable from the output
	y := expr.Neg(a)

	sorted := expr.SortDepthFirst([]*expr.Node{a, b}, []*expr.Node{y})
	assert.Len(t, sorted, 3)
	assertTopological(t, sorted)
}

func TestSortDepthFirst_NilRootsSkipped(t *testing.T) {
	a := expr.SymScalar("a")
	sorted := expr.SortDepthFirst([]*expr.Node{nil, a}, []*expr.Node{nil})
	assert.Len(t, sorted, 1)
}

func TestSortDepthFirst_DeepChain(t *testing.T) {
	// A chain far deeper than the call stack tolerates under recursion.
	const depth = 200000
	x := expr.SymScalar("x")
	y := x
	for i := 0; i < depth; i++ {
		y = expr.Neg(y)
	}
	sorted := expr.SortDepthFirst([]*expr.Node{x}, []*expr.Node{y})
	assert.Len(t, sorted, depth+1)
	assert.Same(t, x, sorted[0])
	assert.Same(t, y, sorted[depth])
}

func TestSortDepthFirst_RepeatedTraversalsAgree(t *testing.T) {
	// Traversal state lives in a side-table, so resorting the same shared
	// graph yields the same result.
	a := expr.SymScalar("a")
	b := expr.SymScalar("b")
	y := expr.Mul(expr.Add(a, b), b)

	first := expr.SortDepthFirst([]*expr.Node{a, b}, []*expr.Node{y})
	second := expr.SortDepthFirst([]*expr.Node{a, b}, []*expr.Node{y})
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}
