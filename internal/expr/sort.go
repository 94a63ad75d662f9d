package expr

// Visit marks for the depth-first sort. Marks live in a side-table scoped
// to one traversal, so concurrent sorts over shared nodes never interfere.
const (
	unseen uint8 = iota
	open
	done
)

// dfsFrame is one explicit-stack frame: a node and the index of the next
// dependency to visit. The explicit stack bounds memory on deep graphs
// where recursion would overflow the call stack.
type dfsFrame struct {
	node *Node
	next int
}

// SortDepthFirst returns every node reachable from the two seed sets in
// dependency order: a node appears only after all of its dependencies.
// Shared nodes appear exactly once regardless of how many parents
// reference them. Inputs are seeded before outputs, so declared inputs
// occupy the earliest slots.
//
// A breadth-first reordering (Kahn) would be more cache friendly for very
// wide graphs; depth-first order is the functional baseline.
func SortDepthFirst(inputs, outputs []*Node) []*Node {
	marks := make(map[*Node]uint8)
	order := make([]*Node, 0, len(inputs)+len(outputs))
	stack := make([]dfsFrame, 0, 64)

	visit := func(root *Node) {
		if root == nil || marks[root] != unseen {
			return
		}
		marks[root] = open
		stack = append(stack, dfsFrame{node: root})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.node.deps) {
				d := top.node.deps[top.next]
				top.next++
				if d == nil || marks[d] != unseen {
					continue
				}
				marks[d] = open
				stack = append(stack, dfsFrame{node: d})
				continue
			}
			order = append(order, top.node)
			marks[top.node] = done
			stack = stack[:len(stack)-1]
		}
	}

	for _, n := range inputs {
		visit(n)
	}
	for _, n := range outputs {
		visit(n)
	}
	return order
}
