// Package depends computes ntOrder: the dependency order of a grammar's
// non-terminals that every other analysis phase walks in. Edges go from a
// non-terminal to every non-terminal referenced by a positive conjunct of any
// of its rules; negative conjuncts do not contribute edges. Nodes are emitted
// in post-order of a depth-first traversal, started from every unvisited
// vertex in the grammar's declaration order, which yields a topological order
// with callees before callers. A cycle formed purely of positive-conjunct
// self/mutual references is allowed here (left recursion is rejected later,
// during PFIRST, not during ordering).
package depends

import (
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/util"
)

// frame is one stack entry of the iterative post-order walk: the node being
// visited and how many of its edges have already been pushed.
type frame struct {
	n        *node
	nextEdge int
}

// Order returns ntOrder for g. The walk is iterative rather than recursive,
// using util.Stack the way the table-driven LL(1) parser in the retrieval
// pack uses it for its symbol stack — a per-call-local stack, not a module
// global, per the generator's rule against global mutable traversal state.
// visited is a util.SVSet rather than a bare map for the same reason the
// lookahead sets are: one keyed-set type used everywhere a set of strings is
// needed.
func Order(g *ast.Grammar) []string {
	gr := newGraph()
	for _, nt := range g.NonTerminals() {
		gr.get(nt)
		for _, ref := range g.PositiveReferences(nt) {
			gr.linkTo(nt, ref)
		}
	}

	visited := util.NewSVSet[bool]()
	var order []string

	for _, nt := range g.NonTerminals() {
		if visited.Has(nt) {
			continue
		}

		stack := util.NewStack[*frame](&frame{n: gr.get(nt)})
		visited.Add(nt)

		for !stack.Empty() {
			top := stack.Peek()

			if top.nextEdge < len(top.n.edges) {
				child := top.n.edges[top.nextEdge]
				top.nextEdge++
				if !visited.Has(child.name) {
					visited.Add(child.name)
					stack.Push(&frame{n: child})
				}
				continue
			}

			stack.Pop()
			order = append(order, top.n.name)
		}
	}

	return order
}
