package depends

// node is one vertex of the positive-reference graph: a non-terminal and the
// out-edges to non-terminals it positively references. This is a trimmed,
// string-keyed analogue of the translation package's generic directed graph:
// the dependency graph here never needs back-edges or generic payloads, only
// a place to hang successors for the post-order walk in order.go.
type node struct {
	name  string
	edges []*node
}

type graph struct {
	nodes map[string]*node
}

func newGraph() *graph {
	return &graph{nodes: map[string]*node{}}
}

func (g *graph) get(name string) *node {
	n, ok := g.nodes[name]
	if !ok {
		n = &node{name: name}
		g.nodes[name] = n
	}
	return n
}

func (g *graph) linkTo(from, to string) {
	f := g.get(from)
	t := g.get(to)
	f.edges = append(f.edges, t)
}
