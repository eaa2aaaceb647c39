package ast

// Grammar is a mapping from non-terminal name to its disjunction, plus the
// bookkeeping the rest of the pipeline needs: the conjunct arena that the
// parsing table aliases into, and the declaration order of non-terminals and
// literals (needed for deterministic iteration and for numbering in the
// emitted parser).
//
// A Grammar is built once by the front end and is immutable for the rest of
// the pipeline.
type Grammar struct {
	disjunctions map[string]Disjunction
	order        []string // non-terminal declaration order
	seenNT       map[string]bool

	arena []Conjunct

	literals   []string // Σ \ {""}, in first-appearance order
	seenLiteral map[string]bool
}

// NewGrammar returns an empty, ready-to-populate Grammar.
func NewGrammar() *Grammar {
	return &Grammar{
		disjunctions: map[string]Disjunction{},
		seenNT:       map[string]bool{},
		seenLiteral:  map[string]bool{},
	}
}

// AddConjunct places c in the arena and returns its stable ID. Any literal
// symbols c mentions are recorded in Σ's declaration order as a side effect.
func (g *Grammar) AddConjunct(c Conjunct) ConjunctID {
	for _, sym := range c.Symbols {
		if sym.Kind == KindLiteral && !g.seenLiteral[sym.Text] {
			g.seenLiteral[sym.Text] = true
			g.literals = append(g.literals, sym.Text)
		}
	}
	id := ConjunctID(len(g.arena))
	g.arena = append(g.arena, c)
	return id
}

// Conjunct retrieves the conjunct stored at id. It panics if id is out of
// range, which indicates a programmer error (a dangling ID never happens
// with normal use of AddConjunct/AddRule).
func (g *Grammar) Conjunct(id ConjunctID) Conjunct {
	return g.arena[id]
}

// AddRule appends rule to nt's disjunction, creating the disjunction (and
// recording nt in declaration order) if this is the first rule seen for nt.
//
// If nt was already declared by an earlier AddRule for a different
// disjunction block, the new rule is appended to the existing one: a
// non-terminal declared more than once in the source simply accumulates
// rules in file order, rather than being rejected.
func (g *Grammar) AddRule(nt string, rule Rule) {
	if !g.seenNT[nt] {
		g.seenNT[nt] = true
		g.order = append(g.order, nt)
	}
	disj := g.disjunctions[nt]
	disj.Rules = append(disj.Rules, rule)
	g.disjunctions[nt] = disj
}

// Disjunction looks up nt's disjunction.
func (g *Grammar) Disjunction(nt string) (Disjunction, bool) {
	d, ok := g.disjunctions[nt]
	return d, ok
}

// NonTerminals returns every non-terminal name in declaration order.
func (g *Grammar) NonTerminals() []string {
	return g.order
}

// Literals returns Σ \ {""} in first-appearance order.
func (g *Grammar) Literals() []string {
	return g.literals
}

// Alphabet returns Σ: every literal mentioned in the grammar, plus "".
func (g *Grammar) Alphabet() []string {
	out := make([]string, 0, len(g.literals)+1)
	out = append(out, "")
	out = append(out, g.literals...)
	return out
}

// PositiveReferences walks nt's disjunction and returns the distinct non-terminal
// names referenced by a positive conjunct of any of its rules, in order of
// first appearance. Negative conjuncts do not contribute: this is the edge
// relation the dependency graph in the depends package is built from.
func (g *Grammar) PositiveReferences(nt string) []string {
	disj, ok := g.disjunctions[nt]
	if !ok {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	for _, rule := range disj.Rules {
		for _, cid := range rule.Conjuncts {
			c := g.arena[cid]
			if c.Negative {
				continue
			}
			for _, name := range c.References() {
				if !seen[name] {
					seen[name] = true
					out = append(out, name)
				}
			}
		}
	}
	return out
}
