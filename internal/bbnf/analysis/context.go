// Package analysis holds the analysis context that threads through the
// generator's pipeline: the grammar, the chosen lookahead length, and the
// maps each phase populates. Treating this as a single struct passed
// explicitly — rather than a set of package-level mutable maps — keeps each
// phase's writes visible to the phases after it and to nothing else; fields
// are meant to be populated once, by the one phase responsible for them, and
// treated as read-only everywhere downstream.
package analysis

import (
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/lookahead"
)

// Context is the shared state of one generator run.
type Context struct {
	// Grammar is the immutable AST built by the front end.
	Grammar *ast.Grammar

	// K is the lookahead length, fixed for the run.
	K int

	// Order is ntOrder: non-terminals in dependency order, callees before
	// callers. Populated by the depends phase.
	Order []string

	// PFirst maps each non-terminal to its PFIRST(k) set. Populated by the
	// pfirst phase, in Order.
	PFirst map[string]lookahead.LSet

	// RuleFirst parallels Grammar's per-non-terminal rule lists: RuleFirst[nt][i]
	// is the PFIRST of the i'th rule under nt, as computed (and cached) while
	// populating PFirst. The table phase reuses it rather than recomputing.
	RuleFirst map[string][]lookahead.LSet

	// PFollow maps each non-terminal to its PFOLLOW(k) set. Populated by the
	// pfollow phase, in reverse Order.
	PFollow map[string]lookahead.LSet

	sigmaStarK *lookahead.LSet
}

// New returns a Context ready for the depends phase to populate Order.
func New(g *ast.Grammar, k int) *Context {
	return &Context{
		Grammar:   g,
		K:         k,
		PFirst:    map[string]lookahead.LSet{},
		RuleFirst: map[string][]lookahead.LSet{},
		PFollow:   map[string]lookahead.LSet{},
	}
}

// StartSymbol is the non-terminal no other non-terminal depends on: the last
// entry of Order. It is undefined (returns "") until the depends phase has
// run.
func (c *Context) StartSymbol() string {
	if len(c.Order) == 0 {
		return ""
	}
	return c.Order[len(c.Order)-1]
}

// SigmaStarK returns Σ*_k for this context's grammar and k, computing and
// memoizing it on first use.
func (c *Context) SigmaStarK() lookahead.LSet {
	if c.sigmaStarK == nil {
		s := lookahead.SigmaStarK(c.K, c.Grammar.Alphabet())
		c.sigmaStarK = &s
	}
	return *c.sigmaStarK
}
