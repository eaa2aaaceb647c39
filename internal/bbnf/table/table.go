// Package table builds and holds the LL(k) parsing table: the map from
// (non-terminal, lookahead sequence) to the conjunct list of the rule that
// wins at that key.
package table

import (
	"sort"

	"github.com/dekarrin/bbnfgen/internal/bbnf/analysis"
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/lookahead"
)

// Entry is one populated cell of the table.
type Entry struct {
	NonTerm   string
	Seq       []string
	Conjuncts []ast.ConjunctID
}

type key struct {
	nonTerm string
	seqKey  string
}

// Table is the completed LL(k) parsing table.
type Table struct {
	entries map[key]Entry
}

// New returns an empty Table.
func New() *Table {
	return &Table{entries: map[key]Entry{}}
}

// Set writes conjuncts to the (nt, seq) cell, overwriting whatever was there
// before. This is the "last writer wins" rule the build in Build relies on:
// when two rules under the same non-terminal would both claim a key, the one
// processed later — later in rule declaration order — is the one the table
// remembers.
func (t *Table) Set(nt string, seq []string, conjuncts []ast.ConjunctID) {
	t.entries[key{nonTerm: nt, seqKey: lookahead.EncodeSeq(seq)}] = Entry{
		NonTerm:   nt,
		Seq:       seq,
		Conjuncts: conjuncts,
	}
}

// Get looks up the conjuncts for (nt, seq).
func (t *Table) Get(nt string, seq []string) ([]ast.ConjunctID, bool) {
	e, ok := t.entries[key{nonTerm: nt, seqKey: lookahead.EncodeSeq(seq)}]
	return e.Conjuncts, ok
}

// EntriesFor returns every entry keyed under nt, sorted by lookahead sequence
// for reproducible iteration.
func (t *Table) EntriesFor(nt string) []Entry {
	var out []Entry
	for k, e := range t.entries {
		if k.nonTerm == nt {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return lookahead.EncodeSeq(out[i].Seq) < lookahead.EncodeSeq(out[j].Seq)
	})
	return out
}

// NonTerms returns the distinct non-terminals with at least one table entry,
// sorted for reproducibility.
func (t *Table) NonTerms() []string {
	seen := map[string]bool{}
	for k := range t.entries {
		seen[k.nonTerm] = true
	}
	out := make([]string, 0, len(seen))
	for nt := range seen {
		out = append(out, nt)
	}
	sort.Strings(out)
	return out
}

// Build constructs the LL(k) parsing table from a Context whose PFirst,
// RuleFirst and PFollow maps are already populated (i.e. after the pfirst
// and pfollow phases have both run).
//
// For each rule R under a non-terminal NT, the applicable lookahead set is
// ⊕_k(PFIRST(R), PFOLLOW(NT)); every sequence in it becomes a key mapping to
// R's conjuncts. Rules are processed in declaration order within each
// disjunction, so a later rule's write to a shared key overwrites an
// earlier one's — table ambiguity from an LL(k)-unsafe grammar is the
// caller's responsibility, not something this builder detects (see the
// open-question note on this choice).
func Build(ctx *analysis.Context) *Table {
	t := New()

	for _, nt := range ctx.Order {
		disj, ok := ctx.Grammar.Disjunction(nt)
		if !ok {
			continue
		}

		follow := ctx.PFollow[nt]
		for i, rule := range disj.Rules {
			ruleFirst := ctx.RuleFirst[nt][i]
			applicable := lookahead.Concat(ctx.K, ruleFirst, follow)

			for _, seq := range applicable.Elements() {
				t.Set(nt, seq, rule.Conjuncts)
			}
		}
	}

	return t
}
