// Package pprint renders the generator's analysis artifacts as
// human-readable text for stdout: the grammar AST, the non-terminal
// reference adjacency list, ntOrder, the PFIRST map, the PFOLLOW map, and
// the LL(k) parsing table.
//
// Grounded on internal/ictiobus/parse's LR table renderers, which build a
// [][]string grid and hand it to rosed's InsertTableOpts.
package pprint

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/bbnfgen/internal/bbnf/analysis"
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/lookahead"
	"github.com/dekarrin/bbnfgen/internal/bbnf/table"
)

// Grammar renders g's disjunctions, one indented block per non-terminal, in
// declaration order.
func Grammar(g *ast.Grammar) string {
	var sb strings.Builder
	for _, nt := range g.NonTerminals() {
		disj, _ := g.Disjunction(nt)
		fmt.Fprintf(&sb, "%s ->\n", nt)
		for i, rule := range disj.Rules {
			parts := make([]string, len(rule.Conjuncts))
			for j, cid := range rule.Conjuncts {
				parts[j] = g.Conjunct(cid).String()
			}
			sep := " &\n    "
			fmt.Fprintf(&sb, "    %s\n", strings.Join(parts, sep))
			if i < len(disj.Rules)-1 {
				sb.WriteString("  |\n")
			}
		}
		sb.WriteString(";\n\n")
	}
	return sb.String()
}

// References renders, for every non-terminal in declaration order, the
// distinct non-terminals referenced by one of its positive conjuncts.
func References(g *ast.Grammar) string {
	data := [][]string{{"non-terminal", "|", "references"}}
	for _, nt := range g.NonTerminals() {
		refs := g.PositiveReferences(nt)
		data = append(data, []string{nt, "|", strings.Join(refs, ", ")})
	}
	return table3(data)
}

// Order renders ntOrder as a numbered list, callees before callers.
func Order(order []string) string {
	var sb strings.Builder
	for i, nt := range order {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, nt)
	}
	return sb.String()
}

// LookaheadMap renders a per-non-terminal map of lookahead sets (PFIRST or
// PFOLLOW), walked in order.
func LookaheadMap(order []string, m map[string]lookahead.LSet) string {
	data := [][]string{{"non-terminal", "|", "set"}}
	for _, nt := range order {
		data = append(data, []string{nt, "|", m[nt].String()})
	}
	return table3(data)
}

// Table renders one row per (non-terminal, lookahead sequence) entry, with
// the winning rule's conjuncts in the last column.
func Table(g *ast.Grammar, t *table.Table) string {
	data := [][]string{{"non-terminal", "lookahead", "|", "conjuncts"}}
	for _, nt := range t.NonTerms() {
		for _, e := range t.EntriesFor(nt) {
			parts := make([]string, len(e.Conjuncts))
			for i, cid := range e.Conjuncts {
				parts[i] = g.Conjunct(cid).String()
			}
			data = append(data, []string{
				nt,
				"[" + strings.Join(e.Seq, " ") + "]",
				"|",
				strings.Join(parts, " & "),
			})
		}
	}
	return table4(data)
}

func table3(data [][]string) string {
	return rosed.Edit("").InsertTableOpts(0, data, 100, rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}).String()
}

func table4(data [][]string) string {
	return rosed.Edit("").InsertTableOpts(0, data, 120, rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}).String()
}

// Report renders all six stdout sections the CLI's generate subcommand
// prints, in the order spec.md §6 lists them.
func Report(ctx *analysis.Context, t *table.Table) string {
	var sb strings.Builder

	sb.WriteString("=== Grammar ===\n")
	sb.WriteString(Grammar(ctx.Grammar))

	sb.WriteString("=== References ===\n")
	sb.WriteString(References(ctx.Grammar))
	sb.WriteString("\n\n")

	sb.WriteString("=== ntOrder ===\n")
	sb.WriteString(Order(ctx.Order))
	sb.WriteString("\n")

	sb.WriteString("=== PFIRST ===\n")
	sb.WriteString(LookaheadMap(ctx.Order, ctx.PFirst))
	sb.WriteString("\n\n")

	sb.WriteString("=== PFOLLOW ===\n")
	sb.WriteString(LookaheadMap(ctx.Order, ctx.PFollow))
	sb.WriteString("\n\n")

	sb.WriteString("=== LL(k) table ===\n")
	sb.WriteString(Table(ctx.Grammar, t))
	sb.WriteString("\n")

	return sb.String()
}
