// Package pfollow computes PFOLLOW(k) for every non-terminal in a grammar,
// propagating right context in reverse dependency order. It must run after
// pfirst has populated ctx.PFirst.
package pfollow

import (
	"github.com/dekarrin/bbnfgen/internal/bbnf/analysis"
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/lookahead"
)

// Compute populates ctx.PFollow. The start symbol (ctx.StartSymbol) seeds
// with {[""]}; every other non-terminal starts at ∅ and grows as later
// non-terminals (walked in reverse ctx.Order) contribute the lookahead sets
// that follow their occurrences.
//
// Negative conjuncts are walked by the same procedure as positive ones: the
// non-terminals they mention still need a FOLLOW set so the emitter can
// generate code that calls their sub-parsers in a language-terminated
// manner, even though the resulting set may be imprecise for a negative
// conjunct's interior non-terminals (negative conjuncts never choose a
// table entry, so that imprecision is harmless).
func Compute(ctx *analysis.Context) {
	for _, nt := range ctx.Order {
		ctx.PFollow[nt] = lookahead.New()
	}

	if start := ctx.StartSymbol(); start != "" {
		ctx.PFollow[start] = lookahead.EmptyString()
	}

	for i := len(ctx.Order) - 1; i >= 0; i-- {
		nt := ctx.Order[i]
		disj, ok := ctx.Grammar.Disjunction(nt)
		if !ok {
			continue
		}

		for _, rule := range disj.Rules {
			for _, cid := range rule.Conjuncts {
				conj := ctx.Grammar.Conjunct(cid)
				propagateConjunct(ctx, nt, conj)
			}
		}
	}
}

func propagateConjunct(ctx *analysis.Context, nt string, conj ast.Conjunct) {
	for i, sym := range conj.Symbols {
		if sym.Kind != ast.KindNonTerm {
			continue
		}
		m := sym.Text

		partial := lookahead.New()
		for j := i + 1; j < len(conj.Symbols); j++ {
			suffixSym := conj.Symbols[j]
			switch suffixSym.Kind {
			case ast.KindLiteral:
				partial = lookahead.Concat(ctx.K, partial, lookahead.Single(suffixSym.Text))
			case ast.KindNonTerm:
				partial = lookahead.Concat(ctx.K, partial, ctx.PFirst[suffixSym.Text])
			case ast.KindEpsilon:
				// no effect
			}
		}

		if m == nt {
			partial = lookahead.SelfExpand(ctx.K, partial)
		} else {
			partial = lookahead.Concat(ctx.K, partial, ctx.PFollow[nt])
		}

		ctx.PFollow[m] = ctx.PFollow[m].Union(partial)
	}
}
