// Package pfirst computes PFIRST(k) for every non-terminal in a grammar: the
// set of lookahead sequences of length at most k that begin some string
// derivable from the non-terminal under BBNF's intersection/negation
// semantics.
package pfirst

import (
	"github.com/dekarrin/bbnfgen/internal/bbnf/analysis"
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/diag"
	"github.com/dekarrin/bbnfgen/internal/bbnf/lookahead"
)

// Compute populates ctx.PFirst and ctx.RuleFirst, walking ctx.Order so every
// callee's PFIRST is available before its callers need it. It returns the
// first LeftRecursion or ContradictoryRule error encountered, if any,
// aborting the walk (fail-fast, per the generator's error-handling policy).
func Compute(ctx *analysis.Context) error {
	for _, nt := range ctx.Order {
		disj, ok := ctx.Grammar.Disjunction(nt)
		if !ok {
			ctx.PFirst[nt] = lookahead.New()
			continue
		}

		result := lookahead.New()
		ruleFirsts := make([]lookahead.LSet, len(disj.Rules))
		for i, rule := range disj.Rules {
			rf, err := RuleFirst(ctx, nt, i, rule)
			if err != nil {
				return err
			}
			ruleFirsts[i] = rf
			result = result.Union(rf)
		}

		ctx.RuleFirst[nt] = ruleFirsts
		ctx.PFirst[nt] = result
	}
	return nil
}

// RuleFirst computes the PFIRST of one rule under nt: the intersection of
// the PFIRST of its positive conjuncts (Σ*_k if it has none), erroring with
// ContradictoryRule if that intersection is empty despite having at least one
// positive conjunct. ruleIndex is only used to make the error message
// locate the offending rule.
func RuleFirst(ctx *analysis.Context, nt string, ruleIndex int, rule ast.Rule) (lookahead.LSet, error) {
	var result lookahead.LSet
	havePositive := false

	for _, cid := range rule.Conjuncts {
		conj := ctx.Grammar.Conjunct(cid)
		if conj.Negative {
			continue
		}

		cFirst, _, err := ConjunctFirst(ctx, nt, conj)
		if err != nil {
			return lookahead.LSet{}, err
		}

		if !havePositive {
			result = cFirst
			havePositive = true
		} else {
			result = result.Intersection(cFirst)
		}
	}

	if !havePositive {
		return ctx.SigmaStarK(), nil
	}
	if result.Len() == 0 {
		return lookahead.LSet{}, diag.ContradictoryRule{NonTerm: nt, RuleIndex: ruleIndex}
	}
	return result, nil
}

// ConjunctFirst computes one conjunct's PFIRST and whether it is nullable. A
// negative conjunct always reports an empty PFIRST ("no contribution" to an
// accumulating rule, not a claim about the language it denotes) and
// nullable=false, since polarity is resolved at table-build time, not here.
func ConjunctFirst(ctx *analysis.Context, nt string, conj ast.Conjunct) (lookahead.LSet, bool, error) {
	if conj.Negative {
		return lookahead.New(), false, nil
	}

	if len(conj.Symbols) > 0 && conj.Symbols[0].Kind == ast.KindNonTerm && conj.Symbols[0].Text == nt {
		return lookahead.LSet{}, false, diag.LeftRecursion{NonTerm: nt}
	}

	acc := lookahead.New()
	nullable := true

	for _, sym := range conj.Symbols {
		switch sym.Kind {
		case ast.KindLiteral:
			nullable = false
			acc = lookahead.Concat(ctx.K, acc, lookahead.Single(sym.Text))
		case ast.KindNonTerm:
			if sym.Text == nt {
				acc = lookahead.SelfExpand(ctx.K, acc)
			} else {
				sub := ctx.PFirst[sym.Text]
				if !sub.HasEmpty() {
					nullable = false
				}
				acc = lookahead.Concat(ctx.K, acc, sub)
			}
		case ast.KindEpsilon:
			// no effect on acc or nullable
		}
	}

	if nullable {
		acc.Add([]string{""})
	}
	return acc, nullable, nil
}
