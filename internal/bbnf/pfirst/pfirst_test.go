package pfirst

import (
	"testing"

	"github.com/dekarrin/bbnfgen/internal/bbnf/analysis"
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/diag"
	"github.com/stretchr/testify/assert"
)

func Test_Compute_PropagatesThroughASequence(t *testing.T) {
	assert := assert.New(t)

	g := ast.NewGrammar()
	cidB := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("b")}))
	g.AddRule("B", ast.Rule{Conjuncts: []ast.ConjunctID{cidB}})
	cidS := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("a"), ast.NonTerm("B")}))
	g.AddRule("S", ast.Rule{Conjuncts: []ast.ConjunctID{cidS}})

	ctx := analysis.New(g, 1)
	ctx.Order = []string{"B", "S"}

	err := Compute(ctx)
	assert.NoError(err)

	assert.True(ctx.PFirst["B"].Has([]string{"b"}))
	assert.Equal(1, ctx.PFirst["B"].Len())

	assert.True(ctx.PFirst["S"].Has([]string{"a"}))
	assert.Equal(1, ctx.PFirst["S"].Len())
}

func Test_Compute_NullableConjunctContributesEpsilon(t *testing.T) {
	assert := assert.New(t)

	g := ast.NewGrammar()
	cid := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Epsilon}))
	g.AddRule("E", ast.Rule{Conjuncts: []ast.ConjunctID{cid}})

	ctx := analysis.New(g, 1)
	ctx.Order = []string{"E"}

	err := Compute(ctx)
	assert.NoError(err)
	assert.True(ctx.PFirst["E"].HasEmpty())
}

func Test_Compute_DetectsDirectLeftRecursion(t *testing.T) {
	assert := assert.New(t)

	g := ast.NewGrammar()
	cid := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.NonTerm("A"), ast.Literal("x")}))
	g.AddRule("A", ast.Rule{Conjuncts: []ast.ConjunctID{cid}})

	ctx := analysis.New(g, 1)
	ctx.Order = []string{"A"}

	err := Compute(ctx)
	assert.Error(err)
	var lr diag.LeftRecursion
	assert.ErrorAs(err, &lr)
	assert.Equal("A", lr.NonTerm)
}

func Test_Compute_DetectsContradictoryRule(t *testing.T) {
	assert := assert.New(t)

	g := ast.NewGrammar()
	cidX := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("x")}))
	cidY := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("y")}))
	g.AddRule("A", ast.Rule{Conjuncts: []ast.ConjunctID{cidX, cidY}})

	ctx := analysis.New(g, 1)
	ctx.Order = []string{"A"}

	err := Compute(ctx)
	assert.Error(err)
	var cr diag.ContradictoryRule
	assert.ErrorAs(err, &cr)
	assert.Equal("A", cr.NonTerm)
	assert.Equal(0, cr.RuleIndex)
}

func Test_ConjunctFirst_NegativeConjunctContributesNothing(t *testing.T) {
	assert := assert.New(t)

	g := ast.NewGrammar()
	ctx := analysis.New(g, 1)

	conj := ast.NewConjunct(true, []ast.Symbol{ast.Literal("x")})
	first, nullable, err := ConjunctFirst(ctx, "A", conj)

	assert.NoError(err)
	assert.False(nullable)
	assert.Equal(0, first.Len())
}
