package emit

import (
	"strings"
	"testing"

	"github.com/dekarrin/bbnfgen/internal/bbnf/analysis"
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/pfirst"
	"github.com/dekarrin/bbnfgen/internal/bbnf/pfollow"
	"github.com/dekarrin/bbnfgen/internal/bbnf/table"
	"github.com/stretchr/testify/assert"
)

func buildAnalyzedContext(t *testing.T) (*analysis.Context, *table.Table) {
	t.Helper()

	g := ast.NewGrammar()
	cidA := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("a")}))
	cidB := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.NonTerm("B")}))
	g.AddRule("S", ast.Rule{Conjuncts: []ast.ConjunctID{cidA}})
	g.AddRule("S", ast.Rule{Conjuncts: []ast.ConjunctID{cidB}})

	cidC := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("c")}))
	g.AddRule("B", ast.Rule{Conjuncts: []ast.ConjunctID{cidC}})

	ctx := analysis.New(g, 1)
	ctx.Order = []string{"B", "S"}
	assert.NoError(t, pfirst.Compute(ctx))
	pfollow.Compute(ctx)

	return ctx, table.Build(ctx)
}

func Test_Generate_ProducesAFullRuntimeShimAndDispatchFunctions(t *testing.T) {
	assert := assert.New(t)

	ctx, tbl := buildAnalyzedContext(t)

	src, err := Generate(ctx, tbl, "main")
	assert.NoError(err)

	assert.True(strings.HasPrefix(src, "// Code generated by bbnfgen. DO NOT EDIT.\n"))
	assert.Contains(src, "package main")
	assert.Contains(src, "type ParseForest struct")
	assert.Contains(src, "func (p *parser) parseNT_S(wanted bool)")
	assert.Contains(src, "func (p *parser) parseNT_B(wanted bool)")
	assert.Contains(src, `p.parseNT_S(true)`)
	assert.Contains(src, `"a"`)
	assert.Contains(src, `"c"`)
}

func Test_Generate_UsesGivenPackageName(t *testing.T) {
	assert := assert.New(t)

	ctx, tbl := buildAnalyzedContext(t)

	src, err := Generate(ctx, tbl, "grammarout")
	assert.NoError(err)
	assert.Contains(src, "package grammarout")
}
