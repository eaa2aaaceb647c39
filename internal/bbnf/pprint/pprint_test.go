package pprint

import (
	"testing"

	"github.com/dekarrin/bbnfgen/internal/bbnf/analysis"
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/pfirst"
	"github.com/dekarrin/bbnfgen/internal/bbnf/pfollow"
	"github.com/dekarrin/bbnfgen/internal/bbnf/table"
	"github.com/stretchr/testify/assert"
)

func buildSimpleContext(t *testing.T) (*analysis.Context, *table.Table) {
	t.Helper()

	g := ast.NewGrammar()
	cid := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("a")}))
	g.AddRule("S", ast.Rule{Conjuncts: []ast.ConjunctID{cid}})

	ctx := analysis.New(g, 1)
	ctx.Order = []string{"S"}
	assert.NoError(t, pfirst.Compute(ctx))
	pfollow.Compute(ctx)

	return ctx, table.Build(ctx)
}

func Test_Grammar_RendersDisjunctionBlock(t *testing.T) {
	assert := assert.New(t)

	g := ast.NewGrammar()
	cid := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("a")}))
	g.AddRule("S", ast.Rule{Conjuncts: []ast.ConjunctID{cid}})

	out := Grammar(g)
	assert.Contains(out, "S ->")
	assert.Contains(out, `"a"`)
}

func Test_Order_RendersNumberedList(t *testing.T) {
	assert := assert.New(t)

	out := Order([]string{"B", "A"})
	assert.Contains(out, "1. B")
	assert.Contains(out, "2. A")
}

func Test_Report_ContainsEverySection(t *testing.T) {
	assert := assert.New(t)

	ctx, tbl := buildSimpleContext(t)
	out := Report(ctx, tbl)

	for _, section := range []string{
		"=== Grammar ===",
		"=== References ===",
		"=== ntOrder ===",
		"=== PFIRST ===",
		"=== PFOLLOW ===",
		"=== LL(k) table ===",
	} {
		assert.Contains(out, section)
	}
}
