package table

import (
	"testing"

	"github.com/dekarrin/bbnfgen/internal/bbnf/analysis"
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/lookahead"
	"github.com/stretchr/testify/assert"
)

func Test_Build_OneEntryPerRule(t *testing.T) {
	assert := assert.New(t)

	g := ast.NewGrammar()
	cidX := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("x")}))
	cidY := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("y")}))
	g.AddRule("A", ast.Rule{Conjuncts: []ast.ConjunctID{cidX}})
	g.AddRule("A", ast.Rule{Conjuncts: []ast.ConjunctID{cidY}})

	ctx := analysis.New(g, 1)
	ctx.Order = []string{"A"}
	ctx.RuleFirst["A"] = []lookahead.LSet{lookahead.Single("x"), lookahead.Single("y")}
	ctx.PFollow["A"] = lookahead.EmptyString()

	tbl := Build(ctx)

	gotX, ok := tbl.Get("A", []string{"x"})
	assert.True(ok)
	assert.Equal([]ast.ConjunctID{cidX}, gotX)

	gotY, ok := tbl.Get("A", []string{"y"})
	assert.True(ok)
	assert.Equal([]ast.ConjunctID{cidY}, gotY)

	_, ok = tbl.Get("A", []string{"z"})
	assert.False(ok)
}

func Test_Build_LastWriterWinsOnCollidingKey(t *testing.T) {
	assert := assert.New(t)

	g := ast.NewGrammar()
	cid0 := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("x")}))
	cid1 := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("x")}))
	g.AddRule("A", ast.Rule{Conjuncts: []ast.ConjunctID{cid0}})
	g.AddRule("A", ast.Rule{Conjuncts: []ast.ConjunctID{cid1}})

	ctx := analysis.New(g, 1)
	ctx.Order = []string{"A"}
	ctx.RuleFirst["A"] = []lookahead.LSet{lookahead.Single("x"), lookahead.Single("x")}
	ctx.PFollow["A"] = lookahead.EmptyString()

	tbl := Build(ctx)

	got, ok := tbl.Get("A", []string{"x"})
	assert.True(ok)
	assert.Equal([]ast.ConjunctID{cid1}, got)
}

func Test_EntriesFor_SortedByLookaheadSequence(t *testing.T) {
	assert := assert.New(t)

	tbl := New()
	tbl.Set("A", []string{"b"}, nil)
	tbl.Set("A", []string{"a"}, nil)
	tbl.Set("B", []string{"c"}, nil)

	entries := tbl.EntriesFor("A")
	assert.Len(entries, 2)
	assert.Equal([]string{"a"}, entries[0].Seq)
	assert.Equal([]string{"b"}, entries[1].Seq)

	assert.Equal([]string{"A", "B"}, tbl.NonTerms())
}
