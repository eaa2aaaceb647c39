package parse

import (
	"testing"

	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/diag"
	"github.com/stretchr/testify/assert"
)

func Test_Parse_SimpleDisjunction(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`S -> "a" | "b";`)
	assert.NoError(err)

	assert.Equal([]string{"S"}, g.NonTerminals())
	disj, ok := g.Disjunction("S")
	assert.True(ok)
	assert.Len(disj.Rules, 2)

	c0 := g.Conjunct(disj.Rules[0].Conjuncts[0])
	assert.Equal(`"a"`, c0.String())
	c1 := g.Conjunct(disj.Rules[1].Conjuncts[0])
	assert.Equal(`"b"`, c1.String())
}

func Test_Parse_ConjunctionOfTwoConjuncts(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`S -> A & ~B;`)
	assert.NoError(err)

	disj, ok := g.Disjunction("S")
	assert.True(ok)
	assert.Len(disj.Rules, 1)
	assert.Len(disj.Rules[0].Conjuncts, 2)

	c0 := g.Conjunct(disj.Rules[0].Conjuncts[0])
	assert.False(c0.Negative)
	c1 := g.Conjunct(disj.Rules[0].Conjuncts[1])
	assert.True(c1.Negative)
}

func Test_Parse_EpsilonKeywordAndEmptyStringLiteral(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`S -> epsilon | "";`)
	assert.NoError(err)

	disj, ok := g.Disjunction("S")
	assert.True(ok)

	c0 := g.Conjunct(disj.Rules[0].Conjuncts[0])
	assert.True(c0.Symbols[0].IsEpsilon())
	c1 := g.Conjunct(disj.Rules[1].Conjuncts[0])
	assert.True(c1.Symbols[0].IsEpsilon())
}

func Test_Parse_MultipleDisjunctionsAndReferences(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`
		S -> A B;
		A -> "a";
		B -> "b";
	`)
	assert.NoError(err)

	assert.Equal([]string{"S", "A", "B"}, g.NonTerminals())
	assert.Equal([]string{"A", "B"}, g.PositiveReferences("S"))
}

func Test_Parse_ErrorsOnMissingArrow(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse(`S "a";`)
	assert.Error(err)
	var perr diag.ParseError
	assert.ErrorAs(err, &perr)
}

func Test_Parse_ErrorsOnEmptyConjunct(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse(`S -> & "a";`)
	assert.Error(err)
	var perr diag.ParseError
	assert.ErrorAs(err, &perr)
}

func Test_Parse_ErrorsOnEmptySource(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse(``)
	assert.Error(err)
	var perr diag.ParseError
	assert.ErrorAs(err, &perr)
}

func Test_Parse_ErrorsOnMissingTrailingSemicolon(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse(`S -> "a"`)
	assert.Error(err)
}

func Test_Parse_ProducesStableConjunctIDs(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`S -> "a" & "b";`)
	assert.NoError(err)

	disj, _ := g.Disjunction("S")
	ids := disj.Rules[0].Conjuncts
	assert.Len(ids, 2)
	assert.NotEqual(ids[0], ids[1])
	assert.IsType(ast.ConjunctID(0), ids[0])
}
