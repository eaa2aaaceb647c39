package depends

import (
	"testing"

	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/stretchr/testify/assert"
)

// indexOf returns the position of name in order, or -1.
func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

func Test_Order_CalleesBeforeCallers(t *testing.T) {
	assert := assert.New(t)

	g := ast.NewGrammar()
	// A -> B C
	cidA := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.NonTerm("B"), ast.NonTerm("C")}))
	g.AddRule("A", ast.Rule{Conjuncts: []ast.ConjunctID{cidA}})
	// B -> "x"
	cidB := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("x")}))
	g.AddRule("B", ast.Rule{Conjuncts: []ast.ConjunctID{cidB}})
	// C -> "y"
	cidC := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("y")}))
	g.AddRule("C", ast.Rule{Conjuncts: []ast.ConjunctID{cidC}})

	order := Order(g)

	assert.Len(order, 3)
	assert.Less(indexOf(order, "B"), indexOf(order, "A"))
	assert.Less(indexOf(order, "C"), indexOf(order, "A"))
}

func Test_Order_AllowsMutualRecursionCycle(t *testing.T) {
	assert := assert.New(t)

	g := ast.NewGrammar()
	cidA := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.NonTerm("B")}))
	g.AddRule("A", ast.Rule{Conjuncts: []ast.ConjunctID{cidA}})
	cidB := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.NonTerm("A")}))
	g.AddRule("B", ast.Rule{Conjuncts: []ast.ConjunctID{cidB}})

	order := Order(g)

	assert.ElementsMatch([]string{"A", "B"}, order)
}

func Test_Order_IgnoresNegativeConjunctReferences(t *testing.T) {
	assert := assert.New(t)

	g := ast.NewGrammar()
	// A -> "x" & ~B   (B is only referenced negatively)
	cidPos := g.AddConjunct(ast.NewConjunct(false, []ast.Symbol{ast.Literal("x")}))
	cidNeg := g.AddConjunct(ast.NewConjunct(true, []ast.Symbol{ast.NonTerm("B")}))
	g.AddRule("A", ast.Rule{Conjuncts: []ast.ConjunctID{cidPos, cidNeg}})
	// B is never declared itself, so it should not appear in the order at all.

	order := Order(g)

	assert.Equal([]string{"A"}, order)
}
