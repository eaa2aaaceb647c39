// Package interp is an in-process interpreter of an LL(k) parsing table: it
// parses input against the table directly, the same way the emitted Go
// source would, without round-tripping through a generated file and a
// compiler. The REPL uses it so a grammar author can try input against a
// .bbnf file under active revision.
//
// Grounded on the table-driven walk of internal/ictiobus/parse's ll1Parser,
// generalized from a flat symbol stack (k=1, no conjunction/negation) to
// recursive calls carrying the conjunct substring-alignment discipline of
// the generator's §4.C, since a stack alone cannot express "reparse the same
// substring under a different conjunct and compare end cursors."
package interp

import (
	"errors"
	"fmt"

	"github.com/dekarrin/bbnfgen/internal/bbnf/analysis"
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/diag"
	"github.com/dekarrin/bbnfgen/internal/bbnf/table"
)

// errRejected marks a sub-parse failure that must not surface a diagnostic,
// mirroring the emitted parser's sentinel of the same name.
var errRejected = errors.New("rejected")

// Node is a parse-forest node, the interpreter's equivalent of the emitted
// parser's ParseForest.
type Node struct {
	NonTerm  string
	Literal  string
	IsLeaf   bool
	Versions [][]*Node
}

func (n *Node) String() string {
	return n.render("")
}

func (n *Node) render(indent string) string {
	if n.IsLeaf {
		return fmt.Sprintf("%s%q\n", indent, n.Literal)
	}
	out := fmt.Sprintf("%s%s\n", indent, n.NonTerm)
	for vi, version := range n.Versions {
		out += fmt.Sprintf("%s  version %d:\n", indent, vi)
		for _, child := range version {
			out += child.render(indent + "    ")
		}
	}
	return out
}

// Interpreter parses token sequences against one grammar's analyzed table.
type Interpreter struct {
	ctx   *analysis.Context
	table *table.Table
}

// New returns an Interpreter for ctx's grammar using t.
func New(ctx *analysis.Context, t *table.Table) *Interpreter {
	return &Interpreter{ctx: ctx, table: t}
}

// Parse tokenizes src by whitespace-separated Σ-matching as the emitted
// parser's built-in lexer does, then parses it from the start symbol.
func (in *Interpreter) Parse(src string) (*Node, error) {
	toks, err := Lex(src, in.ctx.Grammar.Literals())
	if err != nil {
		return nil, err
	}

	start := in.ctx.StartSymbol()
	if start == "" {
		return nil, diag.EmittedParseError{Message: "grammar has no start symbol"}
	}

	st := &state{toks: toks, k: in.ctx.K, table: in.table, grammar: in.ctx.Grammar}
	node, err := st.parseNonTerm(start, true)
	if err != nil {
		return nil, err
	}
	if st.pos != len(st.toks) {
		line, col := st.curPos()
		return nil, diag.EmittedParseError{Line: line, Col: col, Message: "parsing terminated before end of input"}
	}
	return node, nil
}

type tok struct {
	Text      string
	Line, Col int
}

// Lex splits src on whitespace and matches the longest member of alphabet
// at each remaining position, failing on unmatchable input. It is exported
// so the REPL and the generator's self-test harness can tokenize input the
// same way the emitted parser's runtime does.
func Lex(src string, alphabet []string) ([]tok, error) {
	var toks []tok
	line, col := 1, 1
	i := 0
	for i < len(src) {
		b := src[i]
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			if b == '\n' {
				line++
				col = 1
			} else {
				col++
			}
			i++
			continue
		}

		best := ""
		for _, lit := range alphabet {
			if lit == "" {
				continue
			}
			if len(lit) > len(best) && hasPrefix(src[i:], lit) {
				best = lit
			}
		}
		if best == "" {
			return nil, diag.EmittedLexError{Line: line, Col: col, Lexeme: shortSnippet(src[i:])}
		}

		toks = append(toks, tok{Text: best, Line: line, Col: col})
		for _, r := range best {
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		i += len(best)
	}
	return toks, nil
}

func hasPrefix(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)] == prefix
}

func shortSnippet(s string) string {
	const max = 16
	if len(s) > max {
		return s[:max]
	}
	return s
}

type state struct {
	toks    []tok
	pos     int
	k       int
	table   *table.Table
	grammar *ast.Grammar
}

func (st *state) curPos() (int, int) {
	if st.pos < len(st.toks) {
		t := st.toks[st.pos]
		return t.Line, t.Col
	}
	if len(st.toks) > 0 {
		last := st.toks[len(st.toks)-1]
		return last.Line, last.Col + len(last.Text)
	}
	return 1, 1
}

// lookahead returns the next k tokens' text from pos, mirroring the emitted
// parser's own lookahead(k) method: when no real tokens remain it reports
// [""] rather than an empty slice, since that is the encoded key the table
// actually stores for "nothing more to consume" (see lookahead.EmptyString).
func (st *state) lookahead() []string {
	out := make([]string, 0, st.k)
	for j := 0; j < st.k && st.pos+j < len(st.toks); j++ {
		out = append(out, st.toks[st.pos+j].Text)
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

func (st *state) term(text string, wanted bool) (*Node, error) {
	if st.pos < len(st.toks) && st.toks[st.pos].Text == text {
		st.pos++
		return &Node{Literal: text, IsLeaf: true}, nil
	}
	if wanted {
		line, col := st.curPos()
		got := "end of input"
		if st.pos < len(st.toks) {
			got = st.toks[st.pos].Text
		}
		return nil, diag.EmittedParseError{Line: line, Col: col, Message: fmt.Sprintf("unexpected token %q, expecting %q", got, text)}
	}
	return nil, errRejected
}

func (st *state) parseNonTerm(nt string, wanted bool) (*Node, error) {
	conjuncts, ok := st.table.Get(nt, st.lookahead())
	if !ok {
		// No entry for the exact lookahead: there is no fallback to a
		// shorter prefix, mirroring the emitted parser's exact-key switch
		// (which simply has no matching case and falls to "rejected" the
		// same way).
		if wanted {
			line, col := st.curPos()
			return nil, diag.EmittedParseError{Line: line, Col: col, Message: fmt.Sprintf("no rule for %s matches the current lookahead", nt)}
		}
		return nil, errRejected
	}
	return st.parseRule(nt, conjuncts, wanted)
}

func (st *state) parseRule(nt string, conjuncts []ast.ConjunctID, wanted bool) (*Node, error) {
	positives, negatives := st.splitConjuncts(conjuncts)
	node := &Node{NonTerm: nt}

	if len(conjuncts) == 1 && len(positives) == 1 {
		version, err := st.parseConjunct(positives[0], wanted)
		if err != nil {
			return nil, err
		}
		node.Versions = append(node.Versions, version)
		return node, nil
	}

	start := st.pos
	end := start

	for i, id := range positives {
		st.pos = start
		version, err := st.parseConjunct(id, wanted)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			end = st.pos
		} else if st.pos != end {
			if wanted {
				line, col := st.curPos()
				return nil, diag.EmittedParseError{Line: line, Col: col, Message: fmt.Sprintf("rule for %s could not be satisfied", nt)}
			}
			return nil, errRejected
		}
		node.Versions = append(node.Versions, version)
	}

	for _, id := range negatives {
		st.pos = start
		_, err := st.parseConjunct(id, !wanted)
		matched := err == nil && st.pos == end
		if matched {
			if wanted {
				line, col := st.curPos()
				return nil, diag.EmittedParseError{Line: line, Col: col, Message: fmt.Sprintf("rule for %s could not be satisfied", nt)}
			}
			return nil, errRejected
		}
	}

	st.pos = end
	return node, nil
}

func (st *state) parseConjunct(id ast.ConjunctID, wanted bool) ([]*Node, error) {
	c := st.grammar.Conjunct(id)
	var children []*Node
	for _, sym := range c.Symbols {
		switch sym.Kind {
		case ast.KindEpsilon:
			continue
		case ast.KindLiteral:
			n, err := st.term(sym.Text, wanted)
			if err != nil {
				return nil, err
			}
			children = append(children, n)
		case ast.KindNonTerm:
			n, err := st.parseNonTerm(sym.Text, wanted)
			if err != nil {
				return nil, err
			}
			children = append(children, n)
		}
	}
	return children, nil
}

func (st *state) splitConjuncts(conjuncts []ast.ConjunctID) (positives, negatives []ast.ConjunctID) {
	for _, id := range conjuncts {
		if st.grammar.Conjunct(id).Negative {
			negatives = append(negatives, id)
		} else {
			positives = append(positives, id)
		}
	}
	return
}
