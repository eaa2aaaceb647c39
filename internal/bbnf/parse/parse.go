// Package parse is a recursive-descent parser for BBNF grammar source,
// building an *ast.Grammar from the token stream lex produces. One function
// per production, named after the production it implements, mirrors exactly
// the grammar given in the governing specification's external-interfaces
// section:
//
//	grammar     ::= disjunction+
//	disjunction ::= NON_TERM '->' rule ('|' rule)* ';'
//	rule        ::= conjunct ('&' conjunct)*
//	conjunct    ::= '~'? symbol+
//	symbol      ::= NON_TERM | '"' LITERAL '"' | 'epsilon'
package parse

import (
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/diag"
	"github.com/dekarrin/bbnfgen/internal/bbnf/lex"
)

// Parser consumes a lex.Lexer's token stream and builds an ast.Grammar.
type Parser struct {
	lx   *lex.Lexer
	cur  lex.Token
	peek *lex.Token
}

// New returns a Parser reading from lx.
func New(lx *lex.Lexer) *Parser {
	return &Parser{lx: lx}
}

// Parse scans src and parses it as a full BBNF grammar.
func Parse(src string) (*ast.Grammar, error) {
	p := New(lex.New(src))
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.grammar()
}

func (p *Parser) advance() error {
	if p.peek != nil {
		p.cur = *p.peek
		p.peek = nil
		return nil
	}
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) expect(k lex.TokenKind, expectedDesc string) (lex.Token, error) {
	if p.cur.Kind != k {
		return lex.Token{}, diag.ParseError{
			Line:     p.cur.Line,
			Col:      p.cur.Col,
			Lexeme:   p.cur.String(),
			Expected: expectedDesc,
		}
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lex.Token{}, err
	}
	return tok, nil
}

// grammar ::= disjunction+
func (p *Parser) grammar() (*ast.Grammar, error) {
	g := ast.NewGrammar()

	if p.cur.Kind == lex.TokEOF {
		return nil, diag.ParseError{Line: p.cur.Line, Col: p.cur.Col, Lexeme: p.cur.String(), Expected: "at least one disjunction"}
	}

	for p.cur.Kind != lex.TokEOF {
		if err := p.disjunction(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// disjunction ::= NON_TERM '->' rule ('|' rule)* ';'
func (p *Parser) disjunction(g *ast.Grammar) error {
	head, err := p.expect(lex.TokNonTerm, "a non-terminal name")
	if err != nil {
		return err
	}
	if _, err := p.expect(lex.TokArrow, "'->'"); err != nil {
		return err
	}

	for {
		rule, err := p.rule(g)
		if err != nil {
			return err
		}
		g.AddRule(head.Lexeme, rule)

		if p.cur.Kind == lex.TokPipe {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}

	_, err = p.expect(lex.TokSemi, "';'")
	return err
}

// rule ::= conjunct ('&' conjunct)*
func (p *Parser) rule(g *ast.Grammar) (ast.Rule, error) {
	var rule ast.Rule

	for {
		conj, err := p.conjunct()
		if err != nil {
			return ast.Rule{}, err
		}
		rule.Conjuncts = append(rule.Conjuncts, g.AddConjunct(conj))

		if p.cur.Kind == lex.TokAmp {
			if err := p.advance(); err != nil {
				return ast.Rule{}, err
			}
			continue
		}
		break
	}

	return rule, nil
}

// conjunct ::= '~'? symbol+
func (p *Parser) conjunct() (ast.Conjunct, error) {
	negative := false
	if p.cur.Kind == lex.TokTilde {
		negative = true
		if err := p.advance(); err != nil {
			return ast.Conjunct{}, err
		}
	}

	var symbols []ast.Symbol
	for isSymbolStart(p.cur.Kind) {
		sym, err := p.symbol()
		if err != nil {
			return ast.Conjunct{}, err
		}
		symbols = append(symbols, sym)
	}

	if len(symbols) == 0 {
		return ast.Conjunct{}, diag.ParseError{
			Line:     p.cur.Line,
			Col:      p.cur.Col,
			Lexeme:   p.cur.String(),
			Expected: "at least one symbol in a conjunct",
		}
	}

	return ast.NewConjunct(negative, symbols), nil
}

func isSymbolStart(k lex.TokenKind) bool {
	return k == lex.TokNonTerm || k == lex.TokString || k == lex.TokKwEpsilon
}

// symbol ::= NON_TERM | '"' LITERAL '"' | 'epsilon'
func (p *Parser) symbol() (ast.Symbol, error) {
	switch p.cur.Kind {
	case lex.TokNonTerm:
		tok := p.cur
		if err := p.advance(); err != nil {
			return ast.Symbol{}, err
		}
		return ast.NonTerm(tok.Lexeme), nil

	case lex.TokString:
		tok := p.cur
		if err := p.advance(); err != nil {
			return ast.Symbol{}, err
		}
		if tok.Lexeme == "" {
			return ast.Epsilon, nil
		}
		return ast.Literal(tok.Lexeme), nil

	case lex.TokKwEpsilon:
		if err := p.advance(); err != nil {
			return ast.Symbol{}, err
		}
		return ast.Epsilon, nil

	default:
		return ast.Symbol{}, diag.ParseError{
			Line:     p.cur.Line,
			Col:      p.cur.Col,
			Lexeme:   p.cur.String(),
			Expected: "a non-terminal, string literal, or 'epsilon'",
		}
	}
}
