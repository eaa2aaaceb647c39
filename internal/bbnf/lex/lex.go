// Package lex tokenizes BBNF grammar source. It is a small hand-written
// scanner in the style of the teacher's own lexer packages, not a generated
// one: bootstrapping this tool's own output to parse its own input grammar
// notation is out of scope.
package lex

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dekarrin/bbnfgen/internal/bbnf/diag"
)

// Lexer scans BBNF source text into a token stream, one call to Next at a
// time.
type Lexer struct {
	src       string
	pos       int
	line, col int
}

// New returns a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) peekByte() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		b, ok := l.peekByte()
		if !ok {
			return
		}
		if unicode.IsSpace(rune(b)) {
			l.advance()
			continue
		}
		if b == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
			for {
				b, ok := l.peekByte()
				if !ok || b == '\n' {
					break
				}
				l.advance()
			}
			continue
		}
		return
	}
}

func isNonTermByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// Next scans and returns the next token. Once the input is exhausted it
// returns TokEOF forever.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespaceAndComments()

	line, col := l.line, l.col

	b, ok := l.peekByte()
	if !ok {
		return Token{Kind: TokEOF, Line: line, Col: col}, nil
	}

	switch {
	case b == '-':
		l.advance()
		b2, ok := l.peekByte()
		if !ok || b2 != '>' {
			return Token{}, diag.LexError{Line: line, Col: col, Message: "expected '>' after '-'"}
		}
		l.advance()
		return Token{Kind: TokArrow, Line: line, Col: col}, nil

	case b == '|':
		l.advance()
		return Token{Kind: TokPipe, Line: line, Col: col}, nil

	case b == '&':
		l.advance()
		return Token{Kind: TokAmp, Line: line, Col: col}, nil

	case b == '~':
		l.advance()
		return Token{Kind: TokTilde, Line: line, Col: col}, nil

	case b == ';':
		l.advance()
		return Token{Kind: TokSemi, Line: line, Col: col}, nil

	case b == '"':
		return l.scanString(line, col)

	case isNonTermByte(b):
		return l.scanWord(line, col)

	default:
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if size == 0 {
			size = 1
		}
		for i := 0; i < size; i++ {
			l.advance()
		}
		return Token{}, diag.LexError{Line: line, Col: col, Message: "unexpected character " + string(r)}
	}
}

func (l *Lexer) scanString(line, col int) (Token, error) {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		b, ok := l.peekByte()
		if !ok {
			return Token{}, diag.LexError{Line: line, Col: col, Message: "unterminated string literal"}
		}
		if b == '"' {
			l.advance()
			break
		}
		if b == '\\' {
			l.advance()
			esc, ok := l.peekByte()
			if !ok {
				return Token{}, diag.LexError{Line: line, Col: col, Message: "unterminated escape in string literal"}
			}
			if esc == '"' || esc == '\\' {
				sb.WriteByte(esc)
				l.advance()
				continue
			}
			sb.WriteByte('\\')
			continue
		}
		sb.WriteByte(b)
		l.advance()
	}
	return Token{Kind: TokString, Lexeme: sb.String(), Line: line, Col: col}, nil
}

func (l *Lexer) scanWord(line, col int) (Token, error) {
	start := l.pos
	for {
		b, ok := l.peekByte()
		if !ok || !isNonTermByte(b) {
			break
		}
		l.advance()
	}
	word := l.src[start:l.pos]
	if word == "epsilon" {
		return Token{Kind: TokKwEpsilon, Line: line, Col: col}, nil
	}
	return Token{Kind: TokNonTerm, Lexeme: word, Line: line, Col: col}, nil
}
