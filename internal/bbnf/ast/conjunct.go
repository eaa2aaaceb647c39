package ast

import "strings"

// ConjunctID is a stable identifier into a Grammar's conjunct arena. The
// parsing table stores these rather than pointers, so that it can alias
// conjunct data without the ownership questions a shared-pointer graph would
// raise (see the arena note in the grammar's design notes).
type ConjunctID int

// Conjunct is an ordered sequence of symbols together with a polarity. A
// string matches a positive conjunct by matching its symbol sequence, and
// matches a negative conjunct by failing to match it over the same
// substring another conjunct in the same rule consumed.
type Conjunct struct {
	Symbols  []Symbol
	Negative bool
}

// NewConjunct builds a Conjunct, stripping redundant Epsilon symbols when the
// sequence has more than one symbol (a lone Epsilon is meaningful; an
// Epsilon next to other symbols is not).
func NewConjunct(negative bool, symbols []Symbol) Conjunct {
	if len(symbols) <= 1 {
		return Conjunct{Symbols: symbols, Negative: negative}
	}

	stripped := make([]Symbol, 0, len(symbols))
	for _, sym := range symbols {
		if sym.IsEpsilon() {
			continue
		}
		stripped = append(stripped, sym)
	}
	if len(stripped) == 0 {
		stripped = []Symbol{Epsilon}
	}
	return Conjunct{Symbols: stripped, Negative: negative}
}

// Positive reports whether this is a positive (non-negated) conjunct.
func (c Conjunct) Positive() bool {
	return !c.Negative
}

// References returns the names of every non-terminal mentioned anywhere in
// the conjunct's symbol sequence, in order of appearance (with duplicates).
func (c Conjunct) References() []string {
	var refs []string
	for _, sym := range c.Symbols {
		if sym.Kind == KindNonTerm {
			refs = append(refs, sym.Text)
		}
	}
	return refs
}

func (c Conjunct) String() string {
	parts := make([]string, len(c.Symbols))
	for i, sym := range c.Symbols {
		parts[i] = sym.String()
	}
	body := strings.Join(parts, " ")
	if c.Negative {
		return "~" + body
	}
	return body
}

// Rule is an intersection of conjuncts, referenced by arena ID. A string
// matches the rule iff it matches every positive conjunct and matches no
// negative conjunct, all over the same substring.
type Rule struct {
	Conjuncts []ConjunctID
}

// Disjunction is a union of rules under one non-terminal.
type Disjunction struct {
	Rules []Rule
}
