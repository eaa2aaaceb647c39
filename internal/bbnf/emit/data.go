// Package emit generates a standalone Go source file implementing a
// recursive-descent parser for one analyzed grammar: one dispatch function
// per non-terminal, one function per distinct rule, and a small runtime shim
// (lexer, ParseForest, a single leaf-match function shared by all terminals,
// main) duplicated into every emitted file since the artifact cannot import
// this module.
//
// This mirrors the role of the original tool's rd_codegen.cpp, generalized
// to a k-length lookahead dispatch: the emitted switch compares the next k
// tokens, not one, because this generator supports k > 1.
package emit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/bbnfgen/internal/bbnf/analysis"
	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
	"github.com/dekarrin/bbnfgen/internal/bbnf/lookahead"
	"github.com/dekarrin/bbnfgen/internal/bbnf/table"
	"github.com/dekarrin/bbnfgen/internal/util"
)

type symbolData struct {
	Kind     ast.SymbolKind
	Text     string
	FuncName string
}

type conjunctData struct {
	Negative bool
	Symbols  []symbolData
}

type ruleData struct {
	FuncName  string
	Conjuncts []conjunctData
	Body      string
}

type caseData struct {
	KeyLiteral string // Go string literal for the encoded lookahead key
	Seq        []string
	RuleFunc   string
}

type ntData struct {
	Name       string
	FuncName   string
	Rules      []ruleData
	Cases      []caseData
	DomainDesc string // human-readable list of accepted lookahead sequences, for the "expected one of" diagnostic
}

type templateData struct {
	PackageName string
	K           int
	Alphabet    []string // Σ \ {""}
	NonTerms    []ntData
	StartFunc   string
}

func sanitizeFuncName(nt string) string {
	return "parseNT_" + nt
}

// build assembles the template data for g/t/ctx into the form the runtime
// template renders. It is pure with respect to its inputs: calling it twice
// on the same table produces byte-identical output, which is what the
// generator's table-determinism property requires of everything downstream
// of the table too.
func build(ctx *analysis.Context, t *table.Table, packageName string) templateData {
	g := ctx.Grammar

	data := templateData{
		PackageName: packageName,
		K:           ctx.K,
		Alphabet:    g.Literals(),
	}

	if start := ctx.StartSymbol(); start != "" {
		data.StartFunc = sanitizeFuncName(start)
	}

	for _, nt := range g.NonTerminals() {
		disj, ok := g.Disjunction(nt)
		if !ok {
			continue
		}

		nd := ntData{Name: nt, FuncName: sanitizeFuncName(nt)}

		// Map each distinct rule (by its conjunct-ID signature) to the
		// function that implements it, so that entries sharing a rule in
		// the table don't duplicate the generated function body.
		ruleFuncByKey := map[string]string{}

		for ri, rule := range disj.Rules {
			key := conjunctKey(rule.Conjuncts)
			if _, exists := ruleFuncByKey[key]; exists {
				continue
			}
			fn := fmt.Sprintf("%s_rule%d", nd.FuncName, ri)
			ruleFuncByKey[key] = fn

			var conjuncts []conjunctData
			for _, cid := range rule.Conjuncts {
				c := g.Conjunct(cid)
				conjuncts = append(conjuncts, conjunctDataFor(c))
			}
			rd := ruleData{FuncName: fn, Conjuncts: conjuncts}
			rd.Body = renderRuleBody(nt, rd)
			nd.Rules = append(nd.Rules, rd)
		}

		var domain []string
		for _, e := range t.EntriesFor(nt) {
			fn := ruleFuncByKey[conjunctKey(e.Conjuncts)]
			if fn == "" {
				// The entry's rule wasn't reachable through disj.Rules (should
				// not happen for a Table built from this same Grammar); skip
				// rather than emit a dangling call.
				continue
			}
			nd.Cases = append(nd.Cases, caseData{
				KeyLiteral: fmt.Sprintf("%q", lookahead.EncodeSeq(e.Seq)),
				Seq:        e.Seq,
				RuleFunc:   fn,
			})
			domain = append(domain, seqDesc(e.Seq))
		}
		sort.Strings(domain)
		nd.DomainDesc = util.MakeTextList(domain, false)

		data.NonTerms = append(data.NonTerms, nd)
	}

	return data
}

func conjunctKey(ids []ast.ConjunctID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

func conjunctDataFor(c ast.Conjunct) conjunctData {
	cd := conjunctData{Negative: c.Negative}
	for _, sym := range c.Symbols {
		sd := symbolData{Kind: sym.Kind, Text: sym.Text}
		if sym.Kind == ast.KindNonTerm {
			sd.FuncName = sanitizeFuncName(sym.Text)
		}
		cd.Symbols = append(cd.Symbols, sd)
	}
	return cd
}

func seqDesc(seq []string) string {
	quoted := make([]string, len(seq))
	for i, s := range seq {
		if s == "" {
			quoted[i] = "epsilon"
		} else {
			quoted[i] = fmt.Sprintf("%q", s)
		}
	}
	return "[" + strings.Join(quoted, " ") + "]"
}
