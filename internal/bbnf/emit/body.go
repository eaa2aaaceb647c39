package emit

import (
	"fmt"
	"strings"

	"github.com/dekarrin/bbnfgen/internal/bbnf/ast"
)

// renderRuleBody emits the statements (not the surrounding func signature)
// implementing one rule's conjunct-substring discipline, per the governing
// specification's §4.C: a single positive conjunct parses directly; multiple
// conjuncts save pos as start, require every subsequent positive conjunct to
// reach the same end, and require every negative conjunct to fail to reach
// it.
func renderRuleBody(nt string, rule ruleData) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\tnode := &ParseForest{NonTerm: %q}\n", nt)

	positives, negatives := splitConjuncts(rule.Conjuncts)

	if len(rule.Conjuncts) == 1 && len(positives) == 1 {
		fmt.Fprintf(&sb, "\tversion0, err0 := %s\n", renderConjunctClosure(rule.Conjuncts[0], "wanted"))
		sb.WriteString("\tif err0 != nil {\n\t\treturn nil, err0\n\t}\n")
		sb.WriteString("\tnode.Versions = append(node.Versions, version0)\n")
		sb.WriteString("\treturn node, nil\n")
		return sb.String()
	}

	sb.WriteString("\tstart := p.pos\n")
	sb.WriteString("\tend := start\n")

	for i, pc := range positives {
		sb.WriteString("\tp.pos = start\n")
		fmt.Fprintf(&sb, "\tversion%d, err%d := %s\n", i, i, renderConjunctClosure(rule.Conjuncts[pc.idx], "wanted"))
		fmt.Fprintf(&sb, "\tif err%d != nil {\n\t\treturn nil, err%d\n\t}\n", i, i)
		if i == 0 {
			sb.WriteString("\tend = p.pos\n")
		} else {
			sb.WriteString("\tif p.pos != end {\n")
			sb.WriteString("\t\tif wanted {\n")
			fmt.Fprintf(&sb, "\t\t\treturn nil, p.rejectf(start, %q)\n", nt)
			sb.WriteString("\t\t}\n")
			sb.WriteString("\t\treturn nil, errRejected\n")
			sb.WriteString("\t}\n")
		}
		fmt.Fprintf(&sb, "\tnode.Versions = append(node.Versions, version%d)\n", i)
	}

	for i, nc := range negatives {
		sb.WriteString("\tp.pos = start\n")
		fmt.Fprintf(&sb, "\t_, negerr%d := %s\n", i, renderConjunctClosure(rule.Conjuncts[nc.idx], "!wanted"))
		fmt.Fprintf(&sb, "\tnegMatched%d := negerr%d == nil && p.pos == end\n", i, i)
		fmt.Fprintf(&sb, "\tif negMatched%d {\n", i)
		sb.WriteString("\t\tif wanted {\n")
		fmt.Fprintf(&sb, "\t\t\treturn nil, p.rejectf(start, %q)\n", nt)
		sb.WriteString("\t\t}\n")
		sb.WriteString("\t\treturn nil, errRejected\n")
		sb.WriteString("\t}\n")
	}

	sb.WriteString("\tp.pos = end\n")
	sb.WriteString("\treturn node, nil\n")
	return sb.String()
}

type idxConjunct struct {
	idx int
}

func splitConjuncts(conjuncts []conjunctData) (positives, negatives []idxConjunct) {
	for i, c := range conjuncts {
		if c.Negative {
			negatives = append(negatives, idxConjunct{idx: i})
		} else {
			positives = append(positives, idxConjunct{idx: i})
		}
	}
	return
}

// renderConjunctClosure renders an immediately-invoked function literal that
// parses one conjunct's symbol sequence in order, short-circuiting on the
// first symbol failure, and returns ([]*ParseForest, error). wantedExpr is a
// Go boolean expression evaluated once per closure invocation and threaded
// unchanged to every symbol call inside it, matching the specification's
// "wanted flag carried as a parameter" discipline — a negative conjunct's
// caller flips it once, at the call site, not per symbol.
func renderConjunctClosure(c conjunctData, wantedExpr string) string {
	var sb strings.Builder
	sb.WriteString("func() ([]*ParseForest, error) {\n")
	sb.WriteString("\t\tvar children []*ParseForest\n")
	fmt.Fprintf(&sb, "\t\tw := %s\n", wantedExpr)
	for si, sym := range c.Symbols {
		switch sym.Kind {
		case ast.KindEpsilon:
			// contributes no child, consumes no input
		case ast.KindLiteral:
			fmt.Fprintf(&sb, "\t\tn%d, err := p.term(%q, w)\n", si, sym.Text)
			sb.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
			fmt.Fprintf(&sb, "\t\tchildren = append(children, n%d)\n", si)
		case ast.KindNonTerm:
			fmt.Fprintf(&sb, "\t\tn%d, err := p.%s(w)\n", si, sym.FuncName)
			sb.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
			fmt.Fprintf(&sb, "\t\tchildren = append(children, n%d)\n", si)
		}
	}
	sb.WriteString("\t\treturn children, nil\n")
	sb.WriteString("\t}()")
	return sb.String()
}
