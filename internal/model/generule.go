package model

import (
	"fmt"
	"sort"
	"strings"
)

// GeneRule is a parsed gene-presence expression. The grammar is the one used
// by the flat model files:
//
//	expr   := term { "or" term }
//	term   := factor { "and" factor }
//	factor := GENE | "(" expr ")"
//
// "and"/"or" are case-insensitive.
type GeneRule struct {
	root ruleNode
}

type ruleNode interface {
	eval(present map[string]bool) bool
	genes(out map[string]struct{})
}

type geneNode struct{ id string }

type boolNode struct {
	op          string // "and" | "or"
	left, right ruleNode
}

func (n geneNode) eval(present map[string]bool) bool { return present[n.id] }
func (n geneNode) genes(out map[string]struct{})     { out[n.id] = struct{}{} }

func (n boolNode) eval(present map[string]bool) bool {
	if n.op == "and" {
		return n.left.eval(present) && n.right.eval(present)
	}
	return n.left.eval(present) || n.right.eval(present)
}

func (n boolNode) genes(out map[string]struct{}) {
	n.left.genes(out)
	n.right.genes(out)
}

// ParseGeneRule parses a rule string. An empty (or all-whitespace) rule is
// valid and always evaluates true.
func ParseGeneRule(rule string) (*GeneRule, error) {
	toks := tokenizeRule(rule)
	if len(toks) == 0 {
		return &GeneRule{}, nil
	}
	p := &ruleParser{toks: toks}
	root, err := p.parseExpr()
	if err != nil {
		return nil, fmt.Errorf("gene rule %q: %w", rule, err)
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("gene rule %q: unexpected token %q", rule, p.toks[p.pos])
	}
	return &GeneRule{root: root}, nil
}

// Eval evaluates the rule against a set of present genes. Genes not in the
// set are treated as absent. The empty rule is always true.
func (g *GeneRule) Eval(present map[string]bool) bool {
	if g.root == nil {
		return true
	}
	return g.root.eval(present)
}

// Genes returns the sorted set of gene IDs the rule references.
func (g *GeneRule) Genes() []string {
	if g.root == nil {
		return nil
	}
	set := make(map[string]struct{})
	g.root.genes(set)
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func tokenizeRule(rule string) []string {
	rule = strings.ReplaceAll(rule, "(", " ( ")
	rule = strings.ReplaceAll(rule, ")", " ) ")
	return strings.Fields(rule)
}

type ruleParser struct {
	toks []string
	pos  int
}

func (p *ruleParser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *ruleParser) parseExpr() (ruleNode, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for strings.EqualFold(p.peek(), "or") {
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = boolNode{op: "or", left: left, right: right}
	}
	return left, nil
}

func (p *ruleParser) parseTerm() (ruleNode, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for strings.EqualFold(p.peek(), "and") {
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = boolNode{op: "and", left: left, right: right}
	}
	return left, nil
}

func (p *ruleParser) parseFactor() (ruleNode, error) {
	tok := p.peek()
	switch {
	case tok == "":
		return nil, fmt.Errorf("unexpected end of rule")
	case tok == "(":
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	case tok == ")" || strings.EqualFold(tok, "and") || strings.EqualFold(tok, "or"):
		return nil, fmt.Errorf("unexpected token %q", tok)
	default:
		p.pos++
		return geneNode{id: tok}, nil
	}
}
