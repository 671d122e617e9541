package parser

import (
	"strconv"

	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/token"
)

// parsePatternList parses a non-empty, comma-separated sequence of path
// factors (§4.3).
func (p *parser) parsePatternList() *ast.PatternList {
	start := p.peek().Span.Start

	list := &ast.PatternList{Factors: []*ast.PathFactor{p.parsePathFactor()}}

	for {
		if _, ok := p.consume(token.Comma); !ok {
			break
		}

		list.Factors = append(list.Factors, p.parsePathFactor())
	}

	list.SpanValue = p.spanFrom(start)

	return list
}

// parsePathFactor parses a node pattern optionally followed by
// (edge-pattern node-pattern)*.
func (p *parser) parsePathFactor() *ast.PathFactor {
	start := p.peek().Span.Start

	factor := &ast.PathFactor{}
	factor.Nodes = append(factor.Nodes, p.parseNodePattern())

	for p.atAny(token.Minus, token.Lt, token.ArrowTilde, token.Arrow, token.LArrow) {
		edge := p.parseEdgePattern()
		factor.Edges = append(factor.Edges, edge)
		factor.Nodes = append(factor.Nodes, p.parseNodePattern())
	}

	factor.SpanValue = p.spanFrom(start)

	return factor
}

func (p *parser) parseNodePattern() *ast.NodePattern {
	start := p.peek().Span.Start

	n := &ast.NodePattern{}

	opened, _ := p.consume(token.LParen)
	_ = opened

	if p.at(token.Ident) {
		tok := p.advance()
		n.Binding = &ast.Ident{Name: tok.Text, SpanValue: tok.Span}
	}

	if _, ok := p.consume(token.Colon); ok {
		n.Labels = p.parseLabelExpr()
	}

	if p.at(token.LBrace) {
		n.Props = p.parsePropsFiller()
	}

	if _, ok := p.expectClose(token.RParen, "to close node pattern"); !ok {
		p.recoverToDelimiter(token.RParen)
	}

	n.SpanValue = p.spanFrom(start)

	return n
}

// parseEdgePattern parses one of the directed edge-pattern forms:
// `->`, `<-`, `-[...]->`, `<-[...]-`, `~>`, `<~`, or the undirected `-`.
func (p *parser) parseEdgePattern() *ast.EdgePattern {
	start := p.peek().Span.Start

	e := &ast.EdgePattern{Direction: ast.DirEither}

	leftArrow := false
	if _, ok := p.consume(token.Lt); ok {
		leftArrow = true
	} else if _, ok := p.consume(token.ArrowTilde); ok {
		leftArrow = true
	} else if _, ok := p.consume(token.LArrow); ok {
		leftArrow = true
	}

	p.consume(token.Minus)

	if _, ok := p.consume(token.LBracket); ok {
		if p.at(token.Ident) {
			tok := p.advance()
			e.Binding = &ast.Ident{Name: tok.Text, SpanValue: tok.Span}
		}

		if _, ok := p.consume(token.Colon); ok {
			e.Labels = p.parseLabelExpr()
		}

		if p.at(token.Star) {
			e.Quantifier = p.parseQuantifier()
		}

		if p.at(token.LBrace) {
			e.Props = p.parsePropsFiller()
		}

		if _, ok := p.expectClose(token.RBracket, "to close edge pattern"); !ok {
			p.recoverToDelimiter(token.RBracket)
		}
	}

	p.consume(token.Minus)

	rightArrow := false
	if _, ok := p.consume(token.Gt); ok {
		rightArrow = true
	} else if _, ok := p.consume(token.TildeArrow); ok {
		rightArrow = true
	} else if _, ok := p.consume(token.Arrow); ok {
		rightArrow = true
	}

	switch {
	case leftArrow && !rightArrow:
		e.Direction = ast.DirIncoming
	case rightArrow && !leftArrow:
		e.Direction = ast.DirOutgoing
	default:
		e.Direction = ast.DirEither
	}

	e.SpanValue = p.spanFrom(start)

	return e
}

// parseQuantifier parses an edge length range: `*`, `*n`, `*m..n`,
// `*m..`, `*..n`.
func (p *parser) parseQuantifier() *ast.Quantifier {
	start := p.peek().Span.Start
	p.advance() // *

	q := &ast.Quantifier{Min: 0, Max: -1}

	if p.at(token.IntegerLit) {
		n := p.parseIntLit()

		if _, ok := p.consume(token.DotDot); ok {
			q.Min = n

			if p.at(token.IntegerLit) {
				q.Max = p.parseIntLit()
			}
		} else {
			q.Min, q.Max = n, n
		}
	} else if _, ok := p.consume(token.DotDot); ok {
		if p.at(token.IntegerLit) {
			q.Max = p.parseIntLit()
		}
	}

	q.SpanValue = p.spanFrom(start)

	return q
}

func (p *parser) parseIntLit() int {
	tok := p.advance()

	n, err := strconv.Atoi(tok.Text)
	if err != nil {
		return 0
	}

	return n
}

// parseLabelExpr parses a label expression with explicit precedence
// `! > & > |` (§4.3).
func (p *parser) parseLabelExpr() ast.LabelExpr {
	return p.parseLabelOr()
}

func (p *parser) parseLabelOr() ast.LabelExpr {
	left := p.parseLabelAnd()

	for {
		if _, ok := p.consume(token.Pipe); !ok {
			return left
		}

		right := p.parseLabelAnd()
		left = &ast.LabelOr{SpanValue: left.Span().Cover(right.Span()), Left: left, Right: right}
	}
}

func (p *parser) parseLabelAnd() ast.LabelExpr {
	left := p.parseLabelNot()

	for {
		if _, ok := p.consume(token.Amp); !ok {
			return left
		}

		right := p.parseLabelNot()
		left = &ast.LabelAnd{SpanValue: left.Span().Cover(right.Span()), Left: left, Right: right}
	}
}

func (p *parser) parseLabelNot() ast.LabelExpr {
	start := p.peek().Span.Start

	if _, ok := p.consume(token.Bang); ok {
		operand := p.parseLabelNot()
		return &ast.LabelNot{SpanValue: p.spanFrom(start), Operand: operand}
	}

	tok := p.advance()

	return &ast.LabelName{SpanValue: tok.Span, Name: tok.Text}
}

// parsePropsFiller parses a `{ name: expr, ... }` property filler
// attached to a node or edge pattern. Unlike a general map-literal
// expression, an empty filler `{}` inside an element filler is flagged
// by the validator, not the parser (§4.5 pass 7: "INSERT patterns may
// not use empty property maps `{}`") — the parser just records it.
func (p *parser) parsePropsFiller() *ast.MapLit {
	start := p.peek().Span.Start
	p.advance() // {

	lit := &ast.MapLit{}

	for !p.at(token.RBrace) && !p.isEOF() {
		key, ok := p.expect(token.Ident, "as a property key")
		if !ok {
			p.recoverToDelimiter(token.RBrace)
			lit.SpanValue = p.spanFrom(start)

			return lit
		}

		if _, ok := p.expect(token.Colon, "after property key"); !ok {
			p.recoverToDelimiter(token.RBrace)
			lit.SpanValue = p.spanFrom(start)

			return lit
		}

		val := p.parseExpr(bpNone)
		lit.Entries = append(lit.Entries, ast.MapEntry{Key: key.Text, Value: val})

		if _, ok := p.consume(token.Comma); !ok {
			break
		}
	}

	if _, ok := p.expectClose(token.RBrace, "to close property filler"); !ok {
		p.recoverToDelimiter(token.RBrace)
	}

	lit.SpanValue = p.spanFrom(start)

	return lit
}
