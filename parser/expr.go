package parser

import (
	"strings"

	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/token"
)

// aggregateNames is the set of built-in aggregate function names the
// lexical aggregation-detection rule in §4.3 recognizes ("Aggregation is
// detected lexically (known aggregate names + optional DISTINCT +
// optional * argument)"). The glossary names these exact six plus the
// STDDEV_* family.
var aggregateNames = map[string]bool{
	"COUNT": true, "SUM": true, "AVG": true, "MIN": true, "MAX": true,
	"COLLECT": true, "STDDEV_SAMP": true, "STDDEV_POP": true,
}

// binding powers, low to high. Pratt precedence-climbing: parseExpr
// loops consuming infix operators whose left binding power exceeds the
// minimum the caller passed in, recursing on the right-hand side with
// that operator's right binding power.
const (
	bpNone = iota
	bpOr
	bpXor
	bpAnd
	bpNot
	bpComparison
	bpConcat
	bpAdd
	bpMul
	bpCast
	bpUnary
	bpPostfix
)

func infixBP(k token.Kind) (left, right int, ok bool) {
	switch k {
	case token.Or:
		return bpOr, bpOr + 1, true
	case token.Xor:
		return bpXor, bpXor + 1, true
	case token.And:
		return bpAnd, bpAnd + 1, true
	case token.Eq, token.Neq, token.Lt, token.Gt, token.Le, token.Ge, token.In:
		return bpComparison, bpComparison + 1, true
	case token.PipePipe:
		return bpConcat, bpConcat + 1, true
	case token.Plus, token.Minus:
		return bpAdd, bpAdd + 1, true
	case token.Star, token.Slash, token.Percent:
		return bpMul, bpMul + 1, true
	case token.ColonColon:
		return bpCast, bpCast + 1, true
	default:
		return 0, 0, false
	}
}

func binaryOpFor(k token.Kind) ast.BinaryOp {
	switch k {
	case token.Plus:
		return ast.OpAdd
	case token.Minus:
		return ast.OpSub
	case token.Star:
		return ast.OpMul
	case token.Slash:
		return ast.OpDiv
	case token.Percent:
		return ast.OpMod
	case token.Eq:
		return ast.OpEq
	case token.Neq:
		return ast.OpNeq
	case token.Lt:
		return ast.OpLt
	case token.Gt:
		return ast.OpGt
	case token.Le:
		return ast.OpLe
	case token.Ge:
		return ast.OpGe
	case token.In:
		return ast.OpIn
	case token.And:
		return ast.OpAnd
	case token.Or:
		return ast.OpOr
	case token.Xor:
		return ast.OpXor
	case token.PipePipe:
		return ast.OpConcat
	default:
		return ast.OpAdd
	}
}

// parseExpr parses an expression, consuming infix operators with left
// binding power > minBP. No backtracking: the next operator's kind
// alone determines whether the loop continues.
func (p *parser) parseExpr(minBP int) ast.Expr {
	if !p.enterDepth() {
		defer p.exitDepth()
		return &ast.Bad{SpanValue: p.peek().Span, Expected: "expression"}
	}
	defer p.exitDepth()

	left := p.parsePrefix()

	for {
		if p.at(token.Is) {
			left = p.parseIsNull(left)
			continue
		}

		left = p.parsePostfix(left)

		lbp, rbp, ok := infixBP(p.peekKind())
		if !ok || lbp <= minBP {
			break
		}

		opTok := p.advance()

		if opTok.Kind == token.ColonColon {
			left = p.parseCastAnnotation(left)
			continue
		}

		right := p.parseExpr(rbp)
		left = &ast.Binary{
			SpanValue: left.Span().Cover(right.Span()),
			Op:        binaryOpFor(opTok.Kind),
			Left:      left,
			Right:     right,
		}
	}

	return left
}

// parseIsNull handles the postfix `x IS NULL` / `x IS NOT NULL` forms,
// which don't fit the uniform binary-operator shape since their
// right-hand side is a fixed keyword, not a sub-expression.
func (p *parser) parseIsNull(left ast.Expr) ast.Expr {
	start := p.current
	isTok := p.advance() // IS

	neg := false
	if _, ok := p.consume(token.Not); ok {
		neg = true
	}

	if _, ok := p.consume(token.Null); !ok {
		p.current = start
		return left
	}

	op := ast.UnaryIsNull
	if neg {
		op = ast.UnaryIsNotNull
	}

	return &ast.Unary{SpanValue: left.Span().Cover(isTok.Span), Op: op, Operand: left}
}

func (p *parser) parseCastAnnotation(left ast.Expr) ast.Expr {
	target := p.parseTypeRef()

	return &ast.Cast{SpanValue: left.Span().Cover(target.Span()), Operand: left, Target: target}
}

// parsePostfix consumes `.property`, `[index]`/`[from..to]`, and
// `(args)` call suffixes in a loop, binding tighter than any infix
// operator.
func (p *parser) parsePostfix(left ast.Expr) ast.Expr {
	for {
		switch {
		case p.at(token.Dot):
			p.advance()

			name, ok := p.expect(token.Ident, "after '.'")
			if !ok {
				left = &ast.Bad{SpanValue: left.Span().Cover(p.peek().Span), Expected: "property name"}
				continue
			}

			left = &ast.PropertyAccess{SpanValue: left.Span().Cover(name.Span), Base: left, Property: name.Text}

		case p.at(token.LBracket):
			start := p.current
			p.advance()

			var from, to ast.Expr
			if !p.at(token.DotDot) {
				from = p.parseExpr(bpNone)
			}

			if _, ok := p.consume(token.DotDot); ok {
				if !p.at(token.RBracket) {
					to = p.parseExpr(bpNone)
				}
			}

			end, ok := p.expectClose(token.RBracket, "to close index")
			if !ok {
				p.recoverToDelimiter(token.RBracket)
				left = p.badNode("']'", p.tokens[start].Span.Start)

				continue
			}

			left = &ast.Index{SpanValue: left.Span().Cover(end.Span), Base: left, From: from, To: to}

		default:
			return left
		}
	}
}

func (p *parser) parsePrefix() ast.Expr {
	start := p.peek().Span.Start

	switch {
	case p.at(token.Minus):
		p.advance()
		operand := p.parseExpr(bpUnary)

		return &ast.Unary{SpanValue: p.spanFrom(start), Op: ast.UnaryNeg, Operand: operand}

	case p.at(token.Not):
		p.advance()
		operand := p.parseExpr(bpNot)

		return &ast.Unary{SpanValue: p.spanFrom(start), Op: ast.UnaryNot, Operand: operand}

	case p.at(token.LParen):
		p.advance()
		inner := p.parseExpr(bpNone)

		if _, ok := p.expectClose(token.RParen, "to close parenthesized expression"); !ok {
			p.recoverToDelimiter(token.RParen)
			return p.badNode("')'", start)
		}

		return inner

	case p.at(token.LBracket):
		return p.parseListLit(start)

	case p.at(token.LBrace):
		return p.parseMapLit(start)

	case p.at(token.Case):
		return p.parseCase(start)

	case p.at(token.Cast):
		return p.parseCastCall(start)

	case p.at(token.Exists):
		return p.parseExistsSubquery(start)

	case p.atAny(token.IntegerLit, token.FloatLit, token.StringLit,
		token.DateLit, token.TimeLit, token.TimestampLit, token.DurationLit):
		return p.parseLiteral()

	case p.at(token.True):
		tok := p.advance()
		return &ast.Literal{SpanValue: tok.Span, Kind: ast.LiteralBoolean, Text: tok.Text}

	case p.at(token.False):
		tok := p.advance()
		return &ast.Literal{SpanValue: tok.Span, Kind: ast.LiteralBoolean, Text: tok.Text}

	case p.at(token.Null):
		tok := p.advance()
		return &ast.Literal{SpanValue: tok.Span, Kind: ast.LiteralNull, Text: tok.Text}

	case p.at(token.Parameter):
		tok := p.advance()
		return &ast.Parameter{SpanValue: tok.Span, Name: strings.TrimPrefix(tok.Text, "$")}

	case p.at(token.Ident) || p.at(token.DelimitedIdent):
		return p.parseIdentOrCall()

	default:
		bad := p.badNode("expression", start)
		p.errorAt("parse.expected-token", "expected expression, found "+token.KindName(p.peekKind()), p.peek().Span)

		if !p.isEOF() {
			p.advance()
		}

		return bad
	}
}

func (p *parser) parseLiteral() ast.Expr {
	tok := p.advance()

	var kind ast.LiteralKind

	switch tok.Kind {
	case token.IntegerLit:
		kind = ast.LiteralInteger
	case token.FloatLit:
		kind = ast.LiteralFloat
	case token.StringLit:
		kind = ast.LiteralString
	case token.DateLit:
		kind = ast.LiteralDate
	case token.TimeLit:
		kind = ast.LiteralTime
	case token.TimestampLit:
		kind = ast.LiteralTimestamp
	case token.DurationLit:
		kind = ast.LiteralDuration
	}

	return &ast.Literal{SpanValue: tok.Span, Kind: kind, Text: tok.Text}
}

// parseIdentOrCall parses a bare variable reference or, if followed by
// '(', a function/aggregate/procedure call. DISTINCT and a bare '*'
// argument are recognized here for aggregate calls (§4.3).
func (p *parser) parseIdentOrCall() ast.Expr {
	nameTok := p.advance()

	if !p.at(token.LParen) {
		return &ast.VarRef{SpanValue: nameTok.Span, Name: nameTok.Text}
	}

	p.advance() // (

	call := &ast.Call{Name: nameTok.Text, IsAggregate: aggregateNames[strings.ToUpper(nameTok.Text)]}

	if _, ok := p.consume(token.Distinct); ok {
		call.Distinct = true
	}

	if call.IsAggregate && p.at(token.Star) {
		p.advance()
		call.Star = true
	} else {
		for !p.at(token.RParen) && !p.isEOF() {
			call.Args = append(call.Args, p.parseExpr(bpNone))

			if _, ok := p.consume(token.Comma); !ok {
				break
			}
		}
	}

	end, ok := p.expectClose(token.RParen, "to close call arguments")
	if !ok {
		p.recoverToDelimiter(token.RParen)
		call.SpanValue = p.spanFrom(nameTok.Span.Start)

		return call
	}

	call.SpanValue = nameTok.Span.Cover(end.Span)

	return call
}

func (p *parser) parseListLit(start int) ast.Expr {
	p.advance() // [

	lit := &ast.ListLit{}

	for !p.at(token.RBracket) && !p.isEOF() {
		lit.Elements = append(lit.Elements, p.parseExpr(bpNone))

		if _, ok := p.consume(token.Comma); !ok {
			break
		}
	}

	if _, ok := p.expectClose(token.RBracket, "to close list literal"); !ok {
		p.recoverToDelimiter(token.RBracket)
		lit.SpanValue = p.spanFrom(start)

		return lit
	}

	lit.SpanValue = p.spanFrom(start)

	return lit
}

func (p *parser) parseMapLit(start int) ast.Expr {
	p.advance() // {

	lit := &ast.MapLit{}

	for !p.at(token.RBrace) && !p.isEOF() {
		key, ok := p.expect(token.Ident, "as a map key")
		if !ok {
			p.recoverToDelimiter(token.RBrace)
			return p.badNode("'}'", start)
		}

		if _, ok := p.expect(token.Colon, "after map key"); !ok {
			p.recoverToDelimiter(token.RBrace)
			return p.badNode("'}'", start)
		}

		val := p.parseExpr(bpNone)
		lit.Entries = append(lit.Entries, ast.MapEntry{Key: key.Text, Value: val})

		if _, ok := p.consume(token.Comma); !ok {
			break
		}
	}

	if _, ok := p.expectClose(token.RBrace, "to close map literal"); !ok {
		p.recoverToDelimiter(token.RBrace)
		lit.SpanValue = p.spanFrom(start)

		return lit
	}

	lit.SpanValue = p.spanFrom(start)

	return lit
}

func (p *parser) parseCase(start int) ast.Expr {
	p.advance() // CASE

	c := &ast.CaseExpr{}

	if !p.at(token.When) {
		c.Operand = p.parseExpr(bpNone)
	}

	for p.at(token.When) {
		p.advance()

		cond := p.parseExpr(bpNone)

		if _, ok := p.expect(token.Then, "in CASE WHEN"); !ok {
			p.synchronize("", "")
			break
		}

		result := p.parseExpr(bpNone)
		c.Whens = append(c.Whens, ast.WhenClause{Cond: cond, Result: result})
	}

	if _, ok := p.consume(token.Else); ok {
		c.Else = p.parseExpr(bpNone)
	}

	if _, ok := p.expect(token.End, "to close CASE"); !ok {
		c.SpanValue = p.spanFrom(start)
		return c
	}

	c.SpanValue = p.spanFrom(start)

	return c
}

func (p *parser) parseCastCall(start int) ast.Expr {
	p.advance() // CAST

	if _, ok := p.expect(token.LParen, "after CAST"); !ok {
		return p.badNode("'('", start)
	}

	operand := p.parseExpr(bpNone)

	if _, ok := p.expect(token.As, "in CAST"); !ok {
		p.recoverToDelimiter(token.RParen)
		return p.badNode("AS", start)
	}

	target := p.parseTypeRef()

	if _, ok := p.expectClose(token.RParen, "to close CAST"); !ok {
		p.recoverToDelimiter(token.RParen)
	}

	return &ast.Cast{SpanValue: p.spanFrom(start), Operand: operand, Target: target}
}

// parseTypeRef parses a type reference: a base type-name keyword or
// identifier, optionally `LIST OF <type>`.
func (p *parser) parseTypeRef() ast.TypeRef {
	start := p.peek().Span.Start

	if _, ok := p.consume(token.List); ok {
		p.consume(token.Of)

		inner := p.parseTypeRef()

		return ast.TypeRef{SpanValue: p.spanFrom(start), Name: "LIST", ListOf: &inner}
	}

	tok := p.advance()

	return ast.TypeRef{SpanValue: tok.Span, Name: strings.ToUpper(tok.Text)}
}

func (p *parser) parseExistsSubquery(start int) ast.Expr {
	p.advance() // EXISTS

	if _, ok := p.expect(token.LBrace, "after EXISTS"); !ok {
		return p.badNode("'{'", start)
	}

	q := p.parseQueryBody(nil)

	if _, ok := p.expectClose(token.RBrace, "to close EXISTS"); !ok {
		p.recoverToDelimiter(token.RBrace)
	}

	return &ast.Subquery{SpanValue: p.spanFrom(start), Kind: ast.SubqueryExists, Query: q}
}
