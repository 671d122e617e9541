package parser

import (
	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/token"
)

// parseProgram parses a sequence of `;`-optionally-separated statements.
// Per §4.3: "The parser must produce an AST whenever at least one
// statement was recognized." When every statement in the source fails
// to recognize anything at all, Program is still returned (with no
// Statements) rather than nil, since callers should not have to special
// case a nil AST; ParseAndValidate in gql.go therefore validates even an
// empty Program.
func (p *parser) parseProgram() *ast.Program {
	start := p.peek().Span.Start

	prog := &ast.Program{}

	for !p.isEOF() {
		if semi, ok := p.consume(token.Semi); ok {
			prog.Statements = append(prog.Statements, &ast.Empty{SpanValue: semi.Span})
			continue
		}

		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, p.maybeComposite(stmt))
		}

		p.consume(token.Semi)
	}

	prog.SpanValue = p.spanFrom(start)

	return prog
}

// maybeComposite wraps stmt in a CompositeQuery if it is immediately
// followed by UNION/EXCEPT/INTERSECT, recursing so `a UNION b UNION c`
// associates left as ((a UNION b) UNION c).
func (p *parser) maybeComposite(left ast.Statement) ast.Statement {
	for {
		var op ast.SetOp

		switch {
		case p.at(token.Union):
			op = ast.SetUnion
		case p.at(token.Except):
			op = ast.SetExcept
		case p.at(token.Intersect):
			op = ast.SetIntersect
		default:
			return left
		}

		p.advance()

		all := false
		if _, ok := p.consume(token.All); ok {
			all = true
		} else {
			p.consume(token.Distinct)
		}

		right := p.parseStatement()

		left = &ast.CompositeQuery{
			SpanValue: left.Span().Cover(right.Span()),
			Op:        op,
			All:       all,
			Left:      left,
			Right:     right,
		}
	}
}

// parseStatement dispatches on the leading token(s) per the decision
// table in §4.3, disambiguating CALL vs OPTIONAL CALL (not OPTIONAL
// MATCH), MATCH-followed-by-a-modifying-clause as a single Mutation, a
// bare USE as an error, and catalog/session/transaction keywords.
func (p *parser) parseStatement() ast.Statement {
	start := p.peek().Span.Start

	var useGraph ast.Expr
	if p.at(token.Use) {
		p.advance()
		useGraph = p.parseExpr(bpNone)

		if p.isEOF() || p.at(token.Semi) {
			p.errorAt("parse.expected-token", "USE must be followed by a query or mutation", p.spanFrom(start))
			return &ast.Empty{SpanValue: p.spanFrom(start)}
		}
	}

	switch {
	case p.at(token.Create), p.at(token.Drop), p.at(token.Alter):
		return p.parseCatalogStatement(start)

	case p.at(token.Session):
		return p.parseSessionStatement(start)

	case p.at(token.Start), p.at(token.Commit), p.at(token.Rollback):
		return p.parseTransactionStatement(start)

	case p.isMutationLeading():
		return p.parseMutation(start, useGraph)

	default:
		before := p.current
		q := p.parseQueryBody(useGraph)

		if p.current == before {
			// Nothing recognized at all: parseQueryBody consumed no
			// tokens, so returning it here would leave parseProgram
			// spinning on the same token forever. Emit a diagnostic and
			// advance past at least one token before resynchronizing.
			p.errorAt("parse.expected-token", "expected a statement, found "+token.KindName(p.peekKind()), p.peek().Span)

			if !p.isEOF() {
				p.advance()
			}

			p.synchronize("", "")

			return p.badNode("a statement", start)
		}

		q.SpanValue = p.spanFrom(start)

		return q
	}
}

// isMutationLeading reports whether the current token starts a mutation
// statement: a bare modifying clause, or a MATCH whose clause sequence
// eventually reaches one (checked by scanning forward with peekNth,
// bounded lookahead rather than backtracking).
func (p *parser) isMutationLeading() bool {
	if p.atAny(token.Set, token.Remove, token.Insert, token.Delete, token.Detach) {
		return true
	}

	if !p.at(token.Match) && !p.at(token.Optional) {
		return false
	}

	// Bounded lookahead: scan tokens until the matching clause-terminating
	// keyword set to see whether a modifying clause follows the pattern,
	// without consuming anything (no backtracking needed since we never
	// commit to a partial parse here).
	depth := 0

	for i := 0; ; i++ {
		tok := p.peekNth(i)

		switch tok.Kind {
		case token.Eof, token.Semi:
			return false
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		case token.Set, token.Remove, token.Insert, token.Delete, token.Detach:
			if depth == 0 {
				return true
			}
		case token.Return, token.Select:
			if depth == 0 {
				return false
			}
		}

		if i > 4096 {
			return false
		}
	}
}

// parseQueryBody parses the clause sequence of a linear query, sharing
// one rolling scope across clauses (§4.4). useGraph, if non-nil, is the
// USE-focused graph expression for this statement.
func (p *parser) parseQueryBody(useGraph ast.Expr) *ast.Query {
	start := p.peek().Span.Start

	q := &ast.Query{UseGraph: useGraph}

	for {
		clause := p.parseClause()
		if clause == nil {
			break
		}

		q.Clauses = append(q.Clauses, clause)
	}

	q.SpanValue = p.spanFrom(start)

	return q
}

// parseClause parses one primitive query clause, or returns nil when
// the current token doesn't start one (signalling the end of the
// clause sequence to the caller).
func (p *parser) parseClause() ast.Clause {
	start := p.peek().Span.Start

	switch {
	case p.at(token.Match):
		return p.parseMatchClause(start, false)

	case p.at(token.Optional):
		p.advance()

		// §4.3: OPTIONAL binds to the clause that follows it — OPTIONAL
		// MATCH is an optional match, OPTIONAL CALL is an optional
		// procedure call, never an optional MATCH in disguise.
		if p.at(token.Call) {
			return p.parseCallClause(start, true)
		}

		if _, ok := p.expect(token.Match, "after OPTIONAL"); !ok {
			p.synchronize("", "")
			return nil
		}

		return p.parseMatchClauseBody(start, true)

	case p.at(token.Where), p.at(token.Filter):
		kw := p.advance()
		cond := p.parseExpr(bpNone)

		return &ast.FilterClause{SpanValue: p.spanFrom(start), Keyword: token.KindName(kw.Kind), Cond: cond}

	case p.at(token.Let):
		return p.parseLetClause(start)

	case p.at(token.For):
		return p.parseForClause(start)

	case p.at(token.Order):
		return p.parseOrderByClause(start)

	case p.at(token.Offset), p.at(token.Skip):
		p.advance()
		v := p.parseExpr(bpNone)

		return &ast.OffsetClause{SpanValue: p.spanFrom(start), Value: v}

	case p.at(token.Limit):
		p.advance()
		v := p.parseExpr(bpNone)

		return &ast.LimitClause{SpanValue: p.spanFrom(start), Value: v}

	case p.at(token.Group):
		return p.parseGroupByClause(start)

	case p.at(token.Having):
		p.advance()
		cond := p.parseExpr(bpNone)

		return &ast.HavingClause{SpanValue: p.spanFrom(start), Cond: cond}

	case p.at(token.Return):
		return p.parseProjectionClause(start, true)

	case p.at(token.Select):
		return p.parseProjectionClause(start, false)

	case p.at(token.Call):
		return p.parseCallClause(start, false)

	default:
		return nil
	}
}

func (p *parser) parseMatchClause(start int, _ bool) ast.Clause {
	p.advance() // MATCH
	return p.parseMatchClauseBody(start, false)
}

func (p *parser) parseMatchClauseBody(start int, optional bool) ast.Clause {
	patterns := p.parsePatternList()
	return &ast.MatchClause{SpanValue: p.spanFrom(start), Optional: optional, Patterns: patterns}
}

func (p *parser) parseLetClause(start int) ast.Clause {
	p.advance() // LET

	c := &ast.LetClause{}

	for {
		nameTok, ok := p.expect(token.Ident, "in LET binding")
		if !ok {
			p.synchronize("", "")
			break
		}

		if _, ok := p.expect(token.Eq, "in LET binding"); !ok {
			p.synchronize("", "")
			break
		}

		val := p.parseExpr(bpNone)
		c.Bindings = append(c.Bindings, ast.LetBinding{
			Name:  ast.Ident{Name: nameTok.Text, SpanValue: nameTok.Span},
			Value: val,
		})

		if _, ok := p.consume(token.Comma); !ok {
			break
		}
	}

	c.SpanValue = p.spanFrom(start)

	return c
}

func (p *parser) parseForClause(start int) ast.Clause {
	p.advance() // FOR

	nameTok, ok := p.expect(token.Ident, "in FOR binding")
	if !ok {
		p.synchronize("", "")
		return &ast.ForClause{SpanValue: p.spanFrom(start)}
	}

	if _, ok := p.expect(token.In, "in FOR binding"); !ok {
		p.synchronize("", "")
		return &ast.ForClause{SpanValue: p.spanFrom(start), Binding: ast.Ident{Name: nameTok.Text, SpanValue: nameTok.Span}}
	}

	src := p.parseExpr(bpNone)

	return &ast.ForClause{
		SpanValue: p.spanFrom(start),
		Binding:   ast.Ident{Name: nameTok.Text, SpanValue: nameTok.Span},
		Source:    src,
	}
}

func (p *parser) parseOrderByClause(start int) ast.Clause {
	p.advance() // ORDER

	if _, ok := p.expect(token.By, "after ORDER"); !ok {
		p.synchronize("", "")
		return &ast.OrderByClause{SpanValue: p.spanFrom(start)}
	}

	c := &ast.OrderByClause{}

	for {
		v := p.parseExpr(bpNone)

		desc := false
		switch {
		case p.atAny(token.Desc, token.Descending):
			p.advance()
			desc = true
		case p.atAny(token.Asc, token.Ascending):
			p.advance()
		}

		c.Items = append(c.Items, ast.OrderItem{Value: v, Desc: desc})

		if _, ok := p.consume(token.Comma); !ok {
			break
		}
	}

	c.SpanValue = p.spanFrom(start)

	return c
}

func (p *parser) parseGroupByClause(start int) ast.Clause {
	p.advance() // GROUP

	if _, ok := p.expect(token.By, "after GROUP"); !ok {
		p.synchronize("", "")
		return &ast.GroupByClause{SpanValue: p.spanFrom(start)}
	}

	c := &ast.GroupByClause{}

	for {
		c.Items = append(c.Items, p.parseExpr(bpNone))

		if _, ok := p.consume(token.Comma); !ok {
			break
		}
	}

	c.SpanValue = p.spanFrom(start)

	return c
}

// parseProjectionClause parses RETURN or SELECT; isReturn picks which
// Clause type to build since they share grammar and field shape.
func (p *parser) parseProjectionClause(start int, isReturn bool) ast.Clause {
	p.advance() // RETURN or SELECT

	distinct := false
	if _, ok := p.consume(token.Distinct); ok {
		distinct = true
	}

	var items []ast.ProjectionItem

	if _, ok := p.consume(token.Star); ok {
		items = append(items, ast.ProjectionItem{Star: true})
	} else {
		for {
			v := p.parseExpr(bpNone)

			item := ast.ProjectionItem{Value: v}

			if _, ok := p.consume(token.As); ok {
				nameTok, ok := p.expect(token.Ident, "after AS")
				if ok {
					item.Alias = &ast.Ident{Name: nameTok.Text, SpanValue: nameTok.Span}
				}
			}

			items = append(items, item)

			if _, ok := p.consume(token.Comma); !ok {
				break
			}
		}
	}

	if isReturn {
		return &ast.ReturnClause{SpanValue: p.spanFrom(start), Distinct: distinct, Items: items}
	}

	return &ast.SelectClause{SpanValue: p.spanFrom(start), Distinct: distinct, Items: items}
}

// parseCallClause handles both `CALL proc(args) YIELD ...` and the
// inline form `CALL (v1,...) { subquery }`. optional marks OPTIONAL CALL.
func (p *parser) parseCallClause(start int, optional bool) ast.Clause {
	p.advance() // CALL

	c := &ast.CallClause{Optional: optional}

	if p.at(token.LParen) && p.isInlineCallHeader() {
		p.advance() // (

		for !p.at(token.RParen) && !p.isEOF() {
			nameTok, ok := p.expect(token.Ident, "in inline CALL variable list")
			if ok {
				c.InlineVars = append(c.InlineVars, ast.Ident{Name: nameTok.Text, SpanValue: nameTok.Span})
			}

			if _, ok := p.consume(token.Comma); !ok {
				break
			}
		}

		p.expectClose(token.RParen, "to close inline CALL variable list")

		if _, ok := p.expect(token.LBrace, "to open inline CALL body"); ok {
			c.InlineBody = p.parseQueryBody(nil)
			p.expectClose(token.RBrace, "to close inline CALL body")
		}
	} else {
		nameTok, ok := p.expect(token.Ident, "as a procedure name")
		if !ok {
			p.synchronize("", "")
			return &ast.CallClause{SpanValue: p.spanFrom(start), Optional: optional}
		}

		name := nameTok.Text
		for p.at(token.Dot) {
			p.advance()

			part, ok := p.expect(token.Ident, "in qualified procedure name")
			if !ok {
				break
			}

			name += "." + part.Text
		}

		call := &ast.Call{Name: name}

		if _, ok := p.expect(token.LParen, "after procedure name"); ok {
			for !p.at(token.RParen) && !p.isEOF() {
				call.Args = append(call.Args, p.parseExpr(bpNone))

				if _, ok := p.consume(token.Comma); !ok {
					break
				}
			}

			p.expectClose(token.RParen, "to close procedure call arguments")
		}

		call.SpanValue = p.spanFrom(nameTok.Span.Start)
		c.Procedure = call
	}

	if _, ok := p.consume(token.Yield); ok {
		for {
			nameTok, ok := p.expect(token.Ident, "in YIELD list")
			if !ok {
				break
			}

			item := ast.YieldItem{Name: ast.Ident{Name: nameTok.Text, SpanValue: nameTok.Span}}

			if _, ok := p.consume(token.As); ok {
				aliasTok, ok := p.expect(token.Ident, "after AS in YIELD")
				if ok {
					item.Alias = &ast.Ident{Name: aliasTok.Text, SpanValue: aliasTok.Span}
				}
			}

			c.Yield = append(c.Yield, item)

			if _, ok := p.consume(token.Comma); !ok {
				break
			}
		}
	}

	c.SpanValue = p.spanFrom(start)

	return c
}

// isInlineCallHeader distinguishes `CALL (v1, v2) { ... }` from
// `CALL proc(args)` by checking, with bounded lookahead, whether the
// parenthesized list is followed by `{`.
func (p *parser) isInlineCallHeader() bool {
	depth := 0

	for i := 0; ; i++ {
		tok := p.peekNth(i)

		switch tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return p.peekNth(i + 1).Kind == token.LBrace
			}
		case token.Eof, token.Semi:
			return false
		}

		if i > 4096 {
			return false
		}
	}
}

// parseMutation parses a MATCH (optional) plus one or more modifying
// sub-steps as a single statement (§4.3).
func (p *parser) parseMutation(start int, useGraph ast.Expr) ast.Statement {
	m := &ast.Mutation{UseGraph: useGraph}

	if p.at(token.Match) {
		matchStart := p.peek().Span.Start
		clause := p.parseMatchClause(matchStart, false)
		mc, _ := clause.(*ast.MatchClause)
		m.Match = mc
	} else if p.at(token.Optional) {
		p.advance()
		p.expect(token.Match, "after OPTIONAL")
		matchStart := p.peek().Span.Start
		clause := p.parseMatchClauseBody(matchStart, true)
		mc, _ := clause.(*ast.MatchClause)
		m.Match = mc
	}

	if p.at(token.Where) || p.at(token.Filter) {
		filterStart := p.peek().Span.Start
		kw := p.advance()
		cond := p.parseExpr(bpNone)
		m.Filter = &ast.FilterClause{SpanValue: p.spanFrom(filterStart), Keyword: token.KindName(kw.Kind), Cond: cond}
	}

	for {
		action := p.parseMutationAction()
		if action == nil {
			break
		}

		m.Actions = append(m.Actions, action)
	}

	m.SpanValue = p.spanFrom(start)

	return m
}

func (p *parser) parseMutationAction() ast.MutationAction {
	start := p.peek().Span.Start

	switch {
	case p.at(token.Set):
		p.advance()

		action := &ast.SetAction{}

		for {
			target := p.parseExpr(bpPostfix)

			prop, ok := target.(*ast.PropertyAccess)
			if !ok {
				p.errorAt("sema.set-requires-element", "SET target must be a property access", target.Span())
			}

			if _, ok := p.expect(token.Eq, "in SET item"); !ok {
				p.synchronize("", "")
				break
			}

			val := p.parseExpr(bpNone)
			action.Items = append(action.Items, ast.SetItem{Target: prop, Value: val})

			if _, ok := p.consume(token.Comma); !ok {
				break
			}
		}

		action.SpanValue = p.spanFrom(start)

		return action

	case p.at(token.Remove):
		p.advance()

		action := &ast.RemoveAction{}

		for {
			target := p.parseExpr(bpPostfix)

			if prop, ok := target.(*ast.PropertyAccess); ok {
				action.Targets = append(action.Targets, prop)
			}

			if _, ok := p.consume(token.Comma); !ok {
				break
			}
		}

		action.SpanValue = p.spanFrom(start)

		return action

	case p.at(token.Delete):
		p.advance()
		return p.parseDeleteAction(start, false)

	case p.at(token.Detach):
		p.advance()

		if _, ok := p.expect(token.Delete, "after DETACH"); !ok {
			p.synchronize("", "")
			return nil
		}

		return p.parseDeleteAction(start, true)

	case p.at(token.Insert):
		p.advance()

		patterns := p.parsePatternList()

		return &ast.InsertAction{SpanValue: p.spanFrom(start), Patterns: patterns}

	default:
		return nil
	}
}

func (p *parser) parseDeleteAction(start int, detach bool) ast.MutationAction {
	action := &ast.DeleteAction{Detach: detach}

	for {
		action.Targets = append(action.Targets, p.parseExpr(bpComparison))

		if _, ok := p.consume(token.Comma); !ok {
			break
		}
	}

	action.SpanValue = p.spanFrom(start)

	return action
}

func (p *parser) parseSessionStatement(start int) ast.Statement {
	p.advance() // SESSION

	s := &ast.SessionStatement{}

	if !p.isEOF() && !p.at(token.Semi) {
		s.GraphRef = p.parseExpr(bpNone)
	}

	s.SpanValue = p.spanFrom(start)

	return s
}

func (p *parser) parseTransactionStatement(start int) ast.Statement {
	var kind ast.TransactionKind

	switch {
	case p.at(token.Start):
		p.advance()
		p.expect(token.Transaction, "after START")

		kind = ast.TxStart
	case p.at(token.Commit):
		p.advance()

		kind = ast.TxCommit
	case p.at(token.Rollback):
		p.advance()

		kind = ast.TxRollback
	}

	return &ast.TransactionStatement{SpanValue: p.spanFrom(start), Kind: kind}
}

func (p *parser) parseCatalogStatement(start int) ast.Statement {
	var op ast.CatalogOp

	switch {
	case p.at(token.Create):
		op = ast.CatalogCreate
	case p.at(token.Drop):
		op = ast.CatalogDrop
	case p.at(token.Alter):
		op = ast.CatalogAlter
	}

	p.advance()

	var object ast.CatalogObject

	switch {
	case p.at(token.Graph):
		object = ast.CatalogGraph
	case p.at(token.Schema):
		object = ast.CatalogSchema
	case p.at(token.Procedure):
		object = ast.CatalogProcedure
	default:
		p.expectedToken(token.Graph, "after CREATE/DROP/ALTER")
		p.synchronize("", "")

		return &ast.CatalogStatement{SpanValue: p.spanFrom(start), Op: op}
	}

	p.advance()

	nameTok, ok := p.expect(token.Ident, "as a catalog object name")
	if !ok {
		p.synchronize("", "")
		return &ast.CatalogStatement{SpanValue: p.spanFrom(start), Op: op, Object: object}
	}

	stmt := &ast.CatalogStatement{
		Op: op, Object: object,
		Name: ast.Ident{Name: nameTok.Text, SpanValue: nameTok.Span},
	}

	if object == ast.CatalogGraph && op == ast.CatalogCreate && p.at(token.LBrace) {
		stmt.GraphType = p.parseGraphTypeSpec()
	}

	stmt.SpanValue = p.spanFrom(start)

	return stmt
}

// parseGraphTypeSpec parses the `{ (:Label {prop: TYPE, ...}), ... }`
// node/edge type declarations attached to CREATE GRAPH.
func (p *parser) parseGraphTypeSpec() *ast.GraphTypeSpec {
	start := p.peek().Span.Start
	p.advance() // {

	spec := &ast.GraphTypeSpec{}

	for !p.at(token.RBrace) && !p.isEOF() {
		if _, ok := p.consume(token.LParen); ok {
			decl := p.parseElementTypeDecl(false)
			spec.NodeTypes = append(spec.NodeTypes, decl)
			p.expectClose(token.RParen, "to close node type declaration")
		} else if _, ok := p.consume(token.LBracket); ok {
			decl := p.parseElementTypeDecl(true)
			spec.EdgeTypes = append(spec.EdgeTypes, decl)
			p.expectClose(token.RBracket, "to close edge type declaration")
		} else {
			p.synchronize("parse.unexpected-trailing", "expected node or edge type declaration")
			break
		}

		p.consume(token.Comma)
	}

	p.expectClose(token.RBrace, "to close graph type specification")

	spec.SpanValue = p.spanFrom(start)

	return spec
}

func (p *parser) parseElementTypeDecl(_ bool) ast.ElementTypeDecl {
	start := p.peek().Span.Start

	decl := ast.ElementTypeDecl{}

	if _, ok := p.consume(token.Colon); ok {
		for {
			tok, ok := p.expect(token.Ident, "as a label")
			if !ok {
				break
			}

			decl.Labels = append(decl.Labels, tok.Text)

			if _, ok := p.consume(token.Amp); !ok {
				break
			}
		}
	}

	if p.at(token.LBrace) {
		props := p.parsePropsFiller()

		for _, entry := range props.Entries {
			typeName := ""
			if lit, ok := entry.Value.(*ast.VarRef); ok {
				typeName = lit.Name
			}

			decl.Props = append(decl.Props, ast.PropertyDecl{Name: entry.Key, Type: ast.TypeRef{Name: typeName}, Required: true})
		}
	}

	decl.SpanValue = p.spanFrom(start)

	return decl
}
