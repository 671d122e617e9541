package validator

import (
	"strings"

	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/catalog"
	"github.com/iso-gql/gqlfront/ir"
)

// evalCall implements §4.5 pass 4's callable-call rule together with
// pass 6's callable validation: resolve Name against the built-in table
// (always available) or the metadata provider's user-procedure catalog,
// pick a signature whose arity/parameter types accept the inferred
// argument types, and record the call's aggregate-ness consistently with
// what the parser already detected lexically (§4.3).
func (c *context) evalCall(n *ast.Call, scope ir.ScopeID, uses *[]string) ir.Type {
	argTypes := make([]ir.Type, 0, len(n.Args))
	for _, a := range n.Args {
		argTypes = append(argTypes, c.evalExpr(a, scope, uses))
	}

	upper := strings.ToUpper(n.Name)

	if n.IsAggregate || catalog.IsBuiltinAggregateName(upper) {
		if sig, ok := catalog.BuiltinAggregateSignature(upper); ok {
			return sig.Returns
		}

		return ir.Basic(ir.Any)
	}

	if sig, ok := catalog.BuiltinFunctionSignature(upper); ok {
		if !n.Star && len(n.Args) > 0 && !sig.Accepts(argTypes) {
			c.warn("sema.type-mismatch", "argument types do not match "+n.Name+"'s signature", n.Span())
		}

		return sig.Returns
	}

	if c.v.provider != nil {
		if sig, ok := c.v.provider.GetCallable(n.Name, catalog.CallableFunction); ok {
			if !sig.Accepts(argTypes) {
				c.error("sema.arity-mismatch", "wrong argument count or types for "+n.Name, n.Span())
			}

			return sig.Returns
		}

		if sig, ok := c.v.provider.GetCallable(n.Name, catalog.CallableProcedure); ok {
			if !sig.Accepts(argTypes) {
				c.error("sema.arity-mismatch", "wrong argument count or types for "+n.Name, n.Span())
			}

			return sig.Returns
		}

		c.error("sema.unknown-callable", "unknown callable "+n.Name, n.Span())

		return ir.Basic(ir.Any)
	}

	// No provider: unresolved user callables are not an error (§4.5
	// pass 6 only runs "when metadata provided"), fall back to Any.
	return ir.Basic(ir.Any)
}

// checkCallClause validates a CALL clause's procedure invocation and its
// YIELD list against the metadata provider (§4.5 pass 6: "unknown
// procedure name -> error; arity mismatch -> error; YIELD names must be
// columns declared by the procedure's return signature"), then declares
// the yielded names into scope.
func (c *context) checkCallClause(cc *ast.CallClause, scope ir.ScopeID, uses *[]string) {
	if cc.Procedure != nil {
		argTypes := make([]ir.Type, 0, len(cc.Procedure.Args))
		for _, a := range cc.Procedure.Args {
			argTypes = append(argTypes, c.evalExpr(a, scope, uses))
		}

		var sig catalog.CallableSignature

		haveSig := false

		if c.v.provider != nil {
			sig, haveSig = c.v.provider.GetCallable(cc.Procedure.Name, catalog.CallableProcedure)
			if !haveSig {
				c.error("sema.unknown-callable", "unknown procedure "+cc.Procedure.Name, cc.Procedure.Span())
			} else if !sig.Accepts(argTypes) {
				c.error("sema.arity-mismatch", "wrong argument count for procedure "+cc.Procedure.Name, cc.Procedure.Span())
			}
		}

		for _, y := range cc.Yield {
			name := y.Name.Name
			bindName := name

			if y.Alias != nil {
				bindName = y.Alias.Name
			}

			if haveSig {
				found := false

				for _, col := range sig.YieldCols {
					if col.Name == name {
						found = true
						c.declare(scope, ir.Binding{Name: bindName, Kind: ir.BindYieldOutput, DeclaredAt: y.Name.Span()})
						c.scopes.SetType(scope, bindName, col.Type)

						break
					}
				}

				if !found {
					c.error("sema.yield-column-missing", "procedure "+cc.Procedure.Name+" has no output column "+name, y.Name.Span())
				}
			} else {
				c.declare(scope, ir.Binding{Name: bindName, Kind: ir.BindYieldOutput, DeclaredAt: y.Name.Span()})
			}
		}

		return
	}

	// Inline procedure body: CALL (v1,...) { query }. Its body sees only
	// the named variables plus globals (§4.4), implemented as a fresh
	// root scope pre-seeded with copies of the named bindings.
	if cc.InlineBody != nil {
		inner := c.scopes.NewScope(ir.NoScope)

		for _, v := range cc.InlineVars {
			if b, ok := c.scopes.Lookup(scope, v.Name); ok {
				c.declare(inner, ir.Binding{Name: v.Name, Kind: b.Kind, DeclaredAt: v.Span(), Type: b.Type})
			} else {
				c.error("sema.undefined-variable", "undefined variable "+v.Name, v.Span())
			}
		}

		c.rootScopes[cc.InlineBody] = inner
		c.validateQuery(cc.InlineBody, inner)

		for _, y := range cc.Yield {
			name := y.Name.Name
			bindName := name

			if y.Alias != nil {
				bindName = y.Alias.Name
			}

			if b, ok := c.scopes.Lookup(inner, name); ok {
				c.declare(scope, ir.Binding{Name: bindName, Kind: ir.BindYieldOutput, DeclaredAt: y.Name.Span(), Type: b.Type})
			} else {
				c.declare(scope, ir.Binding{Name: bindName, Kind: ir.BindYieldOutput, DeclaredAt: y.Name.Span()})
			}
		}
	}
}
