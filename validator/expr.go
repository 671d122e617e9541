package validator

import (
	"strings"

	"github.com/iso-gql/gqlfront/ast"
	"github.com/iso-gql/gqlfront/catalog"
	"github.com/iso-gql/gqlfront/ir"
)

// evalExpr is the combined reference-resolution + type-inference walk
// (§4.5 passes 2 and 4). It assigns a stable ExprID to every expression
// node it visits (§3/§4.4: "Assigned by the validator's scope-analysis
// pass"), resolves VarRef/PropertyAccess bases against scope, and
// returns the expression's inferred type bottom-up. uses, if non-nil,
// collects every variable name the expression reads — the "use set" an
// enclosing ClauseInfo/VariableDependencyGraph wants (§4.4 "QueryInfo").
func (c *context) evalExpr(e ast.Expr, scope ir.ScopeID, uses *[]string) ir.Type {
	if e == nil {
		return ir.Basic(ir.Any)
	}

	if !c.enterDepth(e.Span()) {
		return ir.Basic(ir.Any)
	}
	defer c.exitDepth()

	switch n := e.(type) {
	case *ast.Literal:
		n.ID = c.assignID()
		return c.literalType(n)

	case *ast.VarRef:
		n.ID = c.assignID()
		addUse(uses, n.Name)

		b, ok := c.scopes.Lookup(scope, n.Name)
		if !ok {
			c.error("sema.undefined-variable", "undefined variable "+n.Name, n.Span())
			return c.record(n.ID, ir.Basic(ir.Any))
		}

		if b.Type != nil {
			return c.record(n.ID, *b.Type)
		}

		return c.record(n.ID, bindingKindType(b.Kind))

	case *ast.Parameter:
		n.ID = c.assignID()
		return c.record(n.ID, ir.Basic(ir.Any))

	case *ast.PropertyAccess:
		n.ID = c.assignID()
		baseType := c.evalExpr(n.Base, scope, uses)

		return c.record(n.ID, c.propertyType(n, baseType))

	case *ast.Unary:
		n.ID = c.assignID()
		operand := c.evalExpr(n.Operand, scope, uses)

		switch n.Op {
		case ast.UnaryNeg:
			if operand.Kind == ir.Float {
				return c.record(n.ID, ir.Basic(ir.Float))
			}

			return c.record(n.ID, ir.Basic(ir.Int))
		case ast.UnaryNot:
			return c.record(n.ID, ir.Basic(ir.Boolean))
		default: // UnaryIsNull, UnaryIsNotNull
			return c.record(n.ID, ir.Basic(ir.Boolean))
		}

	case *ast.Binary:
		n.ID = c.assignID()
		left := c.evalExpr(n.Left, scope, uses)
		right := c.evalExpr(n.Right, scope, uses)

		return c.record(n.ID, c.binaryType(n, left, right))

	case *ast.Call:
		n.ID = c.assignID()
		return c.record(n.ID, c.evalCall(n, scope, uses))

	case *ast.CaseExpr:
		n.ID = c.assignID()

		if n.Operand != nil {
			c.evalExpr(n.Operand, scope, uses)
		}

		var branchTypes []ir.Type

		for _, w := range n.Whens {
			c.evalExpr(w.Cond, scope, uses)
			branchTypes = append(branchTypes, c.evalExpr(w.Result, scope, uses))
		}

		if n.Else != nil {
			branchTypes = append(branchTypes, c.evalExpr(n.Else, scope, uses))
		}

		return c.record(n.ID, commonSupertype(branchTypes))

	case *ast.Cast:
		n.ID = c.assignID()
		from := c.evalExpr(n.Operand, scope, uses)
		target := typeRefToType(n.Target)

		if !castFeasible(from, target) {
			c.error("sema.cast-impossible", "cannot cast "+from.Name()+" to "+target.Name(), n.Span())
		}

		return c.record(n.ID, target)

	case *ast.ListLit:
		n.ID = c.assignID()

		var elemTypes []ir.Type

		for _, el := range n.Elements {
			elemTypes = append(elemTypes, c.evalExpr(el, scope, uses))
		}

		if len(elemTypes) == 0 {
			return c.record(n.ID, ir.ListOf(ir.Basic(ir.Any)))
		}

		return c.record(n.ID, ir.ListOf(commonSupertype(elemTypes)))

	case *ast.MapLit:
		n.ID = c.assignID()

		fields := make([]ir.RecordField, 0, len(n.Entries))
		for _, ent := range n.Entries {
			fields = append(fields, ir.RecordField{Name: ent.Key, Type: c.evalExpr(ent.Value, scope, uses)})
		}

		return c.record(n.ID, ir.RecordOf(fields...))

	case *ast.RecordLit:
		n.ID = c.assignID()

		fields := make([]ir.RecordField, 0, len(n.Fields))
		for _, ent := range n.Fields {
			fields = append(fields, ir.RecordField{Name: ent.Key, Type: c.evalExpr(ent.Value, scope, uses)})
		}

		return c.record(n.ID, ir.RecordOf(fields...))

	case *ast.Index:
		n.ID = c.assignID()
		base := c.evalExpr(n.Base, scope, uses)
		c.evalExpr(n.From, scope, uses)

		if n.To != nil {
			c.evalExpr(n.To, scope, uses)
			return c.record(n.ID, base)
		}

		if base.Kind == ir.List && base.Elem != nil {
			return c.record(n.ID, *base.Elem)
		}

		return c.record(n.ID, ir.Basic(ir.Any))

	case *ast.Subquery:
		n.ID = c.assignID()
		return c.record(n.ID, c.evalSubquery(n, scope))

	default:
		return ir.Basic(ir.Any)
	}
}

func addUse(uses *[]string, name string) {
	if uses != nil {
		*uses = append(*uses, name)
	}
}

func (c *context) record(id ast.ExprID, t ir.Type) ir.Type {
	c.types.Set(int(id), t)
	return t
}

func (c *context) literalType(l *ast.Literal) ir.Type {
	switch l.Kind {
	case ast.LiteralInteger:
		return ir.Basic(ir.Int)
	case ast.LiteralFloat:
		return ir.Basic(ir.Float)
	case ast.LiteralString:
		return ir.Basic(ir.String)
	case ast.LiteralBoolean:
		return ir.Basic(ir.Boolean)
	case ast.LiteralNull:
		return ir.Basic(ir.Null)
	case ast.LiteralDate:
		return ir.Basic(ir.Date)
	case ast.LiteralTime:
		return ir.Basic(ir.Time)
	case ast.LiteralTimestamp:
		return ir.Basic(ir.Timestamp)
	case ast.LiteralDuration:
		return ir.Basic(ir.Duration)
	default:
		return ir.Basic(ir.Any)
	}
}

func bindingKindType(k ir.BindingKind) ir.Type {
	switch k {
	case ir.BindNode:
		return ir.NodeType()
	case ir.BindEdge:
		return ir.EdgeType()
	case ir.BindPath:
		return ir.Basic(ir.Path)
	default:
		return ir.Basic(ir.Any)
	}
}

// propertyType implements §4.5 pass 4's property-access rule: look up
// the base's kind; if Node/Edge and a provider is available, query it;
// otherwise fall back per the configured InferencePolicy.
func (c *context) propertyType(n *ast.PropertyAccess, base ir.Type) ir.Type {
	if !base.IsNodeType() && !base.IsEdgeType() {
		return ir.Basic(ir.Any)
	}

	if c.v.provider == nil {
		return c.missingMetadata(n)
	}

	snap, ok := c.metadataSnapshot("", n.Span())
	if !ok {
		return c.missingMetadata(n)
	}

	for _, label := range base.Labels {
		var (
			meta catalog.ElementTypeMeta
			found bool
		)

		if base.IsNodeType() {
			meta, found = snap.NodeType(label)
		} else {
			meta, found = snap.EdgeType(label)
		}

		if !found {
			continue
		}

		if prop, ok := meta.Property(n.Property); ok {
			return prop.Type
		}
	}

	return c.missingMetadata(n)
}

func (c *context) missingMetadata(n *ast.PropertyAccess) ir.Type {
	if c.v.policy == Strict {
		c.error("sema.unknown-property", "unknown property "+n.Property, n.Span())
	}

	return ir.Basic(ir.Any)
}

func (c *context) binaryType(n *ast.Binary, left, right ir.Type) ir.Type {
	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpMod, ast.OpDiv, ast.OpConcat:
		if left.IsNull() || right.IsNull() {
			c.warn("sema.null-propagation", "NULL operand propagates to the whole expression", n.Span())
			return ir.Basic(ir.Null)
		}
	}

	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpMod:
		return arithmeticType(left, right)
	case ast.OpDiv:
		return ir.Basic(ir.Float)
	case ast.OpConcat:
		if !left.IsAny() && !left.IsStringType() {
			c.error("sema.type-mismatch", "left side of || must be String, found "+left.Name(), n.Left.Span())
		}

		if !right.IsAny() && !right.IsStringType() {
			c.error("sema.type-mismatch", "right side of || must be String, found "+right.Name(), n.Right.Span())
		}

		return ir.Basic(ir.String)
	case ast.OpTypeCast:
		return right
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe, ast.OpIn,
		ast.OpAnd, ast.OpOr, ast.OpXor:
		return ir.Basic(ir.Boolean)
	default:
		return ir.Basic(ir.Any)
	}
}

func arithmeticType(a, b ir.Type) ir.Type {
	if a.Kind == ir.Float || b.Kind == ir.Float {
		return ir.Basic(ir.Float)
	}

	if a.Kind == ir.Any || b.Kind == ir.Any {
		return ir.Basic(ir.Any)
	}

	return ir.Basic(ir.Int)
}

// commonSupertype implements the CASE/list-literal widening rule (§4.5
// pass 4): Int+Float -> Float, same-kind Node/Edge labels lift to the
// unlabeled kind, otherwise a Union of the distinct member types.
func commonSupertype(types []ir.Type) ir.Type {
	if len(types) == 0 {
		return ir.Basic(ir.Any)
	}

	result := types[0]

	for _, t := range types[1:] {
		result = widen(result, t)
	}

	return result
}

func widen(a, b ir.Type) ir.Type {
	if a.SameShape(b) {
		return a
	}

	if a.Kind == ir.Any || b.Kind == ir.Any {
		return ir.Basic(ir.Any)
	}

	if (a.Kind == ir.Int && b.Kind == ir.Float) || (a.Kind == ir.Float && b.Kind == ir.Int) {
		return ir.Basic(ir.Float)
	}

	if a.Kind == ir.Node && b.Kind == ir.Node {
		return ir.NodeType()
	}

	if a.Kind == ir.Edge && b.Kind == ir.Edge {
		return ir.EdgeType()
	}

	if a.Kind == ir.Null {
		return b
	}

	if b.Kind == ir.Null {
		return a
	}

	return ir.UnionOf(a, b)
}

func typeRefToType(t ast.TypeRef) ir.Type {
	if t.ListOf != nil {
		return ir.ListOf(typeRefToType(*t.ListOf))
	}

	switch strings.ToUpper(t.Name) {
	case "INT", "INTEGER":
		return ir.Basic(ir.Int)
	case "FLOAT", "DOUBLE":
		return ir.Basic(ir.Float)
	case "STRING":
		return ir.Basic(ir.String)
	case "BOOL", "BOOLEAN":
		return ir.Basic(ir.Boolean)
	case "DATE":
		return ir.Basic(ir.Date)
	case "TIME":
		return ir.Basic(ir.Time)
	case "TIMESTAMP":
		return ir.Basic(ir.Timestamp)
	case "DURATION":
		return ir.Basic(ir.Duration)
	default:
		return ir.Basic(ir.Any)
	}
}

// castFeasible implements §4.5 pass 4's "cast feasibility is checked
// against a cast-rule set (numeric<->numeric, numeric<->string,
// temporal<->string, Any<->*)".
func castFeasible(from, to ir.Type) bool {
	if from.IsAny() || to.IsAny() || from.IsNull() {
		return true
	}

	if from.IsNumeric() && to.IsNumeric() {
		return true
	}

	if (from.IsNumeric() && to.IsStringType()) || (from.IsStringType() && to.IsNumeric()) {
		return true
	}

	isTemporal := func(t ir.Type) bool {
		switch t.Kind {
		case ir.Date, ir.Time, ir.Timestamp, ir.Duration:
			return true
		default:
			return false
		}
	}

	if (isTemporal(from) && to.IsStringType()) || (from.IsStringType() && isTemporal(to)) {
		return true
	}

	return from.Kind == to.Kind
}
