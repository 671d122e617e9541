package validator

import (
	gql "github.com/iso-gql/gqlfront/diag"
	"github.com/iso-gql/gqlfront/ast"
)

// checkLabels implements the metadata-backed half of §4.5 pass 3/6's
// label handling: when a provider is configured and
// ValidationConfig.MetadataValidation is on, every label name mentioned
// in a node/edge pattern is checked against the schema snapshot
// (sema.unknown-label, a warning when metadata is absent per §7's
// taxonomy note: "warning when metadata absent").
func (c *context) checkLabels(le ast.LabelExpr, isNode bool, span gql.Span) {
	if le == nil || c.v.provider == nil || !c.v.config.MetadataValidation {
		return
	}

	snap, ok := c.metadataSnapshot("", span)
	if !ok {
		return
	}

	for _, name := range labelNames(le) {
		var found bool

		if isNode {
			_, found = snap.NodeType(name)
		} else {
			_, found = snap.EdgeType(name)
		}

		if !found {
			c.warn("sema.unknown-label", "unknown label "+name, span)
		}
	}
}

func labelNames(le ast.LabelExpr) []string {
	switch l := le.(type) {
	case *ast.LabelName:
		return []string{l.Name}
	case *ast.LabelAnd:
		return append(labelNames(l.Left), labelNames(l.Right)...)
	case *ast.LabelOr:
		return append(labelNames(l.Left), labelNames(l.Right)...)
	case *ast.LabelNot:
		return labelNames(l.Operand)
	default:
		return nil
	}
}
