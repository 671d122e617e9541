// Package neo4jcatalog implements catalog.MetadataProvider over a live
// Neo4j database's own schema introspection procedures, so a host can
// validate GQL against whatever labels/properties the graph actually
// has instead of maintaining a parallel schema file. Grounded on
// dialects/cypher/cypher.go's driver/session lifecycle (NewDriverWithContext,
// VerifyConnectivity, NewSession, Run+Collect) — the same neo4j-go-driver
// usage, pointed at introspection procedures instead of user queries.
package neo4jcatalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/iso-gql/gqlfront/catalog"
	"github.com/iso-gql/gqlfront/ir"
)

// Provider is a catalog.MetadataProvider backed by one Neo4j driver.
// Schema snapshots are derived on first request per graphRef and cached;
// Refresh drops the cache so the next GetSchemaSnapshot call re-queries
// the database (schemas drift as a graph is written to, and the
// MetadataProvider contract never promises a snapshot stays live).
type Provider struct {
	driver neo4j.DriverWithContext

	mu    sync.Mutex
	cache map[string]*catalog.StaticSchemaSnapshot
}

// New opens a driver against uri and verifies connectivity, the same
// auth-then-verify sequence dialects/cypher/cypher.go's New uses.
func New(ctx context.Context, uri, username, password string) (*Provider, error) {
	auth := neo4j.NoAuth()
	if username != "" {
		auth = neo4j.BasicAuth(username, password, "")
	}

	driver, err := neo4j.NewDriverWithContext(uri, auth)
	if err != nil {
		return nil, fmt.Errorf("neo4jcatalog: creating driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4jcatalog: connecting: %w", err)
	}

	return &Provider{driver: driver, cache: make(map[string]*catalog.StaticSchemaSnapshot)}, nil
}

// Close releases the underlying driver.
func (p *Provider) Close(ctx context.Context) error {
	return p.driver.Close(ctx)
}

// Refresh drops the cached snapshot for graphRef, forcing the next
// GetSchemaSnapshot call to re-query the database.
func (p *Provider) Refresh(graphRef string) {
	p.mu.Lock()
	delete(p.cache, graphRef)
	p.mu.Unlock()
}

// GetSchemaSnapshot implements catalog.MetadataProvider. graphRef is used
// as the Neo4j database name (empty means the driver's default database);
// version is ignored, since Neo4j's schema introspection has no notion
// of a versioned schema.
func (p *Provider) GetSchemaSnapshot(graphRef string, _ string) (catalog.SchemaSnapshot, *catalog.CatalogError) {
	p.mu.Lock()
	if snap, ok := p.cache[graphRef]; ok {
		p.mu.Unlock()
		return snap, nil
	}
	p.mu.Unlock()

	snap, err := p.loadSnapshot(context.Background(), graphRef)
	if err != nil {
		return nil, &catalog.CatalogError{GraphRef: graphRef, Err: err}
	}

	p.mu.Lock()
	p.cache[graphRef] = snap
	p.mu.Unlock()

	return snap, nil
}

// GetCallable implements catalog.MetadataProvider. Neo4j's introspection
// procedures don't describe user-defined function/procedure signatures
// in a form this catalog can consume uniformly, so this provider only
// ever answers for schema snapshots; hosts that need callable metadata
// pair this provider with catalog's built-in table (IsBuiltinAggregateName
// et al.) or their own MetadataProvider wrapping both.
func (p *Provider) GetCallable(_ string, _ catalog.CallableKind) (catalog.CallableSignature, bool) {
	return catalog.CallableSignature{}, false
}

func (p *Provider) loadSnapshot(ctx context.Context, database string) (*catalog.StaticSchemaSnapshot, error) {
	sessionCfg := neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead}
	if database != "" {
		sessionCfg.DatabaseName = database
	}

	session := p.driver.NewSession(ctx, sessionCfg)
	defer func() { _ = session.Close(ctx) }()

	nodeProps, err := collectTypeProperties(ctx, session, "CALL db.schema.nodeTypeProperties()", "nodeLabels")
	if err != nil {
		return nil, fmt.Errorf("reading node schema: %w", err)
	}

	edgeProps, err := collectTypeProperties(ctx, session, "CALL db.schema.relTypeProperties()", "relType")
	if err != nil {
		return nil, fmt.Errorf("reading relationship schema: %w", err)
	}

	return catalog.NewStaticSchemaSnapshot(toElementMetas(nodeProps), toElementMetas(edgeProps)), nil
}

// typeProperty is one row of db.schema.nodeTypeProperties()/
// relTypeProperties(): a label/type name, one property name, its
// possible Neo4j type names, and whether it's present on every instance.
type typeProperty struct {
	label        string
	propertyName string
	propertyType string
	mandatory    bool
}

// collectTypeProperties runs a schema introspection procedure and
// flattens its rows. labelKey names the column holding the label list
// ("nodeLabels") or the single relationship type string ("relType"),
// since the two procedures disagree on shape.
func collectTypeProperties(ctx context.Context, session neo4j.SessionWithContext, query, labelKey string) ([]typeProperty, error) {
	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}

	var out []typeProperty

	for _, rec := range records {
		labels := extractLabels(rec, labelKey)
		propName, _ := rec.Get("propertyName")
		mandatory, _ := rec.Get("mandatory")
		propTypes, _ := rec.Get("propertyTypes")

		name, _ := propName.(string)
		man, _ := mandatory.(bool)

		for _, label := range labels {
			out = append(out, typeProperty{
				label:        label,
				propertyName: name,
				propertyType: firstString(propTypes),
				mandatory:    man,
			})
		}
	}

	return out, nil
}

func extractLabels(rec *neo4j.Record, labelKey string) []string {
	val, ok := rec.Get(labelKey)
	if !ok {
		return nil
	}

	switch v := val.(type) {
	case []any:
		labels := make([]string, 0, len(v))

		for _, item := range v {
			if s, ok := item.(string); ok {
				labels = append(labels, s)
			}
		}

		return labels
	case string:
		return []string{v}
	default:
		return nil
	}
}

func firstString(val any) string {
	switch v := val.(type) {
	case []any:
		if len(v) == 0 {
			return ""
		}

		s, _ := v[0].(string)

		return s
	case string:
		return v
	default:
		return ""
	}
}

func toElementMetas(props []typeProperty) []catalog.ElementTypeMeta {
	byLabel := make(map[string]*catalog.ElementTypeMeta)
	order := make([]string, 0)

	for _, p := range props {
		meta, ok := byLabel[p.label]
		if !ok {
			meta = &catalog.ElementTypeMeta{Label: p.label}
			byLabel[p.label] = meta
			order = append(order, p.label)
		}

		meta.Properties = append(meta.Properties, catalog.PropertyMeta{
			Name:     p.propertyName,
			Type:     neo4jTypeToIR(p.propertyType),
			Required: p.mandatory,
		})
	}

	metas := make([]catalog.ElementTypeMeta, 0, len(order))
	for _, label := range order {
		metas = append(metas, *byLabel[label])
	}

	return metas
}

// neo4jTypeToIR maps a Neo4j schema type name (as reported by
// db.schema.nodeTypeProperties()/relTypeProperties(), e.g. "String",
// "Long", "Duration") onto this module's ir.Type.
func neo4jTypeToIR(name string) ir.Type {
	switch name {
	case "Integer", "Long":
		return ir.Basic(ir.Int)
	case "Float", "Double":
		return ir.Basic(ir.Float)
	case "String":
		return ir.Basic(ir.String)
	case "Boolean":
		return ir.Basic(ir.Boolean)
	case "Date":
		return ir.Basic(ir.Date)
	case "Time", "LocalTime":
		return ir.Basic(ir.Time)
	case "DateTime", "LocalDateTime":
		return ir.Basic(ir.Timestamp)
	case "Duration":
		return ir.Basic(ir.Duration)
	default:
		return ir.Basic(ir.Any)
	}
}
