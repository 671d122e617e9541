// Package memcatalog is an in-memory catalog.MetadataProvider backed by a
// YAML fixture, for tests and small standalone tools that need a
// MetadataProvider without standing up a real graph database — the
// concrete-storage counterpart the validator's capability interface
// (catalog.MetadataProvider, §6) never dictates, grounded on config.go's
// "read one YAML file into a typed Config struct" shape.
package memcatalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iso-gql/gqlfront/catalog"
	"github.com/iso-gql/gqlfront/ir"
)

// Provider is a catalog.MetadataProvider over a fixed set of graphs and
// callables, registered through AddGraph/AddCallable (Load and
// FromFixtureBytes do this from a fixture). Lookups never change it,
// matching the "borrowed, immutable for the call" contract
// MetadataProvider implementations are expected to honor.
type Provider struct {
	graphs    map[string]*catalog.StaticSchemaSnapshot
	callables map[callableKey]catalog.CallableSignature
}

type callableKey struct {
	name string
	kind catalog.CallableKind
}

// New builds an empty Provider; call AddGraph/AddCallable to populate it,
// or use Load to read a fixture file.
func New() *Provider {
	return &Provider{
		graphs:    make(map[string]*catalog.StaticSchemaSnapshot),
		callables: make(map[callableKey]catalog.CallableSignature),
	}
}

// AddGraph registers a schema snapshot under graphRef.
func (p *Provider) AddGraph(graphRef string, snap *catalog.StaticSchemaSnapshot) {
	p.graphs[graphRef] = snap
}

// AddCallable registers a function/aggregate/procedure signature.
func (p *Provider) AddCallable(sig catalog.CallableSignature) {
	p.callables[callableKey{sig.Name, sig.Kind}] = sig
}

// GetSchemaSnapshot implements catalog.MetadataProvider. version is
// ignored: a fixture-backed provider has exactly one version of each
// graph, the one it was loaded with.
func (p *Provider) GetSchemaSnapshot(graphRef string, _ string) (catalog.SchemaSnapshot, *catalog.CatalogError) {
	snap, ok := p.graphs[graphRef]
	if !ok {
		return nil, &catalog.CatalogError{GraphRef: graphRef, Err: catalog.ErrGraphNotFound}
	}

	return snap, nil
}

// GetCallable implements catalog.MetadataProvider.
func (p *Provider) GetCallable(name string, kind catalog.CallableKind) (catalog.CallableSignature, bool) {
	sig, ok := p.callables[callableKey{name, kind}]
	return sig, ok
}

// fixture is the YAML document shape Load reads: one top-level graph
// (Load builds a single-graph provider, the common test-fixture case),
// plus optional function/procedure signatures.
type fixture struct {
	Graph      string           `yaml:"graph"`
	Nodes      []elementFixture `yaml:"nodes"`
	Edges      []elementFixture `yaml:"edges"`
	Functions  []callableFixture `yaml:"functions,omitempty"`
	Procedures []callableFixture `yaml:"procedures,omitempty"`
}

type elementFixture struct {
	Label      string             `yaml:"label"`
	Parents    []string           `yaml:"parents,omitempty"`
	Properties []propertyFixture  `yaml:"properties,omitempty"`
}

type propertyFixture struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required,omitempty"`
}

type callableFixture struct {
	Name     string            `yaml:"name"`
	Params   []propertyFixture `yaml:"params,omitempty"`
	Variadic bool              `yaml:"variadic,omitempty"`
	Returns  string            `yaml:"returns"`
	Yields   []propertyFixture `yaml:"yields,omitempty"`
}

// Load reads a YAML fixture file and builds a single-graph Provider from
// it (§6's MetadataProvider is exercised heavily by tests that want a
// small declarative schema rather than Go struct literals).
func Load(path string) (*Provider, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- test/tool-supplied fixture path
	if err != nil {
		return nil, err
	}

	p, err := FromFixtureBytes(data)
	if err != nil {
		return nil, fmt.Errorf("memcatalog: %s: %w", path, err)
	}

	return p, nil
}

// FromFixtureBytes builds a Provider directly from YAML fixture bytes,
// for tests that want to embed a fixture as a Go string constant instead
// of a file on disk.
func FromFixtureBytes(data []byte) (*Provider, error) {
	var fx fixture

	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("memcatalog: parsing fixture: %w", err)
	}

	p := New()

	snap := catalog.NewStaticSchemaSnapshot(toElementMetas(fx.Nodes), toElementMetas(fx.Edges))
	p.AddGraph(fx.Graph, snap)

	for _, f := range fx.Functions {
		p.AddCallable(toCallableSignature(f, catalog.CallableFunction))
	}

	for _, f := range fx.Procedures {
		p.AddCallable(toCallableSignature(f, catalog.CallableProcedure))
	}

	return p, nil
}

func toElementMetas(fixtures []elementFixture) []catalog.ElementTypeMeta {
	metas := make([]catalog.ElementTypeMeta, 0, len(fixtures))

	for _, f := range fixtures {
		props := make([]catalog.PropertyMeta, 0, len(f.Properties))

		for _, p := range f.Properties {
			props = append(props, catalog.PropertyMeta{
				Name:     p.Name,
				Type:     parseType(p.Type),
				Required: p.Required,
			})
		}

		metas = append(metas, catalog.ElementTypeMeta{
			Label:      f.Label,
			Parents:    f.Parents,
			Properties: props,
		})
	}

	return metas
}

func toCallableSignature(f callableFixture, kind catalog.CallableKind) catalog.CallableSignature {
	params := make([]catalog.Param, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, catalog.Param{Name: p.Name, Type: parseType(p.Type)})
	}

	yields := make([]catalog.YieldColumn, 0, len(f.Yields))
	for _, y := range f.Yields {
		yields = append(yields, catalog.YieldColumn{Name: y.Name, Type: parseType(y.Type)})
	}

	return catalog.CallableSignature{
		Name:      f.Name,
		Kind:      kind,
		Params:    params,
		Variadic:  f.Variadic,
		Returns:   parseType(f.Returns),
		YieldCols: yields,
	}
}

// parseType parses a fixture's scalar type name into an ir.Type. Node/
// Edge fixture types may carry a "Node:Label" / "Edge:Label" suffix;
// anything unrecognized becomes ir.Any rather than failing the load,
// since a fixture is test data, not untrusted input that needs strict
// validation.
func parseType(name string) ir.Type {
	if labels, ok := strings.CutPrefix(name, "Node:"); ok {
		return ir.NodeType(strings.Split(labels, "|")...)
	}

	if labels, ok := strings.CutPrefix(name, "Edge:"); ok {
		return ir.EdgeType(strings.Split(labels, "|")...)
	}

	switch name {
	case "Int":
		return ir.Basic(ir.Int)
	case "Float":
		return ir.Basic(ir.Float)
	case "String":
		return ir.Basic(ir.String)
	case "Boolean", "Bool":
		return ir.Basic(ir.Boolean)
	case "Date":
		return ir.Basic(ir.Date)
	case "Time":
		return ir.Basic(ir.Time)
	case "Timestamp":
		return ir.Basic(ir.Timestamp)
	case "Duration":
		return ir.Basic(ir.Duration)
	case "Node":
		return ir.NodeType()
	case "Edge":
		return ir.EdgeType()
	case "Path":
		return ir.Basic(ir.Path)
	case "Null":
		return ir.Basic(ir.Null)
	case "", "Any":
		return ir.Basic(ir.Any)
	default:
		return ir.Basic(ir.Any)
	}
}
