package memcatalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iso-gql/gqlfront/adapters/memcatalog"
	"github.com/iso-gql/gqlfront/catalog"
	"github.com/iso-gql/gqlfront/ir"
)

const fixtureYAML = `
graph: social
nodes:
  - label: Entity
    properties:
      - name: id
        type: String
        required: true
  - label: Person
    parents: [Entity]
    properties:
      - name: name
        type: String
      - name: age
        type: Int
edges:
  - label: Knows
    properties:
      - name: since
        type: Date
functions:
  - name: length
    params:
      - name: s
        type: String
    returns: Int
procedures:
  - name: db.labels
    returns: Any
    yields:
      - name: label
        type: String
`

func TestFromFixtureBytes_BuildsGraphAndCallables(t *testing.T) {
	t.Parallel()

	p, err := memcatalog.FromFixtureBytes([]byte(fixtureYAML))
	require.NoError(t, err)

	snap, catErr := p.GetSchemaSnapshot("social", "")
	require.Nil(t, catErr)

	person, ok := snap.NodeType("Person")
	require.True(t, ok)

	nameProp, ok := person.Property("name")
	require.True(t, ok)
	assert.Equal(t, ir.String, nameProp.Type.Kind)

	idProp, ok := person.Property("id")
	require.True(t, ok, "Person should inherit 'id' from Entity")
	assert.Equal(t, ir.String, idProp.Type.Kind)

	knows, ok := snap.EdgeType("Knows")
	require.True(t, ok)
	sinceProp, ok := knows.Property("since")
	require.True(t, ok)
	assert.Equal(t, ir.Date, sinceProp.Type.Kind)
}

func TestFromFixtureBytes_Callables(t *testing.T) {
	t.Parallel()

	p, err := memcatalog.FromFixtureBytes([]byte(fixtureYAML))
	require.NoError(t, err)

	length, ok := p.GetCallable("length", catalog.CallableFunction)
	require.True(t, ok)
	assert.True(t, length.Accepts([]ir.Type{ir.Basic(ir.String)}))

	proc, ok := p.GetCallable("db.labels", catalog.CallableProcedure)
	require.True(t, ok)
	require.Len(t, proc.YieldCols, 1)
	assert.Equal(t, "label", proc.YieldCols[0].Name)

	_, ok = p.GetCallable("length", catalog.CallableProcedure)
	assert.False(t, ok, "same name under a different kind should not resolve")
}

func TestGetSchemaSnapshot_UnknownGraph(t *testing.T) {
	t.Parallel()

	p := memcatalog.New()

	_, catErr := p.GetSchemaSnapshot("nonexistent", "")
	require.NotNil(t, catErr)
	assert.ErrorIs(t, catErr, catalog.ErrGraphNotFound)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := memcatalog.Load("/nonexistent/fixture.yaml")
	assert.Error(t, err)
}

func TestFromFixtureBytes_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := memcatalog.FromFixtureBytes([]byte("not: valid: yaml: at: all: ["))
	assert.Error(t, err)
}
