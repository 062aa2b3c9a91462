// Package engine provides the high-level, embedded interface for GrafoDB.
//
// It bundles an immutable topology (pkg/core/graph) with a mutable attribute
// store (pkg/core/attrs) and hands out query views over both, so a database
// instance can be used directly within Go applications.
//
// Basic usage:
//
//	db, err := engine.Open(engine.Options{
//	    VertexCount: 4,
//	    Edges:       [][2]int{{0, 1}, {1, 2}, {2, 3}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	adults, err := db.Vs().Where(query.P("age_ge", 18))
package engine

import (
	"fmt"

	"github.com/sanonone/grafodb/pkg/core/attrs"
	"github.com/sanonone/grafodb/pkg/core/graph"
	"github.com/sanonone/grafodb/pkg/core/types"
	"github.com/sanonone/grafodb/pkg/query"
)

// Options configures a new database instance. The topology is fixed at
// open time; attributes can be written afterward through the setters.
type Options struct {
	// VertexCount is the number of vertices, indexed 0..VertexCount-1.
	VertexCount int

	// Edges lists the edge endpoints in edge-index order.
	Edges [][2]int

	// Directed selects directed semantics for endpoint predicates and
	// degree metrics. Default is undirected.
	Directed bool
}

// DB is the main entry point for GrafoDB. It is safe for concurrent
// readers; attribute writes take the store's write lock.
type DB struct {
	graph *graph.Graph
	attrs *attrs.Store
}

// Open builds a database from the given topology.
func Open(opts Options) (*DB, error) {
	g, err := graph.New(opts.VertexCount, opts.Edges, opts.Directed)
	if err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}
	return &DB{
		graph: g,
		attrs: attrs.NewStore(g.VertexCount(), g.EdgeCount()),
	}, nil
}

// Graph exposes the underlying topology.
func (db *DB) Graph() *graph.Graph { return db.graph }

// Attrs exposes the underlying attribute store.
func (db *DB) Attrs() *attrs.Store { return db.attrs }

// Vs returns the full vertex view, covering every vertex in index order.
func (db *DB) Vs() *query.View {
	return query.All(db.graph, db.attrs, types.Vertex)
}

// Es returns the full edge view, covering every edge in index order.
func (db *DB) Es() *query.View {
	return query.All(db.graph, db.attrs, types.Edge)
}

// SetVertexAttr assigns values to the named vertex attribute across the
// whole vertex set. Shorter value slices repeat cyclically.
func (db *DB) SetVertexAttr(name string, values []types.Value) error {
	return db.Vs().SetAttribute(name, values)
}

// SetEdgeAttr assigns values to the named edge attribute across the whole
// edge set. Shorter value slices repeat cyclically.
func (db *DB) SetEdgeAttr(name string, values []types.Value) error {
	return db.Es().SetAttribute(name, values)
}

// FindVertex returns the first vertex matching the query.
func (db *DB) FindVertex(q query.Query) (int, error) {
	return query.Find(db.Vs(), q)
}

// FindEdge returns the first edge matching the query.
func (db *DB) FindEdge(q query.Query) (int, error) {
	return query.Find(db.Es(), q)
}
