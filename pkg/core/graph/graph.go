// Package graph provides the topology store of GrafoDB: an immutable
// vertex/edge structure with incidence queries and a registry of named
// per-element metrics (degree, centralities, edge multiplicity).
//
// The structure is read-only after construction. Selection views reference
// it without copying it, so anything holding a view must not outlive the
// graph it was built from.
package graph

import (
	"fmt"

	"github.com/sanonone/grafodb/pkg/core/types"
)

// Graph is an immutable graph topology. Vertices are identified by the
// indices 0..VertexCount()-1 and edges by 0..EdgeCount()-1, in insertion
// order. Self loops and parallel edges are permitted.
type Graph struct {
	directed bool
	n        int
	edges    [][2]int

	// Per-vertex incidence lists, built once at construction.
	// For undirected graphs incOut and incIn alias the same slices.
	incOut [][]int
	incIn  [][]int
}

// New builds a graph with n vertices and the given edge list. Each edge is a
// (source, target) pair of vertex indices; for undirected graphs the order of
// the pair carries no meaning but is preserved for EdgeEndpoints.
func New(n int, edges [][2]int, directed bool) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative vertex count %d", n)
	}
	g := &Graph{
		directed: directed,
		n:        n,
		edges:    make([][2]int, len(edges)),
		incOut:   make([][]int, n),
		incIn:    make([][]int, n),
	}
	copy(g.edges, edges)

	for id, e := range g.edges {
		src, dst := e[0], e[1]
		if src < 0 || src >= n || dst < 0 || dst >= n {
			return nil, fmt.Errorf("edge %d (%d,%d) has an endpoint outside 0..%d", id, src, dst, n-1)
		}
		if directed {
			g.incOut[src] = append(g.incOut[src], id)
			g.incIn[dst] = append(g.incIn[dst], id)
		} else {
			g.incOut[src] = append(g.incOut[src], id)
			if dst != src {
				g.incOut[dst] = append(g.incOut[dst], id)
			}
		}
	}
	if !directed {
		g.incIn = g.incOut
	}
	return g, nil
}

// NewDirected is shorthand for New(n, edges, true).
func NewDirected(n int, edges [][2]int) (*Graph, error) { return New(n, edges, true) }

// NewUndirected is shorthand for New(n, edges, false).
func NewUndirected(n int, edges [][2]int) (*Graph, error) { return New(n, edges, false) }

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return g.n }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// IsDirected reports whether the graph is directed.
func (g *Graph) IsDirected() bool { return g.directed }

// Count returns the element count for the given kind.
func (g *Graph) Count(kind types.Kind) int {
	if kind == types.Edge {
		return len(g.edges)
	}
	return g.n
}

// EdgeEndpoints returns the (source, target) vertex indices of an edge.
// The edge index must be valid; it is the caller's contract to only pass
// indices obtained from this graph.
func (g *Graph) EdgeEndpoints(edge int) (src, dst int) {
	e := g.edges[edge]
	return e[0], e[1]
}

// Incident returns the edge indices incident on any of the given vertices,
// deduplicated and in strictly increasing order. Mode restricts the edge
// orientation for directed graphs: ModeOut selects edges leaving the
// vertices, ModeIn edges entering them, ModeAll both. Undirected graphs
// ignore the mode. Vertex indices outside the graph contribute nothing.
func (g *Graph) Incident(vertices []int, mode types.Mode) []int {
	seen := make(map[int]struct{})
	for _, v := range vertices {
		if v < 0 || v >= g.n {
			continue
		}
		if !g.directed || mode == types.ModeAll || mode == types.ModeOut {
			for _, id := range g.incOut[v] {
				seen[id] = struct{}{}
			}
		}
		if g.directed && (mode == types.ModeAll || mode == types.ModeIn) {
			for _, id := range g.incIn[v] {
				seen[id] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}
