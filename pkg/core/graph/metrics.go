// This file implements the named metric registry of the graph. Selection
// keywords with a leading underscore ("_degree_gt", "_betweenness_ge", ...)
// resolve to these entries; the registry is closed, so only the methods
// listed here can ever be invoked through a query.
package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sanonone/grafodb/pkg/core/types"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// ErrUnknownMetric is returned by Invoke for method names that are not
// registered for the given element kind.
var ErrUnknownMetric = errors.New("unknown graph metric")

// metricFunc computes one value per requested element index, in order.
type metricFunc func(g *Graph, indices []int) ([]types.Value, error)

var vertexMetrics = map[string]metricFunc{
	"degree":      degreeMetric(types.ModeAll),
	"indegree":    degreeMetric(types.ModeIn),
	"outdegree":   degreeMetric(types.ModeOut),
	"betweenness": betweennessMetric,
	"closeness":   closenessMetric,
	"pagerank":    pagerankMetric,
}

var edgeMetrics = map[string]metricFunc{
	"edge_betweenness": edgeBetweennessMetric,
	"is_loop":          isLoopMetric,
	"is_multiple":      isMultipleMetric,
	"count_multiple":   countMultipleMetric,
}

// Invoke runs the registered metric for the given kind and method name over
// the provided element indices, returning one value per index in the same
// order. Unknown method names fail with ErrUnknownMetric.
func (g *Graph) Invoke(kind types.Kind, method string, indices []int) ([]types.Value, error) {
	table := vertexMetrics
	if kind == types.Edge {
		table = edgeMetrics
	}
	fn, ok := table[method]
	if !ok {
		return nil, fmt.Errorf("%w: no %s metric named '%s'", ErrUnknownMetric, kind, method)
	}
	return fn(g, indices)
}

// --- Degree family (computed from our own incidence lists; loops and
// parallel edges count, matching the usual multigraph convention: a loop
// adds two to the undirected or total degree) ---

func degreeMetric(mode types.Mode) metricFunc {
	return func(g *Graph, indices []int) ([]types.Value, error) {
		out := make([]types.Value, len(indices))
		for i, v := range indices {
			if v < 0 || v >= g.n {
				return nil, fmt.Errorf("vertex index %d out of range", v)
			}
			out[i] = float64(g.degreeOf(v, mode))
		}
		return out, nil
	}
}

func (g *Graph) degreeOf(v int, mode types.Mode) int {
	if g.directed {
		switch mode {
		case types.ModeOut:
			return len(g.incOut[v])
		case types.ModeIn:
			return len(g.incIn[v])
		default:
			return len(g.incOut[v]) + len(g.incIn[v])
		}
	}
	// Undirected: the incidence list holds each loop once, but a loop
	// contributes two endpoints.
	d := len(g.incOut[v])
	for _, id := range g.incOut[v] {
		if g.edges[id][0] == v && g.edges[id][1] == v {
			d++
		}
	}
	return d
}

// --- Centralities (gonum on the simple projection: self loops dropped,
// parallel edges collapsed) ---

func betweennessMetric(g *Graph, indices []int) ([]types.Value, error) {
	var scores map[int64]float64
	if g.directed {
		scores = network.Betweenness(g.simpleDirected(false))
	} else {
		scores = network.Betweenness(g.simpleUndirected())
	}
	return pickVertexScores(scores, indices, g.n)
}

func closenessMetric(g *Graph, indices []int) ([]types.Value, error) {
	var scores map[int64]float64
	if g.directed {
		sg := g.simpleDirected(false)
		scores = network.Closeness(sg, path.DijkstraAllPaths(sg))
	} else {
		sg := g.simpleUndirected()
		scores = network.Closeness(sg, path.DijkstraAllPaths(sg))
	}
	return pickVertexScores(scores, indices, g.n)
}

func pagerankMetric(g *Graph, indices []int) ([]types.Value, error) {
	const (
		damp = 0.85
		tol  = 1e-8
	)
	// PageRank needs a directed graph; an undirected edge becomes a pair of
	// opposite arcs.
	scores := network.PageRank(g.simpleDirected(!g.directed), damp, tol)
	return pickVertexScores(scores, indices, g.n)
}

func edgeBetweennessMetric(g *Graph, indices []int) ([]types.Value, error) {
	var scores map[[2]int64]float64
	if g.directed {
		scores = network.EdgeBetweenness(g.simpleDirected(false))
	} else {
		scores = network.EdgeBetweenness(g.simpleUndirected())
	}
	out := make([]types.Value, len(indices))
	for i, e := range indices {
		if e < 0 || e >= len(g.edges) {
			return nil, fmt.Errorf("edge index %d out of range", e)
		}
		src, dst := int64(g.edges[e][0]), int64(g.edges[e][1])
		// Parallel edges share their endpoint pair's score; loops are not
		// part of the projection and score zero.
		s, ok := scores[[2]int64{src, dst}]
		if !ok {
			s = scores[[2]int64{dst, src}]
		}
		out[i] = s
	}
	return out, nil
}

// --- Edge multiplicity (own topology, multiplicity aware) ---

func isLoopMetric(g *Graph, indices []int) ([]types.Value, error) {
	out := make([]types.Value, len(indices))
	for i, e := range indices {
		if e < 0 || e >= len(g.edges) {
			return nil, fmt.Errorf("edge index %d out of range", e)
		}
		out[i] = g.edges[e][0] == g.edges[e][1]
	}
	return out, nil
}

// isMultipleMetric marks an edge when another edge with the same endpoints
// exists at a lower index. The first occurrence of a parallel bundle is not
// reported as multiple.
func isMultipleMetric(g *Graph, indices []int) ([]types.Value, error) {
	first := make(map[[2]int]int)
	for id, e := range g.edges {
		key := g.pairKey(e[0], e[1])
		if _, ok := first[key]; !ok {
			first[key] = id
		}
	}
	out := make([]types.Value, len(indices))
	for i, e := range indices {
		if e < 0 || e >= len(g.edges) {
			return nil, fmt.Errorf("edge index %d out of range", e)
		}
		key := g.pairKey(g.edges[e][0], g.edges[e][1])
		out[i] = first[key] != e
	}
	return out, nil
}

func countMultipleMetric(g *Graph, indices []int) ([]types.Value, error) {
	counts := make(map[[2]int]int)
	for _, e := range g.edges {
		counts[g.pairKey(e[0], e[1])]++
	}
	out := make([]types.Value, len(indices))
	for i, e := range indices {
		if e < 0 || e >= len(g.edges) {
			return nil, fmt.Errorf("edge index %d out of range", e)
		}
		out[i] = float64(counts[g.pairKey(g.edges[e][0], g.edges[e][1])])
	}
	return out, nil
}

// pairKey normalizes an endpoint pair: ordered for directed graphs,
// low-high for undirected ones.
func (g *Graph) pairKey(src, dst int) [2]int {
	if !g.directed && dst < src {
		src, dst = dst, src
	}
	return [2]int{src, dst}
}

// --- gonum projections and helpers ---

func (g *Graph) simpleUndirected() *simple.UndirectedGraph {
	sg := simple.NewUndirectedGraph()
	for i := 0; i < g.n; i++ {
		sg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.edges {
		if e[0] == e[1] {
			continue // simple graphs reject self loops
		}
		sg.SetEdge(simple.Edge{F: simple.Node(int64(e[0])), T: simple.Node(int64(e[1]))})
	}
	return sg
}

// simpleDirected projects onto a simple directed graph. If symmetric is
// true every edge also contributes the opposite arc (used to feed an
// undirected topology to algorithms that require directedness).
func (g *Graph) simpleDirected(symmetric bool) *simple.DirectedGraph {
	sg := simple.NewDirectedGraph()
	for i := 0; i < g.n; i++ {
		sg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.edges {
		if e[0] == e[1] {
			continue
		}
		sg.SetEdge(simple.Edge{F: simple.Node(int64(e[0])), T: simple.Node(int64(e[1]))})
		if symmetric {
			sg.SetEdge(simple.Edge{F: simple.Node(int64(e[1])), T: simple.Node(int64(e[0]))})
		}
	}
	return sg
}

// pickVertexScores maps a gonum score map back onto the requested indices.
// gonum omits zero scores, so missing entries read as zero.
func pickVertexScores(scores map[int64]float64, indices []int, n int) ([]types.Value, error) {
	out := make([]types.Value, len(indices))
	for i, v := range indices {
		if v < 0 || v >= n {
			return nil, fmt.Errorf("vertex index %d out of range", v)
		}
		out[i] = scores[int64(v)]
	}
	return out, nil
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
