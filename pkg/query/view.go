// Package query implements the selection engine of GrafoDB: ordered index
// views over a graph's vertices or edges, narrowed by positional criteria
// and by keyword predicates compiled from names like "age_gt" or
// "_betweenness_ge".
//
// The engine is synchronous and read-only with respect to topology. Views
// are immutable after construction; every narrowing step allocates a fresh
// view, so partially failed selections can never corrupt their input.
package query

import (
	"fmt"

	"github.com/sanonone/grafodb/pkg/core/types"
)

// Graph is the topology collaborator the engine reads from. It is satisfied
// by *graph.Graph; tests may substitute lighter implementations.
type Graph interface {
	VertexCount() int
	EdgeCount() int
	IsDirected() bool

	// EdgeEndpoints returns the (source, target) vertex indices of an edge.
	EdgeEndpoints(edge int) (src, dst int)

	// Incident returns the edge indices incident on any of the given
	// vertices, deduplicated, in strictly increasing order.
	Incident(vertices []int, mode types.Mode) []int

	// Invoke runs a registered graph metric over an index subset, returning
	// one value per index in the same order.
	Invoke(kind types.Kind, method string, indices []int) ([]types.Value, error)
}

// Attributes is the attribute-store collaborator, satisfied by *attrs.Store.
type Attributes interface {
	Get(kind types.Kind, name string, indices []int) ([]types.Value, error)
	Set(kind types.Kind, name string, indices []int, values []types.Value) error

	// LookupEqual returns the smallest element index whose value for the
	// attribute equals the given value, or false when no index can answer.
	LookupEqual(kind types.Kind, name string, value types.Value) (int, bool)
}

// View is an ordered, possibly filtered sequence of absolute element
// indices into one element kind of a graph. Duplicates are permitted and
// order is significant; both survive narrowing.
type View struct {
	graph Graph
	attrs Attributes
	kind  types.Kind
	idxs  []int
	full  bool
}

// All returns the full view over the given element kind: every index in
// 0..count-1, in order.
func All(g Graph, store Attributes, kind types.Kind) *View {
	n := g.VertexCount()
	if kind == types.Edge {
		n = g.EdgeCount()
	}
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	return &View{graph: g, attrs: store, kind: kind, idxs: idxs, full: true}
}

// Kind returns the element kind this view selects over.
func (v *View) Kind() types.Kind { return v.kind }

// Len returns the number of elements in the view.
func (v *View) Len() int { return len(v.idxs) }

// IsAll reports whether the view covers the complete element set in
// 0..count-1 order. This licenses the optimized incidence code paths.
func (v *View) IsAll() bool { return v.full }

// At returns the absolute index of the i-th element of the view.
// i must be in 0..Len()-1.
func (v *View) At(i int) int { return v.idxs[i] }

// Indices returns a fresh copy of the view's absolute indices, usable for
// downstream graph calls.
func (v *View) Indices() []int {
	out := make([]int, len(v.idxs))
	copy(out, v.idxs)
	return out
}

// Iterate calls fn for each absolute index in view order until fn returns
// false.
func (v *View) Iterate(fn func(abs int) bool) {
	for _, idx := range v.idxs {
		if !fn(idx) {
			return
		}
	}
}

// Narrow returns a new view whose i-th element is the local[i]-th element of
// this view. Local indices address positions within this view, not the
// graph; narrowing an already narrowed view therefore composes. Any local
// index past the view's length fails with ErrIndexOutOfRange.
func (v *View) Narrow(local []int) (*View, error) {
	idxs := make([]int, len(local))
	for i, l := range local {
		if l < 0 || l >= len(v.idxs) {
			return nil, fmt.Errorf("%w: %d not in 0..%d", ErrIndexOutOfRange, l, len(v.idxs)-1)
		}
		idxs[i] = v.idxs[l]
	}
	return &View{
		graph: v.graph,
		attrs: v.attrs,
		kind:  v.kind,
		idxs:  idxs,
		full:  v.full && isIdentity(local, len(v.idxs)),
	}, nil
}

// Attribute returns the named attribute's values restricted to the view,
// one per element in view order.
func (v *View) Attribute(name string) ([]types.Value, error) {
	return v.attrs.Get(v.kind, name, v.idxs)
}

// SetAttribute writes the named attribute for every element of the view.
// A value sequence shorter than the view is reused cyclically: element i
// receives values[i mod len(values)]. A sequence longer than the view, or an
// empty one for a non-empty view, fails with ErrInvalidOperand.
func (v *View) SetAttribute(name string, values []types.Value) error {
	n := len(v.idxs)
	k := len(values)
	if n == 0 && k == 0 {
		return nil
	}
	if k == 0 || k > n {
		return fmt.Errorf("%w: %d values for a view of %d elements", ErrInvalidOperand, k, n)
	}
	expanded := make([]types.Value, n)
	for i := range expanded {
		expanded[i] = values[i%k]
	}
	return v.attrs.Set(v.kind, name, v.idxs, expanded)
}

// emptyView returns a zero-length view over the same graph and kind.
func (v *View) emptyView() *View {
	return &View{graph: v.graph, attrs: v.attrs, kind: v.kind, idxs: []int{}, full: false}
}

// isIdentity reports whether local is exactly 0..n-1.
func isIdentity(local []int, n int) bool {
	if len(local) != n {
		return false
	}
	for i, l := range local {
		if l != i {
			return false
		}
	}
	return true
}
