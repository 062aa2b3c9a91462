// This file implements the selection evaluator: the positional phase
// followed by the keyword phase, with optimized incidence paths for the
// reserved edge subjects on full views.
package query

import (
	"fmt"

	"github.com/sanonone/grafodb/pkg/core/types"
	"github.com/sanonone/grafodb/pkg/metrics"
)

// MatchFunc is a positional per-element predicate. It receives the graph
// and the element's absolute index.
type MatchFunc func(g Graph, abs int) bool

// Query bundles the criteria of one selection call. At most one positional
// criterion may be set (None, Match or Indices); it runs first. The keyword
// predicates then narrow conjunctively, in order: each predicate only sees
// the elements surviving the previous ones.
type Query struct {
	// None selects nothing: the result is the empty view.
	None bool

	// Match keeps the elements for which the function returns true.
	Match MatchFunc

	// Indices narrows by local position within the current view (not by
	// absolute index; on a full view the two coincide).
	Indices []int

	// Where holds the keyword predicates, applied left to right.
	Where []Predicate
}

// Select evaluates the query against the view and returns the narrowed
// view. The input view is never modified; on error no partial result is
// returned.
func Select(v *View, q Query) (*View, error) {
	metrics.SelectionsTotal.WithLabelValues(v.kind.String()).Inc()

	out := v
	var err error
	switch {
	case q.None:
		out = v.emptyView()
	case q.Match != nil:
		locals := make([]int, 0, len(v.idxs))
		for i, abs := range v.idxs {
			if q.Match(v.graph, abs) {
				locals = append(locals, i)
			}
		}
		out, err = v.Narrow(locals)
	case q.Indices != nil:
		out, err = v.Narrow(q.Indices)
	}
	if err != nil {
		return nil, err
	}

	for _, p := range q.Where {
		out, err = applyPredicate(out, p)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Select is shorthand for the package-level Select.
func (v *View) Select(q Query) (*View, error) { return Select(v, q) }

// Where narrows by keyword predicates only.
func (v *View) Where(preds ...Predicate) (*View, error) {
	return Select(v, Query{Where: preds})
}

// applyPredicate narrows the view by a single keyword predicate.
func applyPredicate(v *View, p Predicate) (*View, error) {
	c := compileSubject(p.Keyword, v.kind)
	switch c.kind {
	case subjectAttribute:
		values, err := v.attrs.Get(v.kind, c.name, v.idxs)
		if err != nil {
			return nil, fmt.Errorf("predicate '%s': %w", p.Keyword, err)
		}
		return narrowByValues(v, values, c.op, p.Operand)

	case subjectMethod:
		values, err := v.graph.Invoke(v.kind, c.name, v.idxs)
		if err != nil {
			return nil, fmt.Errorf("predicate '%s': %w", p.Keyword, err)
		}
		return narrowByValues(v, values, c.op, p.Operand)

	case subjectSource:
		return applyEndpoint(v, p.Keyword, c.op, p.Operand, true)

	case subjectTarget:
		return applyEndpoint(v, p.Keyword, c.op, p.Operand, false)

	case subjectIncident:
		set, err := asVertexSet(p.Operand, false)
		if err != nil {
			return nil, fmt.Errorf("predicate '%s': %w", p.Keyword, err)
		}
		return applyIncident(v, set)

	case subjectWithin:
		set, err := asVertexSet(p.Operand, false)
		if err != nil {
			return nil, fmt.Errorf("predicate '%s': %w", p.Keyword, err)
		}
		return applyWithin(v, set)

	default: // subjectBetween
		set1, set2, err := asSetPair(p.Operand)
		if err != nil {
			return nil, fmt.Errorf("predicate '%s': %w", p.Keyword, err)
		}
		return applyBetween(v, set1, set2)
	}
}

// narrowByValues applies the operator element-wise over the fetched values
// and narrows to the surviving local positions.
func narrowByValues(v *View, values []types.Value, op Op, operand types.Value) (*View, error) {
	locals := make([]int, 0, len(values))
	for i, val := range values {
		ok, err := evalOp(op, val, operand)
		if err != nil {
			return nil, err
		}
		if ok {
			locals = append(locals, i)
		}
	}
	return v.Narrow(locals)
}

// applyEndpoint handles the '_source'/'_target' subjects.
//
// Undirected graphs have no endpoint orientation: only eq and in are
// allowed there, and both are rewritten to the incidence selector. On
// directed graphs, a full view with endpoint equality takes the incidence
// shortcut instead of scanning every edge; the shortcut returns indices in
// strictly increasing order, which on a full view is exactly the order a
// scan would produce.
func applyEndpoint(v *View, keyword string, op Op, operand types.Value, source bool) (*View, error) {
	if !v.graph.IsDirected() {
		if op != OpEq && op != OpIn {
			return nil, fmt.Errorf("predicate '%s': %w: undirected graphs support only eq and in on endpoint selectors", keyword, ErrUnsupportedOperator)
		}
		set, err := asVertexSet(operand, op == OpEq)
		if err != nil {
			return nil, fmt.Errorf("predicate '%s': %w", keyword, err)
		}
		return applyIncident(v, set)
	}

	if v.full && op == OpEq {
		vertex, ok := asVertexID(operand)
		if !ok {
			return nil, fmt.Errorf("predicate '%s': %w: endpoint equality needs a vertex index, got %T", keyword, ErrTypeMismatch, operand)
		}
		mode := types.ModeOut
		if !source {
			mode = types.ModeIn
		}
		metrics.FastPathTotal.WithLabelValues("endpoint").Inc()
		// Local indices coincide with absolute edge indices on a full view.
		return v.Narrow(v.graph.Incident([]int{vertex}, mode))
	}

	values := make([]types.Value, len(v.idxs))
	for i, e := range v.idxs {
		src, dst := v.graph.EdgeEndpoints(e)
		if source {
			values[i] = src
		} else {
			values[i] = dst
		}
	}
	return narrowByValues(v, values, op, operand)
}

// applyIncident keeps the edges with at least one endpoint in the set.
func applyIncident(v *View, set map[int]struct{}) (*View, error) {
	candidates := v.graph.Incident(setToSlice(set), types.ModeAll)
	if v.full {
		metrics.FastPathTotal.WithLabelValues("incidence").Inc()
		return v.Narrow(candidates)
	}
	member := make(map[int]struct{}, len(candidates))
	for _, e := range candidates {
		member[e] = struct{}{}
	}
	locals := make([]int, 0, len(v.idxs))
	for i, e := range v.idxs {
		if inSet(member, e) {
			locals = append(locals, i)
		}
	}
	return v.Narrow(locals)
}

// applyWithin keeps the edges with both endpoints in the set.
func applyWithin(v *View, set map[int]struct{}) (*View, error) {
	if v.full {
		metrics.FastPathTotal.WithLabelValues("incidence").Inc()
		// Walk only the incident candidates rather than every edge; the
		// candidate list is already strictly increasing.
		candidates := v.graph.Incident(setToSlice(set), types.ModeAll)
		keep := make([]int, 0, len(candidates))
		for _, e := range candidates {
			src, dst := v.graph.EdgeEndpoints(e)
			if inSet(set, src) && inSet(set, dst) {
				keep = append(keep, e)
			}
		}
		return v.Narrow(keep)
	}
	locals := make([]int, 0, len(v.idxs))
	for i, e := range v.idxs {
		src, dst := v.graph.EdgeEndpoints(e)
		if inSet(set, src) && inSet(set, dst) {
			locals = append(locals, i)
		}
	}
	return v.Narrow(locals)
}

// applyBetween keeps the edges with one endpoint in set1 and the other in
// set2, in either direction.
func applyBetween(v *View, set1, set2 map[int]struct{}) (*View, error) {
	qualifies := func(e int) bool {
		src, dst := v.graph.EdgeEndpoints(e)
		return (inSet(set1, src) && inSet(set2, dst)) || (inSet(set1, dst) && inSet(set2, src))
	}
	if v.full {
		metrics.FastPathTotal.WithLabelValues("incidence").Inc()
		union := make([]int, 0, len(set1)+len(set2))
		union = append(union, setToSlice(set1)...)
		union = append(union, setToSlice(set2)...)
		candidates := v.graph.Incident(union, types.ModeAll)
		keep := make([]int, 0, len(candidates))
		for _, e := range candidates {
			if qualifies(e) {
				keep = append(keep, e)
			}
		}
		return v.Narrow(keep)
	}
	locals := make([]int, 0, len(v.idxs))
	for i, e := range v.idxs {
		if qualifies(e) {
			locals = append(locals, i)
		}
	}
	return v.Narrow(locals)
}
