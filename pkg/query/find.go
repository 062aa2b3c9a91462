// This file implements Find: first-match lookup with an indexed fast path
// for name equality on full views.
package query

import (
	"fmt"

	"github.com/sanonone/grafodb/pkg/metrics"
)

// Find evaluates the query like Select and returns the absolute index of
// the first matching element in view order. An empty result fails with
// ErrNotFound, distinct from Select returning an empty view.
//
// When the view is full, no positional criterion is set, and a predicate
// asks for string equality on the "name" attribute, the attribute store's
// reverse index answers directly instead of scanning. The indexed hit is
// then re-checked against the remaining predicates, so the fast path
// returns exactly the element the naive scan would.
func Find(v *View, q Query) (int, error) {
	if v.full && !q.None && q.Match == nil && q.Indices == nil {
		if idx, rest, ok := lookupByName(v, q.Where); ok {
			metrics.FindFastPathTotal.Inc()
			single, err := v.Narrow([]int{idx})
			if err != nil {
				return 0, err
			}
			res, err := Select(single, Query{Where: rest})
			if err != nil {
				return 0, err
			}
			if res.Len() == 0 {
				return 0, fmt.Errorf("%w: %s matching all criteria", ErrNotFound, v.kind)
			}
			return res.At(0), nil
		}
	}

	res, err := Select(v, q)
	if err != nil {
		return 0, err
	}
	if res.Len() == 0 {
		return 0, fmt.Errorf("%w: %s matching all criteria", ErrNotFound, v.kind)
	}
	return res.At(0), nil
}

// Find is shorthand for the package-level Find.
func (v *View) Find(q Query) (int, error) { return Find(v, q) }

// lookupByName tries the reverse index on the first "name"/"name_eq"
// predicate carrying a string operand. It returns the matched absolute
// index and the remaining predicates. A miss on an existing name column is
// not reported as a fast-path hit: the naive scan then settles whether the
// result is empty or the column is unknown.
func lookupByName(v *View, preds []Predicate) (idx int, rest []Predicate, ok bool) {
	for i, p := range preds {
		if p.Keyword != "name" && p.Keyword != "name_eq" {
			continue
		}
		s, isString := p.Operand.(string)
		if !isString {
			return 0, nil, false
		}
		idx, found := v.attrs.LookupEqual(v.kind, "name", s)
		if !found {
			return 0, nil, false
		}
		rest = make([]Predicate, 0, len(preds)-1)
		rest = append(rest, preds[:i]...)
		rest = append(rest, preds[i+1:]...)
		return idx, rest, true
	}
	return 0, nil, false
}
