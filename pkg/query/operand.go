// This file implements operand coercion for the reserved edge subjects:
// turning whatever a caller passed as a vertex set (or pair of sets) into a
// normalized form.
package query

import (
	"fmt"

	"github.com/sanonone/grafodb/pkg/core/types"
)

// SetPair is the operand shape of the '_between' selector: an edge
// qualifies when one endpoint lies in First and the other in Second, in
// either direction.
type SetPair struct {
	First  []int
	Second []int
}

// asVertexID coerces a scalar operand to a vertex index.
func asVertexID(value types.Value) (int, bool) {
	f, ok := types.AsFloat(value)
	if !ok {
		return 0, false
	}
	i := int(f)
	if float64(i) != f {
		return 0, false
	}
	return i, true
}

// asVertexSet normalizes a vertex-set operand. Accepted shapes: integer
// slices, mixed value slices of integers, an int set, or a vertex View
// (its absolute indices are used). A bare scalar is only accepted where the
// original semantics allow it (endpoint equality on undirected graphs).
func asVertexSet(value types.Value, allowScalar bool) (map[int]struct{}, error) {
	set := make(map[int]struct{})
	add := func(item types.Value) error {
		id, ok := asVertexID(item)
		if !ok {
			return fmt.Errorf("%w: %T is not a vertex index", ErrInvalidOperand, item)
		}
		set[id] = struct{}{}
		return nil
	}

	switch c := value.(type) {
	case []int:
		for _, item := range c {
			set[item] = struct{}{}
		}
	case []int64:
		for _, item := range c {
			if err := add(item); err != nil {
				return nil, err
			}
		}
	case []float64:
		for _, item := range c {
			if err := add(item); err != nil {
				return nil, err
			}
		}
	case []types.Value:
		for _, item := range c {
			if err := add(item); err != nil {
				return nil, err
			}
		}
	case map[int]struct{}:
		for item := range c {
			set[item] = struct{}{}
		}
	case *View:
		for _, idx := range c.idxs {
			set[idx] = struct{}{}
		}
	default:
		if allowScalar {
			if id, ok := asVertexID(value); ok {
				set[id] = struct{}{}
				return set, nil
			}
		}
		return nil, fmt.Errorf("%w: %T is not a vertex set", ErrInvalidOperand, value)
	}
	return set, nil
}

// asSetPair normalizes a '_between' operand, which must be exactly two
// vertex sets.
func asSetPair(value types.Value) (first, second map[int]struct{}, err error) {
	switch c := value.(type) {
	case SetPair:
		first, err = asVertexSet(c.First, false)
		if err != nil {
			return nil, nil, err
		}
		second, err = asVertexSet(c.Second, false)
		if err != nil {
			return nil, nil, err
		}
		return first, second, nil
	case [][]int:
		if len(c) != 2 {
			return nil, nil, fmt.Errorf("%w: '_between' requires exactly two vertex sets, got %d", ErrInvalidOperand, len(c))
		}
		return asSetPair(SetPair{First: c[0], Second: c[1]})
	case [2][]int:
		return asSetPair(SetPair{First: c[0], Second: c[1]})
	case []types.Value:
		if len(c) != 2 {
			return nil, nil, fmt.Errorf("%w: '_between' requires exactly two vertex sets, got %d", ErrInvalidOperand, len(c))
		}
		first, err = asVertexSet(c[0], false)
		if err != nil {
			return nil, nil, err
		}
		second, err = asVertexSet(c[1], false)
		if err != nil {
			return nil, nil, err
		}
		return first, second, nil
	default:
		return nil, nil, fmt.Errorf("%w: '_between' requires a pair of vertex sets, got %T", ErrInvalidOperand, value)
	}
}

func setToSlice(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

func inSet(set map[int]struct{}, id int) bool {
	_, ok := set[id]
	return ok
}
