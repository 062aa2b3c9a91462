// This file implements operator semantics over attribute values: equality
// with numeric coercion, ordering over numbers and strings, and membership
// over the collection types an operand may carry.
package query

import (
	"fmt"

	"github.com/sanonone/grafodb/pkg/core/types"
)

// evalOp applies the operator to an element value and the predicate
// operand, in that order: evalOp(OpLt, v, 10) asks "v < 10".
func evalOp(op Op, value, operand types.Value) (bool, error) {
	switch op {
	case OpEq:
		return valuesEqual(value, operand), nil
	case OpNe:
		return !valuesEqual(value, operand), nil
	case OpLt, OpLe, OpGt, OpGe:
		c, err := compareOrdered(value, operand)
		if err != nil {
			return false, err
		}
		switch op {
		case OpLt:
			return c < 0, nil
		case OpLe:
			return c <= 0, nil
		case OpGt:
			return c > 0, nil
		default:
			return c >= 0, nil
		}
	case OpIn:
		return containsValue(operand, value)
	case OpNotIn:
		ok, err := containsValue(operand, value)
		return !ok, err
	default:
		return false, fmt.Errorf("%w: unknown operator %d", ErrUnsupportedOperator, op)
	}
}

// valuesEqual compares two values, coercing numeric types onto a common
// domain. Values of incompatible types are simply unequal.
func valuesEqual(a, b types.Value) bool {
	if fa, ok := types.AsFloat(a); ok {
		fb, ok := types.AsFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return false
	}
}

// compareOrdered returns -1/0/+1 for values that admit an ordering: both
// numeric, or both strings. Everything else is ErrTypeMismatch.
func compareOrdered(a, b types.Value) (int, error) {
	if fa, ok := types.AsFloat(a); ok {
		if fb, ok := types.AsFloat(b); ok {
			switch {
			case fa < fb:
				return -1, nil
			case fa > fb:
				return 1, nil
			default:
				return 0, nil
			}
		}
		return 0, fmt.Errorf("%w: cannot order %T against %T", ErrTypeMismatch, a, b)
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			switch {
			case sa < sb:
				return -1, nil
			case sa > sb:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: cannot order %T against %T", ErrTypeMismatch, a, b)
}

// containsValue reports whether the operand collection contains the value.
// Supported collection shapes cover what callers naturally pass as operands
// for in/notin; anything else is ErrInvalidOperand.
func containsValue(container, value types.Value) (bool, error) {
	switch c := container.(type) {
	case []types.Value:
		for _, item := range c {
			if valuesEqual(value, item) {
				return true, nil
			}
		}
	case []int:
		for _, item := range c {
			if valuesEqual(value, item) {
				return true, nil
			}
		}
	case []int64:
		for _, item := range c {
			if valuesEqual(value, item) {
				return true, nil
			}
		}
	case []float64:
		for _, item := range c {
			if valuesEqual(value, item) {
				return true, nil
			}
		}
	case []string:
		for _, item := range c {
			if valuesEqual(value, item) {
				return true, nil
			}
		}
	case map[int]struct{}:
		f, ok := types.AsFloat(value)
		if !ok {
			return false, nil
		}
		i := int(f)
		if float64(i) != f {
			return false, nil
		}
		_, found := c[i]
		return found, nil
	case map[string]struct{}:
		s, ok := value.(string)
		if !ok {
			return false, nil
		}
		_, found := c[s]
		return found, nil
	default:
		return false, fmt.Errorf("%w: %T is not a supported collection for in/notin", ErrInvalidOperand, container)
	}
	return false, nil
}
