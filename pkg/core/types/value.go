package types

// AsFloat coerces the numeric types an attribute value may hold onto a
// common comparison domain. The second return is false for non-numeric
// values (strings, booleans, nil).
func AsFloat(value Value) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
