package engine

import "github.com/talgya/pending/internal/catalog"

// toFloat coerces the loosely typed condition values that YAML and JSON
// decoding produce.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toStrings(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func compareNumber(actual float64, op catalog.ConditionOperator, value any) bool {
	expected, ok := toFloat(value)
	if !ok {
		return false
	}
	switch op {
	case catalog.OpEqual:
		return actual == expected
	case catalog.OpNotEqual:
		return actual != expected
	case catalog.OpGreater:
		return actual > expected
	case catalog.OpLess:
		return actual < expected
	case catalog.OpGreaterEqual:
		return actual >= expected
	case catalog.OpLessEqual:
		return actual <= expected
	}
	return false
}

func compareString(actual string, op catalog.ConditionOperator, value any) bool {
	switch op {
	case catalog.OpEqual:
		s, ok := value.(string)
		return ok && actual == s
	case catalog.OpNotEqual:
		s, ok := value.(string)
		return ok && actual != s
	case catalog.OpIn:
		for _, s := range toStrings(value) {
			if s == actual {
				return true
			}
		}
		return false
	case catalog.OpNotIn:
		for _, s := range toStrings(value) {
			if s == actual {
				return false
			}
		}
		return true
	}
	return false
}

func compareAny(actual any, op catalog.ConditionOperator, value any) bool {
	if s, ok := actual.(string); ok {
		return compareString(s, op, value)
	}
	if n, ok := toFloat(actual); ok {
		return compareNumber(n, op, value)
	}
	return false
}
