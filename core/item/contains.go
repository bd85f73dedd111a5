package item

// Contains reports whether every field present in needle has an equal
// value in haystack. Nested records are compared recursively; extra
// fields on haystack are ignored. This lets a sparse catalog identity
// match the richer record the network bridge reports for an item.
func Contains(haystack, needle map[string]any) bool {
	for field, want := range needle {
		got, ok := haystack[field]
		if !ok {
			return false
		}
		if !valueEqual(got, want) {
			return false
		}
	}
	return true
}

// valueEqual compares two record values. Numeric values are compared by
// magnitude regardless of Go type, because JSON decoding yields float64
// where catalog identities hold int.
func valueEqual(got, want any) bool {
	if wantRecord, ok := want.(map[string]any); ok {
		gotRecord, ok := got.(map[string]any)
		if !ok {
			return false
		}
		return Contains(gotRecord, wantRecord)
	}

	if gotNum, ok := asFloat(got); ok {
		wantNum, ok := asFloat(want)
		return ok && gotNum == wantNum
	}

	return got == want
}

func asFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}
