package editor

// falsy reports whether a value would be dropped from the payload when its
// field is not required. This is a different, stricter rule than the
// required-field emptiness check in metadata.IsEmpty: a single-element list
// holding "" and the no-selection sentinel are falsy-wise kept.
func falsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case bool:
		return !val
	case int:
		return val == 0
	case float64:
		return val == 0
	}
	return false
}
