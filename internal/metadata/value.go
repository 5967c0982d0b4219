package metadata

// NoSelection is the sentinel a dropdown reports when nothing is chosen. It
// counts as empty for required-field validation.
const NoSelection = "(No selection)"

// IsEmpty reports whether a field value counts as empty under the
// required-field rule. Empty values are exactly: nil, the empty string, an
// empty list, a single-element list containing only the empty string, and the
// NoSelection sentinel. A multi-element list of empty strings is NOT empty;
// the rule is deliberately this narrow because widening it would change which
// forms block save.
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == "" || val == NoSelection
	case []string:
		return len(val) == 0 || (len(val) == 1 && val[0] == "")
	case []any:
		if len(val) == 0 {
			return true
		}
		if len(val) == 1 {
			s, ok := val[0].(string)
			return ok && s == ""
		}
		return false
	}
	return false
}
