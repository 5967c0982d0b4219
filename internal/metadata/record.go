package metadata

// Record is a single metadata record within a namespace. Metadata holds the
// field-name to value mapping; values are strings or lists of strings (tags,
// code lines) as driven by the record's schema.
type Record struct {
	Name        string         `json:"name,omitempty"`
	DisplayName string         `json:"display_name"`
	SchemaName  string         `json:"schema_name,omitempty"`
	Metadata    map[string]any `json:"metadata"`
}

// Clone returns a deep-enough copy of the record for an editor session to
// mutate without aliasing the fetched snapshot. Slice values are copied;
// nested maps are not expected in the value domain.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		Name:        r.Name,
		DisplayName: r.DisplayName,
		SchemaName:  r.SchemaName,
		Metadata:    make(map[string]any, len(r.Metadata)),
	}
	for k, v := range r.Metadata {
		if list, ok := v.([]string); ok {
			out.Metadata[k] = append([]string(nil), list...)
			continue
		}
		out.Metadata[k] = v
	}
	return out
}

// Tags returns the record's tags field as a string list. Values arriving from
// JSON decode as []any; both representations are accepted.
func (r *Record) Tags() []string {
	if r == nil || r.Metadata == nil {
		return nil
	}
	return StringList(r.Metadata["tags"])
}

// StringList coerces a field value to a list of strings. Strings yield a
// single-element list; anything unrecognized yields nil.
func StringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{val}
	default:
		return nil
	}
}
