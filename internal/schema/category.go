package schema

// Uncategorized is the bucket for fields whose uihints carry no category.
// The bucket gets no heading when the form is rendered.
const Uncategorized = ""

// CategoryIndex groups a schema's fields by their uihints category. Category
// order follows first appearance in the schema; field order within a category
// follows schema document order.
type CategoryIndex struct {
	order  []string
	fields map[string][]string
}

// BuildCategoryIndex derives the category grouping for a schema. It is built
// once per editor session.
func BuildCategoryIndex(s *Schema) *CategoryIndex {
	idx := &CategoryIndex{fields: make(map[string][]string)}
	if s == nil {
		return idx
	}
	for _, name := range s.FieldNames() {
		category := Uncategorized
		if f := s.Field(name); f != nil {
			category = f.UIHints.Category
		}
		if _, seen := idx.fields[category]; !seen {
			idx.order = append(idx.order, category)
		}
		idx.fields[category] = append(idx.fields[category], name)
	}
	return idx
}

// Categories returns the category names in first-appearance order. The
// Uncategorized bucket appears wherever its first field appeared.
func (ci *CategoryIndex) Categories() []string {
	return ci.order
}

// Fields returns the field names of a category in schema order.
func (ci *CategoryIndex) Fields(category string) []string {
	return ci.fields[category]
}
