package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Schema describes one record type within a namespace: its display title and
// the sub-schema of the metadata fields a record of this type carries.
// The wire shape matches the metadata service's schema listing.
type Schema struct {
	Name        string     `json:"name"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Properties  Properties `json:"properties"`
}

// Properties is the top-level properties object of a schema. Only the
// metadata sub-schema is meaningful to the editor.
type Properties struct {
	Metadata Metadata `json:"metadata"`
}

// Metadata is the sub-schema describing the record's fields. Field iteration
// order follows the order the fields appear in the schema document, which is
// why this type keeps its own ordered key list instead of relying on map
// iteration.
type Metadata struct {
	props    map[string]*Field
	order    []string
	required []string
}

// Field is a single field definition.
type Field struct {
	Type        string   `json:"type,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Default     any      `json:"default,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	UIHints     UIHints  `json:"uihints,omitempty"`
}

// UIHints carries the rendering hints attached to a field definition.
type UIHints struct {
	FieldType      string   `json:"field_type,omitempty"`
	Category       string   `json:"category,omitempty"`
	Secure         bool     `json:"secure,omitempty"`
	Placeholder    string   `json:"placeholder,omitempty"`
	DefaultChoices []string `json:"default_choices,omitempty"`
}

// FieldNames returns the field names in schema document order.
func (s *Schema) FieldNames() []string {
	return s.Properties.Metadata.FieldNames()
}

// Field returns the definition for name, or nil if the schema does not
// declare it.
func (s *Schema) Field(name string) *Field {
	return s.Properties.Metadata.Field(name)
}

// Required returns the names of the fields that must be non-empty at save
// time. An absent required list yields nil.
func (s *Schema) Required() []string {
	return s.Properties.Metadata.Required()
}

// FieldNames returns the field names in schema document order.
func (m *Metadata) FieldNames() []string {
	return m.order
}

// Field returns the definition for name, or nil.
func (m *Metadata) Field(name string) *Field {
	return m.props[name]
}

// Required returns the required-field list.
func (m *Metadata) Required() []string {
	return m.required
}

// UnmarshalJSON decodes the metadata sub-schema, recording the order the
// field names appear in the document.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw struct {
		Properties map[string]*Field `json:"properties"`
		Required   []string          `json:"required"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode metadata schema: %w", err)
	}

	order, err := propertyOrder(data)
	if err != nil {
		return fmt.Errorf("failed to read property order: %w", err)
	}

	m.props = raw.Properties
	m.order = order
	m.required = raw.Required
	return nil
}

// MarshalJSON encodes the sub-schema, writing the properties object in the
// original field order so the order survives a round trip through the
// service.
func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"properties":{`)
	for i, name := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.props[name])
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	if len(m.required) > 0 {
		req, err := json.Marshal(m.required)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"required":`)
		buf.Write(req)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// propertyOrder extracts the key order of the "properties" object from the
// raw sub-schema document.
func propertyOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	// Opening brace of the sub-schema object.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		if key != "properties" {
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			// Properties is not an object; nothing to order.
			return nil, nil
		}

		var order []string
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			name, _ := nameTok.(string)
			order = append(order, name)
			if err := skipValue(dec); err != nil {
				return nil, err
			}
		}
		return order, nil
	}

	return nil, nil
}

// skipValue consumes the next JSON value, including nested objects and
// arrays.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
