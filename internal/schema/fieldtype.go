package schema

// FieldType is the closed set of input controls a field can render as.
type FieldType int

const (
	// TextInput is a single-line text input. It is the default when a field
	// declares no field_type hint.
	TextInput FieldType = iota
	// Dropdown is a choice list, closed when the field has an enum and
	// otherwise open to free text.
	Dropdown
	// Code is a multi-line code editor whose value is a list of lines.
	Code
	// Tags is a tag-selection control.
	Tags
	// Unknown is any unrecognized field_type. Unknown fields render nothing.
	Unknown
)

// String returns the hint spelling for the field type.
func (t FieldType) String() string {
	switch t {
	case TextInput:
		return "textinput"
	case Dropdown:
		return "dropdown"
	case Code:
		return "code"
	case Tags:
		return "tags"
	default:
		return "unknown"
	}
}

// InputType resolves the field's declared field_type hint to a FieldType.
func (f *Field) InputType() FieldType {
	switch f.UIHints.FieldType {
	case "", "textinput":
		return TextInput
	case "dropdown":
		return Dropdown
	case "code":
		return Code
	case "tags":
		return Tags
	default:
		return Unknown
	}
}
