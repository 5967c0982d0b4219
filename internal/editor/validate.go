package editor

import "metaed/internal/metadata"

// Validate recomputes the invalid-form flag and the per-field error flags.
// The form is invalid when the display name is empty or any required field's
// effective value (record value, falling back to the schema default) is empty
// under metadata.IsEmpty. Validation runs on save attempts, not on
// keystrokes.
func (s *Session) Validate() bool {
	valid := s.record.DisplayName != ""

	if s.schema != nil {
		for _, name := range s.schema.FieldNames() {
			if s.IsRequired(name) && metadata.IsEmpty(s.Value(name)) {
				s.fieldErrors[name] = true
				valid = false
			} else {
				delete(s.fieldErrors, name)
			}
		}
	}

	s.invalid = !valid
	return valid
}

// FieldError reports whether the last validation flagged the field.
func (s *Session) FieldError(name string) bool {
	return s.fieldErrors[name]
}

// Invalid reports whether the last save attempt failed validation.
func (s *Session) Invalid() bool {
	return s.invalid
}
