package editor

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_service_client.go -package=mocks metaed/internal/editor ServiceClient

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"metaed/internal/metadata"
	"metaed/internal/schema"
)

// ServiceClient is what an editor session needs from the metadata service.
// This interface is defined from the editor's perspective (consumer-first).
type ServiceClient interface {
	// GetSchemas fetches every schema defined for a namespace.
	GetSchemas(ctx context.Context, namespace string) ([]*schema.Schema, error)
	// GetAll fetches every record in a namespace.
	GetAll(ctx context.Context, namespace string) ([]*metadata.Record, error)
	// Create posts a new record and returns the stored result.
	Create(ctx context.Context, namespace string, record *metadata.Record) (*metadata.Record, error)
	// Update replaces the named record and returns the stored result.
	Update(ctx context.Context, namespace, name string, record *metadata.Record) (*metadata.Record, error)
}

// Session owns the state of one record-editing session: the schema, the
// record under edit, the namespace snapshot used for suggestions, and the
// dirty/validation flags. A session is not shared between editors.
type Session struct {
	// OnSave is invoked after a successful save, before the editor closes.
	OnSave func()
	// OnContentTypeChange is invoked when the language field changes, with
	// the content type the embedded code editor should switch to.
	OnContentTypeChange func(contentType string)
	// ContentTypeResolver maps a language name to a content type. When nil
	// the language side channel is disabled.
	ContentTypeResolver func(language string) string

	namespace  string
	schemaName string
	recordName string

	client ServiceClient
	logger *slog.Logger

	schema     *schema.Schema
	categories *schema.CategoryIndex
	required   map[string]struct{}

	record     *metadata.Record
	allRecords []*metadata.Record
	tagPool    []string

	dirty       DirtyTracker
	fieldErrors map[string]bool
	invalid     bool
}

// NewSession creates a session for editing the named record of a schema, or a
// new record when recordName is empty. Call Load before rendering; until then
// the session presents an empty form.
func NewSession(client ServiceClient, namespace, schemaName, recordName string) *Session {
	return &Session{
		namespace:   namespace,
		schemaName:  schemaName,
		recordName:  recordName,
		client:      client,
		logger:      slog.Default(),
		categories:  schema.BuildCategoryIndex(nil),
		required:    make(map[string]struct{}),
		record:      newRecord(schemaName),
		fieldErrors: make(map[string]bool),
	}
}

func newRecord(schemaName string) *metadata.Record {
	return &metadata.Record{
		SchemaName: schemaName,
		Metadata:   make(map[string]any),
	}
}

// Load issues the two startup fetches: the namespace's schemas and its full
// record set. Both failures are reported but neither is fatal; whatever state
// did load stays usable and the rest of the session renders empty.
func (s *Session) Load(ctx context.Context) error {
	var errs []error

	schemas, err := s.client.GetSchemas(ctx, s.namespace)
	if err != nil {
		s.logger.Warn("schema fetch failed", "namespace", s.namespace, "error", err)
		errs = append(errs, err)
	} else {
		for _, sc := range schemas {
			if sc.Name == s.schemaName {
				s.schema = sc
				break
			}
		}
		s.rebuildSchemaState()
	}

	records, err := s.client.GetAll(ctx, s.namespace)
	if err != nil {
		s.logger.Warn("record fetch failed", "namespace", s.namespace, "error", err)
		errs = append(errs, err)
	} else {
		s.seedRecords(records)
	}

	return errors.Join(errs...)
}

func (s *Session) rebuildSchemaState() {
	s.categories = schema.BuildCategoryIndex(s.schema)
	s.required = make(map[string]struct{})
	if s.schema == nil {
		return
	}
	for _, name := range s.schema.Required() {
		s.required[name] = struct{}{}
	}
}

func (s *Session) seedRecords(records []*metadata.Record) {
	s.allRecords = records
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if rec.Metadata == nil {
			rec.Metadata = make(map[string]any)
		}
		// Every record participates in tag suggestions; records predating
		// the tags field get an empty list.
		if _, ok := rec.Metadata["tags"]; !ok {
			rec.Metadata["tags"] = []string{}
		}
		for _, tag := range rec.Tags() {
			s.addTag(tag)
		}
		if s.recordName != "" && rec.Name == s.recordName {
			s.record = rec.Clone()
			if s.record.SchemaName == "" {
				s.record.SchemaName = s.schemaName
			}
		}
	}
}

// Schema returns the loaded schema, or nil before Load completes.
func (s *Session) Schema() *schema.Schema {
	return s.schema
}

// Categories returns the category grouping of the schema's fields.
func (s *Session) Categories() *schema.CategoryIndex {
	return s.categories
}

// Record returns the record under edit.
func (s *Session) Record() *metadata.Record {
	return s.record
}

// DisplayName returns the record's display name.
func (s *Session) DisplayName() string {
	return s.record.DisplayName
}

// IsRequired reports whether a field must be non-empty at save time.
func (s *Session) IsRequired(name string) bool {
	_, ok := s.required[name]
	return ok
}

// Value returns a field's effective value: the record's value when present,
// falling back to the schema default.
func (s *Session) Value(name string) any {
	if v, ok := s.record.Metadata[name]; ok {
		return v
	}
	if s.schema != nil {
		if f := s.schema.Field(name); f != nil {
			return f.Default
		}
	}
	return nil
}

// Dirty exposes the session's dirty tracker for host binding.
func (s *Session) Dirty() *DirtyTracker {
	return &s.dirty
}

// SetDisplayName stores the display name exactly as given, even when empty;
// an empty display name is caught by validation, not by deletion.
func (s *Session) SetDisplayName(v string) {
	s.record.DisplayName = v
	s.dirty.MarkDirty()
}

// SetField stores a field value. An empty value on a non-required field
// removes the key entirely to keep the payload minimal. Changing the language
// field additionally retargets the embedded code editor's content type.
func (s *Session) SetField(name string, value any) {
	if falsy(value) && !s.IsRequired(name) {
		delete(s.record.Metadata, name)
	} else {
		s.record.Metadata[name] = value
	}
	s.dirty.MarkDirty()

	if name == "language" {
		if lang, ok := value.(string); ok {
			s.languageChanged(lang)
		}
	}
}

func (s *Session) languageChanged(language string) {
	if s.ContentTypeResolver == nil || s.OnContentTypeChange == nil {
		return
	}
	s.OnContentTypeChange(s.ContentTypeResolver(language))
}

// SetTags stores the selected tag subset and grows the suggestion pool with
// any tag it has not seen before.
func (s *Session) SetTags(tags []string) {
	s.SetField("tags", append([]string(nil), tags...))
	for _, tag := range tags {
		s.addTag(tag)
	}
}

// addTag appends a tag to the pool unless an exact match already exists. The
// add is case-sensitive; only suggestion de-duplication elsewhere folds case.
func (s *Session) addTag(tag string) {
	for _, existing := range s.tagPool {
		if existing == tag {
			return
		}
	}
	s.tagPool = append(s.tagPool, tag)
}

// TagPool returns every tag seen across the namespace plus any entered during
// this session. The pool grows but never shrinks.
func (s *Session) TagPool() []string {
	return s.tagPool
}

// DropdownChoices returns the choice list for a dropdown field. A field with
// an enum is a closed set; otherwise the default choices are unioned with
// every distinct value seen for the field across the other records of the
// namespace, de-duplicated case-insensitively, and free text is allowed.
func (s *Session) DropdownChoices(name string) (choices []string, closed bool) {
	if s.schema == nil {
		return nil, false
	}
	f := s.schema.Field(name)
	if f == nil {
		return nil, false
	}
	if len(f.Enum) > 0 {
		return append([]string(nil), f.Enum...), true
	}

	seen := make(map[string]struct{})
	for _, choice := range f.UIHints.DefaultChoices {
		if _, dup := seen[strings.ToLower(choice)]; dup {
			continue
		}
		seen[strings.ToLower(choice)] = struct{}{}
		choices = append(choices, choice)
	}
	for _, rec := range s.allRecords {
		if rec == nil || rec.Metadata == nil {
			continue
		}
		if rec.Name != "" && rec.Name == s.record.Name {
			continue
		}
		value, ok := rec.Metadata[name].(string)
		if !ok || value == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(value)]; dup {
			continue
		}
		seen[strings.ToLower(value)] = struct{}{}
		choices = append(choices, value)
	}
	return choices, false
}
