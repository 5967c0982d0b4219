package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_metadata_service.go -package=mocks -mock_names=MetadataService=MockMetadataService metaed/internal/service MetadataService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"metaed/internal/metadata"
	"metaed/internal/schema"
	"metaed/internal/storage"
)

// SchemaSource is the schema lookup the service validates records against.
type SchemaSource interface {
	// Schemas returns every schema defined for a namespace.
	Schemas(namespace string) ([]*schema.Schema, error)
	// Get returns the named schema, or nil when it does not exist.
	Get(namespace, name string) (*schema.Schema, error)
}

// MetadataService provides namespaced metadata record management.
type MetadataService interface {
	// ListSchemas returns every schema defined for a namespace.
	ListSchemas(ctx context.Context, namespace string) ([]*schema.Schema, error)
	// List returns every record in a namespace.
	List(ctx context.Context, namespace string) ([]*metadata.Record, error)
	// Create validates and stores a new record, deriving its name from the
	// display name. Returns the stored record.
	Create(ctx context.Context, namespace string, record *metadata.Record) (*metadata.Record, error)
	// Update validates and replaces the named record.
	Update(ctx context.Context, namespace, name string, record *metadata.Record) (*metadata.Record, error)
	// Delete removes the named record.
	Delete(ctx context.Context, namespace, name string) error
}

// metadataService implements MetadataService.
type metadataService struct {
	records storage.RecordStore
	schemas SchemaSource
	logger  *slog.Logger
}

// NewMetadataService creates a new MetadataService.
func NewMetadataService(records storage.RecordStore, schemas SchemaSource) MetadataService {
	return &metadataService{
		records: records,
		schemas: schemas,
		logger:  slog.Default(),
	}
}

// ListSchemas returns every schema defined for a namespace.
func (s *metadataService) ListSchemas(_ context.Context, namespace string) ([]*schema.Schema, error) {
	schemas, err := s.schemas.Schemas(namespace)
	if err != nil {
		return nil, WrapError(err, "failed to list schemas")
	}
	return schemas, nil
}

// List returns every record in a namespace.
func (s *metadataService) List(ctx context.Context, namespace string) ([]*metadata.Record, error) {
	records, err := s.records.List(ctx, namespace)
	if err != nil {
		return nil, WrapError(err, "failed to list records")
	}
	return records, nil
}

// Create validates and stores a new record. The record's name is derived from
// its display name; a collision with an existing record is ErrExists.
func (s *metadataService) Create(ctx context.Context, namespace string, record *metadata.Record) (*metadata.Record, error) {
	if err := s.validate(ctx, namespace, record); err != nil {
		return nil, err
	}

	record.Name = NameFromDisplayName(record.DisplayName)
	if err := s.records.Insert(ctx, namespace, record); err != nil {
		if errors.Is(err, storage.ErrExists) {
			return nil, fmt.Errorf("%w: %s", ErrExists, record.Name)
		}
		return nil, WrapError(err, "failed to store record")
	}

	s.logger.InfoContext(ctx, "record created", "namespace", namespace, "name", record.Name)
	return record, nil
}

// Update validates and replaces the named record.
func (s *metadataService) Update(ctx context.Context, namespace, name string, record *metadata.Record) (*metadata.Record, error) {
	if err := s.validate(ctx, namespace, record); err != nil {
		return nil, err
	}

	record.Name = name
	if err := s.records.Update(ctx, namespace, record); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, WrapError(err, "failed to store record")
	}

	s.logger.InfoContext(ctx, "record updated", "namespace", namespace, "name", name)
	return record, nil
}

// Delete removes the named record.
func (s *metadataService) Delete(ctx context.Context, namespace, name string) error {
	if err := s.records.Delete(ctx, namespace, name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return WrapError(err, "failed to delete record")
	}
	s.logger.InfoContext(ctx, "record removed", "namespace", namespace, "name", name)
	return nil
}

// validate mirrors the editor's save gate: display name present, required
// fields non-empty. Records referencing a schema the registry does not know
// are stored as-is; the editor is the authority on unknown schemas.
func (s *metadataService) validate(ctx context.Context, namespace string, record *metadata.Record) error {
	if record == nil {
		return &ValidationError{Field: "record", Message: "cannot be nil"}
	}
	if record.DisplayName == "" {
		return &ValidationError{Field: "display_name", Message: "cannot be empty"}
	}
	if record.SchemaName == "" {
		return nil
	}

	sc, err := s.schemas.Get(namespace, record.SchemaName)
	if err != nil {
		return WrapError(err, "failed to look up schema")
	}
	if sc == nil {
		s.logger.WarnContext(ctx, "record references unknown schema",
			"namespace", namespace, "schema", record.SchemaName)
		return nil
	}

	for _, name := range sc.Required() {
		value, ok := record.Metadata[name]
		if !ok {
			if f := sc.Field(name); f != nil {
				value = f.Default
			}
		}
		if metadata.IsEmpty(value) {
			return &ValidationError{Field: name, Message: "required field is empty"}
		}
	}
	return nil
}

// NameFromDisplayName derives a record's stable name from its display name:
// lowercased, with runs of anything outside [a-z0-9] collapsed to a single
// hyphen.
func NameFromDisplayName(displayName string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(displayName) {
		isWord := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isWord {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
