package editor

import (
	"context"
	"errors"
	"fmt"

	"metaed/internal/metadata"
)

// ErrInvalidForm is returned by Save when validation fails. The service is
// never contacted in that case; the per-field error flags describe what to
// fix.
var ErrInvalidForm = errors.New("form has missing required fields")

// Save validates the record and persists it: create when the record has no
// name yet, update otherwise. On success the dirty flag resets, the on-save
// callback fires and the caller should close the editor. On service failure
// the form stays open and dirty; saves are never retried automatically.
func (s *Session) Save(ctx context.Context) error {
	if !s.Validate() {
		return ErrInvalidForm
	}

	var err error
	var stored *metadata.Record
	if s.record.Name == "" {
		stored, err = s.create(ctx)
	} else {
		stored, err = s.update(ctx)
	}
	if err != nil {
		s.logger.Warn("save failed", "namespace", s.namespace, "name", s.record.Name, "error", err)
		return fmt.Errorf("failed to save record: %w", err)
	}

	if stored != nil && stored.Name != "" {
		s.record.Name = stored.Name
	}
	s.dirty.MarkClean()
	if s.OnSave != nil {
		s.OnSave()
	}
	return nil
}

func (s *Session) create(ctx context.Context) (*metadata.Record, error) {
	return s.client.Create(ctx, s.namespace, s.record)
}

func (s *Session) update(ctx context.Context) (*metadata.Record, error) {
	return s.client.Update(ctx, s.namespace, s.record.Name, s.record)
}
