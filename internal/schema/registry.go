package schema

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Registry serves schema definitions from a directory tree laid out as
// <dir>/<namespace>/<schema>.json. Schemas are read on demand so edits to the
// files show up without a restart.
type Registry struct {
	dir    string
	logger *slog.Logger
}

// NewRegistry creates a registry rooted at dir.
func NewRegistry(dir string) *Registry {
	return &Registry{
		dir:    dir,
		logger: slog.Default(),
	}
}

// Schemas returns every schema defined for the namespace, in file-name order.
// An unknown namespace yields an empty list, not an error. Files that are not
// .json or that fail to parse are skipped with a warning.
func (r *Registry) Schemas(namespace string) ([]*Schema, error) {
	dir := filepath.Join(r.dir, namespace)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	var schemas []*Schema
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		s, err := r.load(path)
		if err != nil {
			r.logger.Warn("skipping unreadable schema file", "path", path, "error", err)
			continue
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

// Get returns the named schema for a namespace, or nil if it does not exist.
func (r *Registry) Get(namespace, name string) (*Schema, error) {
	schemas, err := r.Schemas(namespace)
	if err != nil {
		return nil, err
	}
	for _, s := range schemas {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

func (r *Registry) load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if s.Name == "" {
		// Like metadata resources, a schema's name falls back to its file
		// basename.
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return &s, nil
}
