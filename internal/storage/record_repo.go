package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_record_store.go -package=mocks metaed/internal/storage RecordStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"metaed/internal/metadata"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrExists is returned when inserting a record whose name is taken.
	ErrExists = errors.New("record already exists")
)

// RecordStore defines the interface for metadata record storage operations.
type RecordStore interface {
	// List returns every record in a namespace, ordered by name.
	List(ctx context.Context, namespace string) ([]*metadata.Record, error)
	// Get returns the named record. Returns nil and ErrNotFound if absent.
	Get(ctx context.Context, namespace, name string) (*metadata.Record, error)
	// Insert stores a new record. Returns ErrExists on a name collision.
	Insert(ctx context.Context, namespace string, record *metadata.Record) error
	// Update replaces an existing record. Returns ErrNotFound if absent.
	Update(ctx context.Context, namespace string, record *metadata.Record) error
	// Delete removes the named record. Returns ErrNotFound if absent.
	Delete(ctx context.Context, namespace, name string) error
}

// RecordRepo provides methods for metadata record operations.
// It implements the RecordStore interface.
type RecordRepo struct {
	db *sql.DB
}

// NewRecordRepo creates a new RecordRepo.
func NewRecordRepo(db *sql.DB) *RecordRepo {
	return &RecordRepo{db: db}
}

// List returns every record in a namespace, ordered by name.
func (r *RecordRepo) List(ctx context.Context, namespace string) ([]*metadata.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name, display_name, schema_name, metadata FROM metadata_records WHERE namespace = ? ORDER BY name",
		namespace,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*metadata.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

// Get returns the named record. Returns nil and ErrNotFound if absent.
func (r *RecordRepo) Get(ctx context.Context, namespace, name string) (*metadata.Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT name, display_name, schema_name, metadata FROM metadata_records WHERE namespace = ? AND name = ?",
		namespace, name,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Insert stores a new record. Returns ErrExists on a name collision.
func (r *RecordRepo) Insert(ctx context.Context, namespace string, record *metadata.Record) error {
	fields, err := marshalFields(record)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO metadata_records (id, namespace, name, display_name, schema_name, metadata) VALUES (?, ?, ?, ?, ?, ?)",
		uuid.New().String(), namespace, record.Name, record.DisplayName, record.SchemaName, fields,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrExists
		}
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// Update replaces an existing record. Returns ErrNotFound if absent.
func (r *RecordRepo) Update(ctx context.Context, namespace string, record *metadata.Record) error {
	fields, err := marshalFields(record)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE metadata_records SET display_name = ?, schema_name = ?, metadata = ?, updated_at = CURRENT_TIMESTAMP WHERE namespace = ? AND name = ?",
		record.DisplayName, record.SchemaName, fields, namespace, record.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the named record. Returns ErrNotFound if absent.
func (r *RecordRepo) Delete(ctx context.Context, namespace, name string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM metadata_records WHERE namespace = ? AND name = ?",
		namespace, name,
	)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*metadata.Record, error) {
	var rec metadata.Record
	var schemaName sql.NullString
	var fields string

	if err := row.Scan(&rec.Name, &rec.DisplayName, &schemaName, &fields); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}
	rec.SchemaName = schemaName.String

	if strings.TrimSpace(fields) != "" {
		if err := json.Unmarshal([]byte(fields), &rec.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode record metadata: %w", err)
		}
	}
	if rec.Metadata == nil {
		rec.Metadata = make(map[string]any)
	}
	return &rec, nil
}

func marshalFields(record *metadata.Record) (string, error) {
	fields := record.Metadata
	if fields == nil {
		fields = make(map[string]any)
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode record metadata: %w", err)
	}
	return string(data), nil
}
