package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"metaed/internal/metadata"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func testRecord(name string) *metadata.Record {
	return &metadata.Record{
		Name:        name,
		DisplayName: "Display " + name,
		SchemaName:  "kfp",
		Metadata: map[string]any{
			"api_endpoint": "http://host:8080",
			"tags":         []string{"prod"},
		},
	}
}

func TestRecordRepoInsertAndGet(t *testing.T) {
	repo := NewRecordRepo(testDB(t))
	ctx := context.Background()

	if err := repo.Insert(ctx, "runtimes", testRecord("prod")); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := repo.Get(ctx, "runtimes", "prod")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.DisplayName != "Display prod" || got.SchemaName != "kfp" {
		t.Errorf("Get() = %+v", got)
	}
	if got.Metadata["api_endpoint"] != "http://host:8080" {
		t.Errorf("metadata = %v", got.Metadata)
	}
	if tags := got.Tags(); len(tags) != 1 || tags[0] != "prod" {
		t.Errorf("tags = %v, want [prod]", tags)
	}
}

func TestRecordRepoInsertDuplicate(t *testing.T) {
	repo := NewRecordRepo(testDB(t))
	ctx := context.Background()

	if err := repo.Insert(ctx, "runtimes", testRecord("prod")); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	err := repo.Insert(ctx, "runtimes", testRecord("prod"))
	if !errors.Is(err, ErrExists) {
		t.Errorf("duplicate Insert() error = %v, want ErrExists", err)
	}

	// The same name in another namespace is not a collision.
	if err := repo.Insert(ctx, "code-snippets", testRecord("prod")); err != nil {
		t.Errorf("Insert() in other namespace error = %v", err)
	}
}

func TestRecordRepoListOrdered(t *testing.T) {
	repo := NewRecordRepo(testDB(t))
	ctx := context.Background()

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if err := repo.Insert(ctx, "runtimes", testRecord(name)); err != nil {
			t.Fatalf("Insert(%s) error = %v", name, err)
		}
	}
	if err := repo.Insert(ctx, "other", testRecord("zulu")); err != nil {
		t.Fatalf("Insert(zulu) error = %v", err)
	}

	records, err := repo.List(ctx, "runtimes")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"alpha", "bravo", "charlie"}
	if len(records) != len(want) {
		t.Fatalf("List() returned %d records, want %d", len(records), len(want))
	}
	for i := range want {
		if records[i].Name != want[i] {
			t.Errorf("records[%d].Name = %q, want %q", i, records[i].Name, want[i])
		}
	}
}

func TestRecordRepoUpdate(t *testing.T) {
	repo := NewRecordRepo(testDB(t))
	ctx := context.Background()

	if err := repo.Insert(ctx, "runtimes", testRecord("prod")); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	rec := testRecord("prod")
	rec.DisplayName = "Renamed"
	rec.Metadata["api_endpoint"] = "http://other:9999"
	if err := repo.Update(ctx, "runtimes", rec); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.Get(ctx, "runtimes", "prod")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.DisplayName != "Renamed" || got.Metadata["api_endpoint"] != "http://other:9999" {
		t.Errorf("Get() after update = %+v", got)
	}

	err = repo.Update(ctx, "runtimes", testRecord("missing"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestRecordRepoDelete(t *testing.T) {
	repo := NewRecordRepo(testDB(t))
	ctx := context.Background()

	if err := repo.Insert(ctx, "runtimes", testRecord("prod")); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := repo.Delete(ctx, "runtimes", "prod"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := repo.Get(ctx, "runtimes", "prod")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	err = repo.Delete(ctx, "runtimes", "prod")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestRecordRepoEmptyMetadata(t *testing.T) {
	repo := NewRecordRepo(testDB(t))
	ctx := context.Background()

	rec := &metadata.Record{Name: "bare", DisplayName: "Bare"}
	if err := repo.Insert(ctx, "runtimes", rec); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := repo.Get(ctx, "runtimes", "bare")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Metadata == nil {
		t.Error("Get() should return a non-nil metadata map")
	}
}
