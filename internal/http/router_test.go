package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"metaed/internal/metadata"
	"metaed/internal/schema"
	"metaed/internal/service"
	"metaed/internal/service/mocks"
)

func testRouter(t *testing.T) (http.Handler, *mocks.MockMetadataService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMetadataService(ctrl)
	return NewRouter(&Deps{MetadataService: svc}), svc
}

func TestGetSchemas(t *testing.T) {
	router, svc := testRouter(t)

	var sc schema.Schema
	raw := `{"name": "kfp", "title": "Kubeflow Pipelines", "properties": {"metadata": {"properties": {"api_endpoint": {"type": "string"}}}}}`
	if err := json.Unmarshal([]byte(raw), &sc); err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}
	svc.EXPECT().ListSchemas(gomock.Any(), "runtimes").Return([]*schema.Schema{&sc}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schema/runtimes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Namespace string           `json:"namespace"`
		Schemas   []*schema.Schema `json:"schemas"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Namespace != "runtimes" || len(body.Schemas) != 1 || body.Schemas[0].Name != "kfp" {
		t.Errorf("body = %+v", body)
	}
}

func TestGetSchemasEmptyNamespace(t *testing.T) {
	router, svc := testRouter(t)
	svc.EXPECT().ListSchemas(gomock.Any(), "nope").Return(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schema/nope", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// nil normalizes to an empty JSON array, never null.
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"schemas":[]`)) {
		t.Errorf("body = %s, want empty schemas array", rec.Body.String())
	}
}

func TestListRecords(t *testing.T) {
	router, svc := testRouter(t)
	svc.EXPECT().List(gomock.Any(), "runtimes").Return([]*metadata.Record{
		{Name: "prod", DisplayName: "Prod", Metadata: map[string]any{}},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metadata/runtimes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Namespace string             `json:"namespace"`
		Records   []*metadata.Record `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Records) != 1 || body.Records[0].Name != "prod" {
		t.Errorf("records = %+v", body.Records)
	}
}

func TestCreateRecord(t *testing.T) {
	router, svc := testRouter(t)

	svc.EXPECT().Create(gomock.Any(), "runtimes", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, record *metadata.Record) (*metadata.Record, error) {
			record.Name = "my-runtime"
			return record, nil
		})

	payload := `{"display_name": "My Runtime", "schema_name": "kfp", "metadata": {"api_endpoint": "http://h:1"}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/metadata/runtimes", bytes.NewBufferString(payload)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var stored metadata.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &stored); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stored.Name != "my-runtime" {
		t.Errorf("stored name = %q, want my-runtime", stored.Name)
	}
}

func TestCreateRecordBadBody(t *testing.T) {
	router, _ := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/metadata/runtimes", bytes.NewBufferString("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateRecord(t *testing.T) {
	router, svc := testRouter(t)

	svc.EXPECT().Update(gomock.Any(), "runtimes", "prod", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, name string, record *metadata.Record) (*metadata.Record, error) {
			record.Name = name
			return record, nil
		})

	payload := `{"display_name": "Prod", "metadata": {}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/metadata/runtimes/prod", bytes.NewBufferString(payload)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteRecord(t *testing.T) {
	router, svc := testRouter(t)
	svc.EXPECT().Delete(gomock.Any(), "runtimes", "prod").Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/metadata/runtimes/prod", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &service.ValidationError{Field: "display_name", Message: "cannot be empty"}, http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: prod", service.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: prod", service.ErrExists), http.StatusConflict},
		{"internal", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := testRouter(t)
			svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)

			payload := `{"display_name": "X", "metadata": {}}`
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/metadata/runtimes", bytes.NewBufferString(payload)))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if body.Error == "" {
				t.Error("error body should carry a message")
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/metadata/runtimes", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("preflight response missing Access-Control-Allow-Origin")
	}
	if rec.Code != http.StatusNoContent && rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d", rec.Code)
	}
}

func TestDocPage(t *testing.T) {
	router, svc := testRouter(t)

	var sc schema.Schema
	raw := `{
		"name": "kfp",
		"title": "Kubeflow Pipelines",
		"description": "Configuration for a Kubeflow Pipelines deployment.",
		"properties": {
			"metadata": {
				"properties": {
					"api_endpoint": {"type": "string", "description": "The pipelines API endpoint."}
				},
				"required": ["api_endpoint"]
			}
		}
	}`
	if err := json.Unmarshal([]byte(raw), &sc); err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}
	svc.EXPECT().ListSchemas(gomock.Any(), "runtimes").Return([]*schema.Schema{&sc}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doc/runtimes/kfp", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"Kubeflow Pipelines", "api_endpoint", "The pipelines API endpoint."} {
		if !bytes.Contains([]byte(body), []byte(want)) {
			t.Errorf("doc page missing %q", want)
		}
	}
}

func TestDocPageUnknownSchema(t *testing.T) {
	router, svc := testRouter(t)
	svc.EXPECT().ListSchemas(gomock.Any(), "runtimes").Return(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doc/runtimes/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
