package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"metaed/internal/contextutil"
	"metaed/internal/metadata"
	"metaed/internal/service"
)

// MetadataHandler handles HTTP requests for metadata records.
type MetadataHandler struct {
	svc service.MetadataService
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(svc service.MetadataService) *MetadataHandler {
	return &MetadataHandler{svc: svc}
}

// errorResponse is the JSON body returned for failed requests.
type errorResponse struct {
	Error string `json:"error"`
}

// recordsResponse is the record listing envelope.
type recordsResponse struct {
	Namespace string             `json:"namespace"`
	Records   []*metadata.Record `json:"records"`
}

// List returns every record in the namespace.
func (h *MetadataHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	namespace, ok := pathParam(w, r, "namespace")
	if !ok {
		return
	}

	records, err := h.svc.List(ctx, namespace)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list records", "namespace", namespace, "error", err)
		writeError(w, err)
		return
	}
	if records == nil {
		records = []*metadata.Record{}
	}

	writeJSON(w, http.StatusOK, recordsResponse{Namespace: namespace, Records: records})
}

// Create stores a new record in the namespace.
func (h *MetadataHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	namespace, ok := pathParam(w, r, "namespace")
	if !ok {
		return
	}

	record, ok := decodeRecord(w, r)
	if !ok {
		return
	}

	stored, err := h.svc.Create(ctx, namespace, record)
	if err != nil {
		logger.WarnContext(ctx, "failed to create record", "namespace", namespace, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

// Update replaces the named record.
func (h *MetadataHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	namespace, ok := pathParam(w, r, "namespace")
	if !ok {
		return
	}
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}

	record, ok := decodeRecord(w, r)
	if !ok {
		return
	}

	stored, err := h.svc.Update(ctx, namespace, name, record)
	if err != nil {
		logger.WarnContext(ctx, "failed to update record", "namespace", namespace, "name", name, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

// Delete removes the named record.
func (h *MetadataHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	namespace, ok := pathParam(w, r, "namespace")
	if !ok {
		return
	}
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx, namespace, name); err != nil {
		logger.WarnContext(ctx, "failed to delete record", "namespace", namespace, "name", name, "error", err)
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeRecord(w http.ResponseWriter, r *http.Request) (*metadata.Record, bool) {
	var record metadata.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return nil, false
	}
	return &record, true
}

// pathParam extracts and unescapes a chi URL parameter, writing a 400 when it
// is missing or malformed.
func pathParam(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	value, err := url.PathUnescape(raw)
	if err != nil || value == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: key + " is required"})
		return "", false
	}
	return value, true
}

// writeError maps service sentinels onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrExists):
		status = http.StatusConflict
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
