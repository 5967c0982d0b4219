package handlers

import (
	"net/http"

	"metaed/internal/contextutil"
	"metaed/internal/schema"
	"metaed/internal/service"
)

// SchemaHandler serves the schema listing for a namespace.
type SchemaHandler struct {
	svc service.MetadataService
}

// NewSchemaHandler creates a new SchemaHandler.
func NewSchemaHandler(svc service.MetadataService) *SchemaHandler {
	return &SchemaHandler{svc: svc}
}

// schemasResponse is the schema listing envelope.
type schemasResponse struct {
	Namespace string           `json:"namespace"`
	Schemas   []*schema.Schema `json:"schemas"`
}

// ServeHTTP lists every schema defined for the namespace. An unknown
// namespace yields an empty list.
func (h *SchemaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	namespace, ok := pathParam(w, r, "namespace")
	if !ok {
		return
	}

	schemas, err := h.svc.ListSchemas(ctx, namespace)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list schemas", "namespace", namespace, "error", err)
		writeError(w, err)
		return
	}
	if schemas == nil {
		schemas = []*schema.Schema{}
	}

	writeJSON(w, http.StatusOK, schemasResponse{Namespace: namespace, Schemas: schemas})
}
