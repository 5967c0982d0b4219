package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"metaed/internal/contextutil"
	"metaed/internal/schema"
	"metaed/internal/service"
)

// DocHandler serves a schema's documentation as a rendered HTML page. The
// page body is assembled as markdown from the schema's description and field
// definitions, then converted with goldmark.
type DocHandler struct {
	svc      service.MetadataService
	parser   goldmark.Markdown
	template *template.Template
}

// docPageData holds template data for rendered schema doc pages.
type docPageData struct {
	Title     string
	Namespace string
	Content   template.HTML
}

// NewDocHandler creates a new handler for schema documentation pages.
func NewDocHandler(svc service.MetadataService) *DocHandler {
	tmpl := template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} — {{.Namespace}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 800px;
      line-height: 1.6;
    }
    h1 { margin-top: 0; }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
      background: #f3f4f6;
      padding: 2px 5px;
      border-radius: 4px;
    }
    table { border-collapse: collapse; }
    th, td { border: 1px solid #d1d5db; padding: 0.4rem 0.8rem; text-align: left; }
    .meta { color: #6b7280; font-size: 0.95rem; }
  </style>
</head>
<body>
  <p class="meta">Namespace: {{.Namespace}}</p>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &DocHandler{
		svc: svc,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the documentation page for one schema of a namespace.
func (h *DocHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	namespace, ok := pathParam(w, r, "namespace")
	if !ok {
		return
	}
	name, ok := pathParam(w, r, "schema")
	if !ok {
		return
	}

	schemas, err := h.svc.ListSchemas(ctx, namespace)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list schemas", "namespace", namespace, "error", err)
		http.Error(w, "failed to load schema", http.StatusInternalServerError)
		return
	}

	var target *schema.Schema
	for _, s := range schemas {
		if s.Name == name {
			target = s
			break
		}
	}
	if target == nil {
		http.Error(w, "schema not found", http.StatusNotFound)
		return
	}

	htmlContent, err := h.render(target)
	if err != nil {
		logger.ErrorContext(ctx, "failed to render schema doc", "schema", name, "error", err)
		http.Error(w, "failed to render schema", http.StatusInternalServerError)
		return
	}

	title := target.Title
	if title == "" {
		title = target.Name
	}
	pageData := docPageData{
		Title:     title,
		Namespace: namespace,
		Content:   template.HTML(htmlContent),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute doc template", "schema", name, "error", err)
		http.Error(w, "failed to render schema", http.StatusInternalServerError)
	}
}

func (h *DocHandler) render(s *schema.Schema) (string, error) {
	md := buildMarkdown(s)
	var buf bytes.Buffer
	if err := h.parser.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// buildMarkdown assembles the doc page source: schema title and description,
// then a table of the fields with their types and required markers.
func buildMarkdown(s *schema.Schema) string {
	var b strings.Builder

	title := s.Title
	if title == "" {
		title = s.Name
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if s.Description != "" {
		b.WriteString(s.Description)
		b.WriteString("\n\n")
	}

	names := s.FieldNames()
	if len(names) == 0 {
		return b.String()
	}

	required := make(map[string]struct{})
	for _, name := range s.Required() {
		required[name] = struct{}{}
	}

	b.WriteString("| Field | Type | Required | Description |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, name := range names {
		f := s.Field(name)
		if f == nil {
			continue
		}
		req := ""
		if _, ok := required[name]; ok {
			req = "yes"
		}
		fieldType := f.InputType().String()
		desc := strings.ReplaceAll(f.Description, "|", "\\|")
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", name, fieldType, req, desc)
	}
	return b.String()
}
