package form

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/mock/gomock"

	"metaed/internal/editor"
	"metaed/internal/editor/mocks"
	"metaed/internal/metadata"
	"metaed/internal/schema"
)

const formSchemaJSON = `{
	"name": "code-snippet",
	"title": "Code Snippet",
	"properties": {
		"metadata": {
			"properties": {
				"description": {"type": "string", "title": "Description"},
				"language": {
					"type": "string",
					"title": "Language",
					"uihints": {"field_type": "dropdown", "default_choices": ["Python"]}
				},
				"mystery": {
					"type": "string",
					"title": "Mystery",
					"uihints": {"field_type": "slider"}
				},
				"code": {
					"type": "array",
					"title": "Code",
					"uihints": {"field_type": "code", "category": "Source"}
				},
				"tags": {
					"type": "array",
					"title": "Tags",
					"uihints": {"field_type": "tags", "category": "Source"}
				}
			},
			"required": ["language", "code"]
		}
	}
}`

func loadedModel(t *testing.T) *Model {
	t.Helper()

	var sc schema.Schema
	if err := json.Unmarshal([]byte(formSchemaJSON), &sc); err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}

	ctrl := gomock.NewController(t)
	client := mocks.NewMockServiceClient(ctrl)
	client.EXPECT().GetSchemas(gomock.Any(), gomock.Any()).Return([]*schema.Schema{&sc}, nil)
	client.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return([]*metadata.Record{
		{Name: "other", DisplayName: "Other", Metadata: map[string]any{
			"tags": []any{"prod"},
		}},
	}, nil)

	session := editor.NewSession(client, "code-snippets", "code-snippet", "")
	m := New(context.Background(), session)

	msg := m.Init()()
	lm, ok := msg.(loadedMsg)
	if !ok {
		t.Fatalf("Init() produced %T, want loadedMsg", msg)
	}
	if lm.err != nil {
		t.Fatalf("load failed: %v", lm.err)
	}
	updated, _ := m.Update(lm)
	return updated.(*Model)
}

func TestModelBuildsRows(t *testing.T) {
	m := loadedModel(t)

	if len(m.rows) == 0 {
		t.Fatal("no rows built")
	}
	if m.rows[0].label != "Name" || m.rows[0].field != "" {
		t.Errorf("first row = %+v, want the display-name input", m.rows[0])
	}

	var labels []string
	var headings []string
	for _, r := range m.rows {
		if r.heading != "" {
			headings = append(headings, r.heading)
			continue
		}
		labels = append(labels, r.label)
	}

	// The unknown "slider" field renders nothing.
	for _, l := range labels {
		if l == "Mystery" {
			t.Error("unknown field type should not produce a row")
		}
	}
	if len(headings) != 1 || headings[0] != "Source" {
		t.Errorf("headings = %v, want [Source]", headings)
	}

	want := []string{"Name", "Description", "Language", "Code", "Tags"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestModelTypingMarksDirty(t *testing.T) {
	m := loadedModel(t)

	if m.session.Dirty().IsDirty() {
		t.Fatal("session should start clean")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("M")})
	m = updated.(*Model)

	if !m.session.Dirty().IsDirty() {
		t.Error("typing into the name field should dirty the session")
	}
	if m.session.DisplayName() != "M" {
		t.Errorf("DisplayName() = %q, want M", m.session.DisplayName())
	}
	if !strings.Contains(m.View(), "unsaved changes") {
		t.Error("view should show the unsaved-changes indicator")
	}
}

func TestModelCleanEscQuits(t *testing.T) {
	m := loadedModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc on a clean form should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc on a clean form should quit without confirmation")
	}
}

func TestModelDirtyEscConfirms(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("M")})
	m = updated.(*Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*Model)
	if cmd != nil {
		t.Fatal("esc on a dirty form should not quit immediately")
	}
	if !strings.Contains(m.View(), "Close without saving?") {
		t.Error("view should show the confirm-close prompt")
	}

	// n cancels and returns to the form.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = updated.(*Model)
	if strings.Contains(m.View(), "Close without saving?") {
		t.Error("n should dismiss the confirm-close prompt")
	}

	// y on a re-raised prompt discards and quits.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*Model)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if cmd == nil {
		t.Fatal("y should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("y should quit the editor")
	}
	if m.Saved() {
		t.Error("discarding must not report a save")
	}
}

func TestModelSavedMsg(t *testing.T) {
	m := loadedModel(t)

	updated, cmd := m.Update(savedMsg{err: nil})
	m = updated.(*Model)
	if !m.Saved() {
		t.Error("a nil save result should mark the model saved")
	}
	if cmd == nil {
		t.Fatal("a successful save should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("a successful save should quit")
	}
}

func TestModelSaveInvalid(t *testing.T) {
	m := loadedModel(t)

	updated, cmd := m.Update(savedMsg{err: editor.ErrInvalidForm})
	m = updated.(*Model)
	if cmd != nil {
		t.Error("a failed save should keep the editor open")
	}
	if !strings.Contains(m.View(), "required fields are missing") {
		t.Error("view should explain the validation failure")
	}
	if m.Saved() {
		t.Error("a failed save must not report success")
	}
}

func TestModelLoadingView(t *testing.T) {
	session := editor.NewSession(nil, "code-snippets", "code-snippet", "")
	m := New(context.Background(), session)

	if !strings.Contains(m.View(), "loading") {
		t.Error("view before load should show a loading line")
	}
}

func TestModelCursorMoveLeavesSessionClean(t *testing.T) {
	m := loadedModel(t)

	// Tab to the empty optional Description field and move the cursor. The
	// widget's value never changes, so nothing may be committed.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(*Model)
	if m.rows[m.focus].label != "Description" {
		t.Fatalf("focus on %q, want Description", m.rows[m.focus].label)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(*Model)

	if m.session.Dirty().IsDirty() {
		t.Error("a cursor move must not dirty the session")
	}
	if len(m.session.Record().Metadata) != 0 {
		t.Errorf("metadata = %v, want untouched", m.session.Record().Metadata)
	}
}

func TestModelUntouchedDropdownCommitsNothing(t *testing.T) {
	raw := `{
		"name": "runtime",
		"title": "Runtime",
		"properties": {
			"metadata": {
				"properties": {
					"engine": {
						"type": "string",
						"title": "Engine",
						"enum": ["Argo", "Tekton"],
						"uihints": {"field_type": "dropdown"}
					}
				}
			}
		}
	}`
	var sc schema.Schema
	if err := json.Unmarshal([]byte(raw), &sc); err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}

	ctrl := gomock.NewController(t)
	client := mocks.NewMockServiceClient(ctrl)
	client.EXPECT().GetSchemas(gomock.Any(), gomock.Any()).Return([]*schema.Schema{&sc}, nil)
	client.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return(nil, nil)

	session := editor.NewSession(client, "runtimes", "runtime", "")
	m := New(context.Background(), session)
	updated, _ := m.Update(m.Init()().(loadedMsg))
	m = updated.(*Model)

	// Focus the closed dropdown and press a key it ignores. No selection was
	// made, so the sentinel must not be written into the record.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(*Model)
	if m.rows[m.focus].label != "Engine" {
		t.Fatalf("focus on %q, want Engine", m.rows[m.focus].label)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = updated.(*Model)

	if _, ok := m.session.Record().Metadata["engine"]; ok {
		t.Errorf("engine = %v, an untouched dropdown must not store a value", m.session.Record().Metadata["engine"])
	}
	if m.session.Dirty().IsDirty() {
		t.Error("an untouched dropdown must not dirty the session")
	}

	// Actually choosing a value still commits it.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(*Model)
	if m.session.Record().Metadata["engine"] != "Argo" {
		t.Errorf("engine = %v, want Argo after a selection", m.session.Record().Metadata["engine"])
	}
	if !m.session.Dirty().IsDirty() {
		t.Error("a selection should dirty the session")
	}
}

func TestModelTabSkipsHeadings(t *testing.T) {
	m := loadedModel(t)

	start := m.focus
	if start != 0 {
		t.Fatalf("focus = %d, want 0", start)
	}

	for i := 0; i < len(m.rows); i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(*Model)
		if m.rows[m.focus].input == nil {
			t.Fatalf("focus landed on a heading row at %d", m.focus)
		}
	}
	// Focus wraps back around the input rows.
	if m.focus < 0 || m.focus >= len(m.rows) {
		t.Errorf("focus = %d out of range", m.focus)
	}
}
