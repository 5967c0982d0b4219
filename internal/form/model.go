package form

import (
	"context"
	"errors"
	"reflect"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"metaed/internal/editor"
	"metaed/internal/metadata"
	"metaed/internal/schema"
)

// loadedMsg reports the two startup fetches finishing, successfully or not.
type loadedMsg struct {
	err error
}

// savedMsg reports the outcome of a save attempt.
type savedMsg struct {
	err error
}

// row is one line of the form: either a category heading or a bound input.
type row struct {
	heading string

	field    string // empty for the display-name row
	label    string
	required bool
	input    inputField
	last     any // last value committed to the session
}

// Model is the bubbletea model rendering one editor session.
type Model struct {
	session *editor.Session
	ctx     context.Context

	rows    []row
	focus   int
	loaded  bool
	dirty   bool
	saved   bool
	closing bool // confirm-close modal active
	status  string

	codeFields []*codeField
	width      int
}

// New creates a form over an editor session. The session should not have been
// loaded yet; the model issues the startup fetches from Init.
func New(ctx context.Context, session *editor.Session) *Model {
	m := &Model{
		session: session,
		ctx:     ctx,
		focus:   -1,
	}
	session.Dirty().Notify(func(dirty bool) {
		m.dirty = dirty
	})
	session.ContentTypeResolver = ContentTypeForLanguage
	session.OnContentTypeChange = func(contentType string) {
		for _, cf := range m.codeFields {
			cf.SetContentType(contentType)
		}
	}
	return m
}

// Saved reports whether the session was saved before the editor closed.
func (m *Model) Saved() bool {
	return m.saved
}

// Init issues the startup fetches.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.session.Load(m.ctx)}
	}
}

// Update handles bubbletea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.status = "server error: " + msg.err.Error()
		}
		m.buildRows()
		return m, nil

	case savedMsg:
		if msg.err == nil {
			m.saved = true
			return m, tea.Quit
		}
		if errors.Is(msg.err, editor.ErrInvalidForm) {
			m.status = "cannot save: required fields are missing"
		} else {
			m.status = "server error: " + msg.err.Error()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.closing {
		switch msg.String() {
		case "y", "Y", "enter":
			return m, tea.Quit
		case "n", "N", "esc":
			m.closing = false
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		// A dirty editor never closes without confirmation.
		if m.session.Dirty().IsDirty() {
			m.closing = true
			return m, nil
		}
		return m, tea.Quit

	case "ctrl+s":
		m.status = ""
		return m, func() tea.Msg {
			return savedMsg{err: m.session.Save(m.ctx)}
		}

	case "tab", "down":
		if m.allowNavigation(msg) {
			m.moveFocus(1)
			return m, nil
		}

	case "shift+tab", "up":
		if m.allowNavigation(msg) {
			m.moveFocus(-1)
			return m, nil
		}
	}

	return m, m.updateFocused(msg)
}

// allowNavigation keeps up/down inside multi-line editors while still letting
// tab cycle fields everywhere.
func (m *Model) allowNavigation(msg tea.KeyMsg) bool {
	s := msg.String()
	if s == "tab" || s == "shift+tab" {
		return true
	}
	if m.focus < 0 || m.focus >= len(m.rows) {
		return true
	}
	_, isCode := m.rows[m.focus].input.(*codeField)
	return !isCode
}

func (m *Model) moveFocus(delta int) {
	if len(m.rows) == 0 {
		return
	}
	next := m.focus
	for i := 0; i < len(m.rows); i++ {
		next += delta
		if next < 0 {
			next = len(m.rows) - 1
		}
		if next >= len(m.rows) {
			next = 0
		}
		if m.rows[next].input != nil {
			break
		}
	}
	m.setFocus(next)
}

func (m *Model) setFocus(index int) {
	if m.focus >= 0 && m.focus < len(m.rows) && m.rows[m.focus].input != nil {
		m.rows[m.focus].input.Blur()
	}
	m.focus = index
	if m.focus >= 0 && m.focus < len(m.rows) && m.rows[m.focus].input != nil {
		m.rows[m.focus].input.Focus()
	}
}

// updateFocused delegates a message to the focused input, then commits any
// value change into the session so the field model and dirty flag stay
// current.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	if m.focus < 0 || m.focus >= len(m.rows) {
		return nil
	}
	r := &m.rows[m.focus]
	if r.input == nil {
		return nil
	}

	cmd := r.input.Update(msg)
	value := r.input.Value()
	if reflect.DeepEqual(value, r.last) {
		return cmd
	}
	r.last = value
	m.commit(r, value)
	return cmd
}

func (m *Model) commit(r *row, value any) {
	if r.field == "" {
		if s, ok := value.(string); ok {
			m.session.SetDisplayName(s)
		}
		return
	}
	if _, isTags := r.input.(*tagsField); isTags {
		m.session.SetTags(metadata.StringList(value))
		return
	}
	m.session.SetField(r.field, value)
}

// buildRows maps the loaded schema onto form rows: the display-name input
// first, then each category's fields with a heading for every named
// category. Unknown field types render nothing.
func (m *Model) buildRows() {
	m.rows = nil
	m.codeFields = nil

	name := newTextField(m.session.DisplayName(), "name of this configuration", false)
	m.rows = append(m.rows, row{
		label:    "Name",
		required: true,
		input:    name,
		last:     name.Value(),
	})

	sc := m.session.Schema()
	if sc != nil {
		contentType := m.initialContentType()
		idx := m.session.Categories()
		for _, category := range idx.Categories() {
			if category != schema.Uncategorized {
				m.rows = append(m.rows, row{heading: category})
			}
			for _, field := range idx.Fields(category) {
				if r, ok := m.buildFieldRow(sc, field, contentType); ok {
					m.rows = append(m.rows, r)
				}
			}
		}
	}

	m.setFocus(0)
}

func (m *Model) initialContentType() string {
	lang, _ := m.session.Value("language").(string)
	if lang == "" || lang == metadata.NoSelection {
		return ""
	}
	return ContentTypeForLanguage(lang)
}

func (m *Model) buildFieldRow(sc *schema.Schema, name, contentType string) (row, bool) {
	f := sc.Field(name)
	if f == nil {
		return row{}, false
	}

	label := f.Title
	if label == "" {
		label = name
	}

	value := m.session.Value(name)
	var input inputField
	switch f.InputType() {
	case schema.TextInput:
		str, _ := value.(string)
		input = newTextField(str, f.UIHints.Placeholder, f.UIHints.Secure)
	case schema.Dropdown:
		str, _ := value.(string)
		choices, closed := m.session.DropdownChoices(name)
		input = newDropdownField(str, choices, closed)
	case schema.Code:
		cf := newCodeField(metadata.StringList(value), contentType)
		m.codeFields = append(m.codeFields, cf)
		input = cf
	case schema.Tags:
		input = newTagsField(metadata.StringList(value), m.session.TagPool())
	default:
		// Unknown field types are a deliberate no-op.
		return row{}, false
	}

	// Seed last from the widget, not the session value: the widget reports in
	// its own domain ("" for an unset text field, the no-selection sentinel
	// for an untouched dropdown, []string for code lines), and the commit
	// guard compares against whatever Value() returns. Seeding from the
	// session's domain would make the first delegated keypress look like an
	// edit.
	return row{
		field:    name,
		label:    label,
		required: m.session.IsRequired(name),
		input:    input,
		last:     input.Value(),
	}, true
}

// View renders the form.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.titleLine())
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString(hintStyle.Render("loading…"))
		b.WriteString("\n")
		return b.String()
	}

	for i, r := range m.rows {
		if r.heading != "" {
			b.WriteString(headingStyle.Render(r.heading))
			b.WriteString("\n")
			continue
		}

		label := r.label
		if r.required {
			label += " *"
		}
		style := labelStyle
		if i == m.focus {
			style = focusStyle
		}
		b.WriteString(style.Render(label))
		b.WriteString(" ")
		b.WriteString(r.input.View())
		if m.fieldInError(r) {
			b.WriteString("  ")
			b.WriteString(errorStyle.Render("required"))
		}
		b.WriteString("\n")
	}

	if m.closing {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Close without saving? (y/n)"))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab: next field • ctrl+s: save • esc: close"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) fieldInError(r row) bool {
	if !m.session.Invalid() {
		return false
	}
	if r.field == "" {
		return m.session.DisplayName() == ""
	}
	return m.session.FieldError(r.field)
}

func (m *Model) titleLine() string {
	title := "New record"
	if sc := m.session.Schema(); sc != nil && sc.Title != "" {
		title = sc.Title
	}
	line := titleStyle.Render(title)
	if m.dirty {
		line += "  " + dirtyStyle.Render("● unsaved changes")
	}
	return line
}
