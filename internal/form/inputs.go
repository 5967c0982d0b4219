package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"metaed/internal/metadata"
)

// inputField is one rendered form control. Value returns the field's value in
// the record's value domain: a string, or a list of strings for code and tag
// fields.
type inputField interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	Focus()
	Blur()
	Value() any
}

// textField is a single-line text input, the default control.
type textField struct {
	input textinput.Model
}

func newTextField(value, placeholder string, secure bool) *textField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Width = 48
	ti.Placeholder = placeholder
	if secure {
		ti.EchoMode = textinput.EchoPassword
	}
	ti.SetValue(value)
	return &textField{input: ti}
}

func (t *textField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t *textField) View() string { return t.input.View() }
func (t *textField) Focus()       { t.input.Focus() }
func (t *textField) Blur()        { t.input.Blur() }
func (t *textField) Value() any   { return t.input.Value() }

// dropdownField is a choice list. With a closed choice set the value cycles
// with the arrow keys, starting from the no-selection sentinel. An open
// dropdown is a text input with the choices offered as suggestions.
type dropdownField struct {
	closed  bool
	choices []string
	index   int // 0 is the no-selection sentinel; choices are 1-based
	focused bool
	input   textinput.Model
}

func newDropdownField(value string, choices []string, closed bool) *dropdownField {
	d := &dropdownField{closed: closed, choices: choices}
	if closed {
		for i, choice := range choices {
			if choice == value {
				d.index = i + 1
				break
			}
		}
		return d
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 48
	ti.ShowSuggestions = true
	ti.SetSuggestions(choices)
	if value != metadata.NoSelection {
		ti.SetValue(value)
	}
	d.input = ti
	return d
}

func (d *dropdownField) Update(msg tea.Msg) tea.Cmd {
	if !d.closed {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return cmd
	}
	if !d.focused {
		return nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "left", "h":
			d.index--
			if d.index < 0 {
				d.index = len(d.choices)
			}
		case "right", "l":
			d.index++
			if d.index > len(d.choices) {
				d.index = 0
			}
		}
	}
	return nil
}

func (d *dropdownField) View() string {
	if !d.closed {
		return d.input.View()
	}
	current, _ := d.Value().(string)
	if d.focused {
		return "◂ " + current + " ▸"
	}
	return current
}

func (d *dropdownField) Focus() {
	d.focused = true
	if !d.closed {
		d.input.Focus()
	}
}

func (d *dropdownField) Blur() {
	d.focused = false
	if !d.closed {
		d.input.Blur()
	}
}

func (d *dropdownField) Value() any {
	if !d.closed {
		return d.input.Value()
	}
	if d.index == 0 {
		return metadata.NoSelection
	}
	return d.choices[d.index-1]
}

// codeField is a multi-line editor whose value is the list of lines. The
// content type label follows the record's language field.
type codeField struct {
	area        textarea.Model
	contentType string
}

func newCodeField(lines []string, contentType string) *codeField {
	ta := textarea.New()
	ta.SetWidth(64)
	ta.SetHeight(6)
	ta.SetValue(strings.Join(lines, "\n"))
	return &codeField{area: ta, contentType: contentType}
}

func (c *codeField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.area, cmd = c.area.Update(msg)
	return cmd
}

func (c *codeField) View() string {
	view := c.area.View()
	if c.contentType != "" {
		view += "\n" + hintStyle.Render(c.contentType)
	}
	return view
}

func (c *codeField) Focus() { c.area.Focus() }
func (c *codeField) Blur()  { c.area.Blur() }

// Value returns the editor content as a list of lines; an empty editor
// yields an empty list.
func (c *codeField) Value() any {
	raw := c.area.Value()
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, "\n")
}

// SetContentType updates the label shown under the editor. Driven by the
// language field's side channel.
func (c *codeField) SetContentType(contentType string) {
	c.contentType = contentType
}

// tagsField is a toggle list over the namespace's tag pool plus a free-entry
// line for new tags. Space toggles the highlighted tag, left/right move the
// highlight, enter commits the typed tag.
type tagsField struct {
	pool     []string
	selected map[string]bool
	cursor   int
	focused  bool
	entry    textinput.Model
}

func newTagsField(selected, pool []string) *tagsField {
	t := &tagsField{
		selected: make(map[string]bool, len(selected)),
	}
	t.pool = append(t.pool, pool...)
	for _, tag := range selected {
		t.selected[tag] = true
		if !contains(t.pool, tag) {
			t.pool = append(t.pool, tag)
		}
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.Width = 24
	ti.Placeholder = "new tag"
	t.entry = ti
	return t
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func (t *tagsField) Update(msg tea.Msg) tea.Cmd {
	if !t.focused {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "left":
		if t.cursor > 0 {
			t.cursor--
		}
		return nil
	case "right":
		if t.cursor < len(t.pool)-1 {
			t.cursor++
		}
		return nil
	case " ":
		if t.entry.Value() == "" && t.cursor < len(t.pool) {
			tag := t.pool[t.cursor]
			t.selected[tag] = !t.selected[tag]
			return nil
		}
	case "enter":
		tag := strings.TrimSpace(t.entry.Value())
		if tag != "" {
			if !contains(t.pool, tag) {
				t.pool = append(t.pool, tag)
			}
			t.selected[tag] = true
			t.entry.SetValue("")
		}
		return nil
	}

	var cmd tea.Cmd
	t.entry, cmd = t.entry.Update(msg)
	return cmd
}

func (t *tagsField) View() string {
	var b strings.Builder
	for i, tag := range t.pool {
		mark := "[ ]"
		if t.selected[tag] {
			mark = "[x]"
		}
		chip := mark + " " + tag
		if t.focused && i == t.cursor {
			chip = selectedStyle.Render(chip)
		}
		b.WriteString(chip)
		b.WriteString("  ")
	}
	b.WriteString(t.entry.View())
	return b.String()
}

func (t *tagsField) Focus() {
	t.focused = true
	t.entry.Focus()
}

func (t *tagsField) Blur() {
	t.focused = false
	t.entry.Blur()
}

// Value returns the selected tags in pool order.
func (t *tagsField) Value() any {
	var tags []string
	for _, tag := range t.pool {
		if t.selected[tag] {
			tags = append(tags, tag)
		}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}
