package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wesm/invc/internal/inventory"
)

// promptKind selects what a prompt's value is used for.
type promptKind int

const (
	promptOpen promptKind = iota
	promptAdd
	promptRename
	promptSearch
)

// button actions
const (
	buttonOK = iota
	buttonName
	buttonAbout
	buttonCancel
)

type button struct {
	label  string
	action int
}

// promptState is a one-line text prompt with a row of buttons. focus 0
// is the input; focus i > 0 is buttons[i-1].
type promptState struct {
	kind    promptKind
	title   string
	input   textinput.Model
	buttons []button
	focus   int
	// deflt is the button activated by Enter in the input.
	deflt int
}

func newTextInput(value string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = width
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return ti
}

// openPrompt shows the prompt for kind, prefilled with value.
func (m *Model) openPrompt(kind promptKind, value string) {
	p := promptState{kind: kind, deflt: 0}
	switch kind {
	case promptOpen:
		p.title = "Open database"
	case promptAdd:
		p.title = "Add item"
	case promptRename:
		p.title = "Rename item"
	case promptSearch:
		p.title = "Search"
	}
	if kind == promptSearch {
		p.buttons = []button{{"By Name", buttonName}, {"By Description", buttonAbout}, {"Cancel", buttonCancel}}
		if m.searchField == inventory.FieldAbout {
			p.deflt = 1
		}
	} else {
		p.buttons = []button{{"OK", buttonOK}, {"Cancel", buttonCancel}}
	}
	p.input = newTextInput(value, m.modalInputWidth())
	m.prompt = p
	m.modal = modalPrompt
}

// modalInputWidth is the text input width inside a modal.
func (m Model) modalInputWidth() int {
	return max(min(m.width-12, 48), 10)
}

func (m *Model) closeModal() {
	m.modal = modalNone
}

func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &m.prompt
	n := len(p.buttons) + 1
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "tab":
		p.focus = (p.focus + 1) % n
		m.syncPromptFocus()
		return m, nil
	case "shift+tab":
		p.focus = (p.focus + n - 1) % n
		m.syncPromptFocus()
		return m, nil
	case "enter":
		b := p.buttons[p.deflt]
		if p.focus > 0 {
			b = p.buttons[p.focus-1]
		}
		m.closeModal()
		m.submitPrompt(p.kind, b.action, p.input.Value())
		return m, nil
	}
	if p.focus != 0 {
		return m, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return m, cmd
}

func (m *Model) syncPromptFocus() {
	if m.prompt.focus == 0 {
		m.prompt.input.Focus()
	} else {
		m.prompt.input.Blur()
	}
}

// submitPrompt runs the action for a confirmed prompt.
func (m *Model) submitPrompt(kind promptKind, action int, value string) {
	if action == buttonCancel {
		return
	}
	switch kind {
	case promptOpen:
		if value != "" {
			m.openStore(value)
		}
	case promptAdd:
		m.addItem(value)
	case promptRename:
		m.renameItem(value)
	case promptSearch:
		field := inventory.FieldName
		if action == buttonAbout {
			field = inventory.FieldAbout
		}
		m.startSearch(field, value)
	}
}

// openCount shows the count modal for e.
func (m *Model) openCount(e inventory.Entry) {
	m.count = countState{target: e, value: e.Count}
	m.modal = modalCount
}

func (m Model) handleCountKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := &m.count
	if c.typing {
		switch msg.String() {
		case "esc":
			c.typing = false
			return m, nil
		case "enter":
			v, err := strconv.Atoi(c.input.Value())
			if err != nil || v < 0 {
				m.flashMessage = "Count must be a whole number of zero or more."
				return m, nil
			}
			c.value = v
			c.typing = false
			return m, nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "+", "=", "up", "right":
		c.value++
	case "-", "down", "left":
		if c.value > 0 {
			c.value--
		}
	case "tab":
		c.typing = true
		c.input = newTextInput(strconv.Itoa(c.value), 10)
	case "enter":
		m.closeModal()
		m.saveCount(c.value)
	case "esc", "q":
		m.closeModal()
	}
	return m, nil
}
