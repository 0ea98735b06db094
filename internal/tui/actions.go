package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wesm/invc/internal/editbuf"
	"github.com/wesm/invc/internal/inventory"
	"github.com/wesm/invc/internal/nav"
)

// userMessage returns the one-line text shown for err in the error modal.
func userMessage(err error) string {
	var we *inventory.WriteError
	var oe *inventory.OpenError
	switch {
	case errors.Is(err, inventory.ErrNotLoaded):
		return "No database loaded."
	case errors.As(err, &oe):
		return "Can't open database."
	case errors.As(err, &we):
		return "Could not " + we.Action + "."
	case errors.Is(err, inventory.ErrNotFound):
		return "Item not found."
	case errors.Is(err, inventory.ErrMoveRejected):
		return "Move rejected: destination is inside the moved item"
	}
	msg := err.Error()
	if msg == "" {
		return "Error."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// showError opens the error modal for err. An OpenError makes the
// modal fatal.
func (m *Model) showError(err error) {
	m.logger.Error("command failed", "error", inventory.Detail(err))
	m.errMsg = userMessage(err)
	m.errDetail = ""
	if detail := inventory.Detail(err); detail != err.Error() {
		m.errDetail = detail
	}
	var oe *inventory.OpenError
	if errors.As(err, &oe) {
		m.fatal = err
	}
	m.modal = modalError
}

// report surfaces the result of a command. A rejected move is a flash
// message, anything else opens the error modal.
func (m *Model) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, inventory.ErrMoveRejected):
		m.logger.Info("move rejected")
		m.flashMessage = userMessage(err)
	default:
		m.showError(err)
	}
}

// navigate is report for cursor and panel movement, which does nothing
// while no store is open.
func (m *Model) navigate(err error) {
	if errors.Is(err, inventory.ErrNotLoaded) {
		return
	}
	m.report(err)
}

// openStore opens path and attaches it to the navigator, closing the
// previous store.
func (m *Model) openStore(path string) {
	if m.open == nil {
		m.showError(&inventory.OpenError{Path: path, Err: errors.New("no opener configured")})
		return
	}
	st, err := m.open(m.ctx, path)
	if err != nil {
		var oe *inventory.OpenError
		if !errors.As(err, &oe) {
			err = &inventory.OpenError{Path: path, Err: err}
		}
		m.showError(err)
		return
	}

	if m.closer != nil {
		if err := m.closer.Close(); err != nil {
			m.logger.Warn("close previous database", "error", err)
		}
		m.closer = nil
	}
	m.nav.Close()
	m.search = nil
	m.editor = nil
	m.screen = screenBrowse

	if c, ok := st.(io.Closer); ok {
		m.closer = c
	}
	if err := m.nav.Open(m.ctx, st); err != nil {
		m.showError(&inventory.OpenError{Path: path, Err: err})
		return
	}
	m.dbPath = path
	m.logger.Info("opened database", "path", path)
	m.flashMessage = "Opened " + path
}

func (m *Model) addItem(name string) {
	if name == "" {
		return
	}
	id, err := m.nav.Add(m.ctx, name)
	if err != nil {
		m.showError(err)
		return
	}
	m.logger.Debug("added item", "id", id, "name", name)
}

func (m *Model) renameItem(name string) {
	if name == "" {
		return
	}
	m.report(m.nav.RenameSelected(m.ctx, name))
}

func (m *Model) deleteItem() {
	sel, ok := m.nav.Selected()
	if !ok {
		return
	}
	if err := m.nav.DeleteSelected(m.ctx); err != nil {
		m.showError(err)
		return
	}
	m.flashMessage = fmt.Sprintf("Deleted %s", sel.Name)
}

func (m *Model) saveCount(n int) {
	m.report(m.nav.SetSelectedCount(m.ctx, n))
}

// searchPattern applies auto-wildcarding to a pattern without wildcards.
func searchPattern(pattern string, auto bool) string {
	if auto && !strings.ContainsAny(pattern, "%_") {
		return "%" + pattern + "%"
	}
	return pattern
}

func (m *Model) startSearch(field inventory.Field, pattern string) {
	pattern = searchPattern(pattern, m.autoWildcard)
	s, err := nav.NewSearch(m.ctx, m.nav.Store(), field, pattern, m.windowSize())
	if err != nil {
		m.showError(err)
		return
	}
	m.logger.Debug("search", "field", field.String(), "pattern", pattern, "matches", s.Count())
	m.search = s
	m.screen = screenSearch
}

func (m *Model) openEditor(e inventory.Entry) {
	about, err := m.nav.Description(m.ctx, e.ID)
	if err != nil {
		m.showError(err)
		return
	}
	h, w := m.editorSize()
	buf := editbuf.New(h, w)
	buf.Seed(about)
	m.editor = &editorState{target: e, buf: buf}
	m.screen = screenEditor
}

func (m *Model) saveDescription() {
	ed := m.editor
	if !ed.buf.Modified() {
		m.flashMessage = "No changes to save."
		return
	}
	if err := m.nav.SaveDescription(m.ctx, ed.target.ID, ed.buf.Text()); err != nil {
		m.showError(err)
		return
	}
	ed.buf.MarkSaved()
	m.flashMessage = "Description saved."
}

// handleModalKeys routes a key to the open modal.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	switch m.modal {
	case modalHelp:
		m.closeModal()
	case modalError:
		switch msg.String() {
		case "x", "X", "enter", "esc":
			m.closeModal()
			if m.fatal != nil {
				return m.quit()
			}
		}
	case modalDeleteConfirm:
		switch msg.String() {
		case "y", "Y":
			m.closeModal()
			m.deleteItem()
		case "n", "N", "esc", "q":
			m.closeModal()
		}
	case modalPrompt:
		return m.handlePromptKeys(msg)
	case modalCount:
		return m.handleCountKeys(msg)
	}
	return m, nil
}
