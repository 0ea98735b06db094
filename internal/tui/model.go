// Package tui provides the dual-panel terminal interface for invc.
package tui

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wesm/invc/internal/editbuf"
	"github.com/wesm/invc/internal/inventory"
	"github.com/wesm/invc/internal/nav"
)

// screen is the view that receives keys when no modal is open.
type screen int

const (
	screenBrowse screen = iota
	screenSearch
	screenEditor
)

// modalType represents the type of modal dialog.
type modalType int

const (
	modalNone modalType = iota
	modalHelp
	modalError
	modalPrompt
	modalCount
	modalDeleteConfirm
)

// Opener opens the store at path. The returned store is closed on
// reopen and on quit when it implements io.Closer.
type Opener func(ctx context.Context, path string) (inventory.Store, error)

// Options configuration for TUI.
type Options struct {
	// DBPath is opened at startup when non-empty.
	DBPath  string
	Version string
	Open    Opener
	Logger  *slog.Logger

	// SearchField is the button focused first in the search dialog.
	SearchField inventory.Field
	// AutoWildcard wraps patterns without LIKE wildcards in %...%.
	AutoWildcard bool
}

// editorState is the open description editor.
type editorState struct {
	target inventory.Entry
	buf    *editbuf.Buffer
}

// countState is the open count modal.
type countState struct {
	target inventory.Entry
	value  int
	typing bool
	input  textinput.Model
}

// Model is the main TUI model following the Elm architecture.
type Model struct {
	ctx    context.Context
	logger *slog.Logger
	open   Opener

	nav    *nav.Navigator
	search *nav.SearchSession
	editor *editorState
	closer io.Closer
	dbPath string

	screen screen
	modal  modalType
	prompt promptState
	count  countState

	// errMsg and errDetail are shown by modalError. fatal is set when
	// acknowledging the error must end the program.
	errMsg    string
	errDetail string
	fatal     error

	// Flash message (cleared by the next key press)
	flashMessage string

	searchField  inventory.Field
	autoWildcard bool
	version      string

	// Terminal dimensions
	width  int
	height int

	quitting bool
}

// defaultWindowSize is used until the first WindowSizeMsg arrives.
const defaultWindowSize = 20

// New creates a new TUI model with the given options.
func New(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Model{
		ctx:          ctx,
		logger:       logger,
		open:         opts.Open,
		nav:          nav.New(defaultWindowSize),
		dbPath:       opts.DBPath,
		searchField:  opts.SearchField,
		autoWildcard: opts.AutoWildcard,
		version:      opts.Version,
	}
}

// openRequestMsg asks the model to open the store at path.
type openRequestMsg struct {
	path string
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.dbPath == "" {
		return nil
	}
	path := m.dbPath
	return func() tea.Msg { return openRequestMsg{path: path} }
}

// Err returns the fatal error that ended the program, if any.
func (m Model) Err() error {
	if m.quitting {
		return m.fatal
	}
	return nil
}

// Close closes the open store.
func (m Model) Close() error {
	if m.closer != nil {
		return m.closer.Close()
	}
	return nil
}

// windowSize returns the number of data rows per panel.
func (m Model) windowSize() int {
	return max(m.height-4, 1)
}

// editorSize returns the buffer dimensions for the editor view.
func (m Model) editorSize() (height, width int) {
	return max(m.height-2, 2), max(m.width, 4)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height)

	case openRequestMsg:
		m.openStore(msg.path)
		return m, nil
	}
	return m, nil
}

func (m Model) resize(width, height int) (tea.Model, tea.Cmd) {
	m.width = max(width, 0)
	m.height = max(height, 0)

	if err := m.nav.Resize(m.ctx, m.windowSize()); err != nil {
		m.showError(err)
	}
	if m.search != nil {
		if err := m.search.Resize(m.ctx, m.windowSize()); err != nil {
			m.showError(err)
		}
	}
	if m.editor != nil {
		// Rows and columns outside a smaller terminal are clipped by the view.
		m.editor.buf.Grow(m.editorSize())
	}
	return m, nil
}

// handleKeyPress routes a key to the open modal or the current screen.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m.handleModalKeys(msg)
	}
	m.flashMessage = ""

	switch m.screen {
	case screenSearch:
		return m.handleSearchKeys(msg)
	case screenEditor:
		return m.handleEditorKeys(msg)
	default:
		return m.handleBrowseKeys(msg)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := lookup(browseKeys, msg)
	if cmd != cmdNone {
		m.logger.Debug("browse command", "key", msg.String(), "command", int(cmd))
	}
	switch cmd {
	case cmdQuit:
		return m.quit()
	case cmdHelp:
		m.modal = modalHelp
	case cmdOpen:
		m.openPrompt(promptOpen, m.dbPath)
	case cmdSwitch:
		m.nav.SwitchFocus()
	case cmdUp:
		m.navigate(m.nav.ScrollLine(m.ctx, -1))
	case cmdDown:
		m.navigate(m.nav.ScrollLine(m.ctx, 1))
	case cmdPageUp:
		m.navigate(m.nav.ScrollPage(m.ctx, -1))
	case cmdPageDown:
		m.navigate(m.nav.ScrollPage(m.ctx, 1))
	case cmdAscend:
		m.navigate(m.nav.Ascend(m.ctx))
	case cmdDescend:
		m.navigate(m.nav.Descend(m.ctx))
	case cmdAdd, cmdRename, cmdEdit, cmdMove, cmdDelete, cmdCount, cmdSearch:
		if !m.nav.Loaded() {
			m.showError(inventory.ErrNotLoaded)
			return m, nil
		}
		m.runItemCommand(cmd)
	}
	return m, nil
}

// runItemCommand starts a command that needs an open store.
func (m *Model) runItemCommand(cmd command) {
	if cmd == cmdAdd {
		m.openPrompt(promptAdd, "")
		return
	}
	if cmd == cmdSearch {
		m.openPrompt(promptSearch, "")
		return
	}

	sel, ok := m.nav.Selected()
	if !ok {
		return
	}
	switch cmd {
	case cmdRename:
		m.openPrompt(promptRename, sel.Name)
	case cmdEdit:
		m.openEditor(sel)
	case cmdMove:
		m.report(m.nav.MoveSelected(m.ctx))
	case cmdDelete:
		m.modal = modalDeleteConfirm
	case cmdCount:
		m.openCount(sel)
	}
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.search
	cmd := lookup(searchKeys, msg)
	switch cmd {
	case cmdQuit:
		return m.quit()
	case cmdLeave:
		m.closeSearch()
	case cmdGoto, cmdGotoParent:
		if _, ok := s.Selected(); !ok {
			return m, nil
		}
		var err error
		if cmd == cmdGoto {
			err = s.GotoSelected(m.ctx, m.nav)
		} else {
			err = s.GotoParent(m.ctx, m.nav)
		}
		m.closeSearch()
		m.report(err)
	case cmdUp:
		m.report(s.ScrollLine(m.ctx, -1))
	case cmdDown:
		m.report(s.ScrollLine(m.ctx, 1))
	case cmdPageUp:
		m.report(s.ScrollPage(m.ctx, -1))
	case cmdPageDown:
		m.report(s.ScrollPage(m.ctx, 1))
	}
	return m, nil
}

func (m *Model) closeSearch() {
	m.search = nil
	m.screen = screenBrowse
}

func (m Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	buf := m.editor.buf
	switch lookup(editorKeys, msg) {
	case cmdQuit:
		return m.quit()
	case cmdSave:
		m.saveDescription()
	case cmdLeave:
		m.editor = nil
		m.screen = screenBrowse
	case cmdUp:
		buf.Up()
	case cmdDown:
		buf.Down()
	case cmdLeft:
		buf.Left()
	case cmdRight:
		buf.Right()
	case cmdHome:
		buf.Home()
	case cmdEnd:
		buf.End()
	case cmdBackspace:
		buf.Backspace()
	case cmdDeleteForward:
		buf.DeleteForward()
	case cmdNewline:
		buf.InsertLineBreak()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			for _, r := range msg.Runes {
				buf.Insert(r)
			}
			if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
				buf.Insert(' ')
			}
		}
	}
	return m, nil
}
