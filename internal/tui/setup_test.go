package tui

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/wesm/invc/internal/inventory"
	"github.com/wesm/invc/internal/inventory/inventorytest"
)

// ansiStart is the escape sequence prefix found in styled terminal output.
const ansiStart = "\x1b["

// colorProfileMu serializes tests that mutate the global lipgloss color profile.
var colorProfileMu sync.Mutex

// forceColorProfile sets lipgloss to ANSI color output for tests that assert
// on styled output. It acquires colorProfileMu to prevent data races with
// parallel tests and restores the original profile via t.Cleanup.
func forceColorProfile(t *testing.T) {
	t.Helper()
	colorProfileMu.Lock()
	orig := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(orig)
		colorProfileMu.Unlock()
	})
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// =============================================================================
// Test Fixtures
// =============================================================================

// TestModelBuilder helps construct Model instances for testing
type TestModelBuilder struct {
	store        *inventorytest.MemStore
	openErr      error
	width        int
	height       int
	dbPath       string
	version      string
	searchField  inventory.Field
	autoWildcard bool
	modal        *modalType
}

func NewBuilder() *TestModelBuilder {
	return &TestModelBuilder{
		width:   100,
		height:  12,
		dbPath:  "/tmp/test.db",
		version: "test123",
	}
}

// WithStore sets the store returned by the opener.
func (b *TestModelBuilder) WithStore(st *inventorytest.MemStore) *TestModelBuilder {
	b.store = st
	return b
}

// WithOpenError makes the opener fail with err.
func (b *TestModelBuilder) WithOpenError(err error) *TestModelBuilder {
	b.openErr = err
	return b
}

// WithoutDatabase starts the model with no path, so panels stay unloaded.
func (b *TestModelBuilder) WithoutDatabase() *TestModelBuilder {
	b.dbPath = ""
	return b
}

func (b *TestModelBuilder) WithSize(width, height int) *TestModelBuilder {
	b.width = width
	b.height = height
	return b
}

func (b *TestModelBuilder) WithSearch(field inventory.Field, autoWildcard bool) *TestModelBuilder {
	b.searchField = field
	b.autoWildcard = autoWildcard
	return b
}

func (b *TestModelBuilder) WithModal(mt modalType) *TestModelBuilder {
	b.modal = &mt
	return b
}

// opener returns an Opener serving the builder's store or error.
func (b *TestModelBuilder) opener() Opener {
	return func(_ context.Context, path string) (inventory.Store, error) {
		if b.openErr != nil {
			return nil, b.openErr
		}
		if b.store == nil {
			return nil, errors.New("no store")
		}
		return b.store, nil
	}
}

// Build sizes the model and runs the startup open, if any.
func (b *TestModelBuilder) Build(t *testing.T) Model {
	t.Helper()
	m := New(context.Background(), Options{
		DBPath:       b.dbPath,
		Version:      b.version,
		Open:         b.opener(),
		SearchField:  b.searchField,
		AutoWildcard: b.autoWildcard,
	})
	m, _ = sendMsg(t, m, tea.WindowSizeMsg{Width: b.width, Height: b.height})
	if cmd := m.Init(); cmd != nil {
		m, _ = sendMsg(t, m, cmd())
	}
	m.flashMessage = ""
	if b.store != nil {
		b.store.ResetCalls()
	}
	if b.modal != nil {
		m.modal = *b.modal
	}
	return m
}

// sampleStore returns a store with two root items, the first holding
// three children.
//
//	1 Shelf
//	  3 Box
//	  4 Bin
//	  5 Jar
//	2 Crate
func sampleStore() *inventorytest.MemStore {
	st := inventorytest.New()
	shelf := st.Add(inventory.Root, "Shelf", 1)
	st.Add(inventory.Root, "Crate", 2)
	st.Add(shelf, "Box", 3)
	st.AddWithAbout(shelf, "Bin", "blue plastic\nlid missing")
	st.Add(shelf, "Jar", 7)
	return st
}

// Key constructors.
var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyBksp  = tea.KeyMsg{Type: tea.KeyBackspace}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
	keyPgDn  = tea.KeyMsg{Type: tea.KeyPgDown}
)

func keyF(n int) tea.KeyMsg {
	return tea.KeyMsg{Type: []tea.KeyType{
		tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5,
		tea.KeyF6, tea.KeyF7, tea.KeyF8, tea.KeyF9, tea.KeyF10,
	}[n-1]}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// sendKey sends a key message to the model and returns the updated concrete Model.
func sendKey(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	newM, cmd := m.Update(k)
	return newM.(Model), cmd
}

// sendKeys sends each key in order, discarding commands.
func sendKeys(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = sendKey(t, m, k)
	}
	return m
}

// typeText sends s one rune at a time.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = sendKey(t, m, keyRunes(string(r)))
	}
	return m
}

// sendMsg sends any tea.Msg through Update and returns the concrete Model.
func sendMsg(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	newM, cmd := m.Update(msg)
	return newM.(Model), cmd
}

// assertModal checks that the model is in the expected modal state
func assertModal(t *testing.T, m Model, want modalType) {
	t.Helper()
	if m.modal != want {
		t.Errorf("modal = %v, want %v", m.modal, want)
	}
}

func assertScreen(t *testing.T, m Model, want screen) {
	t.Helper()
	if m.screen != want {
		t.Errorf("screen = %v, want %v", m.screen, want)
	}
}

// selectedName returns the name of the focused panel's selection.
func selectedName(m Model) string {
	e, _ := m.nav.Selected()
	return e.Name
}

// isQuit reports whether cmd is tea.Quit.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// plainView renders m without styling.
func plainView(m Model) string {
	return stripANSI(m.View())
}

// viewLines splits the plain view into rows.
func viewLines(m Model) []string {
	return strings.Split(plainView(m), "\n")
}
