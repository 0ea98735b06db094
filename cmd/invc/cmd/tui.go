package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/wesm/invc/internal/fileutil"
	"github.com/wesm/invc/internal/inventory"
	"github.com/wesm/invc/internal/tui"
)

var openDefault bool

var tuiCmd = &cobra.Command{
	Use:   "tui [db-path]",
	Short: "Open the interactive terminal UI",
	Long: `Open the two-panel inventory browser.

With a database path (or --open-default), the database is opened at
startup; otherwise use F2 to open one.

Keys:
  F1 Help     F2 Open     F3 Add      F4 Rename   F5 Text
  F6 Move     F7 Delete   F8 Count    F9 Search   F10 Quit
  Tab         Switch panel
  ↑/↓         Previous/next item
  PgUp/PgDn   Previous/next page
  Enter/→     Open item
  ←/Bksp      Go to parent

F6 moves the selected item into the folder shown in the other panel.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func addTUIFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&openDefault, "open-default", false, "open the configured database at startup")
}

// openInventory is the TUI's store opener.
func openInventory(_ context.Context, path string) (inventory.Store, error) {
	s, err := openStore(path)
	if err != nil {
		return nil, &inventory.OpenError{Path: path, Err: err}
	}
	return s, nil
}

// openTUILog returns the logger used while the TUI owns the terminal.
// Logging goes to [log] file, or nowhere when it is empty.
func openTUILog() (*slog.Logger, func(), error) {
	path := cfg.Log.File
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	if err := fileutil.SecureMkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := fileutil.SecureOpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return l, func() { _ = f.Close() }, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("the TUI needs a terminal; use list or search for scripted access")
	}

	var dbPath string
	switch {
	case len(args) == 1:
		dbPath = args[0]
	case openDefault:
		dbPath = cfg.DatabasePath()
	}

	field, err := cfg.SearchField()
	if err != nil {
		return err
	}
	tuiLogger, closeLog, err := openTUILog()
	if err != nil {
		return err
	}
	defer closeLog()

	model := tui.New(cmd.Context(), tui.Options{
		DBPath:       dbPath,
		Version:      Version,
		Open:         openInventory,
		Logger:       tuiLogger,
		SearchField:  field,
		AutoWildcard: cfg.Search.AutoWildcard,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		defer m.Close()
		if ferr := m.Err(); ferr != nil {
			return errors.New(inventory.Detail(ferr))
		}
	}
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func init() {
	addTUIFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}
