package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// command is the action bound to a key in one context.
type command int

const (
	cmdNone command = iota

	// Main view.
	cmdHelp
	cmdOpen
	cmdAdd
	cmdRename
	cmdEdit
	cmdMove
	cmdDelete
	cmdCount
	cmdSearch
	cmdQuit
	cmdSwitch
	cmdUp
	cmdDown
	cmdPageUp
	cmdPageDown
	cmdAscend
	cmdDescend

	// Editor.
	cmdSave
	cmdLeave
	cmdLeft
	cmdRight
	cmdHome
	cmdEnd
	cmdBackspace
	cmdDeleteForward
	cmdNewline

	// Search view.
	cmdGoto
	cmdGotoParent
)

// binding maps keys to a command. Bindings with bar set are shown in
// the key bar, in order.
type binding struct {
	key.Binding
	cmd command
	bar bool
}

func bind(cmd command, bar bool, help, desc string, keys ...string) binding {
	return binding{
		Binding: key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc)),
		cmd:     cmd,
		bar:     bar,
	}
}

var browseKeys = []binding{
	bind(cmdHelp, true, "F1", "Help", "f1"),
	bind(cmdOpen, true, "F2", "Open", "f2"),
	bind(cmdAdd, true, "F3", "Add", "f3"),
	bind(cmdRename, true, "F4", "Rename", "f4"),
	bind(cmdEdit, true, "F5", "Text", "f5"),
	bind(cmdMove, true, "F6", "Move", "f6"),
	bind(cmdDelete, true, "F7", "Delete", "f7"),
	bind(cmdCount, true, "F8", "Count", "f8"),
	bind(cmdSearch, true, "F9", "Search", "f9"),
	bind(cmdQuit, true, "F10", "Quit", "f10", "ctrl+c"),
	bind(cmdSwitch, false, "Tab", "Switch panel", "tab"),
	bind(cmdUp, false, "↑", "Previous item", "up"),
	bind(cmdDown, false, "↓", "Next item", "down"),
	bind(cmdPageUp, false, "PgUp", "Previous page", "pgup"),
	bind(cmdPageDown, false, "PgDn", "Next page", "pgdown"),
	bind(cmdAscend, false, "←/Bksp", "Go to parent", "left", "backspace"),
	bind(cmdDescend, false, "Enter/→", "Open item", "enter", "right"),
}

var editorKeys = []binding{
	bind(cmdSave, true, "F2", "Save", "f2", "ctrl+s"),
	bind(cmdLeave, true, "F3", "Leave", "f3", "esc"),
	bind(cmdUp, false, "↑", "Up", "up"),
	bind(cmdDown, false, "↓", "Down", "down"),
	bind(cmdLeft, false, "←", "Left", "left"),
	bind(cmdRight, false, "→", "Right", "right"),
	bind(cmdHome, false, "Home", "Start of line", "home"),
	bind(cmdEnd, false, "End", "End of line", "end"),
	bind(cmdBackspace, false, "Bksp", "Delete left", "backspace"),
	bind(cmdDeleteForward, false, "Del", "Delete", "delete"),
	bind(cmdNewline, false, "Enter", "New line", "enter"),
	bind(cmdQuit, false, "^C", "Quit", "ctrl+c"),
}

var searchKeys = []binding{
	bind(cmdGoto, true, "F1", "GoTo", "f1", "enter"),
	bind(cmdGotoParent, true, "F2", "Parent", "f2"),
	bind(cmdLeave, true, "F3", "Leave", "f3", "esc"),
	bind(cmdUp, false, "↑", "Previous result", "up"),
	bind(cmdDown, false, "↓", "Next result", "down"),
	bind(cmdPageUp, false, "PgUp", "Previous page", "pgup"),
	bind(cmdPageDown, false, "PgDn", "Next page", "pgdown"),
	bind(cmdQuit, false, "^C", "Quit", "ctrl+c"),
}

// lookup returns the command of the first binding matching msg.
func lookup(bindings []binding, msg tea.KeyMsg) command {
	for _, b := range bindings {
		if key.Matches(msg, b.Binding) {
			return b.cmd
		}
	}
	return cmdNone
}
