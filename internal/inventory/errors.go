package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned by every navigator operation while no store is open.
	ErrNotLoaded = errors.New("no database loaded")

	// ErrMoveRejected is returned when a move would make an entry its own descendant.
	ErrMoveRejected = errors.New("move rejected: destination is inside the moved item")

	// ErrNotFound is returned by point queries on an id that does not exist.
	ErrNotFound = errors.New("item not found")

	// ErrNegativeCount is returned by SetCount for n < 0.
	ErrNegativeCount = errors.New("count must not be negative")
)

// Write actions, used as WriteError.Action.
const (
	ActionAdd      = "add item to database"
	ActionRename   = "rename item"
	ActionMove     = "move item"
	ActionDelete   = "delete item"
	ActionCount    = "update item count"
	ActionDescribe = "save description"
)

// WriteError reports a store mutation that did not complete.
type WriteError struct {
	Action string
	Err    error
}

func (e *WriteError) Error() string {
	return "could not " + e.Action
}

func (e *WriteError) Unwrap() error { return e.Err }

// OpenError reports that a store could not be opened or created.
// It is fatal for an interactive session.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return "can't open database"
}

func (e *OpenError) Unwrap() error { return e.Err }

// Detail returns the full error chain for logs and CLI output.
func Detail(err error) string {
	var we *WriteError
	if errors.As(err, &we) && we.Err != nil {
		return fmt.Sprintf("%s: %v", we.Error(), we.Err)
	}
	var oe *OpenError
	if errors.As(err, &oe) && oe.Err != nil {
		return fmt.Sprintf("%s %s: %v", oe.Error(), oe.Path, oe.Err)
	}
	return err.Error()
}
