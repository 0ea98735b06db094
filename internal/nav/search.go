package nav

import (
	"context"
	"fmt"

	"github.com/wesm/invc/internal/inventory"
)

// SearchSession pages through entries matching a pattern on one field.
type SearchSession struct {
	store   inventory.Store
	field   inventory.Field
	pattern string
	offset  int
	window  *PageWindow
}

// NewSearch runs a search and loads the first window of results.
func NewSearch(ctx context.Context, store inventory.Store, field inventory.Field, pattern string, size int) (*SearchSession, error) {
	if store == nil {
		return nil, inventory.ErrNotLoaded
	}
	s := &SearchSession{
		store:   store,
		field:   field,
		pattern: pattern,
		window:  NewPageWindow(size),
	}
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SearchSession) source() Source {
	return matchSource{store: s.store, field: s.field, pattern: s.pattern}
}

func (s *SearchSession) ensure(ctx context.Context) error {
	off, err := s.window.Ensure(ctx, s.source(), s.offset)
	if err != nil {
		return fmt.Errorf("search %s for %q: %w", s.field, s.pattern, err)
	}
	s.offset = off
	return nil
}

// Field returns the searched field.
func (s *SearchSession) Field() inventory.Field { return s.field }

// Pattern returns the search pattern.
func (s *SearchSession) Pattern() string { return s.pattern }

// Offset returns the selected result's index.
func (s *SearchSession) Offset() int { return s.offset }

// Count returns the number of matches.
func (s *SearchSession) Count() int { return s.window.Count() }

// PageStart returns the offset of the first visible result.
func (s *SearchSession) PageStart() int { return s.window.PageStart() }

// Rows returns the visible window, padded with zero entries.
func (s *SearchSession) Rows() []inventory.Entry { return s.window.Rows() }

// Selected returns the result under the cursor.
func (s *SearchSession) Selected() (inventory.Entry, bool) {
	return s.window.Row(s.offset)
}

// ScrollLine moves the cursor by delta results.
func (s *SearchSession) ScrollLine(ctx context.Context, delta int) error {
	next := scrollLine(s.offset, delta, s.Count())
	if next == s.offset {
		return nil
	}
	s.offset = next
	return s.ensure(ctx)
}

// ScrollPage moves the cursor by delta windows.
func (s *SearchSession) ScrollPage(ctx context.Context, delta int) error {
	next := scrollPage(s.offset, delta, s.window.Size(), s.Count())
	if next == s.offset {
		return nil
	}
	s.offset = next
	return s.ensure(ctx)
}

// Resize changes the window size and reloads.
func (s *SearchSession) Resize(ctx context.Context, size int) error {
	s.window.Resize(size)
	return s.ensure(ctx)
}

// GotoSelected points the navigator's focused panel at the selected
// result's children. It is a no-op without a selection.
func (s *SearchSession) GotoSelected(ctx context.Context, n *Navigator) error {
	e, ok := s.Selected()
	if !ok {
		return nil
	}
	return n.Jump(ctx, e.ID)
}

// GotoParent points the navigator's focused panel at the listing that
// contains the selected result.
func (s *SearchSession) GotoParent(ctx context.Context, n *Navigator) error {
	e, ok := s.Selected()
	if !ok {
		return nil
	}
	return n.Jump(ctx, e.Parent)
}
