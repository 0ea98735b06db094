// Package nav implements the navigation engine: windowed paging over
// result sets, breadcrumb path stacks, the dual-panel tree navigator and
// search sessions.
package nav

import (
	"context"

	"github.com/wesm/invc/internal/inventory"
)

// Source is an ordered result set that a PageWindow pages through.
type Source interface {
	Count(ctx context.Context) (int, error)
	Page(ctx context.Context, limit, offset int) ([]inventory.Entry, error)
}

// childSource pages the children of one parent.
type childSource struct {
	store  inventory.Store
	parent int64
}

func (s childSource) Count(ctx context.Context) (int, error) {
	return s.store.CountChildren(ctx, s.parent)
}

func (s childSource) Page(ctx context.Context, limit, offset int) ([]inventory.Entry, error) {
	return s.store.PageChildren(ctx, s.parent, limit, offset)
}

// matchSource pages entries whose field matches a pattern.
type matchSource struct {
	store   inventory.Store
	field   inventory.Field
	pattern string
}

func (s matchSource) Count(ctx context.Context) (int, error) {
	return s.store.CountMatching(ctx, s.field, s.pattern)
}

func (s matchSource) Page(ctx context.Context, limit, offset int) ([]inventory.Entry, error) {
	return s.store.PageMatching(ctx, s.field, s.pattern, limit, offset)
}

// PageWindow caches one window of size rows from a Source. It reloads
// when the offset lands on the first or last row of a window, when the
// offset leaves the cached window, or when a reload has been forced.
type PageWindow struct {
	size      int
	pageStart int
	count     int
	rows      []inventory.Entry
	valid     bool
	forced    bool
}

// NewPageWindow returns an empty window of the given size (minimum 1).
func NewPageWindow(size int) *PageWindow {
	if size < 1 {
		size = 1
	}
	return &PageWindow{size: size, rows: make([]inventory.Entry, size)}
}

// PageStart returns the first offset covered by a window of size w.
func PageStart(offset, w int) int {
	if w < 1 || offset < 0 {
		return 0
	}
	return (offset / w) * w
}

// Size returns the window size.
func (w *PageWindow) Size() int { return w.size }

// Count returns the result set size observed at the last reload.
func (w *PageWindow) Count() int { return w.count }

// PageStart returns the offset of the first cached row.
func (w *PageWindow) PageStart() int { return w.pageStart }

// Rows returns the cached window; slots past the end of the result set
// are zero entries.
func (w *PageWindow) Rows() []inventory.Entry { return w.rows }

// Invalidate forces the next Ensure to reload.
func (w *PageWindow) Invalidate() { w.forced = true }

// Resize changes the window size and forces a reload.
func (w *PageWindow) Resize(size int) {
	if size < 1 {
		size = 1
	}
	if size != w.size {
		w.size = size
		w.rows = make([]inventory.Entry, size)
	}
	w.forced = true
}

// Row returns the cached entry at offset, or false if offset is outside
// the cached window or points at an empty slot.
func (w *PageWindow) Row(offset int) (inventory.Entry, bool) {
	if !w.valid || offset < w.pageStart || offset >= w.pageStart+w.size || offset >= w.count {
		return inventory.Entry{}, false
	}
	e := w.rows[offset-w.pageStart]
	return e, !e.IsZero()
}

func (w *PageWindow) needsReload(offset int) bool {
	if !w.valid || w.forced {
		return true
	}
	if r := offset % w.size; r == 0 || r == w.size-1 {
		return true
	}
	return PageStart(offset, w.size) != w.pageStart
}

// Ensure makes the window cover offset, reloading with exactly one count
// query and one page query when needed. It returns offset clamped to
// [0, max(count,1)).
func (w *PageWindow) Ensure(ctx context.Context, src Source, offset int) (int, error) {
	if offset < 0 {
		offset = 0
	}
	if !w.needsReload(offset) {
		return offset, nil
	}

	count, err := src.Count(ctx)
	if err != nil {
		return offset, err
	}
	offset = clampOffset(offset, count)
	start := PageStart(offset, w.size)

	page, err := src.Page(ctx, w.size, start)
	if err != nil {
		return offset, err
	}

	rows := make([]inventory.Entry, w.size)
	copy(rows, page)
	w.rows = rows
	w.count = count
	w.pageStart = start
	w.valid = true
	w.forced = false
	return offset, nil
}

func clampOffset(offset, count int) int {
	if count <= 0 || offset < 0 {
		return 0
	}
	if offset >= count {
		return count - 1
	}
	return offset
}

// scrollLine moves offset by delta rows inside [0, count).
func scrollLine(offset, delta, count int) int {
	return clampOffset(offset+delta, count)
}

// scrollPage moves offset by delta windows inside [0, count).
func scrollPage(offset, delta, size, count int) int {
	return clampOffset(offset+delta*size, count)
}
