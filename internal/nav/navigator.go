package nav

import (
	"context"
	"fmt"

	"github.com/wesm/invc/internal/inventory"
)

// Navigator owns the two panels and the active panel index. Every
// operation is synchronous; all but SwitchFocus fail with
// inventory.ErrNotLoaded until a store is opened.
type Navigator struct {
	store  inventory.Store
	panels [2]*Panel
	active int
	size   int
}

// New returns an unloaded navigator whose panels show size rows.
func New(size int) *Navigator {
	if size < 1 {
		size = 1
	}
	return &Navigator{
		panels: [2]*Panel{newPanel(size), newPanel(size)},
		size:   size,
	}
}

// Open attaches store, resets both panels to root and loads them.
func (n *Navigator) Open(ctx context.Context, store inventory.Store) error {
	n.store = store
	n.panels = [2]*Panel{newPanel(n.size), newPanel(n.size)}
	n.active = 0
	for _, p := range n.panels {
		if err := n.reload(ctx, p); err != nil {
			n.store = nil
			return err
		}
	}
	return nil
}

// Close detaches the store and returns both panels to the unloaded state.
func (n *Navigator) Close() {
	n.store = nil
	n.panels = [2]*Panel{newPanel(n.size), newPanel(n.size)}
	n.active = 0
}

// Loaded reports whether a store is open.
func (n *Navigator) Loaded() bool { return n.store != nil }

// Store returns the open store, or nil.
func (n *Navigator) Store() inventory.Store { return n.store }

// WindowSize returns the number of visible rows per panel.
func (n *Navigator) WindowSize() int { return n.size }

// Panel returns panel i (0 or 1).
func (n *Navigator) Panel(i int) *Panel { return n.panels[i] }

// ActiveIndex returns the index of the focused panel.
func (n *Navigator) ActiveIndex() int { return n.active }

// Active returns the focused panel.
func (n *Navigator) Active() *Panel { return n.panels[n.active] }

// Other returns the panel that is not focused.
func (n *Navigator) Other() *Panel { return n.panels[1-n.active] }

// SwitchFocus toggles the focused panel.
func (n *Navigator) SwitchFocus() {
	n.active = 1 - n.active
}

// Selected returns the entry under the focused panel's cursor.
func (n *Navigator) Selected() (inventory.Entry, bool) {
	if !n.Loaded() {
		return inventory.Entry{}, false
	}
	return n.Active().Selected()
}

func (n *Navigator) source(p *Panel) Source {
	return childSource{store: n.store, parent: p.Parent()}
}

// ensure loads the window around the panel's offset if needed.
func (n *Navigator) ensure(ctx context.Context, p *Panel) error {
	off, err := p.window.Ensure(ctx, n.source(p), p.offset)
	if err != nil {
		return fmt.Errorf("load children of %d: %w", p.Parent(), err)
	}
	p.offset = off
	return nil
}

// reload forces a count and page query for p.
func (n *Navigator) reload(ctx context.Context, p *Panel) error {
	p.window.Invalidate()
	return n.ensure(ctx, p)
}

// reloadSharing reloads p, and the other panel when both list the same parent.
func (n *Navigator) reloadSharing(ctx context.Context, p *Panel) error {
	if err := n.reload(ctx, p); err != nil {
		return err
	}
	for _, o := range n.panels {
		if o != p && o.sharesParent(p) {
			return n.reload(ctx, o)
		}
	}
	return nil
}

// Resize changes the window size of both panels.
func (n *Navigator) Resize(ctx context.Context, size int) error {
	if size < 1 {
		size = 1
	}
	n.size = size
	for _, p := range n.panels {
		p.window.Resize(size)
	}
	if !n.Loaded() {
		return nil
	}
	for _, p := range n.panels {
		if err := n.ensure(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Refresh reloads both panels.
func (n *Navigator) Refresh(ctx context.Context) error {
	if !n.Loaded() {
		return inventory.ErrNotLoaded
	}
	for _, p := range n.panels {
		if err := n.reload(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Descend enters the selected entry of the focused panel.
func (n *Navigator) Descend(ctx context.Context) error {
	if !n.Loaded() {
		return inventory.ErrNotLoaded
	}
	p := n.Active()
	e, ok := p.Selected()
	if !ok {
		return nil
	}
	p.path.Push(e, p.offset)
	p.offset = 0
	return n.reload(ctx, p)
}

// Ascend returns the focused panel to its parent's listing, restoring
// the offset it had before descending. It is a no-op at root.
func (n *Navigator) Ascend(ctx context.Context) error {
	if !n.Loaded() {
		return inventory.ErrNotLoaded
	}
	p := n.Active()
	off, _, ok := p.path.Pop()
	if !ok {
		return nil
	}
	p.offset = off
	return n.reload(ctx, p)
}

// ScrollLine moves the focused panel's cursor by delta rows.
func (n *Navigator) ScrollLine(ctx context.Context, delta int) error {
	if !n.Loaded() {
		return inventory.ErrNotLoaded
	}
	p := n.Active()
	next := scrollLine(p.offset, delta, p.Count())
	if next == p.offset {
		return nil
	}
	p.offset = next
	return n.ensure(ctx, p)
}

// ScrollPage moves the focused panel's cursor by delta windows.
func (n *Navigator) ScrollPage(ctx context.Context, delta int) error {
	if !n.Loaded() {
		return inventory.ErrNotLoaded
	}
	p := n.Active()
	next := scrollPage(p.offset, delta, n.size, p.Count())
	if next == p.offset {
		return nil
	}
	p.offset = next
	return n.ensure(ctx, p)
}

// MoveSelected reparents the focused panel's selected entry under the
// other panel's parent. It returns inventory.ErrMoveRejected, without
// writing, when the destination is the entry itself or lies inside it.
func (n *Navigator) MoveSelected(ctx context.Context) error {
	if !n.Loaded() {
		return inventory.ErrNotLoaded
	}
	from, to := n.Active(), n.Other()
	e, ok := from.Selected()
	if !ok {
		return nil
	}
	dest := to.Parent()
	if dest == from.Parent() {
		return nil
	}
	if to.path.Contains(e.ID) {
		return inventory.ErrMoveRejected
	}
	inside, err := n.isAncestor(ctx, e.ID, dest)
	if err != nil {
		return err
	}
	if inside {
		return inventory.ErrMoveRejected
	}

	if err := n.store.SetParent(ctx, e.ID, dest); err != nil {
		return &inventory.WriteError{Action: inventory.ActionMove, Err: err}
	}
	if err := n.reload(ctx, from); err != nil {
		return err
	}
	return n.reload(ctx, to)
}

// isAncestor walks parent links from id up to root looking for anc.
func (n *Navigator) isAncestor(ctx context.Context, anc, id int64) (bool, error) {
	seen := make(map[int64]bool)
	for id != inventory.Root {
		if id == anc {
			return true, nil
		}
		if seen[id] {
			return false, fmt.Errorf("parent chain of %d loops at %d", anc, id)
		}
		seen[id] = true
		parent, err := n.store.Parent(ctx, id)
		if err != nil {
			return false, fmt.Errorf("check ancestors of %d: %w", id, err)
		}
		id = parent
	}
	return false, nil
}

// DeleteSelected deletes the focused panel's selected entry and its
// subtree. When the last row was deleted the cursor moves up one row.
func (n *Navigator) DeleteSelected(ctx context.Context) error {
	if !n.Loaded() {
		return inventory.ErrNotLoaded
	}
	p := n.Active()
	e, ok := p.Selected()
	if !ok {
		return nil
	}
	if err := n.store.Delete(ctx, e.ID); err != nil {
		return &inventory.WriteError{Action: inventory.ActionDelete, Err: err}
	}
	if p.offset == p.Count()-1 {
		p.offset = max(0, p.offset-1)
	}
	other := n.Other()
	if other.truncateAt(e.ID) {
		if err := n.reload(ctx, other); err != nil {
			return err
		}
	}
	return n.reloadSharing(ctx, p)
}

// Add inserts a new entry named name under the focused panel's parent
// and returns its id.
func (n *Navigator) Add(ctx context.Context, name string) (int64, error) {
	if !n.Loaded() {
		return 0, inventory.ErrNotLoaded
	}
	p := n.Active()
	id, err := n.store.Insert(ctx, p.Parent(), name)
	if err != nil {
		return 0, &inventory.WriteError{Action: inventory.ActionAdd, Err: err}
	}
	return id, n.reloadSharing(ctx, p)
}

// RenameSelected renames the focused panel's selected entry.
func (n *Navigator) RenameSelected(ctx context.Context, name string) error {
	if !n.Loaded() {
		return inventory.ErrNotLoaded
	}
	p := n.Active()
	e, ok := p.Selected()
	if !ok {
		return nil
	}
	if err := n.store.Rename(ctx, e.ID, name); err != nil {
		return &inventory.WriteError{Action: inventory.ActionRename, Err: err}
	}
	for _, o := range n.panels {
		o.renameFrames(e.ID, name)
	}
	return n.reloadSharing(ctx, p)
}

// SetSelectedCount sets the count of the focused panel's selected entry.
func (n *Navigator) SetSelectedCount(ctx context.Context, count int) error {
	if !n.Loaded() {
		return inventory.ErrNotLoaded
	}
	if count < 0 {
		return inventory.ErrNegativeCount
	}
	p := n.Active()
	e, ok := p.Selected()
	if !ok {
		return nil
	}
	if err := n.store.SetCount(ctx, e.ID, count); err != nil {
		return &inventory.WriteError{Action: inventory.ActionCount, Err: err}
	}
	return n.reloadSharing(ctx, p)
}

// Description returns the stored description of id.
func (n *Navigator) Description(ctx context.Context, id int64) (string, error) {
	if !n.Loaded() {
		return "", inventory.ErrNotLoaded
	}
	about, err := n.store.Description(ctx, id)
	if err != nil {
		return "", fmt.Errorf("load description of %d: %w", id, err)
	}
	return about, nil
}

// SaveDescription writes text as the description of id.
func (n *Navigator) SaveDescription(ctx context.Context, id int64, text string) error {
	if !n.Loaded() {
		return inventory.ErrNotLoaded
	}
	if err := n.store.SetDescription(ctx, id, text); err != nil {
		return &inventory.WriteError{Action: inventory.ActionDescribe, Err: err}
	}
	for _, p := range n.panels {
		p.window.Invalidate()
		if err := n.ensure(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Jump points the focused panel at target's children with a path
// rebuilt from parent links. Rebuilt frames carry no names.
func (n *Navigator) Jump(ctx context.Context, target int64) error {
	if !n.Loaded() {
		return inventory.ErrNotLoaded
	}
	path, err := Reconstruct(ctx, n.store, target)
	if err != nil {
		return err
	}
	p := n.Active()
	p.path = path
	p.offset = 0
	return n.reload(ctx, p)
}
