package nav

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/wesm/invc/internal/inventory"
)

// Frame is one ancestor on a panel's breadcrumb. Named is false for
// frames rebuilt by Reconstruct until the node is visited by descent.
type Frame struct {
	ID          int64
	SavedOffset int
	Name        string
	Named       bool
}

// Label returns the frame name, or "#id" when the name is not known.
func (f Frame) Label() string {
	if f.Named {
		return f.Name
	}
	return "#" + strconv.FormatInt(f.ID, 10)
}

// PathStack is a root-first sequence of frames. The top frame's id is
// the panel's current parent; an empty stack means the panel is at root.
type PathStack struct {
	frames []Frame
}

// Push appends a frame for entry, remembering the offset to restore on Pop.
func (p *PathStack) Push(e inventory.Entry, offset int) {
	p.frames = append(p.frames, Frame{ID: e.ID, SavedOffset: offset, Name: e.Name, Named: true})
}

// Pop removes the top frame. It returns the popped frame's saved offset,
// the new parent (inventory.Root when the stack becomes empty) and false
// if the stack was already empty.
func (p *PathStack) Pop() (offset int, parent int64, ok bool) {
	if len(p.frames) == 0 {
		return 0, inventory.Root, false
	}
	top := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	return top.SavedOffset, p.Parent(), true
}

// Parent returns the id of the top frame, or inventory.Root.
func (p *PathStack) Parent() int64 {
	if len(p.frames) == 0 {
		return inventory.Root
	}
	return p.frames[len(p.frames)-1].ID
}

// Len returns the descent depth.
func (p *PathStack) Len() int { return len(p.frames) }

// Top returns the top frame.
func (p *PathStack) Top() (Frame, bool) {
	if len(p.frames) == 0 {
		return Frame{}, false
	}
	return p.frames[len(p.frames)-1], true
}

// Frames returns a copy of the frames, root first.
func (p *PathStack) Frames() []Frame {
	return append([]Frame(nil), p.frames...)
}

// Contains reports whether any frame has the given id.
func (p *PathStack) Contains(id int64) bool {
	for _, f := range p.frames {
		if f.ID == id {
			return true
		}
	}
	return false
}

// String renders the breadcrumb: "/ (root)" at root, otherwise
// "/label/label/".
func (p *PathStack) String() string {
	if len(p.frames) == 0 {
		return "/ (root)"
	}
	var b strings.Builder
	b.WriteByte('/')
	for _, f := range p.frames {
		b.WriteString(f.Label())
		b.WriteByte('/')
	}
	return b.String()
}

// ParentLookup is the subset of inventory.Store used by Reconstruct.
type ParentLookup interface {
	Parent(ctx context.Context, id int64) (int64, error)
}

// Reconstruct rebuilds the path from root to target by walking parent
// links. Frames carry offset 0 and no name. A target of inventory.Root
// yields an empty stack.
func Reconstruct(ctx context.Context, store ParentLookup, target int64) (PathStack, error) {
	var rev []Frame
	seen := make(map[int64]bool)
	for id := target; id != inventory.Root; {
		if seen[id] {
			return PathStack{}, fmt.Errorf("reconstruct path to %d: cycle at %d", target, id)
		}
		seen[id] = true
		rev = append(rev, Frame{ID: id})

		parent, err := store.Parent(ctx, id)
		if err != nil {
			return PathStack{}, fmt.Errorf("reconstruct path to %d: %w", target, err)
		}
		id = parent
	}

	frames := make([]Frame, len(rev))
	for i, f := range rev {
		frames[len(rev)-1-i] = f
	}
	return PathStack{frames: frames}, nil
}
