package nav

import "github.com/wesm/invc/internal/inventory"

// Panel is one browsing view locked onto a parent node and a scroll
// position. Its parent is always the top of its path.
type Panel struct {
	path   PathStack
	offset int
	window *PageWindow
}

func newPanel(size int) *Panel {
	return &Panel{window: NewPageWindow(size)}
}

// Parent returns the id whose children the panel lists.
func (p *Panel) Parent() int64 { return p.path.Parent() }

// Offset returns the selected row's index in the parent's children.
func (p *Panel) Offset() int { return p.offset }

// Count returns the number of children of Parent at the last reload.
func (p *Panel) Count() int { return p.window.Count() }

// PageStart returns the offset of the first visible row.
func (p *Panel) PageStart() int { return p.window.PageStart() }

// Rows returns the visible window, padded with zero entries.
func (p *Panel) Rows() []inventory.Entry { return p.window.Rows() }

// Path returns the panel's breadcrumb. Callers must not modify it.
func (p *Panel) Path() *PathStack { return &p.path }

// Selected returns the entry under the cursor.
func (p *Panel) Selected() (inventory.Entry, bool) {
	return p.window.Row(p.offset)
}

// sharesParent reports whether both panels list the same parent.
func (p *Panel) sharesParent(o *Panel) bool {
	return p.Parent() == o.Parent()
}

// renameFrames updates the label of any breadcrumb frame for id.
func (p *Panel) renameFrames(id int64, name string) {
	for i := range p.path.frames {
		if p.path.frames[i].ID == id {
			p.path.frames[i].Name = name
			p.path.frames[i].Named = true
		}
	}
}

// truncateAt pops frames until id is no longer on the path. It reports
// whether anything was popped.
func (p *Panel) truncateAt(id int64) bool {
	popped := false
	for p.path.Contains(id) {
		off, _, _ := p.path.Pop()
		p.offset = off
		popped = true
	}
	return popped
}
