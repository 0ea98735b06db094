// Package editbuf implements the bounded character grid used to edit
// item descriptions.
//
// The grid mirrors a boxed window of height rows and width columns: row 0
// and the two outer columns belong to the frame, so text lives in rows
// 1..height-1 and in width-2 cells per row. Cursor columns are indexes
// into those cells.
package editbuf

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const blank = ' '

// Buffer is an in-progress multi-line edit.
type Buffer struct {
	height int
	width  int
	cells  [][]rune
	row    int
	col    int
	dirty  bool
}

// New returns an empty buffer for a height x width window. The window
// is at least 2 rows and 4 columns.
func New(height, width int) *Buffer {
	height = max(height, 2)
	width = max(width, 4)
	b := &Buffer{height: height, width: width}
	b.cells = make([][]rune, height)
	for i := range b.cells {
		b.cells[i] = blankRow(width - 2)
	}
	b.row = 1
	return b
}

func blankRow(n int) []rune {
	r := make([]rune, n)
	for i := range r {
		r[i] = blank
	}
	return r
}

// Height returns the window height, including the reserved row 0.
func (b *Buffer) Height() int { return b.height }

// Width returns the window width, including the two frame columns.
func (b *Buffer) Width() int { return b.width }

// ContentWidth returns the number of text cells per row.
func (b *Buffer) ContentWidth() int { return b.width - 2 }

func (b *Buffer) lastRow() int { return b.height - 1 }

func (b *Buffer) lastCol() int { return b.width - 3 }

// Modified reports whether the text changed since the last Seed or
// MarkSaved.
func (b *Buffer) Modified() bool { return b.dirty }

// MarkSaved clears the modified flag.
func (b *Buffer) MarkSaved() { b.dirty = false }

// Grow enlarges the window to at least height x width, keeping every
// cell and the cursor where they are. The window never shrinks.
func (b *Buffer) Grow(height, width int) {
	height = max(height, b.height)
	width = max(width, b.width)
	if height == b.height && width == b.width {
		return
	}
	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = blankRow(width - 2)
		if i < b.height {
			copy(cells[i], b.cells[i])
		}
	}
	b.cells, b.height, b.width = cells, height, width
}

// Cursor returns the cursor row (1-based, row 0 is reserved) and column.
func (b *Buffer) Cursor() (row, col int) { return b.row, b.col }

// Row returns the cells of row i as a string, blanks included.
func (b *Buffer) Row(i int) string {
	if i < 0 || i >= b.height {
		return ""
	}
	return string(b.cells[i])
}

// Cell returns the rune at (row, col), or a blank outside the grid.
func (b *Buffer) Cell(row, col int) rune {
	if row < 0 || row >= b.height || col < 0 || col > b.lastCol() {
		return blank
	}
	return b.cells[row][col]
}

// trimmedLen returns the length of row i without trailing blanks.
func (b *Buffer) trimmedLen(i int) int {
	n := len(b.cells[i])
	for n > 0 && b.cells[i][n-1] == blank {
		n--
	}
	return n
}

// Seed replaces the content with text, one stored line per row starting
// at row 1. Lines longer than a row continue on the next row; text past
// the last row is dropped.
func (b *Buffer) Seed(text string) {
	for i := range b.cells {
		b.cells[i] = blankRow(b.width - 2)
	}
	b.row, b.col = 1, 0
	b.dirty = false

	r, c := 1, 0
	for _, ch := range text {
		if ch == '\r' {
			continue
		}
		if ch == '\n' {
			if r >= b.lastRow() {
				return
			}
			r, c = r+1, 0
			continue
		}
		if c > b.lastCol() {
			if r >= b.lastRow() {
				return
			}
			r, c = r+1, 0
		}
		if ch == '\t' || !unicode.IsPrint(ch) {
			ch = blank
		}
		b.cells[r][c] = ch
		c++
	}
}

// Insertable reports whether r can be typed into a cell.
func Insertable(r rune) bool {
	return unicode.IsPrint(r) && runewidth.RuneWidth(r) == 1
}

// insertRowBelow opens a blank row at i+1, shifting later rows down and
// dropping the last row.
func (b *Buffer) insertRowBelow(i int) {
	last := b.lastRow()
	copy(b.cells[i+2:], b.cells[i+1:last])
	b.cells[i+1] = blankRow(b.width - 2)
}

// deleteRow removes row i, shifting later rows up and blanking the last row.
func (b *Buffer) deleteRow(i int) {
	last := b.lastRow()
	copy(b.cells[i:], b.cells[i+1:])
	b.cells[last] = blankRow(b.width - 2)
}

// Insert types ch at the cursor. The rest of the row shifts right and the
// row's last cell is lost. At the last column the row is split instead:
// ch and the cell under the cursor move to a new row below. It reports
// false when ch was not inserted.
func (b *Buffer) Insert(ch rune) bool {
	if !Insertable(ch) {
		return false
	}
	line := b.cells[b.row]
	if b.col < b.lastCol() {
		copy(line[b.col+1:], line[b.col:b.lastCol()])
		line[b.col] = ch
		b.col++
		b.dirty = true
		return true
	}
	if b.row >= b.lastRow() {
		return false
	}

	rest := strings.TrimRight(string(line[b.col:]), " ")
	b.insertRowBelow(b.row)
	for i := b.col; i <= b.lastCol(); i++ {
		line[i] = blank
	}
	next := b.cells[b.row+1]
	next[0] = ch
	copy(next[1:], []rune(rest))
	b.row, b.col = b.row+1, 1
	b.dirty = true
	return true
}

// InsertLineBreak splits the row at the cursor, moving the text from the
// cursor onward to a new row below. It is rejected on the last row.
func (b *Buffer) InsertLineBreak() bool {
	if b.row >= b.lastRow() {
		return false
	}
	line := b.cells[b.row]
	rest := append([]rune(nil), line[b.col:]...)
	b.insertRowBelow(b.row)
	for i := b.col; i <= b.lastCol(); i++ {
		line[i] = blank
	}
	copy(b.cells[b.row+1], rest)
	b.row, b.col = b.row+1, 0
	b.dirty = true
	return true
}

// Backspace deletes the cell left of the cursor. At column 0 it joins the
// row onto the row above when the joined text fits in fewer than
// ContentWidth cells; otherwise it does nothing.
func (b *Buffer) Backspace() bool {
	if b.col > 0 {
		line := b.cells[b.row]
		copy(line[b.col-1:], line[b.col:])
		line[b.lastCol()] = blank
		b.col--
		b.dirty = true
		return true
	}
	if b.row <= 1 {
		return false
	}

	above := b.trimmedLen(b.row - 1)
	cur := b.trimmedLen(b.row)
	if above+cur >= b.width-2 {
		return false
	}
	copy(b.cells[b.row-1][above:], b.cells[b.row][:cur])
	b.deleteRow(b.row)
	b.row, b.col = b.row-1, above
	b.dirty = true
	return true
}

// DeleteForward deletes the cell under the cursor.
func (b *Buffer) DeleteForward() {
	line := b.cells[b.row]
	copy(line[b.col:], line[b.col+1:])
	line[b.lastCol()] = blank
	b.dirty = true
}

func (b *Buffer) Up() {
	if b.row > 1 {
		b.row--
	}
}

func (b *Buffer) Down() {
	if b.row < b.lastRow() {
		b.row++
	}
}

func (b *Buffer) Left() {
	if b.col > 0 {
		b.col--
	}
}

func (b *Buffer) Right() {
	if b.col < b.lastCol() {
		b.col++
	}
}

func (b *Buffer) Home() {
	b.col = 0
}

// End moves the cursor just past the last non-blank cell of the row. When
// the last cell is occupied the cursor does not move.
func (b *Buffer) End() {
	c := b.lastCol()
	for c >= 0 && b.cells[b.row][c] == blank {
		c--
	}
	if c < b.lastCol() {
		b.col = c + 1
	}
}

// Text linearizes the buffer for storage: rows 1 through the last
// non-empty row, each without trailing blanks, joined by "\n".
func (b *Buffer) Text() string {
	last := 0
	for r := b.lastRow(); r >= 1; r-- {
		if b.trimmedLen(r) > 0 {
			last = r
			break
		}
	}
	if last == 0 {
		return ""
	}
	lines := make([]string, 0, last)
	for r := 1; r <= last; r++ {
		lines = append(lines, string(b.cells[r][:b.trimmedLen(r)]))
	}
	return strings.Join(lines, "\n")
}
