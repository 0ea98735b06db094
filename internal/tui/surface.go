package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// styleID selects one of the theme styles for a cell.
type styleID int

const (
	styleNormal styleID = iota
	styleBorder
	styleTitle
	styleHeader
	styleSelected
	styleKey
	styleKeyDesc
	styleFlash
	styleCursor
	styleDim
)

// wideTail marks the cell covered by the right half of a wide rune.
const wideTail = rune(-1)

type cell struct {
	ch    rune
	style styleID
}

// surface is a character-cell grid that views draw into before it is
// rendered to a string.
type surface struct {
	rows, cols int
	cells      [][]cell
	curRow     int
	curCol     int
	showCursor bool
}

func newSurface(rows, cols int) *surface {
	rows, cols = max(rows, 0), max(cols, 0)
	s := &surface{rows: rows, cols: cols, cells: make([][]cell, rows)}
	for i := range s.cells {
		s.cells[i] = make([]cell, cols)
		for j := range s.cells[i] {
			s.cells[i][j] = cell{ch: ' '}
		}
	}
	return s
}

// Size returns the grid dimensions.
func (s *surface) Size() (rows, cols int) { return s.rows, s.cols }

func (s *surface) inside(row, col int) bool {
	return row >= 0 && row < s.rows && col >= 0 && col < s.cols
}

// PlaceChar writes one rune at (row, col). Writes outside the grid are
// dropped.
func (s *surface) PlaceChar(row, col int, ch rune, st styleID) {
	if !s.inside(row, col) {
		return
	}
	s.cells[row][col] = cell{ch: ch, style: st}
}

// PlaceText writes text starting at (row, col), clipped at the right
// edge. It returns the column after the last cell written.
func (s *surface) PlaceText(row, col int, text string, st styleID) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > s.cols {
			break
		}
		s.PlaceChar(row, col, r, st)
		if w == 2 {
			s.PlaceChar(row, col+1, wideTail, st)
		}
		col += w
	}
	return col
}

// ReadChar returns the rune at (row, col), or a blank outside the grid.
func (s *surface) ReadChar(row, col int) rune {
	if !s.inside(row, col) {
		return ' '
	}
	return s.cells[row][col].ch
}

// MoveCursor places the visible cursor.
func (s *surface) MoveCursor(row, col int) {
	s.curRow, s.curCol = row, col
	s.showCursor = s.inside(row, col)
}

// Fill sets every cell of a rectangle to ch.
func (s *surface) Fill(row, col, h, w int, ch rune, st styleID) {
	for r := row; r < row+h; r++ {
		for c := col; c < col+w; c++ {
			s.PlaceChar(r, c, ch, st)
		}
	}
}

// Box draws a single-line frame with an optional title on the top edge.
func (s *surface) Box(row, col, h, w int, title string, st styleID) {
	if h < 2 || w < 2 {
		return
	}
	right, bottom := col+w-1, row+h-1
	for c := col + 1; c < right; c++ {
		s.PlaceChar(row, c, '─', st)
		s.PlaceChar(bottom, c, '─', st)
	}
	for r := row + 1; r < bottom; r++ {
		s.PlaceChar(r, col, '│', st)
		s.PlaceChar(r, right, '│', st)
	}
	s.PlaceChar(row, col, '┌', st)
	s.PlaceChar(row, right, '┐', st)
	s.PlaceChar(bottom, col, '└', st)
	s.PlaceChar(bottom, right, '┘', st)
	if title != "" && w > 4 {
		s.PlaceText(row, col+2, truncateRunes(" "+title+" ", w-4), styleTitle)
	}
}

// Render converts the grid to styled lines, grouping runs of equal style.
func (s *surface) Render() string {
	lines := make([]string, s.rows)
	for r := 0; r < s.rows; r++ {
		var line strings.Builder
		var run strings.Builder
		cur := styleID(-1)
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(theme[cur].Render(run.String()))
				run.Reset()
			}
		}
		for c := 0; c < s.cols; c++ {
			cl := s.cells[r][c]
			if cl.ch == wideTail {
				continue
			}
			st := cl.style
			if s.showCursor && r == s.curRow && c == s.curCol {
				st = styleCursor
			}
			if st != cur {
				flush()
				cur = st
			}
			run.WriteRune(cl.ch)
		}
		flush()
		lines[r] = line.String()
	}
	return strings.Join(lines, "\n")
}

// String returns the grid contents without styling.
func (s *surface) String() string {
	lines := make([]string, s.rows)
	for r := 0; r < s.rows; r++ {
		var b strings.Builder
		for c := 0; c < s.cols; c++ {
			if ch := s.cells[r][c].ch; ch != wideTail {
				b.WriteRune(ch)
			}
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}
