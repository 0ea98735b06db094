package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/wesm/invc/internal/nav"
)

// Monochrome theme - adaptive for light and dark terminals
var (
	bgBase = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}
	fgDim  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}

	theme = map[styleID]lipgloss.Style{
		styleNormal: lipgloss.NewStyle().Background(bgBase),
		styleBorder: lipgloss.NewStyle().Background(bgBase),
		styleTitle:  lipgloss.NewStyle().Bold(true).Background(bgBase),
		styleHeader: lipgloss.NewStyle().Bold(true).Background(bgBase),
		styleSelected: lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}).
			Bold(true),
		styleKey: lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}),
		styleKeyDesc: lipgloss.NewStyle().Foreground(fgDim).Background(bgBase),
		styleFlash: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#996600", Dark: "#ffcc00"}). // Amber for visibility
			Background(bgBase),
		styleCursor: lipgloss.NewStyle().Reverse(true),
		styleDim:    lipgloss.NewStyle().Faint(true).Background(bgBase),
	}

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Background(bgBase)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1)

	focusedButtonStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Reverse(true)
)

// Smallest terminal the views are drawn in.
const (
	minWidth  = 24
	minHeight = 6
)

// Column widths shared by the panel and search tables.
const (
	idWidth  = 6
	qtyWidth = 5
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting || m.width == 0 || m.height == 0 {
		return ""
	}
	if m.width < minWidth || m.height < minHeight {
		return padRight("Terminal too small", m.width)
	}

	s := newSurface(m.height, m.width)
	switch m.screen {
	case screenSearch:
		m.drawSearch(s)
		m.drawKeyBar(s, searchKeys)
	case screenEditor:
		m.drawEditor(s)
		m.drawKeyBar(s, editorKeys)
	default:
		half := m.width / 2
		m.drawPanel(s, m.nav.Panel(0), 0, half, m.nav.ActiveIndex() == 0)
		m.drawPanel(s, m.nav.Panel(1), half, m.width-half, m.nav.ActiveIndex() == 1)
		m.drawKeyBar(s, browseKeys)
	}

	out := s.Render()
	if m.modal != modalNone {
		out = m.overlayModal(out)
	}
	return out
}

// panelRow formats one Id | Name | Qty table row for inner width w.
func panelRow(id, name, qty string, w int) string {
	nameW := max(w-idWidth-qtyWidth-2, 1)
	return padLeft(id, idWidth) + "│" + padRight(truncateRunes(name, nameW), nameW) + "│" + padLeft(qty, qtyWidth)
}

// searchRow formats one Id | Parent | Name | Qty table row.
func searchRow(id, parent, name, qty string, w int) string {
	nameW := max(w-2*idWidth-qtyWidth-3, 1)
	return padLeft(id, idWidth) + "│" + padLeft(parent, idWidth) + "│" +
		padRight(truncateRunes(name, nameW), nameW) + "│" + padLeft(qty, qtyWidth)
}

// drawFooter writes the selected name and the position onto a box's
// bottom border.
func drawFooter(s *surface, row, col, w int, name string, offset, count int) {
	if count == 0 {
		return
	}
	pos := fmt.Sprintf(" %d/%d ", offset+1, count)
	posCol := col + w - 1 - len(pos)
	if name != "" {
		s.PlaceText(row, col+2, truncateRunes(" "+name+" ", max(posCol-col-3, 0)), styleTitle)
	}
	s.PlaceText(row, posCol, pos, styleBorder)
}

func (m Model) drawPanel(s *surface, p *nav.Panel, col, w int, active bool) {
	h := m.height - 1
	border := styleDim
	if active {
		border = styleBorder
	}
	path := p.Path()
	s.Box(0, col, h, w, path.String(), border)

	inner := w - 2
	s.PlaceText(1, col+1, panelRow("Id", "Name", "Qty", inner), styleHeader)

	if !m.nav.Loaded() {
		if active {
			s.PlaceText(2, col+1, truncateRunes("No database loaded", inner), styleDim)
		}
		return
	}

	rows := p.Rows()
	for i := 0; i < m.windowSize() && i < len(rows); i++ {
		e := rows[i]
		st := styleNormal
		if active && p.PageStart()+i == p.Offset() {
			st = styleSelected
		}
		s.PlaceText(2+i, col+1, panelRow(itoa(e.ID), e.Name, itoa(int64(e.Count)), inner), st)
	}

	sel, _ := p.Selected()
	drawFooter(s, h-1, col, w, sel.Name, p.Offset(), p.Count())
}

func (m Model) drawSearch(s *surface) {
	h := m.height - 1
	sr := m.search
	title := fmt.Sprintf("Search by %s: %s", sr.Field(), sr.Pattern())
	s.Box(0, 0, h, m.width, title, styleBorder)

	inner := m.width - 2
	s.PlaceText(1, 1, searchRow("Id", "Parent", "Name", "Qty", inner), styleHeader)

	rows := sr.Rows()
	for i := 0; i < m.windowSize() && i < len(rows); i++ {
		e := rows[i]
		st := styleNormal
		if sr.PageStart()+i == sr.Offset() {
			st = styleSelected
		}
		s.PlaceText(2+i, 1, searchRow(itoa(e.ID), itoa(e.Parent), e.Name, itoa(int64(e.Count)), inner), st)
	}
	if sr.Count() == 0 {
		s.PlaceText(2, 1, truncateRunes("No matches", inner), styleDim)
		return
	}

	sel, _ := sr.Selected()
	drawFooter(s, h-1, 0, m.width, firstLine(sel.About), sr.Offset(), sr.Count())
}

func (m Model) drawEditor(s *surface) {
	ed := m.editor
	s.Box(0, 0, m.height-1, m.width, ed.target.Name, styleBorder)

	// The buffer may be larger than the window after a shrink.
	buf := ed.buf
	visH, visW := m.editorSize()
	for r := 1; r < min(buf.Height(), visH); r++ {
		s.PlaceText(r, 1, runewidth.Truncate(buf.Row(r), visW-2, ""), styleNormal)
	}
	row, col := buf.Cursor()
	if m.modal == modalNone && row < visH && col < visW-2 {
		s.MoveCursor(row, 1+col)
	}
}

// drawKeyBar fills the last row with the flash message, or with the
// key bar bindings of the current view.
func (m Model) drawKeyBar(s *surface, bindings []binding) {
	row := m.height - 1
	if m.flashMessage != "" {
		s.PlaceText(row, 0, truncateRunes(m.flashMessage, m.width), styleFlash)
		return
	}

	var bar []binding
	for _, b := range bindings {
		if b.bar {
			bar = append(bar, b)
		}
	}
	if len(bar) == 0 {
		return
	}
	slot := m.width / len(bar)
	for i, b := range bar {
		col := i * slot
		h := b.Help()
		end := s.PlaceText(row, col, h.Key, styleKey)
		s.PlaceText(row, end, truncateRunes(h.Desc, max(col+slot-end-1, 0)), styleKeyDesc)
	}
}

// helpBindings returns the bindings listed in the help modal.
func (m Model) helpBindings() []binding {
	switch m.screen {
	case screenSearch:
		return searchKeys
	case screenEditor:
		return editorKeys
	default:
		return browseKeys
	}
}

func (m Model) renderHelpModal() string {
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render("Inventory Commander"))
	sb.WriteString("\n\n")
	for _, b := range m.helpBindings() {
		h := b.Help()
		sb.WriteString(fmt.Sprintf("%-10s %s\n", h.Key, h.Desc))
	}
	sb.WriteString("\nPress any key to close")
	return sb.String()
}

func (m Model) renderErrorModal() string {
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render("Error"))
	sb.WriteString("\n\n")
	sb.WriteString(m.errMsg)
	if m.errDetail != "" {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Width(m.modalInputWidth()).Render(m.errDetail))
	}
	sb.WriteString("\n\n")
	if m.fatal != nil {
		sb.WriteString("[X] Quit")
	} else {
		sb.WriteString("[X] Dismiss")
	}
	return sb.String()
}

func (m Model) renderPromptModal() string {
	p := m.prompt
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render(p.title))
	sb.WriteString("\n\n")
	sb.WriteString(p.input.View())
	sb.WriteString("\n\n")
	labels := make([]string, len(p.buttons))
	for i, b := range p.buttons {
		st := buttonStyle
		if p.focus == i+1 {
			st = focusedButtonStyle
		}
		labels[i] = st.Render("[" + b.label + "]")
	}
	sb.WriteString(strings.Join(labels, " "))
	return sb.String()
}

func (m Model) renderCountModal() string {
	c := m.count
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render("Count: " + truncateRunes(c.target.Name, m.modalInputWidth())))
	sb.WriteString("\n\n")
	if c.typing {
		sb.WriteString(c.input.View())
		sb.WriteString("\n\n[Enter] Set  [Esc] Back")
	} else {
		sb.WriteString(fmt.Sprintf("  - %d +", c.value))
		sb.WriteString("\n\n[+/-] Change  [Tab] Type  [Enter] Save  [Esc] Cancel")
	}
	return sb.String()
}

func (m Model) renderDeleteConfirmModal() string {
	sel, ok := m.nav.Selected()
	if !ok {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render("Confirm Deletion"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Delete %q and everything inside it?\n\n", truncateRunes(sel.Name, m.modalInputWidth())))
	sb.WriteString("[Y] Yes, delete    [N] Cancel")
	return sb.String()
}

func (m Model) overlayModal(background string) string {
	var modalContent string

	switch m.modal {
	case modalHelp:
		modalContent = m.renderHelpModal()
	case modalError:
		modalContent = m.renderErrorModal()
	case modalPrompt:
		modalContent = m.renderPromptModal()
	case modalCount:
		modalContent = m.renderCountModal()
	case modalDeleteConfirm:
		modalContent = m.renderDeleteConfirmModal()
	}

	if modalContent == "" {
		return background
	}

	modal := modalStyle.Render(modalContent)

	bgLines := strings.Split(background, "\n")
	modalLines := strings.Split(modal, "\n")

	startLine := max((len(bgLines)-len(modalLines))/2, 0)
	modalWidth := lipgloss.Width(modal)
	leftPadding := max((m.width-modalWidth)/2, 0)

	// Overlay modal onto background, preserving background where modal doesn't cover
	for i, modalLine := range modalLines {
		lineIdx := startLine + i
		if lineIdx >= len(bgLines) {
			break
		}
		bgLine := bgLines[lineIdx]
		bgWidth := lipgloss.Width(bgLine)

		var composite strings.Builder
		if leftPadding > 0 {
			leftBg := truncateToWidth(bgLine, leftPadding)
			composite.WriteString(leftBg)
			if w := lipgloss.Width(leftBg); w < leftPadding {
				composite.WriteString(strings.Repeat(" ", leftPadding-w))
			}
		}

		composite.WriteString(modalLine)

		rightStart := leftPadding + modalWidth
		if rightStart < bgWidth {
			composite.WriteString(skipToWidth(bgLine, rightStart))
		}

		bgLines[lineIdx] = composite.String()
	}

	return strings.Join(bgLines, "\n")
}
