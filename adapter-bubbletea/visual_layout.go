package adapter_bubbletea

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	editor "github.com/ionut-t/eta/core"
)

// rowLayout is the part of the monospace layout the renderer needs beyond
// the editor.Layout contract.
type rowLayout interface {
	editor.Layout
	RowSpan(row int) (start, end int)
	IsWrapped(row int) bool
}

// lineNumberWidth computes the width needed for line numbers
func (m *Model) lineNumberWidth(doc *editor.Document) int {
	if !m.showLineNumbers || doc == nil {
		return 0
	}

	totalLines := strings.Count(doc.Buffer.String(), "\n") + 1
	maxWidth := len(strconv.Itoa(max(1, totalLines)))
	lineNumWidth := max(4, maxWidth) + 1
	return min(lineNumWidth, 10)
}

// renderVisibleSlice draws the rows of the latest frame's window into the
// viewport.
func (m *Model) renderVisibleSlice(doc *editor.Document) {
	layout, ok := m.response.Layout.(rowLayout)
	if !ok {
		m.viewport.SetContent(m.response.Layout.Text())
		return
	}

	if doc.Buffer.Len() == 0 && m.placeholder != "" && !m.isFocused {
		m.viewport.SetContent(m.theme.PlaceholderStyle.Render(m.placeholder))
		return
	}

	runes := []rune(layout.Text())
	window := m.response.Window
	gutter := m.lineNumberWidth(doc)
	tabWidth := m.editor.Config().TabWidth

	selStart, selEnd := m.response.Selection.SortedIndices()
	cursor := m.response.Cursor

	firstRow := min(window.FirstLine, layout.RowCount())
	// Number the first visible row by counting the newlines above it.
	rowStart, _ := layout.RowSpan(firstRow)
	lineNumber := strings.Count(string(runes[:rowStart]), "\n") + 1
	cursorLine := strings.Count(string(runes[:cursor.Char.Index]), "\n") + 1
	startsLine := firstRow == 0 || !layout.IsWrapped(firstRow-1)

	lines := make([]string, 0, m.viewport.Height)
	for row := firstRow; row < layout.RowCount() && len(lines) < m.viewport.Height; row++ {
		var b strings.Builder

		if gutter > 0 {
			b.WriteString(m.renderLineNumber(lineNumber, cursorLine, startsLine, gutter))
		}

		start, end := layout.RowSpan(row)
		for i := start; i < end; i++ {
			text := string(runes[i])
			if runes[i] == '\t' {
				text = strings.Repeat(" ", tabWidth)
			}

			style := lipgloss.NewStyle()
			if i >= selStart && i < selEnd {
				style = m.theme.SelectionStyle
			}
			if m.isFocused && row == cursor.Row && i == cursor.Char.Index {
				style = m.theme.CursorStyle
			}
			b.WriteString(style.Render(text))
		}

		// The cursor can sit after the last character of a row.
		if m.isFocused && row == cursor.Row && cursor.Char.Index == end {
			b.WriteString(m.theme.CursorStyle.Render(" "))
		}

		lines = append(lines, b.String())

		startsLine = !layout.IsWrapped(row)
		if startsLine {
			lineNumber++
		}
	}

	for len(lines) < m.viewport.Height {
		if gutter > 0 {
			lines = append(lines, m.theme.TildeStyle.Width(gutter).Render("~"))
		} else {
			lines = append(lines, "")
		}
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.SetYOffset(0)
}

func (m *Model) renderLineNumber(lineNumber, cursorLine int, startsLine bool, gutter int) string {
	if !startsLine {
		return strings.Repeat(" ", gutter)
	}

	style := m.theme.LineNumberStyle
	if lineNumber == cursorLine {
		style = m.theme.CurrentLineNumberStyle
	}
	return style.Width(gutter-1).Render(strconv.Itoa(lineNumber)) + " "
}
