package deskbuddy

import (
	"github.com/ajanata/textbuf"
)

const (
	scrollUp   = "^"
	scrollDown = "v"
)

// Menu is a scrollable list with a cursor. The first text line holds the title and the rest form the visible window.
// The window only scrolls as far as needed to keep the cursor visible.
type Menu struct {
	title  string
	items  []string
	cursor int
	top    int
}

// Init replaces the items and resets the cursor to the first one.
func (m *Menu) Init(title string, items ...string) {
	m.title = title
	m.items = append(m.items[:0], items...)
	m.cursor = 0
	m.top = 0
}

// Update applies one tick of input. The rotation moves the cursor, saturating at either end. When the button was
// pressed it returns the cursor index and true.
func (m *Menu) Update(ev Event) (int, bool) {
	if len(m.items) == 0 {
		return 0, false
	}
	m.cursor += ev.Step
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.items)-1 {
		m.cursor = len(m.items) - 1
	}
	if ev.Pressed {
		return m.cursor, true
	}
	return 0, false
}

func (m *Menu) Cursor() int { return m.cursor }

func (m *Menu) Len() int { return len(m.items) }

// Window returns the index of the first visible item for a window of size rows, scrolling it if the cursor moved
// outside.
func (m *Menu) Window(size int) int {
	if size < 1 {
		size = 1
	}
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+size {
		m.top = m.cursor - size + 1
	}
	if m.top < 0 {
		m.top = 0
	}
	return m.top
}

// Lines lays the menu out as text lines: the title followed by at most size-1 items. Lines that need a cursor mark
// are reported by index.
func (m *Menu) Lines(cols, rows int) (lines []string, cursorLine int) {
	size := rows - 1
	top := m.Window(size)

	lines = append(lines, m.title)
	cursorLine = -1
	for i := 0; i < size && top+i < len(m.items); i++ {
		idx := top + i
		label := m.items[idx]
		// one column for the cursor, one for the scroll indicator
		if limit := cols - 2; limit > 0 && len(label) > limit {
			label = label[:limit]
		}
		prefix := " "
		if idx == m.cursor {
			prefix = ">"
			cursorLine = len(lines)
		}
		line := prefix + label
		var ind string
		switch {
		case i == 0 && top > 0:
			ind = scrollUp
		case i == size-1 && idx < len(m.items)-1:
			ind = scrollDown
		}
		if ind != "" {
			for len(line) < cols-1 {
				line += " "
			}
			line += ind
		}
		lines = append(lines, line)
	}
	return lines, cursorLine
}

// Render draws the menu into the text buffer. The title and the cursor row are inverse.
func (m *Menu) Render(buf *textbuf.Buffer) {
	w, h := buf.Size()
	lines, cursorLine := m.Lines(int(w), int(h))
	for i := 0; i < int(h); i++ {
		switch {
		case i >= len(lines):
			_ = buf.SetLine(int16(i), "")
		case i == 0 || i == cursorLine:
			_ = buf.SetLineInverse(int16(i), lines[i])
		default:
			_ = buf.SetLine(int16(i), lines[i])
		}
	}
}
