package editor

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// ViewStyles styles the drawn buffer.
type ViewStyles struct {
	Text      lipgloss.Style
	Cursor    lipgloss.Style
	Selection lipgloss.Style
}

// View draws the buffer into a width x height box, scrolled so that the
// cursor line is visible. Tabs are shown as two spaces.
func (b *Buffer) View(width, height int, st ViewStyles, focused bool) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	curLine, _ := b.Position()
	top := max(0, curLine-height+1)
	selStart, selEnd := b.Selection()

	var out []string
	offset := 0
	for i, line := range b.Lines() {
		runes := []rune(line)
		if i >= top && len(out) < height {
			var sb strings.Builder
			for j, r := range runes {
				pos := offset + j
				cell := string(r)
				if r == '\t' {
					cell = "  "
				}
				switch {
				case focused && pos == b.cursor:
					sb.WriteString(st.Cursor.Render(cell))
				case pos >= selStart && pos < selEnd:
					sb.WriteString(st.Selection.Render(cell))
				default:
					sb.WriteString(st.Text.Render(cell))
				}
			}
			if focused && b.cursor == offset+len(runes) {
				sb.WriteString(st.Cursor.Render(" "))
			}
			out = append(out, ansi.Truncate(sb.String(), width, ""))
		}
		offset += len(runes) + 1
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
