package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// mathToken is the placeholder inline math is swapped for while glamour
// renders. It is plain word characters so markdown parsing leaves it alone,
// and the trailing x keeps token 1 from matching inside token 10.
const mathToken = "inkwellmath%dx"

// protectMath replaces each $…$ span outside code with a placeholder and
// returns the span contents in order. A lone $ with no closing partner on
// the same line is literal, and $$ is never an inline delimiter.
func protectMath(md string) (string, []string) {
	var spans []string
	var out strings.Builder
	inFence := false
	fence := ""

	lines := strings.Split(md, "\n")
	for n, line := range lines {
		if n > 0 {
			out.WriteByte('\n')
		}
		trimmed := strings.TrimSpace(line)
		if inFence {
			if strings.HasPrefix(trimmed, fence) {
				inFence = false
			}
			out.WriteString(line)
			continue
		}
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence, fence = true, trimmed[:3]
			out.WriteString(line)
			continue
		}
		out.WriteString(protectLine(line, &spans))
	}
	return out.String(), spans
}

func protectLine(line string, spans *[]string) string {
	if !strings.Contains(line, "$") {
		return line
	}
	var b strings.Builder
	for i := 0; i < len(line); {
		ch := line[i]
		switch {
		case ch == '\\' && i+1 < len(line):
			b.WriteString(line[i : i+2])
			i += 2
			continue
		case ch == '`':
			end := strings.IndexByte(line[i+1:], '`')
			if end < 0 {
				b.WriteString(line[i:])
				return b.String()
			}
			b.WriteString(line[i : i+end+2])
			i += end + 2
			continue
		case strings.HasPrefix(line[i:], "$$"):
			b.WriteString("$$")
			i += 2
			continue
		case ch == '$':
			end := strings.IndexByte(line[i+1:], '$')
			if end > 0 && !strings.HasPrefix(line[i+1+end:], "$$") {
				*spans = append(*spans, line[i+1:i+1+end])
				fmt.Fprintf(&b, mathToken, len(*spans)-1)
				i += end + 2
				continue
			}
		}
		b.WriteByte(ch)
		i++
	}
	return b.String()
}

// restoreMath puts the styled math back where glamour left the placeholders.
func restoreMath(rendered string, spans []string, style lipgloss.Style) string {
	for i := len(spans) - 1; i >= 0; i-- {
		rendered = strings.ReplaceAll(rendered, fmt.Sprintf(mathToken, i), style.Render(spans[i]))
	}
	return rendered
}
