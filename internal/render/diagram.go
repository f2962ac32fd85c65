package render

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// Diagram renders the body of a diagram code block.
type Diagram interface {
	Render(src string) (string, error)
}

// Diagram validation errors.
var (
	ErrEmptyDiagram   = errors.New("empty diagram")
	ErrUnknownDiagram = errors.New("unknown diagram type")
)

var mermaidKinds = map[string]string{
	"graph":              "flowchart",
	"flowchart":          "flowchart",
	"sequencediagram":    "sequence",
	"classdiagram":       "class",
	"statediagram":       "state",
	"statediagram-v2":    "state",
	"erdiagram":          "entity relationship",
	"journey":            "user journey",
	"gantt":              "gantt",
	"pie":                "pie",
	"gitgraph":           "git graph",
	"mindmap":            "mindmap",
	"timeline":           "timeline",
	"quadrantchart":      "quadrant chart",
	"requirementdiagram": "requirement",
	"c4context":          "C4 context",
	"sankey-beta":        "sankey",
	"xychart-beta":       "xy chart",
	"block-beta":         "block",
}

// Mermaid validates mermaid sources and draws them as a framed listing.
// Laying out the diagram itself is left to the reader's browser; the
// terminal shows the recognised type and the source.
type Mermaid struct {
	Border lipgloss.Style
	Title  lipgloss.Style
}

// MermaidKind returns the diagram type declared by src.
func MermaidKind(src string) (string, error) {
	inFrontMatter := false
	seen := false
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "---" && (!seen || inFrontMatter) {
			inFrontMatter = !inFrontMatter
			seen = true
			continue
		}
		if inFrontMatter || line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		head := strings.ToLower(strings.Fields(line)[0])
		head = strings.TrimSuffix(head, ":")
		if kind, ok := mermaidKinds[head]; ok {
			return kind, nil
		}
		return "", fmt.Errorf("%w %q", ErrUnknownDiagram, strings.Fields(line)[0])
	}
	return "", ErrEmptyDiagram
}

// Render implements Diagram.
func (m Mermaid) Render(src string) (string, error) {
	kind, err := MermaidKind(src)
	if err != nil {
		return "", err
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(m.Border).
		Headers(m.Title.Render("mermaid · " + kind))
	for _, line := range strings.Split(strings.Trim(src, "\n"), "\n") {
		t.Row(line)
	}
	return t.Render(), nil
}

// DiagramError formats a failed diagram inline with its source.
func DiagramError(err error, src string) string {
	return "Diagram error: " + err.Error() + "\n" + strings.Trim(src, "\n")
}
