// Package render draws markdown documents for the terminal preview.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/Gaurav-Gosain/inkwell/internal/theme"
)

// Markdown renders a whole document to width columns.
type Markdown interface {
	Render(content string, width int) string
}

// Terminal renders markdown through glamour with colors taken from a
// palette. Diagram code blocks and display math are drawn here and spliced
// between the glamour-rendered runs; inline math survives glamour as a
// placeholder and is styled afterwards.
type Terminal struct {
	palette    theme.Palette
	math       lipgloss.Style
	mathBlock  lipgloss.Style
	diagramErr lipgloss.Style
	diagram    Diagram

	glam      *glamour.TermRenderer
	glamWidth int
}

// NewTerminal creates a renderer. A nil diagram renderer disables diagram
// blocks, which then render as plain code.
func NewTerminal(p theme.Palette, diagram Diagram) *Terminal {
	r := &Terminal{diagram: diagram}
	r.SetPalette(p)
	return r
}

// SetPalette restyles the renderer.
func (r *Terminal) SetPalette(p theme.Palette) {
	r.palette = p
	r.math = lipgloss.NewStyle().Foreground(p.Math).Italic(true)
	r.mathBlock = lipgloss.NewStyle().Foreground(p.Math).Italic(true).PaddingLeft(4)
	r.diagramErr = lipgloss.NewStyle().Foreground(p.Error)
	if m, ok := r.diagram.(Mermaid); ok {
		m.Border = lipgloss.NewStyle().Foreground(p.Border)
		m.Title = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
		r.diagram = m
	}
	r.glam = nil
}

// Render implements Markdown.
func (r *Terminal) Render(content string, width int) string {
	if width <= 0 {
		return ""
	}
	var out []string
	for _, b := range splitBlocks(strings.ReplaceAll(content, "\r\n", "\n"), r.diagram != nil) {
		var s string
		switch b.kind {
		case blockDiagram:
			s = r.diagramBlock(b.body, width)
		case blockMath:
			s = r.mathBlock.Render(ansi.Wrap(b.body, max(width-4, 1), ""))
		default:
			s = r.markdown(b.body, width)
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n")
}

func (r *Terminal) markdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	protected, spans := protectMath(md)
	rendered, err := r.termRenderer(width).Render(protected)
	if err != nil {
		return ansi.Wrap(md, width, "")
	}
	return restoreMath(trimBlankLines(rendered), spans, r.math)
}

// termRenderer returns the glamour renderer for width, building a new one
// after a resize or a palette change.
func (r *Terminal) termRenderer(width int) *glamour.TermRenderer {
	if r.glam != nil && r.glamWidth == width {
		return r.glam
	}
	g, err := glamour.NewTermRenderer(
		glamour.WithStyles(styleConfig(r.palette, width)),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.TrueColor),
	)
	if err != nil {
		g, _ = glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(width))
	}
	r.glam, r.glamWidth = g, width
	return g
}

func (r *Terminal) diagramBlock(body string, width int) string {
	rendered, err := r.diagram.Render(body)
	if err != nil {
		return ansi.Wrap(r.diagramErr.Render(DiagramError(err, body)), width, "")
	}
	return rendered
}

// styleConfig derives a glamour style from the palette. The base is
// glamour's own dark or light style so anything not overridden still looks
// like glamour.
func styleConfig(p theme.Palette, width int) gansi.StyleConfig {
	cfg := styles.LightStyleConfig
	if p.Dark {
		cfg = styles.DarkStyleConfig
	}
	var zero uint
	cfg.Document.Margin = &zero
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""

	cfg.Heading.Color = hex(p.Heading)
	cfg.H1 = gansi.StyleBlock{StylePrimitive: gansi.StylePrimitive{
		Color:     hex(p.Heading),
		Bold:      boolPtr(true),
		Underline: boolPtr(true),
	}}
	cfg.Link.Color = hex(p.Link)
	cfg.LinkText.Color = hex(p.Link)
	cfg.Code.Color = hex(p.Code)
	cfg.Code.BackgroundColor = nil
	cfg.Code.Prefix, cfg.Code.Suffix = "", ""
	cfg.BlockQuote.Color = hex(p.Muted)
	cfg.BlockQuote.IndentToken = strPtr("│ ")
	cfg.Item.BlockPrefix = "• "
	cfg.Task.Ticked = "☑ "
	cfg.Task.Unticked = "☐ "
	cfg.HorizontalRule.Color = hex(p.Border)
	cfg.HorizontalRule.Format = "\n" + strings.Repeat("─", width) + "\n"
	return cfg
}

func hex(c color.Color) *string {
	if c == nil {
		return nil
	}
	r, g, b, _ := c.RGBA()
	s := fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
	return &s
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[0])) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[len(lines)-1])) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

type blockKind int

const (
	blockMarkdown blockKind = iota
	blockDiagram
	blockMath
)

type block struct {
	kind blockKind
	body string
}

// splitBlocks cuts out mermaid fences (when diagrams are enabled) and
// display math so they bypass glamour. Other fences stay in the markdown
// runs, and $$ inside them is left alone.
func splitBlocks(content string, diagrams bool) []block {
	lines := strings.Split(content, "\n")
	var blocks []block
	var run []string

	flush := func() {
		if len(run) > 0 {
			blocks = append(blocks, block{kind: blockMarkdown, body: strings.Join(run, "\n")})
			run = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~"):
			fence := trimmed[:3]
			lang := strings.ToLower(strings.TrimSpace(trimmed[3:]))
			start := i
			var body []string
			for i++; i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), fence); i++ {
				body = append(body, lines[i])
			}
			if lang == "mermaid" && diagrams {
				flush()
				blocks = append(blocks, block{kind: blockDiagram, body: strings.Join(body, "\n")})
				continue
			}
			run = append(run, lines[start:min(i+1, len(lines))]...)

		case trimmed == "$$":
			flush()
			var body []string
			for i++; i < len(lines) && strings.TrimSpace(lines[i]) != "$$"; i++ {
				body = append(body, lines[i])
			}
			blocks = append(blocks, block{kind: blockMath, body: strings.Join(body, "\n")})

		case len(trimmed) > 4 && strings.HasPrefix(trimmed, "$$") && strings.HasSuffix(trimmed, "$$"):
			flush()
			blocks = append(blocks, block{kind: blockMath, body: strings.TrimSpace(trimmed[2 : len(trimmed)-2])})

		default:
			run = append(run, lines[i])
		}
	}
	flush()
	return blocks
}
