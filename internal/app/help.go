package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gaurav-Gosain/inkwell/internal/config"
)

const helpWidth = 72

// helpState is the help overlay's category and search input.
type helpState struct {
	category int
	search   bool
	query    string
}

// FuzzyMatch reports whether the runes of query appear in target in order,
// case-insensitively, and at which byte offsets.
func FuzzyMatch(query, target string) (bool, []int) {
	query = strings.ToLower(query)
	target = strings.ToLower(target)

	if query == "" {
		return true, []int{}
	}

	matchIndices := []int{}
	queryIdx := 0

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			matchIndices = append(matchIndices, i)
			queryIdx++
		}
	}

	return queryIdx == len(query), matchIndices
}

// SearchBindings returns every binding whose key or description matches
// query.
func SearchBindings(query string, sections []config.KeybindingSection) []config.Keybinding {
	var results []config.Keybinding
	for _, section := range sections {
		for _, b := range section.Bindings {
			if ok, _ := FuzzyMatch(query, b.Description); ok {
				results = append(results, b)
				continue
			}
			if ok, _ := FuzzyMatch(query, b.Key); ok {
				results = append(results, b)
			}
		}
	}
	return results
}

func (m *Model) handleHelpKey(msg tea.KeyPressMsg) {
	key := msg.String()
	sections := m.helpSections()

	if m.help.search {
		switch key {
		case "esc":
			m.help.search = false
			m.help.query = ""
		case "backspace":
			if r := []rune(m.help.query); len(r) > 0 {
				m.help.query = string(r[:len(r)-1])
			}
		default:
			if msg.Text != "" && msg.Mod&(tea.ModCtrl|tea.ModAlt) == 0 {
				m.help.query += msg.Text
			}
		}
		return
	}

	switch {
	case key == "esc" || key == "q" || m.keys.GetAction(key) == config.ActionToggleHelp:
		m.showHelp = false
	case key == "/":
		m.help.search = true
	case key == "tab" || key == "right" || key == "l":
		m.help.category = (m.help.category + 1) % len(sections)
	case key == "shift+tab" || key == "left" || key == "h":
		m.help.category = (m.help.category - 1 + len(sections)) % len(sections)
	}
}

// helpSections names the untitled trailing section so it can be a tab.
func (m *Model) helpSections() []config.KeybindingSection {
	sections := config.GetKeybindings(m.keys)
	for i := range sections {
		if sections[i].Title == "" {
			sections[i].Title = "GENERAL"
		}
	}
	return sections
}

func (m *Model) renderHelp() string {
	p := m.theme.Palette()
	sections := m.helpSections()
	m.help.category = min(m.help.category, len(sections)-1)

	var lines []string
	var rows [][]string
	if m.help.search {
		label := lipgloss.NewStyle().Foreground(p.Warning).Render("Search: ")
		lines = append(lines, label+lipgloss.NewStyle().Foreground(p.Fg).Render(m.help.query+"█"), "")
		if m.help.query != "" {
			for _, b := range SearchBindings(m.help.query, sections) {
				rows = append(rows, []string{b.Key, b.Description})
			}
		}
	} else {
		lines = append(lines, m.renderHelpTabs(sections), "")
		for _, b := range sections[m.help.category].Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}
	}

	if len(rows) == 0 && m.help.search {
		lines = append(lines, lipgloss.NewStyle().Foreground(p.Muted).Italic(true).
			Render("Type to search across all keybindings..."))
	} else {
		headerStyle := lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Padding(0, 1)
		keyStyle := lipgloss.NewStyle().Foreground(p.Warning).Bold(true).Padding(0, 1)
		actionStyle := lipgloss.NewStyle().Foreground(p.Fg).Padding(0, 1)
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(p.Border)).
			Headers("Keys", "Action").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if col == 0 {
					return keyStyle
				}
				return actionStyle
			})
		lines = append(lines, t.Render())
	}

	footer := "tab/shift+tab: category • /: search • esc: close"
	if m.help.search {
		footer = "type to filter • esc: back"
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(p.Muted).Render(footer))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(1, 2).
		Width(min(helpWidth, m.width)).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderHelpTabs(sections []config.KeybindingSection) string {
	p := m.theme.Palette()
	tabs := make([]string, 0, len(sections))
	for i, s := range sections {
		style := lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1)
		if i == m.help.category {
			style = lipgloss.NewStyle().Bold(true).Foreground(p.Bg).Background(p.Accent).Padding(0, 1)
		}
		tabs = append(tabs, style.Render(s.Title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
