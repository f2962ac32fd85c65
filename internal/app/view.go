package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/inkwell/internal/config"
	"github.com/Gaurav-Gosain/inkwell/internal/editor"
)

const (
	maxTabTitle = 24
	arrowWidth  = 1
	renameLabel = "Rename tab: "
	logBoxWidth = 80
)

// previewCache remembers what the preview viewport holds so the formatter
// only runs when the snapshot, width or palette changes.
type previewCache struct {
	content string
	width   int
	style   uint64
	renders int
	valid   bool
}

// layout sizes the widgets for the current window and refreshes the preview
// and log contents.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	w, h := m.previewWidth(), m.previewHeight()
	m.previewVP.SetWidth(w)
	m.previewVP.SetHeight(h)
	snap := m.sync.Snapshot()
	c := &m.preview
	if !c.valid || c.content != snap.Content || c.width != w || c.style != m.styleGen {
		lines := strings.Split(m.renderer.Render(snap.Content, max(w-2, 1)), "\n")
		for i := range lines {
			lines[i] = " " + lines[i]
		}
		m.previewVP.SetContent(strings.Join(lines, "\n"))
		c.content, c.width, c.style, c.valid = snap.Content, w, m.styleGen, true
		c.renders++
	}

	if m.showLogs {
		m.logVP.SetWidth(m.logWidth())
		m.logVP.SetHeight(max(m.height-10, 1))
		var lines []string
		if m.ring != nil {
			lines = m.ring.Lines()
		}
		for i := range lines {
			lines[i] = ansi.Truncate(lines[i], m.logWidth(), "…")
		}
		m.logVP.SetContent(strings.Join(lines, "\n"))
	}

	switch m.mode {
	case modeRename:
		m.prompt.SetWidth(max(m.width-len(renameLabel)-1, 1))
	case modeOpen:
		m.picker.SetHeight(m.pickerHeight())
	}
}

// logWidth is the text width inside the log box's border and padding.
func (m *Model) logWidth() int {
	return max(min(logBoxWidth, m.width)-6, 1)
}

// pickerHeight leaves room for the picker's border, title and directory.
func (m *Model) pickerHeight() int {
	return max(m.bodyHeight()-4, 1)
}

// View renders the whole screen.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return view
	}

	var screen string
	switch {
	case m.showHelp:
		screen = m.renderHelp()
	case m.showLogs:
		screen = m.renderLogs()
	default:
		screen = m.renderMain()
	}
	view.SetContent(screen)
	return view
}

func (m *Model) renderMain() string {
	rows := []string{m.renderTabBar()}
	if m.mode == modeOpen {
		rows = append(rows, m.renderPicker())
	} else {
		rows = append(rows, m.renderBody())
	}
	if status := m.renderStatus(); status != "" {
		rows = append(rows, status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) statusHeight() int {
	if m.cfg.Appearance.HideStatus && m.mode == modeEdit && len(m.notifications) == 0 {
		return 0
	}
	return 1
}

func (m *Model) bodyHeight() int {
	return max(m.height-1-m.statusHeight(), 1)
}

// editorWidth is zero while the preview is expanded.
func (m *Model) editorWidth() int {
	if m.sync.Expanded() {
		return 0
	}
	w := int(float64(m.width) * m.cfg.Appearance.EditorRatio)
	return max(min(w, m.width-arrowWidth-1), 1)
}

func (m *Model) previewWidth() int {
	return max(m.width-m.editorWidth()-arrowWidth, 1)
}

func (m *Model) previewHeight() int {
	return m.bodyHeight()
}

func (m *Model) renderTabBar() string {
	p := m.theme.Palette()
	base := lipgloss.NewStyle().Padding(0, 1).Foreground(p.Muted)
	active := base.Foreground(p.Bg).Background(p.TabActive).Bold(true)
	entering := base.Foreground(p.TabEntering).Italic(true)

	activeID := m.docs.ActiveID()
	var tabs []string
	for _, doc := range m.docs.Documents() {
		title := ansi.Truncate(doc.Title, maxTabTitle, "…")
		style := base
		switch {
		case doc.ID == activeID:
			style = active
		case m.tabs.IsEntering(doc.ID):
			style = entering
		}
		if m.tabs.IsEntering(doc.ID) {
			title = "+ " + title
		}
		tabs = append(tabs, style.Render(title))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return ansi.Truncate(bar, m.width, "…")
}

func (m *Model) renderBody() string {
	h := m.bodyHeight()
	p := m.theme.Palette()

	var cols []string
	if w := m.editorWidth(); w > 0 {
		st := editor.ViewStyles{
			Text:      lipgloss.NewStyle().Foreground(p.Fg),
			Cursor:    lipgloss.NewStyle().Reverse(true),
			Selection: lipgloss.NewStyle().Background(p.Border),
		}
		pane := m.activeBuffer().View(w, h, st, m.mode == modeEdit)
		cols = append(cols, lipgloss.NewStyle().Width(w).Render(pane))
	}
	cols = append(cols, m.renderToggle(h))
	cols = append(cols, m.renderPreview(m.previewWidth(), h))
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderToggle draws the divider with the expand/collapse arrow. The arrow
// dims while fading out before the panel flips.
func (m *Model) renderToggle(h int) string {
	p := m.theme.Palette()
	arrow := "◀"
	if m.sync.Expanded() {
		arrow = "▶"
	}
	arrowStyle := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	if m.sync.ArrowOpacity() < 0.5 {
		arrowStyle = lipgloss.NewStyle().Foreground(p.Muted).Faint(true)
	}
	divider := lipgloss.NewStyle().Foreground(p.Border).Render("│")

	lines := make([]string, h)
	for i := range lines {
		lines[i] = divider
	}
	lines[h/2] = arrowStyle.Render(arrow)
	return strings.Join(lines, "\n")
}

func (m *Model) renderPreview(w, h int) string {
	return lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h).Render(m.previewVP.View())
}

func (m *Model) renderPicker() string {
	p := m.theme.Palette()
	h := m.bodyHeight()
	title := lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Render("Open file")
	dir := lipgloss.NewStyle().Foreground(p.Muted).Render(ansi.Truncate(m.picker.CurrentDirectory, max(m.width-4, 1), "…"))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Width(max(m.width-2, 1)).
		Height(max(h-2, 1)).
		MaxHeight(h).
		Render(title + "\n" + dir + "\n" + m.picker.View())
	return box
}

func (m *Model) renderStatus() string {
	if m.statusHeight() == 0 {
		return ""
	}
	p := m.theme.Palette()
	muted := lipgloss.NewStyle().Foreground(p.Muted)

	var left string
	switch {
	case m.mode == modeRename:
		return lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Render(renameLabel) + m.prompt.View()
	case m.mode == modeOpen:
		left = muted.Render("enter open · ←/→ change directory · esc cancel")
	case len(m.notifications) > 0:
		left = m.renderNotification(m.notifications[len(m.notifications)-1])
	default:
		left = muted.Render(m.keys.GetKeysForDisplay(config.ActionToggleHelp) + " help")
	}

	line, col := m.activeBuffer().Position()
	right := muted.Render(fmt.Sprintf("Ln %d, Col %d · %s · %s", line+1, col+1, m.theme.Mode(), m.sync.State()))
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return ansi.Truncate(left+strings.Repeat(" ", gap)+right, m.width, "")
}

func (m *Model) renderNotification(n Notification) string {
	p := m.theme.Palette()
	icon, color := "ℹ", p.Info
	switch n.Type {
	case NotifySuccess:
		icon, color = "✓", p.Success
	case NotifyWarning:
		icon, color = "⚠", p.Warning
	case NotifyError:
		icon, color = "✕", p.Error
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon) + " " +
		lipgloss.NewStyle().Foreground(p.Fg).Render(n.Message)
}

func (m *Model) renderLogs() string {
	p := m.theme.Palette()
	muted := lipgloss.NewStyle().Foreground(p.Muted)

	lines := []string{lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Render("Logs"), ""}
	total := m.logVP.TotalLineCount()
	if m.ring == nil || m.ring.Len() == 0 {
		lines = append(lines, muted.Render("No log messages yet"))
	} else {
		lines = append(lines, m.logVP.View())
	}
	if total > m.logVP.Height() {
		top := m.logVP.YOffset()
		end := min(top+m.logVP.Height(), total)
		lines = append(lines, "", muted.Render(fmt.Sprintf("Showing %d-%d of %d logs (↑/↓ to scroll)", top+1, end, total)))
	}
	lines = append(lines, "", muted.Render("Press 'q'/'esc' to exit, j/k or ↑/↓ to scroll"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2).
		Width(min(logBoxWidth, m.width)).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
