package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/inkwell/internal/config"
	"github.com/Gaurav-Gosain/inkwell/internal/export"
	"github.com/Gaurav-Gosain/inkwell/internal/ingest"
	"github.com/Gaurav-Gosain/inkwell/internal/theme"
	"github.com/Gaurav-Gosain/inkwell/internal/timer"
)

// Update handles all incoming messages. Each message runs the whole
// ingest, store, render-sync pipeline before returning, and the viewports
// are laid out afterwards so View only reads.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	m.layout()
	return model, cmd
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.BackgroundColorMsg:
		m.theme.SetSystemDark(msg.IsDark())
		m.restyle()
		return m, nil

	case tea.PasteMsg:
		return m, m.handlePaste(msg.Content)

	case tea.ClipboardMsg:
		return m, m.handleClipboard(msg.Content)

	case ingest.FileReadMsg:
		return m, m.handleFileRead(msg)

	case timer.FiredMsg:
		return m, m.handleTimer(msg)

	case configChangedMsg:
		return m, tea.Batch(reloadConfig(m.configPath), WaitForConfig(m.configCh))

	case ConfigReloadedMsg:
		if msg.Err != nil {
			return m, m.ShowNotification("Config reload failed: "+msg.Err.Error(), NotifyError)
		}
		m.applyConfig(msg.Config)
		return m, m.ShowNotification("Config reloaded", NotifyInfo)

	case exportedMsg:
		if msg.Err != nil {
			return m, m.ShowNotification("Export failed: "+msg.Err.Error(), NotifyError)
		}
		return m, m.ShowNotification("Exported to "+msg.Path, NotifySuccess)

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// Directory listings and cursor blinks of the open widgets.
	var cmd tea.Cmd
	switch m.mode {
	case modeOpen:
		m.picker, cmd = m.picker.Update(msg)
	case modeRename:
		m.prompt, cmd = m.prompt.Update(msg)
	}
	return m, cmd
}

// handlePaste routes a paste to the prompt, to a file drop when the payload
// is a dragged file path, or to the active document. An empty paste changes
// nothing.
func (m *Model) handlePaste(payload string) tea.Cmd {
	switch m.mode {
	case modeRename:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(tea.PasteMsg{Content: strings.TrimSpace(strings.ReplaceAll(payload, "\n", " "))})
		return cmd
	case modeOpen:
		return nil
	}
	if payload == "" {
		return nil
	}

	if paths, ok := ingest.DetectDroppedPaths(payload); ok && !m.remote {
		// Only the first dropped file is used.
		return m.ingestor.DropFile(ingest.FileFromPath(paths[0]))
	}

	b := m.activeBuffer()
	start, end := b.Selection()
	if r := m.ingestor.Paste(b.Text(), start, end, payload); r.Handled {
		b.SetText(r.Content)
		b.SetCursor(r.Cursor)
		return m.commit(r.Content)
	}

	b.Insert(payload)
	return m.commit(m.ingestor.Edit(b.Text()).Content)
}

func (m *Model) handleClipboard(payload string) tea.Cmd {
	r := m.ingestor.DropText(payload)
	if !r.Handled {
		return nil
	}
	return m.replaceActive(r.Content)
}

// handleFileRead applies a completed read to whichever document is active
// now, not when the read started.
func (m *Model) handleFileRead(msg ingest.FileReadMsg) tea.Cmd {
	content, title, ok := m.ingestor.Resolve(msg)
	if !ok {
		if msg.Err != nil {
			return m.ShowNotification("Could not read "+msg.Name, NotifyWarning)
		}
		return nil
	}

	if msg.Mode == ingest.ModeReplace {
		return m.replaceActive(content)
	}
	id := m.docs.Create(content, title)
	m.logger.Debug("opened document", "id", id, "title", title)
	return m.activated()
}

func (m *Model) handleTimer(msg timer.FiredMsg) tea.Cmd {
	if m.tabs.Handle(msg) {
		return nil
	}
	if handled, cmd := m.sync.Handle(msg); handled {
		return cmd
	}
	if !m.handleNotificationTimer(msg) {
		m.logger.Debug("dropped stale timer", "key", msg.Handle.Key, "gen", msg.Handle.Gen)
	}
	return nil
}

// applyConfig swaps in a reloaded config. Command-line overrides still win.
func (m *Model) applyConfig(cfg *config.UserConfig) {
	cfg.ApplyOverrides(m.overrides)
	m.cfg = cfg
	m.keys = config.NewKeybindRegistry(cfg)
	m.tabs.SetWindow(cfg.Timing.TabEnter())
	m.sync.SetTiming(renderTiming(cfg.Timing))
	m.theme.SetTints(cfg.Appearance.LightTint, cfg.Appearance.DarkTint)
	if m.overrides.Theme == "" && m.statePath == "" {
		m.theme.SetMode(theme.ParseMode(cfg.Appearance.Theme))
	}
	m.restyle()
}

func (m *Model) restyle() {
	m.renderer.SetPalette(m.theme.Palette())
	m.styleGen++
}

func (m *Model) exportActive() tea.Cmd {
	doc := m.docs.Active()
	dir := m.cfg.Export.Dir
	return func() tea.Msg {
		path, err := export.Write(dir, doc)
		return exportedMsg{Path: path, Err: err}
	}
}
