package app

import (
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/filepicker"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/inkwell/internal/config"
	"github.com/Gaurav-Gosain/inkwell/internal/editor"
	"github.com/Gaurav-Gosain/inkwell/internal/ingest"
	"github.com/Gaurav-Gosain/inkwell/internal/theme"
)

const errRemoteFiles = "Files are not available over SSH"

var motions = map[string]editor.Move{
	"left":      editor.Left,
	"right":     editor.Right,
	"up":        editor.Up,
	"down":      editor.Down,
	"home":      editor.LineStart,
	"end":       editor.LineEnd,
	"ctrl+home": editor.DocStart,
	"ctrl+end":  editor.DocEnd,
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.showHelp {
		m.handleHelpKey(msg)
		return m, nil
	}
	if m.showLogs {
		return m, m.handleLogKey(key)
	}
	switch m.mode {
	case modeRename:
		return m, m.handlePromptKey(msg)
	case modeOpen:
		return m, m.handlePickerKey(msg)
	}

	if action := m.keys.GetAction(key); action != "" {
		return m.handleAction(action)
	}
	return m, m.handleEditKey(msg)
}

// handleAction runs a configurable action.
func (m *Model) handleAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case config.ActionQuit:
		m.teardown()
		return m, tea.Quit

	case config.ActionNewTab:
		m.docs.Create("", "")
		return m, m.activated()

	case config.ActionCloseTab:
		if !m.docs.Remove(m.docs.ActiveID()) {
			m.logger.Debug("refused to close the last document")
			return m, nil
		}
		return m, m.activated()

	case config.ActionNextTab:
		m.docs.Next()
		return m, m.activated()

	case config.ActionPrevTab:
		m.docs.Prev()
		return m, m.activated()

	case config.ActionRenameTab:
		return m, m.openPrompt(m.docs.Active().Title)

	case config.ActionOpenFile:
		if m.remote {
			return m, m.ShowNotification(errRemoteFiles, NotifyWarning)
		}
		return m, m.openPicker()

	case config.ActionDropClipboard:
		return m, tea.ReadClipboard

	case config.ActionExport:
		if m.remote {
			return m, m.ShowNotification(errRemoteFiles, NotifyWarning)
		}
		return m, m.exportActive()

	case config.ActionTogglePreview:
		return m, m.sync.Toggle()

	case config.ActionToggleTheme:
		mode := m.theme.Cycle()
		m.restyle()
		if m.statePath != "" {
			if err := theme.SaveMode(m.statePath, mode); err != nil {
				m.logger.Warn("could not save theme", "err", err)
			}
		}
		return m, m.ShowNotification("Theme: "+string(mode), NotifyInfo)

	case config.ActionSelectAll:
		m.activeBuffer().SelectAll()

	case config.ActionToggleLogs:
		m.showLogs = true
		m.logVP.GotoTop()

	case config.ActionToggleHelp:
		m.showHelp = true
		m.help = helpState{}
	}
	return m, nil
}

// handleEditKey applies editing keys to the active buffer. Typed input is
// committed verbatim.
func (m *Model) handleEditKey(msg tea.KeyPressMsg) tea.Cmd {
	b := m.activeBuffer()
	key := msg.String()

	extend := false
	if rest, ok := strings.CutPrefix(key, "shift+"); ok {
		if _, isMotion := motions[rest]; isMotion {
			key, extend = rest, true
		}
	}
	if mv, ok := motions[key]; ok {
		b.MoveCursor(mv, extend)
		return nil
	}

	switch key {
	case "pgup":
		m.previewVP.HalfPageUp()
		return nil
	case "pgdown":
		m.previewVP.HalfPageDown()
		return nil
	case "backspace":
		b.Backspace()
	case "delete":
		b.Delete()
	case "enter":
		b.Insert("\n")
	case "tab":
		b.Insert("\t")
	default:
		if msg.Text == "" || msg.Mod&(tea.ModCtrl|tea.ModAlt) != 0 {
			return nil
		}
		b.Insert(msg.Text)
	}
	return m.commit(m.ingestor.Edit(b.Text()).Content)
}

// openPrompt starts renaming the active tab. The current title is the
// placeholder, so confirming an empty prompt keeps it.
func (m *Model) openPrompt(title string) tea.Cmd {
	m.mode = modeRename
	m.prompt = textinput.New()
	m.prompt.Prompt = ""
	m.prompt.Placeholder = title
	m.prompt.CharLimit = 120
	m.prompt.SetWidth(max(m.width-len(renameLabel)-1, 1))
	return m.prompt.Focus()
}

func (m *Model) handlePromptKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return nil
	case "enter":
		value := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		if value != "" {
			m.docs.Rename(m.docs.ActiveID(), value)
		}
		return nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *Model) closePrompt() {
	m.mode = modeEdit
	m.prompt.Blur()
	m.prompt.Reset()
}

// openPicker shows the file picker for uploads, limited to the extensions an
// upload accepts.
func (m *Model) openPicker() tea.Cmd {
	dir := m.pickerDir
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AllowedTypes = ingest.UploadExtensions()
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowHidden = false
	fp.SetHeight(m.pickerHeight())
	m.picker = fp
	m.mode = modeOpen
	return m.picker.Init()
}

func (m *Model) handlePickerKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "esc" || m.keys.GetAction(msg.String()) == config.ActionOpenFile {
		m.mode = modeEdit
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.mode = modeEdit
		if upload := m.ingestor.Upload(ingest.FileFromPath(path)); upload != nil {
			return upload
		}
		return m.ShowNotification("Not a markdown file: "+path, NotifyWarning)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		return tea.Batch(cmd, m.ShowNotification("Not a markdown file: "+filepath.Base(path), NotifyWarning))
	}
	return cmd
}

func (m *Model) handleLogKey(key string) tea.Cmd {
	switch {
	case key == "esc" || key == "q" || m.keys.GetAction(key) == config.ActionToggleLogs:
		m.showLogs = false
	case key == "up" || key == "k":
		m.logVP.ScrollUp(1)
	case key == "down" || key == "j":
		m.logVP.ScrollDown(1)
	case key == "pgup":
		m.logVP.PageUp()
	case key == "pgdown":
		m.logVP.PageDown()
	case key == "home" || key == "g":
		m.logVP.GotoTop()
	case key == "end" || key == "G":
		m.logVP.GotoBottom()
	}
	return nil
}
