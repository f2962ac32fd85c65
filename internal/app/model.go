// Package app implements the inkwell bubbletea model: a tab bar of
// documents, an editor pane and a rendered preview that holds still while
// the editor pane animates in or out.
package app

import (
	"io"
	"time"

	"charm.land/bubbles/v2/filepicker"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/inkwell/internal/config"
	"github.com/Gaurav-Gosain/inkwell/internal/document"
	"github.com/Gaurav-Gosain/inkwell/internal/editor"
	"github.com/Gaurav-Gosain/inkwell/internal/ingest"
	"github.com/Gaurav-Gosain/inkwell/internal/logging"
	"github.com/Gaurav-Gosain/inkwell/internal/render"
	"github.com/Gaurav-Gosain/inkwell/internal/rendersync"
	"github.com/Gaurav-Gosain/inkwell/internal/tabanim"
	"github.com/Gaurav-Gosain/inkwell/internal/theme"
	"github.com/Gaurav-Gosain/inkwell/internal/timer"
)

// The bootstrap document.
const (
	WelcomeTitle   = "Welcome"
	WelcomeContent = `# Welcome to inkwell

Type on the left, read on the right.

- Paste equations written as \( a^2 + b^2 \) and they become $a^2 + b^2$.
- Drop a markdown file on the terminal to replace this document.
- Press F1 for help.
`
)

type inputMode int

const (
	modeEdit inputMode = iota
	modeRename
	modeOpen
)

// Model is the editor application state. All fields are owned by the
// Update loop.
type Model struct {
	cfg       *config.UserConfig
	overrides config.Overrides
	keys      *config.KeybindRegistry

	logger *log.Logger
	ring   *logging.Ring
	now    timer.Clock

	timers   *timer.Set
	docs     *document.Store
	buffers  map[string]*editor.Buffer
	ingestor *ingest.Ingestor
	tabs     *tabanim.Controller
	sync     *rendersync.Controller
	theme    *theme.Theme
	renderer *render.Terminal

	width, height int
	previewVP     viewport.Model
	preview       previewCache
	styleGen      uint64

	mode      inputMode
	prompt    textinput.Model
	picker    filepicker.Model
	pickerDir string

	showHelp bool
	help     helpState
	showLogs bool
	logVP    viewport.Model

	notifications []Notification
	notifySeq     uint64

	files      []string
	statePath  string
	configPath string
	configCh   <-chan struct{}
	remote     bool
	quitting   bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithLogRing attaches the buffer shown by the log viewer.
func WithLogRing(r *logging.Ring) Option {
	return func(m *Model) { m.ring = r }
}

// WithClock injects the clock used by every timer.
func WithClock(c timer.Clock) Option {
	return func(m *Model) { m.now = c }
}

// WithIDGenerator sets how document ids are produced.
func WithIDGenerator(g document.IDGenerator) Option {
	return func(m *Model) {
		m.docs = document.New(g, document.WithBootstrap(document.BootstrapID, WelcomeTitle, WelcomeContent))
	}
}

// WithFiles opens files as new tabs on start.
func WithFiles(paths ...string) Option {
	return func(m *Model) { m.files = append(m.files, paths...) }
}

// WithOverrides records command-line overrides so they survive config
// reloads.
func WithOverrides(o config.Overrides) Option {
	return func(m *Model) { m.overrides = o }
}

// WithThemeState persists theme changes to path.
func WithThemeState(path string) Option {
	return func(m *Model) { m.statePath = path }
}

// WithConfigWatch reloads the config at path whenever changes fires.
func WithConfigWatch(path string, changes <-chan struct{}) Option {
	return func(m *Model) {
		m.configPath = path
		m.configCh = changes
	}
}

// WithPickerDir sets the directory the open-file picker starts in. The
// default is the working directory.
func WithPickerDir(dir string) Option {
	return func(m *Model) { m.pickerDir = dir }
}

// WithRemote marks the model as serving a remote session. Remote sessions
// cannot read or write files on the host.
func WithRemote() Option {
	return func(m *Model) { m.remote = true }
}

// New creates the model. A nil cfg uses the defaults.
func New(cfg *config.UserConfig, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := &Model{
		cfg:       cfg,
		buffers:   make(map[string]*editor.Buffer),
		previewVP: viewport.New(),
		logVP:     viewport.New(),
		prompt:    textinput.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	cfg.ApplyOverrides(m.overrides)

	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.docs == nil {
		m.docs = document.New(nil, document.WithBootstrap(document.BootstrapID, WelcomeTitle, WelcomeContent))
	}

	m.keys = config.NewKeybindRegistry(cfg)
	m.timers = timer.NewSet(m.now)
	m.ingestor = ingest.New(m.logger)
	m.tabs = tabanim.New(m.timers, cfg.Timing.TabEnter(), m.now)
	m.sync = rendersync.New(m.timers, renderTiming(cfg.Timing), m.now, m.docs.Active().Content)

	mode := theme.ParseMode(cfg.Appearance.Theme)
	if m.statePath != "" && m.overrides.Theme == "" {
		if saved, ok, err := theme.LoadMode(m.statePath); err != nil {
			m.logger.Warn("could not read theme state", "err", err)
		} else if ok {
			mode = saved
		}
	}
	m.theme = theme.New(mode, cfg.Appearance.LightTint, cfg.Appearance.DarkTint)
	m.renderer = render.NewTerminal(m.theme.Palette(), render.Mermaid{})
	return m
}

func renderTiming(t config.Timing) rendersync.Timing {
	return rendersync.Timing{
		ArrowFade:       t.ArrowFade(),
		PanelTransition: t.PanelTransition(),
		RenderGuard:     t.RenderGuard(),
	}
}

// Init starts the tab animation of the bootstrap document, asks the terminal
// for its background color and opens command-line files.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.tabs.Sync(m.docs.IDs()),
		tea.RequestBackgroundColor,
	}
	for _, path := range m.files {
		if cmd := m.ingestor.Upload(ingest.FileFromPath(path)); cmd != nil {
			cmds = append(cmds, cmd)
		} else {
			cmds = append(cmds, m.ShowNotification("Not a markdown file: "+path, NotifyWarning))
		}
	}
	m.files = nil
	if m.configCh != nil {
		cmds = append(cmds, WaitForConfig(m.configCh))
	}
	m.logger.Info("editor started", "documents", m.docs.Len(), "theme", m.theme.Mode())
	return tea.Batch(cmds...)
}

// buffer returns the editor buffer of a document, creating it on first use.
func (m *Model) buffer(id string) *editor.Buffer {
	if b, ok := m.buffers[id]; ok {
		return b
	}
	doc, _ := m.docs.Get(id)
	b := editor.New(doc.Content)
	m.buffers[id] = b
	return b
}

func (m *Model) activeBuffer() *editor.Buffer {
	return m.buffer(m.docs.ActiveID())
}

// commit stores content in the active document and forwards it to render
// synchronization.
func (m *Model) commit(content string) tea.Cmd {
	m.docs.Update(m.docs.ActiveID(), content)
	return m.sync.SetContent(content)
}

// replaceActive replaces the whole active document, e.g. after a drop.
func (m *Model) replaceActive(content string) tea.Cmd {
	m.activeBuffer().SetText(content)
	m.previewVP.GotoTop()
	return m.commit(content)
}

// activated re-synchronizes the preview and tab animations after the
// active document or the document set changed.
func (m *Model) activated() tea.Cmd {
	m.previewVP.GotoTop()
	for id := range m.buffers {
		if m.docs.Index(id) < 0 {
			delete(m.buffers, id)
		}
	}
	return tea.Batch(
		m.tabs.Sync(m.docs.IDs()),
		m.sync.SetContent(m.docs.Active().Content),
	)
}

// teardown cancels every pending timer before the program exits.
func (m *Model) teardown() {
	m.tabs.Teardown()
	m.sync.Teardown()
	m.timers.CancelAll()
	m.quitting = true
}

// Documents returns the open documents in tab order.
func (m *Model) Documents() []document.Document {
	return m.docs.Documents()
}

// ActiveDocument returns the document shown in the editor.
func (m *Model) ActiveDocument() document.Document {
	return m.docs.Active()
}
