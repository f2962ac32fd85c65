// Package ingest turns external input into document content.
//
// Four channels feed a document: typed edits (taken verbatim), clipboard
// pastes (normalized and spliced at the selection only when they carry a
// bracketed equation), dropped text (normalized, replaces the document) and
// files (read asynchronously, normalized, then either replace the active
// document for a drop or open a new one for an upload). Unusable input is
// dropped silently.
package ingest

import (
	"io"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/inkwell/internal/notation"
)

// Mode says what a completed file read does to the document set.
type Mode int

const (
	// ModeReplace replaces the content of the active document (drop).
	ModeReplace Mode = iota
	// ModeCreate opens a new document named after the file (upload).
	ModeCreate
)

func (m Mode) String() string {
	if m == ModeCreate {
		return "create"
	}
	return "replace"
}

// Result is the outcome of ingesting one input. Handled is false when the
// input was ignored and the caller should fall back to its default behaviour.
type Result struct {
	Content   string
	Cursor    int
	HasCursor bool
	Handled   bool
}

// FileReadMsg carries the outcome of an asynchronous file read back to the
// Update loop.
type FileReadMsg struct {
	Mode    Mode
	Name    string
	Content string
	Err     error
}

// Ingestor applies the ingestion rules. It keeps no per-document state.
type Ingestor struct {
	logger *log.Logger
}

// New creates an Ingestor. A nil logger discards log output.
func New(logger *log.Logger) *Ingestor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Ingestor{logger: logger}
}

// Edit commits a typed edit verbatim. Content being composed by hand is never
// normalized.
func (in *Ingestor) Edit(value string) Result {
	return Result{Content: value, Handled: true}
}

// Paste handles a clipboard paste into current with the selection
// [selStart, selEnd) in rune offsets. Payloads without a bracketed equation
// are not handled so the default insertion stands.
func (in *Ingestor) Paste(current string, selStart, selEnd int, payload string) Result {
	if payload == "" || !notation.Contains(payload) {
		return Result{}
	}

	normalized := notation.Normalize(payload)
	runes := []rune(current)
	start := max(0, min(selStart, len(runes)))
	end := max(0, min(selEnd, len(runes)))
	if end < start {
		start, end = end, start
	}

	content := string(runes[:start]) + normalized + string(runes[end:])
	in.logger.Debug("normalized paste", "from", len(payload), "to", len(normalized))
	return Result{
		Content:   content,
		Cursor:    start + len([]rune(normalized)),
		HasCursor: true,
		Handled:   true,
	}
}

// DropText replaces the whole document with a normalized text payload.
func (in *Ingestor) DropText(payload string) Result {
	if payload == "" {
		return Result{}
	}
	return Result{Content: notation.Normalize(payload), Handled: true}
}

// DropFile starts reading a dropped file. The result replaces the active
// document. Files AcceptsDrop rejects, .mdx included, yield a nil command.
func (in *Ingestor) DropFile(f File) tea.Cmd {
	return in.read(f, ModeReplace)
}

// Upload starts reading an uploaded file. The result opens a new document.
// Non-markdown files yield a nil command.
func (in *Ingestor) Upload(f File) tea.Cmd {
	return in.read(f, ModeCreate)
}

func (in *Ingestor) read(f File, mode Mode) tea.Cmd {
	accepted := AcceptsDrop(f)
	if mode == ModeCreate {
		accepted = AcceptsUpload(f)
	}
	if !accepted {
		in.logger.Debug("ignoring non-markdown file", "name", f.Name, "type", f.MediaType)
		return nil
	}
	if f.Open == nil {
		in.logger.Debug("ignoring file without a reader", "name", f.Name)
		return nil
	}

	return func() tea.Msg {
		rc, err := f.Open()
		if err != nil {
			return FileReadMsg{Mode: mode, Name: f.Name, Err: err}
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		return FileReadMsg{Mode: mode, Name: f.Name, Content: string(data), Err: err}
	}
}

// Resolve turns a completed read into content and, for uploads, a title.
// Failed reads and empty files are ignored.
func (in *Ingestor) Resolve(msg FileReadMsg) (content, title string, ok bool) {
	if msg.Err != nil {
		in.logger.Debug("file read failed", "name", msg.Name, "err", msg.Err)
		return "", "", false
	}
	if msg.Content == "" {
		in.logger.Debug("ignoring empty file", "name", msg.Name)
		return "", "", false
	}

	content = notation.Normalize(msg.Content)
	if msg.Mode == ModeCreate {
		title = TitleFromName(msg.Name)
	}
	return content, title, true
}
