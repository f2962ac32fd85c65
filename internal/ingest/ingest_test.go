package ingest

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func stringFile(name, mediaType, content string) File {
	return File{
		Name:      name,
		MediaType: mediaType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestEditIsVerbatim(t *testing.T) {
	in := New(nil)
	raw := `typing \(x\) by hand`
	got := in.Edit(raw)
	if !got.Handled || got.Content != raw || got.HasCursor {
		t.Errorf("Edit = %+v, want verbatim content", got)
	}
}

func TestPasteSplicesAtSelection(t *testing.T) {
	in := New(nil)
	payload := `\(E=mc^2\)`
	normalized := "$E=mc^2$"

	got := in.Paste("abcdef", 3, 3, payload)
	if !got.Handled {
		t.Fatal("paste with an equation was not handled")
	}
	if want := "abc" + normalized + "def"; got.Content != want {
		t.Errorf("Content = %q, want %q", got.Content, want)
	}
	if want := 3 + len([]rune(normalized)); !got.HasCursor || got.Cursor != want {
		t.Errorf("Cursor = %d (has %v), want %d", got.Cursor, got.HasCursor, want)
	}
}

func TestPasteReplacesSelectedRange(t *testing.T) {
	in := New(nil)
	got := in.Paste("abcdef", 1, 4, `\(x\)`)
	if got.Content != "a$x$ef" {
		t.Errorf("Content = %q, want %q", got.Content, "a$x$ef")
	}
	if got.Cursor != 4 {
		t.Errorf("Cursor = %d, want 4", got.Cursor)
	}
}

func TestPasteSelectionEdgeCases(t *testing.T) {
	in := New(nil)
	tests := []struct {
		name       string
		current    string
		start, end int
		want       string
		wantCursor int
	}{
		{"reversed selection", "abcdef", 4, 1, "a$x$ef", 4},
		{"past the end", "abc", 10, 12, "abc$x$", 6},
		{"negative start", "abc", -3, 0, "$x$abc", 3},
		{"multibyte runes", "héllo", 2, 2, "hé$x$llo", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := in.Paste(tt.current, tt.start, tt.end, `\(x\)`)
			if got.Content != tt.want || got.Cursor != tt.wantCursor {
				t.Errorf("Paste = (%q, %d), want (%q, %d)", got.Content, got.Cursor, tt.want, tt.wantCursor)
			}
		})
	}
}

func TestPasteWithoutEquationIsNotIntercepted(t *testing.T) {
	in := New(nil)
	for _, payload := range []string{"", "plain text", "$already$"} {
		if got := in.Paste("abc", 1, 1, payload); got.Handled {
			t.Errorf("Paste(%q) was intercepted: %+v", payload, got)
		}
	}
}

func TestDropText(t *testing.T) {
	in := New(nil)

	got := in.DropText("see \\[\na\n\\]")
	if !got.Handled || got.Content != "see \n$$\na\n$$\n" {
		t.Errorf("DropText = %+v", got)
	}
	if in.DropText("").Handled {
		t.Error("empty drop was handled")
	}
	if got := in.DropText("plain"); got.Content != "plain" {
		t.Errorf("plain drop changed content: %q", got.Content)
	}
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		name       string
		mediaType  string
		wantDrop   bool
		wantUpload bool
	}{
		{"notes.md", "", true, true},
		{"notes.markdown", "", true, true},
		{"page.mdx", "", false, true},
		{"README.MD", "", true, true},
		{"notes.txt", "", false, false},
		{"notes.txt", "text/plain", false, false},
		{"blob", "text/markdown", true, true},
		{"blob", "text/markdown; charset=utf-8", true, true},
		{"blob", "not a media type;;", false, false},
		{"md", "", false, false},
	}
	for _, tt := range tests {
		f := File{Name: tt.name, MediaType: tt.mediaType}
		if got := AcceptsDrop(f); got != tt.wantDrop {
			t.Errorf("AcceptsDrop(%q, %q) = %v, want %v", tt.name, tt.mediaType, got, tt.wantDrop)
		}
		if got := AcceptsUpload(f); got != tt.wantUpload {
			t.Errorf("AcceptsUpload(%q, %q) = %v, want %v", tt.name, tt.mediaType, got, tt.wantUpload)
		}
	}
}

func TestMdxIsUploadOnly(t *testing.T) {
	in := New(nil)
	f := stringFile("notes.mdx", "", "x")
	if cmd := in.DropFile(f); cmd != nil {
		t.Error("DropFile returned a command for an .mdx file")
	}
	cmd := in.Upload(f)
	if cmd == nil {
		t.Fatal("Upload ignored an .mdx file")
	}
	if msg := cmd().(FileReadMsg); msg.Mode != ModeCreate || msg.Content != "x" {
		t.Errorf("upload read = %+v", msg)
	}
}

func TestMdxPathHasNoMarkdownMediaType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.mdx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if AcceptsDrop(FileFromPath(path)) {
		t.Error("a dropped .mdx path passed through its media type")
	}
}

func TestTitleFromName(t *testing.T) {
	tests := map[string]string{
		"notes.md":        "notes",
		"notes.markdown":  "notes",
		"page.mdx":        "page.mdx",
		"/tmp/dir/a.md":   "a",
		"archive.md.html": "archive.md.html",
		"blob":            "blob",
	}
	for in, want := range tests {
		if got := TitleFromName(in); got != want {
			t.Errorf("TitleFromName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNonMarkdownFileIsIgnored(t *testing.T) {
	in := New(nil)
	f := stringFile("notes.txt", "text/plain", `\(x\)`)
	if cmd := in.DropFile(f); cmd != nil {
		t.Error("DropFile returned a command for a .txt file")
	}
	if cmd := in.Upload(f); cmd != nil {
		t.Error("Upload returned a command for a .txt file")
	}
}

func TestDropFileReadsAndResolves(t *testing.T) {
	in := New(nil)
	cmd := in.DropFile(stringFile("eq.md", "", `\(a\)`))
	if cmd == nil {
		t.Fatal("DropFile returned nil for markdown")
	}

	msg, ok := cmd().(FileReadMsg)
	if !ok {
		t.Fatalf("command returned %T, want FileReadMsg", msg)
	}
	if msg.Mode != ModeReplace {
		t.Errorf("Mode = %v, want replace", msg.Mode)
	}

	content, title, ok := in.Resolve(msg)
	if !ok || content != "$a$" || title != "" {
		t.Errorf("Resolve = (%q, %q, %v)", content, title, ok)
	}
}

func TestUploadCreatesTitledDocument(t *testing.T) {
	in := New(nil)
	msg := in.Upload(stringFile("chapter.markdown", "", "# One"))().(FileReadMsg)
	if msg.Mode != ModeCreate {
		t.Errorf("Mode = %v, want create", msg.Mode)
	}
	content, title, ok := in.Resolve(msg)
	if !ok || content != "# One" || title != "chapter" {
		t.Errorf("Resolve = (%q, %q, %v)", content, title, ok)
	}
}

func TestResolveIgnoresEmptyAndFailedReads(t *testing.T) {
	in := New(nil)
	if _, _, ok := in.Resolve(FileReadMsg{Name: "a.md"}); ok {
		t.Error("empty file resolved")
	}
	if _, _, ok := in.Resolve(FileReadMsg{Name: "a.md", Content: "x", Err: errors.New("boom")}); ok {
		t.Error("failed read resolved")
	}
}

func TestFileFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := FileFromPath(path)
	if f.Name != "doc.md" {
		t.Errorf("Name = %q", f.Name)
	}
	if !strings.HasPrefix(f.MediaType, MarkdownMediaType) {
		t.Errorf("MediaType = %q, want %s", f.MediaType, MarkdownMediaType)
	}

	in := New(nil)
	msg := in.Upload(f)().(FileReadMsg)
	if msg.Err != nil || msg.Content != "hello" {
		t.Errorf("read = (%q, %v)", msg.Content, msg.Err)
	}
}

func TestDetectDroppedPaths(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.md")
	spaced := filepath.Join(dir, "with space.md")
	for _, p := range []string{plain, spaced} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{"bare path", plain, []string{plain}},
		{"trailing newline", plain + "\n", []string{plain}},
		{"single quoted", "'" + spaced + "'", []string{spaced}},
		{"escaped space", strings.ReplaceAll(spaced, " ", `\ `), []string{spaced}},
		{"file uri", "file://" + plain, []string{plain}},
		{"two files", plain + " '" + spaced + "'", []string{plain, spaced}},
		{"double quoted", `"` + spaced + `"`, []string{spaced}},
		{"unterminated quote", "'" + plain, nil},
		{"relative name", "a.md", nil},
		{"missing file", filepath.Join(dir, "nope.md"), nil},
		{"directory", dir, nil},
		{"ordinary text", "hello world", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectDroppedPaths(tt.payload)
			if ok != (tt.want != nil) {
				t.Fatalf("ok = %v, want %v (paths %v)", ok, tt.want != nil, got)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("paths = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("path[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
