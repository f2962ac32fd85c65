package ingest

import (
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	shlex "github.com/anmitsu/go-shlex"
)

// MarkdownMediaType is the declared media type accepted regardless of name.
const MarkdownMediaType = "text/markdown"

var (
	// dropExtensions are accepted everywhere. Uploads also take .mdx.
	dropExtensions   = []string{".md", ".markdown"}
	uploadExtensions = append(slices.Clone(dropExtensions), ".mdx")
	titleExtension   = regexp.MustCompile(`\.(md|markdown)$`)
)

// Only the drop extensions map to text/markdown, so an .mdx file never
// passes the drop filter through its detected media type.
func init() {
	for _, ext := range dropExtensions {
		if err := mime.AddExtensionType(ext, MarkdownMediaType); err != nil {
			panic("ingest: registering " + ext + ": " + err.Error())
		}
	}
}

// File is a file offered for ingestion by a drop or an upload.
type File struct {
	Path      string
	Name      string
	MediaType string
	Open      func() (io.ReadCloser, error)
}

// FileFromPath describes a file on the local filesystem. The media type is
// derived from the extension.
func FileFromPath(path string) File {
	return File{
		Path:      path,
		Name:      filepath.Base(path),
		MediaType: mime.TypeByExtension(filepath.Ext(path)),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// AcceptsDrop reports whether a dropped file is markdown: .md, .markdown or
// a declared text/markdown media type.
func AcceptsDrop(f File) bool {
	return accepts(f, dropExtensions)
}

// AcceptsUpload reports whether an uploaded file is markdown. Uploads accept
// .mdx on top of the drop rules.
func AcceptsUpload(f File) bool {
	return accepts(f, uploadExtensions)
}

// UploadExtensions returns the file extensions an upload accepts.
func UploadExtensions() []string {
	return slices.Clone(uploadExtensions)
}

func accepts(f File, extensions []string) bool {
	name := strings.ToLower(f.Name)
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	if f.MediaType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(f.MediaType)
	return err == nil && mt == MarkdownMediaType
}

// TitleFromName strips a trailing .md or .markdown from a file's base name.
func TitleFromName(name string) string {
	return titleExtension.ReplaceAllString(filepath.Base(name), "")
}

// DetectDroppedPaths recognises the text a terminal pastes when files are
// dragged onto it: one or more absolute paths, optionally quoted, with
// backslash-escaped spaces, or as file:// URIs. It returns the paths only if
// every token names an existing regular file.
func DetectDroppedPaths(payload string) ([]string, bool) {
	tokens, err := shlex.Split(strings.TrimSpace(payload), true)
	if err != nil || len(tokens) == 0 {
		return nil, false
	}

	paths := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		p, ok := droppedPath(tok)
		if !ok {
			return nil, false
		}
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			return nil, false
		}
		paths = append(paths, p)
	}
	return paths, true
}

func droppedPath(tok string) (string, bool) {
	if strings.HasPrefix(tok, "file://") {
		u, err := url.Parse(tok)
		if err != nil {
			return "", false
		}
		tok = u.Path
	}
	if strings.HasPrefix(tok, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		tok = filepath.Join(home, tok[2:])
	}
	if !filepath.IsAbs(tok) {
		return "", false
	}
	return filepath.Clean(tok), true
}
