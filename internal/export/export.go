// Package export writes documents to disk as markdown files.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Gaurav-Gosain/inkwell/internal/document"
)

// ErrEmptyTitle is returned when a title has no usable file name characters.
var ErrEmptyTitle = errors.New("export: document title is empty")

// Extension is appended to every exported file name, so a title "a.md"
// exports as "a.md.md".
const Extension = ".md"

// FileName turns a document title into a safe file name.
func FileName(title string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	name := strings.Trim(b.String(), ". ")
	if name == "" {
		return "", ErrEmptyTitle
	}
	return name + Extension, nil
}

// Write saves doc as {title}.md in dir and returns the written path.
func Write(dir string, doc document.Document) (string, error) {
	name, err := FileName(doc.Title)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
