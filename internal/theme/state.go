package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

type state struct {
	Theme Mode `toml:"theme"`
}

// StatePath returns where the last theme choice is kept.
func StatePath() (string, error) {
	path, err := xdg.StateFile(filepath.Join("inkwell", "state.toml"))
	if err != nil {
		return "", fmt.Errorf("resolving state path: %w", err)
	}
	return path, nil
}

// LoadMode reads the saved mode from path. A missing file is not an error
// and reports ok false.
func LoadMode(path string) (m Mode, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return System, false, nil
	}
	if err != nil {
		return System, false, fmt.Errorf("reading theme state: %w", err)
	}

	var s state
	if err := toml.Unmarshal(data, &s); err != nil {
		return System, false, fmt.Errorf("parsing theme state: %w", err)
	}
	if s.Theme == "" {
		return System, false, nil
	}
	return ParseMode(string(s.Theme)), true, nil
}

// SaveMode writes m to path.
func SaveMode(path string, m Mode) error {
	data, err := toml.Marshal(state{Theme: m})
	if err != nil {
		return fmt.Errorf("encoding theme state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing theme state: %w", err)
	}
	return nil
}
