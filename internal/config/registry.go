package config

import (
	"slices"
	"strings"
)

// Actions understood by the editor.
const (
	ActionNewTab        = "new_tab"
	ActionCloseTab      = "close_tab"
	ActionNextTab       = "next_tab"
	ActionPrevTab       = "prev_tab"
	ActionRenameTab     = "rename_tab"
	ActionTogglePreview = "toggle_preview"
	ActionToggleTheme   = "toggle_theme"
	ActionExport        = "export"
	ActionOpenFile      = "open_file"
	ActionDropClipboard = "drop_clipboard"
	ActionToggleLogs    = "toggle_logs"
	ActionToggleHelp    = "toggle_help"
	ActionSelectAll     = "select_all"
	ActionQuit          = "quit"
)

// ActionDescriptions describes every action for help and keybinds list.
var ActionDescriptions = map[string]string{
	ActionNewTab:        "New document tab",
	ActionCloseTab:      "Close document tab",
	ActionNextTab:       "Next tab",
	ActionPrevTab:       "Previous tab",
	ActionRenameTab:     "Rename tab",
	ActionTogglePreview: "Expand or collapse the preview",
	ActionToggleTheme:   "Cycle light, dark and system theme",
	ActionExport:        "Export document as markdown",
	ActionOpenFile:      "Open a markdown file in a new tab",
	ActionDropClipboard: "Replace document with clipboard text",
	ActionToggleLogs:    "Toggle log viewer",
	ActionToggleHelp:    "Toggle help",
	ActionSelectAll:     "Select all",
	ActionQuit:          "Quit",
}

// ActionOrder is the display order of actions.
var ActionOrder = []string{
	ActionNewTab,
	ActionCloseTab,
	ActionNextTab,
	ActionPrevTab,
	ActionRenameTab,
	ActionOpenFile,
	ActionDropClipboard,
	ActionExport,
	ActionTogglePreview,
	ActionToggleTheme,
	ActionSelectAll,
	ActionToggleLogs,
	ActionToggleHelp,
	ActionQuit,
}

func defaultActions() map[string][]string {
	return map[string][]string{
		ActionNewTab:        {"ctrl+n"},
		ActionCloseTab:      {"ctrl+w"},
		ActionNextTab:       {"ctrl+right", "alt+]"},
		ActionPrevTab:       {"ctrl+left", "alt+["},
		ActionRenameTab:     {"f2"},
		ActionTogglePreview: {"ctrl+e"},
		ActionToggleTheme:   {"ctrl+t"},
		ActionExport:        {"ctrl+s"},
		ActionOpenFile:      {"ctrl+o"},
		ActionDropClipboard: {"ctrl+r"},
		ActionToggleLogs:    {"ctrl+l"},
		ActionToggleHelp:    {"f1"},
		ActionSelectAll:     {"ctrl+a"},
		ActionQuit:          {"ctrl+q", "ctrl+c"},
	}
}

// KeybindRegistry resolves keys to actions and back.
type KeybindRegistry struct {
	actionToKeys map[string][]string
	keyToAction  map[string]string
	normalizer   *KeyNormalizer
}

// NewKeybindRegistry builds a registry from cfg. When two actions claim the
// same key, the first in ActionOrder wins.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		actionToKeys: make(map[string][]string),
		keyToAction:  make(map[string]string),
		normalizer:   NewKeyNormalizer(),
	}

	actions := slices.Clone(ActionOrder)
	var extra []string
	for a := range cfg.Keybindings.Actions {
		if !slices.Contains(actions, a) {
			extra = append(extra, a)
		}
	}
	slices.Sort(extra)
	actions = append(actions, extra...)

	for _, action := range actions {
		keys := cfg.Keybindings.Actions[action]
		for _, key := range keys {
			if ok, _ := r.normalizer.ValidateKey(key); !ok {
				continue
			}
			r.actionToKeys[action] = append(r.actionToKeys[action], key)
			for _, k := range r.normalizer.NormalizeKey(key) {
				if _, taken := r.keyToAction[k]; !taken {
					r.keyToAction[k] = action
				}
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.actionToKeys[action]
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	for _, k := range r.normalizer.NormalizeKey(key) {
		if action, ok := r.keyToAction[k]; ok {
			return action
		}
	}
	return ""
}

// GetKeysForDisplay formats the keys of action for help text.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.GetKeys(action)
	if len(keys) == 0 {
		return ""
	}
	display := make([]string, len(keys))
	for i, k := range keys {
		display[i] = formatKey(k)
	}
	return strings.Join(display, ", ")
}

func formatKey(key string) string {
	parts := strings.Split(key, "+")
	for i, p := range parts {
		switch p {
		case "ctrl", "alt", "shift", "super":
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		case "left":
			parts[i] = "←"
		case "right":
			parts[i] = "→"
		case "up":
			parts[i] = "↑"
		case "down":
			parts[i] = "↓"
		default:
			if len(p) > 1 && p[0] == 'f' {
				parts[i] = strings.ToUpper(p)
			}
		}
	}
	return strings.Join(parts, "+")
}

// KeyNormalizer canonicalizes key strings so user spellings match the
// strings reported by key press events.
type KeyNormalizer struct {
	aliases map[string]string
}

// NewKeyNormalizer creates a normalizer with the common aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{aliases: map[string]string{
		"return":   "enter",
		"escape":   "esc",
		"control":  "ctrl",
		"option":   "alt",
		"meta":     "alt",
		"cmd":      "super",
		"del":      "delete",
		"spacebar": "space",
	}}
}

// NormalizeKey returns the lowercased key followed by its alias spelling,
// if any.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil
	}
	out := []string{key}

	parts := strings.Split(key, "+")
	changed := false
	for i, p := range parts {
		if a, ok := n.aliases[p]; ok {
			parts[i] = a
			changed = true
		}
	}
	if changed {
		out = append(out, strings.Join(parts, "+"))
	}
	return out
}

// ValidateKey reports whether key is usable and, if not, why.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, "empty key"
	}
	for _, p := range strings.Split(key, "+") {
		if p == "" && key != "+" {
			return false, "empty key segment in " + key
		}
	}
	return true, ""
}
