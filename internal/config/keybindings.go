package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns all keybinding sections for the help overlay.
// If registry is nil, it falls back to the default bindings.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	tabs := KeybindingSection{Title: "TABS"}
	addBinding(&tabs, registry, ActionNewTab)
	addBinding(&tabs, registry, ActionCloseTab)
	addBinding(&tabs, registry, ActionNextTab)
	addBinding(&tabs, registry, ActionPrevTab)
	addBinding(&tabs, registry, ActionRenameTab)

	files := KeybindingSection{Title: "FILES"}
	addBinding(&files, registry, ActionOpenFile)
	addBinding(&files, registry, ActionDropClipboard)
	addBinding(&files, registry, ActionExport)

	view := KeybindingSection{Title: "VIEW"}
	addBinding(&view, registry, ActionTogglePreview)
	addBinding(&view, registry, ActionToggleTheme)
	addBinding(&view, registry, ActionToggleLogs)
	addBinding(&view, registry, ActionToggleHelp)

	var sections []KeybindingSection
	for _, s := range []KeybindingSection{tabs, files, view} {
		if len(s.Bindings) > 0 {
			sections = append(sections, s)
		}
	}
	return append(sections, getStaticHelpSections(registry)...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: ActionDescriptions[action],
		})
	}
}

// getStaticHelpSections returns help for editing keys that are not
// configurable.
func getStaticHelpSections(registry *KeybindRegistry) []KeybindingSection {
	editing := KeybindingSection{
		Title: "EDITING",
		Bindings: []Keybinding{
			{"←/→/↑/↓", "Move cursor"},
			{"Shift+arrows", "Extend selection"},
			{"Home/End", "Line start/end"},
			{"Ctrl+Home/End", "Document start/end"},
			{"Paste", "Insert, converting \\( \\) and \\[ \\] equations"},
			{"Paste a file path", "Replace document with the file"},
		},
	}
	addBinding(&editing, registry, ActionSelectAll)

	quit := KeybindingSection{}
	addBinding(&quit, registry, ActionQuit)
	return []KeybindingSection{editing, quit}
}
