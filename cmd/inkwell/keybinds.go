package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gaurav-Gosain/inkwell/internal/config"
)

// keybindSections groups actions for keybinds list.
var keybindSections = []struct {
	Title   string
	Actions []string
}{
	{
		Title: "Tabs",
		Actions: []string{
			config.ActionNewTab, config.ActionCloseTab,
			config.ActionNextTab, config.ActionPrevTab, config.ActionRenameTab,
		},
	},
	{
		Title: "Files",
		Actions: []string{
			config.ActionOpenFile, config.ActionDropClipboard, config.ActionExport,
		},
	},
	{
		Title: "View",
		Actions: []string{
			config.ActionTogglePreview, config.ActionToggleTheme,
			config.ActionToggleLogs, config.ActionToggleHelp,
		},
	},
	{
		Title:   "Editing",
		Actions: []string{config.ActionSelectAll, config.ActionQuit},
	},
}

func loadConfigOrDefault() *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default keybindings...")
		return config.DefaultConfig()
	}
	return userConfig
}

// listKeybindings prints all configured keybindings in a pretty table
func listKeybindings(w io.Writer) error {
	printKeybindingsTable(w, config.NewKeybindRegistry(loadConfigOrDefault()))
	return nil
}

func keybindTable(headers []string, rows [][]string) *table.Table {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// printKeybindingsTable prints keybindings in a pretty table format
func printKeybindingsTable(w io.Writer, registry *config.KeybindRegistry) {
	lipgloss.Fprintln(w)
	lipgloss.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("inkwell Keybindings"))
	lipgloss.Fprintln(w)

	for _, section := range keybindSections {
		var rows [][]string
		for _, action := range section.Actions {
			keys := registry.GetKeys(action)
			if len(keys) == 0 {
				continue // Skip unbound actions
			}
			desc := config.ActionDescriptions[action]
			if desc == "" {
				desc = action
			}
			rows = append(rows, []string{strings.Join(keys, ", "), desc})
		}
		if len(rows) == 0 {
			continue
		}

		lipgloss.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render(section.Title))
		lipgloss.Fprintln(w, keybindTable([]string{"Keys", "Action"}, rows).Render())
		lipgloss.Fprintln(w)
	}

	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true).
		Render("Note: arrow keys, Home/End, Backspace and Enter edit text and are not configurable.")
	lipgloss.Fprintln(w, note)
	lipgloss.Fprintln(w)
}

// Customization represents a customized keybinding
type Customization struct {
	Action      string
	DefaultKeys string
	CustomKeys  string
}

// findCustomizations finds all keybindings that differ from defaults
func findCustomizations(userCfg, defaultCfg *config.UserConfig) []Customization {
	var customizations []Customization
	for _, action := range config.ActionOrder {
		defaultKeys := defaultCfg.Keybindings.Actions[action]
		userKeys, exists := userCfg.Keybindings.Actions[action]
		if !exists || slices.Equal(userKeys, defaultKeys) {
			continue
		}
		customizations = append(customizations, Customization{
			Action:      formatActionName(action),
			DefaultKeys: strings.Join(defaultKeys, ", "),
			CustomKeys:  strings.Join(userKeys, ", "),
		})
	}
	return customizations
}

// formatActionName formats an action name for display
func formatActionName(action string) string {
	if desc, ok := config.ActionDescriptions[action]; ok {
		return desc
	}
	return strings.ReplaceAll(action, "_", " ")
}

// listCustomKeybindings shows only the keybindings that differ from defaults
func listCustomKeybindings(w io.Writer) error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	customizations := findCustomizations(userConfig, config.DefaultConfig())
	if len(customizations) == 0 {
		lipgloss.Fprintln(w, lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("No custom keybindings configured. All keybindings are using defaults."))
		lipgloss.Fprintln(w)
		lipgloss.Fprintln(w, "Run 'inkwell keybinds list' to see all keybindings.")
		return nil
	}

	rows := make([][]string, 0, len(customizations))
	for _, custom := range customizations {
		rows = append(rows, []string{custom.Action, custom.DefaultKeys, custom.CustomKeys})
	}

	lipgloss.Fprintln(w)
	lipgloss.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("Custom Keybindings"))
	lipgloss.Fprintln(w)
	lipgloss.Fprintln(w, keybindTable([]string{"Action", "Default", "Custom"}, rows).Render())
	lipgloss.Fprintln(w)
	lipgloss.Fprintln(w, lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Render(fmt.Sprintf("Found %d customized keybinding(s)", len(customizations))))
	lipgloss.Fprintln(w)
	return nil
}
