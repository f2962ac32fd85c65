// Package main implements inkwell, a multi-document markdown editor for the
// terminal with a live preview.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode    bool
	themeFlag    string
	noAnimations bool
	exportDir    string
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "inkwell [files...]",
		Short: "Terminal markdown editor with live preview",
		Long: `inkwell - terminal markdown editor

Edit several markdown documents in tabs with a rendered preview beside them.
Pasted \( \) and \[ \] equations are converted to $ and $$ math, and markdown
files dropped on the terminal replace the current document.`,
		Example: `  # Start with the welcome document
  inkwell

  # Open files as tabs
  inkwell notes.md chapter.markdown

  # Force the dark theme without animations
  inkwell --theme dark --no-animations

  # Serve the editor over SSH
  inkwell ssh --port 2222

  # Edit configuration
  inkwell config edit`,
		Version: version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(cmd.Context(), args)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "Theme mode: light, dark or system")
	rootCmd.PersistentFlags().BoolVar(&noAnimations, "no-animations", false, "Disable tab and panel animations")
	rootCmd.PersistentFlags().StringVar(&exportDir, "export-dir", "", "Directory exported documents are written to")

	rootCmd.AddCommand(newSSHCmd(), newConfigCmd(), newKeybindsCmd(), newRenderCmd())
	return rootCmd
}

func newSSHCmd() *cobra.Command {
	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run inkwell as SSH server",
		Long: `Run inkwell as an SSH server

Every connection gets its own editor. Remote sessions cannot open or export
files on the server. The server will generate a host key automatically if
not specified.`,
		Example: `  # Start SSH server on the configured port
  inkwell ssh

  # Start on custom port
  inkwell ssh --port 2222

  # Specify custom host key
  inkwell ssh --key-path /path/to/host_key`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			return runSSHServer(cmd.Context(), sshFlags{
				Host:       sshHost,
				Port:       sshPort,
				KeyPath:    sshKeyPath,
				HostSet:    flags.Changed("host"),
				PortSet:    flags.Changed("port"),
				KeyPathSet: flags.Changed("key-path"),
			})
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")
	return sshCmd
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage inkwell configuration",
		Long:  `Manage inkwell configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the inkwell configuration file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath(cmd.OutOrStdout())
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the inkwell configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	var assumeYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the inkwell configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults(cmd.InOrStdin(), cmd.OutOrStdout(), assumeYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)
	return configCmd
}

func newKeybindsCmd() *cobra.Command {
	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect inkwell keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings(cmd.OutOrStdout())
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCustomKeybindings(cmd.OutOrStdout())
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)
	return keybindsCmd
}

func newRenderCmd() *cobra.Command {
	var width int
	renderCmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print a markdown file as the preview renders it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfig := loadConfigOrDefault()
			userConfig.ApplyOverrides(currentOverrides())
			return renderFile(cmd.OutOrStdout(), args[0], width, userConfig)
		},
	}
	renderCmd.Flags().IntVarP(&width, "width", "w", 80, "Wrap width")
	return renderCmd
}
