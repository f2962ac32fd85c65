package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/inkwell/internal/app"
	"github.com/Gaurav-Gosain/inkwell/internal/config"
	"github.com/Gaurav-Gosain/inkwell/internal/ingest"
	"github.com/Gaurav-Gosain/inkwell/internal/logging"
	"github.com/Gaurav-Gosain/inkwell/internal/notation"
	"github.com/Gaurav-Gosain/inkwell/internal/render"
	"github.com/Gaurav-Gosain/inkwell/internal/server"
	"github.com/Gaurav-Gosain/inkwell/internal/theme"
)

var errNotMarkdown = errors.New("not a markdown file")

func currentOverrides() config.Overrides {
	return config.Overrides{
		Theme:        themeFlag,
		NoAnimations: noAnimations,
		ExportDir:    exportDir,
	}
}

func runLocal(ctx context.Context, files []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ring := logging.NewRing(0)
	logger, closer, err := logging.Setup(debugMode, ring)
	if err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}
	defer closer.Close()

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	opts := []app.Option{
		app.WithLogger(logger),
		app.WithLogRing(ring),
		app.WithOverrides(currentOverrides()),
		app.WithFiles(files...),
	}
	if path, err := theme.StatePath(); err != nil {
		logger.Warn("theme choice will not be saved", "err", err)
	} else {
		opts = append(opts, app.WithThemeState(path))
	}
	if path, err := config.GetConfigPath(); err == nil {
		if changes, err := config.Watch(ctx, path); err != nil {
			logger.Warn("config hot reload disabled", "err", err)
		} else {
			opts = append(opts, app.WithConfigWatch(path, changes))
		}
	}

	p := tea.NewProgram(app.New(userConfig, opts...), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// sshFlags are the ssh subcommand flags. Flags left unset fall back to the
// [ssh] config section.
type sshFlags struct {
	Host, Port, KeyPath          string
	HostSet, PortSet, KeyPathSet bool
}

func (f sshFlags) resolve(cfg config.SSHConfig) (host, port, keyPath string) {
	host, port, keyPath = cfg.Host, cfg.Port, cfg.KeyPath
	if f.HostSet || host == "" {
		host = f.Host
	}
	if f.PortSet || port == "" {
		port = f.Port
	}
	if f.KeyPathSet {
		keyPath = f.KeyPath
	}
	return host, port, keyPath
}

func runSSHServer(ctx context.Context, flags sshFlags) error {
	logFile, err := logging.Open()
	if err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}
	defer logFile.Close()
	logger := logging.New(io.MultiWriter(os.Stderr, logFile), debugMode, nil)

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}
	userConfig.ApplyOverrides(currentOverrides())
	host, port, keyPath := flags.resolve(userConfig.SSH)

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting inkwell SSH server", "host", host, "port", port)
	if err := server.StartSSHServer(ctx, &server.SSHServerConfig{
		Host:      host,
		Port:      port,
		KeyPath:   keyPath,
		App:       userConfig,
		Logger:    logger,
		LogOutput: logFile,
		Debug:     debugMode,
	}); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

// renderFile prints a markdown file through the preview renderer.
func renderFile(w io.Writer, path string, width int, cfg *config.UserConfig) error {
	f := ingest.FileFromPath(path)
	if !ingest.AcceptsUpload(f) {
		return fmt.Errorf("%s: %w", path, errNotMarkdown)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	appearance := cfg.Appearance
	th := theme.New(theme.ParseMode(appearance.Theme), appearance.LightTint, appearance.DarkTint)
	r := render.NewTerminal(th.Palette(), render.Mermaid{})
	_, err = lipgloss.Fprintln(w, r.Render(notation.Normalize(string(data)), max(width, 20)))
	return err
}
