// Package server serves inkwell over SSH. Every connection gets its own
// editor model, so sessions never share documents or timers.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/charmbracelet/ssh"

	"github.com/Gaurav-Gosain/inkwell/internal/app"
	"github.com/Gaurav-Gosain/inkwell/internal/config"
	inklog "github.com/Gaurav-Gosain/inkwell/internal/logging"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string

	// App is the editor configuration shared by every session. Nil uses
	// the defaults.
	App *config.UserConfig
	// Logger receives server and session logs. Nil discards them.
	Logger *log.Logger
	// LogOutput is where per-session loggers write.
	LogOutput io.Writer
	Debug     bool
}

// DefaultHostKeyPath returns ~/.ssh/inkwell_host_key.
func DefaultHostKeyPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ssh", config.AppName+"_host_key"), nil
}

// StartSSHServer runs the SSH server until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.LogOutput == nil {
		cfg.LogOutput = io.Discard
	}
	if cfg.App == nil {
		cfg.App = config.DefaultConfig()
	}

	hostKeyPath := cfg.KeyPath
	if hostKeyPath == "" {
		var err error
		if hostKeyPath, err = DefaultHostKeyPath(); err != nil {
			return err
		}
	}

	server, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			// Bubble Tea middleware for interactive sessions
			bubbletea.Middleware(teaHandler(cfg)),
			// Logging middleware for connection tracking
			logging.MiddlewareWithLogger(cfg.Logger),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errc := make(chan error, 1)
	go func() {
		cfg.Logger.Info("starting SSH server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
	}

	cfg.Logger.Info("shutting down SSH server")
	return server.Shutdown(context.WithoutCancel(ctx))
}

// teaHandler creates an editor model for each SSH session.
func teaHandler(cfg *SSHServerConfig) bubbletea.Handler {
	return func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		if _, _, active := sshSession.Pty(); !active {
			cfg.Logger.Warn("rejecting session without a pty", "user", sshSession.User())
			return nil, nil
		}
		return NewSessionModel(cfg, sshSession.User()), nil
	}
}

// NewSessionModel builds the model served to one remote user.
func NewSessionModel(cfg *SSHServerConfig, user string) *app.Model {
	appCfg := *cfg.App
	ring := inklog.NewRing(0)
	logger := inklog.New(cfg.LogOutput, cfg.Debug, ring).With("user", user)

	return app.New(&appCfg,
		app.WithLogger(logger),
		app.WithLogRing(ring),
		app.WithRemote(),
	)
}
