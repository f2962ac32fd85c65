package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/inkwell/internal/config"
)

// configChangedMsg reports that the config file was written. A closed watch
// channel yields no message.
type configChangedMsg struct{}

// ConfigReloadedMsg carries a freshly loaded config, or the error that
// prevented loading it.
type ConfigReloadedMsg struct {
	Config *config.UserConfig
	Err    error
}

// WaitForConfig blocks until the watcher reports a change.
func WaitForConfig(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return configChangedMsg{}
	}
}

func reloadConfig(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.LoadFrom(path)
		return ConfigReloadedMsg{Config: cfg, Err: err}
	}
}

// exportedMsg reports the outcome of an export.
type exportedMsg struct {
	Path string
	Err  error
}
