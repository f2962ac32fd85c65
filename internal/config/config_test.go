package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/inkwell/internal/config"
)

// =============================================================================
// Default Configuration Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.Appearance.Theme != config.ThemeSystem {
		t.Errorf("Expected default theme %q, got %q", config.ThemeSystem, cfg.Appearance.Theme)
	}
	if cfg.Export.Dir == "" {
		t.Error("Expected default export dir to be set")
	}
	if cfg.SSH.Port == "" {
		t.Error("Expected default ssh port to be set")
	}
}

func TestDefaultTiming(t *testing.T) {
	timing := config.DefaultConfig().Timing

	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"arrow fade", timing.ArrowFade(), 150 * time.Millisecond},
		{"panel transition", timing.PanelTransition(), 400 * time.Millisecond},
		{"render guard", timing.RenderGuard(), 20 * time.Millisecond},
		{"tab enter", timing.TabEnter(), 500 * time.Millisecond},
		{"render deferral", timing.RenderDeferral(), 420 * time.Millisecond},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
}

func TestDefaultKeybindings(t *testing.T) {
	cfg := config.DefaultConfig()

	for _, action := range config.ActionOrder {
		keys, ok := cfg.Keybindings.Actions[action]
		if !ok {
			t.Errorf("Expected %s keybinding to exist", action)
			continue
		}
		if len(keys) == 0 {
			t.Errorf("Expected %s to have at least one key bound", action)
		}
	}
}

// =============================================================================
// Loading Tests
// =============================================================================

func TestParseMergesDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[appearance]
theme = "Dark"

[timing]
panel_transition_ms = 250

[keybindings.actions]
new_tab = ["ctrl+t"]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Appearance.Theme != config.ThemeDark {
		t.Errorf("Theme = %q, want dark", cfg.Appearance.Theme)
	}
	if cfg.Timing.PanelTransitionMS != 250 {
		t.Errorf("PanelTransitionMS = %d, want 250", cfg.Timing.PanelTransitionMS)
	}
	if cfg.Timing.ArrowFadeMS != 150 {
		t.Errorf("ArrowFadeMS = %d, want default 150", cfg.Timing.ArrowFadeMS)
	}
	if got := cfg.Keybindings.Actions[config.ActionNewTab]; len(got) != 1 || got[0] != "ctrl+t" {
		t.Errorf("new_tab keys = %v", got)
	}
	if len(cfg.Keybindings.Actions[config.ActionQuit]) == 0 {
		t.Error("Expected unlisted actions to keep default keys")
	}
}

func TestParseValidates(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[appearance]
theme = "sepia"
editor_ratio = 3.0

[timing]
arrow_fade_ms = -5
notification_ms = 0
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	def := config.DefaultConfig()
	if cfg.Appearance.Theme != def.Appearance.Theme {
		t.Errorf("invalid theme kept: %q", cfg.Appearance.Theme)
	}
	if cfg.Appearance.EditorRatio != def.Appearance.EditorRatio {
		t.Errorf("invalid ratio kept: %v", cfg.Appearance.EditorRatio)
	}
	if cfg.Timing.ArrowFadeMS != def.Timing.ArrowFadeMS {
		t.Errorf("negative timing kept: %d", cfg.Timing.ArrowFadeMS)
	}
	if cfg.Timing.NotificationMS <= 0 {
		t.Errorf("notification duration = %d", cfg.Timing.NotificationMS)
	}
}

func TestParseRejectsInvalidTOML(t *testing.T) {
	if _, err := config.Parse([]byte("[appearance\ntheme =")); err == nil {
		t.Error("Expected an error for malformed TOML")
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkwell", "config.toml")
	if err := config.WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# inkwell configuration file") {
		t.Error("Expected the default file to start with a header comment")
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Timing != config.DefaultTiming() {
		t.Errorf("Timing = %+v, want defaults", cfg.Timing)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := config.LoadFrom(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

// =============================================================================
// Overrides Tests
// =============================================================================

func TestApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ApplyOverrides(config.Overrides{
		Theme:        "LIGHT",
		NoAnimations: true,
		ExportDir:    "/tmp/out",
	})

	if cfg.Appearance.Theme != config.ThemeLight {
		t.Errorf("Theme = %q", cfg.Appearance.Theme)
	}
	if cfg.Timing.ArrowFade() != 0 || cfg.Timing.PanelTransition() != 0 || cfg.Timing.TabEnter() != 0 {
		t.Errorf("animations still enabled: %+v", cfg.Timing)
	}
	if cfg.Timing.Notification() == 0 {
		t.Error("Expected notifications to keep their duration")
	}
	if cfg.Export.Dir != "/tmp/out" {
		t.Errorf("Export.Dir = %q", cfg.Export.Dir)
	}
}

func TestApplyEmptyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ApplyOverrides(config.Overrides{})
	if cfg.Timing != config.DefaultTiming() || cfg.Appearance.Theme != config.ThemeSystem {
		t.Error("Expected empty overrides to leave the config unchanged")
	}
}

// =============================================================================
// KeybindRegistry Tests
// =============================================================================

func TestKeybindRegistry_GetKeys(t *testing.T) {
	cfg := config.DefaultConfig()
	registry := config.NewKeybindRegistry(cfg)

	keys := registry.GetKeys(config.ActionNewTab)
	if len(keys) == 0 {
		t.Error("Expected new_tab to have keys")
	}
}

func TestKeybindRegistry_GetAction(t *testing.T) {
	cfg := config.DefaultConfig()
	registry := config.NewKeybindRegistry(cfg)

	tests := []struct {
		key  string
		want string
	}{
		{"ctrl+n", config.ActionNewTab},
		{"Ctrl+N", config.ActionNewTab},
		{"ctrl+s", config.ActionExport},
		{"ctrl+c", config.ActionQuit},
		{"alt+]", config.ActionNextTab},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := registry.GetAction(tc.key); got != tc.want {
				t.Errorf("GetAction(%q) = %q, want %q", tc.key, got, tc.want)
			}
		})
	}
}

func TestKeybindRegistry_Aliases(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings.Actions[config.ActionToggleHelp] = []string{"Control+Return"}
	registry := config.NewKeybindRegistry(cfg)

	if got := registry.GetAction("ctrl+enter"); got != config.ActionToggleHelp {
		t.Errorf("GetAction(ctrl+enter) = %q, want toggle_help", got)
	}
}

func TestKeybindRegistry_ConflictFirstWins(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings.Actions[config.ActionQuit] = []string{"ctrl+n"}
	registry := config.NewKeybindRegistry(cfg)

	if got := registry.GetAction("ctrl+n"); got != config.ActionNewTab {
		t.Errorf("GetAction(ctrl+n) = %q, want new_tab", got)
	}
}

func TestKeybindRegistry_GetKeysForDisplay(t *testing.T) {
	cfg := config.DefaultConfig()
	registry := config.NewKeybindRegistry(cfg)

	if got := registry.GetKeysForDisplay(config.ActionNextTab); got != "Ctrl+→, Alt+]" {
		t.Errorf("display = %q", got)
	}
	if got := registry.GetKeysForDisplay(config.ActionRenameTab); got != "F2" {
		t.Errorf("display = %q", got)
	}
}

func TestKeybindRegistry_UnknownAction(t *testing.T) {
	cfg := config.DefaultConfig()
	registry := config.NewKeybindRegistry(cfg)

	keys := registry.GetKeys("nonexistent_action")
	if len(keys) != 0 {
		t.Errorf("Expected empty keys for nonexistent action, got %v", keys)
	}
}

func TestKeybindRegistry_UnknownKey(t *testing.T) {
	cfg := config.DefaultConfig()
	registry := config.NewKeybindRegistry(cfg)

	action := registry.GetAction("ctrl+shift+alt+super+hyper+x")
	if action != "" {
		t.Errorf("Expected empty action for unbound key, got %q", action)
	}
}

// =============================================================================
// Key Normalizer Tests
// =============================================================================

func TestKeyNormalizer(t *testing.T) {
	normalizer := config.NewKeyNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"ctrl+a", "ctrl+a"},
		{"Ctrl+A", "ctrl+a"},
		{"CTRL+A", "ctrl+a"},
		{"return", "enter"},
		{"escape", "esc"},
		{"enter", "enter"},
		{"option+x", "alt+x"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := normalizer.NormalizeKey(tc.input)
			if len(got) == 0 {
				t.Errorf("NormalizeKey(%q) returned empty slice", tc.input)
				return
			}
			found := false
			for _, k := range got {
				if k == tc.expected {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("NormalizeKey(%q) = %v, want to contain %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestKeyNormalizer_ValidateKey(t *testing.T) {
	normalizer := config.NewKeyNormalizer()

	tests := []struct {
		input   string
		isValid bool
	}{
		{"ctrl+a", true},
		{"n", true},
		{"f2", true},
		{"+", true},
		{"ctrl+", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			valid, _ := normalizer.ValidateKey(tc.input)
			if valid != tc.isValid {
				t.Errorf("ValidateKey(%q) = %v, want %v", tc.input, valid, tc.isValid)
			}
		})
	}
}

// =============================================================================
// Help and Descriptions Tests
// =============================================================================

func TestActionDescriptions(t *testing.T) {
	for _, action := range config.ActionOrder {
		desc, ok := config.ActionDescriptions[action]
		if !ok {
			t.Errorf("Expected description for action %q", action)
			continue
		}
		if desc == "" {
			t.Errorf("Description for %q should not be empty", action)
		}
	}
}

func TestGetKeybindings(t *testing.T) {
	sections := config.GetKeybindings(nil)
	if len(sections) == 0 {
		t.Fatal("Expected help sections")
	}
	if sections[0].Title != "TABS" {
		t.Errorf("first section = %q, want TABS", sections[0].Title)
	}
	for _, s := range sections {
		for _, b := range s.Bindings {
			if b.Key == "" || b.Description == "" {
				t.Errorf("section %q has an incomplete binding: %+v", s.Title, b)
			}
		}
	}
}

// =============================================================================
// Watcher Tests
// =============================================================================

func TestWatchReportsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteDefault(path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, err := config.Watch(ctx, path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(path, []byte("[appearance]\ntheme = \"dark\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	for range changes {
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkKeybindRegistry_GetAction(b *testing.B) {
	cfg := config.DefaultConfig()
	registry := config.NewKeybindRegistry(cfg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = registry.GetAction("ctrl+n")
	}
}

func BenchmarkNormalizeKey(b *testing.B) {
	normalizer := config.NewKeyNormalizer()
	keys := []string{"ctrl+a", "Ctrl+Shift+B", "alt+1", "return"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = normalizer.NormalizeKey(keys[i%len(keys)])
	}
}
