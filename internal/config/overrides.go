package config

import "strings"

// Overrides are command-line settings layered over the config file.
type Overrides struct {
	Theme        string
	NoAnimations bool
	ExportDir    string
}

// ApplyOverrides applies non-zero overrides to cfg.
func (c *UserConfig) ApplyOverrides(o Overrides) {
	if o.Theme != "" {
		c.Appearance.Theme = strings.ToLower(o.Theme)
	}
	if o.NoAnimations {
		c.Timing = c.Timing.Disabled()
	}
	if o.ExportDir != "" {
		c.Export.Dir = o.ExportDir
	}
	c.Validate()
}
