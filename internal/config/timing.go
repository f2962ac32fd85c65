package config

import "time"

// Timing holds animation and notification durations in milliseconds.
//
// ArrowFade, PanelTransition and RenderGuard must stay consistent with the
// panel transition drawn by the view: previews re-render RenderDeferral after
// the panel flips.
type Timing struct {
	ArrowFadeMS       int `toml:"arrow_fade_ms" comment:"toggle indicator fade, and delay before the panels flip"`
	PanelTransitionMS int `toml:"panel_transition_ms" comment:"panel resize transition after the flip"`
	RenderGuardMS     int `toml:"render_guard_ms" comment:"margin after the transition before the preview re-renders"`
	TabEnterMS        int `toml:"tab_enter_ms" comment:"how long a new tab is highlighted"`
	NotificationMS    int `toml:"notification_ms"`
}

// DefaultTiming returns the reference timings.
func DefaultTiming() Timing {
	return Timing{
		ArrowFadeMS:       150,
		PanelTransitionMS: 400,
		RenderGuardMS:     20,
		TabEnterMS:        500,
		NotificationMS:    2500,
	}
}

// Disabled returns the timing with every animation turned off.
// Notifications keep their duration.
func (t Timing) Disabled() Timing {
	return Timing{NotificationMS: t.NotificationMS}
}

// Validated replaces negative values with defaults and gives notifications
// a positive duration.
func (t Timing) Validated() Timing {
	def := DefaultTiming()
	fix := func(v *int, d int) {
		if *v < 0 {
			*v = d
		}
	}
	fix(&t.ArrowFadeMS, def.ArrowFadeMS)
	fix(&t.PanelTransitionMS, def.PanelTransitionMS)
	fix(&t.RenderGuardMS, def.RenderGuardMS)
	fix(&t.TabEnterMS, def.TabEnterMS)
	if t.NotificationMS <= 0 {
		t.NotificationMS = def.NotificationMS
	}
	return t
}

func (t Timing) ArrowFade() time.Duration       { return ms(t.ArrowFadeMS) }
func (t Timing) PanelTransition() time.Duration { return ms(t.PanelTransitionMS) }
func (t Timing) RenderGuard() time.Duration     { return ms(t.RenderGuardMS) }
func (t Timing) TabEnter() time.Duration        { return ms(t.TabEnterMS) }
func (t Timing) Notification() time.Duration    { return ms(t.NotificationMS) }

// RenderDeferral is the delay between the panel flip and the deferred
// preview commit.
func (t Timing) RenderDeferral() time.Duration {
	return t.PanelTransition() + t.RenderGuard()
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
