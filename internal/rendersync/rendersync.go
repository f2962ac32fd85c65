// Package rendersync decides when the preview may re-render.
//
// Re-rendering the preview while the editor pane is sliding in or out makes
// the transition stutter, so the controller keeps a render snapshot that
// follows live content immediately while Idle and is frozen while Animating.
// Changes made during an animation are coalesced into one commit scheduled
// when the transition settles, a guard margin later.
package rendersync

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/inkwell/internal/timer"
)

// Timer keys owned by the controller.
const (
	KeyArrow    = "rendersync:arrow"
	KeyFlip     = "rendersync:flip"
	KeySettle   = "rendersync:settle"
	KeySnapshot = "rendersync:snapshot"

	keyPrefix = "rendersync:"
)

// State is the controller state.
type State int

const (
	Idle State = iota
	Animating
)

func (s State) String() string {
	if s == Animating {
		return "animating"
	}
	return "idle"
}

// Timing holds the transition durations.
type Timing struct {
	// ArrowFade is the toggle indicator fade, and the delay before the
	// panel flips.
	ArrowFade time.Duration
	// PanelTransition is how long the layout transition runs after the flip.
	PanelTransition time.Duration
	// RenderGuard is added after the transition before committing.
	RenderGuard time.Duration
}

// DefaultTiming matches the layout transition used by the view.
var DefaultTiming = Timing{
	ArrowFade:       150 * time.Millisecond,
	PanelTransition: 400 * time.Millisecond,
	RenderGuard:     20 * time.Millisecond,
}

// Snapshot is the content the preview renders.
type Snapshot struct {
	Content     string
	CommittedAt time.Time
}

// Controller is the render synchronization state machine.
type Controller struct {
	timers *timer.Set
	timing Timing
	now    timer.Clock

	state    State
	expanded bool
	arrow    float64

	snapshot   Snapshot
	pending    string
	hasPending bool
}

// New creates an Idle, collapsed controller whose snapshot is initial.
// A nil clock uses the timer set's clock.
func New(timers *timer.Set, timing Timing, clock timer.Clock, initial string) *Controller {
	if clock == nil {
		clock = timers.Now
	}
	return &Controller{
		timers:   timers,
		timing:   timing,
		now:      clock,
		arrow:    1,
		snapshot: Snapshot{Content: initial, CommittedAt: clock()},
	}
}

// SetTiming replaces the durations. Running timers keep their deadlines.
func (c *Controller) SetTiming(t Timing) {
	c.timing = t
}

// SetContent reports a change of live content.
func (c *Controller) SetContent(content string) tea.Cmd {
	if c.state == Idle {
		c.commit(content)
		c.timers.Cancel(KeySnapshot)
		c.hasPending = false
		return nil
	}
	c.pending = content
	c.hasPending = true
	return nil
}

// Toggle starts an expand or collapse. Toggling mid-animation restarts the
// animation from the current layout. With animations disabled the layout
// flips at once.
func (c *Controller) Toggle() tea.Cmd {
	if c.timing.ArrowFade <= 0 && c.timing.PanelTransition <= 0 {
		c.timers.CancelPrefix(keyPrefix)
		c.expanded = !c.expanded
		c.state = Idle
		c.arrow = 1
		if c.hasPending {
			c.flush()
		}
		return nil
	}

	c.state = Animating
	c.arrow = 0
	c.timers.Cancel(KeySettle)
	c.timers.Cancel(KeySnapshot)

	_, arrow := c.timers.Schedule(KeyArrow, c.timing.ArrowFade)
	_, flip := c.timers.Schedule(KeyFlip, c.timing.ArrowFade)
	return tea.Batch(arrow, flip)
}

// Handle consumes the controller's timers. It reports whether msg was one of
// them and current.
func (c *Controller) Handle(msg tea.Msg) (bool, tea.Cmd) {
	fired, ok := msg.(timer.FiredMsg)
	if !ok || !strings.HasPrefix(fired.Handle.Key, keyPrefix) {
		return false, nil
	}
	if !c.timers.Claim(fired) {
		return false, nil
	}

	switch fired.Handle.Key {
	case KeyArrow:
		c.arrow = 1
	case KeyFlip:
		c.expanded = !c.expanded
		_, cmd := c.timers.Schedule(KeySettle, c.timing.PanelTransition)
		return true, cmd
	case KeySettle:
		c.state = Idle
		if !c.hasPending {
			return true, nil
		}
		if c.timing.RenderGuard <= 0 {
			c.flush()
			return true, nil
		}
		_, cmd := c.timers.Schedule(KeySnapshot, c.timing.RenderGuard)
		return true, cmd
	case KeySnapshot:
		// Only settle schedules a snapshot, and Toggle cancels it.
		if c.state == Idle && c.hasPending {
			c.flush()
		}
	}
	return true, nil
}

func (c *Controller) flush() {
	c.commit(c.pending)
	c.pending = ""
	c.hasPending = false
}

func (c *Controller) commit(content string) {
	c.snapshot = Snapshot{Content: content, CommittedAt: c.now()}
}

// Snapshot returns the content the preview should render.
func (c *Controller) Snapshot() Snapshot {
	return c.snapshot
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Expanded reports whether the editor pane is hidden.
func (c *Controller) Expanded() bool {
	return c.expanded
}

// ArrowOpacity returns the toggle indicator opacity, 0 while fading out.
func (c *Controller) ArrowOpacity() float64 {
	return c.arrow
}

// Pending reports whether a change is waiting for the animation to end.
func (c *Controller) Pending() bool {
	return c.hasPending
}

// Teardown cancels every timer. Pending content is discarded.
func (c *Controller) Teardown() {
	c.timers.CancelPrefix(keyPrefix)
	c.state = Idle
	c.arrow = 1
	c.pending = ""
	c.hasPending = false
}
