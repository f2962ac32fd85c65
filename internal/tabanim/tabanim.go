// Package tabanim tracks which tabs are playing their enter animation.
//
// A tab is Entering from the moment its id first shows up in a synced id list
// until its window elapses. The view reads IsEntering to style new tabs.
package tabanim

import (
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/inkwell/internal/timer"
)

const keyPrefix = "tabanim:"

// Window is the animation state of one tab.
type Window struct {
	Entering  bool
	ExpiresAt time.Time
}

// Controller diffs successive tab id lists and runs one expiry timer per
// newly added tab.
type Controller struct {
	timers   *timer.Set
	duration time.Duration
	now      timer.Clock

	previous []string
	windows  map[string]Window
}

// New creates a controller. A non-positive window disables tracking; a nil
// clock uses the timer set's clock.
func New(timers *timer.Set, window time.Duration, clock timer.Clock) *Controller {
	if clock == nil {
		clock = timers.Now
	}
	return &Controller{
		timers:   timers,
		duration: window,
		now:      clock,
		windows:  make(map[string]Window),
	}
}

// SetWindow changes the duration used for later additions.
func (c *Controller) SetWindow(d time.Duration) {
	c.duration = d
}

// Sync records the current id list. Ids not present in the previous list
// start entering; ids that disappeared stop being tracked.
func (c *Controller) Sync(ids []string) tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range ids {
		if slices.Contains(c.previous, id) {
			continue
		}
		if c.duration <= 0 {
			continue
		}
		_, cmd := c.timers.Schedule(keyPrefix+id, c.duration)
		c.windows[id] = Window{Entering: true, ExpiresAt: c.now().Add(c.duration)}
		cmds = append(cmds, cmd)
	}

	for _, id := range c.previous {
		if slices.Contains(ids, id) {
			continue
		}
		c.timers.Cancel(keyPrefix + id)
		delete(c.windows, id)
	}

	c.previous = slices.Clone(ids)
	return tea.Batch(cmds...)
}

// Handle consumes an expiry timer. It reports whether msg belonged to this
// controller and was current.
func (c *Controller) Handle(msg timer.FiredMsg) bool {
	id, ok := strings.CutPrefix(msg.Handle.Key, keyPrefix)
	if !ok || !c.timers.Claim(msg) {
		return false
	}
	delete(c.windows, id)
	return true
}

// IsEntering reports whether id is inside its enter window.
func (c *Controller) IsEntering(id string) bool {
	return c.windows[id].Entering
}

// Entering returns the entering ids in tab order.
func (c *Controller) Entering() []string {
	var out []string
	for _, id := range c.previous {
		if c.windows[id].Entering {
			out = append(out, id)
		}
	}
	return out
}

// Window returns the tracked window of id.
func (c *Controller) Window(id string) (Window, bool) {
	w, ok := c.windows[id]
	return w, ok
}

// Teardown cancels every expiry timer and forgets all windows.
func (c *Controller) Teardown() {
	c.timers.CancelPrefix(keyPrefix)
	clear(c.windows)
}
