package tabanim

import (
	"slices"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/inkwell/internal/timer"
)

const window = 500 * time.Millisecond

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func setup() (*Controller, *timer.Set, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	timers := timer.NewSet(clk.now)
	return New(timers, window, clk.now), timers, clk
}

// fire delivers the live expiry of id as if its tick had elapsed.
func fire(t *testing.T, c *Controller, timers *timer.Set, id string) bool {
	t.Helper()
	h, ok := timers.Pending(keyPrefix + id)
	if !ok {
		return false
	}
	return c.Handle(timer.FiredMsg{Handle: h})
}

func TestSyncMarksAddedEntering(t *testing.T) {
	c, _, clk := setup()

	if cmd := c.Sync([]string{"a", "b"}); cmd == nil {
		t.Fatal("Sync with new ids returned no command")
	}
	if !c.IsEntering("a") || !c.IsEntering("b") {
		t.Fatalf("Entering = %v, want [a b]", c.Entering())
	}

	w, ok := c.Window("a")
	if !ok || !w.ExpiresAt.Equal(clk.t.Add(window)) {
		t.Errorf("Window(a) = %+v, %v", w, ok)
	}
}

func TestExpiryLeavesEntering(t *testing.T) {
	c, timers, clk := setup()
	c.Sync([]string{"a"})

	clk.advance(window)
	if !fire(t, c, timers, "a") {
		t.Fatal("expiry was not handled")
	}
	if c.IsEntering("a") {
		t.Error("tab still entering after its window")
	}
	if timers.Len() != 0 {
		t.Errorf("timers left pending: %d", timers.Len())
	}
}

func TestNoReentryWithoutAddition(t *testing.T) {
	c, timers, _ := setup()
	c.Sync([]string{"a"})
	fire(t, c, timers, "a")

	c.Sync([]string{"a", "b"})
	c.Sync([]string{"a", "b"})
	if c.IsEntering("a") {
		t.Error("existing tab re-entered")
	}
	if got := c.Entering(); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Entering = %v, want [b]", got)
	}
}

func TestRemovedTabCancelsTimer(t *testing.T) {
	c, timers, _ := setup()
	c.Sync([]string{"a", "b"})
	stale, _ := timers.Pending(keyPrefix + "b")

	c.Sync([]string{"a"})
	if c.IsEntering("b") {
		t.Error("removed tab still tracked")
	}
	if _, ok := c.Window("b"); ok {
		t.Error("removed tab still has a window")
	}
	if c.Handle(timer.FiredMsg{Handle: stale}) {
		t.Error("cancelled expiry was handled")
	}
}

func TestReaddedTabEntersAgain(t *testing.T) {
	c, timers, _ := setup()
	c.Sync([]string{"a", "b"})
	fire(t, c, timers, "b")
	c.Sync([]string{"a"})

	c.Sync([]string{"a", "b"})
	if !c.IsEntering("b") {
		t.Error("re-added tab did not enter")
	}
}

func TestForeignMessagesIgnored(t *testing.T) {
	c, timers, _ := setup()
	c.Sync([]string{"a"})
	h, _ := timers.Schedule("rendersync:flip", time.Second)

	if c.Handle(timer.FiredMsg{Handle: h}) {
		t.Error("claimed a foreign timer")
	}
	if _, ok := timers.Pending("rendersync:flip"); !ok {
		t.Error("foreign timer was consumed")
	}
}

func TestZeroWindowDisablesTracking(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	timers := timer.NewSet(clk.now)
	c := New(timers, 0, nil)

	c.Sync([]string{"a"})
	if c.IsEntering("a") || timers.Len() != 0 {
		t.Error("zero window still tracked the tab")
	}
}

func TestTeardown(t *testing.T) {
	c, timers, _ := setup()
	c.Sync([]string{"a", "b"})
	h, _ := timers.Pending(keyPrefix + "a")

	c.Teardown()
	if len(c.Entering()) != 0 {
		t.Errorf("Entering after teardown = %v", c.Entering())
	}
	if c.Handle(timer.FiredMsg{Handle: h}) {
		t.Error("expiry handled after teardown")
	}
}
