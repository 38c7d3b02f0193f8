package wm

import (
	"testing"

	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/xops"
)

func TestMoveMousePromotesTiledClientToFloating(t *testing.T) {
	w, _ := newTestWM(config.Default())
	c := w.Manage(100, 10, 10, 200, 200)
	c.IsFloating = false
	w.MoveMouse(c)
	if !c.IsFloating {
		t.Fatal("expected MoveMouse to promote a tiled client to floating")
	}
}

func TestMoveMouseIgnoresFullscreenClient(t *testing.T) {
	w, fake := newTestWM(config.Default())
	c := w.Manage(100, 10, 10, 200, 200)
	w.SetFullscreen(c, true)
	calls := len(fake.Calls)
	w.MoveMouse(c)
	if len(fake.Calls) != calls {
		t.Fatal("expected MoveMouse on a fullscreen client to be a no-op")
	}
}

func TestResizeMouseWarpsPointerOnce(t *testing.T) {
	w, fake := newTestWM(config.Default())
	c := w.Manage(100, 10, 10, 200, 200)
	w.ResizeMouse(c)
	if fake.CallCount("WarpPointer", 100) != 1 {
		t.Fatal("expected exactly one WarpPointer call to the resized corner")
	}
	if !c.IsFloating {
		t.Fatal("expected ResizeMouse to promote the client to floating")
	}
}

func TestResizeMouseIgnoresFullscreenClient(t *testing.T) {
	w, fake := newTestWM(config.Default())
	c := w.Manage(100, 10, 10, 200, 200)
	w.SetFullscreen(c, true)
	w.ResizeMouse(c)
	if fake.CallCount("WarpPointer", 100) != 0 {
		t.Fatal("expected ResizeMouse on a fullscreen client to be a no-op")
	}
}

// Law: MoveMouse tracks every queued motion sample in order and stops at
// the release, leaving the client at the last sampled position.
func TestMoveMouseFollowsQueuedMotionUntilRelease(t *testing.T) {
	w, fake := newTestWM(config.Default())
	w.Cfg.Behavior.Snap = 0
	c := w.Manage(100, 300, 300, 200, 200)
	c.IsFloating = false
	ocx, ocy := c.X, c.Y
	fake.PointerEvents = []xops.PointerEvent{
		{X: 20, Y: 20},
		{X: 40, Y: 20},
		{X: 40, Y: 40, Released: true},
	}
	w.MoveMouse(c)
	if c.X != ocx+40 || c.Y != ocy+40 {
		t.Fatalf("expected client to end 40,40 from its pre-drag position, got %d,%d (started %d,%d)", c.X, c.Y, ocx, ocy)
	}
}

func TestSnapPullsPositionToMonitorEdge(t *testing.T) {
	w, _ := newTestWM(config.Default())
	c := w.Manage(100, 0, 0, 200, 200)
	m := c.Mon
	w.Cfg.Behavior.Snap = 32

	x, y := w.snap(c, m.Wx+5, m.Wy+5)
	if x != m.Wx || y != m.Wy {
		t.Fatalf("expected snap to pull near-origin position to the work-area edge, got %d,%d", x, y)
	}

	x, y = w.snap(c, m.Wx+m.Ww/2, m.Wy+m.Wh/2)
	if x != m.Wx+m.Ww/2 || y != m.Wy+m.Wh/2 {
		t.Fatal("expected snap to leave a far-from-edge position untouched")
	}
}

func TestMonitorAtFallsBackToSelMonOutsideAnyHead(t *testing.T) {
	w, _ := newTestWM(config.Default())
	if got := w.monitorAt(-1000, -1000); got != w.SelMon {
		t.Fatal("expected monitorAt to fall back to SelMon when no head contains the point")
	}
}

// Law: sending a client to another monitor and back restores it to its
// original monitor.
func TestSendToMonitorRoundTripRestoresMonitor(t *testing.T) {
	fake := xops.NewFake()
	fake.HeadsList = []xops.Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 1920, Height: 1080},
	}
	w := New(fake, config.Default(), nil)
	if err := w.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}

	mons := w.monitorsSlice()
	if len(mons) != 2 {
		t.Fatalf("expected 2 monitors, got %d", len(mons))
	}
	origin := mons[0]
	other := mons[1]

	c := w.Manage(100, 10, 10, 100, 100)
	if c.Mon != origin {
		t.Fatalf("expected client managed on the selected monitor")
	}

	w.SendToMonitor(c, other)
	if c.Mon != other {
		t.Fatal("expected client moved to the other monitor")
	}
	w.SendToMonitor(c, origin)
	if c.Mon != origin {
		t.Fatal("expected client moved back to the original monitor")
	}
}

func TestSendToMonitorSameMonitorIsNoop(t *testing.T) {
	w, _ := newTestWM(config.Default())
	c := w.Manage(100, 0, 0, 100, 100)
	mon := c.Mon
	w.SendToMonitor(c, mon)
	if c.Mon != mon {
		t.Fatal("expected SendToMonitor to a client's own monitor to be a no-op")
	}
}
