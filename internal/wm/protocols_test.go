package wm

import (
	"testing"

	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/xops"
)

// E2E: toggling fullscreen on and back off restores the client's
// pre-fullscreen geometry and floating state exactly.
func TestFullscreenRestoresGeometry(t *testing.T) {
	w, _ := newTestWM(config.Default())
	c := w.Manage(100, 50, 60, 300, 200)
	c.IsFloating = true
	origX, origY, origW, origH := c.X, c.Y, c.W, c.H

	w.SetFullscreen(c, true)
	if !c.IsFullscreen || !c.IsFloating {
		t.Fatal("expected fullscreen+floating after SetFullscreen(true)")
	}
	if c.X != c.Mon.Mx || c.Y != c.Mon.My || c.W != c.Mon.Mw || c.H != c.Mon.Mh {
		t.Fatalf("expected full monitor geometry, got %d,%d %dx%d", c.X, c.Y, c.W, c.H)
	}
	if c.BorderWidth != 0 {
		t.Fatalf("expected zero border while fullscreen, got %d", c.BorderWidth)
	}

	w.SetFullscreen(c, false)
	if c.IsFullscreen {
		t.Fatal("expected fullscreen cleared")
	}
	if c.X != origX || c.Y != origY || c.W != origW || c.H != origH {
		t.Fatalf("geometry not restored: got %d,%d %dx%d want %d,%d %dx%d",
			c.X, c.Y, c.W, c.H, origX, origY, origW, origH)
	}
	if !c.IsFloating {
		t.Fatal("expected floating state restored")
	}
}

func TestToggleFullscreenFlips(t *testing.T) {
	w, _ := newTestWM(config.Default())
	c := w.Manage(100, 0, 0, 200, 200)
	w.ToggleFullscreen(c)
	if !c.IsFullscreen {
		t.Fatal("expected fullscreen after first toggle")
	}
	w.ToggleFullscreen(c)
	if c.IsFullscreen {
		t.Fatal("expected fullscreen cleared after second toggle")
	}
}

func TestHandleWMStateRequestOnlyActsOnFullscreen(t *testing.T) {
	w, _ := newTestWM(config.Default())
	c := w.Manage(100, 0, 0, 200, 200)

	w.HandleWMStateRequest(c, xops.StateAdd, "_NET_WM_STATE_DEMANDS_ATTENTION")
	if c.IsFullscreen {
		t.Fatal("expected non-fullscreen state request to be ignored")
	}

	w.HandleWMStateRequest(c, xops.StateAdd, "_NET_WM_STATE_FULLSCREEN")
	if !c.IsFullscreen {
		t.Fatal("expected StateAdd fullscreen to apply")
	}

	w.HandleWMStateRequest(c, xops.StateToggle, "_NET_WM_STATE_FULLSCREEN")
	if c.IsFullscreen {
		t.Fatal("expected StateToggle to clear fullscreen")
	}
}

// Law: _NET_ACTIVE_WINDOW on a client whose tags aren't currently shown
// switches its monitor to a view containing it and focuses it, rather
// than just flagging it urgent.
func TestHandleActiveWindowRequestSwitchesViewAndFocuses(t *testing.T) {
	w, _ := newTestWM(config.Default())
	c := w.Manage(100, 0, 0, 200, 200)
	w.Tag(c, 1<<2) // move c to tag 3, off the default view
	other := w.Manage(200, 0, 0, 200, 200)
	w.Focus(other)

	w.HandleActiveWindowRequest(c)

	if w.SelMon.Sel != c {
		t.Fatalf("expected c focused after _NET_ACTIVE_WINDOW, got %v", w.SelMon.Sel)
	}
	if !c.IsVisible() {
		t.Fatal("expected c's tags to be visible after _NET_ACTIVE_WINDOW")
	}
	if w.SelMon.Clients != c {
		t.Fatal("expected c popped to the head of its monitor's client list")
	}
}

// E2E: killing a client that advertises WM_DELETE_WINDOW sends exactly
// one delete-window message rather than severing its connection.
func TestKillSendsDeleteWindowWhenSupported(t *testing.T) {
	w, fake := newTestWM(config.Default())
	fake.Windows[100] = &xops.WindowInfo{Protocols: []string{"WM_DELETE_WINDOW"}}
	c := w.Manage(100, 0, 0, 200, 200)

	w.Kill(c)

	if fake.CallCount("SendDeleteWindow", 100) != 1 {
		t.Fatal("expected exactly one SendDeleteWindow")
	}
	if fake.CallCount("KillClientConnection", 100) != 0 {
		t.Fatal("expected no forced kill when WM_DELETE_WINDOW is supported")
	}
}

func TestKillForciblyTerminatesUnprotocoled(t *testing.T) {
	w, fake := newTestWM(config.Default())
	c := w.Manage(100, 0, 0, 200, 200)

	w.Kill(c)

	if fake.CallCount("KillClientConnection", 100) != 1 {
		t.Fatal("expected a forced connection kill")
	}
	if fake.CallCount("SendDeleteWindow", 100) != 0 {
		t.Fatal("expected no delete-window message without WM_DELETE_WINDOW support")
	}
}
