package wm

import (
	"testing"

	"github.com/jezek/xgb/xproto"

	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/xops"
)

// Law: a WM_NAME change on the root window updates the bar's status
// text; the same property change on a managed client does not.
func TestHandleEventPropertyNotifyRootWMNameUpdatesStatusText(t *testing.T) {
	w, fake := newTestWM(config.Default())
	root := fake.Root()
	fake.Windows[root] = &xops.WindowInfo{Name: "cpu: 12%"}

	w.HandleEvent(RawEvent{Type: "PropertyNotify", Window: root, Root: root, Atom: "WM_NAME"})

	if w.StatusText != "cpu: 12%" {
		t.Fatalf("expected StatusText set from root WM_NAME, got %q", w.StatusText)
	}

	fake.Windows[100] = &xops.WindowInfo{Name: "title"}
	w.Manage(100, 0, 0, 200, 200)
	w.HandleEvent(RawEvent{Type: "PropertyNotify", Window: 100, Root: root, Atom: "WM_NAME"})

	if w.StatusText != "cpu: 12%" {
		t.Fatalf("expected a client WM_NAME change to leave StatusText alone, got %q", w.StatusText)
	}
}

func TestHandleEventClientMessageWMStateIgnoresUnrelatedProperty(t *testing.T) {
	w, _ := newTestWM(config.Default())
	c := w.Manage(100, 0, 0, 200, 200)

	w.HandleEvent(RawEvent{
		Type: "ClientMessage", Window: 100, Atom: "_NET_WM_STATE",
		State: xops.StateAdd, StateProp1: "_NET_WM_STATE_DEMANDS_ATTENTION",
	})
	if c.IsFullscreen {
		t.Fatal("expected _NET_WM_STATE to be ignored when neither data[1] nor data[2] is the fullscreen atom")
	}

	w.HandleEvent(RawEvent{
		Type: "ClientMessage", Window: 100, Atom: "_NET_WM_STATE",
		State: xops.StateAdd, StateProp2: "_NET_WM_STATE_FULLSCREEN",
	})
	if !c.IsFullscreen {
		t.Fatal("expected _NET_WM_STATE to apply fullscreen when data[2] is the fullscreen atom")
	}
}

func TestHandleEventMapRequestManagesNewWindow(t *testing.T) {
	w, _ := newTestWM(config.Default())
	w.HandleEvent(RawEvent{Type: "MapRequest", Window: 100, X: 0, Y: 0, Width: 100, Height: 100})
	if w.findClient(100) == nil {
		t.Fatal("expected MapRequest to manage the window")
	}
}

func TestHandleEventMapRequestIgnoresOverrideRedirect(t *testing.T) {
	w, _ := newTestWM(config.Default())
	w.HandleEvent(RawEvent{Type: "MapRequest", Window: 100, OverrideRedir: true, Width: 100, Height: 100})
	if w.findClient(100) != nil {
		t.Fatal("expected override-redirect window not to be managed")
	}
}

func TestHandleEventMapRequestIgnoresAlreadyManaged(t *testing.T) {
	w, _ := newTestWM(config.Default())
	w.Manage(100, 0, 0, 100, 100)
	c := w.findClient(100)
	w.HandleEvent(RawEvent{Type: "MapRequest", Window: 100, Width: 50, Height: 50})
	if w.findClient(100) != c {
		t.Fatal("expected already-managed window to be left alone")
	}
}

func TestHandleEventUnmapNotifyUnmanagesRealUnmap(t *testing.T) {
	w, _ := newTestWM(config.Default())
	w.Manage(100, 0, 0, 100, 100)
	w.HandleEvent(RawEvent{Type: "UnmapNotify", Window: 100})
	if w.findClient(100) != nil {
		t.Fatal("expected a real unmap to unmanage the client")
	}
}

func TestHandleEventUnmapNotifySyntheticSetsWithdrawn(t *testing.T) {
	w, fake := newTestWM(config.Default())
	w.Manage(100, 0, 0, 100, 100)
	w.HandleEvent(RawEvent{Type: "UnmapNotify", Window: 100, SendEvent: true})
	if w.findClient(100) == nil {
		t.Fatal("expected synthetic unmap to leave the client managed")
	}
	if fake.WMStates[100] != xops.WithdrawnState {
		t.Fatal("expected WM_STATE set to Withdrawn on synthetic unmap")
	}
}

func TestHandleEventDestroyNotifyUnmanages(t *testing.T) {
	w, _ := newTestWM(config.Default())
	w.Manage(100, 0, 0, 100, 100)
	w.HandleEvent(RawEvent{Type: "DestroyNotify", Window: 100})
	if w.findClient(100) != nil {
		t.Fatal("expected DestroyNotify to unmanage the client")
	}
}

func TestHandleEventEnterNotifyFocusesClient(t *testing.T) {
	w, _ := newTestWM(config.Default())
	w.Manage(100, 0, 0, 100, 100)
	w.Manage(101, 0, 0, 100, 100)
	w.HandleEvent(RawEvent{Type: "EnterNotify", Window: 100})
	if w.SelMon.Sel != w.findClient(100) {
		t.Fatal("expected EnterNotify to focus the entered client")
	}
}

func TestHandleEventButtonPressOnClientFocuses(t *testing.T) {
	w, _ := newTestWM(config.Default())
	w.Manage(100, 0, 0, 100, 100)
	c2 := w.Manage(101, 0, 0, 100, 100)
	// Manage focuses the most recently managed client, so c2 is selected;
	// clicking on the other (unfocused) client should switch focus to it.
	w.HandleEvent(RawEvent{Type: "ButtonPress", Window: 100, Click: config.ClkClientWin})
	if w.SelMon.Sel == c2 {
		t.Fatal("expected focus to move off the previously selected client")
	}
	if w.SelMon.Sel != w.findClient(100) {
		t.Fatal("expected click on client window to focus it")
	}
}

// E2E: a tag-bar click dispatches "view" with the bar's exact tag mask
// when an Arg override is supplied, bypassing the even-division fallback.
func TestHandleEventButtonPressTagBarUsesArgOverride(t *testing.T) {
	w, _ := newTestWM(config.Default())
	arg := config.Arg{Kind: config.ArgUint, Uint: 1 << 4}
	w.HandleEvent(RawEvent{Type: "ButtonPress", Click: config.ClkTagBar, Button: 1, Arg: &arg})
	if w.SelMon.Tags() != 1<<4 {
		t.Fatalf("expected view to switch to tag mask %x, got %x", 1<<4, w.SelMon.Tags())
	}
}

func TestHandleEventButtonPressTagBarFallsBackToEvenDivision(t *testing.T) {
	w, _ := newTestWM(config.Default())
	px := w.SelMon.Mw/config.TAGS + w.SelMon.Mw/config.TAGS/2 // inside tag 1's cell
	w.HandleEvent(RawEvent{Type: "ButtonPress", Click: config.ClkTagBar, Button: 1, PointerX: px})
	if w.SelMon.Tags() != 1<<1 {
		t.Fatalf("expected view to switch to tag 1, got %x", w.SelMon.Tags())
	}
}

func TestHandleEventKeyPressDispatchesMatchingBinding(t *testing.T) {
	w, _ := newTestWM(config.Default())
	var key config.Key
	for _, k := range w.Cfg.Keys {
		if k.Action == "view" && k.Arg.Uint != 0 {
			key = k
			break
		}
	}
	if key.Keysym == 0 {
		t.Fatal("expected a default view keybinding to exist")
	}
	w.HandleEvent(RawEvent{Type: "KeyPress", Mod: key.Mod, Keysym: key.Keysym})
	if w.SelMon.Tags() != uint32(key.Arg.Uint) {
		t.Fatalf("expected view dispatch to switch tags to %x, got %x", key.Arg.Uint, w.SelMon.Tags())
	}
}

func TestHandleEventMappingNotifyRegrabsKeys(t *testing.T) {
	w, fake := newTestWM(config.Default())
	fake.GrabbedKeys = nil
	w.HandleEvent(RawEvent{Type: "MappingNotify"})
	if len(fake.GrabbedKeys) == 0 {
		t.Fatal("expected MappingNotify to re-issue key grabs")
	}
}

func TestCleanModMasksLockBits(t *testing.T) {
	w, _ := newTestWM(config.Default())
	w.NumlockMask = 0x10
	got := w.cleanMod(w.NumlockMask | uint16(xproto.ModMaskLock) | 0x8)
	if got&w.NumlockMask != 0 {
		t.Fatal("expected numlock bit masked out")
	}
	if got&uint16(xproto.ModMaskLock) != 0 {
		t.Fatal("expected ModMaskLock bit masked out")
	}
	if got&0x8 == 0 {
		t.Fatal("expected unrelated mod bits preserved")
	}
}

func TestTagClickMaskClampsToRange(t *testing.T) {
	w, _ := newTestWM(config.Default())
	if mask := w.tagClickMask(-5); mask != 1<<0 {
		t.Fatalf("expected negative px clamped to tag 0, got %x", mask)
	}
	if mask := w.tagClickMask(1 << 30); mask != 1<<(config.TAGS-1) {
		t.Fatalf("expected oversized px clamped to last tag, got %x", mask)
	}
}
