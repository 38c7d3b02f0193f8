package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/model"
	"github.com/rawmkit/rawm/internal/xops"
)

// RawEvent is the minimal, transport-agnostic shape the event loop
// consumes: a type tag plus the handful of fields any handler below needs.
// A Real-backed main loop translates raw xgb events read with
// WaitForEvent into these;
// tests construct them directly against a Fake.
type RawEvent struct {
	Type string // "MapRequest", "UnmapNotify", "ConfigureRequest", ...

	Window         xproto.Window
	Parent         xproto.Window
	Above          xproto.Window
	OverrideRedir  bool
	SendEvent      bool

	X, Y, Width, Height, BorderWidth int
	ValueMask                        uint16

	Atom  string
	State xops.StateAction

	// StateProp1/StateProp2 are a _NET_WM_STATE ClientMessage's data[1]/
	// data[2] atom names: the properties the action applies to. EWMH
	// allows either slot to carry the fullscreen atom.
	StateProp1, StateProp2 string

	Root xproto.Window

	// Input
	Mod      uint16
	Keysym   uint32
	Button   uint8
	Click    config.ClickArea
	PointerX int
	PointerY int

	// Arg overrides the statically configured Button.Arg for a
	// ClkTagBar click, set by a caller (e.g. the bar package) that
	// knows the exact cell boundaries a click landed in. Nil falls
	// back to tagClickMask's even-division approximation.
	Arg *config.Arg
}

// HandleEvent dispatches ev to the matching handler via a fixed-size
// event-type switch. Unknown event types are silently ignored, matching
// how the X11 event loop ignores substructure events it does not
// subscribe to.
func (wm *WM) HandleEvent(ev RawEvent) {
	switch ev.Type {
	case "MapRequest":
		wm.onMapRequest(ev)
	case "ConfigureRequest":
		wm.onConfigureRequest(ev)
	case "ConfigureNotify":
		wm.onConfigureNotify(ev)
	case "UnmapNotify":
		wm.onUnmapNotify(ev)
	case "DestroyNotify":
		wm.onDestroyNotify(ev)
	case "EnterNotify":
		wm.onEnterNotify(ev)
	case "FocusIn":
		wm.onFocusIn(ev)
	case "PropertyNotify":
		wm.onPropertyNotify(ev)
	case "ClientMessage":
		wm.onClientMessage(ev)
	case "MappingNotify":
		_ = wm.grabKeys()
	case "KeyPress":
		wm.onKeyPress(ev)
	case "ButtonPress":
		wm.onButtonPress(ev)
	}
}

// cleanMod masks out the lock-key bits a grab was duplicated across, so a
// configured binding's Mod compares equal regardless of Num/Caps Lock.
func (wm *WM) cleanMod(mod uint16) uint16 {
	return mod &^ (wm.NumlockMask | xproto.ModMaskLock)
}

func (wm *WM) onKeyPress(ev RawEvent) {
	mod := wm.cleanMod(ev.Mod)
	for _, k := range wm.Cfg.Keys {
		if k.Keysym == ev.Keysym && wm.cleanMod(k.Mod) == mod {
			wm.Dispatch(k.Action, k.Arg)
			return
		}
	}
}

func (wm *WM) onButtonPress(ev RawEvent) {
	if ev.Click == config.ClkClientWin {
		if c := wm.findClient(ev.Window); c != nil && c != wm.SelMon.Sel {
			wm.Focus(c)
		}
	}
	mod := wm.cleanMod(ev.Mod)
	for _, b := range wm.Cfg.Buttons {
		if b.Click != ev.Click || b.Button != ev.Button {
			continue
		}
		if wm.cleanMod(b.Mod) != mod {
			continue
		}
		arg := b.Arg
		if ev.Click == config.ClkTagBar {
			if ev.Arg != nil {
				arg = *ev.Arg
			} else {
				arg = config.Arg{Kind: config.ArgUint, Uint: uint(wm.tagClickMask(ev.PointerX))}
			}
		}
		wm.Dispatch(b.Action, arg)
		return
	}
}

// tagClickMask approximates dwm's "which tag cell was clicked" lookup by
// dividing the bar's width evenly across the configured tags, since the
// exact cell widths are a function of font metrics owned by the bar
// package rather than the engine.
func (wm *WM) tagClickMask(px int) uint32 {
	m := wm.SelMon
	if m == nil || m.Mw == 0 {
		return 0
	}
	cell := m.Mw / config.TAGS
	if cell == 0 {
		return 0
	}
	idx := px / cell
	if idx < 0 {
		idx = 0
	}
	if idx >= config.TAGS {
		idx = config.TAGS - 1
	}
	return 1 << uint(idx)
}

// onMapRequest manages a new top-level window, ignoring override-redirect
// windows and windows already under management.
func (wm *WM) onMapRequest(ev RawEvent) {
	if ev.OverrideRedir || wm.findClient(ev.Window) != nil {
		return
	}
	wm.Manage(ev.Window, ev.X, ev.Y, ev.Width, ev.Height)
}

// onConfigureRequest honors a not-yet-managed window's request verbatim;
// for a managed floating client it applies the requested geometry deltas
// (tiled clients get their geometry purely from Arrange; the request is
// answered by re-applying the client's current geometry with
// MoveResizeWindow).
func (wm *WM) onConfigureRequest(ev RawEvent) {
	c := wm.findClient(ev.Window)
	if c == nil {
		_ = wm.Ops.MoveResizeWindow(ev.Window, ev.X, ev.Y, ev.Width, ev.Height)
		return
	}
	if c.IsFloating || c.Mon.Lt[c.Mon.SelLt].Arrange == nil {
		if ev.ValueMask&xproto.ConfigWindowX != 0 {
			c.X = c.Mon.Mx + ev.X
		}
		if ev.ValueMask&xproto.ConfigWindowY != 0 {
			c.Y = c.Mon.My + ev.Y
		}
		if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
			c.W = ev.Width
		}
		if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
			c.H = ev.Height
		}
		if c.IsVisible() {
			_ = wm.Ops.MoveResizeWindow(c.Win, c.X, c.Y, c.W, c.H)
		}
	}
	_ = wm.Ops.MoveResizeWindow(c.Win, c.X, c.Y, c.W, c.H)
}

// onConfigureNotify re-probes monitor geometry when the root window's
// dimensions change, e.g. an RandR/Xinerama reconfiguration.
func (wm *WM) onConfigureNotify(ev RawEvent) {
	if ev.Window != ev.Root {
		return
	}
	if err := wm.updateGeometry(); err == nil {
		wm.Focus(nil)
		wm.Arrange(nil)
	}
}

func (wm *WM) onUnmapNotify(ev RawEvent) {
	c := wm.findClient(ev.Window)
	if c == nil {
		return
	}
	if ev.SendEvent {
		_ = wm.Ops.SetWMState(ev.Window, xops.WithdrawnState)
		return
	}
	wm.Unmanage(c, false)
}

func (wm *WM) onDestroyNotify(ev RawEvent) {
	if c := wm.findClient(ev.Window); c != nil {
		wm.Unmanage(c, true)
	}
}

// onEnterNotify follows the pointer across monitors/windows, focusing the
// entered client (or the root's monitor, for a root enter).
func (wm *WM) onEnterNotify(ev RawEvent) {
	c := wm.findClient(ev.Window)
	var mon *model.Monitor
	if c != nil {
		mon = c.Mon
	} else if ev.Window == ev.Root {
		mon = wm.SelMon
	} else {
		return
	}
	if mon != wm.SelMon {
		wm.unfocus(wm.SelMon.Sel, true)
		wm.SelMon = mon
	} else if c == nil || c == wm.SelMon.Sel {
		return
	}
	wm.Focus(c)
}

// onFocusIn re-asserts focus on the selected client whenever some other
// window steals X input focus out from under it.
func (wm *WM) onFocusIn(ev RawEvent) {
	if wm.SelMon != nil && wm.SelMon.Sel != nil && wm.SelMon.Sel.Win != ev.Window {
		wm.setFocus(wm.SelMon.Sel)
	}
}

// onPropertyNotify re-reads the property named by ev.Atom when it changes.
// A WM_NAME change on the root window updates the bar's status text (set
// externally, e.g. via xsetroot -name); a change on a managed client
// updates its title, WM_HINTS (urgency), WM_TRANSIENT_FOR->floating
// promotion, or WM_NORMAL_HINTS.
func (wm *WM) onPropertyNotify(ev RawEvent) {
	if ev.Window == ev.Root && ev.Atom == "WM_NAME" {
		if text, err := wm.Ops.GetWMName(ev.Window); err == nil {
			wm.StatusText = text
			wm.DrawBars()
		}
		return
	}
	c := wm.findClient(ev.Window)
	if c == nil {
		return
	}
	switch ev.Atom {
	case "WM_NAME", "_NET_WM_NAME":
		wm.resolveTitle(c)
		if c == c.Mon.Sel {
			wm.DrawBars()
		}
	case "WM_HINTS":
		urgent, neverFocus, _ := wm.Ops.GetWMHints(c.Win)
		c.IsUrgent = urgent
		c.NeverFocus = neverFocus
		if c.IsUrgent {
			wm.DrawBars()
		}
	case "WM_NORMAL_HINTS":
		if hints, ok, _ := wm.Ops.GetWMNormalHints(c.Win); ok {
			c.Hints = toModelHints(hints)
		}
	case "WM_TRANSIENT_FOR":
		if _, ok, _ := wm.Ops.GetTransientFor(c.Win); ok && !c.IsFloating {
			c.IsFloating = true
			wm.Arrange(c.Mon)
		}
	}
}

// onClientMessage handles the two supported EWMH client messages:
// _NET_WM_STATE (fullscreen only) and _NET_ACTIVE_WINDOW. Per EWMH,
// _NET_WM_STATE only applies when one of data[1]/data[2] names the
// property being acted on.
func (wm *WM) onClientMessage(ev RawEvent) {
	c := wm.findClient(ev.Window)
	switch ev.Atom {
	case "_NET_WM_STATE":
		if ev.StateProp1 == "_NET_WM_STATE_FULLSCREEN" || ev.StateProp2 == "_NET_WM_STATE_FULLSCREEN" {
			wm.HandleWMStateRequest(c, ev.State, "_NET_WM_STATE_FULLSCREEN")
		}
	case "_NET_ACTIVE_WINDOW":
		wm.HandleActiveWindowRequest(c)
	}
}

// Scan manages every already-mapped top-level window found on the root, in
// the order supplied, for use right after Setup. Transient windows are
// passed as the second slice and managed after every normal window, so
// their owners are already managed.
func (wm *WM) Scan(normal, transient []ScanWindow) {
	for _, w := range normal {
		if w.OverrideRedirect || !w.Mapped {
			continue
		}
		wm.Manage(w.Window, w.X, w.Y, w.Width, w.Height)
	}
	for _, w := range transient {
		if !w.Mapped {
			continue
		}
		wm.Manage(w.Window, w.X, w.Y, w.Width, w.Height)
	}
}

// ScanWindow is one pre-existing top-level window discovered by the
// caller's QueryTree/GetWindowAttributes walk before Scan is called.
type ScanWindow struct {
	Window                     xproto.Window
	X, Y, Width, Height        int
	Mapped, OverrideRedirect   bool
}
