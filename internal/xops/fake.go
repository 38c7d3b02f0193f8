package xops

import "github.com/jezek/xgb/xproto"

// Call records one recorded Ops invocation, for tests asserting the exact
// protocol traffic a scenario produces (e.g. "exactly one ClientMessage").
type Call struct {
	Name string
	Win  xproto.Window
	Args []interface{}
}

// WindowInfo is the fake's per-window property store, populated by tests
// before exercising manage/unmanage/focus logic.
type WindowInfo struct {
	Class, Instance, Role string
	Name, NetName         string
	Hints                 NormalHints
	HasHints              bool
	Urgent, NeverFocus    bool
	Protocols             []string
	TransientFor          xproto.Window
	HasTransientFor       bool
	NetStates             []string
	IsDialog              bool
	NoDecor               bool
}

// Fake is an in-memory Ops recorder: mutating calls are appended to Calls
// (getters and key grabs are not; grabs are kept in GrabbedKeys instead)
// and most configuration calls also update simple maps a test can assert
// against directly (Geometry, BorderWidths, Mapped, ...).
type Fake struct {
	Calls []Call

	Windows map[xproto.Window]*WindowInfo

	Geometry     map[xproto.Window][4]int // x,y,w,h
	BorderWidths map[xproto.Window]int
	Mapped       map[xproto.Window]bool
	BorderColors map[xproto.Window]string
	WMStates     map[xproto.Window]WMState
	ActiveWindow xproto.Window
	ClientList   []xproto.Window
	Fullscreen   map[xproto.Window]bool
	Opacity      map[xproto.Window]float64

	HeadsList []Rect
	RootRect  Rect

	FocusedWindow xproto.Window
	GrabbedKeys   []struct {
		Mod uint16
		Key xproto.Keycode
	}
	PointerEvents []PointerEvent
}

// NewFake returns an empty recording Ops implementation.
func NewFake() *Fake {
	return &Fake{
		Windows:      map[xproto.Window]*WindowInfo{},
		Geometry:     map[xproto.Window][4]int{},
		BorderWidths: map[xproto.Window]int{},
		Mapped:       map[xproto.Window]bool{},
		BorderColors: map[xproto.Window]string{},
		WMStates:     map[xproto.Window]WMState{},
		Fullscreen:   map[xproto.Window]bool{},
		Opacity:      map[xproto.Window]float64{},
		RootRect:     Rect{Width: 1920, Height: 1080},
	}
}

func (f *Fake) record(name string, win xproto.Window, args ...interface{}) {
	f.Calls = append(f.Calls, Call{Name: name, Win: win, Args: args})
}

// CallCount returns how many times name was recorded for win (0 for any
// window when win is 0).
func (f *Fake) CallCount(name string, win xproto.Window) int {
	n := 0
	for _, c := range f.Calls {
		if c.Name == name && (win == 0 || c.Win == win) {
			n++
		}
	}
	return n
}

// info returns (creating if absent) the WindowInfo for win.
func (f *Fake) info(win xproto.Window) *WindowInfo {
	wi, ok := f.Windows[win]
	if !ok {
		wi = &WindowInfo{}
		f.Windows[win] = wi
	}
	return wi
}

func (f *Fake) Root() xproto.Window         { return 1 }
func (f *Fake) RootGeometry() Rect          { return f.RootRect }
func (f *Fake) Heads() ([]Rect, error)      { return f.HeadsList, nil }
func (f *Fake) BecomeWM() error             { f.record("BecomeWM", 0); return nil }
func (f *Fake) Sync()                       {}
func (f *Fake) Close()                      {}
func (f *Fake) GrabServer() error           { f.record("GrabServer", 0); return nil }
func (f *Fake) UngrabServer() error         { f.record("UngrabServer", 0); return nil }

func (f *Fake) MoveResizeWindow(win xproto.Window, x, y, w, h int) error {
	f.record("MoveResizeWindow", win, x, y, w, h)
	f.Geometry[win] = [4]int{x, y, w, h}
	return nil
}

func (f *Fake) SetBorderWidth(win xproto.Window, bw int) error {
	f.record("SetBorderWidth", win, bw)
	f.BorderWidths[win] = bw
	return nil
}

func (f *Fake) SetBorderColor(win xproto.Window, hex string) error {
	f.record("SetBorderColor", win, hex)
	f.BorderColors[win] = hex
	return nil
}

func (f *Fake) MapWindow(win xproto.Window) error {
	f.record("MapWindow", win)
	f.Mapped[win] = true
	return nil
}

func (f *Fake) UnmapWindow(win xproto.Window) error {
	f.record("UnmapWindow", win)
	f.Mapped[win] = false
	return nil
}

func (f *Fake) RaiseWindow(win xproto.Window) error {
	f.record("RaiseWindow", win)
	return nil
}

func (f *Fake) RestackBelow(win, sibling xproto.Window) error {
	f.record("RestackBelow", win, sibling)
	return nil
}

func (f *Fake) SelectClientEvents(win xproto.Window) error {
	f.record("SelectClientEvents", win)
	return nil
}

func (f *Fake) KillClientConnection(win xproto.Window) error {
	f.record("KillClientConnection", win)
	return nil
}

func (f *Fake) GetWMClass(win xproto.Window) (string, string, error) {
	wi := f.info(win)
	class, instance := wi.Class, wi.Instance
	if class == "" {
		class = "broken"
	}
	if instance == "" {
		instance = "broken"
	}
	return class, instance, nil
}

func (f *Fake) GetWMName(win xproto.Window) (string, error) { return f.info(win).Name, nil }
func (f *Fake) GetNetWMName(win xproto.Window) (string, error) { return f.info(win).NetName, nil }
func (f *Fake) GetWMRole(win xproto.Window) (string, error)    { return f.info(win).Role, nil }

func (f *Fake) GetWMNormalHints(win xproto.Window) (NormalHints, bool, error) {
	wi := f.info(win)
	return wi.Hints, wi.HasHints, nil
}

func (f *Fake) GetWMHints(win xproto.Window) (bool, bool, error) {
	wi := f.info(win)
	return wi.Urgent, wi.NeverFocus, nil
}

func (f *Fake) ClearUrgentHint(win xproto.Window) error {
	f.record("ClearUrgentHint", win)
	f.info(win).Urgent = false
	return nil
}

func (f *Fake) GetWMProtocols(win xproto.Window) ([]string, error) { return f.info(win).Protocols, nil }

func (f *Fake) GetTransientFor(win xproto.Window) (xproto.Window, bool, error) {
	wi := f.info(win)
	return wi.TransientFor, wi.HasTransientFor, nil
}

func (f *Fake) GetMotifDecorations(win xproto.Window) (bool, error) {
	return f.info(win).NoDecor, nil
}

func (f *Fake) SetWMState(win xproto.Window, state WMState) error {
	f.record("SetWMState", win, state)
	f.WMStates[win] = state
	return nil
}

func (f *Fake) SendDeleteWindow(win xproto.Window) error {
	f.record("SendDeleteWindow", win)
	return nil
}

func (f *Fake) SendTakeFocus(win xproto.Window, t xproto.Timestamp) error {
	f.record("SendTakeFocus", win, t)
	return nil
}

func (f *Fake) SetInputFocus(win xproto.Window, t xproto.Timestamp) error {
	f.record("SetInputFocus", win, t)
	f.FocusedWindow = win
	return nil
}

func (f *Fake) SetFocusToRoot() error {
	f.record("SetFocusToRoot", 0)
	f.FocusedWindow = 0
	return nil
}

func (f *Fake) InitSupported(atoms []string) error { f.record("InitSupported", 0, atoms); return nil }

func (f *Fake) SetActiveWindow(win xproto.Window) error {
	f.record("SetActiveWindow", win)
	f.ActiveWindow = win
	return nil
}

func (f *Fake) ClearActiveWindow() error {
	f.record("ClearActiveWindow", 0)
	f.ActiveWindow = 0
	return nil
}

func (f *Fake) SetClientList(wins []xproto.Window) error {
	f.record("SetClientList", 0, wins)
	f.ClientList = wins
	return nil
}

func (f *Fake) GetNetWMStates(win xproto.Window) ([]string, error) { return f.info(win).NetStates, nil }

func (f *Fake) SetFullscreenState(win xproto.Window, fullscreen bool) error {
	f.record("SetFullscreenState", win, fullscreen)
	f.Fullscreen[win] = fullscreen
	return nil
}

func (f *Fake) GetWindowTypeDialog(win xproto.Window) (bool, error) { return f.info(win).IsDialog, nil }

func (f *Fake) SetWindowOpacity(win xproto.Window, opacity float64) error {
	f.record("SetWindowOpacity", win, opacity)
	f.Opacity[win] = opacity
	return nil
}

func (f *Fake) GrabKey(mod uint16, keycode xproto.Keycode) error {
	f.GrabbedKeys = append(f.GrabbedKeys, struct {
		Mod uint16
		Key xproto.Keycode
	}{mod, keycode})
	return nil
}

func (f *Fake) UngrabKeys() error { f.GrabbedKeys = nil; return nil }

// KeysymToKeycode maps every keysym to itself cast down to a keycode, which
// is enough for tests to assert "one grab per configured key" without
// modeling a real keymap.
func (f *Fake) KeysymToKeycode(keysym uint32) (xproto.Keycode, error) {
	return xproto.Keycode(keysym & 0xff), nil
}

func (f *Fake) GrabButtonsUnfocused(win xproto.Window) error {
	f.record("GrabButtonsUnfocused", win)
	return nil
}

func (f *Fake) GrabButtonsFocused(win xproto.Window, buttons []ButtonSpec) error {
	f.record("GrabButtonsFocused", win, buttons)
	return nil
}

func (f *Fake) UngrabButtons(win xproto.Window) error {
	f.record("UngrabButtons", win)
	return nil
}

func (f *Fake) NumlockMask() uint16 { return 0x10 }
func (f *Fake) GrabPointerFor(kind GrabKind) error { f.record("GrabPointerFor", 0, kind); return nil }
func (f *Fake) UngrabPointer() error               { f.record("UngrabPointer", 0); return nil }

func (f *Fake) QueryPointer(root xproto.Window) (int, int, error) { return 0, 0, nil }
func (f *Fake) WarpPointer(win xproto.Window, x, y int) error {
	f.record("WarpPointer", win, x, y)
	return nil
}
func (f *Fake) DrainEnterNotify() { f.record("DrainEnterNotify", 0) }

// PointerEvent is one queued motion/release sample NextPointerEvent
// returns, consumed front-to-back by a test-driven drag.
type PointerEvent struct {
	X, Y     int
	Released bool
}

// NextPointerEvent consumes the next queued PointerEvent. An empty queue
// reports an immediate button release at (0, 0), ending any drag loop
// still polling it, so tests that never populate PointerEvents keep their
// existing single-sample behavior.
func (f *Fake) NextPointerEvent() (int, int, bool, error) {
	if len(f.PointerEvents) == 0 {
		return 0, 0, true, nil
	}
	ev := f.PointerEvents[0]
	f.PointerEvents = f.PointerEvents[1:]
	return ev.X, ev.Y, ev.Released, nil
}

var _ Ops = (*Fake)(nil)
var _ Ops = (*Real)(nil)
