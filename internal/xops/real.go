package xops

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/keybind"
	"github.com/jezek/xgbutil/motif"
	"github.com/jezek/xgbutil/mousebind"
	"github.com/jezek/xgbutil/xcursor"
	"github.com/jezek/xgbutil/xinerama"
	"github.com/jezek/xgbutil/xwindow"
)

// Real is the xgbutil-backed Ops implementation used at runtime. It keeps
// no engine state of its own beyond the X connection and long-lived
// cursors, matching the "global WM state owns one connection" design.
type Real struct {
	X    *xgbutil.XUtil
	root xproto.Window

	cursors struct {
		normal, move, resize xproto.Cursor
	}
}

// NewReal opens the X connection named by $DISPLAY and prepares cursors.
func NewReal() (*Real, error) {
	X, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X: %w", err)
	}
	r := &Real{X: X, root: X.RootWin()}
	keybind.Initialize(X)
	mousebind.Initialize(X)
	r.cursors.normal = xcursor.CreateCursor(X, xcursor.LeftPtr)
	r.cursors.move = xcursor.CreateCursor(X, xcursor.Fleur)
	r.cursors.resize = xcursor.CreateCursor(X, xcursor.DoubleArrow)
	return r, nil
}

func (r *Real) Root() xproto.Window { return r.root }

// Conn exposes the underlying xgbutil connection for packages that draw
// directly with xgraphics (internal/bar), outside the Ops abstraction the
// core engine is restricted to.
func (r *Real) Conn() *xgbutil.XUtil { return r.X }

func (r *Real) RootGeometry() Rect {
	g := xwindow.RootGeometry(r.X)
	return Rect{Width: g.Width(), Height: g.Height()}
}

func (r *Real) Heads() ([]Rect, error) {
	heads, err := xinerama.PhysicalHeads(r.X)
	if err != nil {
		return nil, err
	}
	out := make([]Rect, len(heads))
	for i, h := range heads {
		x, y, w, hh := h.Pieces()
		out[i] = Rect{X: x, Y: y, Width: w, Height: hh}
	}
	return out, nil
}

func (r *Real) BecomeWM() error {
	return xproto.ChangeWindowAttributesChecked(
		r.X.Conn(), r.root, xproto.CwEventMask,
		[]uint32{xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify |
			xproto.EventMaskStructureNotify | xproto.EventMaskButtonPress},
	).Check()
}

func (r *Real) Sync() { r.X.Sync() }
func (r *Real) Close() { r.X.Conn().Close() }

func (r *Real) GrabServer() error   { return xproto.GrabServerChecked(r.X.Conn()).Check() }
func (r *Real) UngrabServer() error { return xproto.UngrabServerChecked(r.X.Conn()).Check() }

func (r *Real) MoveResizeWindow(win xproto.Window, x, y, w, h int) error {
	return xwindow.New(r.X, win).MoveResize(x, y, w, h)
}

func (r *Real) SetBorderWidth(win xproto.Window, bw int) error {
	return xproto.ConfigureWindowChecked(
		r.X.Conn(), win, xproto.ConfigWindowBorderWidth, []uint32{uint32(bw)},
	).Check()
}

func (r *Real) SetBorderColor(win xproto.Window, hex string) error {
	pixel, err := r.X.ColorPixel(hex)
	if err != nil {
		return err
	}
	return xproto.ChangeWindowAttributesChecked(
		r.X.Conn(), win, xproto.CwBorderPixel, []uint32{pixel},
	).Check()
}

func (r *Real) MapWindow(win xproto.Window) error   { return xproto.MapWindowChecked(r.X.Conn(), win).Check() }
func (r *Real) UnmapWindow(win xproto.Window) error { return xproto.UnmapWindowChecked(r.X.Conn(), win).Check() }
func (r *Real) RaiseWindow(win xproto.Window) error {
	return xproto.ConfigureWindowChecked(
		r.X.Conn(), win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove},
	).Check()
}

func (r *Real) RestackBelow(win, sibling xproto.Window) error {
	return xproto.ConfigureWindowChecked(
		r.X.Conn(), win,
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(sibling), xproto.StackModeBelow},
	).Check()
}

func (r *Real) SelectClientEvents(win xproto.Window) error {
	return xproto.ChangeWindowAttributesChecked(
		r.X.Conn(), win, xproto.CwEventMask,
		[]uint32{xproto.EventMaskEnterWindow | xproto.EventMaskFocusChange | xproto.EventMaskPropertyChange |
			xproto.EventMaskStructureNotify},
	).Check()
}

func (r *Real) KillClientConnection(win xproto.Window) error {
	return xproto.KillClientChecked(r.X.Conn(), uint32(win)).Check()
}

func (r *Real) GetWMClass(win xproto.Window) (string, string, error) {
	cls, err := icccm.WmClassGet(r.X, win)
	if err != nil || cls == nil {
		return "broken", "broken", err
	}
	return cls.Class, cls.Instance, nil
}

func (r *Real) GetWMName(win xproto.Window) (string, error) { return icccm.WmNameGet(r.X, win) }

func (r *Real) GetNetWMName(win xproto.Window) (string, error) { return ewmh.WmNameGet(r.X, win) }

func (r *Real) GetWMRole(win xproto.Window) (string, error) {
	return icccm.WmWindowRoleGet(r.X, win)
}

func (r *Real) GetWMNormalHints(win xproto.Window) (NormalHints, bool, error) {
	nh, err := icccm.WmNormalHintsGet(r.X, win)
	if err != nil || nh == nil {
		return NormalHints{}, false, err
	}
	h := NormalHints{
		HasBase:    nh.Flags&icccm.SizeHintPBaseSize != 0,
		HasMin:     nh.Flags&icccm.SizeHintPMinSize != 0,
		HasMax:     nh.Flags&icccm.SizeHintPMaxSize != 0,
		HasInc:     nh.Flags&icccm.SizeHintPResizeInc != 0,
		HasAspect:  nh.Flags&icccm.SizeHintPAspect != 0,
		BaseW:      int(nh.BaseWidth),
		BaseH:      int(nh.BaseHeight),
		MinW:       int(nh.MinWidth),
		MinH:       int(nh.MinHeight),
		MaxW:       int(nh.MaxWidth),
		MaxH:       int(nh.MaxHeight),
		IncW:       int(nh.WidthInc),
		IncH:       int(nh.HeightInc),
		MinAspectX: int(nh.MinAspectNum),
		MinAspectY: int(nh.MinAspectDen),
		MaxAspectX: int(nh.MaxAspectNum),
		MaxAspectY: int(nh.MaxAspectDen),
	}
	return h, true, nil
}

func (r *Real) GetWMHints(win xproto.Window) (urgent, neverFocus bool, err error) {
	wh, err := icccm.WmHintsGet(r.X, win)
	if err != nil || wh == nil {
		return false, false, err
	}
	urgent = wh.Flags&icccm.HintUrgency != 0
	neverFocus = wh.Flags&icccm.HintInput != 0 && wh.Input == 0
	return urgent, neverFocus, nil
}

func (r *Real) ClearUrgentHint(win xproto.Window) error {
	wh, err := icccm.WmHintsGet(r.X, win)
	if err != nil || wh == nil {
		return err
	}
	wh.Flags &^= icccm.HintUrgency
	return icccm.WmHintsSet(r.X, win, wh)
}

func (r *Real) GetWMProtocols(win xproto.Window) ([]string, error) {
	return icccm.WmProtocolsGet(r.X, win)
}

func (r *Real) GetTransientFor(win xproto.Window) (xproto.Window, bool, error) {
	t, err := icccm.WmTransientForGet(r.X, win)
	if err != nil || t == 0 {
		return 0, false, err
	}
	return t, true, nil
}

// GetMotifDecorations reports whether win's _MOTIF_WM_HINTS asks for its
// border to be hidden. A window with no hints property, or one that
// doesn't touch the decoration flag, reports false.
func (r *Real) GetMotifDecorations(win xproto.Window) (bool, error) {
	hints, err := motif.WmHintsGet(r.X, win)
	if err != nil {
		return false, nil
	}
	if hints.Flags&motif.HintDecorations == 0 {
		return false, nil
	}
	return !motif.Decor(hints), nil
}

func (r *Real) SetWMState(win xproto.Window, state WMState) error {
	return icccm.WmStateSet(r.X, win, &icccm.WmState{State: uint(state)})
}

func (r *Real) SendDeleteWindow(win xproto.Window) error {
	return ewmh.ClientEvent(r.X, win, "WM_PROTOCOLS", int(r.X.Atm("WM_DELETE_WINDOW")))
}

func (r *Real) SendTakeFocus(win xproto.Window, t xproto.Timestamp) error {
	return ewmh.ClientEvent(r.X, win, "WM_PROTOCOLS", int(r.X.Atm("WM_TAKE_FOCUS")), int(t))
}

func (r *Real) SetInputFocus(win xproto.Window, t xproto.Timestamp) error {
	return xproto.SetInputFocusChecked(r.X.Conn(), xproto.InputFocusPointerRoot, win, t).Check()
}

func (r *Real) SetFocusToRoot() error {
	return r.SetInputFocus(r.root, xproto.TimeCurrentTime)
}

func (r *Real) InitSupported(atoms []string) error {
	return ewmh.SupportedSet(r.X, atoms)
}

func (r *Real) SetActiveWindow(win xproto.Window) error {
	return ewmh.ActiveWindowSet(r.X, win)
}

func (r *Real) ClearActiveWindow() error {
	return ewmh.ActiveWindowSet(r.X, 0)
}

func (r *Real) SetClientList(wins []xproto.Window) error {
	return ewmh.ClientListSet(r.X, wins)
}

func (r *Real) GetNetWMStates(win xproto.Window) ([]string, error) {
	return ewmh.WmStateGet(r.X, win)
}

func (r *Real) SetFullscreenState(win xproto.Window, fullscreen bool) error {
	states, _ := ewmh.WmStateGet(r.X, win)
	var out []string
	for _, s := range states {
		if s != "_NET_WM_STATE_FULLSCREEN" {
			out = append(out, s)
		}
	}
	if fullscreen {
		out = append(out, "_NET_WM_STATE_FULLSCREEN")
	}
	return ewmh.WmStateSet(r.X, win, out)
}

func (r *Real) GetWindowTypeDialog(win xproto.Window) (bool, error) {
	types, err := ewmh.WmWindowTypeGet(r.X, win)
	if err != nil {
		return false, err
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DIALOG" {
			return true, nil
		}
	}
	return false, nil
}

func (r *Real) SetWindowOpacity(win xproto.Window, opacity float64) error {
	val := uint32(opacity * 0xffffffff)
	return xproto.ChangePropertyChecked(
		r.X.Conn(), xproto.PropModeReplace, win, r.X.Atm("_NET_WM_WINDOW_OPACITY"),
		xproto.AtomCardinal, 32, 1, []byte{
			byte(val), byte(val >> 8), byte(val >> 16), byte(val >> 24),
		},
	).Check()
}

func (r *Real) GrabKey(mod uint16, keycode xproto.Keycode) error {
	return xproto.GrabKeyChecked(
		r.X.Conn(), false, r.root, mod, keycode,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
	).Check()
}

func (r *Real) UngrabKeys() error {
	return xproto.UngrabKeyChecked(r.X.Conn(), xproto.GrabAny, r.root, xproto.ModMaskAny).Check()
}

func (r *Real) KeysymToKeycode(keysym uint32) (xproto.Keycode, error) {
	kc := keybind.KeysymToKeycode(r.X, xproto.Keysym(keysym))
	if kc == 0 {
		return 0, fmt.Errorf("no keycode bound to keysym %#x", keysym)
	}
	return kc, nil
}

func (r *Real) GrabButtonsUnfocused(win xproto.Window) error {
	return xproto.GrabButtonChecked(
		r.X.Conn(), false, win,
		xproto.EventMaskButtonPress,
		xproto.GrabModeSync, xproto.GrabModeAsync,
		0, 0,
		0, xproto.ModMaskAny,
	).Check()
}

func (r *Real) GrabButtonsFocused(win xproto.Window, buttons []ButtonSpec) error {
	for _, b := range buttons {
		if err := xproto.GrabButtonChecked(
			r.X.Conn(), false, win,
			xproto.EventMaskButtonPress,
			xproto.GrabModeAsync, xproto.GrabModeAsync,
			0, 0,
			b.Button, b.Mod,
		).Check(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Real) UngrabButtons(win xproto.Window) error {
	return xproto.UngrabButtonChecked(r.X.Conn(), xproto.ButtonIndexAny, win, xproto.ModMaskAny).Check()
}

func (r *Real) NumlockMask() uint16 {
	return keybind.ModGet(r.X, "num")
}

func (r *Real) GrabPointerFor(kind GrabKind) error {
	cursor := r.cursors.normal
	switch kind {
	case GrabMove:
		cursor = r.cursors.move
	case GrabResize:
		cursor = r.cursors.resize
	}
	return xproto.GrabPointerChecked(
		r.X.Conn(), false, r.root,
		xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		0, cursor, xproto.TimeCurrentTime,
	).Check()
}

func (r *Real) UngrabPointer() error {
	return xproto.UngrabPointerChecked(r.X.Conn(), xproto.TimeCurrentTime).Check()
}

func (r *Real) QueryPointer(root xproto.Window) (int, int, error) {
	reply, err := xproto.QueryPointer(r.X.Conn(), root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}

func (r *Real) WarpPointer(win xproto.Window, x, y int) error {
	return xproto.WarpPointerChecked(
		r.X.Conn(), 0, win, 0, 0, 0, 0, int16(x), int16(y),
	).Check()
}

func (r *Real) DrainEnterNotify() {
	for {
		ev, err := r.X.Conn().PollForEvent()
		if err != nil || ev == nil {
			return
		}
		if _, ok := ev.(xproto.EnterNotifyEvent); !ok {
			return
		}
	}
}

// NextPointerEvent blocks on the connection for the next motion or
// button-release event, the same nested-read technique dwm's own
// movemouse/resizemouse use instead of going back through the main
// dispatcher while a grab is held.
func (r *Real) NextPointerEvent() (int, int, bool, error) {
	for {
		ev, err := r.X.Conn().WaitForEvent()
		if err != nil {
			return 0, 0, false, err
		}
		switch e := ev.(type) {
		case xproto.MotionNotifyEvent:
			return int(e.RootX), int(e.RootY), false, nil
		case xproto.ButtonReleaseEvent:
			return int(e.RootX), int(e.RootY), true, nil
		}
	}
}
