// Package xops isolates every X11 side effect the engine performs behind a
// single interface, so the manage/focus/tag/protocol logic in internal/wm
// can be driven under a recording fake in tests as well as under the real
// xgbutil-backed connection at runtime.
package xops

import "github.com/jezek/xgb/xproto"

// Rect is an outer monitor/head geometry.
type Rect struct {
	X, Y          int
	Width, Height int
}

// WMState mirrors ICCCM WM_STATE values.
type WMState int

const (
	WithdrawnState WMState = iota
	NormalState
)

// StateAction mirrors the three _NET_WM_STATE client-message actions.
type StateAction int

const (
	StateRemove StateAction = 0
	StateAdd    StateAction = 1
	StateToggle StateAction = 2
)

// Ops is every X11 side effect the core engine performs. A real
// implementation backs it with jezek/xgbutil; tests back it with a
// recording fake.
type Ops interface {
	// Lifecycle / geometry
	Root() xproto.Window
	RootGeometry() Rect
	Heads() ([]Rect, error)
	BecomeWM() error
	Sync()
	Close()
	GrabServer() error
	UngrabServer() error

	// Window placement and state
	MoveResizeWindow(win xproto.Window, x, y, w, h int) error
	SetBorderWidth(win xproto.Window, bw int) error
	SetBorderColor(win xproto.Window, hex string) error
	MapWindow(win xproto.Window) error
	UnmapWindow(win xproto.Window) error
	RaiseWindow(win xproto.Window) error
	RestackBelow(win, sibling xproto.Window) error
	SelectClientEvents(win xproto.Window) error
	KillClientConnection(win xproto.Window) error

	// ICCCM
	GetWMClass(win xproto.Window) (class, instance string, err error)
	GetWMName(win xproto.Window) (string, error)
	GetNetWMName(win xproto.Window) (string, error)
	GetWMRole(win xproto.Window) (string, error)
	GetWMNormalHints(win xproto.Window) (hints NormalHints, ok bool, err error)
	GetWMHints(win xproto.Window) (urgent, neverFocus bool, err error)
	ClearUrgentHint(win xproto.Window) error
	GetWMProtocols(win xproto.Window) ([]string, error)
	GetTransientFor(win xproto.Window) (xproto.Window, bool, error)
	// GetMotifDecorations reports whether win's _MOTIF_WM_HINTS property
	// explicitly requests its border suppressed (a hint dialogs and
	// splash windows set so a reparenting WM won't draw a frame around
	// them). A window with no such property, or one that doesn't ask for
	// borders to be hidden, reports false.
	GetMotifDecorations(win xproto.Window) (hideBorder bool, err error)
	SetWMState(win xproto.Window, state WMState) error
	SendDeleteWindow(win xproto.Window) error
	SendTakeFocus(win xproto.Window, t xproto.Timestamp) error
	SetInputFocus(win xproto.Window, t xproto.Timestamp) error
	SetFocusToRoot() error

	// EWMH
	InitSupported(atoms []string) error
	SetActiveWindow(win xproto.Window) error
	ClearActiveWindow() error
	SetClientList(wins []xproto.Window) error
	GetNetWMStates(win xproto.Window) ([]string, error)
	SetFullscreenState(win xproto.Window, fullscreen bool) error
	GetWindowTypeDialog(win xproto.Window) (bool, error)
	SetWindowOpacity(win xproto.Window, opacity float64) error

	// Input
	GrabKey(mod uint16, keycode xproto.Keycode) error
	UngrabKeys() error
	KeysymToKeycode(keysym uint32) (xproto.Keycode, error)
	GrabButtonsUnfocused(win xproto.Window) error
	GrabButtonsFocused(win xproto.Window, buttons []ButtonSpec) error
	UngrabButtons(win xproto.Window) error
	NumlockMask() uint16

	// Mouse move/resize
	GrabPointerFor(kind GrabKind) error
	UngrabPointer() error
	QueryPointer(root xproto.Window) (x, y int, err error)
	WarpPointer(win xproto.Window, x, y int) error
	DrainEnterNotify()
	// NextPointerEvent blocks until the next pointer motion or the
	// button-release ending an active GrabPointerFor grab, reporting the
	// pointer's current position and whether the grab has ended.
	NextPointerEvent() (x, y int, released bool, err error)
}

// NormalHints is the transport-layer view of WM_NORMAL_HINTS, converted by
// the caller into model.SizeHints.
type NormalHints struct {
	HasBase, HasMin, HasMax, HasInc, HasAspect bool
	BaseW, BaseH                               int
	MinW, MinH                                 int
	MaxW, MaxH                                 int
	IncW, IncH                                 int
	MinAspectX, MinAspectY                     int
	MaxAspectX, MaxAspectY                     int
}

// ButtonSpec is one configured button binding's click button + modifier,
// used when (re)grabbing a focused client's specific bindings.
type ButtonSpec struct {
	Button uint8
	Mod    uint16
}

// GrabKind selects the cursor used for a pointer grab.
type GrabKind int

const (
	GrabMove GrabKind = iota + 1
	GrabResize
)
