// Package config is the compile-time configuration contract the engine
// consumes: color schemes, fonts, layouts, per-monitor tags, rules, key and
// button bindings, and behavioral flags. It mirrors a dwm-style config.h in
// spirit but is ordinary Go data, assembled once in Default() and consumed
// by internal/wm.
package config

import (
	"github.com/jezek/xgb/xproto"

	"github.com/rawmkit/rawm/internal/layout"
	"github.com/rawmkit/rawm/internal/model"
)

// A handful of X11 keysyms (keysymdef.h) used by Default's key table.
// Letters/digits share their ASCII code point; the rest are the standard
// XK_ constants.
const (
	xkReturn = 0xff0d
	xkTab    = 0xff09
	xkSpace  = 0x0020
	xkComma  = 0x002c
	xkPeriod = 0x002e
	xkH      = 0x0068
	xkJ      = 0x006a
	xkK      = 0x006b
	xkL      = 0x006c
	xkB      = 0x0062
	xkC      = 0x0063
	xkD      = 0x0064
	xkF      = 0x0066
	xkP      = 0x0070
	xkQ      = 0x0071
	xkT      = 0x0074
	xkM      = 0x006d
	xk0      = 0x0030
	xk1      = 0x0031
)

const modKey = xproto.ModMask1 // Alt, rawm's primary modifier

// TAGS is the number of virtual-workspace tags. Must be <= 31 so that tag
// masks fit in a uint32.
const TAGS = 9

// TagMask is the bitmask covering all configured tags.
const TagMask = (1 << TAGS) - 1

// Scheme indexes into the color table.
type Scheme int

const (
	SchemeNorm Scheme = iota
	SchemeSel
	SchemeUrg
	NumColors
)

// Col is a [border, fg, bg] hex-color triple for one scheme.
type Col [3]string

// MonitorRule pins a monitor index to a default layout, used while
// building the monitor list. Only Monitor and LayoutIndex are read; Tag is
// not consulted, and every new monitor starts on the first tag.
type MonitorRule struct {
	Monitor      int // -1 applies to every monitor
	Tag          string
	LayoutIndex  int
}

// ArgKind tags the union carried by a key/button binding argument.
type ArgKind int

const (
	ArgNone ArgKind = iota
	ArgInt
	ArgUint
	ArgFloat
	ArgLayout
	ArgArgv
)

// Arg is the tagged {int, uint, float, pointer} argument union bound to a
// key or button action.
type Arg struct {
	Kind   ArgKind
	Int    int
	Uint   uint
	Float  float64
	Layout *model.Layout
	Argv   []string
}

// KeyAction is a function bound to a key combination, closing over the
// engine it will act on.
type KeyAction func(Arg)

// Key pairs a modifier+keysym combination with an action and its argument.
type Key struct {
	Mod    uint16
	Keysym uint32
	Action string // resolved to a KeyAction by the engine's action table
	Arg    Arg
}

// ClickArea identifies where a button binding applies, mirroring the
// engine's click-context dispatch (tag bar, layout symbol, status text,
// client window, ...).
type ClickArea int

const (
	ClkTagBar ClickArea = iota
	ClkLtSymbol
	ClkStatusText
	ClkWinTitle
	ClkClientWin
	ClkRootWin
)

// Button pairs a click area + modifier + button number with an action.
type Button struct {
	Click  ClickArea
	Mod    uint16
	Button uint8
	Action string
	Arg    Arg
}

// Behavior holds the boolean/integer flags in rawm's compile-time
// configuration surface.
type Behavior struct {
	ShowBar         bool
	TopBar          bool
	ResizeHints     bool
	DialogAutocenter bool
	ShowSystray     bool

	BorderPx        int
	Snap            int
	UserBarHeight   int
	MFact           float64
	NMaster         int
	DefaultOpacity  float64 // [0,1]
	SystraySpacing  int
}

// Config is the full compile-time data contract.
type Config struct {
	Colors     [NumColors]Col
	FontSpec   []string
	Layouts    []model.Layout
	Tags       [TAGS]string
	MonRules   []MonitorRule
	Rules      []model.Rule
	Keys       []Key
	Buttons    []Button
	Behavior   Behavior
}

// Default returns rawm's built-in configuration, the equivalent of dwm's
// shipped config.def.h: a usable layout/tag/rule/key table a user would
// normally fork and edit.
func Default() Config {
	layouts := []model.Layout{
		{Symbol: "[]=", Arrange: layout.Tile},
		{Symbol: "><>", Arrange: nil}, // floating
		{Symbol: "[M]", Arrange: layout.Monocle},
		{Symbol: "TTT", Arrange: layout.BStack},
		{Symbol: "===", Arrange: layout.BStackHoriz},
		{Symbol: "HHH", Arrange: layout.GaplessGrid},
	}

	tags := [TAGS]string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}

	return Config{
		Colors: [NumColors]Col{
			SchemeNorm: {"#444444", "#bbbbbb", "#222222"},
			SchemeSel:  {"#005577", "#eeeeee", "#005577"},
			SchemeUrg:  {"#aa4444", "#eeeeee", "#aa0000"},
		},
		FontSpec: []string{"monospace:size=10"},
		Layouts:  layouts,
		Tags:     tags,
		MonRules: []MonitorRule{{Monitor: -1, Tag: "", LayoutIndex: 0}},
		Rules:    nil,
		Keys:     defaultKeys(layouts),
		Buttons:  defaultButtons(),
		Behavior: Behavior{
			ShowBar:          true,
			TopBar:           true,
			ResizeHints:      false,
			DialogAutocenter: true,
			ShowSystray:      true,
			BorderPx:         1,
			Snap:             32,
			UserBarHeight:    0,
			MFact:            0.55,
			NMaster:          1,
			DefaultOpacity:   1.0,
			SystraySpacing:   2,
		},
	}
}

// defaultKeys builds the dwm-style Mod1-centric key table: navigation,
// layout selection, master-area adjustment and per-tag view/move/toggle
// bindings for every configured tag.
func defaultKeys(layouts []model.Layout) []Key {
	keys := []Key{
		{Mod: modKey, Keysym: xkP, Action: "spawn", Arg: Arg{Kind: ArgArgv, Argv: []string{"dmenu_run"}}},
		{Mod: modKey | xproto.ModMaskShift, Keysym: xkReturn, Action: "spawn", Arg: Arg{Kind: ArgArgv, Argv: []string{"xterm"}}},
		{Mod: modKey, Keysym: xkJ, Action: "focusstack_next"},
		{Mod: modKey, Keysym: xkK, Action: "focusstack_prev"},
		{Mod: modKey, Keysym: xkH, Action: "setmfact", Arg: Arg{Kind: ArgFloat, Float: -0.05}},
		{Mod: modKey, Keysym: xkL, Action: "setmfact", Arg: Arg{Kind: ArgFloat, Float: 0.05}},
		{Mod: modKey, Keysym: xkReturn, Action: "zoom"},
		{Mod: modKey, Keysym: xkTab, Action: "view", Arg: Arg{Kind: ArgUint, Uint: 0}},
		{Mod: modKey | xproto.ModMaskShift, Keysym: xkC, Action: "killclient"},
		{Mod: modKey, Keysym: xkT, Action: "setlayout", Arg: Arg{Kind: ArgLayout, Layout: &layouts[0]}},
		{Mod: modKey, Keysym: xkF, Action: "setlayout", Arg: Arg{Kind: ArgLayout, Layout: &layouts[1]}},
		{Mod: modKey, Keysym: xkM, Action: "setlayout", Arg: Arg{Kind: ArgLayout, Layout: &layouts[2]}},
		{Mod: modKey, Keysym: xkSpace, Action: "setlayout"},
		{Mod: modKey | xproto.ModMaskShift, Keysym: xkSpace, Action: "togglefloating"},
		{Mod: modKey, Keysym: xk0, Action: "view", Arg: Arg{Kind: ArgUint, Uint: TagMask}},
		{Mod: modKey | xproto.ModMaskShift, Keysym: xk0, Action: "tag", Arg: Arg{Kind: ArgUint, Uint: TagMask}},
		{Mod: modKey, Keysym: xkComma, Action: "focusmon", Arg: Arg{Kind: ArgInt, Int: -1}},
		{Mod: modKey, Keysym: xkPeriod, Action: "focusmon", Arg: Arg{Kind: ArgInt, Int: 1}},
		{Mod: modKey | xproto.ModMaskShift, Keysym: xkComma, Action: "tagmon", Arg: Arg{Kind: ArgInt, Int: -1}},
		{Mod: modKey | xproto.ModMaskShift, Keysym: xkPeriod, Action: "tagmon", Arg: Arg{Kind: ArgInt, Int: 1}},
		{Mod: modKey, Keysym: xkB, Action: "togglebar"},
		{Mod: modKey, Keysym: xkD, Action: "incnmaster", Arg: Arg{Kind: ArgInt, Int: -1}},
		{Mod: modKey | xproto.ModMaskShift, Keysym: xkD, Action: "incnmaster", Arg: Arg{Kind: ArgInt, Int: 1}},
		{Mod: modKey | xproto.ModMaskShift, Keysym: xkQ, Action: "quit"},
		{Mod: modKey | xproto.ModMaskControl, Keysym: xkQ, Action: "restart"},
	}
	for i := 0; i < TAGS; i++ {
		keysym := uint32(xk1 + i)
		mask := uint32(1 << uint(i))
		keys = append(keys,
			Key{Mod: modKey, Keysym: keysym, Action: "view", Arg: Arg{Kind: ArgUint, Uint: uint(mask)}},
			Key{Mod: modKey | xproto.ModMaskControl, Keysym: keysym, Action: "toggleview", Arg: Arg{Kind: ArgUint, Uint: uint(mask)}},
			Key{Mod: modKey | xproto.ModMaskShift, Keysym: keysym, Action: "tag", Arg: Arg{Kind: ArgUint, Uint: uint(mask)}},
			Key{Mod: modKey | xproto.ModMaskShift | xproto.ModMaskControl, Keysym: keysym, Action: "toggletag", Arg: Arg{Kind: ArgUint, Uint: uint(mask)}},
		)
	}
	return keys
}

// defaultButtons builds the button table: left or right click on the
// layout symbol flips to the previous layout, middle-click on the title
// zooms, Mod1+left/right drag on a client moves or resizes it and
// Mod1+middle toggles floating, and tag-bar clicks view, toggleview, tag
// or toggletag.
func defaultButtons() []Button {
	const (
		button1 = 1
		button2 = 2
		button3 = 3
	)
	return []Button{
		{Click: ClkLtSymbol, Button: button1, Action: "setlayout"},
		{Click: ClkLtSymbol, Button: button3, Action: "setlayout", Arg: Arg{Kind: ArgLayout}},
		{Click: ClkWinTitle, Button: button2, Action: "zoom"},
		{Click: ClkClientWin, Mod: modKey, Button: button1, Action: "movemouse"},
		{Click: ClkClientWin, Mod: modKey, Button: button2, Action: "togglefloating"},
		{Click: ClkClientWin, Mod: modKey, Button: button3, Action: "resizemouse"},
		{Click: ClkTagBar, Button: button1, Action: "view"},
		{Click: ClkTagBar, Button: button3, Action: "toggleview"},
		{Click: ClkTagBar, Mod: modKey, Button: button1, Action: "tag"},
		{Click: ClkTagBar, Mod: modKey, Button: button3, Action: "toggletag"},
	}
}
