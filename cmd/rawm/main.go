// Command rawm is a dynamic tiling window manager for X11, modeled on
// dwm's event loop and configured entirely at compile time via
// internal/config. Invoked with no arguments it becomes the window
// manager for $DISPLAY; -v prints the version and exits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xprop"
	"github.com/sirupsen/logrus"

	"github.com/rawmkit/rawm/internal/bar"
	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/wm"
	"github.com/rawmkit/rawm/internal/xops"
)

const version = "rawm-0.1"

func main() {
	showVersion := flag.Bool("v", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [-v]\n", os.Args[0])
		os.Exit(1)
	}

	log := logrus.New()

	ops, err := xops.NewReal()
	if err != nil {
		log.WithError(err).Fatal("connect to X")
	}

	engine := wm.New(ops, config.Default(), log)
	if err := engine.Setup(); err != nil {
		log.WithError(err).Fatal("setup")
	}

	b := bar.New(ops.Conn(), engine.Cfg, log)
	engine.SetBarRenderer(b)

	scan(ops.Conn(), engine)

	run(ops, engine, b, keycodeIndex(ops, engine.Cfg))
}

// scan discovers every pre-existing top-level window under the root and
// feeds it through wm.Scan, transient windows last so their owners are
// already managed, mirroring dwm's startup scan.
func scan(X *xgbutil.XUtil, engine *wm.WM) {
	tree, err := xproto.QueryTree(X.Conn(), X.RootWin()).Reply()
	if err != nil {
		engine.Log.WithError(err).Warn("query tree")
		return
	}

	var normal, transient []wm.ScanWindow
	for _, win := range tree.Children {
		attr, err := xproto.GetWindowAttributes(X.Conn(), win).Reply()
		if err != nil || attr.MapState != xproto.MapStateViewable {
			continue
		}
		geom, err := xproto.GetGeometry(X.Conn(), xproto.Drawable(win)).Reply()
		if err != nil {
			continue
		}
		sw := wm.ScanWindow{
			Window:           win,
			X:                int(geom.X),
			Y:                int(geom.Y),
			Width:            int(geom.Width),
			Height:           int(geom.Height),
			Mapped:           true,
			OverrideRedirect: attr.OverrideRedirect,
		}
		if isTransient(X, win) {
			transient = append(transient, sw)
		} else {
			normal = append(normal, sw)
		}
	}
	engine.Scan(normal, transient)
}

func isTransient(X *xgbutil.XUtil, win xproto.Window) bool {
	prop, err := xproto.GetProperty(X.Conn(), false, win, X.Atm("WM_TRANSIENT_FOR"),
		xproto.GetPropertyTypeAny, 0, 1).Reply()
	return err == nil && prop != nil && len(prop.Value) > 0
}

// keycodeIndex inverts every configured key binding's keysym through
// Ops.KeysymToKeycode, giving KeyPress translation a keycode->keysym
// lookup without depending on a second, unverified reverse-mapping call.
func keycodeIndex(ops xops.Ops, cfg config.Config) map[xproto.Keycode]uint32 {
	idx := map[xproto.Keycode]uint32{}
	for _, k := range cfg.Keys {
		if kc, err := ops.KeysymToKeycode(k.Keysym); err == nil {
			idx[kc] = k.Keysym
		}
	}
	return idx
}

// run is rawm's single event loop: one raw XNextEvent-equivalent read per
// iteration, type-switched and translated into a wm.RawEvent, the same
// shape driusan/dewm and marwind drive their WMs with (in preference to
// xgbutil's per-window Connect/Fun callback style, which routes events by
// the window a callback was registered against and so cannot see a
// ButtonPress/KeyPress whose grab delivered it to an arbitrary client
// window registered only at Manage time). Signals are polled
// non-blockingly between reads so a SIGTERM/SIGHUP/SIGCHLD is never stuck
// behind a long idle wait for the next X event.
func run(ops *xops.Real, engine *wm.WM, b *bar.Bar, keysyms map[xproto.Keycode]uint32) {
	X := ops.Conn()
	root := X.RootWin()
	wake := engine.WatchSignals()

	for engine.Running {
		select {
		case <-wake:
			continue
		default:
		}

		xev, err := X.Conn().WaitForEvent()
		if err != nil {
			engine.Log.WithError(err).Warn("wait for event")
			continue
		}
		if xev == nil {
			continue
		}

		if ev, ok := translate(X, root, xev, b, keysyms); ok {
			engine.HandleEvent(ev)
		}
	}

	engine.Cleanup()

	if engine.Restart {
		if err := wm.Reexec(os.Args[0], os.Args, os.Environ()); err != nil {
			engine.Log.WithError(err).Error("re-exec failed")
			os.Exit(1)
		}
	}
}

// translate converts one raw xgb event into a wm.RawEvent, resolving the
// click context for a ButtonPress against the bar (tag/layout/title
// cells) or a managed client window.
func translate(X *xgbutil.XUtil, root xproto.Window, xev xgb.Event, b *bar.Bar, keysyms map[xproto.Keycode]uint32) (wm.RawEvent, bool) {
	switch e := xev.(type) {
	case xproto.MapRequestEvent:
		ev := wm.RawEvent{Type: "MapRequest", Window: e.Window, Root: root}
		if attr, err := xproto.GetWindowAttributes(X.Conn(), e.Window).Reply(); err == nil {
			ev.OverrideRedir = attr.OverrideRedirect
		}
		if geom, err := xproto.GetGeometry(X.Conn(), xproto.Drawable(e.Window)).Reply(); err == nil {
			ev.X, ev.Y, ev.Width, ev.Height = int(geom.X), int(geom.Y), int(geom.Width), int(geom.Height)
		}
		return ev, true

	case xproto.ConfigureRequestEvent:
		return wm.RawEvent{
			Type: "ConfigureRequest", Window: e.Window, Root: root,
			X: int(e.X), Y: int(e.Y), Width: int(e.Width), Height: int(e.Height),
			ValueMask: e.ValueMask,
		}, true

	case xproto.ConfigureNotifyEvent:
		return wm.RawEvent{Type: "ConfigureNotify", Window: e.Window, Root: root}, true

	case xproto.UnmapNotifyEvent:
		// Synthetic (client-initiated withdraw) vs. real unmap isn't
		// distinguishable from this event's fields alone without
		// inspecting the raw response-type header, so every unmap is
		// treated as real; nothing in rawm relies on the Withdrawn
		// fast path besides the systray, which is out of scope.
		return wm.RawEvent{Type: "UnmapNotify", Window: e.Window, Root: root}, true

	case xproto.DestroyNotifyEvent:
		return wm.RawEvent{Type: "DestroyNotify", Window: e.Window, Root: root}, true

	case xproto.EnterNotifyEvent:
		return wm.RawEvent{Type: "EnterNotify", Window: e.Event, Root: root}, true

	case xproto.FocusInEvent:
		return wm.RawEvent{Type: "FocusIn", Window: e.Event, Root: root}, true

	case xproto.PropertyNotifyEvent:
		name, err := xprop.AtomName(X, e.Atom)
		if err != nil {
			return wm.RawEvent{}, false
		}
		return wm.RawEvent{Type: "PropertyNotify", Window: e.Window, Root: root, Atom: name}, true

	case xproto.ClientMessageEvent:
		name, err := xprop.AtomName(X, e.Type)
		if err != nil {
			return wm.RawEvent{}, false
		}
		ev := wm.RawEvent{Type: "ClientMessage", Window: e.Window, Root: root, Atom: name}
		if name == "_NET_WM_STATE" && len(e.Data.Data32) > 0 {
			ev.State = xops.StateAction(e.Data.Data32[0])
			if len(e.Data.Data32) > 1 && e.Data.Data32[1] != 0 {
				if n, err := xprop.AtomName(X, xproto.Atom(e.Data.Data32[1])); err == nil {
					ev.StateProp1 = n
				}
			}
			if len(e.Data.Data32) > 2 && e.Data.Data32[2] != 0 {
				if n, err := xprop.AtomName(X, xproto.Atom(e.Data.Data32[2])); err == nil {
					ev.StateProp2 = n
				}
			}
		}
		return ev, true

	case xproto.MappingNotifyEvent:
		return wm.RawEvent{Type: "MappingNotify", Root: root}, true

	case xproto.KeyPressEvent:
		keysym, ok := keysyms[e.Detail]
		if !ok {
			return wm.RawEvent{}, false
		}
		return wm.RawEvent{Type: "KeyPress", Root: root, Mod: e.State, Keysym: keysym}, true

	case xproto.ButtonPressEvent:
		ev := wm.RawEvent{
			Type: "ButtonPress", Window: e.Event, Root: root,
			Mod: e.State, Button: e.Detail,
			PointerX: int(e.EventX), PointerY: int(e.EventY),
		}
		ev.Click, ev.Arg = clickArea(b, root, e.Event, int(e.EventX))
		return ev, true

	default:
		return wm.RawEvent{}, false
	}
}

// clickArea resolves a button click's context and, for a bar-window
// click, the precise cell it landed in via bar.ClickArea (which knows the
// actual drawn cell boundaries, unlike the engine's own even-division
// fallback). A click on the root is ClkRootWin; anything else not on a
// bar window is a managed client window.
func clickArea(b *bar.Bar, root, win xproto.Window, px int) (config.ClickArea, *config.Arg) {
	if win == root {
		return config.ClkRootWin, nil
	}
	if m := b.MonitorForWindow(win); m != nil {
		click, arg := b.ClickArea(m, px)
		return click, &arg
	}
	return config.ClkClientWin, nil
}
