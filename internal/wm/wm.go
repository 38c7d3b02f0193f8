// Package wm is the management engine: event dispatch, the per-monitor
// client model, layout/focus/tag state machines, and the EWMH/ICCCM glue
// that ties it to external X clients. It performs no X11 I/O directly;
// every side effect goes through the xops.Ops interface so the engine can
// be driven under a recording fake in tests.
package wm

import (
	"fmt"
	"sort"

	"github.com/jezek/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/layout"
	"github.com/rawmkit/rawm/internal/model"
	"github.com/rawmkit/rawm/internal/xops"
)

// SupportedAtoms is the root _NET_SUPPORTED list.
var SupportedAtoms = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_SUPPORTED",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_CLIENT_LIST",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DIALOG",
}

// WM is the single root value holding all window-manager state: the X
// connection (via Ops), the monitor list, the selected monitor, and
// process-lifetime flags. It is built in Setup, mutated only from the
// event loop, and torn down in Cleanup.
type WM struct {
	Ops xops.Ops
	Cfg config.Config
	Log *logrus.Logger

	NumlockMask uint16

	Mons   *model.Monitor
	SelMon *model.Monitor

	Running bool
	Restart bool

	StatusText string

	barHeight int
	bar       BarRenderer
}

// New constructs a WM over ops with cfg, ready for Setup. log may be nil,
// in which case a default logrus logger is used.
func New(ops xops.Ops, cfg config.Config, log *logrus.Logger) *WM {
	if log == nil {
		log = logrus.New()
	}
	return &WM{Ops: ops, Cfg: cfg, Log: log}
}

// Setup brings up the engine: probes for another running WM, discovers
// monitor geometry, initializes EWMH/ICCCM atoms, and grabs configured
// keys. It does not scan pre-existing windows; call Scan for that.
func (wm *WM) Setup() error {
	if err := wm.Ops.BecomeWM(); err != nil {
		return fmt.Errorf("another window manager is already running: %w", err)
	}

	wm.NumlockMask = wm.Ops.NumlockMask()

	bh := wm.Cfg.Behavior.UserBarHeight
	if bh <= 0 {
		bh = 22
	}
	wm.barHeight = bh
	model.SetBarHeightFloor(bh)

	layout.SetBorderWidth(wm.Cfg.Behavior.BorderPx)
	layout.SetResizeHints(wm.Cfg.Behavior.ResizeHints)

	if err := wm.updateGeometry(); err != nil {
		return fmt.Errorf("discover monitor geometry: %w", err)
	}

	if err := wm.Ops.InitSupported(SupportedAtoms); err != nil {
		return fmt.Errorf("announce EWMH support: %w", err)
	}
	if err := wm.Ops.SetClientList(nil); err != nil {
		return fmt.Errorf("reset client list: %w", err)
	}

	if err := wm.grabKeys(); err != nil {
		return fmt.Errorf("grab configured keys: %w", err)
	}

	wm.Running = true
	return nil
}

// Cleanup unfocuses every managed client, sets its WM_STATE to Withdrawn,
// releases the key grabs and closes the connection. Called before a clean
// exit or re-exec.
func (wm *WM) Cleanup() {
	wm.ForEachMonitor(func(m *model.Monitor) {
		model.ForEachClient(m, func(c *model.Client) {
			wm.unfocus(c, true)
			_ = wm.Ops.SetWMState(c.Win, xops.WithdrawnState)
		})
	})
	_ = wm.Ops.UngrabKeys()
	wm.Ops.Close()
}

// ForEachMonitor calls fn for every monitor in the list.
func (wm *WM) ForEachMonitor(fn func(*model.Monitor)) {
	for m := wm.Mons; m != nil; m = m.Next {
		fn(m)
	}
}

// rebuildClientList rebuilds _NET_CLIENT_LIST across every monitor,
// ordered by window id, and pushes it to the X server.
func (wm *WM) rebuildClientList() {
	var wins []xproto.Window
	wm.ForEachMonitor(func(m *model.Monitor) {
		model.ForEachClient(m, func(c *model.Client) { wins = append(wins, c.Win) })
	})
	sort.Slice(wins, func(i, j int) bool { return wins[i] < wins[j] })
	_ = wm.Ops.SetClientList(wins)
}

// findClient locates the client owning win across every monitor.
func (wm *WM) findClient(win xproto.Window) *model.Client {
	var found *model.Client
	wm.ForEachMonitor(func(m *model.Monitor) {
		if found != nil {
			return
		}
		model.ForEachClient(m, func(c *model.Client) {
			if found == nil && c.Win == win {
				found = c
			}
		})
	})
	return found
}

// Quit requests a clean shutdown from the event loop.
func (wm *WM) Quit() { wm.Running = false }

// RequestRestart requests a re-exec from the event loop (SIGHUP).
func (wm *WM) RequestRestart() {
	wm.Running = false
	wm.Restart = true
}
