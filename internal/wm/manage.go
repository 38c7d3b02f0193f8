package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/model"
	"github.com/rawmkit/rawm/internal/xops"
)

// Manage allocates and attaches a Client for win at its current geometry
// x,y,w,h. It is the handler for MapRequest (after the
// override_redirect/already-managed checks in events.go) and for windows
// found by an initial Scan.
func (wm *WM) Manage(win xproto.Window, x, y, w, h int) *model.Client {
	if wm.findClient(win) != nil {
		return nil
	}

	c := &model.Client{
		Win:         win,
		X:           x,
		Y:           y,
		W:           w,
		H:           h,
		BorderWidth: wm.Cfg.Behavior.BorderPx,
	}
	if hideBorder, _ := wm.Ops.GetMotifDecorations(win); hideBorder {
		c.NoDecor = true
		c.BorderWidth = 0
	}
	c.SaveGeometry()

	wm.resolveTitle(c)

	var transientTarget *model.Client
	if tw, ok, _ := wm.Ops.GetTransientFor(win); ok {
		transientTarget = wm.findClient(tw)
	}

	mon := wm.SelMon
	var ruleFloating, ruleCentered bool
	if transientTarget != nil {
		mon = transientTarget.Mon
		c.Tags = transientTarget.Tags
		ruleFloating = true
	} else {
		wm.applyRules(c)
		mon = wm.monitorByIndex(wm.ruleMonitorIndex(c), mon)
		ruleFloating = c.IsFloating
		ruleCentered = c.IsCentered
	}
	c.Mon = mon

	if c.Tags == 0 {
		c.Tags = mon.Tags()
	} else {
		c.Tags &= config.TagMask
		if c.Tags == 0 {
			c.Tags = mon.Tags()
		}
	}

	if hints, ok, _ := wm.Ops.GetWMNormalHints(win); ok {
		c.Hints = toModelHints(hints)
	}
	c.IsFixed = c.Hints.MaxW > 0 && c.Hints.MaxW == c.Hints.MinW && c.Hints.MaxH == c.Hints.MinH

	wm.clampIntoMonitor(c)

	urgent, neverFocus, _ := wm.Ops.GetWMHints(win)
	c.IsUrgent = urgent
	c.NeverFocus = neverFocus

	c.IsFloating = ruleFloating || transientTarget != nil || c.IsFixed
	c.IsCentered = ruleCentered

	if isDialog, _ := wm.Ops.GetWindowTypeDialog(win); isDialog {
		c.IsFloating = true
		if wm.Cfg.Behavior.DialogAutocenter {
			c.IsCentered = true
		}
	}
	if c.IsCentered {
		wm.centerOnMonitor(c)
	}

	model.Attach(mon, c)
	model.AttachStack(mon, c)

	_ = wm.Ops.SelectClientEvents(win)
	wm.grabButtons(c, false)
	if !c.IsFloating {
		c.IsFloating = mon.Lt[mon.SelLt].Arrange == nil
	}

	wm.rebuildClientList()
	_ = wm.Ops.SetWMState(win, xops.NormalState)

	if wm.wantsFullscreenOnMap(win) {
		wm.SetFullscreen(c, true)
	}

	_ = wm.Ops.SetWindowOpacity(win, wm.Cfg.Behavior.DefaultOpacity)

	// Move off-screen first so the client never flashes at a stale
	// position before Arrange places it for real.
	_ = wm.Ops.MoveResizeWindow(win, c.X+2*mon.Mw, c.Y, c.W, c.H)
	_ = wm.Ops.MapWindow(win)

	wm.Arrange(mon)
	wm.Focus(nil)

	return c
}

// Unmanage detaches c, restoring its border width unless the window was
// destroyed, and rebuilds the client list.
func (wm *WM) Unmanage(c *model.Client, destroyed bool) {
	mon := c.Mon
	_ = wm.Ops.GrabServer()
	model.Detach(mon, c)
	model.DetachStack(mon, c)
	if !destroyed {
		_ = wm.Ops.SetBorderWidth(c.Win, c.OldBorderWidth)
		_ = wm.Ops.UngrabButtons(c.Win)
		_ = wm.Ops.SetWMState(c.Win, xops.WithdrawnState)
	}
	_ = wm.Ops.UngrabServer()

	if mon.Sel == c {
		mon.Sel = nil
	}
	wm.rebuildClientList()
	wm.Focus(nil)
	wm.Arrange(mon)
}

// resolveTitle prefers _NET_WM_NAME, falls back to WM_NAME, then to the
// "broken" sentinel.
func (wm *WM) resolveTitle(c *model.Client) {
	if name, err := wm.Ops.GetNetWMName(c.Win); err == nil && name != "" {
		c.Name = truncateTitle(name)
		return
	}
	if name, err := wm.Ops.GetWMName(c.Win); err == nil && name != "" {
		c.Name = truncateTitle(name)
		return
	}
	c.Name = "broken"
}

func truncateTitle(s string) string {
	if len(s) > model.MaxTitle {
		return s[:model.MaxTitle]
	}
	return s
}

// applyRules fetches WM_CLASS/WM_WINDOW_ROLE, then merges every matching
// configured rule into c.
func (wm *WM) applyRules(c *model.Client) {
	class, instance, err := wm.Ops.GetWMClass(c.Win)
	if err != nil || class == "" {
		class = "broken"
	}
	if instance == "" {
		instance = "broken"
	}
	role, err := wm.Ops.GetWMRole(c.Win)
	if err != nil || role == "" {
		role = "broken"
	}

	tags, floating, centered, _ := model.ApplyRules(wm.Cfg.Rules, class, instance, c.Name, role)
	c.Tags = tags
	c.IsFloating = floating
	c.IsCentered = centered
}

// ruleMonitorIndex returns the last matching rule's target monitor index,
// or -1 if no rule names one.
func (wm *WM) ruleMonitorIndex(c *model.Client) int {
	class, instance, _ := wm.Ops.GetWMClass(c.Win)
	role, _ := wm.Ops.GetWMRole(c.Win)
	_, _, _, mon := model.ApplyRules(wm.Cfg.Rules, class, instance, c.Name, role)
	return mon
}

func (wm *WM) monitorByIndex(idx int, fallback *model.Monitor) *model.Monitor {
	if idx < 0 {
		return fallback
	}
	n := 0
	for m := wm.Mons; m != nil; m = m.Next {
		if n == idx {
			return m
		}
		n++
	}
	return fallback
}

// clampIntoMonitor clamps c's geometry into its monitor's outer rectangle,
// covering the "mapping a window larger than the monitor" boundary case.
func (wm *WM) clampIntoMonitor(c *model.Client) {
	m := c.Mon
	if c.W > m.Mw {
		c.W = m.Mw - 2*c.BorderWidth
	}
	if c.H > m.Mh {
		c.H = m.Mh - 2*c.BorderWidth
	}
	if c.X+c.W+2*c.BorderWidth > m.Mx+m.Mw {
		c.X = m.Mx + m.Mw - c.W - 2*c.BorderWidth
	}
	if c.Y+c.H+2*c.BorderWidth > m.My+m.Mh {
		c.Y = m.My + m.Mh - c.H - 2*c.BorderWidth
	}
	if c.X < m.Mx {
		c.X = m.Mx
	}
	if c.Y < m.My {
		c.Y = m.My
	}
}

func (wm *WM) centerOnMonitor(c *model.Client) {
	m := c.Mon
	c.X = m.Mx + (m.Mw-c.W)/2
	c.Y = m.My + (m.Mh-c.H)/2
}

func toModelHints(h xops.NormalHints) model.SizeHints {
	sh := model.SizeHints{
		BaseW: h.BaseW, BaseH: h.BaseH,
		MinW: h.MinW, MinH: h.MinH,
		MaxW: h.MaxW, MaxH: h.MaxH,
		IncW: h.IncW, IncH: h.IncH,
	}
	if h.HasAspect && h.MinAspectY != 0 {
		sh.MinA = float64(h.MinAspectX) / float64(h.MinAspectY)
	}
	if h.HasAspect && h.MaxAspectY != 0 {
		sh.MaxA = float64(h.MaxAspectX) / float64(h.MaxAspectY)
	}
	if !h.HasBase {
		sh.BaseW, sh.BaseH = 0, 0
	}
	if !h.HasMin {
		sh.MinW, sh.MinH = 0, 0
	}
	if !h.HasMax {
		sh.MaxW, sh.MaxH = 0, 0
	}
	if !h.HasInc {
		sh.IncW, sh.IncH = 0, 0
	}
	return sh
}

func (wm *WM) wantsFullscreenOnMap(win xproto.Window) bool {
	states, _ := wm.Ops.GetNetWMStates(win)
	for _, s := range states {
		if s == "_NET_WM_STATE_FULLSCREEN" {
			return true
		}
	}
	return false
}
