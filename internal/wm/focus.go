package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/model"
)

// Focus selects c, scanning the monitor's focus-history stack for the
// topmost visible client when c is nil or not visible.
func (wm *WM) Focus(c *model.Client) {
	if (c == nil || !c.IsVisible()) && wm.SelMon != nil {
		for t := wm.SelMon.Stack; t != nil; t = t.SNext {
			if t.IsVisible() {
				c = t
				break
			}
		}
		if c != nil && !c.IsVisible() {
			c = nil
		}
	}

	if wm.SelMon != nil && wm.SelMon.Sel != nil && wm.SelMon.Sel != c {
		wm.unfocus(wm.SelMon.Sel, false)
	}

	if c != nil {
		if c.Mon != wm.SelMon {
			wm.SelMon = c.Mon
		}
		if c.IsUrgent {
			wm.setUrgent(c, false)
		}
		model.DetachStack(c.Mon, c)
		model.AttachStack(c.Mon, c)
		wm.grabButtons(c, true)
		_ = wm.Ops.SetBorderColor(c.Win, wm.Cfg.Colors[config.SchemeSel][0])
		wm.setFocus(c)
	} else {
		_ = wm.Ops.SetFocusToRoot()
		_ = wm.Ops.ClearActiveWindow()
	}

	if wm.SelMon != nil {
		wm.SelMon.Sel = c
	}
	wm.DrawBars()
}

// unfocus repaints c's border to the unselected color and releases its
// focused-only button grabs. setFocus additionally clears X input focus
// and _NET_ACTIVE_WINDOW, used on Cleanup.
func (wm *WM) unfocus(c *model.Client, setFocus bool) {
	if c == nil {
		return
	}
	wm.grabButtons(c, false)
	_ = wm.Ops.SetBorderColor(c.Win, wm.Cfg.Colors[config.SchemeNorm][0])
	if setFocus {
		_ = wm.Ops.SetFocusToRoot()
		_ = wm.Ops.ClearActiveWindow()
	}
}

// setFocus gives c X input focus (unless NeverFocus) and updates
// _NET_ACTIVE_WINDOW.
func (wm *WM) setFocus(c *model.Client) {
	if !c.NeverFocus {
		_ = wm.Ops.SetInputFocus(c.Win, xproto.TimeCurrentTime)
		protocols, _ := wm.Ops.GetWMProtocols(c.Win)
		if containsProtocol(protocols, "WM_TAKE_FOCUS") {
			_ = wm.Ops.SendTakeFocus(c.Win, xproto.TimeCurrentTime)
		}
	}
	_ = wm.Ops.SetActiveWindow(c.Win)
}

func containsProtocol(protocols []string, name string) bool {
	for _, p := range protocols {
		if p == name {
			return true
		}
	}
	return false
}

func (wm *WM) setUrgent(c *model.Client, urgent bool) {
	c.IsUrgent = urgent
	if !urgent {
		_ = wm.Ops.ClearUrgentHint(c.Win)
	}
}

// Restack raises the selected client when floating (or the layout is
// floating), otherwise restacks every non-floating visible client below
// the bar in focus-history order, then drains spurious EnterNotify events
// the restack itself would generate.
func (wm *WM) Restack(m *model.Monitor) {
	wm.DrawBars()
	if m == nil || m.Sel == nil {
		return
	}
	if m.Sel.IsFloating || m.Lt[m.SelLt].Arrange == nil {
		_ = wm.Ops.RaiseWindow(m.Sel.Win)
	}
	if m.Lt[m.SelLt].Arrange != nil {
		sibling := m.BarWin
		for c := m.Stack; c != nil; c = c.SNext {
			if !c.IsFloating && c.IsVisible() {
				_ = wm.Ops.RestackBelow(c.Win, sibling)
				sibling = c.Win
			}
		}
	}
	wm.Ops.Sync()
	wm.Ops.DrainEnterNotify()
}

// FocusStack moves selection to the next (dir > 0) or previous (dir < 0)
// visible client in creation order on the selected monitor, wrapping at
// the ends.
func (wm *WM) FocusStack(dir int) {
	m := wm.SelMon
	if m == nil || m.Sel == nil || m.Sel.IsFullscreen {
		return
	}
	all := allClients(m)
	if len(all) < 2 {
		return
	}
	idx := indexOf(all, m.Sel)
	if idx < 0 {
		return
	}
	n := len(all)
	for step := 1; step <= n; step++ {
		var i int
		if dir > 0 {
			i = (idx + step) % n
		} else {
			i = ((idx-step)%n + n) % n
		}
		if all[i].IsVisible() {
			wm.Focus(all[i])
			wm.Restack(m)
			return
		}
	}
}

// FocusNStack selects the i-th (0-based) visible client in creation order.
func (wm *WM) FocusNStack(i int) {
	m := wm.SelMon
	if m == nil {
		return
	}
	var vis []*model.Client
	model.ForEachClient(m, func(c *model.Client) {
		if c.IsVisible() {
			vis = append(vis, c)
		}
	})
	if i < 0 || i >= len(vis) {
		return
	}
	wm.Focus(vis[i])
	wm.Restack(m)
}

func allClients(m *model.Monitor) []*model.Client {
	var out []*model.Client
	model.ForEachClient(m, func(c *model.Client) { out = append(out, c) })
	return out
}

func indexOf(clients []*model.Client, c *model.Client) int {
	for i, cc := range clients {
		if cc == c {
			return i
		}
	}
	return -1
}
