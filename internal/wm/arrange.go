package wm

import "github.com/rawmkit/rawm/internal/model"

// BarRenderer draws every visible monitor's status bar. Implemented by
// package bar; kept as an interface here so wm never imports the X
// graphics stack directly.
type BarRenderer interface {
	Draw(wm *WM)
}

// SetBarRenderer installs the bar renderer used by DrawBars. A nil
// renderer (the default) makes DrawBars a no-op, which is adequate for
// tests that only assert on the client/monitor model.
func (wm *WM) SetBarRenderer(r BarRenderer) { wm.bar = r }

// DrawBars repaints every monitor's status bar.
func (wm *WM) DrawBars() {
	if wm.bar != nil {
		wm.bar.Draw(wm)
	}
}

// Arrange runs m's current layout (or every monitor's, if m is nil) and
// realizes the computed geometry for every visible client, restacks, and
// redraws the bar. showHide first maps/unmaps clients to match the new
// tagset before the layout function runs, since it depends on which
// clients count as "visible".
func (wm *WM) Arrange(m *model.Monitor) {
	if m != nil {
		wm.arrangeOne(m)
		return
	}
	wm.ForEachMonitor(wm.arrangeOne)
}

func (wm *WM) arrangeOne(m *model.Monitor) {
	wm.showHide(m.Stack)

	if arrange := m.Lt[m.SelLt].Arrange; arrange != nil {
		arrange(m)
	}

	model.ForEachClient(m, func(c *model.Client) {
		if !c.IsVisible() {
			return
		}
		if c.IsFullscreen {
			wm.placeFullscreen(c)
		}
		if c.NoDecor {
			c.BorderWidth = 0
		}
		_ = wm.Ops.MoveResizeWindow(c.Win, c.X, c.Y, c.W, c.H)
		_ = wm.Ops.SetBorderWidth(c.Win, c.BorderWidth)
	})

	wm.Restack(m)
}

// showHide maps every visible client in stack order and unmaps every
// hidden one, so the event dispatcher's MapRequest/UnmapNotify bookkeeping
// stays consistent with tag switches that never touch the X server
// otherwise.
func (wm *WM) showHide(stack *model.Client) {
	if stack == nil {
		return
	}
	if stack.IsVisible() {
		_ = wm.Ops.MapWindow(stack.Win)
		wm.showHide(stack.SNext)
		return
	}
	_ = wm.Ops.UnmapWindow(stack.Win)
	wm.showHide(stack.SNext)
}

// placeFullscreen forces fullscreen geometry and zero border: fullscreen
// implies floating, zero border width, and full monitor geometry.
func (wm *WM) placeFullscreen(c *model.Client) {
	c.X, c.Y, c.W, c.H = c.Mon.Mx, c.Mon.My, c.Mon.Mw, c.Mon.Mh
	c.BorderWidth = 0
}
