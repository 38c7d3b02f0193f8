package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/rawmkit/rawm/internal/model"
	"github.com/rawmkit/rawm/internal/xops"
)

// MoveMouse drags the selected client by the pointer under a pointer
// grab: fullscreen clients never move; a tiled client is promoted to
// floating the moment the drag starts (dwm's "dragging a tiled window
// pulls it out of the layout" behavior); each position snaps to the
// work-area edge within the configured snap distance, and once the drag
// ends the client is reassigned to whichever monitor contains its centre.
func (wm *WM) MoveMouse(c *model.Client) {
	if c == nil || c.IsFullscreen {
		return
	}
	wm.Restack(c.Mon)
	ocx, ocy := c.X, c.Y
	startX, startY, err := wm.Ops.QueryPointer(wm.rootWindow())
	if err != nil {
		return
	}
	if err := wm.Ops.GrabPointerFor(xops.GrabMove); err != nil {
		return
	}
	defer wm.Ops.UngrabPointer()

	c.IsFloating = true

	wm.dragTo(c, func(curX, curY int) {
		nx := ocx + (curX - startX)
		ny := ocy + (curY - startY)
		nx, ny = wm.snap(c, nx, ny)
		c.X, c.Y = nx, ny
		_ = wm.Ops.MoveResizeWindow(c.Win, c.X, c.Y, c.W, c.H)
	})

	wm.reassignMonitor(c)
}

// ResizeMouse drags the selected client's bottom-right corner, warping the
// pointer back to the corner once the drag ends so it tracks the final
// size exactly.
func (wm *WM) ResizeMouse(c *model.Client) {
	if c == nil || c.IsFullscreen {
		return
	}
	wm.Restack(c.Mon)
	ocx, ocy := c.X, c.Y
	if err := wm.Ops.GrabPointerFor(xops.GrabResize); err != nil {
		return
	}
	defer wm.Ops.UngrabPointer()

	if !c.IsFloating {
		c.IsFloating = true
	}

	wm.dragTo(c, func(curX, curY int) {
		nw := curX - ocx - 2*c.BorderWidth + 1
		nh := curY - ocy - 2*c.BorderWidth + 1
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}
		c.W, c.H = nw, nh
		_ = wm.Ops.MoveResizeWindow(c.Win, c.X, c.Y, c.W, c.H)
	})

	_ = wm.Ops.WarpPointer(c.Win, c.W+c.BorderWidth-1, c.H+c.BorderWidth-1)
	wm.reassignMonitor(c)
}

// dragTo feeds onMove live pointer positions until the grab's button is
// released, matching dwm's nested movemouse/resizemouse event loop that
// reads raw events directly instead of going back through the main
// dispatcher while the grab is held.
func (wm *WM) dragTo(c *model.Client, onMove func(x, y int)) {
	for {
		x, y, released, err := wm.Ops.NextPointerEvent()
		if err != nil {
			break
		}
		onMove(x, y)
		if released {
			break
		}
	}
	wm.Arrange(c.Mon)
}

// snap pulls (x, y) onto the work-area edge when within the configured
// snap distance.
func (wm *WM) snap(c *model.Client, x, y int) (int, int) {
	snap := wm.Cfg.Behavior.Snap
	m := c.Mon
	if abs(x-m.Wx) < snap {
		x = m.Wx
	} else if abs((m.Wx+m.Ww)-(x+c.BorderedW())) < snap {
		x = m.Wx + m.Ww - c.BorderedW()
	}
	if abs(y-m.Wy) < snap {
		y = m.Wy
	} else if abs((m.Wy+m.Wh)-(y+c.BorderedH())) < snap {
		y = m.Wy + m.Wh - c.BorderedH()
	}
	return x, y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// reassignMonitor migrates c to whichever monitor now contains its center
// point, if that differs from its current one (dwm's sendmon-on-drag
// behavior for multi-monitor drags).
func (wm *WM) reassignMonitor(c *model.Client) {
	target := wm.monitorAt(c.X+c.W/2, c.Y+c.H/2)
	if target == nil || target == c.Mon {
		return
	}
	wm.SendToMonitor(c, target)
}

// SendToMonitor moves c to dst, leaving its stored geometry unchanged and
// re-deriving its tags from the destination's current view.
func (wm *WM) SendToMonitor(c *model.Client, dst *model.Monitor) {
	if c == nil || c.Mon == dst {
		return
	}
	src := c.Mon
	wm.unfocus(c, true)
	model.Detach(src, c)
	model.DetachStack(src, c)
	c.Mon = dst
	c.Tags = dst.Tags()
	model.Attach(dst, c)
	model.AttachStack(dst, c)
	wm.Focus(nil)
	wm.Arrange(nil)
}

func (wm *WM) monitorAt(x, y int) *model.Monitor {
	var best *model.Monitor
	wm.ForEachMonitor(func(m *model.Monitor) {
		if best == nil && x >= m.Mx && x < m.Mx+m.Mw && y >= m.My && y < m.My+m.Mh {
			best = m
		}
	})
	if best != nil {
		return best
	}
	return wm.SelMon
}

func (wm *WM) rootWindow() xproto.Window { return wm.Ops.Root() }
