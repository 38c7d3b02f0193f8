package wm

import "github.com/rawmkit/rawm/internal/model"

// selClient returns the selected monitor's selected client, or nil if
// there is no selected monitor or no selection.
func (wm *WM) selClient() *model.Client {
	if wm.SelMon == nil {
		return nil
	}
	return wm.SelMon.Sel
}

// IncNMaster adjusts the selected monitor's master-area client count by
// delta, refusing to go below zero.
func (wm *WM) IncNMaster(delta int) {
	m := wm.SelMon
	if m == nil {
		return
	}
	n := m.NMaster + delta
	if n < 0 {
		n = 0
	}
	m.NMaster = n
	storePertag(m)
	wm.Arrange(m)
}

// Zoom promotes the selected client to the top of the master area (or, if
// it is already there, swaps with the next tiled client), matching dwm's
// single-binding "make this the master" behavior.
func (wm *WM) Zoom() {
	m := wm.SelMon
	if m == nil || m.Sel == nil {
		return
	}
	c := m.Sel
	if c.IsFloating {
		return
	}
	if model.NextTiled(m.Clients) == c {
		c = model.NextTiled(c.Next)
		if c == nil {
			return
		}
	}
	wm.pop(c)
}

// ToggleFloating flips the selected client's floating state, refusing to
// act on a fullscreen client (fullscreen always implies floating).
func (wm *WM) ToggleFloating() {
	c := wm.selClient()
	if c == nil || c.IsFullscreen {
		return
	}
	c.IsFloating = !c.IsFloating
	if c.IsFloating {
		c.X, c.Y, c.W, c.H = c.OldX, c.OldY, c.OldW, c.OldH
	} else {
		c.SaveGeometry()
	}
	wm.Arrange(c.Mon)
}

// ToggleBar flips the selected monitor's bar visibility.
func (wm *WM) ToggleBar() {
	m := wm.SelMon
	if m == nil {
		return
	}
	m.ShowBar = !m.ShowBar
	storePertag(m)
	wm.updateBarGeometry(m)
	wm.Arrange(m)
}

// FocusMon moves the selected monitor by dir (wrapping), without moving any
// client.
func (wm *WM) FocusMon(dir int) {
	mons := wm.monitorsSlice()
	if len(mons) < 2 || wm.SelMon == nil {
		return
	}
	idx := 0
	for i, m := range mons {
		if m == wm.SelMon {
			idx = i
			break
		}
	}
	n := len(mons)
	next := ((idx+dir)%n + n) % n
	wm.unfocus(wm.SelMon.Sel, false)
	wm.SelMon = mons[next]
	wm.Focus(nil)
}

// TagMon sends the selected client to the monitor dir steps away
// (wrapping).
func (wm *WM) TagMon(dir int) {
	c := wm.selClient()
	mons := wm.monitorsSlice()
	if c == nil || len(mons) < 2 {
		return
	}
	idx := 0
	for i, m := range mons {
		if m == c.Mon {
			idx = i
			break
		}
	}
	n := len(mons)
	next := ((idx+dir)%n + n) % n
	wm.SendToMonitor(c, mons[next])
}
