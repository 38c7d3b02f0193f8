package wm

import (
	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/model"
	"github.com/rawmkit/rawm/internal/xops"
)

// updateGeometry rebuilds the monitor list from the transport's Xinerama
// heads (or a single monitor covering the whole screen when there are
// none), dropping any head whose geometry repeats an earlier one. Growing
// the head count appends new monitors with the configured default layout,
// each starting on the first tag; shrinking migrates the removed monitors'
// clients onto the first monitor.
func (wm *WM) updateGeometry() error {
	heads, err := wm.Ops.Heads()
	if err != nil {
		return err
	}
	if len(heads) == 0 {
		root := wm.Ops.RootGeometry()
		heads = []xops.Rect{{Width: root.Width, Height: root.Height}}
	}
	var unique []xops.Rect
	for _, h := range heads {
		dup := false
		for _, u := range unique {
			if u == h {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, h)
		}
	}
	heads = unique

	existing := wm.monitorsSlice()

	switch {
	case len(heads) > len(existing):
		for i := len(existing); i < len(heads); i++ {
			m := wm.newMonitor(i)
			wm.appendMonitor(m)
			existing = append(existing, m)
		}
	case len(heads) < len(existing):
		dst := existing[0]
		for i := len(heads); i < len(existing); i++ {
			wm.migrateClients(existing[i], dst)
			wm.removeMonitor(existing[i])
		}
		existing = existing[:len(heads)]
	}

	for i, h := range heads {
		m := existing[i]
		m.Mx, m.My, m.Mw, m.Mh = h.X, h.Y, h.Width, h.Height
		wm.updateBarGeometry(m)
	}

	if wm.SelMon == nil && wm.Mons != nil {
		wm.SelMon = wm.Mons
	}
	return nil
}

// updateBarGeometry recomputes the work area and bar y-position for m from
// its outer geometry, bar height, and topbar/showbar settings.
func (wm *WM) updateBarGeometry(m *model.Monitor) {
	m.Wx, m.Wy, m.Ww, m.Wh = m.Mx, m.My, m.Mw, m.Mh
	if !m.ShowBar {
		m.By = -wm.barHeight
		return
	}
	if m.TopBar {
		m.By = m.My
		m.Wy += wm.barHeight
		m.Wh -= wm.barHeight
	} else {
		m.By = m.My + m.Mh - wm.barHeight
		m.Wh -= wm.barHeight
	}
}

func (wm *WM) monitorsSlice() []*model.Monitor {
	var out []*model.Monitor
	wm.ForEachMonitor(func(m *model.Monitor) { out = append(out, m) })
	return out
}

func (wm *WM) appendMonitor(m *model.Monitor) {
	if wm.Mons == nil {
		wm.Mons = m
		return
	}
	last := wm.Mons
	for last.Next != nil {
		last = last.Next
	}
	last.Next = m
}

func (wm *WM) removeMonitor(m *model.Monitor) {
	if wm.Mons == m {
		wm.Mons = m.Next
	} else {
		for p := wm.Mons; p != nil; p = p.Next {
			if p.Next == m {
				p.Next = m.Next
				break
			}
		}
	}
	if wm.SelMon == m {
		wm.SelMon = wm.Mons
	}
}

func (wm *WM) migrateClients(from, to *model.Monitor) {
	for c := from.Clients; c != nil; {
		next := c.Next
		c.Next = nil
		model.Attach(to, c)
		c.Mon = to
		c = next
	}
	for c := from.Stack; c != nil; {
		next := c.SNext
		c.SNext = nil
		model.AttachStack(to, c)
		c = next
	}
	from.Clients, from.Stack, from.Sel = nil, nil, nil
}

// newMonitor allocates monitor index num with the default layout/tag/bar
// settings from configuration and a fresh Pertag table.
func (wm *WM) newMonitor(num int) *model.Monitor {
	idx := defaultLayoutIndex(wm.Cfg, num)
	lt0 := &wm.Cfg.Layouts[idx]
	var lt1 *model.Layout
	if len(wm.Cfg.Layouts) > 1 {
		lt1 = &wm.Cfg.Layouts[(idx+1)%len(wm.Cfg.Layouts)]
	} else {
		lt1 = lt0
	}

	m := &model.Monitor{
		Num:      num,
		ShowBar:  wm.Cfg.Behavior.ShowBar,
		TopBar:   wm.Cfg.Behavior.TopBar,
		MFact:    wm.Cfg.Behavior.MFact,
		NMaster:  wm.Cfg.Behavior.NMaster,
		Lt:       [2]*model.Layout{lt0, lt1},
		LtSymbol: lt0.Symbol,
	}
	m.TagSet[0] = 1
	m.TagSet[1] = 1
	m.Pertag = model.NewPertag(config.TAGS, m.NMaster, m.MFact, lt0, lt1, m.ShowBar)
	m.Pertag.Lts[0] = [2]*model.Layout{lt0, lt1}
	return m
}

func defaultLayoutIndex(cfg config.Config, monNum int) int {
	for _, r := range cfg.MonRules {
		if r.Monitor == monNum || r.Monitor == -1 {
			if r.LayoutIndex >= 0 && r.LayoutIndex < len(cfg.Layouts) {
				return r.LayoutIndex
			}
		}
	}
	return 0
}
