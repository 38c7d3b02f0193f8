package model

// ApplySizeHints normalizes a proposed (x, y, w, h) in place against c's
// cached WM_NORMAL_HINTS and mon's geometry, following the same order of
// operations as the arrangement engine: clamp into bounds, bump to a
// minimum size, then (when honored) apply aspect limits and increments.
//
// interact selects loose clamping against the screen (used during
// interactive mouse moves/resizes) versus strict clamping against the
// monitor's work area. honorHints additionally applies base/aspect/
// increment/min/max adjustments; callers pass true when resizeHints is
// configured on, or the client is floating, or the current layout is
// floating.
//
// Returns true iff the resulting rectangle differs from (origX, origY,
// origW, origH) -- i.e. from c's geometry at call time.
func ApplySizeHints(c *Client, mon *Monitor, x, y, w, h *int, interact, honorHints bool) bool {
	origX, origY, origW, origH := c.X, c.Y, c.W, c.H

	if *w < 1 {
		*w = 1
	}
	if *h < 1 {
		*h = 1
	}

	if interact {
		if *x > screenW(mon) {
			*x = screenW(mon) - c.BorderedW()
		}
		if *y > screenH(mon) {
			*y = screenH(mon) - c.BorderedH()
		}
		if *x+*w+2*c.BorderWidth < 0 {
			*x = 0
		}
		if *y+*h+2*c.BorderWidth < 0 {
			*y = 0
		}
	} else {
		if *x >= mon.Wx+mon.Ww {
			*x = mon.Wx + mon.Ww - c.BorderedW()
		}
		if *y >= mon.Wy+mon.Wh {
			*y = mon.Wy + mon.Wh - c.BorderedH()
		}
		if *x+*w+2*c.BorderWidth <= mon.Wx {
			*x = mon.Wx
		}
		if *y+*h+2*c.BorderWidth <= mon.Wy {
			*y = mon.Wy
		}
	}

	if *h < barHeightFloor {
		*h = barHeightFloor
	}
	if *w < barHeightFloor {
		*w = barHeightFloor
	}

	if honorHints {
		hi := c.Hints
		baseIsMin := hi.BaseW == hi.MinW && hi.BaseH == hi.MinH

		ww, hh := *w, *h
		if !baseIsMin {
			ww -= hi.BaseW
			hh -= hi.BaseH
		}

		if hi.MaxA > 0 || hi.MinA > 0 {
			fw, fh := float64(ww), float64(hh)
			if hi.MaxA > 0 && hi.MaxA < fw/fh {
				ww = int(fh * hi.MaxA)
			} else if hi.MinA > 0 && hi.MinA < fh/fw {
				hh = int(fw * hi.MinA)
			}
		}

		if baseIsMin {
			ww -= hi.BaseW
			hh -= hi.BaseH
		}

		if hi.IncW != 0 {
			ww -= ww % hi.IncW
		}
		if hi.IncH != 0 {
			hh -= hh % hi.IncH
		}

		*w = max2(ww+hi.BaseW, hi.MinW)
		*h = max2(hh+hi.BaseH, hi.MinH)
		if hi.MaxW != 0 && *w > hi.MaxW {
			*w = hi.MaxW
		}
		if hi.MaxH != 0 && *h > hi.MaxH {
			*h = hi.MaxH
		}
	}

	return *x != origX || *y != origY || *w != origW || *h != origH
}

// barHeightFloor is the minimum client dimension, bumped up to the bar's
// height so windows never shrink below what the bar itself would occupy.
// Callers that need a real bar height set it via SetBarHeightFloor.
var barHeightFloor = 1

// SetBarHeightFloor configures the minimum dimension ApplySizeHints bumps
// widths/heights up to. Called once from wm setup with the configured bar
// height.
func SetBarHeightFloor(bh int) {
	if bh < 1 {
		bh = 1
	}
	barHeightFloor = bh
}

func screenW(mon *Monitor) int { return mon.Mx + mon.Mw }
func screenH(mon *Monitor) int { return mon.My + mon.Mh }

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}
