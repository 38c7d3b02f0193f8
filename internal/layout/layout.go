// Package layout implements the arrangement algorithms that place tiled,
// visible clients within a monitor's work area. Functions here mutate
// client geometry directly and are free of X11 calls, so the wm package
// is responsible for realizing the computed geometry on the X server
// after Arrange returns.
package layout

import (
	"math"

	"github.com/rawmkit/rawm/internal/model"
)

var (
	borderWidth = 1
	resizeHints = false
)

// SetBorderWidth configures the default border width new/tiled clients are
// given by the arrangement functions. Mirrors the single global borderpx
// of the engine this is modeled on.
func SetBorderWidth(px int) {
	if px < 0 {
		px = 0
	}
	borderWidth = px
}

// SetResizeHints toggles whether tiled layouts honor a client's size hints
// (increments/aspect) in addition to strict grid placement.
func SetResizeHints(on bool) { resizeHints = on }

func honorHints(c *model.Client) bool {
	return resizeHints || c.IsFloating
}

// place normalizes and commits (x, y, w, h) as c's new geometry, applying
// size hints and the given border width.
func place(c *model.Client, m *model.Monitor, x, y, w, h, bw int) {
	c.BorderWidth = bw
	cw := w - 2*bw
	ch := h - 2*bw
	model.ApplySizeHints(c, m, &x, &y, &cw, &ch, false, honorHints(c))
	c.X, c.Y, c.W, c.H = x, y, cw, ch
}

// Tile places the nmaster topmost tiled clients in a left master column and
// the remainder in a right stack column.
func Tile(m *model.Monitor) {
	clients := model.VisibleClients(m)
	n := len(clients)
	if n == 0 {
		return
	}

	var mw int
	if n > m.NMaster {
		if m.NMaster != 0 {
			mw = int(float64(m.Ww) * m.MFact)
		}
	} else {
		mw = m.Ww
	}

	bw := borderWidth
	if n == 1 {
		bw = 0
	}

	my, ty := 0, 0
	for i, c := range clients {
		if i < m.NMaster {
			h := (m.Wh - my) / (min(n, m.NMaster) - i)
			place(c, m, m.Wx, m.Wy+my, mw, h, bw)
			if my+c.BorderedH() < m.Wh {
				my += c.BorderedH()
			}
		} else {
			h := (m.Wh - ty) / (n - i)
			place(c, m, m.Wx+mw, m.Wy+ty, m.Ww-mw, h, bw)
			if ty+c.BorderedH() < m.Wh {
				ty += c.BorderedH()
			}
		}
	}
	m.LtSymbol = "[]="
}

// BStack places the master clients across the top, stack clients across
// the bottom.
func BStack(m *model.Monitor) {
	clients := model.VisibleClients(m)
	n := len(clients)
	if n == 0 {
		return
	}

	mh := m.Wh
	if n > m.NMaster && m.NMaster > 0 {
		mh = int(float64(m.Wh) * m.MFact)
	} else if m.NMaster == 0 {
		mh = 0
	}

	bw := borderWidth
	if n == 1 {
		bw = 0
	}

	mx, tx := 0, 0
	for i, c := range clients {
		if i < m.NMaster {
			w := (m.Ww - mx) / (min(n, m.NMaster) - i)
			place(c, m, m.Wx+mx, m.Wy, w, mh, bw)
			if mx+c.BorderedW() < m.Ww {
				mx += c.BorderedW()
			}
		} else {
			w := (m.Ww - tx) / (n - i)
			place(c, m, m.Wx+tx, m.Wy+mh, w, m.Wh-mh, bw)
			if tx+c.BorderedW() < m.Ww {
				tx += c.BorderedW()
			}
		}
	}
	m.LtSymbol = "TTT"
}

// BStackHoriz is BStack with the stack area stacked vertically instead of
// horizontally, each stack client spanning the full width.
func BStackHoriz(m *model.Monitor) {
	clients := model.VisibleClients(m)
	n := len(clients)
	if n == 0 {
		return
	}

	mh := m.Wh
	if n > m.NMaster && m.NMaster > 0 {
		mh = int(float64(m.Wh) * m.MFact)
	} else if m.NMaster == 0 {
		mh = 0
	}

	bw := borderWidth
	if n == 1 {
		bw = 0
	}

	mx, ty := 0, 0
	nStack := n - m.NMaster
	for i, c := range clients {
		if i < m.NMaster {
			w := (m.Ww - mx) / (min(n, m.NMaster) - i)
			place(c, m, m.Wx+mx, m.Wy, w, mh, bw)
			if mx+c.BorderedW() < m.Ww {
				mx += c.BorderedW()
			}
		} else {
			idx := i - m.NMaster
			h := (m.Wh - mh - ty) / (nStack - idx)
			place(c, m, m.Wx, m.Wy+mh+ty, m.Ww, h, bw)
			if ty+c.BorderedH() < m.Wh-mh {
				ty += c.BorderedH()
			}
		}
	}
	m.LtSymbol = "==="
}

// Monocle places every visible tiled client over the full work area with
// zero border, and sets the layout symbol to the "[N/M]" counter.
func Monocle(m *model.Monitor) {
	clients := model.VisibleClients(m)
	n := len(clients)
	sel := 1
	for i, c := range clients {
		if c == m.Sel {
			sel = i + 1
		}
		place(c, m, m.Wx, m.Wy, m.Ww, m.Wh, 0)
	}
	m.LtSymbol = BracketedCount(sel, n, false)
}

// BracketedCount renders the "[N/M]"/"<N/M>" counter used by monocle and by
// the bar when the current layout is floating (nil arrange).
func BracketedCount(n, total int, floating bool) string {
	open, close := "[", "]"
	if floating {
		open, close = "<", ">"
	}
	return open + itoa(n) + "/" + itoa(total) + close
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [12]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// GaplessGrid fills a column-major grid with cols = ceil(sqrt(n)) (special
// case: n == 5 uses 2 columns), growing the last columns by one row to
// absorb the remainder.
func GaplessGrid(m *model.Monitor) {
	clients := model.VisibleClients(m)
	n := len(clients)
	if n == 0 {
		return
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if n == 5 {
		cols = 2
	}
	rows := n / cols

	bw := borderWidth
	if n == 1 {
		bw = 0
	}

	cn, rn, i := 0, 0, 0
	for i < n {
		c := clients[i]
		colRows := rows
		if cn >= cols-n%cols {
			colRows = rows + 1
		}
		cw := m.Ww / cols
		ch := m.Wh / colRows

		cx := m.Wx + cn*cw
		cy := m.Wy + rn*ch
		place(c, m, cx, cy, cw, ch, bw)

		rn++
		if rn >= colRows {
			rn = 0
			cn++
		}
		i++
	}
	m.LtSymbol = "HHH"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
