// Package bar renders the per-monitor status bar: tag cells, the current
// layout symbol, the selected client's title and the status text fed in
// over StatusText, using the same xgbutil/xgraphics drawing stack gobar
// renders with. It depends on internal/wm (to read monitor/client state),
// never the reverse, so the engine stays free of any graphics import.
package bar

import (
	"image"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/xgraphics"
	"github.com/jezek/xgbutil/xwindow"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/layout"
	"github.com/rawmkit/rawm/internal/model"
	"github.com/rawmkit/rawm/internal/wm"
)

const (
	padding    = 4
	tagPadding = 6
)

// Bar draws every visible monitor's status bar. One X window per monitor
// is created lazily the first time that monitor is drawn.
type Bar struct {
	X    *xgbutil.XUtil
	Cfg  config.Config
	Log  *logrus.Logger
	Font font.Face

	windows map[*model.Monitor]*xwindow.Window
}

// New builds a Bar that draws with the configured font spec, falling back
// through findFont/findFontFallback exactly as gobar does.
func New(X *xgbutil.XUtil, cfg config.Config, log *logrus.Logger) *Bar {
	spec := "monospace:size=10"
	if len(cfg.FontSpec) > 0 {
		spec = cfg.FontSpec[0]
	}
	return &Bar{
		X:       X,
		Cfg:     cfg,
		Log:     log,
		Font:    findFont(log, spec),
		windows: map[*model.Monitor]*xwindow.Window{},
	}
}

// Draw implements wm.BarRenderer: it repaints every monitor that currently
// wants its bar shown, creating the backing window on first use, and
// unmaps the window for any monitor that has toggled its bar off.
func (b *Bar) Draw(w *wm.WM) {
	w.ForEachMonitor(func(m *model.Monitor) {
		win, err := b.windowFor(m)
		if err != nil {
			b.Log.WithError(err).Warn("could not create bar window")
			return
		}
		if !m.ShowBar {
			_ = win.Unmap()
			return
		}
		win.Map()
		b.paint(w, m, win)
	})
}

func (b *Bar) windowFor(m *model.Monitor) (*xwindow.Window, error) {
	if win, ok := b.windows[m]; ok {
		return win, nil
	}
	win, err := xwindow.Generate(b.X)
	if err != nil {
		return nil, err
	}
	height := barHeight(b.Font)
	win.Create(b.X.RootWin(), m.Mx, m.By, m.Mw, height, 0)
	_ = ewmh.WmWindowTypeSet(b.X, win.Id, []string{"_NET_WM_WINDOW_TYPE_DOCK"})
	_ = ewmh.WmStateSet(b.X, win.Id, []string{"_NET_WM_STATE_STICKY"})
	_ = ewmh.WmDesktopSet(b.X, win.Id, 0xFFFFFFFF)
	strut := ewmh.WmStrut{}
	if m.TopBar {
		strut.Top = uint(height)
	} else {
		strut.Bottom = uint(height)
	}
	_ = ewmh.WmStrutSet(b.X, win.Id, &strut)
	setOpacity(b.X, win.Id, b.Cfg.Behavior.DefaultOpacity)
	win.Map()
	b.windows[m] = win
	m.BarWin = win.Id
	return win, nil
}

// setOpacity sets _NET_WM_WINDOW_OPACITY the same way internal/xops.Real
// does for managed client windows, so the bar respects the configured
// default opacity too.
func setOpacity(X *xgbutil.XUtil, win xproto.Window, opacity float64) {
	val := uint32(opacity * 0xffffffff)
	_ = xproto.ChangePropertyChecked(
		X.Conn(), xproto.PropModeReplace, win, X.Atm("_NET_WM_WINDOW_OPACITY"),
		xproto.AtomCardinal, 32, 1, []byte{
			byte(val), byte(val >> 8), byte(val >> 16), byte(val >> 24),
		},
	).Check()
}

// ClickArea resolves an x-coordinate click on m's bar window into a click
// context and, for a tag-bar click, the tag mask under the pointer -
// recomputing the same cell boundaries paint lays out, mirroring dwm's
// buttonpress handler which does the same walk over drw_fontset_getwidth.
func (b *Bar) ClickArea(m *model.Monitor, px int) (config.ClickArea, config.Arg) {
	x := 0
	occupied, _ := b.tagState(m)
	for i, name := range b.Cfg.Tags {
		if !occupied[i] && uint32(1<<uint(i)) != m.Tags() {
			continue
		}
		w := font.MeasureString(b.Font, name).Ceil() + 2*tagPadding
		if px < x+w {
			return config.ClkTagBar, config.Arg{Kind: config.ArgUint, Uint: uint(1 << uint(i))}
		}
		x += w
	}

	ltSym := m.LtSymbol
	if m.Lt[m.SelLt].Arrange == nil {
		ltSym = layout.BracketedCount(1, model.ClientCount(m), true)
	}
	ltWidth := font.MeasureString(b.Font, " "+ltSym+" ").Ceil() + 2*tagPadding
	if px < x+ltWidth {
		return config.ClkLtSymbol, config.Arg{}
	}
	x += ltWidth

	if m.Sel != nil {
		return config.ClkWinTitle, config.Arg{}
	}
	return config.ClkRootWin, config.Arg{}
}

// MonitorForWindow reports which monitor win is the bar window for, or
// nil if win isn't a bar window rawm created.
func (b *Bar) MonitorForWindow(win xproto.Window) *model.Monitor {
	for m, w := range b.windows {
		if w.Id == win {
			return m
		}
	}
	return nil
}

func barHeight(f font.Face) int {
	m := f.Metrics()
	return (m.Ascent + m.Descent).Ceil() + 2*padding
}

// paint composes the tag cells, layout symbol, selected title and status
// text into one image and pushes it to m's bar window, mirroring gobar's
// per-window image-then-XPaint draw cycle.
func (b *Bar) paint(w *wm.WM, m *model.Monitor, win *xwindow.Window) {
	width, height := m.Mw, barHeight(b.Font)
	img := xgraphics.New(b.X, image.Rect(0, 0, width, height))
	defer img.Destroy()

	norm := b.Cfg.Colors[config.SchemeNorm]
	img.For(func(x, y int) xgraphics.BGRA { return hexBGRA(norm[2]) })

	x := 0
	occupied, selectedTag := b.tagState(m)
	for i, name := range b.Cfg.Tags {
		if !occupied[i] && uint32(1<<uint(i)) != m.Tags() {
			continue
		}
		scheme := norm
		if i == selectedTag {
			scheme = b.Cfg.Colors[config.SchemeSel]
		}
		x = b.drawCell(img, x, height, name, scheme)
	}

	ltSym := m.LtSymbol
	if m.Lt[m.SelLt].Arrange == nil {
		ltSym = layout.BracketedCount(1, model.ClientCount(m), true)
	}
	x = b.drawCell(img, x, height, " "+ltSym+" ", norm)

	if m.Sel != nil {
		b.drawText(img, x+padding, height, m.Sel.Name, norm)
	}

	b.drawStatus(img, width, height, w.StatusText, norm)

	img.XSurfaceSet(win.Id)
	img.XDraw()
	img.XPaint(win.Id)
}

// tagState reports, for each configured tag index, whether any client on m
// occupies it, plus the single-tag index currently selected (-1 if the
// view shows more than one tag at once).
func (b *Bar) tagState(m *model.Monitor) ([]bool, int) {
	occupied := make([]bool, len(b.Cfg.Tags))
	model.ForEachClient(m, func(c *model.Client) {
		for i := range b.Cfg.Tags {
			if c.Tags&(1<<uint(i)) != 0 {
				occupied[i] = true
			}
		}
	})
	selected := -1
	mask := m.Tags()
	if mask != 0 && mask&(mask-1) == 0 {
		for i := range b.Cfg.Tags {
			if mask == 1<<uint(i) {
				selected = i
				break
			}
		}
	}
	return occupied, selected
}

func (b *Bar) drawCell(img *xgraphics.Image, x, height int, text string, scheme config.Col) int {
	w := font.MeasureString(b.Font, text).Ceil() + 2*tagPadding
	sub := img.SubImage(image.Rect(x, 0, x+w, height)).(*xgraphics.Image)
	sub.For(func(x, y int) xgraphics.BGRA { return hexBGRA(scheme[2]) })
	sub.Text(fixed.P(tagPadding, height/2), hexBGRAPtr(scheme[1]), b.Font, text)
	return x + w
}

func (b *Bar) drawText(img *xgraphics.Image, x, height int, text string, scheme config.Col) {
	img.Text(fixed.P(x, height/2), hexBGRAPtr(scheme[1]), b.Font, text)
}

// drawStatus right-aligns status, honoring color-switch escapes via
// ParseStatusText: each segment's ColorIndex is a config.Scheme value
// indexing directly into Cfg.Colors.
func (b *Bar) drawStatus(img *xgraphics.Image, width, height int, status string, norm config.Col) {
	segs := ParseStatusText(status)
	total := fixed.I(0)
	for _, s := range segs {
		total += font.MeasureString(b.Font, s.Text)
	}
	x := fixed.I(width) - total - fixed.I(padding)
	for _, s := range segs {
		scheme := norm
		if s.ColorIndex >= 0 && s.ColorIndex < len(b.Cfg.Colors) {
			scheme = b.Cfg.Colors[config.Scheme(s.ColorIndex)]
		}
		pt := fixed.Point26_6{X: x, Y: fixed.I(height / 2)}
		np := img.Text(pt, hexBGRAPtr(scheme[1]), b.Font, s.Text)
		x = np.X
	}
}

func hexBGRA(hex string) xgraphics.BGRA {
	return *hexBGRAPtr(hex)
}

func hexBGRAPtr(hex string) *xgraphics.BGRA {
	r, g, bl := hexToRGB(hex)
	return &xgraphics.BGRA{B: bl, G: g, R: r, A: 0xff}
}

func hexToRGB(hex string) (r, g, b uint8) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0xbb, 0xbb, 0xbb
	}
	parse := func(s string) uint8 {
		var v int
		for _, c := range s {
			v *= 16
			switch {
			case c >= '0' && c <= '9':
				v += int(c - '0')
			case c >= 'a' && c <= 'f':
				v += int(c-'a') + 10
			case c >= 'A' && c <= 'F':
				v += int(c-'A') + 10
			}
		}
		return uint8(v)
	}
	return parse(hex[1:3]), parse(hex[3:5]), parse(hex[5:7])
}
