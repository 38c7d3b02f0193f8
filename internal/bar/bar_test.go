package bar

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/xwindow"
	"golang.org/x/image/font/inconsolata"

	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/model"
)

func newTestBar() *Bar {
	return &Bar{
		Cfg:     config.Default(),
		Font:    inconsolata.Regular8x16,
		windows: map[*model.Monitor]*xwindow.Window{},
	}
}

func newTestMonitor() *model.Monitor {
	m := &model.Monitor{Mw: 1920, Mh: 1080}
	m.TagSet[0] = 1
	m.SelTags = 0
	m.Lt = [2]*model.Layout{{Symbol: "[]="}, {Symbol: "><>"}}
	m.LtSymbol = m.Lt[0].Symbol
	return m
}

func TestHexToRGBParsesValidHex(t *testing.T) {
	r, g, b := hexToRGB("#1a2b3c")
	if r != 0x1a || g != 0x2b || b != 0x3c {
		t.Fatalf("expected (1a,2b,3c), got (%02x,%02x,%02x)", r, g, b)
	}
}

func TestHexToRGBFallsBackOnMalformedInput(t *testing.T) {
	r, g, b := hexToRGB("not-a-color")
	if r != 0xbb || g != 0xbb || b != 0xbb {
		t.Fatalf("expected fallback gray, got (%02x,%02x,%02x)", r, g, b)
	}
}

func TestTagStateReportsOccupiedAndSelected(t *testing.T) {
	b := newTestBar()
	m := newTestMonitor()
	c := &model.Client{Tags: 1 << 2}
	model.Attach(m, c)

	occupied, selected := b.tagState(m)
	if !occupied[2] {
		t.Fatal("expected tag 2 reported occupied")
	}
	if occupied[0] {
		t.Fatal("expected tag 0 reported unoccupied")
	}
	if selected != 0 {
		t.Fatalf("expected tag 0 selected (single-bit TagSet), got %d", selected)
	}
}

func TestTagStateSelectedIsMinusOneForMultiTagView(t *testing.T) {
	b := newTestBar()
	m := newTestMonitor()
	m.TagSet[0] = 1<<0 | 1<<1

	_, selected := b.tagState(m)
	if selected != -1 {
		t.Fatalf("expected -1 for a multi-tag view, got %d", selected)
	}
}

// ClickArea's cell boundaries must match what paint would actually draw:
// a click inside the selected tag-0 cell resolves to that tag's mask.
func TestClickAreaResolvesTagCell(t *testing.T) {
	b := newTestBar()
	m := newTestMonitor()

	click, arg := b.ClickArea(m, 2)
	if click != config.ClkTagBar {
		t.Fatalf("expected ClkTagBar, got %v", click)
	}
	if arg.Uint != 1<<0 {
		t.Fatalf("expected tag mask %x, got %x", 1, arg.Uint)
	}
}

func TestClickAreaResolvesRootWinPastEverything(t *testing.T) {
	b := newTestBar()
	m := newTestMonitor()

	click, _ := b.ClickArea(m, m.Mw-1)
	if click != config.ClkRootWin {
		t.Fatalf("expected a click past every cell with no selected client to resolve to ClkRootWin, got %v", click)
	}
}

func TestClickAreaResolvesWinTitleWhenClientSelected(t *testing.T) {
	b := newTestBar()
	m := newTestMonitor()
	c := &model.Client{Tags: 1}
	model.Attach(m, c)
	m.Sel = c

	click, _ := b.ClickArea(m, m.Mw-1)
	if click != config.ClkWinTitle {
		t.Fatalf("expected ClkWinTitle when a client is selected, got %v", click)
	}
}

func TestMonitorForWindowFindsRegisteredWindow(t *testing.T) {
	b := newTestBar()
	m := newTestMonitor()
	b.windows[m] = &xwindow.Window{Id: xproto.Window(42)}

	if got := b.MonitorForWindow(42); got != m {
		t.Fatal("expected MonitorForWindow to find the registered monitor")
	}
	if got := b.MonitorForWindow(99); got != nil {
		t.Fatal("expected MonitorForWindow to return nil for an unknown window")
	}
}
