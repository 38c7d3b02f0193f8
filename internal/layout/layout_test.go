package layout

import (
	"testing"

	"github.com/rawmkit/rawm/internal/model"
)

func newTiledMonitor(n int) (*model.Monitor, []*model.Client) {
	SetBorderWidth(0)
	SetResizeHints(false)
	m := &model.Monitor{Wx: 0, Wy: 0, Ww: 1000, Wh: 600, MFact: 0.5, NMaster: 1}
	m.TagSet[0] = 1
	clients := make([]*model.Client, n)
	for i := n - 1; i >= 0; i-- {
		c := &model.Client{Tags: 1, Mon: m}
		model.Attach(m, c)
		clients[i] = c
	}
	return m, clients
}

func TestTileThreeClientsMatchesSpecScenario(t *testing.T) {
	m, clients := newTiledMonitor(3)
	Tile(m)

	c1, c2, c3 := clients[0], clients[1], clients[2]
	check := func(label string, c *model.Client, x, y, w, h int) {
		if c.X != x || c.Y != y || c.W != w || c.H != h {
			t.Errorf("%s: got (%d,%d,%d,%d), want (%d,%d,%d,%d)", label, c.X, c.Y, c.W, c.H, x, y, w, h)
		}
	}
	check("client1", c1, 0, 0, 500, 600)
	check("client2", c2, 500, 0, 500, 300)
	check("client3", c3, 500, 300, 500, 300)
}

func TestTileSingleClientHasZeroBorder(t *testing.T) {
	m, clients := newTiledMonitor(1)
	SetBorderWidth(2)
	Tile(m)
	if clients[0].BorderWidth != 0 {
		t.Fatalf("expected single tiled client to have zero border, got %d", clients[0].BorderWidth)
	}
	SetBorderWidth(1)
}

func TestGaplessGridFiveClientsIsTwoColumns(t *testing.T) {
	m, clients := newTiledMonitor(5)
	GaplessGrid(m)

	col0, col1 := 0, 0
	for _, c := range clients {
		if c.X == m.Wx {
			col0++
		} else {
			col1++
		}
	}
	if col0 != 2 || col1 != 3 {
		t.Fatalf("expected 2/3 split across 2 columns (last column absorbs the remainder), got %d/%d", col0, col1)
	}
}

func TestMonocleZerosBorderAndFillsWorkArea(t *testing.T) {
	m, clients := newTiledMonitor(2)
	SetBorderWidth(2)
	m.Sel = clients[1]
	Monocle(m)
	for _, c := range clients {
		if c.BorderWidth != 0 {
			t.Fatalf("expected zero border in monocle, got %d", c.BorderWidth)
		}
		if c.X != m.Wx || c.Y != m.Wy || c.W != m.Ww || c.H != m.Wh {
			t.Fatalf("expected full work area, got (%d,%d,%d,%d)", c.X, c.Y, c.W, c.H)
		}
	}
	if m.LtSymbol != "[2/2]" {
		t.Fatalf("expected selected-index symbol [2/2], got %q", m.LtSymbol)
	}
	SetBorderWidth(1)
}

func TestBracketedCountFloatingUsesAngleBrackets(t *testing.T) {
	if got := BracketedCount(1, 3, true); got != "<1/3>" {
		t.Fatalf("got %q", got)
	}
	if got := BracketedCount(1, 3, false); got != "[1/3]" {
		t.Fatalf("got %q", got)
	}
}
