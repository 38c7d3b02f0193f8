package model

import "github.com/jezek/xgb/xproto"

// Layout pairs a short status-bar symbol with an arrangement function.
// A nil Arrange means floating: clients keep whatever geometry they have.
type Layout struct {
	Symbol  string
	Arrange func(*Monitor)
}

// Pertag remembers, for each tag index (0 is the "all tags" pseudo-view,
// 1..TAGS are individual tags), the view-local layout settings.
type Pertag struct {
	CurTag, PrevTag int

	NMasters  []int
	MFacts    []float64
	SelLts    []int
	Lts       [][2]*Layout
	ShowBars  []bool
}

// NewPertag allocates a Pertag sized for tags 0..ntags inclusive.
func NewPertag(ntags int, nmaster int, mfact float64, lt0, lt1 *Layout, showbar bool) *Pertag {
	n := ntags + 1
	pt := &Pertag{
		NMasters: make([]int, n),
		MFacts:   make([]float64, n),
		SelLts:   make([]int, n),
		Lts:      make([][2]*Layout, n),
		ShowBars: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		pt.NMasters[i] = nmaster
		pt.MFacts[i] = mfact
		pt.Lts[i] = [2]*Layout{lt0, lt1}
		pt.ShowBars[i] = showbar
	}
	return pt
}

// Monitor is a display region: an Xinerama head, or the whole screen when
// Xinerama is unavailable.
type Monitor struct {
	Num int

	Mx, My, Mw, Mh int // outer geometry
	Wx, Wy, Ww, Wh int // work area (outer minus bar)

	ShowBar bool
	TopBar  bool
	By      int
	BarWin  xproto.Window

	LtSymbol string
	Lt       [2]*Layout
	SelLt    int

	TagSet  [2]uint32
	SelTags int

	MFact   float64
	NMaster int

	Clients *Client // creation-ordered list, head pointer
	Stack   *Client // focus-history list, head pointer
	Sel     *Client

	Pertag *Pertag

	Next *Monitor
}

// Tags returns the monitor's currently displayed tag mask.
func (m *Monitor) Tags() uint32 { return m.TagSet[m.SelTags] }

// Attach inserts c at the head of the monitor's creation-ordered list.
func Attach(m *Monitor, c *Client) {
	c.Next = m.Clients
	m.Clients = c
	c.Mon = m
}

// Detach removes c from the monitor's creation-ordered list.
func Detach(m *Monitor, c *Client) {
	pp := &m.Clients
	for *pp != nil && *pp != c {
		pp = &(*pp).Next
	}
	if *pp == c {
		*pp = c.Next
	}
	c.Next = nil
}

// AttachStack inserts c at the head of the monitor's focus-history stack.
func AttachStack(m *Monitor, c *Client) {
	c.SNext = m.Stack
	m.Stack = c
}

// DetachStack removes c from the monitor's focus-history stack. If c was
// selected, reselects the topmost visible client remaining in the stack.
func DetachStack(m *Monitor, c *Client) {
	pp := &m.Stack
	for *pp != nil && *pp != c {
		pp = &(*pp).SNext
	}
	if *pp == c {
		*pp = c.SNext
	}
	c.SNext = nil

	if c == m.Sel {
		var t *Client
		for t = m.Stack; t != nil && !t.IsVisible(); t = t.SNext {
		}
		m.Sel = t
	}
}

// NextTiled walks forward from c returning the next tiled-and-visible
// client, skipping floating and not-visible clients. Passing a monitor's
// Clients head iterates all tiled clients in creation order.
func NextTiled(c *Client) *Client {
	for c != nil && (c.IsFloating || !c.IsVisible()) {
		c = c.Next
	}
	return c
}

// VisibleClients returns tiled-and-visible clients on m in creation order.
func VisibleClients(m *Monitor) []*Client {
	var out []*Client
	for c := NextTiled(m.Clients); c != nil; c = NextTiled(c.Next) {
		out = append(out, c)
	}
	return out
}

// ForEachClient calls fn for every client on m's creation-ordered list.
func ForEachClient(m *Monitor, fn func(*Client)) {
	for c := m.Clients; c != nil; c = c.Next {
		fn(c)
	}
}

// ClientCount returns the number of clients currently owned by m.
func ClientCount(m *Monitor) int {
	n := 0
	ForEachClient(m, func(*Client) { n++ })
	return n
}
