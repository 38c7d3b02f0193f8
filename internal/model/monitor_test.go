package model

import "testing"

func TestAttachDetachPreservesListInvariant(t *testing.T) {
	mon := &Monitor{}
	a := &Client{Win: 1}
	b := &Client{Win: 2}
	c := &Client{Win: 3}

	Attach(mon, a)
	Attach(mon, b)
	Attach(mon, c)
	AttachStack(mon, a)
	AttachStack(mon, b)
	AttachStack(mon, c)

	count := func(head *Client) int {
		n := 0
		for p := head; p != nil; p = p.Next {
			n++
		}
		return n
	}
	if count(mon.Clients) != 3 {
		t.Fatalf("expected 3 clients, got %d", count(mon.Clients))
	}

	Detach(mon, b)
	if count(mon.Clients) != 2 {
		t.Fatalf("expected 2 clients after detach, got %d", count(mon.Clients))
	}
	for p := mon.Clients; p != nil; p = p.Next {
		if p == b {
			t.Fatal("detached client still present in clients list")
		}
	}
}

func TestDetachStackReselectsTopmostVisible(t *testing.T) {
	mon := &Monitor{}
	mon.TagSet[0] = 1
	a := &Client{Win: 1, Tags: 1, Mon: mon}
	b := &Client{Win: 2, Tags: 1, Mon: mon}
	Attach(mon, a)
	Attach(mon, b)
	AttachStack(mon, b)
	AttachStack(mon, a)
	mon.Sel = a

	DetachStack(mon, a)
	if mon.Sel != b {
		t.Fatalf("expected reselect of b, got %v", mon.Sel)
	}
}

func TestNextTiledSkipsFloatingAndHidden(t *testing.T) {
	mon := &Monitor{}
	mon.TagSet[0] = 1
	floating := &Client{Win: 1, Tags: 1, IsFloating: true, Mon: mon}
	hidden := &Client{Win: 2, Tags: 2, Mon: mon}
	tiled := &Client{Win: 3, Tags: 1, Mon: mon}
	Attach(mon, tiled)
	Attach(mon, hidden)
	Attach(mon, floating)

	vis := VisibleClients(mon)
	if len(vis) != 1 || vis[0] != tiled {
		t.Fatalf("expected only tiled client visible, got %v", vis)
	}
}

func TestRuleApplyAdditive(t *testing.T) {
	rules := []Rule{
		{Class: "Firefox", Tags: 1 << 0, Monitor: 0},
		{Instance: "dialog", IsFloating: true, IsCentered: true, Monitor: -1},
	}
	tags, floating, centered, mon := ApplyRules(rules, "Firefox", "dialog", "", "")
	if tags != 1 || !floating || !centered || mon != 0 {
		t.Fatalf("unexpected rule result: tags=%d floating=%v centered=%v mon=%d", tags, floating, centered, mon)
	}
}

func TestRuleApplyNoMatchLeavesMonitorUnset(t *testing.T) {
	rules := []Rule{{Class: "Firefox", Tags: 1, Monitor: 0}}
	_, _, _, mon := ApplyRules(rules, "Xterm", "xterm", "", "")
	if mon != -1 {
		t.Fatalf("expected -1 monitor for non-matching client, got %d", mon)
	}
}
