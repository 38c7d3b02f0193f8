package wm

import (
	"testing"

	"github.com/rawmkit/rawm/internal/config"
)

// Law: view(X) then view(0) restores the tagset view had before X.
func TestViewThenViewZeroRestoresTagset(t *testing.T) {
	w, _ := newTestWM(config.Default())
	m := w.SelMon
	original := m.Tags()

	w.View(m, 1<<1)
	if m.Tags() == original {
		t.Fatal("expected view to switch away from the original tagset")
	}

	w.View(m, 0)
	if m.Tags() != original {
		t.Fatalf("expected view(0) to restore the original tagset %x, got %x", original, m.Tags())
	}
}

func TestViewSameMaskIsNoop(t *testing.T) {
	w, _ := newTestWM(config.Default())
	m := w.SelMon
	before := m.SelTags
	w.View(m, m.Tags())
	if m.SelTags != before {
		t.Fatal("expected view with the already-displayed mask to be a no-op")
	}
}

func TestToggleViewTwiceIsIdentity(t *testing.T) {
	w, _ := newTestWM(config.Default())
	m := w.SelMon
	original := m.Tags()

	w.ToggleView(m, 1<<2)
	w.ToggleView(m, 1<<2)
	if m.Tags() != original {
		t.Fatalf("expected two ToggleView calls with the same mask to cancel out, got %x want %x", m.Tags(), original)
	}
}

func TestToggleViewRefusesEmptyResult(t *testing.T) {
	w, _ := newTestWM(config.Default())
	m := w.SelMon
	original := m.Tags()
	w.ToggleView(m, original) // would clear every displayed tag
	if m.Tags() != original {
		t.Fatal("expected ToggleView to refuse a result that hides every tag")
	}
}

// Law: toggletag/toggletag with the same mask is an identity on Tags.
func TestToggleTagTwiceIsIdentity(t *testing.T) {
	w, _ := newTestWM(config.Default())
	c := w.Manage(100, 0, 0, 100, 100)
	original := c.Tags

	w.ToggleTag(c, 1<<3)
	w.ToggleTag(c, 1<<3)
	if c.Tags != original {
		t.Fatalf("expected two ToggleTag calls with the same mask to cancel out, got %x want %x", c.Tags, original)
	}
}

func TestToggleTagRefusesEmptyResult(t *testing.T) {
	w, _ := newTestWM(config.Default())
	c := w.Manage(100, 0, 0, 100, 100)
	original := c.Tags
	w.ToggleTag(c, original) // would untag the client entirely
	if c.Tags != original {
		t.Fatal("expected ToggleTag to refuse emptying a client's tags")
	}
}

func TestTagMasksToConfiguredRange(t *testing.T) {
	w, _ := newTestWM(config.Default())
	c := w.Manage(100, 0, 0, 100, 100)
	w.Tag(c, 1<<2|1<<31) // bit 31 is outside the configured tag range
	if c.Tags != 1<<2 {
		t.Fatalf("expected out-of-range bits masked off, got %x", c.Tags)
	}
}

func TestTagRefusesEmptyMask(t *testing.T) {
	w, _ := newTestWM(config.Default())
	c := w.Manage(100, 0, 0, 100, 100)
	original := c.Tags
	w.Tag(c, 0)
	if c.Tags != original {
		t.Fatal("expected Tag(0) to be refused")
	}
}

// Law: setlayout applied twice with the same layout leaves the displayed
// layout unchanged even though it flips the internal previous/current slot.
func TestSetLayoutTwiceSameLayoutIsIdempotent(t *testing.T) {
	w, _ := newTestWM(config.Default())
	m := w.SelMon
	layoutA := &w.Cfg.Layouts[0]

	w.SetLayout(m, layoutA)
	w.SetLayout(m, layoutA)
	if m.Lt[m.SelLt] != layoutA {
		t.Fatal("expected the displayed layout to still be layoutA after two idempotent applies")
	}
	if m.LtSymbol != layoutA.Symbol {
		t.Fatalf("expected layout symbol %q, got %q", layoutA.Symbol, m.LtSymbol)
	}
}

func TestSetLayoutNilTogglesPreviousLayout(t *testing.T) {
	w, _ := newTestWM(config.Default())
	m := w.SelMon
	layoutA := m.Lt[m.SelLt]

	w.SetLayout(m, nil)
	if m.Lt[m.SelLt] == layoutA {
		t.Fatal("expected SetLayout(nil) to flip to the other layout slot")
	}
	w.SetLayout(m, nil)
	if m.Lt[m.SelLt] != layoutA {
		t.Fatal("expected a second SetLayout(nil) to flip back")
	}
}
