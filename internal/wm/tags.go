package wm

import (
	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/model"
)

// tagToIndex returns the pertag index (1-based) of the lowest set bit in
// mask, or 0 ("all tags") if mask is 0 or has more than one bit set.
func tagToIndex(mask uint32) int {
	if mask == 0 {
		return 0
	}
	for i := 0; i < 32; i++ {
		if mask&(1<<uint(i)) != 0 {
			if mask&(mask-1) != 0 {
				return 0 // more than one bit: stays in the "all tags" view
			}
			return i + 1
		}
	}
	return 0
}

// loadPertag copies the view-local settings for m.Pertag.CurTag into the
// monitor's live fields.
func loadPertag(m *model.Monitor) {
	pt := m.Pertag
	i := pt.CurTag
	m.NMaster = pt.NMasters[i]
	m.MFact = pt.MFacts[i]
	m.SelLt = pt.SelLts[i]
	m.Lt = pt.Lts[i]
	m.ShowBar = pt.ShowBars[i]
	if m.Lt[m.SelLt] != nil {
		m.LtSymbol = m.Lt[m.SelLt].Symbol
	}
}

func storePertag(m *model.Monitor) {
	pt := m.Pertag
	i := pt.CurTag
	pt.NMasters[i] = m.NMaster
	pt.MFacts[i] = m.MFact
	pt.SelLts[i] = m.SelLt
	pt.Lts[i] = m.Lt
	pt.ShowBars[i] = m.ShowBar
}

// View switches m's displayed tagset to mask, or swaps with the previous
// tagset when mask == 0.
func (wm *WM) View(m *model.Monitor, mask uint32) {
	if mask == m.TagSet[m.SelTags] {
		return
	}
	m.SelTags ^= 1
	if mask != 0 {
		m.TagSet[m.SelTags] = mask
		m.Pertag.PrevTag = m.Pertag.CurTag
		m.Pertag.CurTag = tagToIndex(mask)
	} else {
		m.Pertag.PrevTag, m.Pertag.CurTag = m.Pertag.CurTag, m.Pertag.PrevTag
	}
	loadPertag(m)
	wm.Focus(nil)
	wm.Arrange(m)
}

// ToggleView XORs mask into m's displayed tagset.
func (wm *WM) ToggleView(m *model.Monitor, mask uint32) {
	newMask := m.TagSet[m.SelTags] ^ mask
	if newMask == 0 {
		return
	}
	m.TagSet[m.SelTags] = newMask
	m.Pertag.CurTag = tagToIndex(newMask)
	loadPertag(m)
	wm.Focus(nil)
	wm.Arrange(m)
}

// Tag retags c to mask (masked to the configured tag range); a resulting
// empty mask is refused.
func (wm *WM) Tag(c *model.Client, mask uint32) {
	if c == nil || mask&config.TagMask == 0 {
		return
	}
	c.Tags = mask & config.TagMask
	wm.Focus(nil)
	wm.Arrange(c.Mon)
}

// ToggleTag XORs mask into c's tags; refused if the result would be empty.
func (wm *WM) ToggleTag(c *model.Client, mask uint32) {
	if c == nil {
		return
	}
	newTags := c.Tags ^ (mask & config.TagMask)
	if newTags == 0 {
		return
	}
	c.Tags = newTags
	wm.Focus(nil)
	wm.Arrange(c.Mon)
}

// SetLayout selects lt as m's current layout. A nil lt, or one identical to
// the current layout, flips the current/previous layout pair instead.
func (wm *WM) SetLayout(m *model.Monitor, lt *model.Layout) {
	if lt == nil || lt == m.Lt[m.SelLt] {
		m.SelLt ^= 1
	} else {
		m.Lt[m.SelLt] = lt
	}
	if m.Lt[m.SelLt] != nil {
		m.LtSymbol = m.Lt[m.SelLt].Symbol
	}
	storePertag(m)
	wm.Arrange(m)
}

// SetMFact adjusts m's master factor. |f| < 1.0 is a delta added to the
// current value; f > 1.0 is interpreted as (f - 1.0) absolute. Values
// that would push mfact outside [0.1, 0.9] are silently refused.
func (wm *WM) SetMFact(m *model.Monitor, f float64) {
	var target float64
	if f < 1.0 {
		target = f + m.MFact
	} else {
		target = f - 1.0
	}
	if target < 0.1 || target > 0.9 {
		return
	}
	m.MFact = target
	storePertag(m)
	wm.Arrange(m)
}
