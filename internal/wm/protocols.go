package wm

import (
	"github.com/rawmkit/rawm/internal/model"
	"github.com/rawmkit/rawm/internal/xops"
)

// SetFullscreen toggles c's fullscreen state: fullscreen implies floating,
// zero border, and full monitor geometry; leaving it restores the
// pre-fullscreen geometry and floating state.
func (wm *WM) SetFullscreen(c *model.Client, fullscreen bool) {
	if fullscreen == c.IsFullscreen {
		return
	}
	_ = wm.Ops.SetFullscreenState(c.Win, fullscreen)
	c.IsFullscreen = fullscreen
	if fullscreen {
		c.OldState = c.IsFloating
		c.SaveGeometry()
		c.IsFloating = true
		wm.placeFullscreen(c)
		_ = wm.Ops.RaiseWindow(c.Win)
	} else {
		c.RestoreGeometry()
		c.IsFloating = c.OldState
	}
	_ = wm.Ops.MoveResizeWindow(c.Win, c.X, c.Y, c.W, c.H)
	_ = wm.Ops.SetBorderWidth(c.Win, c.BorderWidth)
	wm.Arrange(c.Mon)
}

// ToggleFullscreen flips c's fullscreen state.
func (wm *WM) ToggleFullscreen(c *model.Client) {
	if c == nil {
		return
	}
	wm.SetFullscreen(c, !c.IsFullscreen)
}

// HandleWMStateRequest implements the _NET_WM_STATE ClientMessage protocol.
// Only _NET_WM_STATE_FULLSCREEN is acted on.
func (wm *WM) HandleWMStateRequest(c *model.Client, action xops.StateAction, prop string) {
	if c == nil || prop != "_NET_WM_STATE_FULLSCREEN" {
		return
	}
	switch action {
	case xops.StateAdd:
		wm.SetFullscreen(c, true)
	case xops.StateRemove:
		wm.SetFullscreen(c, false)
	case xops.StateToggle:
		wm.ToggleFullscreen(c)
	}
}

// HandleActiveWindowRequest implements the _NET_ACTIVE_WINDOW ClientMessage:
// switch to c's monitor, showing c's tags if they aren't already visible,
// then pop c to the front of its monitor and focus it.
func (wm *WM) HandleActiveWindowRequest(c *model.Client) {
	if c == nil || wm.SelMon == nil || c == wm.SelMon.Sel {
		return
	}
	m := c.Mon
	if !c.IsVisible() {
		m.SelTags ^= 1
		m.TagSet[m.SelTags] = c.Tags
		m.Pertag.PrevTag = m.Pertag.CurTag
		m.Pertag.CurTag = tagToIndex(c.Tags)
		loadPertag(m)
	}
	wm.SelMon = m
	wm.pop(c)
}

// pop moves c to the head of its monitor's creation-ordered list, then
// focuses and arranges it, matching dwm's zoom-to-top-of-stack idiom.
func (wm *WM) pop(c *model.Client) {
	m := c.Mon
	model.Detach(m, c)
	c.Next = m.Clients
	m.Clients = c
	c.Mon = m
	wm.Focus(c)
	wm.Arrange(m)
}

// Kill sends exactly one WM_DELETE_WINDOW ClientMessage if c advertises
// support for it via WM_PROTOCOLS, otherwise forcibly terminates its X
// connection.
func (wm *WM) Kill(c *model.Client) {
	if c == nil {
		return
	}
	protocols, _ := wm.Ops.GetWMProtocols(c.Win)
	if containsProtocol(protocols, "WM_DELETE_WINDOW") {
		_ = wm.Ops.SendDeleteWindow(c.Win)
		return
	}
	_ = wm.Ops.GrabServer()
	_ = wm.Ops.KillClientConnection(c.Win)
	_ = wm.Ops.UngrabServer()
}
