// Package model holds the client/monitor/pertag data that the layout and
// focus engines operate on. It is deliberately free of any X11 import so
// that arrangement and focus logic can be exercised without a display.
package model

import "github.com/jezek/xgb/xproto"

// MaxTitle bounds a client's cached title, mirroring the fixed-size title
// buffer of the system this engine is modeled on.
const MaxTitle = 256

// SizeHints is the expanded ICCCM WM_NORMAL_HINTS data cached on a client.
type SizeHints struct {
	BaseW, BaseH int
	MinW, MinH   int
	MaxW, MaxH   int
	IncW, IncH   int
	MinA, MaxA   float64 // aspect ratios, 0 means unset
}

// Client is a managed top-level window.
type Client struct {
	Win xproto.Window

	Name string

	X, Y, W, H             int
	OldX, OldY, OldW, OldH int

	BorderWidth    int
	OldBorderWidth int

	Hints SizeHints

	IsFixed      bool
	IsFloating   bool
	IsCentered   bool
	IsUrgent     bool
	NeverFocus   bool
	IsFullscreen bool
	OldState     bool // isfloating saved across fullscreen toggle
	NoDecor      bool // _MOTIF_WM_HINTS requests a borderless frame

	Tags uint32

	Mon *Monitor

	Next  *Client // creation-ordered list on the owning monitor
	SNext *Client // focus-history stack on the owning monitor
}

// IsVisible reports whether the client is shown under its monitor's
// currently selected tagset.
func (c *Client) IsVisible() bool {
	if c == nil || c.Mon == nil {
		return false
	}
	return c.Tags&c.Mon.TagSet[c.Mon.SelTags] != 0
}

// Width/Height including the current border, as used for geometry math
// against the work area.
func (c *Client) BorderedW() int { return c.W + 2*c.BorderWidth }
func (c *Client) BorderedH() int { return c.H + 2*c.BorderWidth }

// SaveGeometry snapshots the current geometry/border for later restore,
// e.g. before entering fullscreen.
func (c *Client) SaveGeometry() {
	c.OldX, c.OldY, c.OldW, c.OldH = c.X, c.Y, c.W, c.H
	c.OldBorderWidth = c.BorderWidth
}

// RestoreGeometry undoes SaveGeometry.
func (c *Client) RestoreGeometry() {
	c.X, c.Y, c.W, c.H = c.OldX, c.OldY, c.OldW, c.OldH
	c.BorderWidth = c.OldBorderWidth
}
