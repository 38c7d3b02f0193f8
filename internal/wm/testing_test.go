package wm

import (
	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/xops"
)

// newTestWM builds a WM over a fresh Fake, past Setup, with a single
// 1920x1080 monitor -- the shape every test in this package starts from.
func newTestWM(cfg config.Config) (*WM, *xops.Fake) {
	fake := xops.NewFake()
	w := New(fake, cfg, nil)
	if err := w.Setup(); err != nil {
		panic(err)
	}
	return w, fake
}
