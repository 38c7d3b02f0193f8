package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/rawmkit/rawm/internal/config"
	"github.com/rawmkit/rawm/internal/model"
	"github.com/rawmkit/rawm/internal/xops"
)

// modifierCombos are the masks a regular modifier combo must also be
// grabbed under, so a key still fires with Num Lock and/or Caps Lock
// toggled on. Mirrors the standard "grab every lock-key combination"
// dance every X11 WM does since locks are regular modifier bits.
func (wm *WM) modifierCombos() []uint16 {
	return []uint16{
		0,
		xproto.ModMaskLock,
		wm.NumlockMask,
		wm.NumlockMask | xproto.ModMaskLock,
	}
}

// grabKeys (re)grabs every configured key binding on the root window.
// Called once from Setup and again on MappingNotify.
func (wm *WM) grabKeys() error {
	_ = wm.Ops.UngrabKeys()
	for _, k := range wm.Cfg.Keys {
		keycode, err := wm.Ops.KeysymToKeycode(k.Keysym)
		if err != nil {
			continue // unbound keysym on this keymap: nothing to grab
		}
		for _, lock := range wm.modifierCombos() {
			if err := wm.Ops.GrabKey(k.Mod|lock, keycode); err != nil {
				return err
			}
		}
	}
	return nil
}

// grabButtons (re)grabs c's button bindings: every ClkClientWin binding
// with AnyButton/AnyModifier when c is not focused, so the first click
// both focuses and activates the window; only the configured specific
// bindings (plus their lock-key variants) when it is focused, so other
// buttons pass through untouched.
func (wm *WM) grabButtons(c *model.Client, focused bool) {
	_ = wm.Ops.UngrabButtons(c.Win)
	if !focused {
		_ = wm.Ops.GrabButtonsUnfocused(c.Win)
		return
	}
	var specs []xops.ButtonSpec
	for _, b := range wm.Cfg.Buttons {
		if b.Click != config.ClkClientWin {
			continue
		}
		for _, lock := range wm.modifierCombos() {
			specs = append(specs, xops.ButtonSpec{Button: b.Button, Mod: b.Mod | lock})
		}
	}
	_ = wm.Ops.GrabButtonsFocused(c.Win, specs)
}
