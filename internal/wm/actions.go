package wm

import "github.com/rawmkit/rawm/internal/config"

// ActionTable builds the name->KeyAction bindings that config.Key.Action /
// config.Button.Action are resolved against. Every configured key/button
// action string must have an entry here, or Dispatch silently ignores it.
func (wm *WM) ActionTable() map[string]config.KeyAction {
	return map[string]config.KeyAction{
		"spawn":            func(a config.Arg) { wm.Spawn(a.Argv) },
		"focusstack_next":  func(config.Arg) { wm.FocusStack(1) },
		"focusstack_prev":  func(config.Arg) { wm.FocusStack(-1) },
		"focusnstack":      func(a config.Arg) { wm.FocusNStack(a.Int) },
		"incnmaster":       func(a config.Arg) { wm.IncNMaster(a.Int) },
		"setmfact":         func(a config.Arg) { wm.SetMFact(wm.SelMon, a.Float) },
		"zoom":             func(config.Arg) { wm.Zoom() },
		"view":             func(a config.Arg) { wm.View(wm.SelMon, uint32(a.Uint)) },
		"toggleview":       func(a config.Arg) { wm.ToggleView(wm.SelMon, uint32(a.Uint)) },
		"tag":              func(a config.Arg) { wm.Tag(wm.selClient(), uint32(a.Uint)) },
		"toggletag":        func(a config.Arg) { wm.ToggleTag(wm.selClient(), uint32(a.Uint)) },
		"setlayout":        func(a config.Arg) { wm.SetLayout(wm.SelMon, a.Layout) },
		"togglefloating":   func(config.Arg) { wm.ToggleFloating() },
		"togglefullscreen": func(config.Arg) { wm.ToggleFullscreen(wm.selClient()) },
		"togglebar":        func(config.Arg) { wm.ToggleBar() },
		"killclient":       func(config.Arg) { wm.Kill(wm.selClient()) },
		"focusmon":         func(a config.Arg) { wm.FocusMon(a.Int) },
		"tagmon":           func(a config.Arg) { wm.TagMon(a.Int) },
		"movemouse":        func(config.Arg) { wm.MoveMouse(wm.selClient()) },
		"resizemouse":      func(config.Arg) { wm.ResizeMouse(wm.selClient()) },
		"quit":             func(config.Arg) { wm.Quit() },
		"restart":          func(config.Arg) { wm.RequestRestart() },
		"nametag":          func(config.Arg) { wm.RenameTag() },
	}
}

// Dispatch resolves action by name in the table built from ActionTable and
// invokes it with arg, doing nothing for an unknown action name.
func (wm *WM) Dispatch(action string, arg config.Arg) {
	if fn, ok := wm.ActionTable()[action]; ok {
		fn(arg)
	}
}
