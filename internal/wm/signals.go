package wm

import (
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
)

// Spawn starts argv in a new session (Setsid) without blocking, and reaps
// it from a background cmd.Wait goroutine. A nil/empty argv is a no-op.
func (wm *WM) Spawn(argv []string) {
	if len(argv) == 0 {
		return
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		wm.Log.WithError(err).WithField("argv", argv).Warn("spawn failed")
		return
	}
	go func() { _ = cmd.Wait() }()
}

// RenameTag prompts for a new name for the selected monitor's current
// single-tag view via dmenu, blocking the event loop until the picker
// exits, and applies the result if non-empty and exactly one tag is
// selected. Unlike Spawn, this needs the child's stdout, so it runs its
// own synchronous exec.Command(...).Output() rather than Spawn's
// detached process reaped in the background.
func (wm *WM) RenameTag() {
	m := wm.SelMon
	if m == nil {
		return
	}
	idx := tagToIndex(m.Tags())
	if idx == 0 {
		return
	}
	out, err := exec.Command("dmenu", "-p", "rename tag:").Output()
	if err != nil {
		wm.Log.WithError(err).Warn("nametag: dmenu failed")
		return
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return
	}
	wm.Cfg.Tags[idx-1] = name
	wm.DrawBars()
}

// WatchSignals installs handlers for SIGTERM/SIGINT (clean shutdown),
// SIGHUP (restart) and SIGCHLD (reap spawned children). The handling
// goroutine calls Quit, RequestRestart or reapChildren itself; the returned
// channel only carries a wake-up after each signal.
func (wm *WM) WatchSignals() <-chan struct{} {
	sig := make(chan os.Signal, 8)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP, syscall.SIGCHLD)

	wake := make(chan struct{}, 1)
	go func() {
		for s := range sig {
			switch s {
			case syscall.SIGCHLD:
				reapChildren()
			case syscall.SIGHUP:
				wm.RequestRestart()
			case syscall.SIGTERM, syscall.SIGINT:
				wm.Quit()
			}
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}()
	return wake
}

// reapChildren collects every exited child without blocking, preventing
// spawned programs from piling up as zombies.
func reapChildren() {
	for {
		pid, err := syscall.Wait4(-1, nil, syscall.WNOHANG, nil)
		if err != nil || pid <= 0 {
			return
		}
	}
}

// Reexec replaces the current process image with argv0 (the WM's own
// binary) and its original arguments, used after Cleanup on a SIGHUP
// restart so configuration/code changes take effect without dropping the
// X session.
func Reexec(argv0 string, argv []string, env []string) error {
	return syscall.Exec(argv0, argv, env)
}
