package main

import (
	"testing"

	"golang.org/x/time/rate"
)

func TestUserCommandMute(t *testing.T) {
	restore := settingsTestDir(t)
	defer restore()
	gs = gsdef

	handleUserCommand("/mute")
	if !gs.Mute {
		t.Fatalf("first /mute did not mute")
	}
	handleUserCommand("/mute")
	if gs.Mute {
		t.Fatalf("second /mute did not unmute")
	}
}

func TestUserCommandVolume(t *testing.T) {
	restore := settingsTestDir(t)
	defer restore()
	gs = gsdef

	handleUserCommand("/volume 40")
	if gs.MasterVolume != 0.4 {
		t.Fatalf("MasterVolume = %v want 0.4", gs.MasterVolume)
	}
	for _, bad := range []string{"/volume", "/volume 200", "/volume loud"} {
		handleUserCommand(bad)
		if gs.MasterVolume != 0.4 {
			t.Fatalf("%q changed MasterVolume to %v", bad, gs.MasterVolume)
		}
	}
	handleUserCommand("/volume 0")
	if gs.MasterVolume != 0 {
		t.Fatalf("MasterVolume = %v want 0", gs.MasterVolume)
	}
}

func TestUserCommandToggles(t *testing.T) {
	restore := settingsTestDir(t)
	defer restore()
	gs = gsdef

	handleUserCommand("/blazesolver")
	if !gs.BlazeSolver {
		t.Fatalf("blaze solver not enabled")
	}
	handleUserCommand("/autoreparty 30")
	if !gs.AutoReparty || gs.AutoRepartyTimeout != 30 {
		t.Fatalf("auto-reparty = %v timeout = %d want true 30", gs.AutoReparty, gs.AutoRepartyTimeout)
	}
	handleUserCommand("/api secret123")
	if gs.ApiKey != "secret123" {
		t.Fatalf("ApiKey = %q", gs.ApiKey)
	}
}

func TestUserCommandUnknownIsQueued(t *testing.T) {
	restoreCmds := resetCommands(t)
	defer restoreCmds()
	commandLimiter = rate.NewLimiter(rate.Inf, 1)

	handleUserCommand("/warp home")
	if got := queuedCommands(); len(got) != 1 || got[0] != "/warp home" {
		t.Fatalf("queued = %v want [/warp home]", got)
	}
}

func TestHostLineProtocol(t *testing.T) {
	oldName := playerName
	defer func() {
		playerName = oldName
		chatLog.Clear()
	}()

	handleHostLine("NAME Steve")
	if playerName != "Steve" {
		t.Fatalf("playerName = %q want Steve", playerName)
	}
	handleHostLine("ZONE Hub")
	// No world handlers registered here; the line must simply not be
	// mistaken for chat.
	handleHostLine("CHAT hello there")
	if playerName != "Steve" {
		t.Fatalf("chat line clobbered state")
	}
}
