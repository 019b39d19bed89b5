package main

import "testing"

func resetLocation(t *testing.T) func() {
	t.Helper()
	oldZone, oldDungeons := currentZone, inDungeons
	currentZone, inDungeons = "", false
	return func() {
		currentZone, inDungeons = oldZone, oldDungeons
	}
}

func TestZoneBanner(t *testing.T) {
	restore := resetLocation(t)
	defer restore()

	ev := &chatEvent{Text: "⏣ Blazing Fortress"}
	handleLocationChat(ev)
	if ev.Suppress {
		t.Fatalf("zone banner suppressed")
	}
	if currentZone != "Blazing Fortress" || inDungeons {
		t.Fatalf("zone = %q dungeons = %v want Blazing Fortress false", currentZone, inDungeons)
	}

	handleLocationChat(&chatEvent{Text: "⏣ The Catacombs (F3)"})
	if !inDungeons {
		t.Fatalf("catacombs banner did not set dungeon state")
	}
}

func TestDungeonCountdown(t *testing.T) {
	restore := resetLocation(t)
	defer restore()

	handleLocationChat(&chatEvent{Text: "Starting in 4 seconds. The Catacombs awaits."})
	if !inDungeons {
		t.Fatalf("countdown did not set dungeon state")
	}
}

func TestWorldChangeResetsZone(t *testing.T) {
	restore := resetLocation(t)
	defer restore()

	setZone("The Catacombs")
	locationWorldChanged("")
	if currentZone != "" || inDungeons {
		t.Fatalf("zone = %q dungeons = %v want cleared", currentZone, inDungeons)
	}
	locationWorldChanged("Hub")
	if currentZone != "Hub" {
		t.Fatalf("zone = %q want Hub", currentZone)
	}
}

func TestBlazeTextureOverride(t *testing.T) {
	restore := resetLocation(t)
	defer restore()
	oldSolver := gs.BlazeSolver
	defer func() { gs.BlazeSolver = oldSolver }()

	// A nil host default makes the override visible without allocating a
	// second image.
	gs.BlazeSolver = true
	inDungeons = true
	if got := blazeTextureFor(nil); got == nil {
		t.Fatalf("blaze texture not overridden in dungeons")
	}
	inDungeons = false
	if got := blazeTextureFor(nil); got != nil {
		t.Fatalf("blaze texture overridden outside dungeons")
	}
	inDungeons = true
	gs.BlazeSolver = false
	if got := blazeTextureFor(nil); got != nil {
		t.Fatalf("blaze texture overridden with the solver disabled")
	}
}
