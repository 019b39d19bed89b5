package main

import "strings"

// Game context derived from chat. The blaze texture override and the Discord
// presence both key on it.
var (
	currentZone string
	inDungeons  bool
)

// handleLocationChat watches for zone banner lines. Passive observer; the
// line stays visible.
func handleLocationChat(ev *chatEvent) {
	if ev.Suppress {
		return
	}
	t := strings.TrimSpace(ev.Text)
	if zone, ok := strings.CutPrefix(t, "⏣ "); ok {
		setZone(strings.TrimSpace(zone))
		return
	}
	// The dungeon start countdown arrives before any banner.
	if strings.Contains(t, "Starting in") && strings.Contains(t, "The Catacombs") {
		setZone("The Catacombs")
	}
}

func setZone(zone string) {
	if zone == currentZone {
		return
	}
	currentZone = zone
	inDungeons = strings.Contains(zone, "The Catacombs") || strings.Contains(zone, "Dungeon")
	logDebug("zone %q dungeons=%v", zone, inDungeons)
	updateDiscordZone(zone)
}

// locationWorldChanged resets the context; the new server reports its zone
// with a fresh banner.
func locationWorldChanged(zone string) {
	currentZone = ""
	inDungeons = false
	if zone != "" {
		setZone(zone)
	}
}
