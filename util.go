package main

import (
	"strings"

	"golang.org/x/text/cases"
)

var doDebug bool
var silent bool

// playerName is the local player's name as reported by the host client.
var playerName string

// tickCounter increments once per client tick.
var tickCounter int64

var nameCaser = cases.Fold()

// nameFold canonicalizes a player name for comparison. Names are ASCII in
// practice, but chat lines have shown up with odd casing and leftover color
// codes, so fold case and strip codes before comparing.
func nameFold(s string) string {
	return nameCaser.String(stripColorCodes(strings.TrimSpace(s)))
}

// sameName reports whether two player names refer to the same player.
func sameName(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return nameFold(a) == nameFold(b)
}
