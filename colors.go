package main

import "strings"

// Chat formatting uses two-character codes: a section sign followed by a
// color or style character. Items carry them in display names and lore.
const colorChar = '§'

// stripColorCodes removes every formatting code from s.
func stripColorCodes(s string) string {
	if !strings.ContainsRune(s, colorChar) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	skip := false
	for _, r := range s {
		if skip {
			skip = false
			continue
		}
		if r == colorChar {
			skip = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Rarity is an item quality tier derived from lore or pet name color.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
	RarityDivine
	RaritySpecial
	RarityVerySpecial
)

var rarityNames = []string{
	RarityCommon:      "COMMON",
	RarityUncommon:    "UNCOMMON",
	RarityRare:        "RARE",
	RarityEpic:        "EPIC",
	RarityLegendary:   "LEGENDARY",
	RarityMythic:      "MYTHIC",
	RarityDivine:      "DIVINE",
	RaritySpecial:     "SPECIAL",
	RarityVerySpecial: "VERY SPECIAL",
}

func (r Rarity) String() string {
	if int(r) < len(rarityNames) {
		return rarityNames[r]
	}
	return "UNKNOWN"
}

// rarityByPrefix matches an uppercase word from a lore line against the known
// tier names. Upgraded items render as e.g. "MYTHIC DUNGEON BOOTS", so a
// prefix match wins over exact equality. Checked in reverse so "VERY SPECIAL"
// is tried before "SPECIAL".
func rarityByPrefix(word string) (Rarity, bool) {
	for i := len(rarityNames) - 1; i >= 0; i-- {
		if strings.HasPrefix(word, rarityNames[i]) {
			return Rarity(i), true
		}
	}
	return 0, false
}

// rarityByColor maps a pet name's color code character to its tier.
var rarityByColor = map[byte]Rarity{
	'f': RarityCommon,
	'a': RarityUncommon,
	'9': RarityRare,
	'5': RarityEpic,
	'6': RarityLegendary,
	'd': RarityMythic,
	'b': RarityDivine,
	'c': RaritySpecial,
}
