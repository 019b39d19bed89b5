package main

import (
	"regexp"

	"goskyblock/nbt"
)

// InventoryItem is the module's view of one item stack: the host-computed
// default name plus the persisted attribute tree.
type InventoryItem struct {
	BaseName string
	Tag      nbt.Compound
}

var (
	// Rarity lore lines open with an optional obfuscated recolor marker,
	// then formatting codes, then the tier word in caps.
	rarityLineRe = regexp.MustCompile(`^(?:§[0-9a-f]§l§ka§r )?(?:§[0-9a-fk-or])+([A-Z][A-Z ]*)`)
	// Pet display names carry a gray level prefix and the tier's color code.
	petNameRe = regexp.MustCompile(`^§7\[Lvl \d+\] §([0-9a-fk-or])`)
)

// DisplayName prefers the explicit display tag over the host default.
func (it InventoryItem) DisplayName() string {
	if it.Tag != nil {
		if name := it.Tag.GetString("display", "Name"); name != "" {
			return name
		}
	}
	return it.BaseName
}

// ItemID returns the stable item identifier from the attribute tree. ok is
// false when the tag is absent or blank; stacks without ExtraAttributes are
// vanilla items.
func (it InventoryItem) ItemID() (string, bool) {
	if it.Tag == nil {
		return "", false
	}
	id := it.Tag.GetString("ExtraAttributes", "id")
	if id == "" {
		return "", false
	}
	return id, true
}

// Lore returns the item's lore lines in order. Never nil.
func (it InventoryItem) Lore() []string {
	if it.Tag == nil {
		return []string{}
	}
	return it.Tag.GetStringList("display", "Lore")
}

// IsPet reports whether the display name matches the pet naming pattern,
// independent of whether a rarity can be resolved.
func (it InventoryItem) IsPet() bool {
	return petNameRe.MatchString(it.DisplayName())
}

// Rarity resolves the item's tier: the first lore line carrying a known tier
// word wins; pets without one fall back to the level prefix's color code.
// ok is false when neither source resolves.
func (it InventoryItem) Rarity() (Rarity, bool) {
	for _, line := range it.Lore() {
		m := rarityLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if r, ok := rarityByPrefix(m[1]); ok {
			return r, true
		}
	}
	if m := petNameRe.FindStringSubmatch(it.DisplayName()); m != nil {
		if r, ok := rarityByColor[m[1][0]]; ok {
			return r, true
		}
	}
	return 0, false
}
