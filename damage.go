package main

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// DamageType classifies a floating damage splash by the glyph appended to
// the number. Each variant carries the color code the splash renders with.
type DamageType int

const (
	DamageNormal DamageType = iota
	DamageCrit
	DamageWither
	DamageFire
	DamageIce
	DamageLightning
	DamageBlaze
	DamagePoison
	DamageTrue
)

type damageTypeInfo struct {
	symbol string
	color  string // chat color code, including the section sign
}

// damageTypes is the fixed glyph table. Order matters only for stable
// iteration; lookups are linear over these nine entries.
var damageTypes = [...]damageTypeInfo{
	DamageNormal:    {symbol: "✧", color: "§7"},
	DamageCrit:      {symbol: "✯", color: "§f"},
	DamageWither:    {symbol: "⸕", color: "§8"},
	DamageFire:      {symbol: "🔥", color: "§6"},
	DamageIce:       {symbol: "❄", color: "§b"},
	DamageLightning: {symbol: "⚡", color: "§e"},
	DamageBlaze:     {symbol: "✸", color: "§c"},
	DamagePoison:    {symbol: "☠", color: "§2"},
	DamageTrue:      {symbol: "❂", color: "§f"},
}

func (d DamageType) Symbol() string {
	if int(d) < len(damageTypes) {
		return damageTypes[d].symbol
	}
	return ""
}

func (d DamageType) Color() string {
	if int(d) < len(damageTypes) {
		return damageTypes[d].color
	}
	return ""
}

// damageTypeFromSymbol returns the variant for a splash glyph. ok is false
// for anything outside the table.
func damageTypeFromSymbol(sym string) (DamageType, bool) {
	for i, info := range damageTypes {
		if info.symbol == sym {
			return DamageType(i), true
		}
	}
	return 0, false
}

var (
	damagePatternOnce sync.Once
	damagePatternRe   *regexp.Regexp
)

// damagePattern returns the compiled splash pattern: a negated amount with
// optional thousands separators followed by one glyph from the table.
func damagePattern() *regexp.Regexp {
	damagePatternOnce.Do(func() {
		alts := make([]string, 0, len(damageTypes))
		for _, info := range damageTypes {
			alts = append(alts, regexp.QuoteMeta(info.symbol))
		}
		damagePatternRe = regexp.MustCompile(`^-(\d[\d,]*)\s*(` + strings.Join(alts, "|") + `)$`)
	})
	return damagePatternRe
}

// damageSplash is one tokenized floating combat text entry.
type damageSplash struct {
	amount int64
	kind   DamageType
}

// parseDamageSplash tokenizes a splash name tag like "-1,234 ✧". Entity name
// tags that are not splashes fail the pattern and return ok false.
func parseDamageSplash(text string) (damageSplash, bool) {
	m := damagePattern().FindStringSubmatch(strings.TrimSpace(stripColorCodes(text)))
	if m == nil {
		return damageSplash{}, false
	}
	amount, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return damageSplash{}, false
	}
	kind, ok := damageTypeFromSymbol(m[2])
	if !ok {
		return damageSplash{}, false
	}
	return damageSplash{amount: amount, kind: kind}, true
}
