package main

import "testing"

func TestParseDamageSplash(t *testing.T) {
	cases := []struct {
		text   string
		amount int64
		kind   DamageType
		ok     bool
	}{
		{"-150 ✧", 150, DamageNormal, true},
		{"-1,234 ✯", 1234, DamageCrit, true},
		{"-99⸕", 99, DamageWither, true},
		{"-42 🔥", 42, DamageFire, true},
		{"-7 ❄", 7, DamageIce, true},
		{"-500 ⚡", 500, DamageLightning, true},
		{"-2,000,000 ✸", 2000000, DamageBlaze, true},
		{"-13 ☠", 13, DamagePoison, true},
		{"-1 ❂", 1, DamageTrue, true},
		{"§7-150 ✧", 150, DamageNormal, true},
		{"-150", 0, 0, false},
		{"-150 ✪", 0, 0, false},
		{"150 ✧", 0, 0, false},
		{"Zombie", 0, 0, false},
		{"-1,2,3x ✧", 0, 0, false},
	}
	for _, c := range cases {
		got, ok := parseDamageSplash(c.text)
		if ok != c.ok {
			t.Errorf("%q ok = %v want %v", c.text, ok, c.ok)
			continue
		}
		if !ok {
			continue
		}
		if got.amount != c.amount || got.kind != c.kind {
			t.Errorf("%q = %d %v want %d %v", c.text, got.amount, got.kind, c.amount, c.kind)
		}
	}
}

func TestDamageTypeTable(t *testing.T) {
	seen := map[string]DamageType{}
	for i := range damageTypes {
		d := DamageType(i)
		sym := d.Symbol()
		if sym == "" {
			t.Fatalf("damage type %d has no symbol", i)
		}
		if prev, dup := seen[sym]; dup {
			t.Fatalf("symbol %q shared by %v and %v", sym, prev, d)
		}
		seen[sym] = d
		back, ok := damageTypeFromSymbol(sym)
		if !ok || back != d {
			t.Fatalf("round trip for %q = %v %v", sym, back, ok)
		}
		if len(d.Color()) != 3 || d.Color()[0] != "§"[0] {
			t.Fatalf("color for %v = %q want a two-character code", d, d.Color())
		}
	}
	if _, ok := damageTypeFromSymbol("?"); ok {
		t.Fatalf("unknown symbol resolved")
	}
}
