package main

import "testing"

func resetHandlers(t *testing.T) func() {
	t.Helper()
	oldChat, oldTick, oldWorld := chatHandlers, tickHandlers, worldHandlers
	chatHandlers, tickHandlers, worldHandlers = nil, nil, nil
	chatLog.Clear()
	return func() {
		chatHandlers, tickHandlers, worldHandlers = oldChat, oldTick, oldWorld
		chatLog.Clear()
	}
}

func TestDispatchChatRunsAllHandlers(t *testing.T) {
	restore := resetHandlers(t)
	defer restore()

	var order []int
	registerChatHandler(func(ev *chatEvent) {
		order = append(order, 1)
		ev.Suppress = true
	})
	registerChatHandler(func(ev *chatEvent) {
		order = append(order, 2)
		if !ev.Suppress {
			t.Errorf("suppression not visible downstream")
		}
	})

	if !dispatchChat("§7hello") {
		t.Fatalf("suppressed line reported as visible")
	}
	if len(order) != 2 {
		t.Fatalf("handlers run = %v want both", order)
	}
	if msgs := getChatMessages(); len(msgs) != 0 {
		t.Fatalf("suppressed line logged: %v", msgs)
	}
}

func TestDispatchChatStripsColors(t *testing.T) {
	restore := resetHandlers(t)
	defer restore()

	var got chatEvent
	registerChatHandler(func(ev *chatEvent) { got = *ev })
	dispatchChat("§6Epic §fchat")
	if got.Raw != "§6Epic §fchat" || got.Text != "Epic chat" {
		t.Fatalf("event = %+v", got)
	}
	if msgs := getChatMessages(); len(msgs) != 1 || msgs[0] != "Epic chat" {
		t.Fatalf("chat log = %v", msgs)
	}
}

func TestDispatchTickAdvancesCounter(t *testing.T) {
	restore := resetHandlers(t)
	defer restore()

	before := tickCounter
	var ticks int
	registerTickHandler(func() { ticks++ })
	dispatchTick()
	dispatchTick()
	if ticks != 2 || tickCounter != before+2 {
		t.Fatalf("ticks = %d counter delta = %d", ticks, tickCounter-before)
	}
}

func TestMentionQueuesCue(t *testing.T) {
	restore := resetHandlers(t)
	defer restore()
	oldName := playerName
	defer func() { playerName = oldName }()
	playerName = "Steve"
	soundQueueMu.Lock()
	soundQueue = nil
	soundQueueMu.Unlock()

	handleMentionChat(&chatEvent{Text: "Alice: nice one steve!"})
	soundQueueMu.Lock()
	n := len(soundQueue)
	soundQueueMu.Unlock()
	if n != 1 {
		t.Fatalf("queued sounds = %d want 1", n)
	}

	// Own messages never cue.
	handleMentionChat(&chatEvent{Text: "[MVP+] Steve: talking about Steve"})
	soundQueueMu.Lock()
	n = len(soundQueue)
	soundQueue = nil
	soundQueueMu.Unlock()
	if n != 1 {
		t.Fatalf("queued sounds = %d want still 1", n)
	}
}

func TestIsSelfChatMessage(t *testing.T) {
	oldName := playerName
	defer func() { playerName = oldName }()
	playerName = "Steve"

	cases := []struct {
		msg  string
		want bool
	}{
		{"Steve: hi", true},
		{"[MVP+] Steve: hi", true},
		{"steve joined the lobby", true},
		{"SteveTwo: hi", false},
		{"Alice: Steve is here", false},
		{"", false},
	}
	for _, c := range cases {
		if got := isSelfChatMessage(c.msg); got != c.want {
			t.Errorf("isSelfChatMessage(%q) = %v want %v", c.msg, got, c.want)
		}
	}
}
