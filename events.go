package main

// The host client owns the event loop. It hands us chat lines and ticks
// through the dispatch functions below; handlers are registered up front and
// invoked synchronously in registration order. A chat handler that returns
// true claims the line and suppresses it from normal display.

type chatEvent struct {
	// Raw is the line as delivered, formatting codes included.
	Raw string
	// Text is Raw with color codes stripped.
	Text string
	// Suppress hides the line from the chat window when set by a handler.
	Suppress bool
}

type chatHandler func(*chatEvent)

var (
	chatHandlers  []chatHandler
	tickHandlers  []func()
	worldHandlers []func(zone string)
)

func registerChatHandler(h chatHandler) {
	chatHandlers = append(chatHandlers, h)
}

func registerTickHandler(h func()) {
	tickHandlers = append(tickHandlers, h)
}

func registerWorldHandler(h func(zone string)) {
	worldHandlers = append(worldHandlers, h)
}

// dispatchChat runs every chat handler over the line in order and reports
// whether the line should be suppressed. Handlers keep running after a
// suppression so state machines further down still see the line.
func dispatchChat(raw string) bool {
	ev := &chatEvent{Raw: raw, Text: stripColorCodes(raw)}
	for _, h := range chatHandlers {
		h(ev)
	}
	if !ev.Suppress {
		chatMessage(ev.Text)
	}
	return ev.Suppress
}

// dispatchTick advances everything driven by the client tick.
func dispatchTick() {
	tickCounter++
	for _, h := range tickHandlers {
		h()
	}
}

// dispatchWorldChange notifies handlers that the player moved to a new zone
// or server. Pending multi-line command frames cannot survive a world swap.
func dispatchWorldChange(zone string) {
	for _, h := range worldHandlers {
		h(zone)
	}
}

// wireHandlers registers the built-in handlers in the order the host's chat
// pipeline expects: protocol frames first, passive observers after.
func wireHandlers() {
	registerChatHandler(party.handleChat)
	registerChatHandler(handleLocationChat)
	registerChatHandler(handleMentionChat)
	registerChatHandler(handleTriggerChat)
	registerTickHandler(tickSoundQueue)
	registerTickHandler(party.tick)
	registerWorldHandler(party.worldChanged)
	registerWorldHandler(locationWorldChanged)
}
