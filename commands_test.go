package main

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func resetCommands(t *testing.T) func() {
	t.Helper()
	oldLimiter := commandLimiter
	clearCommands()
	return func() {
		commandLimiter = oldLimiter
		clearCommands()
	}
}

func TestCommandQueueOrder(t *testing.T) {
	restore := resetCommands(t)
	defer restore()
	commandLimiter = rate.NewLimiter(rate.Inf, 1)

	enqueueCommand("/p list")
	enqueueCommand("/p disband")
	enqueueCommand("")
	if got := queuedCommands(); len(got) != 2 {
		t.Fatalf("queued = %v want two commands", got)
	}
	if got := drainCommand(); got != "/p list" {
		t.Fatalf("first drain = %q want /p list", got)
	}
	if got := drainCommand(); got != "/p disband" {
		t.Fatalf("second drain = %q want /p disband", got)
	}
	if got := drainCommand(); got != "" {
		t.Fatalf("empty drain = %q want \"\"", got)
	}
}

func TestCommandRateLimitHoldsPending(t *testing.T) {
	restore := resetCommands(t)
	defer restore()
	commandLimiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	enqueueCommand("/p list")
	enqueueCommand("/p disband")
	if got := drainCommand(); got != "/p list" {
		t.Fatalf("first drain = %q want /p list", got)
	}
	// The limiter is exhausted; the next command stays pending, in order.
	if got := drainCommand(); got != "" {
		t.Fatalf("rate-limited drain = %q want \"\"", got)
	}
	if got := queuedCommands(); len(got) != 1 || got[0] != "/p disband" {
		t.Fatalf("queued = %v want [/p disband] still waiting", got)
	}
}

func TestClearCommands(t *testing.T) {
	restore := resetCommands(t)
	defer restore()
	commandLimiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	enqueueCommand("/p list")
	enqueueCommand("/p disband")
	drainCommand()
	drainCommand() // second command promoted to pending but held
	clearCommands()
	if got := queuedCommands(); len(got) != 0 {
		t.Fatalf("queued = %v want empty after clear", got)
	}
}
