package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Outgoing slash-commands wait here until the host integration drains them.
// The party flows and plugin scripts append from their own goroutines, so the
// queue is locked; the drain side runs on the tick thread.
var (
	commandMu      sync.Mutex
	commandQueue   []string
	pendingCommand string
)

// commandLimiter paces slash-command dispatch. The server kicks clients that
// spam commands; one every half second with a small burst is safe.
var commandLimiter = rate.NewLimiter(rate.Every(500*time.Millisecond), 2)

func enqueueCommand(cmd string) {
	if cmd == "" {
		return
	}
	commandMu.Lock()
	commandQueue = append(commandQueue, cmd)
	commandMu.Unlock()
	logDebug("queued command %q", cmd)
}

// drainCommand returns the next command to send, or "" when nothing is due.
// Called once per tick by the host integration. The head of the queue is
// promoted to pending first so a rate-limited command keeps its turn.
func drainCommand() string {
	commandMu.Lock()
	if pendingCommand == "" && len(commandQueue) > 0 {
		pendingCommand = commandQueue[0]
		commandQueue = commandQueue[1:]
	}
	cmd := pendingCommand
	commandMu.Unlock()
	if cmd == "" {
		return ""
	}
	if !commandLimiter.Allow() {
		return ""
	}
	commandMu.Lock()
	pendingCommand = ""
	commandMu.Unlock()
	return cmd
}

// queuedCommands returns a snapshot of the queue, pending command first.
func queuedCommands() []string {
	commandMu.Lock()
	defer commandMu.Unlock()
	out := make([]string, 0, len(commandQueue)+1)
	if pendingCommand != "" {
		out = append(out, pendingCommand)
	}
	return append(out, commandQueue...)
}

// clearCommands drops everything waiting to be sent.
func clearCommands() {
	commandMu.Lock()
	pendingCommand = ""
	commandQueue = nil
	commandMu.Unlock()
}
