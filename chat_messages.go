package main

import "strings"

var chatLog = messageLog{max: maxChatMessages}

// chatMessage records a chat line that survived the handler chain.
func chatMessage(msg string) {
	if msg == "" {
		return
	}
	chatLog.Add(msg)
	appendTextLog(msg)
}

func getChatMessages() []string {
	return chatLog.Entries(gs.TimestampFormat, gs.ChatTimestamps)
}

// handleMentionChat plays a quiet cue when someone says the local player's
// name outside of command frames. Self-authored lines don't count.
func handleMentionChat(ev *chatEvent) {
	if ev.Suppress || playerName == "" {
		return
	}
	if isSelfChatMessage(ev.Text) {
		return
	}
	if !strings.Contains(nameFold(ev.Text), nameFold(playerName)) {
		return
	}
	enqueueSound(queuedSound{cue: cuePling, pitch: 1.4, volume: 0.7, ticks: 0})
}

// isSelfChatMessage reports whether the line is the local player speaking.
// Hypixel prefixes ranked speakers with a bracketed tag.
func isSelfChatMessage(msg string) bool {
	if playerName == "" {
		return false
	}
	m := strings.TrimSpace(msg)
	if strings.HasPrefix(m, "[") {
		if i := strings.Index(m, "] "); i >= 0 {
			m = m[i+2:]
		}
	}
	name := nameFold(playerName)
	m = nameFold(m)
	if !strings.HasPrefix(m, name) {
		return false
	}
	rest := strings.TrimPrefix(m, name)
	return strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, " ")
}
