package main

import "fmt"

const (
	maxMessages     = 1000
	maxChatMessages = 1000
)

var consoleLog = messageLog{max: maxMessages}

// consoleEcho mirrors console output to stdout when running standalone.
var consoleEcho bool

// consoleMessage records a line of module output: status, warnings, command
// feedback. Console lines never go to the game chat.
func consoleMessage(msg string) {
	if msg == "" {
		return
	}
	consoleLog.Add(msg)
	appendTextLog("* " + msg)
	if consoleEcho {
		fmt.Println("* " + msg)
	}
}

func getConsoleMessages() []string {
	return consoleLog.Entries(gs.TimestampFormat, gs.ChatTimestamps)
}
