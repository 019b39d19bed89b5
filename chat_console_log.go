package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	textLogPath string
	textLogMu   sync.Mutex
)

// appendTextLog appends one line to the session chat log file when chat
// logging is enabled in the settings.
func appendTextLog(msg string) {
	if msg == "" || !gs.ChatLogging {
		return
	}

	ensureTextLog()
	if textLogPath == "" {
		return
	}

	ts := time.Now().Format("15:04:05")
	line := strings.TrimRight(strings.ReplaceAll(msg, "\r", "\n"), "\n")
	out := "[" + ts + "] " + line + "\n"

	textLogMu.Lock()
	defer textLogMu.Unlock()
	f, err := os.OpenFile(textLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(out)
	_ = f.Close()
}

// ensureTextLog initializes the chat log path: "Chat Logs/YYYY-MM-DD HH.MM.SS.txt".
func ensureTextLog() {
	textLogMu.Lock()
	defer textLogMu.Unlock()
	if textLogPath != "" {
		return
	}
	dir := filepath.Join(dataDirPath, "Chat Logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}
	name := fmt.Sprintf("%s.txt", time.Now().Format("2006-01-02 15.04.05"))
	textLogPath = filepath.Join(dir, name)
}
