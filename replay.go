package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// runReplay feeds a recorded chat log through the dispatcher, one line per
// tick. Blank lines and "#" comments are skipped. Two directives drive the
// clock and the user: "!tick N" advances N ticks without chat, "!cmd /x"
// simulates command input.
func runReplay(path string, tps int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var interval time.Duration
	if tps > 0 {
		interval = time.Second / time.Duration(tps)
	}

	var total, suppressed, sent int
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "!tick "); ok {
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				logWarn("replay: bad tick directive %q", line)
				continue
			}
			for i := 0; i < n; i++ {
				dispatchTick()
				sent += flushCommands()
				if interval > 0 {
					time.Sleep(interval)
				}
			}
			continue
		}
		if rest, ok := strings.CutPrefix(line, "!cmd "); ok {
			handleUserCommand(strings.TrimSpace(rest))
			continue
		}

		total++
		if dispatchChat(line) {
			suppressed++
		}
		dispatchTick()
		sent += flushCommands()
		if interval > 0 {
			time.Sleep(interval)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	consoleMessage(fmt.Sprintf("replayed %s line(s), %s suppressed, %s command(s) sent",
		humanize.Comma(int64(total)), humanize.Comma(int64(suppressed)), humanize.Comma(int64(sent))))
	return nil
}

// flushCommands sends every due queued command to the host.
func flushCommands() int {
	n := 0
	for {
		cmd := drainCommand()
		if cmd == "" {
			return n
		}
		writeHostCommand(cmd)
		n++
	}
}
