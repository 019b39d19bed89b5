package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var dataDirPath string

func initDataDir(override string) {
	if override != "" {
		dataDirPath = override
	} else if cfg, err := os.UserConfigDir(); err == nil {
		dataDirPath = filepath.Join(cfg, "goskyblock")
	} else {
		dataDirPath = "."
	}
	if err := os.MkdirAll(dataDirPath, 0755); err != nil {
		dataDirPath = "."
	}
}

func main() {
	debug := flag.Bool("debug", false, "verbose debug logging")
	flag.BoolVar(&silent, "silent", false, "do not echo log output to the console")
	dataDir := flag.String("datadir", "", "override the data directory")
	replayPath := flag.String("replay", "", "replay a recorded chat log and exit")
	tps := flag.Int("tps", 20, "ticks per second (0 = as fast as possible, replay only)")
	name := flag.String("name", "", "local player name, normally set by the host handshake")
	flag.Parse()
	doDebug = *debug
	consoleEcho = true

	initDataDir(*dataDir)
	setupLogging(*debug)
	loadSettings()
	if gs.FirstLaunch {
		consoleMessage("Welcome! Set your API key with /api <key>.")
		gs.FirstLaunch = false
		saveSettings()
	}
	playerName = *name

	initSoundContext()
	go preloadCues()
	wireHandlers()
	loadPlugins(filepath.Join(dataDirPath, "plugins"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	initDiscordRPC(ctx)

	if *replayPath != "" {
		if err := runReplay(*replayPath, *tps); err != nil {
			logError("replay: %v", err)
			os.Exit(1)
		}
		return
	}

	runAttached(ctx, *tps)
}

// runAttached services a host client over stdin/stdout: the host streams
// handshake and chat lines in, due slash-commands go back out.
func runAttached(ctx context.Context, tps int) {
	if tps <= 0 {
		tps = 20
	}
	lines := make(chan string, 64)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			saveSettings()
			return
		case line, ok := <-lines:
			if !ok {
				saveSettings()
				return
			}
			handleHostLine(line)
		case <-ticker.C:
			dispatchTick()
			flushCommands()
		}
	}
}

// handleHostLine decodes one line of the host stream. Chat is the default;
// the prefixed records carry identity, zone changes, and user input.
func handleHostLine(line string) {
	switch {
	case strings.HasPrefix(line, "NAME "):
		playerName = strings.TrimSpace(line[len("NAME "):])
		logDebug("player name %q", playerName)
	case strings.HasPrefix(line, "ZONE "):
		dispatchWorldChange(strings.TrimSpace(line[len("ZONE "):]))
	case strings.HasPrefix(line, "CMD "):
		handleUserCommand(strings.TrimSpace(line[len("CMD "):]))
	case strings.HasPrefix(line, "CHAT "):
		dispatchChat(line[len("CHAT "):])
	default:
		dispatchChat(line)
	}
}

func writeHostCommand(cmd string) {
	fmt.Println(cmd)
}

// handleUserCommand implements the module's own slash commands; anything
// unrecognized is queued for the host unchanged.
func handleUserCommand(cmd string) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "/rp", "/reparty":
		startReparty()
	case "/api":
		if len(fields) < 2 {
			consoleMessage("Usage: /api <key>")
			return
		}
		gs.ApiKey = fields[1]
		saveSettings()
		consoleMessage("API key saved.")
	case "/autoreparty":
		gs.AutoReparty = !gs.AutoReparty
		if len(fields) > 1 {
			if secs, err := strconv.Atoi(fields[1]); err == nil && secs > 0 {
				gs.AutoRepartyTimeout = secs
				gs.AutoReparty = true
			}
		}
		saveSettings()
		consoleMessage(fmt.Sprintf("Auto-reparty %s (timeout %ds).", onOff(gs.AutoReparty), gs.AutoRepartyTimeout))
	case "/blazesolver":
		gs.BlazeSolver = !gs.BlazeSolver
		saveSettings()
		consoleMessage("Blaze solver " + onOff(gs.BlazeSolver) + ".")
	case "/mute":
		gs.Mute = !gs.Mute
		if gs.Mute {
			stopAllSounds()
		}
		updateSoundVolume()
		saveSettings()
		consoleMessage("Sounds " + onOff(!gs.Mute) + ".")
	case "/volume":
		pct := -1
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				pct = n
			}
		}
		if pct < 0 || pct > 100 {
			consoleMessage("Usage: /volume <0-100>")
			return
		}
		gs.MasterVolume = float64(pct) / 100
		updateSoundVolume()
		saveSettings()
		consoleMessage(fmt.Sprintf("Master volume %d%%.", pct))
	default:
		enqueueCommand(cmd)
	}
}

func onOff(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}
