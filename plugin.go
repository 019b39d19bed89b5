package main

import (
	"log"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// User scripts are plain Go files in the plugins directory, interpreted at
// startup. They see a small API plus a restricted standard library slice.

var pluginAllowedPkgs = []string{
	"fmt/fmt",
	"strings/strings",
	"strconv/strconv",
	"math/math",
	"regexp/regexp",
	"time/time",
}

var (
	pluginMu       sync.RWMutex
	pluginDisabled = make(map[string]bool)
)

type chatTrigger struct {
	owner string
	re    *regexp.Regexp
	fn    func(line string)
}

var (
	triggerMu    sync.Mutex
	chatTriggers []chatTrigger
)

// handleTriggerChat runs plugin triggers over every visible chat line.
// Suppressed command frames are not exposed to scripts.
func handleTriggerChat(ev *chatEvent) {
	if ev.Suppress {
		return
	}
	triggerMu.Lock()
	snapshot := make([]chatTrigger, len(chatTriggers))
	copy(snapshot, chatTriggers)
	triggerMu.Unlock()
	for _, tr := range snapshot {
		if pluginIsDisabled(tr.owner) {
			continue
		}
		if tr.re.MatchString(ev.Text) {
			tr.fn(ev.Text)
		}
	}
}

func pluginRegisterTrigger(owner, pattern string, fn func(string)) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		logError("plugin %s: bad trigger pattern %q: %v", owner, pattern, err)
		return
	}
	triggerMu.Lock()
	chatTriggers = append(chatTriggers, chatTrigger{owner: owner, re: re, fn: fn})
	triggerMu.Unlock()
}

func pluginIsDisabled(owner string) bool {
	pluginMu.RLock()
	disabled := pluginDisabled[owner]
	pluginMu.RUnlock()
	return disabled
}

func disablePlugin(owner, reason string) {
	pluginMu.Lock()
	pluginDisabled[owner] = true
	pluginMu.Unlock()
	consoleMessage("[plugin] disabled " + owner + ": " + reason)
}

func pluginPlaySound(name string, pitch, volume float64, delayTicks int) {
	enqueueSound(queuedSound{cue: soundCue(name), pitch: pitch, volume: volume, ticks: delayTicks})
}

// exportsForPlugin builds the script-facing API bound to one owner so a
// misbehaving script can be disabled without touching the rest.
func exportsForPlugin(owner string) interp.Exports {
	return interp.Exports{
		"sky/sky": {
			"Console":    reflect.ValueOf(consoleMessage),
			"Notify":     reflect.ValueOf(func(msg string) { notifyDesktop("goskyblock", msg) }),
			"PlayerName": reflect.ValueOf(func() string { return playerName }),
			"InDungeons": reflect.ValueOf(func() bool { return inDungeons }),
			"Zone":       reflect.ValueOf(func() string { return currentZone }),
			"Reparty":    reflect.ValueOf(startReparty),
			"PlaySound":  reflect.ValueOf(pluginPlaySound),
			"Cmd": reflect.ValueOf(func(text string) {
				text = strings.TrimSpace(text)
				if !strings.HasPrefix(text, "/") {
					logError("plugin %s: Cmd wants a slash command, got %q", owner, text)
					return
				}
				enqueueCommand(text)
			}),
			"OnChat": reflect.ValueOf(func(pattern string, fn func(string)) {
				pluginRegisterTrigger(owner, pattern, fn)
			}),
		},
	}
}

func restrictedStdlib() interp.Exports {
	restricted := interp.Exports{}
	for _, key := range pluginAllowedPkgs {
		if syms, ok := stdlib.Symbols[key]; ok {
			restricted[key] = syms
		}
	}
	return restricted
}

// loadPlugins interprets every .go file in dir. Load errors disable the
// offending script and never abort startup.
func loadPlugins(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	restricted := restrictedStdlib()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") {
			continue
		}
		owner := strings.TrimSuffix(e.Name(), ".go")
		if enabled, ok := gs.EnabledPlugins[owner]; ok && !enabled {
			continue
		}
		path := filepath.Join(dir, e.Name())
		src, err := os.ReadFile(path)
		if err != nil {
			logError("read plugin %s: %v", path, err)
			continue
		}
		loadPluginSource(owner, path, src, restricted)
	}
}

func loadPluginSource(owner, path string, src []byte, restricted interp.Exports) {
	i := interp.New(interp.Options{})
	if len(restricted) > 0 {
		i.Use(restricted)
	}
	i.Use(exportsForPlugin(owner))
	pluginMu.Lock()
	pluginDisabled[owner] = false
	pluginMu.Unlock()
	if _, err := i.Eval(string(src)); err != nil {
		log.Printf("plugin %s: %v", path, err)
		disablePlugin(owner, "load error: "+err.Error())
		return
	}
	if v, err := i.Eval("Init"); err == nil {
		if fn, ok := v.Interface().(func()); ok {
			fn()
		}
	}
	log.Printf("loaded plugin %s", path)
	consoleMessage("[plugin] loaded: " + owner)
}
