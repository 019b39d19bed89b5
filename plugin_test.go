package main

import "testing"

func resetPlugins(t *testing.T) func() {
	t.Helper()
	oldGs := gs
	gs = gsdef
	triggerMu.Lock()
	oldTriggers := chatTriggers
	chatTriggers = nil
	triggerMu.Unlock()
	pluginMu.Lock()
	oldDisabled := pluginDisabled
	pluginDisabled = make(map[string]bool)
	pluginMu.Unlock()
	consoleLog.Clear()
	return func() {
		gs = oldGs
		triggerMu.Lock()
		chatTriggers = oldTriggers
		triggerMu.Unlock()
		pluginMu.Lock()
		pluginDisabled = oldDisabled
		pluginMu.Unlock()
		consoleLog.Clear()
	}
}

func TestTriggerMatching(t *testing.T) {
	restore := resetPlugins(t)
	defer restore()

	var got []string
	pluginRegisterTrigger("demo", `^ding`, func(line string) { got = append(got, line) })

	handleTriggerChat(&chatEvent{Text: "ding dong"})
	handleTriggerChat(&chatEvent{Text: "no bell here"})
	handleTriggerChat(&chatEvent{Text: "ding muffled", Suppress: true})
	if len(got) != 1 || got[0] != "ding dong" {
		t.Fatalf("fired = %v want only the visible match", got)
	}

	disablePlugin("demo", "test")
	handleTriggerChat(&chatEvent{Text: "ding silenced"})
	if len(got) != 1 {
		t.Fatalf("disabled plugin's trigger still fired: %v", got)
	}
}

func TestTriggerBadPatternRejected(t *testing.T) {
	restore := resetPlugins(t)
	defer restore()

	pluginRegisterTrigger("demo", `([`, func(string) {})
	triggerMu.Lock()
	n := len(chatTriggers)
	triggerMu.Unlock()
	if n != 0 {
		t.Fatalf("bad pattern registered %d trigger(s)", n)
	}
}

func TestLoadPluginSource(t *testing.T) {
	restore := resetPlugins(t)
	defer restore()

	src := []byte(`package main

import "sky"

func Init() {
	sky.Console("script ready")
	sky.OnChat("^ding$", func(line string) {
		sky.Console("rang: " + line)
	})
}
`)
	loadPluginSource("demo", "demo.go", src, restrictedStdlib())
	if pluginIsDisabled("demo") {
		t.Fatalf("plugin disabled on load")
	}
	var ready bool
	for _, m := range getConsoleMessages() {
		if m == "script ready" {
			ready = true
		}
	}
	if !ready {
		t.Fatalf("Init did not run: %v", getConsoleMessages())
	}

	handleTriggerChat(&chatEvent{Text: "ding"})
	msgs := getConsoleMessages()
	if len(msgs) == 0 || msgs[len(msgs)-1] != "rang: ding" {
		t.Fatalf("script trigger did not fire: %v", msgs)
	}
}

func TestLoadPluginSourceBrokenDisables(t *testing.T) {
	restore := resetPlugins(t)
	defer restore()

	loadPluginSource("bad", "bad.go", []byte("package main\nfunc Init() {"), restrictedStdlib())
	if !pluginIsDisabled("bad") {
		t.Fatalf("broken script not disabled")
	}
}

func TestPluginCmdRequiresSlash(t *testing.T) {
	restore := resetPlugins(t)
	defer restore()
	restoreCmds := resetCommands(t)
	defer restoreCmds()

	exports := exportsForPlugin("demo")
	cmd := exports["sky/sky"]["Cmd"].Interface().(func(string))
	cmd("say hello")
	if got := queuedCommands(); len(got) != 0 {
		t.Fatalf("non-slash command queued: %v", got)
	}
	cmd("/p list")
	if got := queuedCommands(); len(got) != 1 || got[0] != "/p list" {
		t.Fatalf("queued = %v want [/p list]", got)
	}
}
