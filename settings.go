package main

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const SETTINGS_VERSION = 2

const settingsFile = "settings.json"

var gs settings = gsdef

// settingsLoaded reports whether settings were successfully loaded from disk.
var settingsLoaded bool

var gsdef settings = settings{
	Version: SETTINGS_VERSION,

	FirstLaunch:        true,
	AutoRepartyTimeout: 60,

	MasterVolume:       1.0,
	GameVolume:         0.8,
	NotificationVolume: 0.8,
	GameSound:          true,
	Notifications:      true,
	NotifyDisband:      true,
	DiscordPresence:    true,
	TimestampFormat:    "3:04PM",
}

type settings struct {
	Version int

	// Account / gameplay
	ApiKey             string
	FirstLaunch        bool
	AutoReparty        bool
	AutoRepartyTimeout int // seconds the rejoin window stays open
	BlazeSolver        bool

	// Audio
	Mute               bool
	GameSound          bool
	MasterVolume       float64
	GameVolume         float64
	NotificationVolume float64

	// Chat / console
	ChatTimestamps  bool
	TimestampFormat string
	ChatLogging     bool

	// Desktop integration
	Notifications   bool
	NotifyDisband   bool
	DiscordPresence bool

	EnabledPlugins map[string]bool
}

func loadSettings() bool {
	path := filepath.Join(dataDirPath, settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		gs = gsdef
		settingsLoaded = false
		return false
	}

	tmp := gsdef
	if err := json.Unmarshal(data, &tmp); err != nil {
		gs = gsdef
		settingsLoaded = false
		return false
	}

	if tmp.Version != SETTINGS_VERSION {
		gs = gsdef
		settingsLoaded = false
		return false
	}
	gs = tmp
	settingsLoaded = true

	if gs.EnabledPlugins == nil {
		gs.EnabledPlugins = make(map[string]bool)
	}
	if gs.AutoRepartyTimeout <= 0 {
		gs.AutoRepartyTimeout = gsdef.AutoRepartyTimeout
	}
	if gs.MasterVolume < 0 || gs.MasterVolume > 1 {
		gs.MasterVolume = gsdef.MasterVolume
	}
	if gs.GameVolume < 0 || gs.GameVolume > 1 {
		gs.GameVolume = gsdef.GameVolume
	}
	if gs.NotificationVolume < 0 || gs.NotificationVolume > 1 {
		gs.NotificationVolume = gsdef.NotificationVolume
	}
	if gs.TimestampFormat == "" {
		gs.TimestampFormat = gsdef.TimestampFormat
	}
	return settingsLoaded
}

func saveSettings() {
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		logError("save settings: %v", err)
		return
	}
	path := filepath.Join(dataDirPath, settingsFile)
	if err := os.WriteFile(path+".tmp", data, 0644); err != nil {
		logError("save settings: %v", err)
		return
	}
	os.Rename(path+".tmp", path)
}
