package main

import (
	"context"
	"time"

	client "github.com/hugolgst/rich-go/client"
)

var discordStart time.Time
var discordReady bool

func initDiscordRPC(ctx context.Context) {
	if !gs.DiscordPresence {
		return
	}
	if err := client.Login("1270993782324985906"); err != nil {
		logDebug("discord rpc login: %v", err)
		return
	}
	discordReady = true
	discordStart = time.Now()
	setDiscordStatus("in the lobby")
	go func() {
		<-ctx.Done()
		client.Logout()
	}()
}

func setDiscordStatus(detail string) {
	if !discordReady {
		return
	}
	if err := client.SetActivity(client.Activity{
		State:   "goskyblock",
		Details: detail,
		Timestamps: &client.Timestamps{
			Start: &discordStart,
		},
	}); err != nil {
		logDebug("discord rpc activity: %v", err)
	}
}

func updateDiscordZone(zone string) {
	switch {
	case zone == "":
		setDiscordStatus("in the lobby")
	case inDungeons:
		setDiscordStatus("in the Catacombs")
	default:
		setDiscordStatus("exploring " + zone)
	}
}
