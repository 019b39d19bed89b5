package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hako/durafmt"
)

// The party commands print multi-line responses bounded by delimiter lines
// ("-----"). A command sets the session mode before the response arrives;
// the chat handler then consumes lines until the closing delimiter and
// suppresses them from normal display.

type partyMode int

const (
	partyIdle partyMode = iota
	partyQueryingMembers
	partyDisbanding
	partyInviting
	partyFailInviting
)

func (m partyMode) String() string {
	switch m {
	case partyIdle:
		return "idle"
	case partyQueryingMembers:
		return "querying members"
	case partyDisbanding:
		return "disbanding"
	case partyInviting:
		return "inviting"
	case partyFailInviting:
		return "re-inviting"
	}
	return "unknown"
}

type chatLineKind int

const (
	lineUnrecognized chatLineKind = iota
	lineFrameBoundary
	linePartyHeader
	lineLeader
	lineMembers
	lineDisband
	lineInviteSent
	lineInviteFail
	lineAcceptPrompt
)

var (
	partyHeaderRe = regexp.MustCompile(`^Party Members \((\d+)\)$`)
	partyLeaderRe = regexp.MustCompile(`^Party Leader: (?:\[[^\]]+\] )?(\w+) ●`)
	memberNameRe  = regexp.MustCompile(`(?:\[[^\]]+\] )?(\w+) ●`)
	disbandRe     = regexp.MustCompile(`(?:\[[^\]]+\] )?(\w+) has disbanded the party!$`)
	inviteSentRe  = regexp.MustCompile(`(?:\[[^\]]+\] )?(\w+) to the party! They have 60 seconds to accept\.$`)
	invitedYouRe  = regexp.MustCompile(`(?:\[[^\]]+\] )?(\w+) has invited you to join their party!`)
)

type classifiedLine struct {
	kind  chatLineKind
	name  string
	names []string
	count int
}

// classifyPartyLine tags one stripped chat line for the state machine.
func classifyPartyLine(s string) classifiedLine {
	t := strings.TrimSpace(s)
	if len(t) >= 5 && strings.Trim(t, "-") == "" {
		return classifiedLine{kind: lineFrameBoundary}
	}
	if m := partyHeaderRe.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		return classifiedLine{kind: linePartyHeader, count: n}
	}
	if m := partyLeaderRe.FindStringSubmatch(t); m != nil {
		return classifiedLine{kind: lineLeader, name: m[1]}
	}
	if names, ok := memberLineNames(t); ok {
		return classifiedLine{kind: lineMembers, names: names}
	}
	if m := disbandRe.FindStringSubmatch(t); m != nil {
		return classifiedLine{kind: lineDisband, name: m[1]}
	}
	if m := inviteSentRe.FindStringSubmatch(t); m != nil {
		return classifiedLine{kind: lineInviteSent, name: m[1]}
	}
	if strings.HasPrefix(t, "Couldn't find a player") ||
		strings.HasPrefix(t, "You cannot invite that player") {
		return classifiedLine{kind: lineInviteFail}
	}
	if strings.Contains(t, "You have 60 seconds to accept") {
		cl := classifiedLine{kind: lineAcceptPrompt}
		if m := invitedYouRe.FindStringSubmatch(t); m != nil {
			cl.name = m[1]
		}
		return cl
	}
	return classifiedLine{kind: lineUnrecognized}
}

// memberLineNames extracts names from a member listing line. The line must
// consist only of "Name ●" groups (optionally prefixed "Party Members:") so
// ordinary chat containing a bullet is not misread.
func memberLineNames(t string) ([]string, bool) {
	t = strings.TrimPrefix(t, "Party Members:")
	t = strings.TrimSpace(t)
	if t == "" || !strings.Contains(t, "●") {
		return nil, false
	}
	matches := memberNameRe.FindAllStringSubmatch(t, -1)
	if len(matches) == 0 {
		return nil, false
	}
	rest := memberNameRe.ReplaceAllString(t, "")
	if strings.TrimSpace(rest) != "" {
		return nil, false
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names, true
}

type partySession struct {
	mode           partyMode
	delimiterCount int
	members        []string
	pendingInvites map[string]string // folded name -> display name
	repartying     bool

	lastDisbander string
	rejoinTimer   *time.Timer

	// ops carries state mutations from background timers onto the tick
	// thread, which exclusively owns the fields above.
	ops chan func()
}

var party = newPartySession()

func newPartySession() *partySession {
	return &partySession{
		pendingInvites: make(map[string]string),
		ops:            make(chan func(), 8),
	}
}

// tick drains deferred mutations queued by background timers.
func (p *partySession) tick() {
	for {
		select {
		case fn := <-p.ops:
			fn()
		default:
			return
		}
	}
}

// worldChanged cancels any open command frame; its remaining lines will
// never arrive on the new server.
func (p *partySession) worldChanged(string) {
	if p.mode != partyIdle {
		logDebug("party frame cancelled by world change (%v)", p.mode)
		p.cancel()
	}
}

func (p *partySession) cancel() {
	p.mode = partyIdle
	p.delimiterCount = 0
	p.repartying = false
	p.members = nil
	for k := range p.pendingInvites {
		delete(p.pendingInvites, k)
	}
}

// handleChat consumes one chat line. Disband and accept prompts are watched
// in every mode; frame handling only runs while a command is in flight.
func (p *partySession) handleChat(ev *chatEvent) {
	cl := classifyPartyLine(ev.Text)

	if cl.kind == lineDisband {
		p.sawDisband(cl.name)
	}
	if cl.kind == lineAcceptPrompt {
		p.sawAcceptPrompt(ev.Text, cl.name)
	}

	switch p.mode {
	case partyQueryingMembers:
		p.queryLine(ev, cl)
	case partyDisbanding:
		p.disbandLine(ev, cl)
	case partyInviting, partyFailInviting:
		p.inviteLine(ev, cl)
	}
}

func (p *partySession) queryLine(ev *chatEvent, cl classifiedLine) {
	switch cl.kind {
	case lineFrameBoundary:
		ev.Suppress = true
		if p.delimiterCount == 0 {
			p.delimiterCount = 1
			return
		}
		p.delimiterCount = 0
		p.finishQuery()
	case linePartyHeader:
		ev.Suppress = true
		if cl.count <= 1 {
			consoleMessage("You cannot reparty yourself.")
			p.cancel()
		}
	case lineLeader:
		ev.Suppress = true
		if !sameName(cl.name, playerName) {
			consoleMessage("You are not the party leader.")
			p.cancel()
		}
	case lineMembers:
		ev.Suppress = true
		for _, n := range cl.names {
			if !sameName(n, playerName) {
				p.members = append(p.members, n)
			}
		}
	default:
		if p.delimiterCount > 0 {
			ev.Suppress = true
		}
	}
}

func (p *partySession) finishQuery() {
	if !p.repartying {
		p.mode = partyIdle
		return
	}
	if len(p.members) == 0 {
		consoleMessage("No party members to invite.")
		p.cancel()
		return
	}
	logDebug("reparty: %d member(s) harvested, disbanding", len(p.members))
	p.mode = partyDisbanding
	enqueueCommand("/p disband")
}

func (p *partySession) disbandLine(ev *chatEvent, cl classifiedLine) {
	switch cl.kind {
	case lineFrameBoundary:
		ev.Suppress = true
		if p.delimiterCount == 0 {
			p.delimiterCount = 1
			return
		}
		p.delimiterCount = 0
		p.finishDisband()
	case lineDisband:
		// Our own disband confirmation; the closing delimiter ends the state.
		ev.Suppress = true
	default:
		if p.delimiterCount > 0 {
			ev.Suppress = true
		}
	}
}

func (p *partySession) finishDisband() {
	if !p.repartying {
		p.mode = partyIdle
		return
	}
	p.mode = partyInviting
	for _, n := range p.members {
		p.pendingInvites[nameFold(n)] = n
		enqueueCommand("/p invite " + n)
	}
}

func (p *partySession) inviteLine(ev *chatEvent, cl classifiedLine) {
	switch cl.kind {
	case lineFrameBoundary:
		ev.Suppress = true
		if p.delimiterCount == 0 {
			p.delimiterCount = 1
			return
		}
		p.delimiterCount = 0
		p.finishInvites()
	case lineInviteSent:
		ev.Suppress = true
		delete(p.pendingInvites, nameFold(cl.name))
	case lineInviteFail:
		// Suppressed without touching the delimiter count; the frame is
		// still open and its closing line has not arrived.
		ev.Suppress = true
	default:
		if p.delimiterCount > 0 {
			ev.Suppress = true
		}
	}
}

func (p *partySession) finishInvites() {
	if p.mode == partyInviting && len(p.pendingInvites) > 0 {
		p.mode = partyFailInviting
		for _, name := range p.pendingInvites {
			enqueueCommand("/p invite " + name)
		}
		return
	}
	if len(p.pendingInvites) > 0 {
		names := make([]string, 0, len(p.pendingInvites))
		for _, n := range p.pendingInvites {
			names = append(names, n)
		}
		consoleMessage("Could not re-invite: " + strings.Join(names, ", "))
	} else if p.repartying {
		consoleMessage(fmt.Sprintf("Repartied with %d member(s).", len(p.members)))
	}
	p.cancel()
}

// sawDisband opens the auto-rejoin window when someone else disbands the
// party. A fresh disband arms a fresh timer; an earlier timer keeps running
// and still clears the recorded name when it fires. That matches the legacy
// behavior and is recorded as an open question in DESIGN.md.
func (p *partySession) sawDisband(name string) {
	if !gs.AutoReparty || name == "" {
		return
	}
	if sameName(name, playerName) {
		return
	}
	p.lastDisbander = name
	timeout := time.Duration(gs.AutoRepartyTimeout) * time.Second
	consoleMessage(fmt.Sprintf("%s disbanded the party; accepting their invite for %s.",
		name, durafmt.Parse(timeout)))
	if gs.NotifyDisband {
		notifyDesktop("Party disbanded", name+" disbanded the party")
	}
	p.rejoinTimer = time.AfterFunc(timeout, func() {
		p.ops <- func() {
			p.lastDisbander = ""
		}
	})
}

// sawAcceptPrompt matches an incoming invite against the recorded disbander
// and queues the accept.
func (p *partySession) sawAcceptPrompt(text, inviter string) {
	if p.lastDisbander == "" {
		return
	}
	if !sameName(inviter, p.lastDisbander) &&
		!strings.Contains(nameFold(text), nameFold(p.lastDisbander)) {
		return
	}
	enqueueCommand("/p accept " + p.lastDisbander)
	consoleMessage("Rejoining " + p.lastDisbander + "'s party.")
	if p.rejoinTimer != nil {
		p.rejoinTimer.Stop()
		p.rejoinTimer = nil
	}
	p.lastDisbander = ""
	enqueueSound(queuedSound{cue: cuePling, pitch: 1.0, volume: 0.8, ticks: 2})
}

// startReparty kicks off the disband-and-reinvite flow: query the member
// list, disband, then re-invite everyone who was in the party.
func startReparty() {
	if party.mode != partyIdle {
		consoleMessage("A party command is already in progress.")
		return
	}
	party.repartying = true
	party.members = nil
	party.delimiterCount = 0
	party.mode = partyQueryingMembers
	enqueueCommand("/p list")
}
