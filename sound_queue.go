package main

import "sync"

// queuedSound is a sound waiting out a tick delay before playback. Callers
// learn "play X in N ticks" well before the moment arrives; queueing avoids
// a timer per sound and keeps dispatch on the tick thread.
type queuedSound struct {
	cue    soundCue
	pitch  float64
	volume float64
	// ticks remaining until dispatch; decremented once per client tick.
	ticks int
	// loud sounds go through the world-audible path so others hear them.
	loud bool
}

var (
	soundQueueMu sync.Mutex
	soundQueue   []*queuedSound
)

// dispatchSound plays a due queue entry. Variable so tests can intercept.
var dispatchSound = func(q queuedSound) {
	if q.loud && hostWorldSound != nil {
		hostWorldSound(q.cue, q.pitch, q.volume)
		return
	}
	playCue(q.cue, q.pitch, q.volume)
}

// enqueueSound appends a sound to the delay queue. Safe to call from any
// goroutine; background command flows enqueue from their own timers.
func enqueueSound(q queuedSound) {
	if q.pitch <= 0 {
		q.pitch = 1
	}
	if q.volume <= 0 {
		q.volume = 1
	}
	soundQueueMu.Lock()
	soundQueue = append(soundQueue, &q)
	soundQueueMu.Unlock()
}

// tickSoundQueue runs once per client tick: every pending entry is
// decremented, and entries that reach zero are dispatched and removed.
// Skipped entirely when there is no active player.
func tickSoundQueue() {
	if playerName == "" {
		return
	}
	soundQueueMu.Lock()
	if len(soundQueue) == 0 {
		soundQueueMu.Unlock()
		return
	}
	due := make([]*queuedSound, 0, len(soundQueue))
	kept := soundQueue[:0]
	for _, q := range soundQueue {
		q.ticks--
		if q.ticks <= 0 {
			due = append(due, q)
		} else {
			kept = append(kept, q)
		}
	}
	for i := len(kept); i < len(soundQueue); i++ {
		soundQueue[i] = nil
	}
	soundQueue = kept
	soundQueueMu.Unlock()

	for _, q := range due {
		dispatchSound(*q)
	}
}
