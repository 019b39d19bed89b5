package main

import (
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/remeh/sizedwaitgroup"
)

const maxSounds = 16

// soundCue names a game sound effect. The identifiers follow the host
// client's sound registry so plugins can use familiar names.
type soundCue string

const (
	cuePling   soundCue = "note.pling"
	cueOrb     soundCue = "random.orb"
	cueLevelUp soundCue = "random.levelup"
	cueAnvil   soundCue = "random.anvil_land"
	cueBlaze   soundCue = "mob.blaze.hit"
)

// cuePrograms maps each cue to the MIDI program and base key it renders with.
var cuePrograms = map[soundCue]struct{ program, key int }{
	cuePling:   {program: 12, key: 84},
	cueOrb:     {program: 9, key: 88},
	cueLevelUp: {program: 46, key: 76},
	cueAnvil:   {program: 115, key: 48},
	cueBlaze:   {program: 118, key: 52},
}

type cueSpec struct {
	cue soundCue
	// keyShift is the semitone offset derived from the requested pitch.
	keyShift int
}

var (
	soundMu      sync.Mutex
	audioContext *audio.Context
	soundPlayers = make(map[*audio.Player]struct{})

	cueCacheMu sync.Mutex
	cueCache   = make(map[cueSpec][]byte)
)

// hostWorldSound, when set by the host integration, plays a cue through the
// world-audible path so nearby players hear it too. Nil in standalone runs;
// loud cues then fall back to local playback.
var hostWorldSound func(cue soundCue, pitch, volume float64)

func initSoundContext() {
	audioContext = audio.NewContext(sampleRate)
}

// preloadCues renders every known cue at base pitch so the first playback
// does not stall the tick thread. Rendering is CPU-bound; bound the
// parallelism instead of spawning one goroutine per cue.
func preloadCues() {
	swg := sizedwaitgroup.New(4)
	for cue := range cuePrograms {
		swg.Add()
		go func(c soundCue) {
			defer swg.Done()
			renderCue(c, 1.0)
		}(cue)
	}
	swg.Wait()
}

// renderCue returns cached PCM for the cue at the given pitch, rendering it
// on first use. Pitch maps to a semitone shift of the cue's base key.
func renderCue(cue soundCue, pitch float64) []byte {
	prog, ok := cuePrograms[cue]
	if !ok {
		logDebug("renderCue unknown cue %q", cue)
		return nil
	}
	shift := 0
	if pitch > 0 {
		shift = int(math.Round(12 * math.Log2(pitch)))
	}
	spec := cueSpec{cue: cue, keyShift: shift}

	cueCacheMu.Lock()
	pcm, ok := cueCache[spec]
	cueCacheMu.Unlock()
	if ok {
		return pcm
	}

	key := prog.key + shift
	notes := []Note{{Key: key, Velocity: 120, Start: 0, Duration: 200 * time.Millisecond}}
	left, right, err := renderNotes(prog.program, notes)
	if err != nil {
		left, right = renderTone(key, 120, 200*time.Millisecond)
	}
	pcm = mixPCM(left, right)

	cueCacheMu.Lock()
	cueCache[spec] = pcm
	cueCacheMu.Unlock()
	return pcm
}

// playCue plays a cue locally through the module's own audio context.
func playCue(cue soundCue, pitch, volume float64) {
	if gs.Mute || !gs.GameSound || audioContext == nil {
		return
	}
	pcm := renderCue(cue, pitch)
	if pcm == nil {
		return
	}

	p := audioContext.NewPlayerFromBytes(pcm)
	vol := gs.MasterVolume * gs.GameVolume * volume
	if gs.Mute {
		vol = 0
	}
	p.SetVolume(vol)

	soundMu.Lock()
	for sp := range soundPlayers {
		if !sp.IsPlaying() {
			sp.Close()
			delete(soundPlayers, sp)
		}
	}
	if len(soundPlayers) >= maxSounds {
		soundMu.Unlock()
		logDebug("playCue too many sound players (%d)", len(soundPlayers))
		p.Close()
		return
	}
	soundPlayers[p] = struct{}{}
	soundMu.Unlock()
	p.Play()
}

// stopAllSounds halts and disposes all currently playing audio players.
func stopAllSounds() {
	soundMu.Lock()
	for sp := range soundPlayers {
		_ = sp.Close()
		delete(soundPlayers, sp)
	}
	soundMu.Unlock()
}

func updateSoundVolume() {
	vol := gs.MasterVolume * gs.GameVolume
	if gs.Mute || !gs.GameSound {
		vol = 0
	}
	soundMu.Lock()
	stopped := make([]*audio.Player, 0)
	for sp := range soundPlayers {
		if sp.IsPlaying() {
			sp.SetVolume(vol)
		} else {
			stopped = append(stopped, sp)
		}
	}
	for _, sp := range stopped {
		sp.Close()
		delete(soundPlayers, sp)
	}
	soundMu.Unlock()
}
