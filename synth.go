package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"
)

const (
	sampleRate = 44100
	// Small render block aligned with common synth effect sizes.
	block = 1024
	// tailSamples extends the rendered length so releases decay naturally.
	tailSamples = sampleRate / 4
)

// Note is a single MIDI note with a start offset and duration.
type Note struct {
	Key      int // MIDI note number (60 = middle C)
	Velocity int // 1..127
	Start    time.Duration
	Duration time.Duration
}

// synthesizer abstracts the subset of meltysynth used by renderNotes.
// Tests may override newSynthesizer to inject a mock.
type synthesizer interface {
	ProcessMidiMessage(channel int32, command int32, data1, data2 int32)
	NoteOn(channel, key, vel int32)
	NoteOff(channel, key int32)
	Render(left, right []float32)
}

var (
	setupSynthOnce sync.Once
	sfntCached     *meltysynth.SoundFont
	synthSettings  *meltysynth.SynthesizerSettings
)

var newSynthesizer = func(sf *meltysynth.SoundFont, settings *meltysynth.SynthesizerSettings) (synthesizer, error) {
	return meltysynth.NewSynthesizer(sf, settings)
}

var errNoSoundFont = errors.New("no soundfont loaded")

func setupSynth() {
	sfPath := filepath.Join(dataDirPath, "soundfont.sf2")
	sfData, err := os.ReadFile(sfPath)
	if err != nil {
		// Cue rendering falls back to plain tones.
		log.Printf("soundfont missing, using tone fallback: %v", err)
		return
	}
	sfnt, err := meltysynth.NewSoundFont(bytes.NewReader(sfData))
	if err != nil {
		logError("parse soundfont: %v", err)
		return
	}
	settings := meltysynth.NewSynthesizerSettings(sampleRate)
	settings.BlockSize = block
	sfntCached = sfnt
	synthSettings = settings
}

// renderNotes renders the notes with the current SoundFont and returns raw
// left and right channel samples. errNoSoundFont when no soundfont.sf2 was
// found; callers fall back to renderTone.
func renderNotes(program int, notes []Note) ([]float32, []float32, error) {
	setupSynthOnce.Do(setupSynth)
	if sfntCached == nil || synthSettings == nil {
		return nil, nil, errNoSoundFont
	}

	const ch = 0
	// Fresh synth per render; the internal state is not safe to share.
	syn, err := newSynthesizer(sfntCached, synthSettings)
	if err != nil {
		return nil, nil, err
	}
	syn.ProcessMidiMessage(ch, 0xC0, int32(program), 0)

	type event struct {
		key, vel   int
		start, end int
	}
	events := make([]event, 0, len(notes))
	maxEnd := 0
	for _, n := range notes {
		start := int(n.Start.Seconds() * sampleRate)
		end := start + int(n.Duration.Seconds()*sampleRate)
		events = append(events, event{key: n.Key, vel: n.Velocity, start: start, end: end})
		if end > maxEnd {
			maxEnd = end
		}
	}
	total := maxEnd + tailSamples

	left := make([]float32, total)
	right := make([]float32, total)
	for pos := 0; pos < total; pos += block {
		for _, e := range events {
			if e.start >= pos && e.start < pos+block {
				syn.NoteOn(ch, int32(e.key), int32(e.vel))
			}
			if e.end >= pos && e.end < pos+block {
				syn.NoteOff(ch, int32(e.key))
			}
		}
		end := pos + block
		if end > total {
			end = total
		}
		syn.Render(left[pos:end], right[pos:end])
	}
	return left, right, nil
}

// renderTone synthesizes a plucked tone at the given MIDI key. Used when no
// SoundFont is available.
func renderTone(key int, velocity int, dur time.Duration) ([]float32, []float32) {
	freq := 440 * math.Pow(2, float64(key-69)/12)
	total := int(dur.Seconds()*sampleRate) + tailSamples
	amp := float64(velocity) / 127 * 0.6
	left := make([]float32, total)
	for i := 0; i < total; i++ {
		t := float64(i) / sampleRate
		env := math.Exp(-4 * t / dur.Seconds())
		v := math.Sin(2*math.Pi*freq*t) + 0.35*math.Sin(4*math.Pi*freq*t)
		left[i] = float32(amp * env * v)
	}
	right := make([]float32, total)
	copy(right, left)
	return left, right
}

// mixPCM interleaves float samples into 16-bit little-endian stereo PCM with
// peak normalization.
func mixPCM(left, right []float32) []byte {
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	if n == 0 {
		return nil
	}
	peak := float32(0)
	for i := 0; i < n; i++ {
		var l, r float32
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		if a := float32(math.Abs(float64(l))); a > peak {
			peak = a
		}
		if a := float32(math.Abs(float64(r))); a > peak {
			peak = a
		}
	}
	scale := float32(1)
	if peak > 1 {
		scale = 1 / peak
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		var l, r float32
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		lv := int32(l * scale * 32767)
		rv := int32(r * scale * 32767)
		if lv > 32767 {
			lv = 32767
		} else if lv < -32768 {
			lv = -32768
		}
		if rv > 32767 {
			rv = 32767
		} else if rv < -32768 {
			rv = -32768
		}
		binary.LittleEndian.PutUint16(out[4*i:], uint16(int16(lv)))
		binary.LittleEndian.PutUint16(out[4*i+2:], uint16(int16(rv)))
	}
	return out
}
