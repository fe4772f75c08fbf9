// Package audio provides the optional sound feedback for a typing
// round. All sounds are synthesized, so no sample assets ship with the
// binary.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

const (
	mistakeDuration  = 120 * time.Millisecond
	completeDuration = 350 * time.Millisecond
	attackTime       = 5 * time.Millisecond
)

// Player owns the speaker and mixes short one-shot cues into it.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the audio device. Safe to call more than once.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences the mixer. beep has no speaker teardown, so draining
// the mixer is the whole cleanup.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.mixer.Clear()
	p.initialized = false
}

// Mistake plays a short low buzz for a mistyped character.
func (p *Player) Mistake() {
	p.play(mistakeCue())
}

// Complete plays a two-tone chime when the text is finished.
func (p *Player) Complete() {
	p.play(completeCue())
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.mixer.Add(s)
}

func mistakeCue() beep.Streamer {
	osc := newOscillator(110, mistakeDuration, waveSaw)
	shaped := newEnvelope(osc, mistakeDuration, attackTime, 60*time.Millisecond)
	return withVolume(shaped, 0.4)
}

func completeCue() beep.Streamer {
	fund := newEnvelope(newOscillator(880, completeDuration, waveSine),
		completeDuration, attackTime, 250*time.Millisecond)
	over := newEnvelope(newOscillator(1760, completeDuration, waveSine),
		completeDuration, attackTime, 150*time.Millisecond)
	return withVolume(beep.Mix(withVolume(fund, 0.7), withVolume(over, 0.3)), 0.5)
}

// math.Log2(0) is -Inf, so zero volume maps to the Silent flag instead.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
