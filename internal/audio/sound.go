// Package audio plays short synthesized sound effects for session events.
// Everything degrades to a no-op when no audio device is available.
package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/skyflap/internal/games/flappy"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager owns the speaker mixer and the mute switch.
// It implements flappy.Listener so it can be attached to a session directly.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	enabled     atomic.Bool
	played      atomic.Int64
}

var _ flappy.Listener = (*SoundManager)(nil)

// NewSoundManager creates an uninitialized, enabled sound manager.
func NewSoundManager() *SoundManager {
	sm := &SoundManager{
		mixer: &beep.Mixer{},
	}
	sm.enabled.Store(true)
	return sm
}

// Initialize opens the speaker. Calling it twice is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Enabled reports whether effects are audible.
func (sm *SoundManager) Enabled() bool {
	return sm.enabled.Load()
}

// SetEnabled mutes or unmutes effects.
func (sm *SoundManager) SetEnabled(on bool) {
	sm.enabled.Store(on)
}

// Toggle flips the mute switch and returns the new state.
func (sm *SoundManager) Toggle() bool {
	for {
		cur := sm.enabled.Load()
		if sm.enabled.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// Played returns how many effects were sent to the speaker.
func (sm *SoundManager) Played() int64 {
	return sm.played.Load()
}

func (sm *SoundManager) play(s beep.Streamer) {
	if !sm.enabled.Load() {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played.Add(1)
}

// PlayJump plays a short rising chirp.
func (sm *SoundManager) PlayJump() {
	sm.play(beep.Take(sampleRate.N(90*time.Millisecond), NewChirpGenerator(sampleRate, 420, 780, 0.18)))
}

// PlayCoin plays a two-note ding.
func (sm *SoundManager) PlayCoin() {
	sm.play(beep.Seq(
		beep.Take(sampleRate.N(60*time.Millisecond), NewToneGenerator(sampleRate, 988, 0.15)),
		beep.Take(sampleRate.N(140*time.Millisecond), NewToneGenerator(sampleRate, 1319, 0.15)),
	))
}

// PlayFail plays a falling buzz.
func (sm *SoundManager) PlayFail() {
	sm.play(beep.Take(sampleRate.N(400*time.Millisecond), NewChirpGenerator(sampleRate, 330, 90, 0.22)))
}

func (sm *SoundManager) OnJump() {
	sm.PlayJump()
}

func (sm *SoundManager) OnScorePass(int) {
	sm.PlayCoin()
}

func (sm *SoundManager) OnGameOver(flappy.GameOver) {
	sm.PlayFail()
}

// ChirpGenerator sweeps linearly from one frequency to another over its length,
// with a short fade in and an exponential tail.
type ChirpGenerator struct {
	sr       beep.SampleRate
	from, to float64
	volume   float64
	length   int
	pos      int
	phase    float64
}

// NewChirpGenerator creates a chirp lasting roughly as long as the Take wrapped around it.
func NewChirpGenerator(sr beep.SampleRate, from, to, volume float64) *ChirpGenerator {
	return &ChirpGenerator{
		sr:     sr,
		from:   from,
		to:     to,
		volume: volume,
		length: sr.N(400 * time.Millisecond),
	}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.length), 1)
		freq := g.from + (g.to-g.from)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		t := float64(g.pos) / float64(g.sr)
		envelope := math.Min(t/0.005, 1) * math.Exp(-t*6)
		sample := g.volume * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}

// ToneGenerator produces a sine tone with a soft attack.
type ToneGenerator struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	pos    int
}

// NewToneGenerator creates a tone generator.
func NewToneGenerator(sr beep.SampleRate, freq, volume float64) *ToneGenerator {
	return &ToneGenerator{
		sr:     sr,
		freq:   freq,
		volume: volume,
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Min(t/0.003, 1)
		sample := g.volume * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
