// Package audio plays the game's sound effects through beep's speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager mixes short effects into a single speaker stream.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: -1,
	}
}

// Initialize opens the audio device. A failure leaves the manager silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything still playing.
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

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(&effects.Volume{Streamer: s, Base: 2, Volume: sm.volume})
	speaker.Unlock()
}

// PlayJump plays a short rising chirp.
func (sm *SoundManager) PlayJump() {
	sm.play(NewSweep(sampleRate, 320, 760, 90*time.Millisecond, WaveSquare))
}

// PlayGameOver plays a falling tone followed by a low buzz.
func (sm *SoundManager) PlayGameOver() {
	sm.play(beep.Seq(
		NewSweep(sampleRate, 600, 140, 350*time.Millisecond, WaveSaw),
		NewSweep(sampleRate, 90, 90, 200*time.Millisecond, WaveSquare),
	))
}

// PlayStart plays two quick ascending blips.
func (sm *SoundManager) PlayStart() {
	sm.play(beep.Seq(
		NewSweep(sampleRate, 440, 440, 60*time.Millisecond, WaveSine),
		beep.Silence(sampleRate.N(30*time.Millisecond)),
		NewSweep(sampleRate, 660, 660, 80*time.Millisecond, WaveSine),
	))
}
