// Package sound plays named sounds through a beep mixer.
//
// Sounds are registered once under a name, the way images are registered
// in render.Sheets, and played by name from components. The speaker is
// only opened by Start, so a Manager that is never started (tests, SSH
// sessions, -mute) still accepts every call and simply mixes into nothing.
package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the rate every generator in this package produces.
const SampleRate = beep.SampleRate(48000)

// Factory builds a fresh streamer for one playback. Looping sounds must
// return a streamer that never runs dry.
type Factory func() beep.Streamer

// Manager owns the mixer and the sound registry.
type Manager struct {
	mu      sync.Mutex
	sounds  map[string]Factory
	playing map[string]*beep.Ctrl
	mixer   *beep.Mixer
	volume  *effects.Volume
	started bool
	scratch [][2]float64
}

// NewManager creates a Manager with an empty registry at full volume.
func NewManager() *Manager {
	mixer := &beep.Mixer{}
	return &Manager{
		sounds:  make(map[string]Factory),
		playing: make(map[string]*beep.Ctrl),
		mixer:   mixer,
		volume:  &effects.Volume{Streamer: mixer, Base: 2},
	}
}

// Start opens the audio device and starts streaming the mixer.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.volume)
	m.started = true
	return nil
}

// Close stops every sound and detaches the mixer from the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.withSpeaker(func() {
		for _, ctrl := range m.playing {
			ctrl.Paused = true
		}
		m.mixer.Clear()
	})
	clear(m.playing)
	if m.started {
		speaker.Clear()
		m.started = false
	}
}

// Register adds a sound under name. It panics if name is taken.
func (m *Manager) Register(name string, f Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sounds[name]; ok {
		panic(fmt.Sprintf("sound: %q already registered", name))
	}
	m.sounds[name] = f
}

// Has reports whether name is registered.
func (m *Manager) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sounds[name]
	return ok
}

// Play starts name. A looping sound that is already playing keeps playing;
// a one-shot sound overlaps with earlier plays. Unknown names panic.
func (m *Manager) Play(name string, loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.sounds[name]
	if !ok {
		panic(fmt.Sprintf("sound: %q is not registered", name))
	}
	if ctrl, ok := m.playing[name]; ok && loop && !ctrl.Paused {
		return
	}
	ctrl := &beep.Ctrl{Streamer: f()}
	if loop {
		m.playing[name] = ctrl
	}
	m.withSpeaker(func() { m.mixer.Add(ctrl) })
}

// Stop ends a looping sound started by Play. The mixer drops it on its
// next pass.
func (m *Manager) Stop(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctrl, ok := m.playing[name]
	if !ok {
		return
	}
	m.withSpeaker(func() { ctrl.Streamer = nil })
	delete(m.playing, name)
}

// Playing reports whether the looping sound name is playing.
func (m *Manager) Playing(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctrl, ok := m.playing[name]
	return ok && !ctrl.Paused
}

// SetVolume sets the master gain in [0, 1]. Zero silences output.
func (m *Manager) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.withSpeaker(func() {
		m.volume.Silent = v == 0
		// Base 2: -1 halves the amplitude.
		m.volume.Volume = volumeExponent(v)
	})
}

// Discard advances the mixer by d without output, so one-shot sounds
// finish and leave the mixer while no device is open. It does nothing
// once Start has succeeded.
func (m *Manager) Discard(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	n := SampleRate.N(d)
	if cap(m.scratch) < n {
		m.scratch = make([][2]float64, n)
	}
	m.volume.Stream(m.scratch[:n])
}

// Streamer exposes the master output, mostly for tests.
func (m *Manager) Streamer() beep.Streamer { return m.volume }

// Active returns the number of streamers currently in the mixer.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	m.withSpeaker(func() { n = m.mixer.Len() })
	return n
}

// withSpeaker runs f under the speaker lock once the device is streaming.
// Caller holds m.mu.
func (m *Manager) withSpeaker(f func()) {
	if m.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	f()
}
