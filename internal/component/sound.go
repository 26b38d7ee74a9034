package component

import (
	"fmt"

	"gametemple/internal/ecs"
	"gametemple/internal/sound"
)

// SoundEmitter plays a registered sound for its entity. A looping emitter
// stops its sound when it leaves the entity.
type SoundEmitter struct {
	ecs.Base
	m        *sound.Manager
	name     string
	loop     bool
	autoplay bool
}

// NewSoundEmitter returns an emitter for name. It panics if name is not
// registered with m.
func NewSoundEmitter(m *sound.Manager, name string, loop bool) *SoundEmitter {
	if !m.Has(name) {
		panic(fmt.Sprintf("component: sound %q is not registered", name))
	}
	return &SoundEmitter{m: m, name: name, loop: loop}
}

// PlayOnAttach makes the emitter start as soon as it is attached.
func (s *SoundEmitter) PlayOnAttach() *SoundEmitter {
	s.autoplay = true
	return s
}

func (s *SoundEmitter) Initialize() {
	if s.autoplay {
		s.Trigger()
	}
}

// Trigger plays the sound.
func (s *SoundEmitter) Trigger() { s.m.Play(s.name, s.loop) }

// Stop stops a looping sound.
func (s *SoundEmitter) Stop() { s.m.Stop(s.name) }

func (s *SoundEmitter) Finalize() {
	if s.loop {
		s.m.Stop(s.name)
	}
}
