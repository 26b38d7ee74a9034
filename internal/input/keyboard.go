// Package input turns tcell key events into per-tick key state.
package input

import "github.com/gdamore/tcell/v2"

// Key identifies a key: a named tcell key, or a rune when Code is KeyRune.
type Key struct {
	Code tcell.Key
	Rune rune
}

// Rune returns the Key for a printable character.
func Rune(r rune) Key { return Key{Code: tcell.KeyRune, Rune: r} }

// Code returns the Key for a named key such as tcell.KeyEscape.
func Code(k tcell.Key) Key { return Key{Code: k} }

// KeyOf returns the Key an event refers to.
func KeyOf(ev *tcell.EventKey) Key {
	if ev.Key() == tcell.KeyRune {
		return Rune(ev.Rune())
	}
	return Code(ev.Key())
}

// DefaultGrace is how many ticks a key stays held without a repeat event.
const DefaultGrace = 8

// Keyboard counts, per key, how many consecutive ticks it has been held.
// Terminals report presses and auto-repeats but never releases, so a key
// is treated as released once grace ticks pass without another event.
//
// Feed events as they arrive, then call Tick once per simulation tick
// before anything reads the state.
type Keyboard struct {
	grace   int
	pending map[Key]bool
	frames  map[Key]int
	idle    map[Key]int
}

// NewKeyboard creates a Keyboard. grace <= 0 selects DefaultGrace.
func NewKeyboard(grace int) *Keyboard {
	if grace <= 0 {
		grace = DefaultGrace
	}
	return &Keyboard{
		grace:   grace,
		pending: make(map[Key]bool),
		frames:  make(map[Key]int),
		idle:    make(map[Key]int),
	}
}

// Feed records a key event for the next Tick.
func (k *Keyboard) Feed(ev *tcell.EventKey) {
	k.pending[KeyOf(ev)] = true
}

// Tick advances every key by one tick.
func (k *Keyboard) Tick() {
	for key := range k.pending {
		if _, held := k.frames[key]; !held {
			k.frames[key] = 0
		}
	}
	for key := range k.frames {
		if k.pending[key] {
			k.idle[key] = 0
		} else {
			k.idle[key]++
			if k.idle[key] > k.grace {
				delete(k.frames, key)
				delete(k.idle, key)
				continue
			}
		}
		k.frames[key]++
	}
	clear(k.pending)
}

// Frames returns how many ticks key has been held: 1 on the tick it was
// pressed, 0 when it is up.
func (k *Keyboard) Frames(key Key) int { return k.frames[key] }

// Pressed reports whether key went down this tick.
func (k *Keyboard) Pressed(key Key) bool { return k.frames[key] == 1 }

// Held reports whether key is down.
func (k *Keyboard) Held(key Key) bool { return k.frames[key] > 0 }

// Reset releases every key.
func (k *Keyboard) Reset() {
	clear(k.pending)
	clear(k.frames)
	clear(k.idle)
}
