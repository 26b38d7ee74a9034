package render

import "fmt"

// Sheets caches named glyph sheets. A sheet is an ordered list of frames;
// single-glyph sprites are one-frame sheets. Names are registered once at
// load time, and every lookup of an unknown name is a wiring bug.
type Sheets struct {
	sheets map[string][]string
}

// NewSheets returns an empty cache.
func NewSheets() *Sheets {
	return &Sheets{sheets: make(map[string][]string)}
}

// Load registers frames under name. It panics if name is taken or no
// frames are given.
func (s *Sheets) Load(name string, frames ...string) {
	if _, ok := s.sheets[name]; ok {
		panic(fmt.Sprintf("render: sheet %q already loaded", name))
	}
	if len(frames) == 0 {
		panic(fmt.Sprintf("render: sheet %q has no frames", name))
	}
	s.sheets[name] = append([]string(nil), frames...)
}

// Has reports whether name is registered.
func (s *Sheets) Has(name string) bool {
	_, ok := s.sheets[name]
	return ok
}

// Len returns the frame count of name, or 0 if it is unknown.
func (s *Sheets) Len(name string) int { return len(s.sheets[name]) }

// Frame returns frame i of name.
func (s *Sheets) Frame(name string, i int) string {
	frames, ok := s.sheets[name]
	if !ok {
		panic(fmt.Sprintf("render: sheet %q is not loaded", name))
	}
	if i < 0 || i >= len(frames) {
		panic(fmt.Sprintf("render: sheet %q frame %d out of range (%d frames)", name, i, len(frames)))
	}
	return frames[i]
}
