package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func press(k *Keyboard, r rune) {
	k.Feed(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func TestPressThenHold(t *testing.T) {
	k := NewKeyboard(2)
	z := Rune('z')

	press(k, 'z')
	k.Tick()
	if !k.Pressed(z) || k.Frames(z) != 1 {
		t.Fatalf("after press: Frames=%d Pressed=%v; want 1,true", k.Frames(z), k.Pressed(z))
	}

	press(k, 'z') // auto-repeat
	k.Tick()
	if k.Pressed(z) || k.Frames(z) != 2 || !k.Held(z) {
		t.Fatalf("after repeat: Frames=%d Pressed=%v; want 2,false", k.Frames(z), k.Pressed(z))
	}
}

func TestReleaseAfterGrace(t *testing.T) {
	k := NewKeyboard(2)
	z := Rune('z')
	press(k, 'z')
	k.Tick()

	k.Tick()
	k.Tick()
	if !k.Held(z) {
		t.Fatal("released inside the grace window")
	}
	k.Tick()
	if k.Held(z) || k.Frames(z) != 0 {
		t.Fatalf("Frames = %d after grace; want 0", k.Frames(z))
	}

	press(k, 'z')
	k.Tick()
	if !k.Pressed(z) {
		t.Fatal("second press not reported as a fresh press")
	}
}

func TestNamedKeys(t *testing.T) {
	k := NewKeyboard(0)
	k.Feed(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	k.Tick()
	if !k.Pressed(Code(tcell.KeyEscape)) {
		t.Fatal("Escape not pressed")
	}
	if k.Held(Rune('q')) {
		t.Fatal("q held without an event")
	}
	k.Reset()
	if k.Held(Code(tcell.KeyEscape)) {
		t.Fatal("Reset left Escape held")
	}
}

func TestKeysBeforeTickAreInvisible(t *testing.T) {
	k := NewKeyboard(0)
	press(k, 'x')
	if k.Held(Rune('x')) {
		t.Fatal("key visible before Tick")
	}
}
