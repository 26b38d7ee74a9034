package game

import (
	"gametemple/internal/input"

	"github.com/gdamore/tcell/v2"
)

// Action is a player intent bound to one or more keys.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionDrop
	ActionQuit
)

// bindings maps keys to actions. Letters are bound in both cases.
var bindings = map[input.Key]Action{
	input.Code(tcell.KeyLeft):   ActionMoveLeft,
	input.Code(tcell.KeyRight):  ActionMoveRight,
	input.Code(tcell.KeyUp):     ActionJump,
	input.Code(tcell.KeyEscape): ActionQuit,
	input.Code(tcell.KeyCtrlC):  ActionQuit,
	input.Rune('h'):             ActionMoveLeft,
	input.Rune('H'):             ActionMoveLeft,
	input.Rune('a'):             ActionMoveLeft,
	input.Rune('A'):             ActionMoveLeft,
	input.Rune('l'):             ActionMoveRight,
	input.Rune('L'):             ActionMoveRight,
	input.Rune('d'):             ActionMoveRight,
	input.Rune('D'):             ActionMoveRight,
	input.Rune(' '):             ActionJump,
	input.Rune('k'):             ActionJump,
	input.Rune('K'):             ActionJump,
	input.Rune('z'):             ActionDrop,
	input.Rune('Z'):             ActionDrop,
	input.Rune('q'):             ActionQuit,
	input.Rune('Q'):             ActionQuit,
}

// Held reports whether any key bound to a is held.
func (g *Game) Held(a Action) bool {
	for k, b := range bindings {
		if b == a && g.keys.Held(k) {
			return true
		}
	}
	return false
}

// Pressed reports whether any key bound to a went down this tick.
func (g *Game) Pressed(a Action) bool {
	for k, b := range bindings {
		if b == a && g.keys.Pressed(k) {
			return true
		}
	}
	return false
}

// actionToDelta converts a movement action to a horizontal step.
func actionToDelta(a Action) float32 {
	switch a {
	case ActionMoveLeft:
		return -1
	case ActionMoveRight:
		return 1
	}
	return 0
}
