// Package input turns SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is a viewer command triggered by a key.
type Action int

// Viewer actions.
const (
	ActionNone Action = iota
	ActionQuit
	ActionRebuild
	ActionToggleWireframe
)

var keyActions = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE: ActionQuit,
	sdl.SCANCODE_R:      ActionRebuild,
	sdl.SCANCODE_F:      ActionToggleWireframe,
}

// Input collects the actions and held keys of one frame.
type Input struct {
	actions []Action
}

// New creates an input handler.
func New() *Input {
	return &Input{actions: make([]Action, 0, 4)}
}

// Update polls pending SDL events. It returns true when the viewer should quit.
func (i *Input) Update() bool {
	i.actions = i.actions[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			if a, ok := keyActions[e.Keysym.Scancode]; ok {
				if a == ActionQuit {
					return true
				}
				i.actions = append(i.actions, a)
			}
		}
	}
	return false
}

// Triggered reports whether a was requested this frame.
func (i *Input) Triggered(a Action) bool {
	for _, got := range i.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Held reports whether the key is currently down.
func Held(key sdl.Scancode) bool {
	return sdl.GetKeyboardState()[key] != 0
}
