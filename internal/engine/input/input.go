// Package input turns SDL2 events into viewer commands and camera gestures.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Command is a viewer action bound to a key.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandTogglePlay
	CommandNext
	CommandPrevious
	CommandFirst
	CommandLast
	CommandOpen
	CommandScreenshot
	CommandResetCamera
)

// Key bindings. Ctrl+O is handled separately since it needs the modifier.
var bindings = map[sdl.Scancode]Command{
	sdl.SCANCODE_ESCAPE: CommandQuit,
	sdl.SCANCODE_SPACE:  CommandTogglePlay,
	sdl.SCANCODE_RIGHT:  CommandNext,
	sdl.SCANCODE_LEFT:   CommandPrevious,
	sdl.SCANCODE_HOME:   CommandFirst,
	sdl.SCANCODE_END:    CommandLast,
	sdl.SCANCODE_F12:    CommandScreenshot,
	sdl.SCANCODE_R:      CommandResetCamera,
}

// MapKey returns the command bound to a key press.
func MapKey(key sdl.Scancode, mod sdl.Keymod) Command {
	if key == sdl.SCANCODE_O && mod&sdl.KMOD_CTRL != 0 {
		return CommandOpen
	}
	return bindings[key]
}

// Input collects one frame's worth of commands and mouse gestures.
type Input struct {
	commands []Command
	dragging bool

	// Mouse deltas since the last Update
	DragX, DragY float32
	Wheel        float32

	Resized       bool
	Width, Height int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		commands: make([]Command, 0, 8),
	}
}

// Update polls SDL events. Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.commands = i.commands[:0]
	i.DragX, i.DragY, i.Wheel = 0, 0, 0
	i.Resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.Resized = true
				i.Width, i.Height = int(e.Data1), int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			cmd := MapKey(e.Keysym.Scancode, sdl.Keymod(e.Keysym.Mod))
			if cmd == CommandQuit {
				return true
			}
			if cmd != CommandNone {
				i.commands = append(i.commands, cmd)
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseMotionEvent:
			if i.dragging {
				i.DragX += float32(e.XRel)
				i.DragY += float32(e.YRel)
			}

		case *sdl.MouseWheelEvent:
			i.Wheel += float32(e.Y)
		}
	}

	return false
}

// Commands returns the commands from the last Update in arrival order.
func (i *Input) Commands() []Command {
	return i.commands
}
