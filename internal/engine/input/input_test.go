package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		name string
		key  sdl.Scancode
		mod  sdl.Keymod
		want Command
	}{
		{"escape quits", sdl.SCANCODE_ESCAPE, sdl.KMOD_NONE, CommandQuit},
		{"space toggles", sdl.SCANCODE_SPACE, sdl.KMOD_NONE, CommandTogglePlay},
		{"right steps forward", sdl.SCANCODE_RIGHT, sdl.KMOD_NONE, CommandNext},
		{"left steps back", sdl.SCANCODE_LEFT, sdl.KMOD_NONE, CommandPrevious},
		{"home", sdl.SCANCODE_HOME, sdl.KMOD_NONE, CommandFirst},
		{"end", sdl.SCANCODE_END, sdl.KMOD_NONE, CommandLast},
		{"f12 screenshot", sdl.SCANCODE_F12, sdl.KMOD_NONE, CommandScreenshot},
		{"r resets camera", sdl.SCANCODE_R, sdl.KMOD_NONE, CommandResetCamera},
		{"ctrl+o opens", sdl.SCANCODE_O, sdl.KMOD_LCTRL, CommandOpen},
		{"right ctrl+o opens", sdl.SCANCODE_O, sdl.KMOD_RCTRL, CommandOpen},
		{"o alone is unbound", sdl.SCANCODE_O, sdl.KMOD_NONE, CommandNone},
		{"shift+o is unbound", sdl.SCANCODE_O, sdl.KMOD_LSHIFT, CommandNone},
		{"unbound key", sdl.SCANCODE_Q, sdl.KMOD_NONE, CommandNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapKey(tt.key, tt.mod); got != tt.want {
				t.Errorf("MapKey(%d, %d) = %d, want %d", tt.key, tt.mod, got, tt.want)
			}
		})
	}
}
