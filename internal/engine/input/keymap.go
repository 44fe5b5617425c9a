package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/shadelab/internal/app"
)

// Keymap binds scancodes to viewer events.
type Keymap map[sdl.Scancode]app.Event

// DefaultKeymap returns the keyboard-only bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		sdl.SCANCODE_BACKSLASH: {Kind: app.EventToggleUI},
		sdl.SCANCODE_RIGHT:     {Kind: app.EventNextFrame},
		sdl.SCANCODE_SPACE:     {Kind: app.EventToggleAutoplay},
		sdl.SCANCODE_S:         {Kind: app.EventToggleShadows},
		sdl.SCANCODE_P:         {Kind: app.EventTogglePCF},
		sdl.SCANCODE_D:         {Kind: app.EventCycleDiffuse},
		sdl.SCANCODE_F:         {Kind: app.EventCycleSpecular},
		sdl.SCANCODE_N:         {Kind: app.EventNextLight},
		sdl.SCANCODE_B:         {Kind: app.EventPrevLight},
		sdl.SCANCODE_A:         {Kind: app.EventAddLight},
		sdl.SCANCODE_R:         {Kind: app.EventRemoveLight},
		sdl.SCANCODE_0:         {Kind: app.EventResetLights},
		sdl.SCANCODE_F12:       {Kind: app.EventScreenshot},
		sdl.SCANCODE_ESCAPE:    {Kind: app.EventQuit},
	}
}

// Translate returns the viewer events bound to the key presses in events.
// Auto-repeat only fires EventNextFrame so a held arrow scrubs.
func (k Keymap) Translate(events []Event) []app.Event {
	var out []app.Event
	for _, e := range events {
		if e.Type != EventKeyDown {
			continue
		}
		ev, ok := k[e.Key]
		if !ok {
			continue
		}
		if e.Repeat && ev.Kind != app.EventNextFrame {
			continue
		}
		out = append(out, ev)
	}
	return out
}
