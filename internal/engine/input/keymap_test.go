package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/shadelab/internal/app"
)

func TestKeymapTranslate(t *testing.T) {
	km := DefaultKeymap()

	events := []Event{
		{Type: EventKeyDown, Key: sdl.SCANCODE_BACKSLASH},
		{Type: EventKeyUp, Key: sdl.SCANCODE_BACKSLASH},
		{Type: EventMouseMove, DeltaX: 3},
		{Type: EventKeyDown, Key: sdl.SCANCODE_RIGHT},
		{Type: EventKeyDown, Key: sdl.SCANCODE_RIGHT, Repeat: true},
		{Type: EventKeyDown, Key: sdl.SCANCODE_S, Repeat: true},
		{Type: EventKeyDown, Key: sdl.SCANCODE_Z},
		{Type: EventKeyDown, Key: sdl.SCANCODE_F12},
	}

	got := km.Translate(events)
	want := []app.Event{
		{Kind: app.EventToggleUI},
		{Kind: app.EventNextFrame},
		{Kind: app.EventNextFrame},
		{Kind: app.EventScreenshot},
	}
	assert.Equal(t, want, got)
}

func TestDefaultKeymapCoversControls(t *testing.T) {
	km := DefaultKeymap()
	kinds := make(map[app.EventKind]bool)
	for _, ev := range km {
		kinds[ev.Kind] = true
	}
	for _, k := range []app.EventKind{
		app.EventToggleUI, app.EventNextFrame, app.EventToggleShadows, app.EventTogglePCF,
		app.EventCycleDiffuse, app.EventCycleSpecular, app.EventNextLight, app.EventPrevLight,
		app.EventAddLight, app.EventRemoveLight, app.EventResetLights, app.EventScreenshot, app.EventQuit,
	} {
		assert.True(t, kinds[k], "no key bound to %s", k)
	}
}
