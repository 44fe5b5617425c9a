package app

import (
	"fmt"

	"github.com/Faultbox/shadelab/internal/engine/shading"
)

// EventKind identifies a state mutation requested by a host.
type EventKind int

const (
	EventNone EventKind = iota
	EventToggleUI
	EventNextFrame
	EventToggleAutoplay
	EventAddLight
	EventRemoveLight
	EventResetLights
	EventNextLight
	EventPrevLight
	EventSelectLight
	EventToggleShadows
	EventTogglePCF
	EventSetDiffuse
	EventSetSpecular
	EventCycleDiffuse
	EventCycleSpecular
	EventScreenshot
	EventQuit
)

var eventNames = map[EventKind]string{
	EventNone:           "none",
	EventToggleUI:       "toggle-ui",
	EventNextFrame:      "next-frame",
	EventToggleAutoplay: "toggle-autoplay",
	EventAddLight:       "add-light",
	EventRemoveLight:    "remove-light",
	EventResetLights:    "reset-lights",
	EventNextLight:      "next-light",
	EventPrevLight:      "prev-light",
	EventSelectLight:    "select-light",
	EventToggleShadows:  "toggle-shadows",
	EventTogglePCF:      "toggle-pcf",
	EventSetDiffuse:     "set-diffuse",
	EventSetSpecular:    "set-specular",
	EventCycleDiffuse:   "cycle-diffuse",
	EventCycleSpecular:  "cycle-specular",
	EventScreenshot:     "screenshot",
	EventQuit:           "quit",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a state mutation. Index, Diffuse and Specular are only read by
// the kinds that name them.
type Event struct {
	Kind     EventKind
	Index    int
	Diffuse  shading.DiffuseMode
	Specular shading.SpecularMode
}

// SelectLight returns an EventSelectLight for light i.
func SelectLight(i int) Event {
	return Event{Kind: EventSelectLight, Index: i}
}

// SetDiffuse returns an EventSetDiffuse for mode m.
func SetDiffuse(m shading.DiffuseMode) Event {
	return Event{Kind: EventSetDiffuse, Diffuse: m}
}

// SetSpecular returns an EventSetSpecular for mode m.
func SetSpecular(m shading.SpecularMode) Event {
	return Event{Kind: EventSetSpecular, Specular: m}
}
