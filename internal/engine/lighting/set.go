package lighting

// Set is an ordered, never-empty list of lights with one selected entry.
// The selected light is the one shaded and the one casting shadows.
type Set struct {
	lights   []Light
	selected int
}

// NewSet copies lights into a new set. An empty input yields a set holding
// the default light.
func NewSet(lights []Light) *Set {
	s := &Set{}
	if len(lights) == 0 {
		s.lights = []Light{DefaultLight()}
		return s
	}
	s.lights = append(make([]Light, 0, len(lights)), lights...)
	return s
}

// Len returns the number of lights.
func (s *Set) Len() int {
	return len(s.lights)
}

// SelectedIndex returns the index of the selected light.
func (s *Set) SelectedIndex() int {
	return s.selected
}

// Selected returns the selected light for in-place edits.
func (s *Set) Selected() *Light {
	return &s.lights[s.selected]
}

// At returns light i for in-place edits.
func (s *Set) At(i int) *Light {
	return &s.lights[i]
}

// All returns the lights. The slice must not be resized by callers.
func (s *Set) All() []Light {
	return s.lights
}

// Add appends a default light. The selection does not move.
func (s *Set) Add() {
	s.lights = append(s.lights, DefaultLight())
}

// Remove deletes the selected light. Removing the last remaining light is
// rejected and reported by returning false.
func (s *Set) Remove() bool {
	if len(s.lights) <= 1 {
		return false
	}
	s.lights = append(s.lights[:s.selected], s.lights[s.selected+1:]...)
	if s.selected > len(s.lights)-1 {
		s.selected = len(s.lights) - 1
	}
	return true
}

// Reset replaces every light with a single default light.
func (s *Set) Reset() {
	s.lights = []Light{DefaultLight()}
	s.selected = 0
}

// Replace swaps in a new light list, keeping the selection when it is still
// in range.
func (s *Set) Replace(lights []Light) {
	if len(lights) == 0 {
		s.Reset()
		return
	}
	s.lights = append(make([]Light, 0, len(lights)), lights...)
	if s.selected >= len(s.lights) {
		s.selected = 0
	}
}

// Select makes light i the selected one. Out-of-range indices are ignored.
func (s *Set) Select(i int) bool {
	if i < 0 || i >= len(s.lights) {
		return false
	}
	s.selected = i
	return true
}

// SelectNext advances the selection, wrapping to the first light.
func (s *Set) SelectNext() {
	s.selected = (s.selected + 1) % len(s.lights)
}

// SelectPrevious moves the selection back, wrapping to the last light.
func (s *Set) SelectPrevious() {
	if s.selected == 0 {
		s.selected = len(s.lights) - 1
		return
	}
	s.selected--
}
