package model

import "time"

// DefaultFrameDuration is how long each animation frame stays on screen.
const DefaultFrameDuration = 100 * time.Millisecond

// Animator owns the current frame index of a FrameSet. It records whether the
// index changed so GPU buffers are rebuilt once per change.
type Animator struct {
	count         int
	frameDuration time.Duration
	autoplay      bool

	current     int
	accumulator time.Duration
	dirty       bool
}

// NewAnimator creates an animator for count frames. It starts dirty so the
// first frame is uploaded.
func NewAnimator(count int, frameDuration time.Duration, autoplay bool) *Animator {
	if count < 1 {
		count = 1
	}
	if frameDuration <= 0 {
		frameDuration = DefaultFrameDuration
	}
	return &Animator{
		count:         count,
		frameDuration: frameDuration,
		autoplay:      autoplay,
		dirty:         true,
	}
}

// Update adds dt to the accumulator and advances by every whole frame
// duration it contains. It returns the number of advances.
func (a *Animator) Update(dt time.Duration) int {
	if !a.autoplay || a.count < 2 || dt <= 0 {
		return 0
	}

	a.accumulator += dt
	n := int(a.accumulator / a.frameDuration)
	if n == 0 {
		return 0
	}
	a.accumulator -= time.Duration(n) * a.frameDuration
	a.setCurrent((a.current + n) % a.count)
	return n
}

// Step advances one frame, wrapping at the end.
func (a *Animator) Step() {
	a.setCurrent((a.current + 1) % a.count)
}

func (a *Animator) setCurrent(i int) {
	if i != a.current {
		a.dirty = true
	}
	a.current = i
}

// Current returns the current frame index.
func (a *Animator) Current() int {
	return a.current
}

// Count returns the number of frames.
func (a *Animator) Count() int {
	return a.count
}

// FrameDuration returns the time per frame.
func (a *Animator) FrameDuration() time.Duration {
	return a.frameDuration
}

// Autoplay reports whether Update advances frames.
func (a *Animator) Autoplay() bool {
	return a.autoplay
}

// SetAutoplay enables or disables time-based advancing.
func (a *Animator) SetAutoplay(on bool) {
	a.autoplay = on
	a.accumulator = 0
}

// TakeDirty reports whether the frame changed since the last call and clears
// the flag.
func (a *Animator) TakeDirty() bool {
	d := a.dirty
	a.dirty = false
	return d
}

// MarkDirty forces the next TakeDirty to return true.
func (a *Animator) MarkDirty() {
	a.dirty = true
}
