package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shadelab/internal/engine/model"
	"github.com/Faultbox/shadelab/internal/logger"
)

// MeshSlot owns the GPU buffers of the frame currently on screen.
type MeshSlot struct {
	buffers  MeshBuffers
	frame    int
	rebuilds int
}

// Sync uploads the animator's current frame when it changed since the last
// call. The old buffers are released only after the new upload succeeds.
func (s *MeshSlot) Sync(dev Device, anim *model.Animator, frames *model.FrameSet) error {
	if !anim.TakeDirty() && s.buffers != nil {
		return nil
	}

	idx := anim.Current()
	b, err := dev.UploadMesh(frames.At(idx))
	if err != nil {
		anim.MarkDirty()
		return fmt.Errorf("uploading frame %d: %w", idx, err)
	}
	if s.buffers != nil {
		s.buffers.Release()
	}
	s.buffers = b
	s.frame = idx
	s.rebuilds++

	logger.Debug("mesh buffers rebuilt",
		zap.Int("frame", idx),
		zap.Int32("indices", b.IndexCount()))
	return nil
}

// Buffers returns the resident buffers, or nil before the first Sync.
func (s *MeshSlot) Buffers() MeshBuffers {
	return s.buffers
}

// Frame returns the index of the uploaded frame.
func (s *MeshSlot) Frame() int {
	return s.frame
}

// Rebuilds counts successful uploads.
func (s *MeshSlot) Rebuilds() int {
	return s.rebuilds
}

// Release frees the resident buffers.
func (s *MeshSlot) Release() {
	if s.buffers != nil {
		s.buffers.Release()
		s.buffers = nil
	}
}
