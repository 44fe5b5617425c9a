package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureFromPixelsFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "shadelab")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shadelab_2024-05-01_12-00-00_001.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), b, "top row comes from the last GL row")
	r, _, _, _ = img.At(0, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestCaptureNumbersFiles(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "shot")
	pixels := make([]byte, 4)

	first, err := sc.CaptureFromPixels(pixels, 1, 1)
	require.NoError(t, err)
	second, err := sc.CaptureFromPixels(pixels, 1, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCaptureFromPixelsRejectsBadInput(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "shot")

	_, err := sc.CaptureFromPixels(make([]byte, 3), 1, 1)
	assert.ErrorContains(t, err, "size mismatch")

	_, err = sc.CaptureFromPixels(nil, 0, 0)
	assert.ErrorContains(t, err, "invalid screenshot size")
}
