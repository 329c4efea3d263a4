package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bloom-gl/config"
	"bloom-gl/effects"
	"bloom-gl/libio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxDifference(t *testing.T) {
	a := libio.NewFloatImage([]float32{0, 0, 0, 1, 1, 1}, 3, 2, 1)
	b := libio.NewFloatImage([]float32{0, 0.1, 0, 1, 0.5, 1}, 3, 2, 1)

	diff, at := maxDifference(a, b)
	assert.InDelta(t, 0.5, diff, 1e-6)
	assert.Equal(t, 1, at)

	diff, at = maxDifference(a, a)
	assert.Equal(t, float32(0), diff)
	assert.Equal(t, -1, at)
}

func TestSoftwareProcessorWritesPng(t *testing.T) {
	dir := t.TempDir()
	scene := libio.NewFloatImageSize(3, 8, 4)
	scene.Fill(0.2, 0.2, 0.2)
	bright := libio.NewFloatImageSize(3, 8, 4)
	bright.Fill(1, 0, 0)

	cfg := effects.DefaultConfig()
	proc, release, err := newProcessor(implSw, cfg, true)
	require.NoError(t, err)
	defer release()
	defer proc.Release()

	out, err := proc.Process(scene, bright, effects.NewBloomState(cfg).Snapshot())
	require.NoError(t, err)

	path := filepath.Join(dir, "out.png")
	require.NoError(t, writePng(path, out))
	assert.FileExists(t, path)
}

func TestUnknownImplementation(t *testing.T) {
	_, _, err := newProcessor("vulkan", effects.DefaultConfig(), true)
	assert.Error(t, err)
}

func TestReadFloatImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.f32")
	img := libio.NewFloatImageSize(3, 4, 4)
	img.Fill(0.5, 2, 8)

	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, libio.EncodeFloatImage(file, img, libio.FloatImageCompressionNone))
	require.NoError(t, file.Close())

	decoded, err := readFloatImage(path)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, decoded.Pix)
	assert.Equal(t, 3, decoded.Channels)

	_, err = readFloatImage(filepath.Join(t.TempDir(), "missing.f32"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFrameImageFallsBackToPng(t *testing.T) {
	dir := t.TempDir()
	img := libio.NewFloatImageSize(3, 2, 2)
	img.Fill(1, 0, 1)
	require.NoError(t, writePng(filepath.Join(dir, "bright.png"), img))

	decoded, err := readFrameImage(dir, "bright")
	require.NoError(t, err)
	assert.Equal(t, 3, decoded.Channels)
	assert.Equal(t, 2, decoded.Width)
	assert.InDeltaSlice(t, img.Pix, decoded.Pix, 1e-6)

	_, err = readFrameImage(dir, "scene")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func withoutContext(t *testing.T) {
	prev := hiddenContext
	hiddenContext = func() (func(), error) {
		return nil, errors.New("no display")
	}
	t.Cleanup(func() { hiddenContext = prev })
}

func TestNewProcessorWithoutFallback(t *testing.T) {
	withoutContext(t)

	proc, release, err := newProcessor(implGl, effects.DefaultConfig(), false)
	assert.EqualError(t, err, "no display")
	assert.Nil(t, proc)
	assert.Nil(t, release)

	proc, release, err = newProcessor(implGl, effects.DefaultConfig(), true)
	require.NoError(t, err)
	release()
	proc.Release()
}

func TestCompareFrameNeedsOpenGL(t *testing.T) {
	withoutContext(t)

	fr := &frame{
		scene:  uniformFrameImage(0.2, 0.2, 0.2),
		bright: uniformFrameImage(1, 0, 0),
		cfg:    config.Default(),
	}
	_, at, err := compareFrame(fr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compare needs an OpenGL 4.5 context")
	assert.Equal(t, -1, at)
}

func uniformFrameImage(rgb ...float32) *libio.FloatImage {
	img := libio.NewFloatImageSize(3, 8, 4)
	img.Fill(rgb...)
	return img
}

func TestWritePngIsDecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, writePng(path, uniformFrameImage(1, 0, 0)))

	decoded, err := readPngImage(path)
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Width)
	assert.Equal(t, 4, decoded.Height)
	assert.InDeltaSlice(t, []float32{1, 0, 0}, decoded.At(3, 2), 1e-6)
}
