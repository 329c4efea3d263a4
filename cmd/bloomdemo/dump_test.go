package main

import (
	"os"
	"path/filepath"
	"testing"

	"bloom-gl/libio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDumpIsComplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bright.f32")
	img := libio.NewFloatImageSize(3, 16, 8)
	img.Fill(4, 0.5, 0)
	require.NoError(t, writeDump(path, img))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	decoded, err := libio.DecodeFloatImage(file)
	require.NoError(t, err)
	assert.Equal(t, img.Width, decoded.Width)
	assert.Equal(t, img.Height, decoded.Height)
	assert.InDeltaSlice(t, img.Pix, decoded.Pix, 0.01)
}

func TestWriteDumpMissingDirectory(t *testing.T) {
	err := writeDump(filepath.Join(t.TempDir(), "missing", "scene.f32"), libio.NewFloatImageSize(3, 1, 1))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
