package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePng(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func TestLoadImageCaches(t *testing.T) {
	dir := t.TempDir()
	writePng(t, filepath.Join(dir, "red.png"), 4, 2, color.RGBA{255, 0, 0, 255})

	l, err := NewLoader(dir, 2)
	require.NoError(t, err)

	img, err := l.LoadImage("red.png")
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 2), img.Rect.Size())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(3, 1))

	again, err := l.LoadImage("red.png")
	require.NoError(t, err)
	assert.Same(t, img, again)
	assert.Equal(t, 1, l.Cached())
}

func TestLoadImageEvictsOldest(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		writePng(t, filepath.Join(dir, name), 1, 1, color.RGBA{A: 255})
	}
	l, err := NewLoader(dir, 2)
	require.NoError(t, err)

	for _, name := range []string{"a.png", "b.png", "c.png"} {
		_, err := l.LoadImage(name)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, l.Cached())
}

func TestLoadImageErrorNamesPath(t *testing.T) {
	l, err := NewLoader(t.TempDir(), 4)
	require.NoError(t, err)

	_, err = l.LoadImage("missing.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.jpg")
}

func TestLoadImageRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	l, err := NewLoader(dir, 4)
	require.NoError(t, err)

	_, err = l.LoadImage("sub")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFacesResizesMismatched(t *testing.T) {
	dir := t.TempDir()
	names := [6]string{"px.png", "nx.png", "py.png", "ny.png", "pz.png", "nz.png"}
	for i, name := range names {
		size := 8
		if i == 3 {
			size = 4
		}
		writePng(t, filepath.Join(dir, name), size, size, color.RGBA{0, 128, 255, 255})
	}
	l, err := NewLoader(dir, 8)
	require.NoError(t, err)

	faces, err := l.LoadFaces(names)
	require.NoError(t, err)
	for _, face := range faces {
		assert.Equal(t, image.Pt(8, 8), face.Rect.Size())
	}
	c := faces[3].RGBAAt(4, 4)
	assert.InDelta(t, 0, int(c.R), 1)
	assert.InDelta(t, 128, int(c.G), 1)
	assert.InDelta(t, 255, int(c.B), 1)
}

func TestLoadFacesRejectsNonSquare(t *testing.T) {
	dir := t.TempDir()
	var names [6]string
	for i := range names {
		names[i] = filepath.Join(dir, "face.png")
	}
	writePng(t, names[0], 8, 4, color.RGBA{A: 255})
	l, err := NewLoader("", 8)
	require.NoError(t, err)

	_, err = l.LoadFaces(names)
	assert.ErrorIs(t, err, ErrFaceSize)
}

func TestFlipV(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.SetRGBA(1, 0, color.RGBA{R: 10, A: 255})
	img.SetRGBA(0, 2, color.RGBA{G: 20, A: 255})

	flipped := FlipV(img)
	assert.Equal(t, color.RGBA{R: 10, A: 255}, flipped.RGBAAt(1, 2))
	assert.Equal(t, color.RGBA{G: 20, A: 255}, flipped.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 10, A: 255}, img.RGBAAt(1, 0))
}

func TestSolid(t *testing.T) {
	img := Solid(1, 2, 3, 4)
	assert.Equal(t, image.Pt(1, 1), img.Rect.Size())
	assert.Equal(t, []uint8{1, 2, 3, 4}, img.Pix)
}

func TestNewLoaderRejectsZeroCache(t *testing.T) {
	_, err := NewLoader("", 0)
	assert.Error(t, err)
}
