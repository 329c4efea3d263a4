package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"bloom-gl/log"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/draw"
)

var logger = log.New("assets")

var ErrFaceSize = errors.New("cubemap faces differ in size")

// Loader decodes images relative to a root directory and keeps the most
// recently used decoded images in memory.
type Loader struct {
	root  string
	cache *lru.Cache[string, *image.RGBA]
}

func NewLoader(root string, cacheSize int) (*Loader, error) {
	cache, err := lru.New[string, *image.RGBA](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("could not create image cache: %w", err)
	}
	return &Loader{root: root, cache: cache}, nil
}

func (l *Loader) Root() string {
	return l.root
}

func (l *Loader) Resolve(name string) string {
	if filepath.IsAbs(name) || l.root == "" {
		return name
	}
	return filepath.Join(l.root, name)
}

// LoadImage decodes a png or jpeg file into RGBA with the first row at the top.
// The returned image is shared with the cache and must not be modified.
func (l *Loader) LoadImage(name string) (*image.RGBA, error) {
	p := l.Resolve(name)
	if img, ok := l.cache.Get(p); ok {
		return img, nil
	}

	img, err := decodeFile(p)
	if err != nil {
		return nil, fmt.Errorf("could not load image %s: %w", p, err)
	}
	l.cache.Add(p, img)
	logger.Debugf("decoded %s (%dx%d)", p, img.Rect.Dx(), img.Rect.Dy())
	return img, nil
}

// LoadFaces loads six cubemap faces in +X, -X, +Y, -Y, +Z, -Z order.
// All faces must be square and share the size of the first face.
func (l *Loader) LoadFaces(names [6]string) ([6]*image.RGBA, error) {
	var faces [6]*image.RGBA
	for i, name := range names {
		img, err := l.LoadImage(name)
		if err != nil {
			return faces, err
		}
		faces[i] = img
	}
	size := faces[0].Rect.Size()
	if size.X != size.Y {
		return faces, fmt.Errorf("%w: face %s is %dx%d, not square", ErrFaceSize, l.Resolve(names[0]), size.X, size.Y)
	}
	for i, face := range faces {
		if face.Rect.Size() != size {
			faces[i] = Resize(face, size.X, size.Y)
			logger.Warningf("resized cubemap face %s from %v to %v", l.Resolve(names[i]), face.Rect.Size(), size)
		}
	}
	return faces, nil
}

func (l *Loader) Purge() {
	l.cache.Purge()
}

func (l *Loader) Cached() int {
	return l.cache.Len()
}

func decodeFile(p string) (*image.RGBA, error) {
	file, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if fi, err := file.Stat(); err == nil && fi.IsDir() {
		return nil, os.ErrNotExist
	} else if err != nil {
		return nil, err
	}

	raw, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	if rgba, ok := raw.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}
	rgba := image.NewRGBA(image.Rect(0, 0, raw.Bounds().Dx(), raw.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), raw, raw.Bounds().Min, draw.Src)
	return rgba, nil
}

func Resize(src *image.RGBA, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// FlipV returns a copy of img with the rows in reverse order.
func FlipV(img *image.RGBA) *image.RGBA {
	h := img.Rect.Dy()
	out := image.NewRGBA(image.Rect(0, 0, img.Rect.Dx(), h))
	rowLen := img.Rect.Dx() * 4
	for y := 0; y < h; y++ {
		srcRow := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		copy(out.Pix[(h-1-y)*out.Stride:], srcRow)
	}
	return out
}

// Solid returns a 1x1 image, used when a texture is missing.
func Solid(r, g, b, a uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []uint8{r, g, b, a})
	return img
}
