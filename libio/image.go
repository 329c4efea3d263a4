package libio

import (
	goimg "image"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

const MagicNumberF32 = 0x6d16837d

type FloatImageVersion uint32

const (
	F32Version1_001_000 = FloatImageVersion(1_001_000)
)

type FloatImageCompression uint32

const (
	FloatImageCompressionNone = FloatImageCompression(iota)
	FloatImageCompressionFixedPoint16Lz4
)

type FloatImageHeader struct {
	Check         uint32
	Version       FloatImageVersion
	Width, Height uint32
	Channels      uint8
	Compression   FloatImageCompression
	Unused        [14]uint8
}

// FloatImage stores interleaved float32 channels, rows bottom to top
// the way OpenGL reads them back.
type FloatImage struct {
	Channels      int
	Width, Height int
	Pix           []float32
}

func NewFloatImage(pix []float32, channels int, width, height int) *FloatImage {
	return &FloatImage{
		Pix:      pix,
		Channels: channels,
		Width:    width,
		Height:   height,
	}
}

func NewFloatImageSize(channels int, width, height int) *FloatImage {
	return NewFloatImage(make([]float32, channels*width*height), channels, width, height)
}

// Index of the first channel of pixel (x, y). The origin is bottom left.
func (img *FloatImage) Index(x, y int) int {
	return x*img.Channels + y*img.Channels*img.Width
}

// At returns the channels of pixel (x, y), clamping the coordinates to the edge.
func (img *FloatImage) At(x, y int) []float32 {
	x = clamp(x, 0, img.Width-1)
	y = clamp(y, 0, img.Height-1)
	i := img.Index(x, y)
	return img.Pix[i : i+img.Channels]
}

func (img *FloatImage) Count() int {
	return img.Width * img.Height
}

func (img *FloatImage) Bytes() int {
	return img.Width * img.Height * img.Channels * 4
}

// Fill sets every pixel to value; missing channels are zero.
func (img *FloatImage) Fill(value ...float32) {
	for i := 0; i < img.Count(); i++ {
		for c := 0; c < img.Channels; c++ {
			var v float32
			if c < len(value) {
				v = value[c]
			}
			img.Pix[i*img.Channels+c] = v
		}
	}
}

func (img *FloatImage) SameSize(other *FloatImage) bool {
	return img.Width == other.Width && img.Height == other.Height
}

func (img *FloatImage) ToChannels(nr int, defaults ...float32) *FloatImage {
	dst := toChannels(img.Channels, nr, img.Count(), img.Pix, defaults...)

	return NewFloatImage(dst, nr, img.Width, img.Height)
}

func toChannels[P ~[]E, E any](srcCh, dstCh int, count int, pix P, defaults ...E) P {
	if srcCh == dstCh {
		return pix
	}

	if len(defaults) < dstCh {
		defaults = append(defaults, make([]E, dstCh-len(defaults))...)
	}

	dst := make([]E, count*dstCh)
	for i := 0; i < count; i++ {
		for c := 0; c < dstCh; c++ {
			if c < srcCh {
				dst[i*dstCh+c] = pix[i*srcCh+c]
			} else {
				dst[i*dstCh+c] = defaults[c]
			}
		}
	}

	return dst
}

// ToRGBA quantizes already display-mapped values in [0, 1] to 8 bits and
// flips the rows into Go's top left origin.
func (img *FloatImage) ToRGBA() *goimg.RGBA {
	rgba := goimg.NewRGBA(goimg.Rect(0, 0, img.Width, img.Height))

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := img.Index(x, y)
			j := (x + (img.Height-y-1)*img.Width) * 4
			for c := 0; c < 3; c++ {
				var v float32
				if c < img.Channels {
					v = img.Pix[i+c]
				}
				rgba.Pix[j+c] = uint8(math32.Round(clamp(v, 0, 1) * 0xff))
			}
			rgba.Pix[j+3] = 0xff
			if img.Channels >= 4 {
				rgba.Pix[j+3] = uint8(math32.Round(clamp(img.Pix[i+3], 0, 1) * 0xff))
			}
		}
	}

	return rgba
}

// FromRGBA converts an 8 bit image to linear floats by undoing gamma.
func FromRGBA(src *goimg.RGBA, gamma float32) *FloatImage {
	b := src.Bounds()
	img := NewFloatImageSize(4, b.Dx(), b.Dy())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			s := src.PixOffset(b.Min.X+x, b.Max.Y-y-1)
			i := img.Index(x, y)
			for c := 0; c < 3; c++ {
				img.Pix[i+c] = math32.Pow(float32(src.Pix[s+c])/0xff, gamma)
			}
			img.Pix[i+3] = float32(src.Pix[s+3]) / 0xff
		}
	}
	return img
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
