package libio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientImage(channels, width, height int) *FloatImage {
	img := NewFloatImageSize(channels, width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := img.At(x, y)
			for c := range px {
				px[c] = float32(x+y*width) * 0.25 * float32(c+1)
			}
		}
	}
	return img
}

func TestFloatImageUncompressed(t *testing.T) {
	img := gradientImage(3, 7, 5)

	var buf bytes.Buffer
	require.NoError(t, EncodeFloatImage(&buf, img, FloatImageCompressionNone))
	assert.Equal(t, 35+img.Bytes(), buf.Len())

	got, err := DecodeFloatImage(&buf)
	require.NoError(t, err)
	assert.Equal(t, img, got)
}

func TestFloatImageFixedPoint16Lz4(t *testing.T) {
	img := gradientImage(4, 16, 9)
	img.Pix[3] = -2

	var buf bytes.Buffer
	require.NoError(t, EncodeFloatImage(&buf, img, FloatImageCompressionFixedPoint16Lz4))

	got, err := DecodeFloatImage(&buf)
	require.NoError(t, err)
	require.Equal(t, img.Channels, got.Channels)
	require.Equal(t, img.Width, got.Width)
	require.Equal(t, img.Height, got.Height)
	assert.InDeltaSlice(t, img.Pix, got.Pix, 0.01)
}

func TestFixedPointConstantChannel(t *testing.T) {
	img := NewFloatImageSize(2, 4, 4)
	img.Fill(1.5, 0)

	var buf bytes.Buffer
	require.NoError(t, EncodeFloatImage(&buf, img, FloatImageCompressionFixedPoint16Lz4))

	got, err := DecodeFloatImage(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, got.Pix)
}

func TestDecodeRejectsCorruptHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeFloatImage(&buf, gradientImage(1, 2, 2), FloatImageCompressionNone))
	data := buf.Bytes()
	data[0] ^= 0xff

	_, err := DecodeFloatImage(bytes.NewReader(data))
	assert.ErrorContains(t, err, "corrupt")

	_, err = DecodeFloatImage(bytes.NewReader(data[:10]))
	assert.Error(t, err)
}

func TestAtClampsToEdge(t *testing.T) {
	img := gradientImage(1, 3, 3)
	assert.Equal(t, img.At(0, 0), img.At(-5, -1))
	assert.Equal(t, img.At(2, 2), img.At(9, 9))
}

func TestToRGBAFlipsRows(t *testing.T) {
	img := NewFloatImageSize(3, 1, 2)
	copy(img.At(0, 0), []float32{1, 0, 0})
	copy(img.At(0, 1), []float32{0, 0, 2})

	rgba := img.ToRGBA()
	assert.Equal(t, []uint8{0, 0, 0xff, 0xff}, rgba.Pix[0:4])
	assert.Equal(t, []uint8{0xff, 0, 0, 0xff}, rgba.Pix[4:8])
}

func TestToChannels(t *testing.T) {
	img := NewFloatImage([]float32{1, 2, 3, 4, 5, 6}, 3, 2, 1)
	rgba := img.ToChannels(4, 0, 0, 0, 1)
	assert.Equal(t, []float32{1, 2, 3, 1, 4, 5, 6, 1}, rgba.Pix)
	assert.Equal(t, []float32{1, 4}, img.ToChannels(1).Pix)
}

func encodeHeader(t *testing.T, width, height uint32, channels uint8) *bytes.Buffer {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, FloatImageHeader{
		Check:       MagicNumberF32,
		Version:     F32Version1_001_000,
		Width:       width,
		Height:      height,
		Channels:    channels,
		Compression: FloatImageCompressionNone,
	}))
	return &buf
}

func TestDecodeRejectsOversizedHeader(t *testing.T) {
	_, err := DecodeFloatImage(encodeHeader(t, 1<<20, 1<<20, 4))
	assert.ErrorIs(t, err, ErrImageTooLarge)

	_, err = DecodeFloatImage(encodeHeader(t, 8192, 8192, 3))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestDecodeRejectsChannelCount(t *testing.T) {
	_, err := DecodeFloatImage(encodeHeader(t, 2, 2, 0))
	assert.Error(t, err)

	_, err = DecodeFloatImage(encodeHeader(t, 2, 2, 5))
	assert.Error(t, err)
}
