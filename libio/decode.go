package libio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"github.com/pierrec/lz4/v4"
)

// MaxFloatImageValues bounds the pixel data a decoded header may ask for (8K RGBA fits).
const MaxFloatImageValues = 1 << 27

var ErrImageTooLarge = errors.New("f32 image too large")

func DecodeFloatImage(r io.Reader) (img *FloatImage, err error) {
	var br *BinaryReader
	var ok bool

	if br, ok = r.(*BinaryReader); !ok {
		br = &BinaryReader{
			Src:   r,
			Order: binary.LittleEndian,
		}
	}

	header := FloatImageHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("expected f32 header; byte 0x%08x: %w", br.LastIndex, br.Err)
	}

	if header.Check != MagicNumberF32 {
		return nil, fmt.Errorf("f32 header is corrupt; byte 0x%08x", br.LastIndex)
	}

	if header.Version != F32Version1_001_000 {
		return nil, fmt.Errorf("f32 version %d unsupported; byte 0x%08x", header.Version, br.LastIndex)
	}

	count := int(header.Width) * int(header.Height)
	channels := int(header.Channels)
	if channels < 1 || channels > 4 {
		return nil, fmt.Errorf("f32 channel count %d unsupported; byte 0x%08x", channels, br.LastIndex)
	}
	if count*channels > MaxFloatImageValues {
		return nil, fmt.Errorf("%w: %dx%d with %d channels", ErrImageTooLarge, header.Width, header.Height, channels)
	}
	var data []float32

	switch header.Compression {
	case FloatImageCompressionNone:
		data = make([]float32, count*channels)
		br.ReadRef(data)
		err = br.Err
	case FloatImageCompressionFixedPoint16Lz4:
		rangeBytes := 4 * 2 * channels
		dataBytes := count * channels * 2
		buf := make([]byte, rangeBytes+dataBytes)
		_, err = io.ReadFull(lz4.NewReader(br.Src), buf)
		if err != nil {
			break
		}
		data, err = decompressFixedPoint16(channels, count, buf)
	default:
		err = fmt.Errorf("unknown compression %d", header.Compression)
	}

	if err != nil {
		return nil, fmt.Errorf("could not decompress f32 pixels: %w", err)
	}

	return NewFloatImage(data, channels, int(header.Width), int(header.Height)), nil
}

func decompressFixedPoint16(channels, count int, data []byte) ([]float32, error) {
	result := make([]float32, count*channels)
	br := &BinaryReader{
		Src:   bytes.NewReader(data),
		Order: binary.LittleEndian,
	}
	for ch := 0; ch < channels; ch++ {
		decompressChannelFixedPoint16(channels, count, result, br, ch)
		if br.Err != nil {
			return nil, br.Err
		}
	}
	return result, nil
}

func decompressChannelFixedPoint16(channels, count int, pix []float32, br *BinaryReader, ch int) {
	var imin, imax int
	br.ReadUInt32(&imin)
	br.ReadUInt32(&imax)

	min := math32.Float32frombits(uint32(imin))
	max := math32.Float32frombits(uint32(imax))

	data := make([]uint16, count)
	br.ReadRef(data)

	r := max - min
	for i := 0; i < count; i++ {
		pix[i*channels+ch] = (float32(data[i])/0xffff)*r + min
	}
}
