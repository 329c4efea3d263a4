package effects

import (
	"math/rand"
	"testing"

	"bloom-gl/libio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformImage(w, h int, rgb ...float32) *libio.FloatImage {
	img := libio.NewFloatImageSize(4, w, h)
	img.Fill(append(rgb, 1)...)
	return img
}

func randomImage(seed int64, w, h int, max float32) *libio.FloatImage {
	rng := rand.New(rand.NewSource(seed))
	img := libio.NewFloatImageSize(3, w, h)
	for i := range img.Pix {
		img.Pix[i] = rng.Float32() * max
	}
	return img
}

func TestSoftwareBloomUniform(t *testing.T) {
	sw, err := NewSwBloom(DefaultConfig())
	require.NoError(t, err)
	defer sw.Release()

	scene := uniformImage(16, 12, 0.2, 0.2, 0.2)
	bright := uniformImage(16, 12, 1, 0, 0)

	blurred := SoftwareBlur(bright, 10, 16, 12)
	for i := 0; i < blurred.Count(); i++ {
		assert.InDelta(t, 0.999994, blurred.Pix[i*3], 1e-5)
		assert.Equal(t, float32(0), blurred.Pix[i*3+1])
	}

	out, err := sw.Process(scene, bright, BloomSnapshot{Enabled: true, Exposure: 0.5})
	require.NoError(t, err)
	for _, xy := range [][2]int{{0, 0}, {7, 5}, {15, 11}} {
		px := out.At(xy[0], xy[1])
		assert.InDelta(t, 0.69645, px[0], 1e-4)
		assert.InDelta(t, 0.34329, px[1], 1e-4)
		assert.InDelta(t, 0.34329, px[2], 1e-4)
	}
}

func TestSoftwareBloomOffMatchesToneMappedScene(t *testing.T) {
	sw, err := NewSwBloom(DefaultConfig())
	require.NoError(t, err)

	scene := randomImage(1, 9, 7, 4)
	state := BloomSnapshot{Enabled: false, Exposure: 0.7}

	a, err := sw.Process(scene, randomImage(2, 9, 7, 50), state)
	require.NoError(t, err)
	b, err := sw.Process(scene, randomImage(3, 9, 7, 0), state)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)

	px := scene.At(4, 3)
	want := ToneMap([3]float32{px[0], px[1], px[2]}, 0.7, 2.2)
	assert.InDeltaSlice(t, want[:], a.At(4, 3), 1e-6)
}

func TestSoftwareBloomZeroInput(t *testing.T) {
	sw, err := NewSwBloom(DefaultConfig())
	require.NoError(t, err)

	zero := libio.NewFloatImageSize(3, 5, 5)
	out, err := sw.Process(zero, zero, BloomSnapshot{Enabled: true, Exposure: 3})
	require.NoError(t, err)
	for _, v := range out.Pix {
		assert.Equal(t, float32(0), v)
	}
}

func TestSoftwareBlurSpreadsEnergy(t *testing.T) {
	bright := libio.NewFloatImageSize(3, 21, 21)
	copy(bright.At(10, 10), []float32{1, 1, 1})

	blurred := SoftwareBlur(bright, 2, 21, 21)

	center := blurred.At(10, 10)[0]
	assert.InDelta(t, BlurWeights[0]*BlurWeights[0], center, 1e-6)
	assert.InDelta(t, BlurWeights[1]*BlurWeights[2], blurred.At(11, 8)[0], 1e-6)
	assert.Equal(t, float32(0), blurred.At(15, 10)[0])

	var sum float32
	for i := 0; i < blurred.Count(); i++ {
		sum += blurred.Pix[i*3]
	}
	assert.InDelta(t, 1, sum, 1e-4)
}

func TestSoftwareBlurDownsampled(t *testing.T) {
	bright := uniformImage(16, 16, 2, 2, 2)
	blurred := SoftwareBlur(bright, 4, 4, 4)
	for _, v := range blurred.Pix {
		assert.InDelta(t, 2, v, 1e-4)
	}
}

func TestSoftwareBloomRejectsMismatch(t *testing.T) {
	sw, err := NewSwBloom(DefaultConfig())
	require.NoError(t, err)

	_, err = sw.Process(uniformImage(4, 4, 0), uniformImage(4, 5, 0), BloomSnapshot{Exposure: 1})
	assert.ErrorIs(t, err, ErrTargetMismatch)

	_, err = NewSwBloom(Config{Iterations: 3})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
