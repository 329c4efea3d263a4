package effects

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func randomVec3(rng *rand.Rand, max float32) mgl32.Vec3 {
	return mgl32.Vec3{rng.Float32() * max, rng.Float32() * max, rng.Float32() * max}
}

func TestCompositeBloomOffIgnoresBlur(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	for i := 0; i < 100; i++ {
		scene := randomVec3(rng, 8)
		want := ToneMap(scene, 0.5, 2.2)
		got := Composite(scene, randomVec3(rng, 100), false, 0.5, 2.2)
		assert.Equal(t, want, got)
	}
}

func TestCompositeIsDeterministic(t *testing.T) {
	scene, blur := mgl32.Vec3{0.3, 1.7, 4}, mgl32.Vec3{2, 0.1, 0}
	assert.Equal(t, Composite(scene, blur, true, 0.8, 2.2), Composite(scene, blur, true, 0.8, 2.2))
}

func TestToneMapExposureMonotonic(t *testing.T) {
	hdr := mgl32.Vec3{0.05, 1, 20}
	prev := ToneMap(hdr, 0.1, 2.2)
	for exposure := float32(0.2); exposure < 4; exposure += 0.1 {
		cur := ToneMap(hdr, exposure, 2.2)
		for c := 0; c < 3; c++ {
			assert.GreaterOrEqual(t, cur[c], prev[c], "exposure %v channel %d", exposure, c)
		}
		prev = cur
	}
}

func TestToneMapZero(t *testing.T) {
	for _, exposure := range []float32{MinExposure, 0.5, 1, 100} {
		assert.Equal(t, mgl32.Vec3{}, ToneMap(mgl32.Vec3{}, exposure, 2.2))
	}
}

func TestToneMapRange(t *testing.T) {
	out := ToneMap(mgl32.Vec3{1e-4, 3, 1e6}, 1, 2.2)
	for _, v := range out {
		assert.True(t, v >= 0 && v <= 1, "%v out of range", v)
	}
}

func TestCompositeReferenceValues(t *testing.T) {
	got := Composite(mgl32.Vec3{0.2, 0.2, 0.2}, mgl32.Vec3{1, 0, 0}, true, 0.5, 2.2)
	assert.InDelta(t, 0.696450, got[0], 1e-5)
	assert.InDelta(t, 0.343294, got[1], 1e-5)
	assert.InDelta(t, 0.343294, got[2], 1e-5)

	off := Composite(mgl32.Vec3{0.2, 0.2, 0.2}, mgl32.Vec3{1, 0, 0}, false, 0.5, 2.2)
	assert.InDelta(t, 0.343294, off[0], 1e-5)
}

func TestBlurWeightsSumToOne(t *testing.T) {
	sum := BlurWeights[0]
	for _, w := range BlurWeights[1:] {
		sum += 2 * w
	}
	assert.InDelta(t, 1, sum, 1e-5)
}
