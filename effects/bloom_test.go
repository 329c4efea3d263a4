package effects

import (
	"testing"

	"bloom-gl/libio"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlBloomMatchesReference(t *testing.T) {
	scene := uniformImage(32, 24, 0.2, 0.2, 0.2)
	bright := uniformImage(32, 24, 1, 0, 0)
	state := BloomSnapshot{Enabled: true, Exposure: 0.5}

	var out *libio.FloatImage
	var err error
	runOnMain(t, func() {
		var proc Processor
		proc, err = NewGlBloom(DefaultConfig())
		if err != nil {
			return
		}
		defer proc.Release()
		out, err = proc.Process(scene, bright, state)
	})
	require.NoError(t, err)

	for _, xy := range [][2]int{{0, 0}, {16, 12}, {31, 23}} {
		px := out.At(xy[0], xy[1])
		assert.InDelta(t, 0.69645, px[0], 2e-3)
		assert.InDelta(t, 0.34329, px[1], 2e-3)
		assert.InDelta(t, 0.34329, px[2], 2e-3)
	}
}

func TestGlBloomOffIgnoresBright(t *testing.T) {
	scene := randomImage(5, 16, 16, 3)
	state := BloomSnapshot{Enabled: false, Exposure: 1.2}

	var a, b *libio.FloatImage
	var err error
	runOnMain(t, func() {
		var proc Processor
		proc, err = NewGlBloom(DefaultConfig())
		if err != nil {
			return
		}
		defer proc.Release()
		if a, err = proc.Process(scene, randomImage(6, 16, 16, 40), state); err != nil {
			return
		}
		b, err = proc.Process(scene, randomImage(7, 16, 16, 0), state)
	})
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)

	sw, err := NewSwBloom(DefaultConfig())
	require.NoError(t, err)
	ref, err := sw.Process(scene, scene, state)
	require.NoError(t, err)
	assert.InDeltaSlice(t, ref.Pix, a.Pix, 2e-3)
}

func TestBloomEffectFrameOrder(t *testing.T) {
	var (
		checkErrs           []error
		lateComposite       error
		midFrameResize      error
		frameErrs           []error
		captureW, blurW     int
		terminal, pingPongA uint32
		frames              uint64
	)
	runOnMain(t, func() {
		cfg := DefaultConfig()
		cfg.Downsample = 2
		effect, err := NewBloomEffect(cfg, NewBloomState(cfg), 40, 30)
		if err != nil {
			checkErrs = append(checkErrs, err)
			return
		}
		defer effect.Release()

		checkErrs = append(checkErrs, effect.Capture().Check(), effect.PingPong().Target(PingPongA).Check())
		captureW = effect.Capture().Width()
		blurW = effect.PingPong().Width()

		_, err = effect.BeginCapture()
		frameErrs = append(frameErrs, err)
		lateComposite = effect.Composite(nil)
		midFrameResize = effect.Resize(80, 60)
		frameErrs = append(frameErrs, effect.EndCapture(), effect.Blur(), effect.Composite(nil))

		terminal = effect.Blurred().Id()
		pingPongA = effect.PingPong().Texture(PingPongA).Id()
		frames = effect.Frames()
		gl.Finish()
	})

	for _, err := range checkErrs {
		require.NoError(t, err)
	}
	for _, err := range frameErrs {
		require.NoError(t, err)
	}
	assert.ErrorIs(t, lateComposite, ErrPhaseOrder)
	assert.ErrorIs(t, midFrameResize, ErrPhaseOrder)
	assert.Equal(t, 40, captureW)
	assert.Equal(t, 20, blurW)
	assert.Equal(t, pingPongA, terminal)
	assert.Equal(t, uint64(1), frames)
}

func TestNewPingPongPairRejectsMismatch(t *testing.T) {
	var err error
	runOnMain(t, func() {
		a := NewRenderTarget("a", 8, 8, 1, HdrFormat, false)
		b := NewRenderTarget("b", 8, 4, 1, HdrFormat, false)
		defer a.Release()
		defer b.Release()
		_, err = NewPingPongPair(a, b)
	})
	assert.ErrorIs(t, err, ErrTargetMismatch)
}
