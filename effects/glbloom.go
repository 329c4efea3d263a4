package effects

import (
	"fmt"

	"bloom-gl/libgl"
	"bloom-gl/libio"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type glBloom struct {
	cfg    Config
	state  *BloomState
	effect *BloomEffect
	output *RenderTarget
}

// NewGlBloom runs the GL pipeline offline. It needs a current 4.5 context and
// libgl.State; the targets follow the size of the processed images.
func NewGlBloom(cfg Config) (Processor, error) {
	cfg.Width, cfg.Height = 0, 0
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &glBloom{cfg: cfg, state: NewBloomState(cfg)}, nil
}

func (b *glBloom) Process(scene, bright *libio.FloatImage, state BloomSnapshot) (*libio.FloatImage, error) {
	if err := checkInputs(scene, bright); err != nil {
		return nil, err
	}
	if err := b.ensureSize(scene.Width, scene.Height); err != nil {
		return nil, err
	}

	b.state.SetEnabled(state.Enabled)
	b.state.SetExposure(state.Exposure)

	upload := SceneRendererFunc(func(target *CaptureTarget) {
		uploadImage(target.Scene(), scene)
		uploadImage(target.Bright(), bright)
	})
	if err := b.effect.Frame(upload, b.output); err != nil {
		return nil, fmt.Errorf("could not run bloom frame: %w", err)
	}

	result := libio.NewFloatImageSize(3, scene.Width, scene.Height)
	b.output.Output(0).Read(0, gl.RGB, result.Pix)
	return result, nil
}

func (b *glBloom) ensureSize(width, height int) (err error) {
	if b.effect == nil {
		b.effect, err = NewBloomEffect(b.cfg, b.state, width, height)
		if err != nil {
			return err
		}
	} else if err = b.effect.Resize(width, height); err != nil {
		return err
	}

	if b.output != nil && b.output.Width() == width && b.output.Height() == height {
		return nil
	}
	if b.output != nil {
		b.output.Release()
	}
	b.output = NewRenderTarget("offline output", width, height, 1, gl.RGBA32F, false)
	return b.output.Check()
}

func uploadImage(dst libgl.UnboundTexture, img *libio.FloatImage) {
	format := uint32(gl.RGB)
	if img.Channels >= 4 {
		img = img.ToChannels(4)
		format = gl.RGBA
	} else {
		img = img.ToChannels(3)
	}
	dst.Load(0, img.Width, img.Height, 0, format, img.Pix)
}

func (b *glBloom) Release() {
	if b.effect != nil {
		b.effect.Release()
		b.effect = nil
	}
	if b.output != nil {
		b.output.Release()
		b.output = nil
	}
}
