package effects

import (
	"fmt"

	"bloom-gl/libgl"
	"bloom-gl/log"
)

var logger = log.New("effects")

// SceneRenderer draws the scene into the bound capture target.
type SceneRenderer interface {
	DrawScene(target *CaptureTarget)
}

type SceneRendererFunc func(target *CaptureTarget)

func (f SceneRendererFunc) DrawScene(target *CaptureTarget) {
	f(target)
}

// BloomEffect owns every GL resource of the post process and runs its phases in order.
type BloomEffect struct {
	cfg       Config
	state     *BloomState
	sequencer FrameSequencer
	capture   *CaptureTarget
	pingPong  *PingPongPair
	blur      *BlurStage
	composite *CompositeStage

	viewportWidth, viewportHeight int
	snapshot                      BloomSnapshot
	blurred                       libgl.UnboundTexture
}

// NewBloomEffect allocates targets for a viewport of width x height.
// cfg must be valid; the caller keeps ownership of state.
func NewBloomEffect(cfg Config, state *BloomState, width, height int) (effect *BloomEffect, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: viewport must not be empty, got %dx%d", ErrInvalidConfig, width, height)
	}

	effect = &BloomEffect{cfg: cfg, state: state}
	defer func() {
		if err != nil {
			effect.Release()
			effect = nil
		}
	}()

	if effect.blur, err = NewBlurStage(cfg.Iterations); err != nil {
		return nil, fmt.Errorf("could not create blur stage: %w", err)
	}
	if effect.composite, err = NewCompositeStage(cfg.Gamma); err != nil {
		return nil, fmt.Errorf("could not create composite stage: %w", err)
	}
	if err = effect.allocate(width, height); err != nil {
		return nil, err
	}
	return effect, nil
}

func (e *BloomEffect) allocate(width, height int) error {
	cw, ch := e.cfg.Size(width, height)
	bw, bh := e.cfg.BlurSize(cw, ch)

	pair, err := newPingPongPair(bw, bh)
	if err != nil {
		return fmt.Errorf("could not create ping-pong targets: %w", err)
	}
	e.pingPong = pair
	e.capture = NewCaptureTarget(cw, ch)
	e.viewportWidth, e.viewportHeight = width, height
	logger.Debugf("allocated bloom targets: capture %dx%d, blur %dx%d", cw, ch, bw, bh)
	return nil
}

func (e *BloomEffect) releaseTargets() {
	if e.capture != nil {
		e.capture.Release()
		e.capture = nil
	}
	if e.pingPong != nil {
		e.pingPong.Release()
		e.pingPong = nil
	}
	e.blurred = nil
}

// Resize reallocates all targets. It is only allowed between frames.
func (e *BloomEffect) Resize(width, height int) error {
	if e.sequencer.Phase() != PhaseIdle {
		return fmt.Errorf("%w: resize while %s", ErrPhaseOrder, e.sequencer.Phase())
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: viewport must not be empty, got %dx%d", ErrInvalidConfig, width, height)
	}
	if width == e.viewportWidth && height == e.viewportHeight {
		return nil
	}
	e.releaseTargets()
	return e.allocate(width, height)
}

func (e *BloomEffect) Release() {
	e.releaseTargets()
	if e.blur != nil {
		e.blur.Release()
		e.blur = nil
	}
	if e.composite != nil {
		e.composite.Release()
		e.composite = nil
	}
}

func (e *BloomEffect) Config() Config {
	return e.cfg
}

func (e *BloomEffect) State() *BloomState {
	return e.state
}

func (e *BloomEffect) Phase() Phase {
	return e.sequencer.Phase()
}

func (e *BloomEffect) Frames() uint64 {
	return e.sequencer.Frames()
}

func (e *BloomEffect) Capture() *CaptureTarget {
	return e.capture
}

func (e *BloomEffect) PingPong() *PingPongPair {
	return e.pingPong
}

// Frame runs one complete frame: capture with scene drawing inside, blur, composite into dst.
// A nil dst composites into the default framebuffer.
func (e *BloomEffect) Frame(scene SceneRenderer, dst *RenderTarget) error {
	target, err := e.BeginCapture()
	if err != nil {
		return err
	}
	scene.DrawScene(target)
	if err := e.EndCapture(); err != nil {
		e.sequencer.Abort()
		return err
	}
	if err := e.Blur(); err != nil {
		e.sequencer.Abort()
		return err
	}
	if err := e.Composite(dst); err != nil {
		e.sequencer.Abort()
		return err
	}
	return nil
}

// BeginCapture binds and clears the capture target. The toggles are sampled here, once per frame.
func (e *BloomEffect) BeginCapture() (*CaptureTarget, error) {
	if err := e.sequencer.BeginCapture(); err != nil {
		return nil, err
	}
	e.snapshot = e.state.Snapshot()
	e.blurred = nil
	e.capture.begin()
	return e.capture, nil
}

func (e *BloomEffect) EndCapture() error {
	if err := e.sequencer.EndCapture(); err != nil {
		return err
	}
	libgl.State.BindDrawFramebuffer(0)
	return nil
}

func (e *BloomEffect) Blur() error {
	if err := e.sequencer.Blur(); err != nil {
		return err
	}
	e.blurred = e.blur.Run(e.capture.Bright(), e.pingPong)
	return nil
}

// Composite writes the final image into dst, or the default framebuffer when dst is nil.
func (e *BloomEffect) Composite(dst *RenderTarget) error {
	if err := e.sequencer.Composite(); err != nil {
		return err
	}
	e.composite.Run(e.capture.Scene(), e.blurred, e.snapshot, dst, e.viewportWidth, e.viewportHeight)
	return nil
}

// Blurred is the texture the last composite read, nil before the first blur of a frame.
func (e *BloomEffect) Blurred() libgl.UnboundTexture {
	return e.blurred
}
