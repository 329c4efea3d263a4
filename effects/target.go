package effects

import (
	"errors"
	"fmt"

	"bloom-gl/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
)

var ErrTargetMismatch = errors.New("render target mismatch")

// HdrFormat is the internal format of every bloom output.
const HdrFormat = gl.RGBA16F

// RenderTarget is a framebuffer whose color outputs all share one size and format.
type RenderTarget struct {
	label         string
	framebuffer   libgl.UnboundFramebuffer
	outputs       []libgl.UnboundTexture
	depth         libgl.UnboundRenderbuffer
	width, height int
	format        uint32
}

func NewRenderTarget(label string, width, height, outputs int, format uint32, depth bool) *RenderTarget {
	target := &RenderTarget{
		label:       label,
		framebuffer: libgl.NewFramebuffer(),
		outputs:     make([]libgl.UnboundTexture, outputs),
		width:       width,
		height:      height,
		format:      format,
	}
	target.framebuffer.SetDebugLabel(label)

	indices := make([]int, outputs)
	for i := range target.outputs {
		tex := libgl.NewTexture(gl.TEXTURE_2D)
		tex.Allocate(1, format, width, height, 0)
		tex.FilterMode(gl.LINEAR, gl.LINEAR)
		tex.WrapMode(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE, 0)
		tex.SetDebugLabel(fmt.Sprintf("%s output %d", label, i))
		target.framebuffer.AttachTexture(i, tex)
		target.outputs[i] = tex
		indices[i] = i
	}
	target.framebuffer.BindTargets(indices...)

	if depth {
		target.depth = libgl.NewRenderbuffer()
		target.depth.Allocate(gl.DEPTH_COMPONENT24, width, height)
		target.depth.SetDebugLabel(label + " depth")
		target.framebuffer.AttachRenderbuffer(gl.DEPTH_ATTACHMENT, target.depth)
	}

	return target
}

// Check reports whether the framebuffer is complete.
func (t *RenderTarget) Check() error {
	if err := t.framebuffer.Check(gl.DRAW_FRAMEBUFFER); err != nil {
		return fmt.Errorf("%s framebuffer is incomplete: %w", t.label, err)
	}
	return nil
}

// checkOrWarn logs an incomplete target and carries on.
func (t *RenderTarget) checkOrWarn() {
	if err := t.Check(); err != nil {
		logger.Warning(err)
	}
}

func (t *RenderTarget) Label() string {
	return t.label
}

func (t *RenderTarget) Width() int {
	return t.width
}

func (t *RenderTarget) Height() int {
	return t.height
}

func (t *RenderTarget) Format() uint32 {
	return t.format
}

func (t *RenderTarget) Outputs() int {
	return len(t.outputs)
}

func (t *RenderTarget) Output(index int) libgl.UnboundTexture {
	return t.outputs[index]
}

func (t *RenderTarget) Framebuffer() libgl.UnboundFramebuffer {
	return t.framebuffer
}

func (t *RenderTarget) HasDepth() bool {
	return t.depth != nil
}

// Bind makes the target the draw framebuffer and covers it with the viewport.
func (t *RenderTarget) Bind() {
	t.framebuffer.Bind(gl.DRAW_FRAMEBUFFER)
	libgl.State.Viewport(0, 0, t.width, t.height)
}

// Clear sets every output to zero and depth to one.
func (t *RenderTarget) Clear() {
	for i := range t.outputs {
		t.framebuffer.ClearColor(i, 0, 0, 0, 0)
	}
	if t.depth != nil {
		libgl.State.DepthMask(true)
		t.framebuffer.ClearDepth(1)
	}
}

func (t *RenderTarget) Release() {
	if libgl.State.DrawFramebuffer == t.framebuffer.Id() {
		libgl.State.BindDrawFramebuffer(0)
	}
	t.framebuffer.Delete()
	for _, tex := range t.outputs {
		tex.Delete()
	}
	if t.depth != nil {
		t.depth.Delete()
	}
}

const (
	CaptureScene  = 0
	CaptureBright = 1
)

// CaptureTarget receives the scene: lit color in output 0, bright color in output 1.
type CaptureTarget struct {
	*RenderTarget
}

func NewCaptureTarget(width, height int) *CaptureTarget {
	target := &CaptureTarget{NewRenderTarget("capture", width, height, 2, HdrFormat, true)}
	target.checkOrWarn()
	return target
}

func (t *CaptureTarget) Scene() libgl.UnboundTexture {
	return t.Output(CaptureScene)
}

func (t *CaptureTarget) Bright() libgl.UnboundTexture {
	return t.Output(CaptureBright)
}

// begin prepares the target for scene drawing.
func (t *CaptureTarget) begin() {
	t.Bind()
	t.framebuffer.BindTargets(CaptureScene, CaptureBright)
	libgl.State.SetEnabled(libgl.DepthTest)
	libgl.State.DepthFunc(libgl.DepthFuncLess)
	t.Clear()
}

// PingPongPair is two single output targets of identical size used by the blur.
type PingPongPair struct {
	targets [2]*RenderTarget
}

func NewPingPongPair(a, b *RenderTarget) (*PingPongPair, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: missing ping-pong target", ErrTargetMismatch)
	}
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return nil, fmt.Errorf("%w: ping-pong targets are %dx%d and %dx%d", ErrTargetMismatch, a.Width(), a.Height(), b.Width(), b.Height())
	}
	if a.Outputs() != 1 || b.Outputs() != 1 {
		return nil, fmt.Errorf("%w: ping-pong targets need exactly one output", ErrTargetMismatch)
	}
	if a.Format() != b.Format() {
		return nil, fmt.Errorf("%w: ping-pong formats differ", ErrTargetMismatch)
	}
	return &PingPongPair{targets: [2]*RenderTarget{a, b}}, nil
}

// newPingPongPair allocates both targets at width x height.
func newPingPongPair(width, height int) (*PingPongPair, error) {
	a := NewRenderTarget("pingpong A", width, height, 1, HdrFormat, false)
	b := NewRenderTarget("pingpong B", width, height, 1, HdrFormat, false)
	a.checkOrWarn()
	b.checkOrWarn()
	pair, err := NewPingPongPair(a, b)
	if err != nil {
		a.Release()
		b.Release()
		return nil, err
	}
	return pair, nil
}

func (p *PingPongPair) Target(index PingPong) *RenderTarget {
	return p.targets[index]
}

func (p *PingPongPair) Texture(index PingPong) libgl.UnboundTexture {
	return p.targets[index].Output(0)
}

func (p *PingPongPair) Width() int {
	return p.targets[0].Width()
}

func (p *PingPongPair) Height() int {
	return p.targets[0].Height()
}

func (p *PingPongPair) Release() {
	p.targets[0].Release()
	p.targets[1].Release()
}
