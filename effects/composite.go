package effects

import (
	"bloom-gl/libgl"
	"bloom-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// CompositeStage adds the blurred bright color to the scene and tone maps the sum.
type CompositeStage struct {
	gamma   float32
	shader  libgl.UnboundShaderPipeline
	sampler libgl.UnboundSampler
}

func NewCompositeStage(gamma float32) (*CompositeStage, error) {
	shader, err := newQuadPipeline("composite", compositeFragSrc, nil)
	if err != nil {
		return nil, err
	}
	shader.Get(gl.FRAGMENT_SHADER).SetUniform("u_gamma", gamma)

	return &CompositeStage{
		gamma:   gamma,
		shader:  shader,
		sampler: newLinearClampSampler("composite"),
	}, nil
}

// Run draws into dst, or into the default framebuffer at width x height when dst is nil.
func (s *CompositeStage) Run(scene, blurred libgl.UnboundTexture, state BloomSnapshot, dst *RenderTarget, width, height int) {
	defer libgl.PushGroup("Composite")()

	if dst != nil {
		dst.Bind()
	} else {
		libgl.State.BindDrawFramebuffer(0)
		libgl.State.Viewport(0, 0, width, height)
	}

	libgl.State.SetEnabled()
	s.shader.Bind()
	fsh := s.shader.Get(gl.FRAGMENT_SHADER)
	fsh.SetUniform("u_bloom", state.Enabled)
	fsh.SetUniform("u_exposure", state.Exposure)

	scene.Bind(0)
	blurred.Bind(1)
	s.sampler.Bind(0)
	s.sampler.Bind(1)
	libutil.DrawQuad()
}

func (s *CompositeStage) Release() {
	deletePipeline(s.shader)
	s.sampler.Delete()
}
