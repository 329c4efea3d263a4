package effects

import (
	"fmt"
	"strconv"

	"bloom-gl/libgl"
	"bloom-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// BlurStage runs the separable gaussian over a ping-pong pair.
type BlurStage struct {
	iterations int
	schedule   []BlurStep
	shader     libgl.UnboundShaderPipeline
	sampler    libgl.UnboundSampler
}

func NewBlurStage(iterations int) (*BlurStage, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("%w: blur needs at least one iteration", ErrInvalidConfig)
	}
	shader, err := newQuadPipeline("blur", blurFragSrc, map[string]string{
		"TAPS": strconv.Itoa(len(BlurWeights)),
	})
	if err != nil {
		return nil, err
	}
	shader.Get(gl.FRAGMENT_SHADER).SetUniform("u_weights", BlurWeights[:])

	return &BlurStage{
		iterations: iterations,
		schedule:   BlurSchedule(iterations),
		shader:     shader,
		sampler:    newLinearClampSampler("blur"),
	}, nil
}

func (s *BlurStage) Iterations() int {
	return s.iterations
}

// Run blurs bright into the pair and returns the texture written last.
func (s *BlurStage) Run(bright libgl.UnboundTexture, pair *PingPongPair) libgl.UnboundTexture {
	defer libgl.PushGroup("Blur")()

	libgl.State.SetEnabled()
	s.shader.Bind()
	s.sampler.Bind(0)
	fsh := s.shader.Get(gl.FRAGMENT_SHADER)

	for _, step := range s.schedule {
		var source libgl.UnboundTexture
		switch step.Source {
		case SourceCapture:
			source = bright
		case SourcePingPongA:
			source = pair.Texture(PingPongA)
		case SourcePingPongB:
			source = pair.Texture(PingPongB)
		}

		pair.Target(step.Target).Bind()
		fsh.SetUniform("u_horizontal", step.Horizontal)
		source.Bind(0)
		libutil.DrawQuad()
	}

	return pair.Texture(Terminal(s.iterations, PingPongB))
}

func (s *BlurStage) Release() {
	deletePipeline(s.shader)
	s.sampler.Delete()
}
