package effects

import (
	_ "embed"
	"fmt"

	"bloom-gl/libgl"
	"bloom-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
)

//go:embed shaders/quad.vert
var quadVertSrc string

//go:embed shaders/blur.frag
var blurFragSrc string

//go:embed shaders/composite.frag
var compositeFragSrc string

// newQuadPipeline compiles the shared full screen vertex stage with fragSrc.
func newQuadPipeline(label, fragSrc string, defs map[string]string) (pipeline libgl.UnboundShaderPipeline, err error) {
	cleanup := []libutil.Deleter{}
	defer func() {
		if err != nil {
			libutil.DeleteAll(cleanup)
		}
	}()

	pipeline = libgl.NewPipeline()
	pipeline.SetDebugLabel(label)
	cleanup = append(cleanup, pipeline)

	vsh := libgl.NewShader(quadVertSrc, gl.VERTEX_SHADER)
	if err := vsh.Compile(); err != nil {
		return nil, fmt.Errorf("could not compile %s vertex shader: %w", label, err)
	}
	cleanup = append(cleanup, vsh)
	pipeline.Attach(vsh, gl.VERTEX_SHADER_BIT)

	fsh := libgl.NewShader(fragSrc, gl.FRAGMENT_SHADER)
	if err := fsh.CompileWith(defs); err != nil {
		return nil, fmt.Errorf("could not compile %s fragment shader: %w", label, err)
	}
	cleanup = append(cleanup, fsh)
	pipeline.Attach(fsh, gl.FRAGMENT_SHADER_BIT)

	return pipeline, nil
}

func deletePipeline(pipeline libgl.UnboundShaderPipeline) {
	pipeline.Get(gl.VERTEX_SHADER).Delete()
	pipeline.Get(gl.FRAGMENT_SHADER).Delete()
	pipeline.Delete()
}

func newLinearClampSampler(label string) libgl.UnboundSampler {
	sampler := libgl.NewSampler()
	sampler.FilterMode(gl.LINEAR, gl.LINEAR)
	sampler.WrapMode(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE, 0)
	sampler.SetDebugLabel(label)
	return sampler
}
