package main

import (
	_ "embed"
	"fmt"

	"bloom-gl/libgl"
	"bloom-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
)

//go:embed assets/shaders/imgui.vert
var Res_ImguiVshSrc string

//go:embed assets/shaders/imgui.frag
var Res_ImguiFshSrc string

//go:embed assets/shaders/scene.vert
var Res_SceneVshSrc string

//go:embed assets/shaders/scene.frag
var Res_SceneFshSrc string

//go:embed assets/shaders/sun.frag
var Res_SunFshSrc string

//go:embed assets/shaders/sky.vert
var Res_SkyVshSrc string

//go:embed assets/shaders/sky.frag
var Res_SkyFshSrc string

// LoadPipeline compiles both stages and links them into a pipeline.
// The programs are owned by the pipeline and freed by DeletePipeline.
func LoadPipeline(label, vshSrc, fshSrc string, defs map[string]string) (pipeline libgl.UnboundShaderPipeline, err error) {
	cleanup := []libutil.Deleter{}
	defer func() {
		if err != nil {
			libutil.DeleteAll(cleanup)
		}
	}()

	vertexSh := libgl.NewShader(vshSrc, gl.VERTEX_SHADER)
	if err = vertexSh.CompileWith(defs); err != nil {
		return nil, fmt.Errorf("could not compile vertex shader for shader pipeline %q: %w", label, err)
	}
	cleanup = append(cleanup, vertexSh)

	fragmentSh := libgl.NewShader(fshSrc, gl.FRAGMENT_SHADER)
	if err = fragmentSh.CompileWith(defs); err != nil {
		return nil, fmt.Errorf("could not compile fragment shader for shader pipeline %q: %w", label, err)
	}
	cleanup = append(cleanup, fragmentSh)

	pipeline = libgl.NewPipeline()
	pipeline.Attach(vertexSh, gl.VERTEX_SHADER_BIT)
	pipeline.Attach(fragmentSh, gl.FRAGMENT_SHADER_BIT)
	pipeline.SetDebugLabel(label)
	return pipeline, nil
}

func DeletePipeline(pipeline libgl.UnboundShaderPipeline) {
	pipeline.Get(gl.VERTEX_SHADER).Delete()
	pipeline.Get(gl.FRAGMENT_SHADER).Delete()
	pipeline.Delete()
}
