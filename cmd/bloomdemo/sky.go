package main

import (
	"image"

	"bloom-gl/assets"
	"bloom-gl/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type Sky struct {
	cubemap libgl.UnboundTexture
	vao     libgl.UnboundVertexArray
	vbo     libgl.UnboundBuffer
	shader  libgl.UnboundShaderPipeline
}

// NewSky loads the cubemap faces. A face that cannot be loaded is logged
// and the sky falls back to a black cubemap.
func NewSky(loader *assets.Loader, faces [6]string) (*Sky, error) {
	shader, err := LoadPipeline("Sky", Res_SkyVshSrc, Res_SkyFshSrc, nil)
	if err != nil {
		return nil, err
	}

	cubemap, err := loader.LoadCubemap(faces)
	if err != nil {
		logger.Errorf("%v, using a black skybox", err)
		cubemap = blackCubemap()
	}

	vbo := libgl.NewBuffer()
	vbo.Allocate(SkyCube, 0)
	vbo.SetDebugLabel("Sky")
	vao := libgl.NewVertexArray()
	vao.Layout(0, 0, 3, gl.FLOAT, false, 0)
	vao.BindBuffer(0, vbo, 0, 3*4)
	vao.SetDebugLabel("Sky")

	return &Sky{
		cubemap: cubemap,
		vao:     vao,
		vbo:     vbo,
		shader:  shader,
	}, nil
}

func blackCubemap() libgl.UnboundTexture {
	black := assets.Solid(0, 0, 0, 255)
	tex := assets.UploadCubemap([6]*image.RGBA{black, black, black, black, black, black}, true)
	tex.SetDebugLabel("Skybox (missing)")
	return tex
}

// Draw renders the sky behind everything already in the depth buffer.
func (sky *Sky) Draw(cam *Camera, bloom bool, threshold float32) {
	defer libgl.PushGroup("Sky")()

	view := cam.ViewMatrix().Mat3().Mat4()
	libgl.State.DepthFunc(libgl.DepthFuncLEqual)
	libgl.State.DepthMask(false)
	libgl.State.Disable(libgl.CullFace)

	sky.shader.Bind()
	sky.shader.Get(gl.VERTEX_SHADER).SetUniform("u_view_projection_mat", cam.ProjectionMatrix().Mul4(view))
	sky.shader.Get(gl.FRAGMENT_SHADER).SetUniform("u_bloom", bloom)
	sky.shader.Get(gl.FRAGMENT_SHADER).SetUniform("u_bright_threshold", threshold)
	libgl.State.BindSampler(0, 0)
	sky.cubemap.Bind(0)
	sky.vao.Bind()
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(SkyCube)/3))

	libgl.State.DepthMask(true)
	libgl.State.DepthFunc(libgl.DepthFuncLess)
}

func (sky *Sky) Delete() {
	sky.cubemap.Delete()
	sky.vao.Delete()
	sky.vbo.Delete()
	DeletePipeline(sky.shader)
}
