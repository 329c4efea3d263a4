package libutil

import (
	"bloom-gl/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
)

var (
	sharedQuadVao libgl.UnboundVertexArray
	sharedQuadVbo libgl.UnboundBuffer
)

// DrawQuad draws a full screen triangle strip with the vec2 ndc position at attribute 0.
func DrawQuad() {
	if sharedQuadVao == nil {
		sharedQuadVbo = libgl.NewBuffer()
		sharedQuadVbo.Allocate([]float32{-1, -1, 1, -1, -1, 1, 1, 1}, 0)
		sharedQuadVbo.SetDebugLabel("quad")

		sharedQuadVao = libgl.NewVertexArray()
		sharedQuadVao.Layout(0, 0, 2, gl.FLOAT, false, 0)
		sharedQuadVao.BindBuffer(0, sharedQuadVbo, 0, 2*4)
		sharedQuadVao.SetDebugLabel("quad")
	}

	sharedQuadVao.Bind()
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

// ReleaseQuad frees the shared quad. The next DrawQuad recreates it.
func ReleaseQuad() {
	if sharedQuadVao == nil {
		return
	}
	sharedQuadVao.Delete()
	sharedQuadVbo.Delete()
	sharedQuadVao, sharedQuadVbo = nil, nil
}
