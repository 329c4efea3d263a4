package main

import (
	"unsafe"

	"bloom-gl/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

type ImGui struct {
	IO        imgui.IO
	context   *imgui.Context
	FrameTime float32
	vao       libgl.UnboundVertexArray
	vbo       libgl.UnboundBuffer
	ebo       libgl.UnboundBuffer
	atlas     libgl.UnboundTexture
	shader    libgl.UnboundShaderPipeline
}

func NewImGui(shader libgl.UnboundShaderPipeline, onScroll func(x, y float32)) *ImGui {
	context := imgui.CreateContext(nil)

	io := imgui.CurrentIO()
	win := glfw.GetCurrentContext()
	dispWidth, dispHeight := win.GetSize()
	io.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	imgui.StyleColorsDark()

	vao := libgl.NewVertexArray()
	_, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	vao.Layout(0, 0, 2, gl.FLOAT, false, vertexOffsetPos)
	vao.Layout(0, 1, 2, gl.FLOAT, false, vertexOffsetUv)
	vao.Layout(0, 2, 4, gl.UNSIGNED_BYTE, true, vertexOffsetCol)
	vao.SetDebugLabel("ImGui")

	image := io.Fonts().TextureDataRGBA32()
	atlas := libgl.NewTexture(gl.TEXTURE_2D)
	atlas.Allocate(1, gl.RGBA8, image.Width, image.Height, 0)
	gl.TextureSubImage2D(atlas.Id(), 0, 0, 0, int32(image.Width), int32(image.Height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer((*byte)(image.Pixels)))
	atlas.FilterMode(gl.LINEAR, gl.LINEAR)
	atlas.SetDebugLabel("ImGui Font Atlas")
	io.Fonts().SetTextureID(imgui.TextureID(atlas.Id()))

	win.SetCursorPosCallback(func(w *glfw.Window, mx, my float64) {
		io.SetMousePosition(imgui.Vec2{X: float32(mx), Y: float32(my)})
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		io.SetMouseButtonDown(int(button), action == glfw.Press)
	})
	win.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		io.AddMouseWheelDelta(float32(x), float32(y))
		if onScroll != nil && !io.WantCaptureMouse() {
			onScroll(float32(x), float32(y))
		}
	})
	win.SetCharCallback(func(w *glfw.Window, char rune) {
		io.AddInputCharacters(string(char))
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key < 0 {
			return
		}
		if action == glfw.Press {
			io.KeyPress(int(key))
		}
		if action == glfw.Release {
			io.KeyRelease(int(key))
		}

		// Modifiers are not reliable across systems
		io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
		io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
		io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
		io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
	})

	keys := map[int]glfw.Key{
		imgui.KeyTab:        glfw.KeyTab,
		imgui.KeyLeftArrow:  glfw.KeyLeft,
		imgui.KeyRightArrow: glfw.KeyRight,
		imgui.KeyUpArrow:    glfw.KeyUp,
		imgui.KeyDownArrow:  glfw.KeyDown,
		imgui.KeyPageUp:     glfw.KeyPageUp,
		imgui.KeyPageDown:   glfw.KeyPageDown,
		imgui.KeyHome:       glfw.KeyHome,
		imgui.KeyEnd:        glfw.KeyEnd,
		imgui.KeyInsert:     glfw.KeyInsert,
		imgui.KeyDelete:     glfw.KeyDelete,
		imgui.KeyBackspace:  glfw.KeyBackspace,
		imgui.KeySpace:      glfw.KeySpace,
		imgui.KeyEnter:      glfw.KeyEnter,
		imgui.KeyEscape:     glfw.KeyEscape,
		imgui.KeyA:          glfw.KeyA,
		imgui.KeyC:          glfw.KeyC,
		imgui.KeyV:          glfw.KeyV,
		imgui.KeyX:          glfw.KeyX,
		imgui.KeyY:          glfw.KeyY,
		imgui.KeyZ:          glfw.KeyZ,
	}
	for imguiKey, glfwKey := range keys {
		io.KeyMap(imguiKey, int(glfwKey))
	}

	return &ImGui{
		IO:        io,
		context:   context,
		FrameTime: float32(glfw.GetTime()),
		vao:       vao,
		atlas:     atlas,
		shader:    shader,
	}
}

// ensureCapacity replaces buf with a larger immutable buffer when size does not fit.
func ensureCapacity(buf libgl.UnboundBuffer, size int, label string) libgl.UnboundBuffer {
	if buf != nil && buf.Size() >= size {
		return buf
	}
	if buf != nil {
		buf.Delete()
	}
	buf = libgl.NewBuffer()
	buf.AllocateEmpty(size, gl.DYNAMIC_STORAGE_BIT)
	buf.SetDebugLabel(label)
	return buf
}

func (gui *ImGui) Draw() {
	defer libgl.PushGroup("Draw ImGui")()

	io := imgui.CurrentIO()
	win := glfw.GetCurrentContext()

	dispWidth, dispHeight := win.GetSize()
	fbWidth, fbHeight := win.GetFramebufferSize()
	if dispWidth == 0 || dispHeight == 0 {
		imgui.Render()
		return
	}
	libgl.State.BindDrawFramebuffer(0)
	libgl.State.Viewport(0, 0, fbWidth, fbHeight)
	io.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	ortho := mgl32.Ortho2D(0, float32(dispWidth), float32(dispHeight), 0)

	time := float32(glfw.GetTime())
	io.SetDeltaTime(time - gui.FrameTime)
	gui.FrameTime = time

	gui.vao.Bind()
	gui.shader.Bind()
	gui.shader.Get(gl.VERTEX_SHADER).SetUniform("u_proj_mat", ortho)

	libgl.State.SetEnabled(libgl.Blend, libgl.ScissorTest)
	libgl.State.BlendEquation(libgl.BlendFuncAdd)
	libgl.State.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)
	libgl.State.BindSampler(0, 0)

	imgui.Render()
	drawData := imgui.RenderedDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / float32(dispWidth),
		Y: float32(fbHeight) / float32(dispHeight),
	})

	vertexSize, _, _, _ := imgui.VertexBufferLayout()
	indexSize := imgui.IndexBufferLayout()
	var indexType uint32
	switch indexSize {
	case 1:
		indexType = gl.UNSIGNED_BYTE
	case 2:
		indexType = gl.UNSIGNED_SHORT
	case 4:
		indexType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		if vertexBufferSize > 0 {
			gui.vbo = ensureCapacity(gui.vbo, vertexBufferSize, "ImGui Vertices")
			gui.vao.BindBuffer(0, gui.vbo, 0, vertexSize)
			gl.NamedBufferSubData(gui.vbo.Id(), 0, vertexBufferSize, vertexBuffer)
		}

		indexBuffer, indexBufferSize := list.IndexBuffer()
		if indexBufferSize > 0 {
			gui.ebo = ensureCapacity(gui.ebo, indexBufferSize, "ImGui Indices")
			gui.vao.BindElementBuffer(gui.ebo)
			gl.NamedBufferSubData(gui.ebo.Id(), 0, indexBufferSize, indexBuffer)
		}

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			libgl.State.BindTextureUnit(0, uint32(cmd.TextureID()))
			clipRect := cmd.ClipRect()
			x, y := int(clipRect.X), fbHeight-int(clipRect.W)
			if y <= 0 {
				y = 0
			}
			libgl.State.Scissor(x, y, int(clipRect.Z-clipRect.X), int(clipRect.W-clipRect.Y))
			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, uintptr(cmd.IndexOffset()*indexSize), int32(cmd.VertexOffset()))
		}
	}

	libgl.State.SetEnabled()
}

func (gui *ImGui) Delete() {
	gui.vao.Delete()
	if gui.vbo != nil {
		gui.vbo.Delete()
	}
	if gui.ebo != nil {
		gui.ebo.Delete()
	}
	gui.atlas.Delete()
	DeletePipeline(gui.shader)
	gui.context.Destroy()
}
