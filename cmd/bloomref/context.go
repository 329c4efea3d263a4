package main

import (
	"bloom-gl/libgl"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// hiddenContext is replaced in tests that need context creation to fail.
var hiddenContext = createHiddenContext

// createHiddenContext makes a 4.5 core context current on the calling thread.
func createHiddenContext() (release func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	win, err := glfw.CreateWindow(64, 64, "bloomref", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()

	if err := libgl.InitContext(glfw.GetProcAddress); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	libgl.EnableDebugOutput()

	return func() {
		win.Destroy()
		glfw.Terminate()
	}, nil
}
