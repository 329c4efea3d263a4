package main

import (
	"bloom-gl/effects"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const exposureStep = 0.05

// Controls maps the frame's input to camera movement and pipeline toggles.
type Controls struct {
	ctx    *glfw.Window
	camera *Camera
	state  *effects.BloomState
	// set by Ctrl+F11, cleared once the dump is written
	DumpRequested bool
}

func (c *Controls) Update() {
	if Input.IsKeyDown(glfw.KeyEscape) {
		c.ctx.SetShouldClose(true)
	}

	dt := Input.TimeDelta()
	if Input.IsKeyDown(glfw.KeyW) {
		c.camera.Move(Forward, dt)
	}
	if Input.IsKeyDown(glfw.KeyS) {
		c.camera.Move(Backward, dt)
	}
	if Input.IsKeyDown(glfw.KeyA) {
		c.camera.Move(Left, dt)
	}
	if Input.IsKeyDown(glfw.KeyD) {
		c.camera.Move(Right, dt)
	}

	if Input.IsKeyTap(glfw.KeyLeftAlt) {
		if c.ctx.GetInputMode(glfw.CursorMode) == glfw.CursorDisabled {
			c.ctx.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			c.ctx.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		}
	}
	if c.ctx.GetInputMode(glfw.CursorMode) == glfw.CursorDisabled {
		delta := Input.CursorDelta()
		c.camera.Look(delta[0], delta[1])
	}
	if scroll := Input.ScrollDelta(); scroll[1] != 0 {
		c.camera.Scroll(scroll[1])
	}

	if Input.IsKeyTap(glfw.KeySpace) {
		enabled := c.state.Toggle()
		logger.Infof("bloom %s", onOff(enabled))
	}
	if Input.IsKeyTap(glfw.KeyMinus) {
		c.state.AdjustExposure(-exposureStep)
	}
	if Input.IsKeyTap(glfw.KeyEqual) {
		c.state.AdjustExposure(exposureStep)
	}

	ctrl := Input.IsKeyDown(glfw.KeyLeftControl) || Input.IsKeyDown(glfw.KeyRightControl)
	if ctrl && Input.IsKeyTap(glfw.KeyF11) {
		c.DumpRequested = true
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
