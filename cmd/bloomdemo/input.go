package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type InputManager interface {
	CursorDelta() mgl32.Vec2
	ScrollDelta() mgl32.Vec2
	TimeDelta() float32
	IsKeyDown(key glfw.Key) bool
	IsKeyTap(key glfw.Key) bool
	IsMouseDown(button glfw.MouseButton) bool
	Update(ctx *glfw.Window)
	// AddScroll is called from the scroll callback between updates.
	AddScroll(x, y float32)
}

type input struct {
	curr           inputState
	prev           inputState
	scrollPending  mgl32.Vec2
	cursorCaptured bool
}

type inputState struct {
	time         float32
	cursorPos    mgl32.Vec2
	scroll       mgl32.Vec2
	keys         []bool
	mousebuttons []bool
}

var Input InputManager

func NewInputManager(ctx *glfw.Window) *input {
	i := &input{
		curr: inputState{
			keys:         make([]bool, glfw.KeyLast+1),
			mousebuttons: make([]bool, glfw.MouseButtonLast+1),
		},
		prev: inputState{
			keys:         make([]bool, glfw.KeyLast+1),
			mousebuttons: make([]bool, glfw.MouseButtonLast+1),
		},
	}

	i.Update(ctx)
	i.prev.cursorPos = i.curr.cursorPos
	// Make sure dTime != 0 to avoid possible errors
	i.prev.time = i.curr.time - 1./60.
	copy(i.prev.keys[:], i.curr.keys[:])
	copy(i.prev.mousebuttons[:], i.curr.mousebuttons[:])

	return i
}

func (i *input) CursorDelta() mgl32.Vec2 {
	return i.curr.cursorPos.Sub(i.prev.cursorPos)
}

func (i *input) ScrollDelta() mgl32.Vec2 {
	return i.curr.scroll
}

func (i *input) TimeDelta() float32 {
	return i.curr.time - i.prev.time
}

func (i *input) IsKeyDown(key glfw.Key) bool {
	return i.curr.keys[key]
}

func (i *input) IsKeyTap(key glfw.Key) bool {
	return i.curr.keys[key] && !i.prev.keys[key]
}

func (i *input) IsMouseDown(button glfw.MouseButton) bool {
	return i.curr.mousebuttons[button]
}

func (i *input) AddScroll(x, y float32) {
	i.scrollPending = i.scrollPending.Add(mgl32.Vec2{x, y})
}

func (i *input) Update(ctx *glfw.Window) {
	keys := i.prev.keys
	mousebuttons := i.prev.mousebuttons
	i.prev = i.curr
	cursorX, cursorY := ctx.GetCursorPos()

	for key := int(glfw.KeySpace); key <= int(glfw.KeyLast); key++ {
		keys[key] = ctx.GetKey(glfw.Key(key)) != glfw.Release
	}

	for button := 0; button <= int(glfw.MouseButtonLast); button++ {
		mousebuttons[button] = ctx.GetMouseButton(glfw.MouseButton(button)) != glfw.Release
	}

	i.curr = inputState{
		time:         float32(glfw.GetTime()),
		cursorPos:    mgl32.Vec2{float32(cursorX), float32(cursorY)},
		scroll:       i.scrollPending,
		keys:         keys,
		mousebuttons: mousebuttons,
	}
	i.scrollPending = mgl32.Vec2{}
}
