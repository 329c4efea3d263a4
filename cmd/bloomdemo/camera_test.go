package main

import (
	"testing"

	"bloom-gl/config"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], 1e-5, "component %d", i)
	}
}

func TestCameraDefaultsLookDownNegativeZ(t *testing.T) {
	cam := NewCamera(config.Default().Scene.Camera, 800.0/600.0)
	assertVec3(t, mgl32.Vec3{0, 15, 0}, cam.Position)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, cam.Front)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, cam.Right)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, cam.Up)
}

func TestCameraMove(t *testing.T) {
	cam := NewCamera(config.Default().Scene.Camera, 1)
	cam.Move(Forward, 2)
	assertVec3(t, mgl32.Vec3{0, 15, -5}, cam.Position)
	cam.Move(Right, 1)
	assertVec3(t, mgl32.Vec3{2.5, 15, -5}, cam.Position)
	cam.Move(Backward, 2)
	cam.Move(Left, 1)
	assertVec3(t, mgl32.Vec3{0, 15, 0}, cam.Position)
}

func TestCameraLookClampsPitch(t *testing.T) {
	cam := NewCamera(config.Default().Scene.Camera, 1)
	cam.Look(0, -10000)
	assert.Equal(t, float32(MaxPitch), cam.Pitch)
	cam.Look(0, 20000)
	assert.Equal(t, float32(MinPitch), cam.Pitch)
}

func TestCameraLookDisabled(t *testing.T) {
	cam := NewCamera(config.Default().Scene.Camera, 1)
	cam.MouseUpdate = false
	cam.Look(100, 100)
	assert.Equal(t, float32(-90), cam.Yaw)
	assert.Equal(t, float32(0), cam.Pitch)
}

func TestCameraScrollClampsZoom(t *testing.T) {
	cam := NewCamera(config.Default().Scene.Camera, 1)
	cam.Scroll(10)
	assert.Equal(t, float32(35), cam.Zoom)
	cam.Scroll(100)
	assert.Equal(t, float32(MinZoom), cam.Zoom)
	cam.Scroll(-100)
	assert.Equal(t, float32(MaxZoom), cam.Zoom)
}
