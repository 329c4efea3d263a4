package main

import (
	"bloom-gl/config"
	"bloom-gl/libutil"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinZoom, MaxZoom   = 1, 45
	MinPitch, MaxPitch = -89, 89
)

type CameraDirection int

const (
	Forward CameraDirection = iota
	Backward
	Left
	Right
)

// Camera is a fly camera driven by yaw and pitch, with zoom as the vertical fov.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3
	// in degrees
	Yaw, Pitch float32
	// vertical fov in degrees
	Zoom           float32
	Speed          float32
	Sensitivity    float32
	ClippingPlanes mgl32.Vec2
	Aspect         float32
	// Mouse look is ignored while false.
	MouseUpdate bool
}

func NewCamera(cfg config.Camera, aspect float32) *Camera {
	cam := &Camera{
		Position:       mgl32.Vec3(cfg.Position),
		WorldUp:        mgl32.Vec3{0, 1, 0},
		Yaw:            cfg.Yaw,
		Pitch:          cfg.Pitch,
		Zoom:           cfg.Fov,
		Speed:          cfg.Speed,
		Sensitivity:    cfg.Sensitivity,
		ClippingPlanes: mgl32.Vec2{cfg.Near, cfg.Far},
		Aspect:         aspect,
		MouseUpdate:    true,
	}
	cam.updateVectors()
	return cam
}

func (cam *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(cam.Position, cam.Position.Add(cam.Front), cam.Up)
}

func (cam *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(cam.Zoom), cam.Aspect, cam.ClippingPlanes[0], cam.ClippingPlanes[1])
}

func (cam *Camera) Move(direction CameraDirection, dt float32) {
	velocity := cam.Speed * dt
	switch direction {
	case Forward:
		cam.Position = cam.Position.Add(cam.Front.Mul(velocity))
	case Backward:
		cam.Position = cam.Position.Sub(cam.Front.Mul(velocity))
	case Left:
		cam.Position = cam.Position.Sub(cam.Right.Mul(velocity))
	case Right:
		cam.Position = cam.Position.Add(cam.Right.Mul(velocity))
	}
}

// Look applies a cursor delta in pixels. Positive dy moves the cursor down and pitches down.
func (cam *Camera) Look(dx, dy float32) {
	if !cam.MouseUpdate {
		return
	}
	cam.Yaw += dx * cam.Sensitivity
	cam.Pitch -= dy * cam.Sensitivity
	cam.Pitch = mgl32.Clamp(cam.Pitch, MinPitch, MaxPitch)
	cam.updateVectors()
}

func (cam *Camera) Scroll(dy float32) {
	cam.Zoom = mgl32.Clamp(cam.Zoom-dy, MinZoom, MaxZoom)
}

func (cam *Camera) updateVectors() {
	yaw, pitch := cam.Yaw*libutil.Deg2Rad, cam.Pitch*libutil.Deg2Rad
	cam.Front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	cam.Right = cam.Front.Cross(cam.WorldUp).Normalize()
	cam.Up = cam.Right.Cross(cam.Front).Normalize()
}
