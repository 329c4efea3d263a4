package main

import (
	"bloom-gl/effects"

	im "github.com/inkyblackness/imgui-go/v4"
)

// frameTimes is a ring of the most recent frame durations in milliseconds.
type frameTimes struct {
	values [120]float32
	next   int
}

func (ft *frameTimes) Add(ms float32) {
	ft.values[ft.next] = ms
	ft.next = (ft.next + 1) % len(ft.values)
}

func (ft *frameTimes) Average() float32 {
	var sum float32
	for _, v := range ft.values {
		sum += v
	}
	return sum / float32(len(ft.values))
}

type Overlay struct {
	Enabled bool
	camera  *Camera
	state   *effects.BloomState
	times   frameTimes
}

func NewOverlay(camera *Camera, state *effects.BloomState) *Overlay {
	return &Overlay{Enabled: true, camera: camera, state: state}
}

func (o *Overlay) Build(effect *effects.BloomEffect, dt float32) {
	o.times.Add(dt * 1000)

	im.NewFrame()
	if !o.Enabled {
		return
	}

	cam := o.camera
	im.Begin("Camera info")
	im.Textf("Camera position: (%.2f, %.2f, %.2f)", cam.Position[0], cam.Position[1], cam.Position[2])
	im.Textf("(Yaw, Pitch): (%.2f, %.2f)", cam.Yaw, cam.Pitch)
	im.Textf("Camera front: (%.2f, %.2f, %.2f)", cam.Front[0], cam.Front[1], cam.Front[2])
	im.Checkbox("Camera mouse update", &cam.MouseUpdate)
	im.End()

	snapshot := o.state.Snapshot()
	im.Begin("Bloom")
	enabled := snapshot.Enabled
	if im.Checkbox("Enabled (Space)", &enabled) {
		o.state.SetEnabled(enabled)
	}
	exposure := snapshot.Exposure
	if im.SliderFloatV("Exposure (-/=)", &exposure, effects.MinExposure, 5, "%.3f", im.SliderFlagsLogarithmic) {
		o.state.SetExposure(exposure)
	}
	cfg := effect.Config()
	im.Textf("Blur passes: %d", cfg.Iterations)
	im.Textf("Capture: %dx%d", effect.Capture().Width(), effect.Capture().Height())
	im.Textf("Blur targets: %dx%d", effect.PingPong().Width(), effect.PingPong().Height())
	im.Textf("Frame: %.2f ms (%d frames)", o.times.Average(), effect.Frames())
	im.End()
}

