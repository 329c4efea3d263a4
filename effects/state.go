package effects

import (
	"sync"

	"github.com/chewxy/math32"
)

// MinExposure replaces any exposure that is not strictly positive,
// MaxExposure any larger or infinite one.
const (
	MinExposure float32 = 1e-3
	MaxExposure float32 = 1e4
)

// BloomState holds the values toggled at runtime. Input callbacks write it,
// the pipeline reads one snapshot per frame.
type BloomState struct {
	mu       sync.RWMutex
	enabled  bool
	exposure float32
}

// BloomSnapshot is the state as seen by one frame.
type BloomSnapshot struct {
	Enabled  bool
	Exposure float32
}

func NewBloomState(cfg Config) *BloomState {
	s := &BloomState{enabled: cfg.Enabled}
	s.exposure = clampExposure(cfg.ExposureDefault)
	return s
}

func (s *BloomState) Snapshot() BloomSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BloomSnapshot{Enabled: s.enabled, Exposure: s.exposure}
}

// Toggle flips bloom and returns the new value.
func (s *BloomState) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = !s.enabled
	return s.enabled
}

func (s *BloomState) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
}

// SetExposure stores the clamped exposure and returns it.
func (s *BloomState) SetExposure(exposure float32) float32 {
	exposure = clampExposure(exposure)
	s.mu.Lock()
	s.exposure = exposure
	s.mu.Unlock()
	return exposure
}

// AdjustExposure adds delta under a single lock so concurrent steps are not lost.
func (s *BloomState) AdjustExposure(delta float32) float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exposure = clampExposure(s.exposure + delta)
	return s.exposure
}

func clampExposure(exposure float32) float32 {
	switch {
	case math32.IsNaN(exposure) || exposure < MinExposure:
		return MinExposure
	case exposure > MaxExposure:
		return MaxExposure
	}
	return exposure
}
