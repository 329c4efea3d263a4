package effects

import (
	"sync"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestBloomStateDefaults(t *testing.T) {
	s := NewBloomState(DefaultConfig())
	assert.Equal(t, BloomSnapshot{Enabled: true, Exposure: 0.5}, s.Snapshot())
}

func TestBloomStateToggle(t *testing.T) {
	s := NewBloomState(DefaultConfig())
	assert.False(t, s.Toggle())
	assert.False(t, s.Snapshot().Enabled)
	assert.True(t, s.Toggle())
}

func TestBloomStateExposureClamp(t *testing.T) {
	s := NewBloomState(DefaultConfig())
	assert.Equal(t, MinExposure, s.SetExposure(0))
	assert.Equal(t, MinExposure, s.SetExposure(-3))
	assert.Equal(t, MinExposure, s.SetExposure(math32.NaN()))
	assert.Equal(t, float32(2), s.SetExposure(2))
	assert.Equal(t, MinExposure, s.AdjustExposure(-10))
}

func TestBloomStateExposureStaysFinite(t *testing.T) {
	s := NewBloomState(DefaultConfig())
	assert.Equal(t, MaxExposure, s.SetExposure(math32.Inf(1)))
	assert.Equal(t, MaxExposure, s.SetExposure(3e38))
	assert.Equal(t, MaxExposure, s.AdjustExposure(3e38))

	snapshot := s.Snapshot()
	black := Composite(mgl32.Vec3{}, mgl32.Vec3{}, true, snapshot.Exposure, 2.2)
	assert.Equal(t, mgl32.Vec3{}, black)
}

func TestBloomStateConcurrentAdjust(t *testing.T) {
	s := NewBloomState(DefaultConfig())
	s.SetExposure(1)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AdjustExposure(0.5)
		}()
	}
	wg.Wait()

	assert.Equal(t, float32(26), s.Snapshot().Exposure)
}
