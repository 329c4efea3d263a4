package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencerOrder(t *testing.T) {
	var s FrameSequencer
	for frame := 0; frame < 3; frame++ {
		require.NoError(t, s.BeginCapture())
		assert.Equal(t, PhaseCapturing, s.Phase())
		require.NoError(t, s.EndCapture())
		require.NoError(t, s.Blur())
		require.NoError(t, s.Composite())
		assert.Equal(t, PhaseIdle, s.Phase())
	}
	assert.Equal(t, uint64(3), s.Frames())
}

func TestSequencerRejectsOutOfOrder(t *testing.T) {
	var s FrameSequencer
	assert.ErrorIs(t, s.Blur(), ErrPhaseOrder)
	assert.ErrorIs(t, s.Composite(), ErrPhaseOrder)
	assert.ErrorIs(t, s.EndCapture(), ErrPhaseOrder)

	require.NoError(t, s.BeginCapture())
	assert.ErrorIs(t, s.BeginCapture(), ErrPhaseOrder)
	assert.ErrorIs(t, s.Blur(), ErrPhaseOrder)
	require.NoError(t, s.EndCapture())
	assert.ErrorIs(t, s.Composite(), ErrPhaseOrder)
	assert.Equal(t, PhaseBlurring, s.Phase())

	s.Abort()
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, uint64(0), s.Frames())
}
