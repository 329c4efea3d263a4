package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal(t *testing.T) {
	cases := []struct {
		n    int
		want PingPong
	}{
		{1, PingPongB},
		{2, PingPongA},
		{3, PingPongB},
		{10, PingPongA},
		{11, PingPongB},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Terminal(c.n, PingPongB), "n=%d", c.n)
		assert.Equal(t, c.want.Other(), Terminal(c.n, PingPongA), "n=%d", c.n)
	}
	assert.Equal(t, PingPongB, Terminal(0, PingPongB))
}

func TestTerminalMatchesSchedule(t *testing.T) {
	for n := 1; n <= 32; n++ {
		steps := BlurSchedule(n)
		require.Len(t, steps, n)
		assert.Equal(t, steps[n-1].Target, Terminal(n, PingPongB), "n=%d", n)
	}
}

func TestBlurSchedule(t *testing.T) {
	steps := BlurSchedule(10)

	first := steps[0]
	assert.True(t, first.Horizontal)
	assert.Equal(t, SourceCapture, first.Source)
	assert.Equal(t, PingPongB, first.Target)

	for i, step := range steps {
		assert.NotEqual(t, sourceOf(step.Target), step.Source, "step %d reads its own target", i)
		if i == 0 {
			continue
		}
		prev := steps[i-1]
		assert.Equal(t, !prev.Horizontal, step.Horizontal, "step %d", i)
		assert.Equal(t, sourceOf(prev.Target), step.Source, "step %d", i)
	}

	assert.Empty(t, BlurSchedule(0))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	invalid := map[string]func(*Config){
		"odd iterations":  func(c *Config) { c.Iterations = 11 },
		"zero iterations": func(c *Config) { c.Iterations = 0 },
		"negative width":  func(c *Config) { c.Width = -1 },
		"downsample":      func(c *Config) { c.Downsample = 0 },
		"zero exposure":   func(c *Config) { c.ExposureDefault = 0 },
		"huge exposure":   func(c *Config) { c.ExposureDefault = MaxExposure * 2 },
		"zero gamma":      func(c *Config) { c.Gamma = 0 },
		"threshold":       func(c *Config) { c.BrightThreshold = -1 },
	}
	for name, mutate := range invalid {
		cfg := DefaultConfig()
		mutate(&cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, name)
	}
}

func TestConfigSizes(t *testing.T) {
	cfg := DefaultConfig()
	w, h := cfg.Size(800, 600)
	assert.Equal(t, [2]int{800, 600}, [2]int{w, h})

	cfg.Width, cfg.Downsample = 400, 4
	w, h = cfg.Size(800, 600)
	assert.Equal(t, [2]int{400, 600}, [2]int{w, h})
	w, h = cfg.BlurSize(w, h)
	assert.Equal(t, [2]int{100, 150}, [2]int{w, h})

	w, h = cfg.BlurSize(2, 1)
	assert.Equal(t, [2]int{1, 1}, [2]int{w, h})
}
