package main

import (
	"testing"

	"bloom-gl/config"
	"bloom-gl/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverridesSurviveReloadedConfig(t *testing.T) {
	flags := overrides{Scene: "street", VeryVerbose: true}

	next := config.Default()
	next.Scene.Variant = "grass"
	next.Log.Level = "error"
	require.NoError(t, flags.Apply(next))

	assert.Equal(t, "street", next.Scene.Variant)
	assert.Equal(t, log.Debug, flags.LogLevel(next))
}

func TestOverridesEmptyKeepConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "warning"
	require.NoError(t, overrides{}.Apply(cfg))

	assert.Equal(t, config.Default().Scene.Variant, cfg.Scene.Variant)
	assert.Equal(t, log.Warning, overrides{}.LogLevel(cfg))
	assert.Equal(t, log.Info, overrides{Verbose: true}.LogLevel(cfg))
}

func TestOverridesRejectUnknownScene(t *testing.T) {
	err := overrides{Scene: "forest"}.Apply(config.Default())
	assert.ErrorIs(t, err, config.ErrInvalid)
}
