package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"INFO":    Info,
		"":        Notice,
		"warn":    Warning,
		" error ": Error,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	defer SetLevel(GetLevel())

	logger := New("test")

	SetLevel(Warning)
	logger.Info("hidden")
	logger.Warning("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "[test]")

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("value=%d", 3)
	assert.Contains(t, buf.String(), "value=3")
}
