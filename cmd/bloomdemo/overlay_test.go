package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameTimesAverage(t *testing.T) {
	var ft frameTimes
	assert.Equal(t, float32(0), ft.Average())

	for i := 0; i < len(ft.values); i++ {
		ft.Add(10)
	}
	assert.InDelta(t, 10, ft.Average(), 1e-4)

	// the ring overwrites the oldest entries
	for i := 0; i < len(ft.values)/2; i++ {
		ft.Add(20)
	}
	assert.InDelta(t, 15, ft.Average(), 1e-4)
}
