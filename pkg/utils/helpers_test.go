package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	// Roughly one degree of latitude.
	d := DistanceKm(40.0, -74.0, 41.0, -74.0)
	assert.InDelta(t, 111.2, d, 1.0)

	assert.InDelta(t, 0, DistanceKm(40.0, -74.0, 40.0, -74.0), 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 0.0, Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, Clamp(11, 0, 10))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 3.14, RoundTo(3.14159, 2))
	assert.Equal(t, 3.0, RoundTo(3.4, 0))
}
