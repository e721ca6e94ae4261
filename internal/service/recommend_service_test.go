package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driverdash/backend/internal/domain"
)

func TestRecommendSplitsDrivers(t *testing.T) {
	svc := NewRecommendService(newTestMapService(t))

	rec := svc.Recommend("clear", 2, 3.5, 12)
	require.Len(t, rec.Counts, domain.LocationsPerCity)

	total := 0
	for _, c := range rec.Counts {
		total += c
	}
	assert.Equal(t, 12, total)

	// Location 0 has zero expected revenue; greedy never picks it while
	// positive-gain locations remain.
	assert.Equal(t, 0, rec.Counts[0])
	assert.Equal(t, []float64{0, 3, 4.5, 8, 9, 12}, rec.Revenues)
}

func TestRecommendMissingRow(t *testing.T) {
	svc := NewRecommendService(newTestMapService(t))

	// Off-grid hours: zero revenue vector, still a full allocation.
	rec := svc.Recommend("clear", 2, 4.0, 6)
	assert.Equal(t, make([]float64, domain.LocationsPerCity), rec.Revenues)

	total := 0
	for _, c := range rec.Counts {
		total += c
	}
	assert.Equal(t, 6, total)
}
